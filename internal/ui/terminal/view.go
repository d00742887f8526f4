package terminal

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"shutdowntimer/internal/history"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86")).
			Bold(true).
			Align(lipgloss.Center)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)

	fieldStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Width(9).
			Align(lipgloss.Center)

	fieldFocusedStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("170")).
				Bold(true).
				Width(9).
				Align(lipgloss.Center)

	runningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	inactiveStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	logHeaderStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86")).
			Bold(true)

	logTimeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

const viewWidth = 60

func formatDuration(d time.Duration) string {
	total := int(d.Seconds())
	hours := total / 3600
	minutes := (total % 3600) / 60
	seconds := total % 60
	return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
}

func (m *Model) mainView() string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Width(viewWidth).Render("Shutdown Timer"))
	sb.WriteString("\n\n")
	sb.WriteString(fmt.Sprintf("Current time: %s    Shutdown at: %s\n\n",
		m.Countdown.CurrentTimeLabel(), m.Countdown.ShutdownAtLabel()))

	sb.WriteString(boxStyle.Render(m.fieldsView()))
	sb.WriteString("\n\n")

	if m.Countdown.Active() {
		sb.WriteString(runningStyle.Render("Shutting down in " + formatDuration(m.Countdown.Remaining())))
	} else {
		sb.WriteString(inactiveStyle.Render("Countdown stopped"))
	}
	sb.WriteString("\n")

	if len(m.Recent) > 0 {
		sb.WriteString("\n")
		sb.WriteString(logHeaderStyle.Render("Recent countdowns"))
		sb.WriteString("\n")
		for _, session := range m.Recent {
			sb.WriteString(formatSession(session))
			sb.WriteString("\n")
		}
	}

	action := "Start"
	if m.Countdown.Active() {
		action = "Stop"
	}
	sb.WriteString("\n")
	sb.WriteString(helpStyle.Render(fmt.Sprintf("Field: Tab/Shift+Tab | Edit: 0-9 Backspace | %s: Enter | Reset: r | Quit: q", action)))

	return sb.String()
}

func (m *Model) fieldsView() string {
	fields := m.Countdown.Fields()
	labels := []string{"Hours", "Minutes", "Seconds"}
	values := []string{fields.Hours, fields.Minutes, fields.Seconds}

	columns := make([]string, 0, len(values))
	for i := range values {
		style := fieldStyle
		value := values[i]
		if i == m.InputFocus {
			style = fieldFocusedStyle
			value += "█"
		}
		columns = append(columns, style.Render(labels[i]+"\n"+value))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, columns...)
}

func formatSession(session history.Session) string {
	started := logTimeStyle.Render(session.StartedAt.Local().Format("Jan 02 15:04"))
	return fmt.Sprintf("  %s  %s  %s", started, formatDuration(session.Planned()), session.Outcome)
}
