package terminal

import (
	"log"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"shutdowntimer/internal/core/countdown"
	"shutdowntimer/internal/core/model"
	"shutdowntimer/internal/history"
)

// MsgTick is the one second heartbeat.
type MsgTick struct{}

const recentLimit = 5

const (
	focusHours = iota
	focusMinutes
	focusSeconds
	fieldCount
)

// HistorySource lists past countdowns.
type HistorySource interface {
	Recent(limit int) ([]history.Session, error)
}

// Model is the bubbletea model of the terminal front-end.
type Model struct {
	Countdown  *countdown.Countdown
	InputFocus int
	Recent     []history.Session

	history   HistorySource
	onStarted func(model.DurationFields)
}

// NewModel wraps timer. source and onStarted may be nil.
func NewModel(timer *countdown.Countdown, source HistorySource, onStarted func(model.DurationFields)) *Model {
	m := &Model{
		Countdown: timer,
		history:   source,
		onStarted: onStarted,
	}
	m.loadRecent()
	return m
}

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case MsgTick:
		m.Countdown.Tick()
		m.loadRecent()
		return m, nil
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	case tea.WindowSizeMsg:
		return m, nil
	}
	return m, nil
}

func (m *Model) View() string {
	return m.mainView()
}

// FocusedField returns the text of the field being edited.
func (m *Model) FocusedField() string {
	fields := m.Countdown.Fields()
	switch m.InputFocus {
	case focusMinutes:
		return fields.Minutes
	case focusSeconds:
		return fields.Seconds
	default:
		return fields.Hours
	}
}

func (m *Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "tab", "right", "l":
		m.InputFocus = (m.InputFocus + 1) % fieldCount
	case "shift+tab", "left", "h":
		m.InputFocus = (m.InputFocus + fieldCount - 1) % fieldCount
	case "enter", "s":
		m.toggle()
	case "r":
		m.Countdown.Reset()
	case "backspace":
		text := m.FocusedField()
		if len(text) > 0 {
			m.editFocused(text[:len(text)-1])
		}
	default:
		runes := []rune(msg.String())
		if len(runes) == 1 && runes[0] >= '0' && runes[0] <= '9' {
			current := m.FocusedField()
			// a zero field is replaced rather than extended
			if strings.Trim(current, "0") == "" {
				current = ""
			}
			m.editFocused(current + string(runes[0]))
		}
	}
	return m, nil
}

func (m *Model) toggle() {
	if m.Countdown.Active() {
		m.Countdown.Stop()
		return
	}
	m.Countdown.Start()
	if m.Countdown.Active() && m.onStarted != nil {
		m.onStarted(m.Countdown.Fields())
	}
}

func (m *Model) editFocused(text string) {
	switch m.InputFocus {
	case focusMinutes:
		m.Countdown.EditMinutes(text)
	case focusSeconds:
		m.Countdown.EditSeconds(text)
	default:
		m.Countdown.EditHours(text)
	}
}

func (m *Model) loadRecent() {
	if m.history == nil {
		return
	}
	sessions, err := m.history.Recent(recentLimit)
	if err != nil {
		log.Printf("history: %v", err)
		return
	}
	m.Recent = sessions
}
