package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"shutdowntimer/internal/core/countdown"
	"shutdowntimer/internal/core/model"
	"shutdowntimer/internal/history"
	"shutdowntimer/internal/platform"
	"shutdowntimer/internal/storage"
	"shutdowntimer/internal/ui/terminal"
)

const appName = "ShutdownTimer"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	guard, err := platform.AcquireSingleInstance(appName)
	if err != nil {
		return err
	}
	defer func() {
		_ = guard.Release()
	}()

	if appDir, err := platform.AppDir(appName); err == nil {
		if err := os.MkdirAll(appDir, 0o755); err == nil {
			logFile, err := tea.LogToFile(filepath.Join(appDir, "tui.log"), "shutdowntimer")
			if err == nil {
				defer logFile.Close()
			}
		}
	}

	settings, err := storage.LoadSettings(appName)
	if err != nil {
		log.Printf("settings: %v", err)
	}

	timer := countdown.New(model.DefaultCountdownConfig(), countdown.SystemClock{}, platform.NewShutdowner())
	timer.SetFields(settings.InitialFields())

	var source terminal.HistorySource
	if settings.HistoryEnabled {
		repo, err := history.OpenForApp(appName)
		if err != nil {
			log.Printf("history: %v", err)
		} else {
			source = repo
			events := timer.Subscribe(16)
			recorderDone := make(chan struct{})
			go func() {
				defer close(recorderDone)
				history.NewRecorder(repo).Run(events)
			}()
			// runs after timer.Close below has ended the recorder
			defer func() {
				<-recorderDone
				if err := repo.CloseRunning(time.Now()); err != nil {
					log.Printf("history: %v", err)
				}
				_ = repo.Close()
			}()
		}
	}

	m := terminal.NewModel(timer, source, func(fields model.DurationFields) {
		if !settings.RememberDuration {
			return
		}
		settings.Preset = fields
		if err := storage.SaveSettings(appName, settings); err != nil {
			log.Printf("settings: %v", err)
		}
	})

	p := tea.NewProgram(m, tea.WithAltScreen())

	heartbeat := countdown.NewHeartbeat(timer.Config().TickInterval)
	heartbeat.Start(func() {
		p.Send(terminal.MsgTick{})
	})
	defer heartbeat.Stop()

	_, err = p.Run()
	heartbeat.Stop()
	timer.Close()
	if err != nil {
		return fmt.Errorf("run program: %w", err)
	}
	return nil
}
