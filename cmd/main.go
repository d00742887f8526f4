package main

import (
	"log"
	"time"

	"shutdowntimer/internal/core/countdown"
	"shutdowntimer/internal/core/model"
	"shutdowntimer/internal/history"
	"shutdowntimer/internal/platform"
	"shutdowntimer/internal/storage"
	"shutdowntimer/internal/ui/form"
	"shutdowntimer/internal/ui/preferences"
	"shutdowntimer/internal/ui/tray"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/theme"
)

const appName = "ShutdownTimer"

func main() {
	guard, err := platform.AcquireSingleInstance(appName)
	if err != nil {
		log.Printf("single instance: %v", err)
		return
	}
	defer func() {
		_ = guard.Release()
	}()

	settings, err := storage.LoadSettings(appName)
	if err != nil {
		log.Printf("settings: %v", err)
	}

	shutdowner := platform.NewShutdowner()
	log.Printf("shutdown command: %s", shutdowner)

	timer := countdown.New(model.DefaultCountdownConfig(), countdown.SystemClock{}, shutdowner)
	timer.SetFields(settings.InitialFields())

	recorderDone := startHistory(timer, settings)

	fyneApp := app.NewWithID("com.shutdowntimer.app")
	fyneApp.SetIcon(theme.LogoutIcon())

	var trayManager *tray.Manager
	mainForm := form.New(fyneApp, timer, form.Callbacks{
		OnStarted: func(fields model.DurationFields) {
			if !settings.RememberDuration {
				return
			}
			settings.Preset = fields
			if err := storage.SaveSettings(appName, settings); err != nil {
				log.Printf("settings: %v", err)
			}
		},
		OnChanged: func() {
			syncTray(trayManager, timer)
		},
	})

	prefsWindow := preferences.New(fyneApp, settings, func(updated preferences.Settings) {
		settings = updated
		if err := storage.SaveSettings(appName, settings); err != nil {
			log.Printf("settings: %v", err)
		}
	})

	quit := func() {
		fyneApp.Quit()
	}

	if desktopApp, ok := fyneApp.(desktop.App); ok {
		trayManager = tray.New(desktopApp, tray.Callbacks{
			OnShow:        mainForm.Show,
			OnToggle:      mainForm.ToggleCountdown,
			OnReset:       mainForm.ResetCountdown,
			OnPreferences: prefsWindow.Show,
			OnQuit:        quit,
		})
		desktopApp.SetSystemTrayIcon(theme.LogoutIcon())
	} else {
		log.Printf("system tray unsupported on this platform")
	}

	mainForm.Window().SetCloseIntercept(func() {
		if settings.CloseToTray && trayManager != nil {
			mainForm.Hide()
			return
		}
		quit()
	})
	mainForm.Window().SetMaster()

	heartbeat := countdown.NewHeartbeat(timer.Config().TickInterval)
	heartbeat.Start(func() {
		fyne.Do(func() {
			mainForm.Tick()
			syncTray(trayManager, timer)
		})
	})

	mainForm.Show()
	fyneApp.Run()

	heartbeat.Stop()
	timer.Close()
	if recorderDone != nil {
		<-recorderDone
	}
}

func syncTray(trayManager *tray.Manager, timer *countdown.Countdown) {
	if trayManager == nil {
		return
	}
	trayManager.SetStatus(timer.ShutdownAtLabel())
	trayManager.SetActive(timer.Active())
}

// startHistory records countdown sessions until the countdown is closed.
// The returned channel is closed once the recorder has drained.
func startHistory(timer *countdown.Countdown, settings preferences.Settings) <-chan struct{} {
	if !settings.HistoryEnabled {
		return nil
	}

	repo, err := history.OpenForApp(appName)
	if err != nil {
		log.Printf("history: %v", err)
		return nil
	}

	events := timer.Subscribe(16)
	done := make(chan struct{})
	go func() {
		defer close(done)
		defer func() {
			if err := repo.CloseRunning(time.Now()); err != nil {
				log.Printf("history: %v", err)
			}
			_ = repo.Close()
		}()
		history.NewRecorder(repo).Run(events)
	}()
	return done
}
