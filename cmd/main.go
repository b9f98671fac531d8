package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"timerp/internal/config"
	"timerp/internal/core/settings"
	"timerp/internal/core/timekeeper"
	"timerp/internal/logging"
	"timerp/internal/platform"
	"timerp/internal/sound"
	"timerp/internal/ui/timerwindow"
	"timerp/internal/ui/tray"
	"timerp/resources"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/driver/desktop"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const appName = "timerp"

var version = "dev"

func main() {
	if err := newRootCommand(viper.New()).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand(v *viper.Viper) *cobra.Command {
	root := &cobra.Command{
		Use:           appName,
		Short:         "A Pomodoro work/break countdown timer",
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, v)
			if err != nil {
				return err
			}
			return run(cfg)
		},
	}

	flags := root.PersistentFlags()
	flags.String(FlagConfig, "", "config file (default $XDG_CONFIG_HOME/timerp/config.yaml)")
	flags.String(FlagLogLevel, "", "log level: debug, info, warn, error")
	flags.String(FlagLogFile, "", "write logs to a rotating file instead of stderr")
	root.Flags().Int(FlagWork, 0, "work interval in minutes")
	root.Flags().Int(FlagBreak, 0, "break interval in minutes")
	root.Flags().Bool(FlagNoSound, false, "do not play the completion beeps")

	root.AddCommand(newConfigCommand(v), newVersionCommand())
	return root
}

func loadConfig(cmd *cobra.Command, v *viper.Viper) (*config.Config, error) {
	for flag, key := range flagKeys {
		if f := cmd.Flags().Lookup(flag); f != nil {
			if err := v.BindPFlag(key, f); err != nil {
				return nil, fmt.Errorf("bind --%s: %w", flag, err)
			}
		}
	}

	cfg, err := config.LoadConfig(v)
	if err != nil {
		return nil, err
	}
	if noSound, _ := cmd.Flags().GetBool(FlagNoSound); noSound {
		cfg.Sound.Enabled = false
	}
	return cfg, nil
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version)
		},
	}
}

func run(cfg *config.Config) error {
	logs, err := logging.New(cfg.Log, cfg.LogRotation)
	if err != nil {
		return err
	}
	defer func() {
		_ = logs.Close()
	}()
	logger := logs.Logger

	guard, err := platform.AcquireSingleInstance(appName)
	if errors.Is(err, platform.ErrAlreadyRunning) {
		logger.Info("already running, raising existing window")
		return platform.ActivateRunning(appName)
	}
	if err != nil {
		return err
	}
	defer func() {
		_ = guard.Release()
	}()

	store, err := settings.New(cfg.Settings())
	if err != nil {
		return err
	}
	keeper := timekeeper.New(store, timekeeper.Config{
		TickInterval: time.Second,
		Logger:       logger,
	})

	beeper := sound.NewBeeper(sound.NewOtoPlayer(cfg.Sound.Volume), cfg.Sound.Enabled, logger)

	fyneApp := app.NewWithID("io.timerp.app")
	fyneApp.SetIcon(resources.MustIcon(resources.IconApp))

	var trayManager *tray.Manager
	timer := timerwindow.New(fyneApp, keeper, timerwindow.Options{
		Notifier:      beeper,
		DesktopNotify: cfg.Notify.Desktop,
		Logger:        logger,
		OnRender: func(snapshot timekeeper.Snapshot) {
			if trayManager != nil {
				trayManager.Update(snapshot)
			}
		},
	})

	if desktopApp, ok := fyneApp.(desktop.App); ok {
		trayManager = tray.New(desktopApp, tray.Callbacks{
			OnShow:        timer.Show,
			OnStartWork:   timer.StartWork,
			OnStartBreak:  timer.StartBreak,
			OnPauseResume: timer.PauseOrResume,
			OnReset:       timer.Reset,
			OnQuit:        fyneApp.Quit,
		})
		trayManager.Update(keeper.Snapshot())
	} else {
		logger.Debug("system tray unsupported on this platform")
	}

	go guard.Serve(func() {
		fyne.Do(timer.Show)
	})
	go timer.Listen(keeper.Subscribe(64))

	logger.Info("timer ready",
		"work_minutes", store.Get().WorkMinutes,
		"break_minutes", store.Get().BreakMinutes,
		"sound", cfg.Sound.Enabled,
	)
	timer.Window().SetMaster()
	timer.Window().ShowAndRun()

	keeper.Close()
	beeper.Wait()
	return nil
}
