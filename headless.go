package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"go.aimuz.me/vimualizer/config"
	"go.aimuz.me/vimualizer/tap"
	"go.aimuz.me/vimualizer/visualizer"
)

// headlessQueue is the number of pending state updates the console loop holds.
const headlessQueue = 256

// runHeadless captures keys without any window and logs each state change.
func runHeadless(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	loop := visualizer.NewLoop(headlessQueue)
	core := visualizer.New(tap.New(), loop,
		visualizer.WithMasterEnabled(cfg.MasterEnabled),
		visualizer.WithHUDVisible(cfg.HUDEnabled),
		visualizer.WithSettingsHandler(func() {
			slog.Info("settings hotkey pressed, no settings window in headless mode")
		}),
	)
	core.Subscribe(func(s visualizer.State) {
		if !s.HUDVisible {
			return
		}
		slog.Info(s.Mode, "keys", strings.Join(s.History, " "))
	})

	if !tap.AccessibilityTrusted(true) {
		slog.Warn("accessibility permission missing")
	}
	if err := core.Start(); err != nil {
		return fmt.Errorf("start visualizer: %w", err)
	}
	defer func() {
		if err := core.Stop(); err != nil {
			slog.Error("stop visualizer", "error", err)
		}
	}()

	slog.Info("capturing keys, press Ctrl+C to quit", "enabled", cfg.MasterEnabled)
	if err := loop.Run(ctx); !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
