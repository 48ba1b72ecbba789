package main

import (
	"embed"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	"github.com/wailsapp/wails/v3/pkg/application"
	"github.com/wailsapp/wails/v3/pkg/events"
	"go.aimuz.me/vimualizer/config"
	"go.aimuz.me/vimualizer/internal/app"
)

//go:embed all:frontend/dist
var assets embed.FS

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// CLI holds the command line flags. Flags only affect the current session.
type CLI struct {
	Config    string `help:"Path to the config file." type:"path" env:"VIMUALIZER_CONFIG"`
	LogLevel  string `help:"Minimum log level." enum:"debug,info,warn,error" default:"info" env:"VIMUALIZER_LOG_LEVEL"`
	LogFormat string `help:"Log output format." enum:"text,json" default:"text"`
	Disabled  bool   `help:"Start with key recording turned off."`
	HideHUD   bool   `name:"hide-hud" help:"Start with the HUD hidden."`
	Headless  bool   `help:"Run without windows and log the key history instead."`

	Version kong.VersionFlag `help:"Print version and exit."`
}

func main() {
	var cli CLI
	kong.Parse(&cli,
		kong.Name("vimualizer"),
		kong.Description("Floating HUD that shows your recent key presses."),
		kong.UsageOnError(),
		kong.Vars{"version": version + " (" + commit + ", " + date + ")"},
	)

	slog.SetDefault(newLogger(os.Stderr, cli.LogLevel, cli.LogFormat))
	slog.Info("starting app", "version", version, "commit", commit, "date", date)

	cfg := loadConfig(cli.Config)
	if cli.Disabled {
		cfg.MasterEnabled = false
	}
	if cli.HideHUD {
		cfg.HUDEnabled = false
	}

	if cli.Headless {
		if err := runHeadless(cfg); err != nil {
			slog.Error("run headless", "error", err)
			os.Exit(1)
		}
		return
	}

	runApp(cfg)
}

func loadConfig(path string) *config.Config {
	var (
		cfg *config.Config
		err error
	)
	if path != "" {
		cfg, err = config.LoadFrom(path)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		slog.Error("load config", "error", err)
		return config.Default()
	}
	return cfg
}

// ─────────────────────────────────────────────────────────────────────────────
// Main Entry
// ─────────────────────────────────────────────────────────────────────────────

func runApp(cfg *config.Config) {
	appService := app.New(version, cfg)

	wailsApp := application.New(application.Options{
		Name:        "Vimualizer",
		Description: "Key history HUD",
		Services: []application.Service{
			application.NewService(appService),
		},
		Assets: application.AssetOptions{
			Handler: application.BundledAssetFileServer(assets),
		},
		Mac: application.MacOptions{
			ActivationPolicy: application.ActivationPolicyRegular,
			// Don't quit when all windows are closed (we have a system tray)
			ApplicationShouldTerminateAfterLastWindowClosed: false,
		},
	})

	// Floating HUD, above other windows and without chrome
	hudWindow := wailsApp.Window.NewWithOptions(application.WebviewWindowOptions{
		Name:           "hud",
		Title:          "Vimualizer",
		Width:          600,
		Height:         200,
		URL:            "/",
		Frameless:      true,
		AlwaysOnTop:    true,
		DisableResize:  true,
		BackgroundType: application.BackgroundTypeTransparent,
		Mac: application.MacWindow{
			Backdrop:    application.MacBackdropTransparent,
			WindowLevel: application.MacWindowLevelFloating,
		},
	})

	settingsWindow := wailsApp.Window.NewWithOptions(application.WebviewWindowOptions{
		Name:          "settings",
		Title:         "Vimualizer Settings",
		Width:         450,
		Height:        500,
		URL:           "/#/settings",
		Hidden:        true,
		DisableResize: true,
		Mac: application.MacWindow{
			TitleBar:                application.MacTitleBarHiddenInsetUnified,
			InvisibleTitleBarHeight: 38,
		},
	})

	// Intercept window close: hide instead of destroy so the hotkey can reopen
	settingsWindow.RegisterHook(events.Common.WindowClosing, func(e *application.WindowEvent) {
		e.Cancel()
		settingsWindow.Hide()
	})

	// Initialize service with app and window references
	appService.Init(wailsApp, hudWindow, settingsWindow)

	// Setup system tray
	systemTray := wailsApp.SystemTray.New()
	systemTray.SetLabel("⌨")

	trayMenu := wailsApp.NewMenu()
	trayMenu.Add("Settings…").
		SetAccelerator("CmdOrCtrl+,").
		OnClick(func(ctx *application.Context) {
			appService.ShowSettings()
		})
	trayMenu.AddCheckbox("Enable Vimualizer", cfg.MasterEnabled).OnClick(func(ctx *application.Context) {
		if err := appService.SetMasterEnabled(ctx.ClickedMenuItem().Checked()); err != nil {
			slog.Error("set master enabled", "error", err)
		}
	})
	trayMenu.AddCheckbox("Show Key Hints", cfg.HUDEnabled).OnClick(func(ctx *application.Context) {
		if err := appService.SetHUDVisible(ctx.ClickedMenuItem().Checked()); err != nil {
			slog.Error("set hud visible", "error", err)
		}
	})
	trayMenu.Add("Retry Key Capture").OnClick(func(ctx *application.Context) {
		status := appService.RetryTap()
		slog.Info("retry key capture", "status", status.Status, "trusted", status.Trusted)
	})

	trayMenu.AddSeparator()
	trayMenu.Add("Quit").
		SetAccelerator("CmdOrCtrl+Q").
		OnClick(func(ctx *application.Context) {
			appService.Shutdown()
			wailsApp.Quit()
		})

	systemTray.SetMenu(trayMenu)

	// Run application
	if err := wailsApp.Run(); err != nil {
		slog.Error("run app", "error", err)
	}
}
