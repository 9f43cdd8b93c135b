// Package main is the entry point for the Clutter dashboard TUI.
// It loads configuration, wires the backend services and runs the Bubble Tea program.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/j-veylop/clutter-dashboard-tui/internal/app"
	"github.com/j-veylop/clutter-dashboard-tui/internal/config"
	"github.com/j-veylop/clutter-dashboard-tui/internal/logger"
	"github.com/j-veylop/clutter-dashboard-tui/internal/services"
	"github.com/j-veylop/clutter-dashboard-tui/internal/ui/pages/addsite"
	"github.com/j-veylop/clutter-dashboard-tui/internal/ui/pages/dashboard"
	"github.com/j-veylop/clutter-dashboard-tui/internal/ui/pages/info"
	"github.com/j-veylop/clutter-dashboard-tui/internal/ui/pages/login"
	"github.com/j-veylop/clutter-dashboard-tui/internal/ui/pages/signup"
	"github.com/j-veylop/clutter-dashboard-tui/internal/ui/pages/sites"
	"github.com/j-veylop/clutter-dashboard-tui/internal/ui/pages/verify"
	"github.com/j-veylop/clutter-dashboard-tui/internal/version"
)

var forSite string

var rootCmd = &cobra.Command{
	Use:   "clutter",
	Short: "Clutter analytics dashboard in your terminal",
	Long: `Clutter Dashboard TUI - website analytics for your Clutter sites

Keyboard Shortcuts:
  1-4             Switch between Dashboard, Sites, Add Site and Info
  Tab/Shift+Tab   Cycle pages or form fields
  n/p             Next/previous site on the dashboard
  a               Add a site
  r               Refresh data
  ?               Toggle help
  q, Ctrl+C       Quit

Environment Variables:
  CLUTTER_API_URL          Backend origin (default: https://studio.phy0.in)
  CLUTTER_TRACKER_URL      Tracker script used in snippets
  CLUTTER_DB_PATH          SQLite session database path
  CLUTTER_LOG_PATH         Log file path
  CLUTTER_LOG_LEVEL        debug, info, warn or error (default: info)
  CLUTTER_REQUEST_TIMEOUT  Per-request timeout, 0 disables (default: 0)
  CLUTTER_NOTIFY           Desktop notifications on session changes (default: true)

Configuration:
  A .env file is read from the first of these locations that exists:
  - Current directory
  - ~/.config/clutter-tui/.env
  - ~/.clutter/.env`,
	Version:       version.Info(),
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(*cobra.Command, []string) error {
		return run(forSite)
	},
}

func init() {
	rootCmd.Flags().StringVar(&forSite, "for", "", "open the dashboard on this site ID")
	rootCmd.SetVersionTemplate("{{.Version}}\n")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(siteID string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logFile, err := logger.Setup(cfg.LogPath, cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logFile.Close()

	logger.Info("starting", "version", version.GetVersion(), "api", cfg.APIURL)

	svcManager, err := services.NewManager(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize services: %w", err)
	}
	defer func() {
		if closeErr := svcManager.Close(); closeErr != nil {
			fmt.Fprintf(os.Stderr, "Warning: error closing services: %v\n", closeErr)
		}
	}()

	model := app.NewModel(svcManager)
	sess := svcManager.Session()
	siteAPI := svcManager.Sites()

	model.SetPage(app.PageDashboard, dashboard.New(sess, siteAPI))
	model.SetPage(app.PageSites, sites.New(siteAPI))
	model.SetPage(app.PageAddSite, addsite.New(siteAPI, cfg.TrackerURL))
	model.SetPage(app.PageInfo, info.New(model.GetState(), cfg, sess))
	model.SetPage(app.PageLogin, login.New(sess))
	model.SetPage(app.PageSignup, signup.New(sess))
	model.SetPage(app.PageVerify, verify.New(sess))
	model.SetStartPage(app.PageDashboard, app.NavigateParams{SiteID: siteID})

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	go func() {
		<-sigChan
		p.Send(tea.Quit())
	}()

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	logger.Info("exiting")
	return nil
}
