// Package main is the entry point for the diffstatus binary.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/theiostream/diffstatus/internal/buildinfo"
	"github.com/theiostream/diffstatus/internal/config"
	"github.com/theiostream/diffstatus/internal/git"
	"github.com/theiostream/diffstatus/internal/log"
	"github.com/theiostream/diffstatus/internal/status"
	"github.com/theiostream/diffstatus/internal/theme"
	urfavecli "github.com/urfave/cli/v2"
	"golang.org/x/term"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
	builtBy = "unknown"
)

func main() {
	buildinfo.Set(version, commit, date, builtBy)

	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

func newApp() *urfavecli.App {
	app := &urfavecli.App{
		Name:      "diffstatus",
		Usage:     "Show per-file staged and unstaged diffstat for a git repository",
		ArgsUsage: "[pathspec...]",
		Version:   buildinfo.Version(),
		Flags:     globalFlags(),
		Action:    run,
	}

	urfavecli.VersionPrinter = func(c *urfavecli.Context) {
		fmt.Fprintln(c.App.Writer, buildinfo.Describe())
	}

	return app
}

func run(c *urfavecli.Context) error {
	if !c.Bool("status") {
		_ = urfavecli.ShowAppHelp(c)
		return urfavecli.Exit("", 2)
	}

	// Set up debug logging before loading config
	if debugLog := c.String("debug-log"); debugLog != "" {
		if err := log.SetFile(debugLog); err != nil {
			fmt.Fprintf(os.Stderr, "Error opening debug log file %q: %v\n", debugLog, err)
		}
	}
	defer func() { _ = log.Close() }()

	cfg, err := config.LoadConfig(c.String("config-file"))
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// If the debug log wasn't set via flag, honor the config value.
	if c.String("debug-log") == "" {
		_ = log.SetFile(cfg.DebugLog)
	}

	if themeName := c.String("theme"); themeName != "" {
		if !theme.IsKnown(themeName) {
			return fmt.Errorf("unknown theme %q", themeName)
		}
		cfg.Theme = themeName
	}

	// CLI config overrides take the highest precedence.
	if overrides := c.StringSlice("config"); len(overrides) > 0 {
		if err := cfg.ApplyCLIOverrides(overrides); err != nil {
			return fmt.Errorf("applying config overrides: %w", err)
		}
	}

	th, err := cfg.BuildTheme()
	if err != nil {
		return err
	}

	decorate := !cfg.NoColor && !c.Bool("no-color") && term.IsTerminal(int(os.Stdout.Fd()))

	svc := git.NewService(c.String("directory"))
	collector := status.NewCollector(svc, c.Args().Slice())
	reporter := status.NewReporter(c.App.Writer, th.HeaderStyle(decorate))

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	renderOnce := func() {
		store := status.NewStore()
		if collector.Run(ctx, store) {
			reporter.Render(store)
		}
	}

	renderOnce()

	if !c.Bool("watch") {
		return nil
	}

	debounce := time.Duration(cfg.WatchDebounceMS) * time.Millisecond
	watcher := status.NewWatcher(svc, debounce)
	started, err := watcher.Start(ctx)
	if err != nil {
		return fmt.Errorf("starting watcher: %w", err)
	}
	if !started {
		return nil
	}
	defer watcher.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-watcher.Events():
			if !watcher.ShouldRefresh(time.Now()) {
				continue
			}
			renderOnce()
		}
	}
}
