package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/faizmokh/timers/internal/config"
	"github.com/faizmokh/timers/internal/files"
	"github.com/faizmokh/timers/internal/tracker"
	"github.com/faizmokh/timers/internal/version"
)

// Deps carries what commands need. Nil fields are filled in from the config
// file and environment before any subcommand runs.
type Deps struct {
	Tracker *tracker.Tracker
	Config  *config.Config

	// Stdin feeds the confirmation prompt.
	Stdin io.Reader
	// Interactive reports whether the user can answer a prompt.
	Interactive func() bool
}

func (d *Deps) interactive() bool {
	if d.Interactive != nil {
		return d.Interactive()
	}
	return isatty.IsTerminal(os.Stdin.Fd()) && isatty.IsTerminal(os.Stdout.Fd())
}

func (d *Deps) stdin() io.Reader {
	if d.Stdin != nil {
		return d.Stdin
	}
	return os.Stdin
}

// NewRootCommand creates the top-level Cobra command hosting every subcommand.
func NewRootCommand(ctx context.Context, deps *Deps) *cobra.Command {
	var (
		verbose    bool
		configPath string
	)

	cmd := &cobra.Command{
		Use:     "timers",
		Short:   "Track time spent on tasks from your terminal.",
		Version: version.Info(),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			configureLogging(cmd.ErrOrStderr(), verbose)
			return deps.resolve(configPath)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging on stderr")
	cmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default: $TIMERS_CONFIG or <config dir>/timers/config.toml)")

	cmd.AddCommand(
		newLogCommand(ctx, deps),
		newStopCommand(ctx, deps),
		newStatusCommand(ctx, deps),
		newTasksCommand(ctx, deps),
		newReportCommand(ctx, deps),
		newExportCommand(ctx, deps),
		newTimelineCommand(ctx, deps),
		newWatchCommand(ctx, deps),
		newCheckCommand(ctx, deps),
		newVersionCommand(),
	)

	return cmd
}

func (d *Deps) resolve(configPath string) error {
	if d.Config == nil {
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}
		d.Config = cfg
	}
	if d.Tracker == nil {
		dir, err := d.Config.ResolveDataDir()
		if err != nil {
			return fmt.Errorf("resolve data dir: %w", err)
		}
		manager, err := files.NewManager(dir)
		if err != nil {
			return err
		}
		slog.Debug("using data dir", "path", manager.BasePath())
		d.Tracker = tracker.New(tracker.NewRepo(manager))
	}
	return nil
}

func configureLogging(w io.Writer, verbose bool) {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})))
}

// ExecuteCommand is a thin wrapper that executes the Cobra root command.
func ExecuteCommand(ctx context.Context) error {
	cmd := NewRootCommand(ctx, &Deps{})
	return cmd.ExecuteContext(ctx)
}

// Main is a helper used by cmd/timers/main.go to keep wiring contained in one package.
func Main(ctx context.Context) {
	if err := ExecuteCommand(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
