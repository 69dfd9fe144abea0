package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/x/term"
	"github.com/spf13/cobra"

	"github.com/faizmokh/timers/internal/config"
	"github.com/faizmokh/timers/internal/report"
)

func newReportCommand(ctx context.Context, deps *Deps) *cobra.Command {
	var (
		plain bool
		week  int
	)

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Report time logged per day of the week.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			firstDay, err := deps.config().FirstWeekday()
			if err != nil {
				return err
			}
			tasks, err := deps.Tracker.AllTasks(ctx)
			if err != nil {
				return err
			}

			now := deps.Tracker.Now()
			start := report.WeekStart(now.Local(), firstDay, week)
			return report.RenderWeek(cmd.OutOrStdout(), report.BuildWeek(tasks, start, now), deps.styles(cmd), plain)
		},
	}

	cmd.Flags().BoolVar(&plain, "plain", false, "Only print the day rows")
	cmd.Flags().IntVar(&week, "week", 0, "Week offset from the current one (-1 is last week)")

	return cmd
}

func newExportCommand(ctx context.Context, deps *Deps) *cobra.Command {
	var (
		fromFlag  string
		toFlag    string
		output    string
		delimiter string
		format    string
	)

	cmd := &cobra.Command{
		Use:       "export <tasks|logs>",
		Short:     "Export tasks or logs as CSV, JSON or YAML.",
		Long:      "export writes the tasks having a log starting or ending inside the window, one row per task or per log. Durations are in hours and timestamps in UTC.",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{string(report.ObjectTasks), string(report.ObjectLogs)},
		RunE: func(cmd *cobra.Command, args []string) error {
			object, err := report.ParseObject(args[0])
			if err != nil {
				return err
			}

			cfg := deps.config()
			if !cmd.Flags().Changed("delimiter") {
				delimiter = cfg.Export.Delimiter
			}
			if !cmd.Flags().Changed("format") {
				format = cfg.Export.Format
			}
			comma, err := config.ParseDelimiter(delimiter)
			if err != nil {
				return err
			}

			from, to, err := resolveWindow(cmd, deps, fromFlag, toFlag, report.DefaultFrom, report.DefaultTo)
			if err != nil {
				return err
			}
			tasks, err := deps.Tracker.AllTasksBetween(ctx, from, to)
			if err != nil {
				return err
			}

			var w io.Writer = cmd.OutOrStdout()
			if output != "" {
				file, err := os.Create(output)
				if err != nil {
					return fmt.Errorf("create %s: %w", output, err)
				}
				defer file.Close()
				w = file
			}

			opts := report.ExportOptions{Object: object, Format: format, Delimiter: comma}
			if err := report.Export(w, tasks, deps.Tracker.Now(), opts); err != nil {
				return err
			}
			if output != "" {
				fmt.Fprintf(cmd.ErrOrStderr(), "Exported %d task(s) to %s\n", len(tasks), output)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&fromFlag, "from", "", "Window start (default 1900-01-01)")
	cmd.Flags().StringVar(&toFlag, "to", "", "Window end (default 2100-01-01)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write to a file instead of stdout")
	cmd.Flags().StringVarP(&delimiter, "delimiter", "d", ",", "CSV field delimiter")
	cmd.Flags().StringVarP(&format, "format", "f", config.FormatCSV, "Output format: csv|json|yaml")

	return cmd
}

func newTimelineCommand(ctx context.Context, deps *Deps) *cobra.Command {
	var (
		fromFlag string
		toFlag   string
		width    int
	)

	cmd := &cobra.Command{
		Use:   "timeline",
		Short: "Draw the logs of a window as an ASCII timeline.",
		Long:  "timeline draws one bar per log overlapping the window, today by default.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			now := deps.Tracker.Now()
			local := now.Local()
			midnight := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, local.Location())

			from, to, err := resolveWindow(cmd, deps, fromFlag, toFlag, midnight.UTC(), midnight.AddDate(0, 0, 1).UTC())
			if err != nil {
				return err
			}
			logs, err := deps.Tracker.AllLogsBetween(ctx, from, to)
			if err != nil {
				return err
			}
			total, err := deps.Tracker.TotalDuration(ctx, from, to)
			if err != nil {
				return err
			}

			return report.RenderTimeline(cmd.OutOrStdout(), report.Timeline{
				Start: from,
				End:   to,
				Now:   now,
				Logs:  logs,
				Total: total,
				Width: timelineWidth(width),
			}, deps.styles(cmd))
		},
	}

	cmd.Flags().StringVar(&fromFlag, "from", "", "Window start (default today 00:00)")
	cmd.Flags().StringVar(&toFlag, "to", "", "Window end (default tomorrow 00:00)")
	cmd.Flags().IntVarP(&width, "width", "w", 0, "Total line width (default: terminal width)")

	return cmd
}

func timelineWidth(flag int) int {
	if flag > 0 {
		return flag
	}
	fd := os.Stdout.Fd()
	if term.IsTerminal(fd) {
		if w, _, err := term.GetSize(fd); err == nil && w > 0 {
			return w
		}
	}
	return report.DefaultWidth
}
