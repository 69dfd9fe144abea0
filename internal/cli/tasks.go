package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/faizmokh/timers/internal/report"
	"github.com/faizmokh/timers/internal/tracker"
)

func newTasksCommand(ctx context.Context, deps *Deps) *cobra.Command {
	var (
		long     bool
		fromFlag string
		toFlag   string
	)

	cmd := &cobra.Command{
		Use:   "tasks",
		Short: "List tasks by ID.",
		Long:  "tasks lists every task, or with --from/--to only tasks with a log starting or ending inside the window. Corrupt task files are reported on stderr and skipped.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tr := deps.Tracker
			tasks, corrupt, err := tr.Repo().ScanTasks(ctx)
			if err != nil {
				return err
			}
			for _, decodeErr := range corrupt {
				fmt.Fprintf(cmd.ErrOrStderr(), "skipping %v\n", decodeErr)
			}

			now := tr.Now()
			if fromFlag != "" || toFlag != "" {
				from, to, err := resolveWindow(cmd, deps, fromFlag, toFlag, report.DefaultFrom, report.DefaultTo)
				if err != nil {
					return err
				}
				tasks = tracker.TasksBetween(tasks, from, to, now)
			}

			if len(tasks) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No tasks.")
				return nil
			}

			styles := deps.styles(cmd)
			for _, task := range tracker.SortedTasks(tasks) {
				if long {
					printTaskLong(cmd, task, now, styles)
				} else {
					printTask(cmd, task, styles)
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&long, "long", "l", false, "Show status, duration and last log for each task")
	cmd.Flags().StringVar(&fromFlag, "from", "", "Window start (time, or today|yesterday|week|now)")
	cmd.Flags().StringVar(&toFlag, "to", "", "Window end (time, or today|yesterday|week|now)")

	return cmd
}

func newCheckCommand(ctx context.Context, deps *Deps) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Decode every task file and report corrupt ones.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tasks, corrupt, err := deps.Tracker.Repo().ScanTasks(ctx)
			if err != nil {
				return err
			}
			for _, decodeErr := range corrupt {
				fmt.Fprintf(cmd.OutOrStdout(), "corrupt: %v\n", decodeErr)
			}

			logging := 0
			for _, task := range tasks {
				if task.Status() == tracker.StatusLogging {
					logging++
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d task file(s) ok, %d corrupt\n", len(tasks), len(corrupt))
			if logging > 1 {
				fmt.Fprintf(cmd.OutOrStdout(), "warning: %d tasks are logging at once\n", logging)
			}

			if len(corrupt) > 0 {
				return fmt.Errorf("%d corrupt task file(s): %w", len(corrupt), tracker.ErrCorruptTask)
			}
			return nil
		},
	}
}
