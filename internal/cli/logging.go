package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/faizmokh/timers/internal/tracker"
)

func newLogCommand(ctx context.Context, deps *Deps) *cobra.Command {
	var (
		atFlag string
		yes    bool
	)

	cmd := &cobra.Command{
		Use:   "log <name|@id>",
		Short: "Start logging time on a new task, or resume an existing one.",
		Long:  "log creates a task named by the arguments and starts logging on it. Pass @id to continue logging on an existing task. A task that is already logging is stopped first.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tr := deps.Tracker
			target := strings.Join(args, " ")

			at, err := resolveAt(atFlag, tr.Now())
			if err != nil {
				return err
			}

			var id int
			resume := strings.HasPrefix(target, "@")
			if resume {
				if id, err = parseTaskID(target); err != nil {
					return err
				}
				if _, err := tr.Repo().GetTask(ctx, id); err != nil {
					if errors.Is(err, tracker.ErrTaskNotFound) {
						return fmt.Errorf("task @%d does not exist", id)
					}
					return err
				}
			} else if strings.TrimSpace(target) == "" {
				return errors.New("cannot create empty task")
			} else if err := tracker.ValidateName(target); err != nil {
				return err
			}

			proceed, err := confirmSwitch(ctx, cmd, deps, at, yes)
			if err != nil || !proceed {
				return err
			}

			var task tracker.Task
			if resume {
				task, err = tr.SwitchToTaskAt(ctx, id, at)
			} else {
				task, err = tr.SwitchToNewTaskAt(ctx, target, at)
			}
			if err != nil {
				return err
			}

			printStatus(cmd, task, tr.Now(), deps.styles(cmd))
			return nil
		},
	}

	cmd.Flags().StringVar(&atFlag, "at", "", "Start time: HH:MM[:SS], YYYY-MM-DD HH:MM, +/-duration, y prefix for yesterday")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Stop the current task without asking")

	return cmd
}

// confirmSwitch asks before the running task is stopped at at, unless yes is
// set. It reports false when the user declined. Nothing is written here.
func confirmSwitch(ctx context.Context, cmd *cobra.Command, deps *Deps, at time.Time, yes bool) (bool, error) {
	current, err := deps.Tracker.CurrentLogTask(ctx)
	if err != nil {
		return false, err
	}
	if current == nil {
		return true, nil
	}
	if open, ok := current.OpenLog(); ok && at.Before(open.Start) {
		return false, fmt.Errorf("task @%d has been logging since %s: %w",
			current.ID, open.Start.Local().Format(lastLogLayout), tracker.ErrStopBeforeStart)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Currently logging on task %s\n", formatTaskLabel(*current, deps.styles(cmd)))
	if yes {
		return true, nil
	}
	if !deps.interactive() {
		return false, fmt.Errorf("task @%d is logging; pass --yes to switch: %w", current.ID, tracker.ErrAlreadyLogging)
	}
	if !promptYesNo(cmd, deps, "Do you want to start the new task? [y/n] ") {
		fmt.Fprintln(cmd.OutOrStdout(), "aborting")
		return false, nil
	}
	return true, nil
}

func newStopCommand(ctx context.Context, deps *Deps) *cobra.Command {
	var atFlag string

	cmd := &cobra.Command{
		Use:   "stop",
		Short: "Stop logging time on the current task.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tr := deps.Tracker
			at, err := resolveAt(atFlag, tr.Now())
			if err != nil {
				return err
			}

			task, err := tr.StopCurrentTaskAt(ctx, at)
			if err != nil {
				if errors.Is(err, tracker.ErrNotLogging) {
					fmt.Fprintln(cmd.OutOrStdout(), "Cannot stop because you're not logging on any task.")
					return nil
				}
				return err
			}

			printStatus(cmd, task, tr.Now(), deps.styles(cmd))
			return nil
		},
	}

	cmd.Flags().StringVar(&atFlag, "at", "", "Stop time (same forms as log --at)")

	return cmd
}

func newStatusCommand(ctx context.Context, deps *Deps) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the task currently logging.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			task, err := deps.Tracker.CurrentLogTask(ctx)
			if err != nil {
				return err
			}
			if task == nil {
				fmt.Fprintln(cmd.OutOrStdout(), "You are not logging on any task.")
				return nil
			}
			printStatus(cmd, *task, deps.Tracker.Now(), deps.styles(cmd))
			return nil
		},
	}
}
