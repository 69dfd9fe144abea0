package cli

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/faizmokh/timers/internal/config"
	"github.com/faizmokh/timers/internal/report"
	"github.com/faizmokh/timers/internal/timeparse"
	"github.com/faizmokh/timers/internal/tracker"
	"github.com/faizmokh/timers/internal/ui"
)

const lastLogLayout = "Mon Jan 02 15:04"

func (d *Deps) config() *config.Config {
	if d.Config == nil {
		d.Config = config.Default()
	}
	return d.Config
}

func (d *Deps) styles(cmd *cobra.Command) ui.Styles {
	return ui.NewStyles(ui.NewRenderer(cmd.OutOrStdout(), d.config().UI.Color))
}

// resolveAt returns now when flag is empty, otherwise the parsed time relative
// to now in the local zone.
func resolveAt(flag string, now time.Time) (time.Time, error) {
	if strings.TrimSpace(flag) == "" {
		return now, nil
	}
	return timeparse.ParseTime(flag, now.Local())
}

// resolveBound parses a --from/--to value. Besides the timeparse grammar it
// accepts the keywords now, today (local midnight), yesterday and week (start
// of the current week).
func resolveBound(flag string, fallback, now time.Time, firstDay time.Weekday) (time.Time, error) {
	value := strings.TrimSpace(flag)
	local := now.Local()
	midnight := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, local.Location())

	switch strings.ToLower(value) {
	case "":
		return fallback, nil
	case "now":
		return now, nil
	case "today":
		return midnight.UTC(), nil
	case "yesterday":
		return midnight.AddDate(0, 0, -1).UTC(), nil
	case "week":
		return report.WeekStart(local, firstDay, 0).UTC(), nil
	}
	return timeparse.ParseTime(value, local)
}

func resolveWindow(cmd *cobra.Command, deps *Deps, fromFlag, toFlag string, defaultFrom, defaultTo time.Time) (time.Time, time.Time, error) {
	now := deps.Tracker.Now()
	firstDay, err := deps.config().FirstWeekday()
	if err != nil {
		return time.Time{}, time.Time{}, err
	}

	from, err := resolveBound(fromFlag, defaultFrom, now, firstDay)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("--from: %w", err)
	}
	to, err := resolveBound(toFlag, defaultTo, now, firstDay)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("--to: %w", err)
	}
	if to.Before(from) {
		return time.Time{}, time.Time{}, fmt.Errorf("--to %s is before --from %s", to.Local().Format(time.DateTime), from.Local().Format(time.DateTime))
	}
	return from, to, nil
}

// parseTaskID accepts "@<id>" with a positive decimal id.
func parseTaskID(arg string) (int, error) {
	id, err := strconv.Atoi(strings.TrimPrefix(arg, "@"))
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("'%s' is an invalid task ID", arg)
	}
	return id, nil
}

func formatTaskLabel(task tracker.Task, styles ui.Styles) string {
	id := fmt.Sprintf("@%d:", task.ID)
	if task.Status() == tracker.StatusLogging {
		return styles.ActiveID.Render(id) + " " + styles.ActiveName.Render(task.Name)
	}
	return id + " " + task.Name
}

func printStatus(cmd *cobra.Command, task tracker.Task, now time.Time, styles ui.Styles) {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, formatTaskLabel(task, styles))
	fmt.Fprintf(out, "status: %s\n", styles.Bold.Render(task.Status().String()))
	fmt.Fprintf(out, "time: %s\n", styles.Bold.Render(tracker.FormatDuration(task.Duration(now))))
}

func printTask(cmd *cobra.Command, task tracker.Task, styles ui.Styles) {
	fmt.Fprintf(cmd.OutOrStdout(), "%s [%s]\n", formatTaskLabel(task, styles), task.Status())
}

func printTaskLong(cmd *cobra.Command, task tracker.Task, now time.Time, styles ui.Styles) {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, formatTaskLabel(task, styles))
	fmt.Fprintf(out, "  status: %s\n", task.Status())
	fmt.Fprintf(out, "  duration: %s\n", tracker.FormatDuration(task.Duration(now)))
	if last, ok := task.LastLog(); ok {
		fmt.Fprintf(out, "  last log: %s\n", last.Start.Local().Format(lastLogLayout))
	} else {
		fmt.Fprintln(out, "  last log: never")
	}
}

// promptYesNo writes message and reads one line. Anything but "n" or "no" is
// a yes.
func promptYesNo(cmd *cobra.Command, deps *Deps, message string) bool {
	fmt.Fprint(cmd.OutOrStdout(), message)
	answer, _ := bufio.NewReader(deps.stdin()).ReadString('\n')
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer != "n" && answer != "no"
}
