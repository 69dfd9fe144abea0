// Package report renders read-only views over tracked tasks: the weekly day
// report, CSV/JSON/YAML exports and the ASCII timeline.
package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/faizmokh/timers/internal/tracker"
	"github.com/faizmokh/timers/internal/ui"
)

const (
	dayColumn  = 12
	timeColumn = 14
	ruleWidth  = 34
)

// DayRow summarizes one local calendar day.
type DayRow struct {
	Start    time.Time
	End      time.Time
	Tasks    int
	Duration time.Duration
}

// Week holds one row per day plus totals for the whole week.
type Week struct {
	Start    time.Time
	End      time.Time
	Days     []DayRow
	Tasks    int
	Duration time.Duration
}

// WeekStart returns midnight, in now's location, of the first day of the week
// containing now, shifted by offset weeks.
func WeekStart(now time.Time, first time.Weekday, offset int) time.Time {
	back := (int(now.Weekday()) - int(first) + 7) % 7
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return midnight.AddDate(0, 0, offset*7-back)
}

// BuildWeek computes the report for the seven days starting at start. Days
// are stepped in local calendar time so DST changes produce 23h or 25h days.
func BuildWeek(tasks map[int]tracker.Task, start, now time.Time) Week {
	week := Week{Start: start, End: start.AddDate(0, 0, 7)}
	for i := 0; i < 7; i++ {
		dayStart := start.AddDate(0, 0, i)
		dayEnd := start.AddDate(0, 0, i+1)
		week.Days = append(week.Days, DayRow{
			Start:    dayStart,
			End:      dayEnd,
			Tasks:    len(tracker.TasksBetween(tasks, dayStart, dayEnd, now)),
			Duration: tracker.TotalDuration(tasks, dayStart, dayEnd, now),
		})
	}
	week.Tasks = len(tracker.TasksBetween(tasks, week.Start, week.End, now))
	week.Duration = tracker.TotalDuration(tasks, week.Start, week.End, now)
	return week
}

// RenderWeek writes the report. Plain output drops the header, the rules and
// the total row.
func RenderWeek(w io.Writer, week Week, styles ui.Styles, plain bool) error {
	if !plain {
		if _, err := fmt.Fprintf(w, "%-*s %-*s %s\n%s\n", dayColumn, "DAY", timeColumn, "TIME LOGGED", "TASKS", strings.Repeat("-", ruleWidth)); err != nil {
			return err
		}
	}

	for _, day := range week.Days {
		name := fmt.Sprintf("%-*s", dayColumn, day.Start.Weekday().String())
		style := styles.Weekday
		if isWeekend(day.Start.Weekday()) {
			style = styles.Weekend
		}
		if _, err := fmt.Fprintf(w, "%s %-*s %d\n", style.Render(name), timeColumn, tracker.FormatDuration(day.Duration), day.Tasks); err != nil {
			return err
		}
	}

	if plain {
		return nil
	}
	_, err := fmt.Fprintf(w, "%s\n%-*s %-*s %d\n", strings.Repeat("-", ruleWidth), dayColumn, "Total", timeColumn, tracker.FormatDuration(week.Duration), week.Tasks)
	return err
}

func isWeekend(day time.Weekday) bool {
	return day == time.Saturday || day == time.Sunday
}
