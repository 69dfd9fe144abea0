package report

import (
	"fmt"
	"io"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/faizmokh/timers/internal/tracker"
	"github.com/faizmokh/timers/internal/ui"
)

const (
	// DefaultWidth is used when neither a flag nor the terminal gives a width.
	DefaultWidth = 80

	maxLabelWidth = 24
	minBarWidth   = 10
	localLayout   = "Mon Jan 02 15:04"
)

// Timeline is the input of RenderTimeline.
type Timeline struct {
	Start time.Time
	End   time.Time
	Now   time.Time
	Logs  []tracker.TaskLog
	Total time.Duration
	Width int
}

// RenderTimeline draws one row per log: the task label, then a bar where cells
// covered by the log are '#' and the rest '.'.
func RenderTimeline(w io.Writer, timeline Timeline, styles ui.Styles) error {
	width := timeline.Width
	if width <= 0 {
		width = DefaultWidth
	}

	labels := make([]string, len(timeline.Logs))
	labelWidth := 0
	for i, pair := range timeline.Logs {
		labels[i] = truncate(fmt.Sprintf("@%d %s", pair.Task.ID, pair.Task.Name), maxLabelWidth)
		if n := utf8.RuneCountInString(labels[i]); n > labelWidth {
			labelWidth = n
		}
	}
	cells := width - labelWidth - 1
	if cells < minBarWidth {
		cells = minBarWidth
	}

	header := fmt.Sprintf("%s → %s", timeline.Start.Local().Format(localLayout), timeline.End.Local().Format(localLayout))
	if _, err := fmt.Fprintln(w, styles.Bold.Render(header)); err != nil {
		return err
	}

	if len(timeline.Logs) == 0 {
		if _, err := fmt.Fprintln(w, styles.Muted.Render("(no logs)")); err != nil {
			return err
		}
	}
	for i, pair := range timeline.Logs {
		label := labels[i] + strings.Repeat(" ", labelWidth-utf8.RuneCountInString(labels[i]))
		bar := Bar(pair.Log, timeline.Start, timeline.End, timeline.Now, cells)
		if pair.Open {
			label = styles.ActiveName.Render(label)
		}
		if _, err := fmt.Fprintf(w, "%s %s\n", label, bar); err != nil {
			return err
		}
	}

	_, err := fmt.Fprintf(w, "Total: %s\n", tracker.FormatDuration(timeline.Total))
	return err
}

// Bar splits [start, end) into cells equal slices and marks the ones the log
// overlaps.
func Bar(log tracker.Log, start, end, now time.Time, cells int) string {
	if cells <= 0 {
		return ""
	}
	span := end.Sub(start)
	if span <= 0 {
		return strings.Repeat(".", cells)
	}

	logEnd := log.EffectiveEnd(now)
	var builder strings.Builder
	builder.Grow(cells)
	for i := 0; i < cells; i++ {
		cellStart := start.Add(time.Duration(float64(span) * float64(i) / float64(cells)))
		cellEnd := start.Add(time.Duration(float64(span) * float64(i+1) / float64(cells)))
		if log.Start.Before(cellEnd) && logEnd.After(cellStart) {
			builder.WriteByte('#')
		} else {
			builder.WriteByte('.')
		}
	}
	return builder.String()
}

func truncate(text string, limit int) string {
	if utf8.RuneCountInString(text) <= limit {
		return text
	}
	runes := []rune(text)
	return string(runes[:limit-1]) + "…"
}
