package report

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/faizmokh/timers/internal/config"
	"github.com/faizmokh/timers/internal/tracker"
	"github.com/faizmokh/timers/internal/ui"
)

func TestBar(t *testing.T) {
	start := time.Date(2025, time.November, 3, 8, 0, 0, 0, time.UTC)
	end := start.Add(10 * time.Hour)

	tests := []struct {
		name string
		log  tracker.Log
		now  time.Time
		want string
	}{
		{
			name: "first hour",
			log:  tracker.Log{Start: start, End: ptr(start.Add(time.Hour))},
			want: "#.........",
		},
		{
			name: "middle",
			log:  tracker.Log{Start: start.Add(3 * time.Hour), End: ptr(start.Add(5 * time.Hour))},
			want: "...##.....",
		},
		{
			name: "partial cells round outward",
			log:  tracker.Log{Start: start.Add(90 * time.Minute), End: ptr(start.Add(150 * time.Minute))},
			want: ".##.......",
		},
		{
			name: "open log ends at now",
			log:  tracker.Log{Start: start.Add(8 * time.Hour)},
			now:  start.Add(9 * time.Hour),
			want: "........#.",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Bar(tc.log, start, end, tc.now, 10); got != tc.want {
				t.Fatalf("Bar() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestRenderTimeline(t *testing.T) {
	start := time.Date(2025, time.November, 3, 8, 0, 0, 0, time.UTC)
	end := start.Add(10 * time.Hour)
	task := tracker.Task{ID: 7, Name: "Deploy"}

	var buf bytes.Buffer
	err := RenderTimeline(&buf, Timeline{
		Start: start,
		End:   end,
		Now:   end,
		Logs: []tracker.TaskLog{
			{Task: task, Log: tracker.Log{Start: start, End: ptr(start.Add(2 * time.Hour))}},
		},
		Total: 2 * time.Hour,
		Width: 20,
	}, ui.PlainStyles())
	if err != nil {
		t.Fatalf("RenderTimeline: %v", err)
	}

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("RenderTimeline lines = %d, want 3:\n%s", len(lines), buf.String())
	}
	if lines[1] != "@7 Deploy ##........" {
		t.Fatalf("row = %q", lines[1])
	}
	if lines[2] != "Total: 2h 0m 0s" {
		t.Fatalf("footer = %q", lines[2])
	}
}

func TestRenderTimelineStylesRunningLogPastWindow(t *testing.T) {
	start := time.Date(2025, time.November, 3, 8, 0, 0, 0, time.UTC)
	end := start.Add(4 * time.Hour)
	now := end.Add(2 * time.Hour)
	tasks := map[int]tracker.Task{
		1: {ID: 1, Name: "Done", Logs: []tracker.Log{{Start: start, End: ptr(start.Add(time.Hour))}}},
		2: {ID: 2, Name: "Running", Logs: []tracker.Log{{Start: start.Add(2 * time.Hour)}}},
	}

	var buf bytes.Buffer
	styles := ui.NewStyles(ui.NewRenderer(&buf, config.ColorAlways))
	err := RenderTimeline(&buf, Timeline{
		Start: start,
		End:   end,
		Now:   now,
		Logs:  tracker.LogsBetween(tasks, start, end, now),
		Width: 40,
	}, styles)
	if err != nil {
		t.Fatalf("RenderTimeline: %v", err)
	}

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("RenderTimeline lines = %d, want 4:\n%s", len(lines), buf.String())
	}
	if strings.Contains(lines[1], "\x1b[") {
		t.Fatalf("closed row styled: %q", lines[1])
	}
	if !strings.Contains(lines[2], "\x1b[") || !strings.Contains(lines[2], "@2 Running") {
		t.Fatalf("running row not styled: %q", lines[2])
	}
}

func TestRenderTimelineEmpty(t *testing.T) {
	start := time.Date(2025, time.November, 3, 8, 0, 0, 0, time.UTC)

	var buf bytes.Buffer
	if err := RenderTimeline(&buf, Timeline{Start: start, End: start.Add(time.Hour)}, ui.PlainStyles()); err != nil {
		t.Fatalf("RenderTimeline: %v", err)
	}
	if !strings.Contains(buf.String(), "(no logs)") || !strings.Contains(buf.String(), "Total: 0s") {
		t.Fatalf("RenderTimeline() =\n%s", buf.String())
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("@1 a very long task name indeed", 10); got != "@1 a very…" {
		t.Fatalf("truncate() = %q", got)
	}
	if got := truncate("short", 10); got != "short" {
		t.Fatalf("truncate() = %q", got)
	}
}
