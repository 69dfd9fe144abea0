package tracker

import (
	"context"
	"testing"
	"time"

	"github.com/faizmokh/timers/internal/files"
)

var day = time.Date(2025, time.November, 3, 0, 0, 0, 0, time.UTC)

func at(hour, minute int) time.Time {
	return day.Add(time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute)
}

func ptr(t time.Time) *time.Time {
	return &t
}

func closedLog(start, end time.Time) Log {
	return Log{Start: start, End: ptr(end)}
}

func openLog(start time.Time) Log {
	return Log{Start: start}
}

func newTempRepo(t *testing.T) (*Repo, *files.Manager) {
	t.Helper()
	mgr, err := files.NewManager(t.TempDir())
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	return NewRepo(mgr), mgr
}

func mustCreate(t *testing.T, repo *Repo, name string) Task {
	t.Helper()
	task, err := repo.CreateTask(context.Background(), name)
	if err != nil {
		t.Fatalf("CreateTask(%q): %v", name, err)
	}
	return task
}

func assertSameTask(t *testing.T, got, want Task) {
	t.Helper()
	if got.ID != want.ID || got.Name != want.Name {
		t.Fatalf("task = @%d %q, want @%d %q", got.ID, got.Name, want.ID, want.Name)
	}
	if len(got.Logs) != len(want.Logs) {
		t.Fatalf("task @%d logs len = %d, want %d", got.ID, len(got.Logs), len(want.Logs))
	}
	for i := range want.Logs {
		g, w := got.Logs[i], want.Logs[i]
		if !g.Start.Equal(w.Start) {
			t.Fatalf("log %d start = %s, want %s", i, g.Start, w.Start)
		}
		switch {
		case g.End == nil && w.End == nil:
		case g.End == nil || w.End == nil:
			t.Fatalf("log %d end = %v, want %v", i, g.End, w.End)
		case !g.End.Equal(*w.End):
			t.Fatalf("log %d end = %s, want %s", i, *g.End, *w.End)
		}
	}
}
