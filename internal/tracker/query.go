package tracker

import (
	"sort"
	"time"
)

// TaskLog pairs a log with the task it belongs to. Open reports whether the
// stored log is still running, which a clipped Log no longer shows.
type TaskLog struct {
	Task Task
	Log  Log
	Open bool
}

// SortedTasks returns the tasks ordered by ID.
func SortedTasks(tasks map[int]Task) []Task {
	sorted := make([]Task, 0, len(tasks))
	for _, task := range tasks {
		sorted = append(sorted, task)
	}
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].ID < sorted[j].ID
	})
	return sorted
}

// TasksBetween keeps tasks having a log whose start or effective end lies in
// [start, end]. A log that spans the whole window without an endpoint inside it
// does not qualify; LogsBetween uses a true overlap test instead.
func TasksBetween(tasks map[int]Task, start, end, now time.Time) map[int]Task {
	matched := make(map[int]Task)
	for id, task := range tasks {
		for _, log := range task.Logs {
			if within(log.Start, start, end) || within(log.EffectiveEnd(now), start, end) {
				matched[id] = task
				break
			}
		}
	}
	return matched
}

// LogsBetween flattens every log overlapping [start, end], sorted by start,
// with boundaries clipped to the window. Unlike TasksBetween this is a true
// overlap test, so a log spanning the whole window is returned. Stored logs are
// not modified; clipped copies get their own End.
func LogsBetween(tasks map[int]Task, start, end, now time.Time) []TaskLog {
	var pairs []TaskLog
	for _, task := range SortedTasks(tasks) {
		for _, log := range task.Logs {
			if log.Start.Before(end) && log.EffectiveEnd(now).After(start) {
				pairs = append(pairs, TaskLog{Task: task, Log: log, Open: log.IsOpen()})
			}
		}
	}

	sort.SliceStable(pairs, func(i, j int) bool {
		return pairs[i].Log.Start.Before(pairs[j].Log.Start)
	})

	for i := range pairs {
		if pairs[i].Log.Start.Before(start) {
			pairs[i].Log.Start = start
		}
		if pairs[i].Log.EffectiveEnd(now).After(end) {
			clipped := end
			pairs[i].Log.End = &clipped
		}
	}
	return pairs
}

// TotalDuration sums DurationBetween over every task, not only TasksBetween.
func TotalDuration(tasks map[int]Task, start, end, now time.Time) time.Duration {
	var total time.Duration
	for _, task := range tasks {
		total += task.DurationBetween(start, end, now)
	}
	return total
}

// FindStart returns the earliest first-log start across tasks.
func FindStart(tasks map[int]Task) (time.Time, error) {
	var (
		earliest time.Time
		found    bool
	)
	for _, task := range tasks {
		if len(task.Logs) == 0 {
			continue
		}
		first := task.Logs[0].Start
		if !found || first.Before(earliest) {
			earliest = first
			found = true
		}
	}
	if !found {
		return time.Time{}, ErrNoLogs
	}
	return earliest, nil
}

// FindEnd returns the latest last-log effective end across tasks.
func FindEnd(tasks map[int]Task, now time.Time) (time.Time, error) {
	var (
		latest time.Time
		found  bool
	)
	for _, task := range tasks {
		last, ok := task.LastLog()
		if !ok {
			continue
		}
		end := last.EffectiveEnd(now)
		if !found || end.After(latest) {
			latest = end
			found = true
		}
	}
	if !found {
		return time.Time{}, ErrNoLogs
	}
	return latest, nil
}

func within(t, start, end time.Time) bool {
	return !t.Before(start) && !t.After(end)
}
