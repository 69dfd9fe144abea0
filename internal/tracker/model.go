// Package tracker holds the task/log model, its one-file-per-task repository,
// and the range queries that reports, timelines, and exports are built on.
package tracker

import "time"

// Status expresses whether a task is currently being logged.
type Status uint8

const (
	// StatusStopped marks tasks without an open log.
	StatusStopped Status = iota
	// StatusLogging marks the task whose last log is still open.
	StatusLogging
)

func (s Status) String() string {
	if s == StatusLogging {
		return "logging"
	}
	return "stopped"
}

// Log is one contiguous logging interval. A nil End means the log is open.
type Log struct {
	Start time.Time
	End   *time.Time
}

// IsOpen reports whether the log is still running.
func (l Log) IsOpen() bool {
	return l.End == nil
}

// EffectiveEnd returns End, or now when the log is open.
func (l Log) EffectiveEnd(now time.Time) time.Time {
	if l.End == nil {
		return now
	}
	return *l.End
}

// Duration is the length of the log, measured up to now while it is open.
func (l Log) Duration(now time.Time) time.Duration {
	return l.EffectiveEnd(now).Sub(l.Start)
}

// DurationBetween returns how much of the log falls inside [start, end].
// Logs entirely outside the window yield zero.
func (l Log) DurationBetween(start, end, now time.Time) time.Duration {
	logEnd := l.EffectiveEnd(now)

	switch {
	case !start.After(l.Start) && !end.Before(logEnd):
		return l.Duration(now)
	case start.After(l.Start) && !end.Before(logEnd):
		return nonNegative(logEnd.Sub(start))
	case !start.After(l.Start) && end.Before(logEnd):
		return nonNegative(end.Sub(l.Start))
	default:
		return end.Sub(start)
	}
}

func nonNegative(d time.Duration) time.Duration {
	if d < 0 {
		return 0
	}
	return d
}

// Task is a named accumulation of logs.
type Task struct {
	ID   int
	Name string
	Logs []Log
}

// Status is derived from the logs; there is no stored flag to drift out of sync.
func (t Task) Status() Status {
	for _, log := range t.Logs {
		if log.IsOpen() {
			return StatusLogging
		}
	}
	return StatusStopped
}

// OpenLog returns the log that is still running, if any.
func (t Task) OpenLog() (Log, bool) {
	if last, ok := t.LastLog(); ok && last.IsOpen() {
		return last, true
	}
	return Log{}, false
}

// LastLog returns the most recent log, if any.
func (t Task) LastLog() (Log, bool) {
	if len(t.Logs) == 0 {
		return Log{}, false
	}
	return t.Logs[len(t.Logs)-1], true
}

// Duration sums every log of the task.
func (t Task) Duration(now time.Time) time.Duration {
	var total time.Duration
	for _, log := range t.Logs {
		total += log.Duration(now)
	}
	return total
}

// DurationBetween sums the part of every log that falls inside [start, end].
func (t Task) DurationBetween(start, end, now time.Time) time.Duration {
	var total time.Duration
	for _, log := range t.Logs {
		total += log.DurationBetween(start, end, now)
	}
	return total
}
