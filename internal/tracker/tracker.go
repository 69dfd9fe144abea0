package tracker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
)

// Tracker is the API the command layer talks to. It owns the rule that only
// one task may be logging at a time, which Repo leaves to its callers.
type Tracker struct {
	repo *Repo
	now  func() time.Time
}

// Option customizes a Tracker.
type Option func(*Tracker)

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(t *Tracker) {
		if now != nil {
			t.now = now
		}
	}
}

// New builds a Tracker over repo.
func New(repo *Repo, opts ...Option) *Tracker {
	t := &Tracker{repo: repo, now: time.Now}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Now returns the tracker's notion of the current instant in UTC.
func (t *Tracker) Now() time.Time {
	return t.now().UTC()
}

// Repo exposes the underlying repository.
func (t *Tracker) Repo() *Repo {
	return t.repo
}

// CreateTask creates an empty task.
func (t *Tracker) CreateTask(ctx context.Context, name string) (Task, error) {
	if err := ValidateName(name); err != nil {
		return Task{}, err
	}
	return t.repo.CreateTask(ctx, name)
}

// LogTaskAt resumes the task with id, starting a new log at at.
func (t *Tracker) LogTaskAt(ctx context.Context, id int, at time.Time) (Task, error) {
	if err := t.ensureIdle(ctx); err != nil {
		return Task{}, err
	}

	task, err := t.repo.GetTask(ctx, id)
	if err != nil {
		return Task{}, err
	}
	if err := t.repo.LogTask(ctx, &task, at); err != nil {
		return Task{}, err
	}
	slog.InfoContext(ctx, "started logging", "id", task.ID, "at", at.UTC())
	return task, nil
}

// CreateLogTaskAt creates a task and immediately starts logging on it.
func (t *Tracker) CreateLogTaskAt(ctx context.Context, name string, at time.Time) (Task, error) {
	if err := ValidateName(name); err != nil {
		return Task{}, err
	}
	if err := t.ensureIdle(ctx); err != nil {
		return Task{}, err
	}

	task, err := t.repo.CreateTask(ctx, name)
	if err != nil {
		return Task{}, err
	}
	if err := t.repo.LogTask(ctx, &task, at); err != nil {
		return Task{}, err
	}
	slog.InfoContext(ctx, "started logging", "id", task.ID, "at", at.UTC())
	return task, nil
}

// SwitchToTaskAt stops the current task at at, if one is logging, and resumes
// the task with id from at. Nothing is written unless every check passes; if
// the resume fails after the stop, the stopped task is reopened.
func (t *Tracker) SwitchToTaskAt(ctx context.Context, id int, at time.Time) (Task, error) {
	if _, err := t.repo.GetTask(ctx, id); err != nil {
		return Task{}, err
	}
	return t.switchAt(ctx, at, func() (Task, error) {
		return t.LogTaskAt(ctx, id, at)
	})
}

// SwitchToNewTaskAt is SwitchToTaskAt for a task created with name.
func (t *Tracker) SwitchToNewTaskAt(ctx context.Context, name string, at time.Time) (Task, error) {
	if err := ValidateName(name); err != nil {
		return Task{}, err
	}
	return t.switchAt(ctx, at, func() (Task, error) {
		return t.CreateLogTaskAt(ctx, name, at)
	})
}

func (t *Tracker) switchAt(ctx context.Context, at time.Time, start func() (Task, error)) (Task, error) {
	current, err := t.CurrentLogTask(ctx)
	if err != nil {
		return Task{}, err
	}
	if current == nil {
		return start()
	}
	if err := checkStop(*current, at); err != nil {
		return Task{}, err
	}

	previous := *current
	if err := t.repo.StopTask(ctx, current, at); err != nil {
		return Task{}, err
	}
	slog.InfoContext(ctx, "stopped logging", "id", current.ID, "at", at.UTC())

	task, err := start()
	if err != nil {
		if restoreErr := t.repo.write(ctx, previous); restoreErr != nil {
			return Task{}, errors.Join(err, fmt.Errorf("reopen task @%d: %w", previous.ID, restoreErr))
		}
		slog.InfoContext(ctx, "reopened task after failed switch", "id", previous.ID)
		return Task{}, err
	}
	return task, nil
}

// CurrentLogTask returns the task that is logging, or nil when idle.
func (t *Tracker) CurrentLogTask(ctx context.Context) (*Task, error) {
	tasks, err := t.repo.ListTasks(ctx)
	if err != nil {
		return nil, err
	}
	for _, task := range SortedTasks(tasks) {
		if task.Status() == StatusLogging {
			current := task
			return &current, nil
		}
	}
	return nil, nil
}

// StopCurrentTaskAt closes the open log of the current task at at.
func (t *Tracker) StopCurrentTaskAt(ctx context.Context, at time.Time) (Task, error) {
	current, err := t.CurrentLogTask(ctx)
	if err != nil {
		return Task{}, err
	}
	if current == nil {
		return Task{}, ErrNotLogging
	}
	if err := t.repo.StopTask(ctx, current, at); err != nil {
		return Task{}, err
	}
	slog.InfoContext(ctx, "stopped logging", "id", current.ID, "at", at.UTC())
	return *current, nil
}

// AllTasks returns every task keyed by ID.
func (t *Tracker) AllTasks(ctx context.Context) (map[int]Task, error) {
	return t.repo.ListTasks(ctx)
}

// AllTasksBetween returns tasks with a log start or end inside [start, end].
func (t *Tracker) AllTasksBetween(ctx context.Context, start, end time.Time) (map[int]Task, error) {
	tasks, err := t.repo.ListTasks(ctx)
	if err != nil {
		return nil, err
	}
	return TasksBetween(tasks, start, end, t.Now()), nil
}

// AllLogsBetween returns the clipped logs overlapping [start, end], oldest first.
func (t *Tracker) AllLogsBetween(ctx context.Context, start, end time.Time) ([]TaskLog, error) {
	tasks, err := t.repo.ListTasks(ctx)
	if err != nil {
		return nil, err
	}
	return LogsBetween(tasks, start, end, t.Now()), nil
}

// TotalDuration is the time logged on all tasks inside [start, end].
func (t *Tracker) TotalDuration(ctx context.Context, start, end time.Time) (time.Duration, error) {
	tasks, err := t.repo.ListTasks(ctx)
	if err != nil {
		return 0, err
	}
	return TotalDuration(tasks, start, end, t.Now()), nil
}

func (t *Tracker) ensureIdle(ctx context.Context) error {
	open, err := t.repo.HasAnyOpenLog(ctx)
	if err != nil {
		return err
	}
	if open {
		return ErrAlreadyLogging
	}
	return nil
}

// ValidateName rejects blank names and names spanning several lines.
func ValidateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrEmptyName
	}
	if strings.ContainsAny(name, "\r\n") {
		return fmt.Errorf("%q: %w", name, ErrInvalidName)
	}
	return nil
}
