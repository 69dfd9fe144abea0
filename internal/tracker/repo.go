package tracker

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"
	"time"

	"github.com/faizmokh/timers/internal/files"
)

// Repo maps tasks to files under the files.Manager root. It keeps no state
// between calls; every read goes back to disk.
//
// Repo does not enforce that only one task is logging at a time. Callers
// check HasAnyOpenLog before LogTask; Tracker does this for them.
type Repo struct {
	manager *files.Manager
}

// NewRepo wires a repository using the shared files.Manager.
func NewRepo(manager *files.Manager) *Repo {
	return &Repo{manager: manager}
}

// ListTasks decodes every task file. The first corrupt file aborts the listing
// with a *DecodeError.
func (r *Repo) ListTasks(ctx context.Context) (map[int]Task, error) {
	tasks, corrupt, err := r.ScanTasks(ctx)
	if err != nil {
		return nil, err
	}
	if len(corrupt) > 0 {
		return nil, corrupt[0]
	}
	return tasks, nil
}

// ScanTasks decodes every task file, collecting corrupt files instead of
// failing on them. The error is reserved for I/O failures on the root itself.
func (r *Repo) ScanTasks(ctx context.Context) (map[int]Task, []*DecodeError, error) {
	if r == nil || r.manager == nil {
		return nil, nil, errors.New("repo not initialized with file manager")
	}

	ids, err := r.manager.TaskIDs()
	if err != nil {
		return nil, nil, err
	}

	tasks := make(map[int]Task, len(ids))
	var corrupt []*DecodeError
	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}

		task, err := r.read(id)
		if err != nil {
			var decodeErr *DecodeError
			if errors.As(err, &decodeErr) {
				slog.WarnContext(ctx, "skipping corrupt task file", "path", decodeErr.Path, "error", decodeErr.Err)
				corrupt = append(corrupt, decodeErr)
				continue
			}
			return nil, nil, err
		}
		tasks[task.ID] = task
	}

	return tasks, corrupt, nil
}

// GetTask decodes the file for id. A missing file matches both ErrTaskNotFound
// and fs.ErrNotExist.
func (r *Repo) GetTask(ctx context.Context, id int) (Task, error) {
	if r == nil || r.manager == nil {
		return Task{}, errors.New("repo not initialized with file manager")
	}
	if err := ctx.Err(); err != nil {
		return Task{}, err
	}
	return r.read(id)
}

// HasAnyOpenLog reports whether some task in the repository is logging.
func (r *Repo) HasAnyOpenLog(ctx context.Context) (bool, error) {
	tasks, err := r.ListTasks(ctx)
	if err != nil {
		return false, err
	}
	for _, task := range tasks {
		if task.Status() == StatusLogging {
			return true, nil
		}
	}
	return false, nil
}

// CreateTask allocates the next ID (highest existing ID plus one) and writes
// an empty task.
func (r *Repo) CreateTask(ctx context.Context, name string) (Task, error) {
	if r == nil || r.manager == nil {
		return Task{}, errors.New("repo not initialized with file manager")
	}
	if strings.ContainsAny(name, "\r\n") {
		return Task{}, ErrInvalidName
	}
	if err := ctx.Err(); err != nil {
		return Task{}, err
	}

	id, err := r.nextID()
	if err != nil {
		return Task{}, err
	}

	task := Task{ID: id, Name: name}
	if err := r.write(ctx, task); err != nil {
		return Task{}, err
	}
	return task, nil
}

// LogTask appends an open log starting at at and persists the task.
//
// It does not check whether this or any other task is already logging.
func (r *Repo) LogTask(ctx context.Context, task *Task, at time.Time) error {
	if task == nil {
		return errors.New("log task: nil task")
	}

	previous := task.Logs
	task.Logs = append(task.Logs[:len(task.Logs):len(task.Logs)], Log{Start: at.UTC()})
	if err := r.write(ctx, *task); err != nil {
		task.Logs = previous
		return err
	}
	return nil
}

// StopTask closes the task's last log at at and persists the task. at may
// equal the log start but not precede it.
func (r *Repo) StopTask(ctx context.Context, task *Task, at time.Time) error {
	if task == nil {
		return errors.New("stop task: nil task")
	}

	if err := checkStop(*task, at); err != nil {
		return err
	}

	end := at.UTC()
	logs := make([]Log, len(task.Logs))
	copy(logs, task.Logs)
	logs[len(logs)-1].End = &end

	updated := *task
	updated.Logs = logs
	if err := r.write(ctx, updated); err != nil {
		return err
	}
	*task = updated
	return nil
}

func checkStop(task Task, at time.Time) error {
	last, ok := task.LastLog()
	if !ok || !last.IsOpen() {
		return fmt.Errorf("stop task @%d: %w", task.ID, ErrNotLogging)
	}
	if at.Before(last.Start) {
		return fmt.Errorf("stop task @%d at %s, started %s: %w",
			task.ID, FormatTimestamp(at), FormatTimestamp(last.Start), ErrStopBeforeStart)
	}
	return nil
}

func (r *Repo) nextID() (int, error) {
	ids, err := r.manager.TaskIDs()
	if err != nil {
		return 0, err
	}
	if len(ids) == 0 {
		return 1, nil
	}
	return ids[len(ids)-1] + 1, nil
}

func (r *Repo) read(id int) (Task, error) {
	path := r.manager.TaskPath(id)

	data, err := r.manager.ReadTaskFile(id)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Task{}, fmt.Errorf("task @%d: %w: %w", id, ErrTaskNotFound, err)
		}
		return Task{}, fmt.Errorf("read task @%d: %w", id, err)
	}

	task, err := Decode(data)
	if err != nil {
		var decodeErr *DecodeError
		if errors.As(err, &decodeErr) {
			decodeErr.Path = path
			return Task{}, decodeErr
		}
		return Task{}, err
	}
	if task.ID != id {
		return Task{}, &DecodeError{Path: path, Line: 1, Err: fmt.Errorf("task id %d does not match file name", task.ID)}
	}
	return task, nil
}

func (r *Repo) write(ctx context.Context, task Task) error {
	if err := r.manager.WriteTaskFile(task.ID, Encode(task)); err != nil {
		return fmt.Errorf("write task @%d: %w", task.ID, err)
	}
	slog.DebugContext(ctx, "wrote task file", "id", task.ID, "logs", len(task.Logs))
	return nil
}
