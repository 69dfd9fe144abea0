package tracker

import (
	"errors"
	"fmt"
)

// ErrValue matches every business-rule violation so callers can tell them
// apart from I/O failures.
var ErrValue = errors.New("value error")

// ErrTaskNotFound is returned when no file exists for the requested task ID.
var ErrTaskNotFound = errors.New("task not found")

// ErrCorruptTask matches every DecodeError.
var ErrCorruptTask = errors.New("corrupt task file")

var (
	// ErrNotLogging is returned when stopping while nothing is open.
	ErrNotLogging = newValueError("task is not being logged")
	// ErrAlreadyLogging is returned when starting a log while one is open.
	ErrAlreadyLogging = newValueError("a task is already being logged")
	// ErrStopBeforeStart rejects closing a log earlier than it started.
	ErrStopBeforeStart = newValueError("stop time is before the log start")
	// ErrNoLogs is returned by FindStart/FindEnd on a collection without logs.
	ErrNoLogs = newValueError("no logs in task collection")
	// ErrEmptyName rejects blank task names.
	ErrEmptyName = newValueError("task name is empty")
	// ErrInvalidName rejects names the line-oriented file format cannot hold.
	ErrInvalidName = newValueError("task name must fit on a single line")
)

// ValueError is a business-rule violation.
type ValueError struct {
	msg string
}

func newValueError(msg string) *ValueError {
	return &ValueError{msg: msg}
}

func (e *ValueError) Error() string {
	return e.msg
}

// Is makes every ValueError match ErrValue.
func (e *ValueError) Is(target error) bool {
	return target == ErrValue
}

// DecodeError describes a task file that could not be decoded.
type DecodeError struct {
	Path string
	Line int
	Err  error
}

func (e *DecodeError) Error() string {
	switch {
	case e.Path != "" && e.Line > 0:
		return fmt.Sprintf("decode %s:%d: %v", e.Path, e.Line, e.Err)
	case e.Path != "":
		return fmt.Sprintf("decode %s: %v", e.Path, e.Err)
	case e.Line > 0:
		return fmt.Sprintf("decode line %d: %v", e.Line, e.Err)
	default:
		return fmt.Sprintf("decode: %v", e.Err)
	}
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// Is makes every DecodeError match ErrCorruptTask.
func (e *DecodeError) Is(target error) bool {
	return target == ErrCorruptTask
}
