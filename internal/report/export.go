package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/faizmokh/timers/internal/tracker"
)

// Object selects what an export lists.
type Object string

const (
	ObjectTasks Object = "tasks"
	ObjectLogs  Object = "logs"
)

// ParseObject validates the export object argument.
func ParseObject(value string) (Object, error) {
	switch Object(value) {
	case ObjectTasks, ObjectLogs:
		return Object(value), nil
	default:
		return "", fmt.Errorf("unknown export object %q (expected tasks|logs)", value)
	}
}

var (
	// DefaultFrom and DefaultTo bound an export when no window is given.
	DefaultFrom = time.Date(1900, time.January, 1, 0, 0, 0, 0, time.UTC)
	DefaultTo   = time.Date(2100, time.January, 1, 0, 0, 0, 0, time.UTC)

	taskHeader = []string{"Task ID", "Task name", "Logs", "Duration (hours)"}
	logHeader  = []string{"Task ID", "Task name", "Begin (UTC)", "End (UTC)", "Duration (hours)"}
)

// TaskRecord is one exported task.
type TaskRecord struct {
	ID    int     `json:"id" yaml:"id"`
	Name  string  `json:"name" yaml:"name"`
	Logs  int     `json:"logs" yaml:"logs"`
	Hours float64 `json:"hours" yaml:"hours"`
}

// LogRecord is one exported log. End is empty for a running log.
type LogRecord struct {
	ID    int     `json:"id" yaml:"id"`
	Name  string  `json:"name" yaml:"name"`
	Begin string  `json:"begin" yaml:"begin"`
	End   string  `json:"end,omitempty" yaml:"end,omitempty"`
	Hours float64 `json:"hours" yaml:"hours"`
}

// TaskRecords lists tasks in ID order with their full durations.
func TaskRecords(tasks map[int]tracker.Task, now time.Time) []TaskRecord {
	records := make([]TaskRecord, 0, len(tasks))
	for _, task := range tracker.SortedTasks(tasks) {
		records = append(records, TaskRecord{
			ID:    task.ID,
			Name:  task.Name,
			Logs:  len(task.Logs),
			Hours: tracker.Hours(task.Duration(now)),
		})
	}
	return records
}

// LogRecords lists every log of every task, tasks in ID order and logs in
// stored order. Logs are not clipped.
func LogRecords(tasks map[int]tracker.Task, now time.Time) []LogRecord {
	var records []LogRecord
	for _, task := range tracker.SortedTasks(tasks) {
		for _, log := range task.Logs {
			record := LogRecord{
				ID:    task.ID,
				Name:  task.Name,
				Begin: tracker.FormatTimestamp(log.Start),
				Hours: tracker.Hours(log.Duration(now)),
			}
			if log.End != nil {
				record.End = tracker.FormatTimestamp(*log.End)
			}
			records = append(records, record)
		}
	}
	return records
}

// ExportOptions configures Export.
type ExportOptions struct {
	Object    Object
	Format    string
	Delimiter rune
}

// Export writes the selected records of tasks to w.
func Export(w io.Writer, tasks map[int]tracker.Task, now time.Time, opts ExportOptions) error {
	var records any
	switch opts.Object {
	case ObjectLogs:
		records = LogRecords(tasks, now)
	default:
		records = TaskRecords(tasks, now)
	}

	switch opts.Format {
	case "", "csv":
		return writeCSV(w, records, opts.Delimiter)
	case "json":
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(records)
	case "yaml":
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		if err := encoder.Encode(records); err != nil {
			return err
		}
		return encoder.Close()
	default:
		return fmt.Errorf("unknown export format %q (expected csv|json|yaml)", opts.Format)
	}
}

func writeCSV(w io.Writer, records any, delimiter rune) error {
	writer := csv.NewWriter(w)
	if delimiter != 0 {
		writer.Comma = delimiter
	}

	var rows [][]string
	switch records := records.(type) {
	case []TaskRecord:
		rows = append(rows, taskHeader)
		for _, record := range records {
			rows = append(rows, []string{
				strconv.Itoa(record.ID),
				record.Name,
				strconv.Itoa(record.Logs),
				formatHours(record.Hours),
			})
		}
	case []LogRecord:
		rows = append(rows, logHeader)
		for _, record := range records {
			rows = append(rows, []string{
				strconv.Itoa(record.ID),
				record.Name,
				record.Begin,
				record.End,
				formatHours(record.Hours),
			})
		}
	}

	if err := writer.WriteAll(rows); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	return nil
}

func formatHours(hours float64) string {
	return strconv.FormatFloat(hours, 'f', -1, 64)
}
