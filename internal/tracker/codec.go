package tracker

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// timestampLayout writes UTC instants with an explicit "+00:00" offset and
// only as many fractional digits as needed, so nothing is lost on re-read.
const timestampLayout = "2006-01-02T15:04:05.999999999-07:00"

// Encode renders a task in the on-disk format:
//
//	<id>
//	<name>
//	<start> <end>    one line per log; end is empty while the log is open
func Encode(task Task) []byte {
	var builder strings.Builder
	builder.Grow(32 + len(task.Name) + len(task.Logs)*72)

	builder.WriteString(strconv.Itoa(task.ID))
	builder.WriteByte('\n')
	builder.WriteString(task.Name)
	builder.WriteByte('\n')
	for _, log := range task.Logs {
		builder.WriteString(FormatTimestamp(log.Start))
		builder.WriteByte(' ')
		if log.End != nil {
			builder.WriteString(FormatTimestamp(*log.End))
		}
		builder.WriteByte('\n')
	}
	return []byte(builder.String())
}

// Decode parses the on-disk format. Failures are returned as *DecodeError with
// the offending line number.
func Decode(data []byte) (Task, error) {
	lines := splitLines(string(data))
	if len(lines) == 0 {
		return Task{}, &DecodeError{Line: 1, Err: errors.New("missing id line")}
	}

	id, err := strconv.Atoi(strings.TrimSpace(lines[0]))
	if err != nil || id <= 0 {
		return Task{}, &DecodeError{Line: 1, Err: fmt.Errorf("invalid task id %q", lines[0])}
	}
	if len(lines) < 2 {
		return Task{}, &DecodeError{Line: 2, Err: errors.New("missing name line")}
	}

	task := Task{ID: id, Name: lines[1]}
	for i := 2; i < len(lines); i++ {
		line := strings.TrimSpace(lines[i])
		if line == "" {
			continue
		}
		if len(task.Logs) > 0 && task.Logs[len(task.Logs)-1].IsOpen() {
			return Task{}, &DecodeError{Line: i + 1, Err: errors.New("open log is not the last entry")}
		}

		log, err := parseLogLine(line)
		if err != nil {
			return Task{}, &DecodeError{Line: i + 1, Err: err}
		}
		task.Logs = append(task.Logs, log)
	}

	return task, nil
}

func parseLogLine(line string) (Log, error) {
	startText, endText, _ := strings.Cut(line, " ")

	start, err := parseTimestamp(startText)
	if err != nil {
		return Log{}, fmt.Errorf("invalid start %q: %w", startText, err)
	}

	endText = strings.TrimSpace(endText)
	if endText == "" {
		return Log{Start: start}, nil
	}

	end, err := parseTimestamp(endText)
	if err != nil {
		return Log{}, fmt.Errorf("invalid end %q: %w", endText, err)
	}
	return Log{Start: start, End: &end}, nil
}

// FormatTimestamp renders t the way task files store it.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}

func parseTimestamp(value string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}

func splitLines(input string) []string {
	input = strings.ReplaceAll(input, "\r\n", "\n")
	lines := strings.Split(input, "\n")
	// Remove the trailing empty element produced by Split when the input ends with a newline.
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}
