package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/faizmokh/timers/internal/tracker"
)

var exportDay = time.Date(2025, time.November, 3, 0, 0, 0, 0, time.UTC)

func exportTasks() map[int]tracker.Task {
	return map[int]tracker.Task{
		2: {ID: 2, Name: "Review, then merge", Logs: []tracker.Log{
			{Start: exportDay.Add(13 * time.Hour)},
		}},
		1: {ID: 1, Name: "Write docs", Logs: []tracker.Log{
			{Start: exportDay.Add(9 * time.Hour), End: ptr(exportDay.Add(10*time.Hour + 30*time.Minute))},
			{Start: exportDay.Add(11 * time.Hour), End: ptr(exportDay.Add(11*time.Hour + 15*time.Minute))},
		}},
	}
}

func TestExportTasksCSV(t *testing.T) {
	var buf bytes.Buffer
	now := exportDay.Add(14 * time.Hour)
	if err := Export(&buf, exportTasks(), now, ExportOptions{Object: ObjectTasks, Format: "csv", Delimiter: ','}); err != nil {
		t.Fatalf("Export: %v", err)
	}

	want := "Task ID,Task name,Logs,Duration (hours)\n" +
		"1,Write docs,2,1.75\n" +
		"2,\"Review, then merge\",1,1\n"
	if buf.String() != want {
		t.Fatalf("Export() =\n%s\nwant\n%s", buf.String(), want)
	}
}

func TestExportLogsCSVWithDelimiter(t *testing.T) {
	var buf bytes.Buffer
	now := exportDay.Add(14 * time.Hour)
	if err := Export(&buf, exportTasks(), now, ExportOptions{Object: ObjectLogs, Format: "csv", Delimiter: ';'}); err != nil {
		t.Fatalf("Export: %v", err)
	}

	want := "Task ID;Task name;Begin (UTC);End (UTC);Duration (hours)\n" +
		"1;Write docs;2025-11-03T09:00:00+00:00;2025-11-03T10:30:00+00:00;1.5\n" +
		"1;Write docs;2025-11-03T11:00:00+00:00;2025-11-03T11:15:00+00:00;0.25\n" +
		"2;Review, then merge;2025-11-03T13:00:00+00:00;;1\n"
	if buf.String() != want {
		t.Fatalf("Export() =\n%s\nwant\n%s", buf.String(), want)
	}
}

func TestExportJSON(t *testing.T) {
	var buf bytes.Buffer
	now := exportDay.Add(14 * time.Hour)
	if err := Export(&buf, exportTasks(), now, ExportOptions{Object: ObjectLogs, Format: "json"}); err != nil {
		t.Fatalf("Export: %v", err)
	}

	var records []LogRecord
	if err := json.Unmarshal(buf.Bytes(), &records); err != nil {
		t.Fatalf("decode json: %v", err)
	}
	if len(records) != 3 || records[2].End != "" || records[0].Hours != 1.5 {
		t.Fatalf("records = %+v", records)
	}
	if strings.Contains(buf.String(), `"end": ""`) {
		t.Fatalf("open log should omit end:\n%s", buf.String())
	}
}

func TestExportYAML(t *testing.T) {
	var buf bytes.Buffer
	now := exportDay.Add(14 * time.Hour)
	if err := Export(&buf, exportTasks(), now, ExportOptions{Object: ObjectTasks, Format: "yaml"}); err != nil {
		t.Fatalf("Export: %v", err)
	}

	var records []TaskRecord
	if err := yaml.Unmarshal(buf.Bytes(), &records); err != nil {
		t.Fatalf("decode yaml: %v", err)
	}
	if len(records) != 2 || records[0].Name != "Write docs" || records[1].Hours != 1 {
		t.Fatalf("records = %+v", records)
	}
}

func TestExportRejectsUnknownFormat(t *testing.T) {
	err := Export(&bytes.Buffer{}, nil, exportDay, ExportOptions{Object: ObjectTasks, Format: "xml"})
	if err == nil {
		t.Fatal("expected error for unknown format")
	}
}

func TestParseObject(t *testing.T) {
	if obj, err := ParseObject("logs"); err != nil || obj != ObjectLogs {
		t.Fatalf("ParseObject(logs) = %q, %v", obj, err)
	}
	if _, err := ParseObject("days"); err == nil {
		t.Fatal("expected error for unknown object")
	}
}
