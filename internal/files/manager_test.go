package files

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestTaskPath(t *testing.T) {
	tmp := t.TempDir()

	mgr, err := NewManager(tmp)
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}

	path := mgr.TaskPath(42)

	want := filepath.Join(tmp, "42")
	if path != want {
		t.Fatalf("TaskPath() = %q, want %q", path, want)
	}
}

func TestEnsureDirCreatesRoot(t *testing.T) {
	root := filepath.Join(t.TempDir(), "nested", "timers")

	mgr, err := NewManager(root)
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	if err := mgr.EnsureDir(); err != nil {
		t.Fatalf("EnsureDir: %v", err)
	}

	info, err := os.Stat(root)
	if err != nil {
		t.Fatalf("expected directory %q to exist: %v", root, err)
	}
	if !info.IsDir() {
		t.Fatalf("%q is not a directory", root)
	}
}

func TestWriteTaskFileReplacesContents(t *testing.T) {
	mgr, err := NewManager(t.TempDir())
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}

	if err := mgr.WriteTaskFile(3, []byte("first\n")); err != nil {
		t.Fatalf("WriteTaskFile first: %v", err)
	}
	if err := mgr.WriteTaskFile(3, []byte("second\n")); err != nil {
		t.Fatalf("WriteTaskFile second: %v", err)
	}

	got, err := mgr.ReadTaskFile(3)
	if err != nil {
		t.Fatalf("ReadTaskFile: %v", err)
	}
	if string(got) != "second\n" {
		t.Fatalf("task file contents = %q, want %q", got, "second\n")
	}

	entries, err := os.ReadDir(mgr.BasePath())
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("directory has %d entries, want 1 (temp file left behind?)", len(entries))
	}
}

func TestTaskIDsSkipsForeignEntries(t *testing.T) {
	tmp := t.TempDir()
	mgr, err := NewManager(tmp)
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}

	for _, name := range []string{"10", "2", "1", ".timers-123", "notes.txt", "007", "0", "-4"} {
		if err := os.WriteFile(filepath.Join(tmp, name), []byte("x"), 0o644); err != nil {
			t.Fatalf("WriteFile(%s): %v", name, err)
		}
	}
	if err := os.Mkdir(filepath.Join(tmp, "5"), 0o755); err != nil {
		t.Fatalf("Mkdir: %v", err)
	}

	ids, err := mgr.TaskIDs()
	if err != nil {
		t.Fatalf("TaskIDs: %v", err)
	}
	want := []int{1, 2, 10}
	if !reflect.DeepEqual(ids, want) {
		t.Fatalf("TaskIDs() = %v, want %v", ids, want)
	}
}

func TestTaskIDsOnMissingRootCreatesIt(t *testing.T) {
	root := filepath.Join(t.TempDir(), "fresh")
	mgr, err := NewManager(root)
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}

	ids, err := mgr.TaskIDs()
	if err != nil {
		t.Fatalf("TaskIDs: %v", err)
	}
	if len(ids) != 0 {
		t.Fatalf("TaskIDs() = %v, want empty", ids)
	}
	if _, err := os.Stat(root); err != nil {
		t.Fatalf("root not created: %v", err)
	}
}
