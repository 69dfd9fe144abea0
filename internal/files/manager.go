package files

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
)

const (
	dirPermissions  = 0o755
	filePermissions = 0o644
)

// Manager centralizes where task files live on disk and how they are named.
// Every task is stored in its own file named by the decimal task ID.
type Manager struct {
	basePath string
}

// NewManager constructs a Manager rooted at the provided directory. If basePath
// is empty, it falls back to ~/.timers (or another location determined by
// ResolveBasePath).
func NewManager(basePath string) (*Manager, error) {
	var err error
	if basePath == "" {
		basePath, err = ResolveBasePath()
		if err != nil {
			return nil, err
		}
	}
	abs, err := filepath.Abs(basePath)
	if err != nil {
		return nil, err
	}

	return &Manager{basePath: abs}, nil
}

// BasePath returns the root directory storing all task files.
func (m *Manager) BasePath() string {
	return m.basePath
}

// TaskPath resolves the absolute path to the file for the supplied task ID.
// The file may not exist yet.
func (m *Manager) TaskPath(id int) string {
	return filepath.Join(m.basePath, strconv.Itoa(id))
}

// EnsureDir guarantees the storage root exists.
func (m *Manager) EnsureDir() error {
	if m == nil {
		return errors.New("files.Manager is nil")
	}
	if err := os.MkdirAll(m.basePath, dirPermissions); err != nil {
		return fmt.Errorf("create directories: %w", err)
	}
	return nil
}

// TaskIDs lists the IDs of every task file under the root in ascending order.
// Entries that are not task files (directories, dotfiles, temp files) are skipped.
func (m *Manager) TaskIDs() ([]int, error) {
	if err := m.EnsureDir(); err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(m.basePath)
	if err != nil {
		return nil, fmt.Errorf("read task directory: %w", err)
	}

	ids := make([]int, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if id, ok := ParseTaskFileName(entry.Name()); ok {
			ids = append(ids, id)
		}
	}
	sort.Ints(ids)
	return ids, nil
}

// ParseTaskFileName reports whether name is a canonical task file name and
// returns the ID it encodes.
func ParseTaskFileName(name string) (int, bool) {
	id, err := strconv.Atoi(name)
	if err != nil || id <= 0 {
		return 0, false
	}
	if strconv.Itoa(id) != name {
		return 0, false
	}
	return id, true
}

// ReadTaskFile returns the raw contents of the task file for id.
func (m *Manager) ReadTaskFile(id int) ([]byte, error) {
	if m == nil {
		return nil, errors.New("files.Manager is nil")
	}
	return os.ReadFile(m.TaskPath(id))
}

// WriteTaskFile replaces the task file for id with data. The write goes through a
// temp file in the same directory that is renamed into place.
func (m *Manager) WriteTaskFile(id int, data []byte) error {
	if err := m.EnsureDir(); err != nil {
		return err
	}
	return writeAtomic(m.TaskPath(id), data)
}

func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	temp, err := os.CreateTemp(dir, ".timers-*")
	if err != nil {
		return err
	}
	defer os.Remove(temp.Name())

	if _, err := temp.Write(data); err != nil {
		temp.Close()
		return err
	}
	if err := temp.Sync(); err != nil {
		temp.Close()
		return err
	}
	if err := temp.Close(); err != nil {
		return err
	}

	mode := os.FileMode(filePermissions)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode()
	}
	if err := os.Chmod(temp.Name(), mode); err != nil {
		return err
	}

	return os.Rename(temp.Name(), path)
}
