// Package config handles the optional timers configuration file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/BurntSushi/toml"

	"github.com/faizmokh/timers/internal/files"
)

// PathEnv points at an explicit config file.
const PathEnv = "TIMERS_CONFIG"

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid config")

// ColorMode controls when styled output is emitted.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// Export format names.
const (
	FormatCSV  = "csv"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Config represents the timers configuration file.
type Config struct {
	// DataDir is where task files live. TIMERS_HOME takes precedence.
	DataDir string `toml:"data_dir"`

	// WeekStart names the first day of the week used by the report command.
	WeekStart string `toml:"week_start"`

	Export ExportConfig `toml:"export"`
	UI     UIConfig     `toml:"ui"`
	Watch  WatchConfig  `toml:"watch"`
}

// ExportConfig holds defaults for the export command.
type ExportConfig struct {
	// Delimiter is a single character separating CSV fields.
	Delimiter string `toml:"delimiter"`

	// Format is one of csv, json or yaml.
	Format string `toml:"format"`
}

// UIConfig holds terminal styling preferences.
type UIConfig struct {
	Color ColorMode `toml:"color"`
}

// WatchConfig holds settings for the watch view.
type WatchConfig struct {
	// Interval is a Go duration string such as "1s" or "500ms".
	Interval string `toml:"interval"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		WeekStart: "monday",
		Export: ExportConfig{
			Delimiter: ",",
			Format:    FormatCSV,
		},
		UI:    UIConfig{Color: ColorAuto},
		Watch: WatchConfig{Interval: "1s"},
	}
}

// Load resolves the config file and decodes it. An explicit path (the
// --config flag) or TIMERS_CONFIG must exist; the default location may be
// absent, in which case defaults are returned.
func Load(explicit string) (*Config, error) {
	if path := strings.TrimSpace(explicit); path != "" {
		return LoadFrom(path)
	}
	if path, ok := os.LookupEnv(PathEnv); ok && strings.TrimSpace(path) != "" {
		return LoadFrom(strings.TrimSpace(path))
	}

	path := DefaultPath()
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	return LoadFrom(path)
}

// LoadFrom decodes the file at path on top of the defaults and validates it.
func LoadFrom(path string) (*Config, error) {
	path, err := files.ExpandHome(path)
	if err != nil {
		return nil, err
	}

	config := Default()
	meta, err := toml.DecodeFile(path, config)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("config %s: unknown key %q: %w", path, undecoded[0].String(), ErrInvalid)
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return config, nil
}

// DefaultPath returns <UserConfigDir>/timers/config.toml.
func DefaultPath() string {
	if configDir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(configDir, "timers", "config.toml")
	}
	return filepath.Join(".", "config.toml")
}

// Validate checks every value that has a restricted domain.
func (c *Config) Validate() error {
	if _, err := c.FirstWeekday(); err != nil {
		return err
	}
	if _, err := c.Delimiter(); err != nil {
		return err
	}
	switch c.Export.Format {
	case FormatCSV, FormatJSON, FormatYAML:
	default:
		return fmt.Errorf("export format %q: %w", c.Export.Format, ErrInvalid)
	}
	switch c.UI.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return fmt.Errorf("ui color %q: %w", c.UI.Color, ErrInvalid)
	}
	if _, err := c.WatchInterval(); err != nil {
		return err
	}
	return nil
}

// ResolveDataDir returns the task directory: TIMERS_HOME, then data_dir, then
// the default under the home directory.
func (c *Config) ResolveDataDir() (string, error) {
	if override, ok := os.LookupEnv(files.HomeEnv); ok && strings.TrimSpace(override) != "" {
		return files.ResolveBasePath()
	}
	if dir := strings.TrimSpace(c.DataDir); dir != "" {
		return files.ExpandHome(dir)
	}
	return files.ResolveBasePath()
}

// FirstWeekday parses WeekStart.
func (c *Config) FirstWeekday() (time.Weekday, error) {
	return ParseWeekday(c.WeekStart)
}

// Delimiter returns the export delimiter as a rune.
func (c *Config) Delimiter() (rune, error) {
	return ParseDelimiter(c.Export.Delimiter)
}

// WatchInterval parses the watch refresh interval.
func (c *Config) WatchInterval() (time.Duration, error) {
	interval, err := time.ParseDuration(c.Watch.Interval)
	if err != nil {
		return 0, fmt.Errorf("watch interval %q: %w", c.Watch.Interval, ErrInvalid)
	}
	if interval <= 0 {
		return 0, fmt.Errorf("watch interval %q must be positive: %w", c.Watch.Interval, ErrInvalid)
	}
	return interval, nil
}

// ParseWeekday accepts full English day names and their three-letter forms.
func ParseWeekday(name string) (time.Weekday, error) {
	normalized := strings.ToLower(strings.TrimSpace(name))
	for day := time.Sunday; day <= time.Saturday; day++ {
		full := strings.ToLower(day.String())
		if normalized == full || normalized == full[:3] {
			return day, nil
		}
	}
	return time.Sunday, fmt.Errorf("week start %q: %w", name, ErrInvalid)
}

// ParseDelimiter accepts exactly one character other than a quote or newline.
func ParseDelimiter(value string) (rune, error) {
	if utf8.RuneCountInString(value) != 1 {
		return 0, fmt.Errorf("delimiter %q must be a single character: %w", value, ErrInvalid)
	}
	r, _ := utf8.DecodeRuneInString(value)
	if r == '"' || r == '\r' || r == '\n' || r == utf8.RuneError {
		return 0, fmt.Errorf("delimiter %q: %w", value, ErrInvalid)
	}
	return r, nil
}
