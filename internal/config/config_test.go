package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/faizmokh/timers/internal/files"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadFromOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
data_dir = "/srv/timers"
week_start = "sun"

[export]
delimiter = ";"
format = "yaml"

[ui]
color = "never"

[watch]
interval = "250ms"
`)

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}

	if cfg.DataDir != "/srv/timers" {
		t.Errorf("DataDir = %q, want /srv/timers", cfg.DataDir)
	}
	if day, _ := cfg.FirstWeekday(); day != time.Sunday {
		t.Errorf("FirstWeekday() = %s, want Sunday", day)
	}
	if r, _ := cfg.Delimiter(); r != ';' {
		t.Errorf("Delimiter() = %q, want ';'", r)
	}
	if cfg.Export.Format != FormatYAML {
		t.Errorf("Export.Format = %q, want yaml", cfg.Export.Format)
	}
	if cfg.UI.Color != ColorNever {
		t.Errorf("UI.Color = %q, want never", cfg.UI.Color)
	}
	if interval, _ := cfg.WatchInterval(); interval != 250*time.Millisecond {
		t.Errorf("WatchInterval() = %s, want 250ms", interval)
	}
}

func TestLoadFromKeepsDefaultsForMissingKeys(t *testing.T) {
	path := writeConfig(t, "week_start = \"Tuesday\"\n")

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if cfg.Export.Format != FormatCSV || cfg.Export.Delimiter != "," {
		t.Fatalf("export defaults lost: %+v", cfg.Export)
	}
	if day, _ := cfg.FirstWeekday(); day != time.Tuesday {
		t.Fatalf("FirstWeekday() = %s, want Tuesday", day)
	}
}

func TestLoadFromRejectsInvalidValues(t *testing.T) {
	tests := map[string]string{
		"weekday":   "week_start = \"someday\"\n",
		"delimiter": "[export]\ndelimiter = \"::\"\n",
		"format":    "[export]\nformat = \"xml\"\n",
		"color":     "[ui]\ncolor = \"sometimes\"\n",
		"interval":  "[watch]\ninterval = \"soon\"\n",
		"negative":  "[watch]\ninterval = \"-1s\"\n",
		"unknown":   "colour = \"auto\"\n",
	}

	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := LoadFrom(writeConfig(t, content))
			if !errors.Is(err, ErrInvalid) {
				t.Fatalf("LoadFrom error = %v, want ErrInvalid", err)
			}
		})
	}
}

func TestLoadFromReportsSyntaxErrors(t *testing.T) {
	_, err := LoadFrom(writeConfig(t, "data_dir = \n"))
	if err == nil {
		t.Fatal("expected parse error")
	}
}

func TestLoadMissingDefaultReturnsDefaults(t *testing.T) {
	t.Setenv(PathEnv, "")
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.WeekStart != "monday" || cfg.UI.Color != ColorAuto {
		t.Fatalf("Load() = %+v, want defaults", cfg)
	}
}

func TestLoadExplicitPathMustExist(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope.toml")
	if _, err := Load(missing); err == nil {
		t.Fatal("expected error for missing explicit config")
	}

	t.Setenv(PathEnv, missing)
	if _, err := Load(""); err == nil {
		t.Fatal("expected error for missing TIMERS_CONFIG file")
	}
}

func TestLoadUsesEnvPath(t *testing.T) {
	path := writeConfig(t, "[ui]\ncolor = \"always\"\n")
	t.Setenv(PathEnv, path)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.UI.Color != ColorAlways {
		t.Fatalf("UI.Color = %q, want always", cfg.UI.Color)
	}
}

func TestResolveDataDirPrecedence(t *testing.T) {
	envDir := t.TempDir()
	cfg := &Config{DataDir: "/from/config"}

	t.Setenv(files.HomeEnv, envDir)
	got, err := cfg.ResolveDataDir()
	if err != nil || got != envDir {
		t.Fatalf("ResolveDataDir() = %q, %v; want %q", got, err, envDir)
	}

	t.Setenv(files.HomeEnv, "  ")
	got, err = cfg.ResolveDataDir()
	if err != nil || got != "/from/config" {
		t.Fatalf("ResolveDataDir() = %q, %v; want /from/config", got, err)
	}

	home := t.TempDir()
	t.Setenv("HOME", home)
	cfg.DataDir = ""
	got, err = cfg.ResolveDataDir()
	if want := filepath.Join(home, files.DefaultDirName); err != nil || got != want {
		t.Fatalf("ResolveDataDir() = %q, %v; want %q", got, err, want)
	}
}

func TestParseDelimiter(t *testing.T) {
	for _, value := range []string{",", ";", "\t", "|"} {
		if _, err := ParseDelimiter(value); err != nil {
			t.Errorf("ParseDelimiter(%q) error = %v", value, err)
		}
	}
	for _, value := range []string{"", ",,", "\"", "\n"} {
		if _, err := ParseDelimiter(value); !errors.Is(err, ErrInvalid) {
			t.Errorf("ParseDelimiter(%q) error = %v, want ErrInvalid", value, err)
		}
	}
}
