package ui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/faizmokh/timers/internal/config"
)

func TestPlainStylesRenderWithoutEscapes(t *testing.T) {
	styles := PlainStyles()
	got := styles.ActiveName.Render("Fix bug")
	if got != "Fix bug" {
		t.Fatalf("ActiveName.Render() = %q, want plain text", got)
	}
}

func TestAlwaysColorForcesEscapes(t *testing.T) {
	var buf bytes.Buffer
	styles := NewStyles(NewRenderer(&buf, config.ColorAlways))
	got := styles.Weekday.Render("Monday")
	if !strings.Contains(got, "\x1b[") {
		t.Fatalf("Weekday.Render() = %q, want ANSI escapes", got)
	}
}

func TestAutoColorOnBufferIsPlain(t *testing.T) {
	var buf bytes.Buffer
	styles := NewStyles(NewRenderer(&buf, config.ColorAuto))
	if got := styles.Weekend.Render("Sunday"); got != "Sunday" {
		t.Fatalf("Weekend.Render() = %q, want plain text for non-terminal writer", got)
	}
}
