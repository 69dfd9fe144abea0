// Package timeparse turns the short time and duration strings typed on the
// command line into absolute instants and durations.
//
// Accepted time forms, tried in order:
//
//	y<time>               the same time one calendar day earlier (repeatable: yy09:00)
//	+<duration>           now plus the duration
//	-<duration>           now minus the duration
//	HH:MM[:SS]            today at that local wall-clock time
//	YYYY-MM-DD HH:MM[:SS] that local date and time
//
// Durations are either "H:M" (signed hours and minutes) or a bare number of minutes.
package timeparse

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Kind names the grammar an input failed to match.
type Kind uint8

const (
	// KindTime marks a failed time parse.
	KindTime Kind = iota
	// KindDuration marks a failed duration parse.
	KindDuration
)

func (k Kind) String() string {
	if k == KindDuration {
		return "duration"
	}
	return "time"
}

// Error reports the input that could not be understood.
type Error struct {
	Kind   Kind
	Input  string
	Reason string
}

func (e *Error) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("%s format %q not understood: %s", e.Kind, e.Input, e.Reason)
	}
	return fmt.Sprintf("%s format %q not understood", e.Kind, e.Input)
}

var (
	clockPattern    = regexp.MustCompile(`^(\d{1,2}):(\d{2})(?::(\d{2}))?$`)
	datetimePattern = regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2}) (\d{1,2}):(\d{2})(?::(\d{2}))?$`)
)

// ParseTime resolves text relative to now. Wall-clock forms are interpreted in
// now's location; the result is always in UTC.
func ParseTime(text string, now time.Time) (time.Time, error) {
	parsed, reason := parseTime(strings.TrimSpace(text), now)
	if reason != "" {
		return time.Time{}, &Error{Kind: KindTime, Input: text, Reason: reasonText(reason)}
	}
	return parsed.UTC(), nil
}

// ParseDuration parses "H:M" or a bare number of minutes.
func ParseDuration(text string) (time.Duration, error) {
	d, ok := parseDuration(strings.TrimSpace(text))
	if !ok {
		return 0, &Error{Kind: KindDuration, Input: text}
	}
	return d, nil
}

const (
	reasonSyntax    = "syntax"
	reasonAmbiguous = "ambiguous local time"
	reasonMissing   = "local time does not exist"
)

func reasonText(reason string) string {
	if reason == reasonSyntax {
		return ""
	}
	return reason
}

func parseTime(text string, now time.Time) (time.Time, string) {
	switch {
	case text == "":
		return time.Time{}, reasonSyntax
	case strings.HasPrefix(text, "y"):
		parsed, reason := parseTime(text[1:], now)
		if reason != "" {
			return time.Time{}, reason
		}
		return parsed.In(now.Location()).AddDate(0, 0, -1), ""
	case strings.HasPrefix(text, "+"), strings.HasPrefix(text, "-"):
		d, ok := parseDuration(text[1:])
		if !ok {
			return time.Time{}, reasonSyntax
		}
		if text[0] == '-' {
			d = -d
		}
		return now.Add(d), ""
	}

	if m := clockPattern.FindStringSubmatch(text); m != nil {
		local := now.In(now.Location())
		return resolveWall(local.Year(), local.Month(), local.Day(), m[1], m[2], m[3], now.Location())
	}

	if m := datetimePattern.FindStringSubmatch(text); m != nil {
		year, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		day, _ := strconv.Atoi(m[3])
		return resolveWall(year, time.Month(month), day, m[4], m[5], m[6], now.Location())
	}

	return time.Time{}, reasonSyntax
}

func parseDuration(text string) (time.Duration, bool) {
	if text == "" {
		return 0, false
	}

	hoursText, minutesText, hasColon := strings.Cut(text, ":")
	if !hasColon {
		minutes, err := strconv.Atoi(text)
		if err != nil {
			return 0, false
		}
		return time.Duration(minutes) * time.Minute, true
	}

	hours, err := strconv.Atoi(hoursText)
	if err != nil {
		return 0, false
	}
	minutes, err := strconv.Atoi(minutesText)
	if err != nil {
		return 0, false
	}
	return time.Duration(hours)*time.Hour + time.Duration(minutes)*time.Minute, true
}

// resolveWall builds the instant for a local wall-clock reading and rejects
// readings that fall in a DST gap or fold.
func resolveWall(year int, month time.Month, day int, hh, mm, ss string, loc *time.Location) (time.Time, string) {
	hour, _ := strconv.Atoi(hh)
	minute, _ := strconv.Atoi(mm)
	second := 0
	if ss != "" {
		second, _ = strconv.Atoi(ss)
	}
	if hour > 23 || minute > 59 || second > 59 {
		return time.Time{}, reasonSyntax
	}
	if month < time.January || month > time.December || day < 1 || day > 31 {
		return time.Time{}, reasonSyntax
	}

	t := time.Date(year, month, day, hour, minute, second, 0, loc)
	if t.Month() != month || t.Day() != day {
		return time.Time{}, reasonSyntax
	}
	if t.Hour() != hour || t.Minute() != minute || t.Second() != second {
		return time.Time{}, reasonMissing
	}

	_, offset := t.Zone()
	wall := time.Date(year, month, day, hour, minute, second, 0, time.UTC)
	for _, probe := range []time.Time{t.Add(-12 * time.Hour), t.Add(12 * time.Hour)} {
		_, other := probe.Zone()
		if other == offset {
			continue
		}
		candidate := wall.Add(-time.Duration(other) * time.Second).In(loc)
		if candidate.Hour() == hour && candidate.Minute() == minute && candidate.Day() == day {
			return time.Time{}, reasonAmbiguous
		}
	}

	return t, ""
}
