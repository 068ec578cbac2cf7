// Package timeutil parses the compact look-back windows accepted by
// `manas sessions --since`.
package timeutil

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const (
	// DefaultWindow is used when no window is given.
	DefaultWindow = "1w"

	day  = 24 * time.Hour
	week = 7 * day
)

type unit struct {
	label   string
	value   time.Duration
	aliases []string
}

// units is ordered largest first; FormatWindow relies on that.
var units = []unit{
	{"w", week, []string{"wk", "wks", "week", "weeks"}},
	{"d", day, []string{"day", "days"}},
	{"h", time.Hour, []string{"hr", "hrs", "hour", "hours"}},
	{"m", time.Minute, []string{"min", "mins", "minute", "minutes"}},
	{"s", time.Second, []string{"sec", "secs", "second", "seconds"}},
}

var (
	segment = regexp.MustCompile(`^\s*(\d+)\s*([a-z]+)`)
	byName  = func() map[string]time.Duration {
		m := map[string]time.Duration{}
		for _, u := range units {
			m[u.label] = u.value
			for _, a := range u.aliases {
				m[a] = u.value
			}
		}
		return m
	}()
)

// ParseWindow parses strings such as "1w", "3d" or "1w2d6h" and returns the
// duration plus its canonical spelling. Empty input means DefaultWindow.
func ParseWindow(input string) (time.Duration, string, error) {
	rest := strings.ToLower(strings.TrimSpace(input))
	if rest == "" {
		rest = DefaultWindow
	}

	var total time.Duration
	for rest != "" {
		m := segment.FindStringSubmatch(rest)
		if m == nil {
			return 0, "", fmt.Errorf("invalid duration segment %q", strings.TrimSpace(rest))
		}
		n, err := strconv.ParseInt(m[1], 10, 64)
		if err != nil {
			return 0, "", fmt.Errorf("invalid duration value %q: %w", m[1], err)
		}
		base, ok := byName[m[2]]
		if !ok {
			return 0, "", fmt.Errorf("unsupported duration unit %q", m[2])
		}
		total += time.Duration(n) * base
		rest = strings.TrimSpace(rest[len(m[0]):])
	}
	if total <= 0 {
		return 0, "", fmt.Errorf("duration must be greater than zero")
	}
	return total, FormatWindow(total), nil
}

// Since resolves a window to the instant it starts at, counted back from now.
// Windows of whole days snap to local midnight so "1d" means yesterday and
// today.
func Since(input string, now time.Time) (time.Time, string, error) {
	d, label, err := ParseWindow(input)
	if err != nil {
		return time.Time{}, "", err
	}
	start := now.Add(-d)
	if d%day == 0 {
		start = time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, now.Location())
	}
	return start, label, nil
}

// FormatWindow renders d with w/d/h/m/s tokens, dropping sub-second parts.
func FormatWindow(d time.Duration) string {
	var b strings.Builder
	for _, u := range units {
		if d < u.value {
			continue
		}
		n := d / u.value
		d -= n * u.value
		fmt.Fprintf(&b, "%d%s", n, u.label)
	}
	if b.Len() == 0 {
		return "0s"
	}
	return b.String()
}
