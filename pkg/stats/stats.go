package stats

import (
	"time"

	"github.com/rishupatwarisrt10-lgtm/Manas01/pkg/session"
)

// DefaultPeakHour is reported when no focus session has been recorded.
const DefaultPeakHour = 10

// Summary is the dashboard view of a user's history.
type Summary struct {
	SessionsCompleted int              `json:"sessionsCompleted"`
	TotalFocusTime    int              `json:"totalFocusTime"`
	Streak            int              `json:"streak"`
	TodaySessions     int              `json:"todaySessions"`
	WeekSessions      int              `json:"weekSessions"`
	MonthSessions     int              `json:"monthSessions"`
	TotalThoughts     int              `json:"totalThoughts"`
	ActiveThoughts    int              `json:"activeThoughts"`
	PeakHour          int              `json:"peakHour"`
	MemberSince       *time.Time       `json:"memberSince,omitempty"`
	LastActive        *time.Time       `json:"lastActive,omitempty"`
	RecentSessions    []session.Record `json:"recentSessions,omitempty"`
}

// Windows are the lower bounds used for the today/week/month counters.
type Windows struct {
	Today time.Time
	Week  time.Time
	Month time.Time
}

// WindowsAt computes the counter bounds in now's location. The week is the
// trailing seven days before today's midnight.
func WindowsAt(now time.Time) Windows {
	today := Midnight(now)
	return Windows{
		Today: today,
		Week:  today.AddDate(0, 0, -7),
		Month: time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()),
	}
}

// Midnight truncates t to the start of its calendar day in t's location.
func Midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// NextMidnight is the start of the calendar day after t.
func NextMidnight(t time.Time) time.Time {
	return Midnight(t).AddDate(0, 0, 1)
}

// Streak counts consecutive calendar days ending today (or yesterday, when
// today has no session yet) on which at least one focus session started.
func Streak(starts []time.Time, now time.Time) int {
	if len(starts) == 0 {
		return 0
	}
	loc := now.Location()
	days := make(map[string]struct{}, len(starts))
	for _, s := range starts {
		days[dayKey(s.In(loc))] = struct{}{}
	}

	cursor := Midnight(now)
	if _, ok := days[dayKey(cursor)]; !ok {
		cursor = cursor.AddDate(0, 0, -1)
		if _, ok := days[dayKey(cursor)]; !ok {
			return 0
		}
	}

	streak := 0
	for {
		if _, ok := days[dayKey(cursor)]; !ok {
			return streak
		}
		streak++
		cursor = cursor.AddDate(0, 0, -1)
	}
}

func dayKey(t time.Time) string {
	return t.Format("2006-01-02")
}

// PeakHour is the most frequent start hour in loc. Ties resolve to the
// earliest hour.
func PeakHour(starts []time.Time, loc *time.Location) int {
	if len(starts) == 0 {
		return DefaultPeakHour
	}
	if loc == nil {
		loc = time.Local
	}
	var counts [24]int
	for _, s := range starts {
		counts[s.In(loc).Hour()]++
	}
	peak, best := DefaultPeakHour, 0
	for hour, n := range counts {
		if n > best {
			peak, best = hour, n
		}
	}
	return peak
}
