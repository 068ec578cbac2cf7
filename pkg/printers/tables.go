package printers

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"github.com/rishupatwarisrt10-lgtm/Manas01/pkg/prefs"
	"github.com/rishupatwarisrt10-lgtm/Manas01/pkg/session"
	"github.com/rishupatwarisrt10-lgtm/Manas01/pkg/stats"
	"github.com/rishupatwarisrt10-lgtm/Manas01/pkg/timeutil"
)

const stamp = "Jan 2 15:04"

func (pp *PrettyPrint) table() *uitable.Table {
	tbl := uitable.New()
	tbl.MaxColWidth = 50
	tbl.Wrap = true
	return tbl
}

func (pp *PrettyPrint) flush(tbl *uitable.Table) {
	_, _ = fmt.Fprintln(pp.out(), tbl.String())
	pp.NewLine()
}

func minutes(m int) string {
	if m <= 0 {
		return "0m"
	}
	return timeutil.FormatWindow(time.Duration(m) * time.Minute)
}

func (pp *PrettyPrint) when(t *time.Time) string {
	if t == nil {
		return "-"
	}
	loc := pp.Loc
	if loc == nil {
		loc = time.Local
	}
	return t.In(loc).Format(stamp)
}

func (pp *PrettyPrint) Stats(s stats.Summary) {
	pp.Title("Stats")
	tbl := pp.table()
	tbl.AddRow("Sessions completed", s.SessionsCompleted)
	tbl.AddRow("Focus time", minutes(s.TotalFocusTime))
	tbl.AddRow("Streak", fmt.Sprintf("%d days", s.Streak))
	tbl.AddRow("Today / week / month", fmt.Sprintf("%d / %d / %d", s.TodaySessions, s.WeekSessions, s.MonthSessions))
	tbl.AddRow("Thoughts", fmt.Sprintf("%d active, %d total", s.ActiveThoughts, s.TotalThoughts))
	tbl.AddRow("Peak hour", fmt.Sprintf("%02d:00", s.PeakHour))
	tbl.AddRow("Member since", pp.when(s.MemberSince))
	tbl.AddRow("Last active", pp.when(s.LastActive))
	pp.flush(tbl)

	if len(s.RecentSessions) > 0 {
		pp.Title("Recent sessions")
		pp.sessionRows(s.RecentSessions)
	}
}

// LocalStats prints the counters a guest keeps on this machine.
func (pp *PrettyPrint) LocalStats(sessions, focusMinutes, streak, thoughts int) {
	pp.Title("Stats (this device)")
	tbl := pp.table()
	tbl.AddRow("Sessions completed", sessions)
	tbl.AddRow("Focus time", minutes(focusMinutes))
	tbl.AddRow("Streak", fmt.Sprintf("%d days", streak))
	tbl.AddRow("Thoughts", thoughts)
	pp.flush(tbl)
}

func (pp *PrettyPrint) Sessions(list ...session.Record) {
	if len(list) == 0 {
		_, _ = color.New(color.Faint, color.Italic).Fprint(pp.out(), " none\n\n")
		return
	}
	pp.sessionRows(list)
}

func (pp *PrettyPrint) sessionRows(list []session.Record) {
	tbl := pp.table()
	tbl.AddRow("STARTED", "MODE", "LENGTH", "DONE", "PAUSED", "THOUGHTS")
	for _, s := range list {
		start := s.StartTime
		done := "no"
		if s.Completed {
			done = "yes"
		}
		tbl.AddRow(pp.when(&start), s.Mode.Label(), minutes(s.Duration), done,
			timeutil.FormatWindow(time.Duration(s.PausedDuration)*time.Millisecond), s.ThoughtsCaptured)
	}
	pp.flush(tbl)
}

func (pp *PrettyPrint) Preferences(p prefs.Preferences) {
	pp.Title("Preferences")
	tbl := pp.table()
	tbl.AddRow("focusDuration", minutes(p.FocusDuration))
	tbl.AddRow("shortBreakDuration", minutes(p.ShortBreakDuration))
	tbl.AddRow("longBreakDuration", minutes(p.LongBreakDuration))
	tbl.AddRow("theme", p.Theme)
	tbl.AddRow("notifications", p.Notifications)
	pp.flush(tbl)
}
