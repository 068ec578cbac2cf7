package datastore

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/rishupatwarisrt10-lgtm/Manas01/pkg/api"
	"github.com/rishupatwarisrt10-lgtm/Manas01/pkg/session"
	"github.com/rishupatwarisrt10-lgtm/Manas01/pkg/stats"
	"github.com/rishupatwarisrt10-lgtm/Manas01/pkg/thought"
)

const sessionColumns = `id, mode, duration, completed, start_time, end_time, paused_duration, thoughts_captured`

func scanSession(row scanner) (session.Record, error) {
	var r session.Record
	var mode, start string
	var completed int
	var end sql.NullString
	if err := row.Scan(&r.ID, &mode, &r.Duration, &completed, &start, &end, &r.PausedDuration, &r.ThoughtsCaptured); err != nil {
		return session.Record{}, err
	}
	r.Mode = session.Mode(mode)
	r.Completed = completed != 0
	var err error
	if r.StartTime, err = parseTime(start); err != nil {
		return session.Record{}, fmt.Errorf("parse start_time: %w", err)
	}
	if r.EndTime, err = parseNullTime(end); err != nil {
		return session.Record{}, fmt.Errorf("parse end_time: %w", err)
	}
	return r, nil
}

// CreateSession stores rec. A completed focus session also moves the user's
// sessionsCompleted and totalFocusTime counters, in the same transaction.
func (s *Store) CreateSession(ctx context.Context, userID string, rec session.Record, now time.Time) (session.Record, error) {
	if err := thought.ValidateStruct(rec); err != nil {
		return session.Record{}, err
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return session.Record{}, fmt.Errorf("create session: begin: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	rec.ID = uuid.NewString()
	_, err = tx.ExecContext(ctx, `
		INSERT INTO sessions (id, user_id, mode, duration, completed, start_time, end_time, paused_duration, thoughts_captured, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, userID, string(rec.Mode), rec.Duration, boolInt(rec.Completed), formatTime(rec.StartTime),
		formatTimePtr(rec.EndTime), rec.PausedDuration, rec.ThoughtsCaptured, formatTime(now))
	if err != nil {
		return session.Record{}, fmt.Errorf("create session: insert: %w", err)
	}

	if rec.CountsAsFocus() {
		_, err = tx.ExecContext(ctx, `
			UPDATE users SET sessions_completed = sessions_completed + 1,
			                 total_focus_time = total_focus_time + ?,
			                 last_active_at = ?
			WHERE id = ?`, rec.Duration, formatTime(now), userID)
	} else {
		_, err = tx.ExecContext(ctx, `UPDATE users SET last_active_at = ? WHERE id = ?`, formatTime(now), userID)
	}
	if err != nil {
		return session.Record{}, fmt.Errorf("create session: update user: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return session.Record{}, fmt.Errorf("create session: commit: %w", err)
	}
	return rec, nil
}

// ListSessions returns one page of sessions matching f, newest first, and the
// total count.
func (s *Store) ListSessions(ctx context.Context, userID string, f api.SessionFilter) ([]session.Record, int, error) {
	where := []string{"user_id = ?"}
	args := []any{userID}
	if f.Mode != "" {
		where = append(where, "mode = ?")
		args = append(args, string(f.Mode))
	}
	if f.StartDate != nil {
		where = append(where, "start_time >= ?")
		args = append(args, formatTime(*f.StartDate))
	}
	if f.EndDate != nil {
		where = append(where, "start_time <= ?")
		args = append(args, formatTime(*f.EndDate))
	}
	cond := strings.Join(where, " AND ")

	var total int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM sessions WHERE `+cond, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("list sessions: count: %w", err)
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+sessionColumns+` FROM sessions WHERE `+cond+` ORDER BY start_time DESC LIMIT ? OFFSET ?`,
		append(args, f.Limit, (f.Page-1)*f.Limit)...)
	if err != nil {
		return nil, 0, fmt.Errorf("list sessions: query: %w", err)
	}
	defer rows.Close()

	out := make([]session.Record, 0, f.Limit)
	for rows.Next() {
		r, err := scanSession(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("list sessions: scan: %w", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("list sessions: rows: %w", err)
	}
	return out, total, nil
}

// Summary builds the dashboard statistics for userID as seen at now. Calendar
// boundaries use now's location.
func (s *Store) Summary(ctx context.Context, userID string, now time.Time) (stats.Summary, error) {
	u, err := s.GetUser(ctx, userID)
	if err != nil {
		return stats.Summary{}, err
	}
	sum := stats.Summary{
		SessionsCompleted: u.SessionsCompleted,
		TotalFocusTime:    u.TotalFocusTime,
		LastActive:        u.LastActive,
	}
	created := u.CreatedAt
	sum.MemberSince = &created

	w := stats.WindowsAt(now)
	counts := []struct {
		dst   *int
		query string
		args  []any
	}{
		{&sum.TodaySessions, `SELECT COUNT(*) FROM sessions WHERE user_id = ? AND completed = 1 AND start_time >= ?`, []any{userID, formatTime(w.Today)}},
		{&sum.WeekSessions, `SELECT COUNT(*) FROM sessions WHERE user_id = ? AND completed = 1 AND start_time >= ?`, []any{userID, formatTime(w.Week)}},
		{&sum.MonthSessions, `SELECT COUNT(*) FROM sessions WHERE user_id = ? AND completed = 1 AND start_time >= ?`, []any{userID, formatTime(w.Month)}},
		{&sum.TotalThoughts, `SELECT COUNT(*) FROM thoughts WHERE user_id = ?`, []any{userID}},
		{&sum.ActiveThoughts, `SELECT COUNT(*) FROM thoughts WHERE user_id = ? AND is_deleted = 0`, []any{userID}},
	}
	for _, c := range counts {
		if err := s.db.QueryRowContext(ctx, c.query, c.args...).Scan(c.dst); err != nil {
			return stats.Summary{}, fmt.Errorf("summary: count: %w", err)
		}
	}

	starts, err := s.focusStarts(ctx, userID)
	if err != nil {
		return stats.Summary{}, err
	}
	sum.Streak = stats.Streak(starts, now)
	sum.PeakHour = stats.PeakHour(starts, now.Location())

	if sum.RecentSessions, err = s.recentSessions(ctx, userID, 10); err != nil {
		return stats.Summary{}, err
	}
	return sum, nil
}

func (s *Store) recentSessions(ctx context.Context, userID string, n int) ([]session.Record, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+sessionColumns+` FROM sessions WHERE user_id = ? AND completed = 1
		ORDER BY start_time DESC LIMIT ?`, userID, n)
	if err != nil {
		return nil, fmt.Errorf("recent sessions: query: %w", err)
	}
	defer rows.Close()
	var out []session.Record
	for rows.Next() {
		r, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("recent sessions: scan: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *Store) focusStarts(ctx context.Context, userID string) ([]time.Time, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT start_time FROM sessions WHERE user_id = ? AND mode = ? AND completed = 1 ORDER BY start_time DESC`,
		userID, string(session.Focus))
	if err != nil {
		return nil, fmt.Errorf("focus starts: query: %w", err)
	}
	defer rows.Close()
	var out []time.Time
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("focus starts: scan: %w", err)
		}
		t, err := parseTime(raw)
		if err != nil {
			return nil, fmt.Errorf("focus starts: parse: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}
