package datastore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/rishupatwarisrt10-lgtm/Manas01/pkg/apperr"
	"github.com/rishupatwarisrt10-lgtm/Manas01/pkg/prefs"
)

// User is the account row: counters plus preferences.
type User struct {
	ID                string
	SessionsCompleted int
	TotalFocusTime    int
	Preferences       prefs.Preferences
	LastActive        *time.Time
	CreatedAt         time.Time
}

// EnsureUser creates the user row on first sight.
func (s *Store) EnsureUser(ctx context.Context, id string, now time.Time) error {
	if id == "" {
		return fmt.Errorf("ensure user: id is empty")
	}
	_, err := s.db.ExecContext(ctx, `INSERT OR IGNORE INTO users (id, created_at) VALUES (?, ?)`, id, formatTime(now))
	if err != nil {
		return fmt.Errorf("ensure user: insert: %w", err)
	}
	return nil
}

func (s *Store) GetUser(ctx context.Context, id string) (User, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, sessions_completed, total_focus_time, focus_duration, short_break_duration,
		       long_break_duration, theme, notifications, last_active_at, created_at
		FROM users WHERE id = ?`, id)

	var u User
	var notifications int
	var lastActive sql.NullString
	var createdAt string
	err := row.Scan(&u.ID, &u.SessionsCompleted, &u.TotalFocusTime,
		&u.Preferences.FocusDuration, &u.Preferences.ShortBreakDuration, &u.Preferences.LongBreakDuration,
		&u.Preferences.Theme, &notifications, &lastActive, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return User{}, apperr.NewNotFound("user")
		}
		return User{}, fmt.Errorf("get user: scan: %w", err)
	}
	u.Preferences.Notifications = notifications != 0
	if u.LastActive, err = parseNullTime(lastActive); err != nil {
		return User{}, fmt.Errorf("get user: parse last_active_at: %w", err)
	}
	if u.CreatedAt, err = parseTime(createdAt); err != nil {
		return User{}, fmt.Errorf("get user: parse created_at: %w", err)
	}
	return u, nil
}

func (s *Store) Preferences(ctx context.Context, userID string) (prefs.Preferences, error) {
	u, err := s.GetUser(ctx, userID)
	if err != nil {
		return prefs.Preferences{}, err
	}
	return u.Preferences, nil
}

// UpdatePreferences merges patch onto the stored preferences.
func (s *Store) UpdatePreferences(ctx context.Context, userID string, patch prefs.Patch) (prefs.Preferences, error) {
	current, err := s.Preferences(ctx, userID)
	if err != nil {
		return prefs.Preferences{}, err
	}
	next := patch.Apply(current)
	if err := next.Validate(); err != nil {
		return prefs.Preferences{}, err
	}
	_, err = s.db.ExecContext(ctx, `
		UPDATE users SET focus_duration = ?, short_break_duration = ?, long_break_duration = ?,
		                 theme = ?, notifications = ?
		WHERE id = ?`,
		next.FocusDuration, next.ShortBreakDuration, next.LongBreakDuration,
		next.Theme, boolInt(next.Notifications), userID)
	if err != nil {
		return prefs.Preferences{}, fmt.Errorf("update preferences: %w", err)
	}
	return next, nil
}
