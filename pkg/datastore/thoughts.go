package datastore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/rishupatwarisrt10-lgtm/Manas01/pkg/apperr"
	"github.com/rishupatwarisrt10-lgtm/Manas01/pkg/session"
	"github.com/rishupatwarisrt10-lgtm/Manas01/pkg/stats"
	"github.com/rishupatwarisrt10-lgtm/Manas01/pkg/thought"
)

// SoftDeleteRetention is how long soft-deleted thoughts survive cleanup.
const SoftDeleteRetention = 30 * 24 * time.Hour

// DeleteOutcome distinguishes a fresh soft delete from a repeated one.
type DeleteOutcome int

const (
	Deleted DeleteOutcome = iota
	AlreadyDeleted
)

const thoughtColumns = `id, text, timestamp, session_mode, session_number, tags, is_completed, is_deleted,
	deleted_at, is_dealt_with, dealt_with_at, scheduled_for_deletion, updated_at`

func scanThought(row scanner) (thought.Thought, error) {
	var t thought.Thought
	var timestamp, updatedAt, tags string
	var mode sql.NullString
	var number sql.NullInt64
	var completed, deleted, dealt int
	var deletedAt, dealtAt, scheduled sql.NullString

	err := row.Scan(&t.ID, &t.Text, &timestamp, &mode, &number, &tags, &completed, &deleted,
		&deletedAt, &dealt, &dealtAt, &scheduled, &updatedAt)
	if err != nil {
		return thought.Thought{}, err
	}
	if t.Timestamp, err = parseTime(timestamp); err != nil {
		return thought.Thought{}, fmt.Errorf("parse timestamp: %w", err)
	}
	up, err := parseTime(updatedAt)
	if err != nil {
		return thought.Thought{}, fmt.Errorf("parse updated_at: %w", err)
	}
	t.UpdatedAt = &up
	if mode.Valid {
		t.Session = &thought.Meta{Mode: session.Mode(mode.String), SessionNumber: int(number.Int64)}
	}
	if err := json.Unmarshal([]byte(tags), &t.Tags); err != nil {
		return thought.Thought{}, fmt.Errorf("decode tags: %w", err)
	}
	if len(t.Tags) == 0 {
		t.Tags = nil
	}
	t.IsCompleted = completed != 0
	t.IsDeleted = deleted != 0
	t.IsDealtWith = dealt != 0
	if t.DeletedAt, err = parseNullTime(deletedAt); err != nil {
		return thought.Thought{}, fmt.Errorf("parse deleted_at: %w", err)
	}
	if t.DealtWithAt, err = parseNullTime(dealtAt); err != nil {
		return thought.Thought{}, fmt.Errorf("parse dealt_with_at: %w", err)
	}
	if t.ScheduledForDeletion, err = parseNullTime(scheduled); err != nil {
		return thought.Thought{}, fmt.Errorf("parse scheduled_for_deletion: %w", err)
	}
	return t, nil
}

// CreateThought stores a new thought for userID and returns it with its id.
func (s *Store) CreateThought(ctx context.Context, userID string, d thought.Draft, now time.Time) (thought.Thought, error) {
	d = d.Normalize()
	if err := d.Validate(); err != nil {
		return thought.Thought{}, err
	}
	tags := d.Tags
	if tags == nil {
		tags = []string{}
	}
	rawTags, err := json.Marshal(tags)
	if err != nil {
		return thought.Thought{}, fmt.Errorf("create thought: encode tags: %w", err)
	}
	var mode, number any
	if d.Session != nil {
		mode, number = string(d.Session.Mode), d.Session.SessionNumber
	}
	id := uuid.NewString()
	ts := formatTime(now)
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO thoughts (id, user_id, text, timestamp, session_mode, session_number, tags, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, userID, d.Text, ts, mode, number, string(rawTags), ts, ts)
	if err != nil {
		return thought.Thought{}, fmt.Errorf("create thought: insert: %w", err)
	}
	return s.getThought(ctx, userID, id)
}

func (s *Store) getThought(ctx context.Context, userID, id string) (thought.Thought, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+thoughtColumns+` FROM thoughts WHERE id = ? AND user_id = ?`, id, userID)
	t, err := scanThought(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return thought.Thought{}, apperr.NewNotFound("thought")
		}
		return thought.Thought{}, fmt.Errorf("get thought: %w", err)
	}
	return t, nil
}

// ListThoughts returns one page of the user's non-deleted thoughts, newest
// first, and the total count.
func (s *Store) ListThoughts(ctx context.Context, userID string, page, limit int) ([]thought.Thought, int, error) {
	var total int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM thoughts WHERE user_id = ? AND is_deleted = 0`, userID).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("list thoughts: count: %w", err)
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+thoughtColumns+` FROM thoughts
		WHERE user_id = ? AND is_deleted = 0
		ORDER BY timestamp DESC, id DESC
		LIMIT ? OFFSET ?`, userID, limit, (page-1)*limit)
	if err != nil {
		return nil, 0, fmt.Errorf("list thoughts: query: %w", err)
	}
	defer rows.Close()

	out := make([]thought.Thought, 0, limit)
	for rows.Next() {
		t, err := scanThought(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("list thoughts: scan: %w", err)
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("list thoughts: rows: %w", err)
	}
	return out, total, nil
}

// UpdateThought applies p to a live thought. Deleted thoughts are not found.
// Marking a thought dealt with schedules it for removal at the next midnight
// in now's location.
func (s *Store) UpdateThought(ctx context.Context, userID, id string, p thought.Patch, now time.Time) (thought.Thought, error) {
	p = p.Normalize()
	if err := p.Validate(); err != nil {
		return thought.Thought{}, err
	}
	current, err := s.getThought(ctx, userID, id)
	if err != nil {
		return thought.Thought{}, err
	}
	if current.IsDeleted {
		return thought.Thought{}, apperr.NewNotFound("thought")
	}

	if p.Text != nil {
		current.Text = *p.Text
	}
	if p.Tags != nil {
		current.Tags = p.Tags
	}
	if p.IsCompleted != nil {
		current.IsCompleted = *p.IsCompleted
	}
	if p.IsDealtWith != nil {
		current.IsDealtWith = *p.IsDealtWith
		if current.IsDealtWith {
			at := now
			due := stats.NextMidnight(now)
			current.DealtWithAt = &at
			current.ScheduledForDeletion = &due
		} else {
			current.DealtWithAt = nil
			current.ScheduledForDeletion = nil
		}
	}
	tags := current.Tags
	if tags == nil {
		tags = []string{}
	}
	rawTags, err := json.Marshal(tags)
	if err != nil {
		return thought.Thought{}, fmt.Errorf("update thought: encode tags: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		UPDATE thoughts SET text = ?, tags = ?, is_completed = ?, is_dealt_with = ?, dealt_with_at = ?,
		                    scheduled_for_deletion = ?, updated_at = ?
		WHERE id = ? AND user_id = ?`,
		current.Text, string(rawTags), boolInt(current.IsCompleted), boolInt(current.IsDealtWith),
		formatTimePtr(current.DealtWithAt), formatTimePtr(current.ScheduledForDeletion), formatTime(now),
		id, userID)
	if err != nil {
		return thought.Thought{}, fmt.Errorf("update thought: %w", err)
	}
	return s.getThought(ctx, userID, id)
}

// DeleteThought soft-deletes a thought. Repeating the delete is reported as
// AlreadyDeleted; an id the user never had is NotFound.
func (s *Store) DeleteThought(ctx context.Context, userID, id string, now time.Time) (DeleteOutcome, error) {
	current, err := s.getThought(ctx, userID, id)
	if err != nil {
		return 0, err
	}
	if current.IsDeleted {
		return AlreadyDeleted, nil
	}
	ts := formatTime(now)
	_, err = s.db.ExecContext(ctx, `
		UPDATE thoughts SET is_deleted = 1, deleted_at = ?, updated_at = ? WHERE id = ? AND user_id = ?`,
		ts, ts, id, userID)
	if err != nil {
		return 0, fmt.Errorf("delete thought: %w", err)
	}
	return Deleted, nil
}

// Cleanup purges thoughts whose dealt-with schedule has passed and thoughts
// soft-deleted more than SoftDeleteRetention ago. An empty userID sweeps every
// user.
func (s *Store) Cleanup(ctx context.Context, userID string, now time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx, `
		DELETE FROM thoughts
		WHERE (? = '' OR user_id = ?)
		  AND ((is_dealt_with = 1 AND scheduled_for_deletion IS NOT NULL AND scheduled_for_deletion <= ?)
		    OR (is_deleted = 1 AND deleted_at IS NOT NULL AND deleted_at <= ?))`,
		userID, userID, formatTime(now), formatTime(now.Add(-SoftDeleteRetention)))
	if err != nil {
		return 0, fmt.Errorf("cleanup thoughts: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("cleanup thoughts: rows affected: %w", err)
	}
	return n, nil
}
