package thought

import (
	"fmt"
	"strings"
	"time"

	"github.com/rishupatwarisrt10-lgtm/Manas01/pkg/session"
)

const (
	// MaxTextLength bounds the text of a single thought.
	MaxTextLength = 1000
	// MaxTags bounds the tag list of a single thought.
	MaxTags = 10
)

// Meta ties a thought to the timer phase it was captured in.
type Meta struct {
	Mode          session.Mode `json:"mode"`
	SessionNumber int          `json:"sessionNumber"`
}

// Thought is a journal item. A thought without an ID is provisional: it exists
// locally only until the server confirms it. ClientID correlates a provisional
// thought with its confirmation and never leaves the client.
type Thought struct {
	ID                   string     `json:"id,omitempty"`
	ClientID             string     `json:"clientId,omitempty"`
	Text                 string     `json:"text"`
	Timestamp            time.Time  `json:"timestamp"`
	Session              *Meta      `json:"session,omitempty"`
	Tags                 []string   `json:"tags,omitempty"`
	IsCompleted          bool       `json:"isCompleted"`
	IsDeleted            bool       `json:"isDeleted"`
	DeletedAt            *time.Time `json:"deletedAt,omitempty"`
	IsDealtWith          bool       `json:"isDealtWith,omitempty"`
	DealtWithAt          *time.Time `json:"dealtWithAt,omitempty"`
	ScheduledForDeletion *time.Time `json:"scheduledForDeletion,omitempty"`
	UpdatedAt            *time.Time `json:"updatedAt,omitempty"`
}

// Provisional reports whether the server has not confirmed the thought yet.
func (t Thought) Provisional() bool {
	return t.ID == ""
}

// Key returns the identity used for local lookups.
func (t Thought) Key() string {
	if t.ID != "" {
		return t.ID
	}
	return t.ClientID
}

func (t Thought) String() string {
	mark := "•"
	if t.IsCompleted {
		mark = "✓"
	}
	return fmt.Sprintf("%s %s", mark, t.Text)
}

// Draft is the body of a create request.
type Draft struct {
	Text    string   `json:"text" validate:"required,max=1000"`
	Session *Meta    `json:"session,omitempty"`
	Tags    []string `json:"tags,omitempty" validate:"max=10"`
}

// Normalize trims the text and drops blank tags.
func (d Draft) Normalize() Draft {
	d.Text = strings.TrimSpace(d.Text)
	d.Tags = cleanTags(d.Tags)
	return d
}

func cleanTags(in []string) []string {
	if len(in) == 0 {
		return in
	}
	tags := make([]string, 0, len(in))
	for _, tag := range in {
		if tag = strings.TrimSpace(tag); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

// Patch is the body of an update request. Nil fields are left untouched.
type Patch struct {
	Text        *string  `json:"text,omitempty" validate:"omitempty,min=1,max=1000"`
	Tags        []string `json:"tags,omitempty" validate:"max=10"`
	IsCompleted *bool    `json:"isCompleted,omitempty"`
	IsDealtWith *bool    `json:"isDealtWith,omitempty"`
}

// Normalize trims the text and drops blank tags, the same way a Draft is
// cleaned on create.
func (p Patch) Normalize() Patch {
	if p.Text != nil {
		text := strings.TrimSpace(*p.Text)
		p.Text = &text
	}
	p.Tags = cleanTags(p.Tags)
	return p
}

// Empty reports whether the patch changes nothing.
func (p Patch) Empty() bool {
	return p.Text == nil && p.Tags == nil && p.IsCompleted == nil && p.IsDealtWith == nil
}
