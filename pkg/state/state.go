// Package state owns the client's AppState: the thought list, the session
// counters and the theme. Every mutation is applied locally first and
// reconciled with the server in the background.
package state

import (
	"github.com/rishupatwarisrt10-lgtm/Manas01/pkg/local"
	"github.com/rishupatwarisrt10-lgtm/Manas01/pkg/prefs"
	"github.com/rishupatwarisrt10-lgtm/Manas01/pkg/thought"
)

// MaxThoughts is how many thoughts the client keeps in memory.
const MaxThoughts = 200

// AppState is the single client-side state record.
type AppState struct {
	SessionsCompleted int
	Thoughts          []thought.Thought
	Theme             string
	TotalFocusTime    int
	Streak            int
	IsLoading         bool
}

// Default is the state of a fresh client, and of one that was cleared.
func Default() AppState {
	return AppState{Thoughts: []thought.Thought{}, Theme: prefs.DefaultTheme}
}

func (s AppState) clone() AppState {
	s.Thoughts = thought.Clone(s.Thoughts)
	return s
}

func (s AppState) snapshot() local.Snapshot {
	return local.Snapshot{
		SessionsCompleted: s.SessionsCompleted,
		Thoughts:          thought.Clone(s.Thoughts),
		Theme:             s.Theme,
		TotalFocusTime:    s.TotalFocusTime,
		Streak:            s.Streak,
	}
}

func fromSnapshot(snap local.Snapshot) AppState {
	st := AppState{
		SessionsCompleted: snap.SessionsCompleted,
		Thoughts:          snap.Thoughts,
		Theme:             snap.Theme,
		TotalFocusTime:    snap.TotalFocusTime,
		Streak:            snap.Streak,
	}
	if st.Thoughts == nil {
		st.Thoughts = []thought.Thought{}
	}
	if len(st.Thoughts) > MaxThoughts {
		st.Thoughts = st.Thoughts[:MaxThoughts]
	}
	if st.Theme == "" {
		st.Theme = prefs.DefaultTheme
	}
	return st
}

// EventType says what changed.
type EventType int

const (
	ThoughtAdded EventType = iota
	ThoughtConfirmed
	ThoughtUpdated
	ThoughtRemoved
	ThoughtRestored
	ThoughtsReordered
	CountersChanged
	ThemeChanged
	Loading
	Synced
	Reset
)

func (t EventType) String() string {
	switch t {
	case ThoughtAdded:
		return "added"
	case ThoughtConfirmed:
		return "confirmed"
	case ThoughtUpdated:
		return "updated"
	case ThoughtRemoved:
		return "removed"
	case ThoughtRestored:
		return "restored"
	case ThoughtsReordered:
		return "reordered"
	case CountersChanged:
		return "counters"
	case ThemeChanged:
		return "theme"
	case Loading:
		return "loading"
	case Synced:
		return "synced"
	case Reset:
		return "reset"
	}
	return "unknown"
}

// Event is published after a mutation is applied. Thought is set for the
// per-thought events.
type Event struct {
	Type    EventType
	Thought thought.Thought
}
