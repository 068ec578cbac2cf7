package state

import (
	"context"

	"go.uber.org/zap"

	"github.com/rishupatwarisrt10-lgtm/Manas01/pkg/thought"
)

// Sync replaces the counters and the thought list with the server's view.
// The theme is kept. On failure the current state stays as it is.
func (s *Store) Sync(ctx context.Context) {
	if !s.backend.Authenticated() {
		return
	}
	s.mutate(func(st *AppState) []Event {
		st.IsLoading = true
		return []Event{{Type: Loading}}
	})

	loaded, err := s.backend.Load(ctx)
	if err != nil {
		s.logger.Warn("sync failed", zap.Error(err))
		s.mutate(func(st *AppState) []Event {
			st.IsLoading = false
			return []Event{{Type: Loading}}
		})
		return
	}

	s.mutate(func(st *AppState) []Event {
		st.SessionsCompleted = loaded.SessionsCompleted
		st.TotalFocusTime = loaded.TotalFocusTime
		st.Streak = loaded.Streak
		st.Thoughts = s.keepCreating(st.Thoughts, thought.Active(loaded.Thoughts))
		if loaded.Theme != "" {
			st.Theme = loaded.Theme
		}
		st.IsLoading = false
		s.generation++
		return []Event{{Type: Synced}}
	})
}

// keepCreating puts provisional thoughts whose create is still in flight in
// front of the server list, so their confirmation has something to land on.
// Called with s.mu held.
func (s *Store) keepCreating(cur, loaded []thought.Thought) []thought.Thought {
	if len(s.creating) == 0 {
		return loaded
	}
	var kept []thought.Thought
	for _, t := range cur {
		if _, ok := s.creating[t.ClientID]; ok && t.Provisional() {
			kept = append(kept, t)
		}
	}
	if len(kept) == 0 {
		return loaded
	}
	out := append(kept, loaded...)
	if len(out) > MaxThoughts {
		out = out[:MaxThoughts]
	}
	return out
}

// IncrementSessions bumps the completed-session counter by one.
func (s *Store) IncrementSessions() {
	s.mutate(func(st *AppState) []Event {
		st.SessionsCompleted++
		return []Event{{Type: CountersChanged}}
	})
}

// AddFocusTime adds minutes to the focus total.
func (s *Store) AddFocusTime(minutes int) {
	if minutes <= 0 {
		return
	}
	s.mutate(func(st *AppState) []Event {
		st.TotalFocusTime += minutes
		return []Event{{Type: CountersChanged}}
	})
}

func (s *Store) SetTheme(theme string) {
	if theme == "" {
		return
	}
	s.mutate(func(st *AppState) []Event {
		if st.Theme == theme {
			return nil
		}
		st.Theme = theme
		return []Event{{Type: ThemeChanged}}
	})
}

// ClearAll resets to the default state. It is also what signing out does.
func (s *Store) ClearAll() {
	s.mutate(func(st *AppState) []Event {
		*st = Default()
		s.generation++
		return []Event{{Type: Reset}}
	})
}
