package state

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/rishupatwarisrt10-lgtm/Manas01/pkg/apperr"
	"github.com/rishupatwarisrt10-lgtm/Manas01/pkg/thought"
)

// AddThought inserts text at the head of the list and, when signed in, creates
// it on the server. Blank text is ignored. A failed create leaves the
// provisional thought in place.
func (s *Store) AddThought(ctx context.Context, text string, meta *thought.Meta, tags ...string) {
	draft := thought.Draft{Text: text, Session: meta, Tags: tags}.Normalize()
	if draft.Text == "" {
		return
	}
	provisional := thought.Thought{
		ClientID:  s.newID(),
		Text:      draft.Text,
		Timestamp: s.now(),
		Session:   meta,
		Tags:      draft.Tags,
	}
	send := s.backend.Authenticated()
	if send {
		if err := draft.Validate(); err != nil {
			s.logger.Warn("thought kept local", zap.String("clientId", provisional.ClientID), zap.Error(err))
			send = false
		}
	}
	s.mutate(func(st *AppState) []Event {
		st.Thoughts = thought.Prepend(st.Thoughts, provisional, MaxThoughts)
		if send {
			s.creating[provisional.ClientID] = struct{}{}
		}
		return []Event{{Type: ThoughtAdded, Thought: provisional}}
	})
	if !send {
		return
	}

	s.async(ctx, func(ctx context.Context) {
		saved, err := s.backend.CreateThought(ctx, draft)
		if err != nil {
			s.logger.Warn("create thought failed", zap.String("clientId", provisional.ClientID), zap.Error(err))
			s.mu.Lock()
			delete(s.creating, provisional.ClientID)
			s.mu.Unlock()
			return
		}
		saved.ClientID = ""
		s.mutate(func(st *AppState) []Event {
			delete(s.creating, provisional.ClientID)
			i := thought.IndexOf(st.Thoughts, provisional.ClientID)
			if i < 0 {
				return nil
			}
			// A sync may already have brought the saved row in.
			if thought.IndexOfID(st.Thoughts, saved.ID) >= 0 {
				st.Thoughts = thought.RemoveAt(st.Thoughts, i)
			} else {
				st.Thoughts[i] = saved
			}
			return []Event{{Type: ThoughtConfirmed, Thought: saved}}
		})
	})
}

// ToggleTaskComplete flips isCompleted locally and on the server. A failed
// update restores the value seen before the flip. A toggle for an id that
// already has a server call in flight is dropped. id is a server id;
// provisional thoughts cannot be toggled.
func (s *Store) ToggleTaskComplete(ctx context.Context, id string) {
	if id == "" || !s.backend.Authenticated() || !s.acquire(id) {
		return
	}
	var prev, next bool
	found := false
	s.mutate(func(st *AppState) []Event {
		i := thought.IndexOfID(st.Thoughts, id)
		if i < 0 {
			return nil
		}
		found = true
		prev = st.Thoughts[i].IsCompleted
		next = !prev
		st.Thoughts[i].IsCompleted = next
		return []Event{{Type: ThoughtUpdated, Thought: st.Thoughts[i]}}
	})
	if !found {
		s.release(id)
		return
	}

	s.async(ctx, func(ctx context.Context) {
		defer s.release(id)
		if _, err := s.backend.UpdateThought(ctx, id, thought.Patch{IsCompleted: &next}); err != nil {
			s.logger.Warn("toggle failed, restoring", zap.String("id", id), zap.Error(err))
			s.mutate(func(st *AppState) []Event {
				i := thought.IndexOfID(st.Thoughts, id)
				if i < 0 || st.Thoughts[i].IsCompleted != next {
					return nil
				}
				st.Thoughts[i].IsCompleted = prev
				return []Event{{Type: ThoughtUpdated, Thought: st.Thoughts[i]}}
			})
		}
	})
}

// CompleteThought marks a thought dealt with by deleting it on the server
// first; the local entry goes away only once the server agrees. A client id
// of a provisional thought is ignored.
func (s *Store) CompleteThought(ctx context.Context, id string) {
	if id == "" || !s.backend.Authenticated() || s.provisional(id) || !s.acquire(id) {
		return
	}
	s.async(ctx, func(ctx context.Context) {
		defer s.release(id)
		if err := s.backend.DeleteThought(ctx, id); err != nil && !apperr.IsNotFound(err) {
			s.logger.Warn("complete thought failed", zap.String("id", id), zap.Error(err))
			return
		}
		s.mutate(func(st *AppState) []Event {
			i := thought.IndexOfID(st.Thoughts, id)
			if i < 0 {
				return nil
			}
			removed := st.Thoughts[i]
			st.Thoughts = thought.RemoveAt(st.Thoughts, i)
			return []Event{{Type: ThoughtRemoved, Thought: removed}}
		})
	})
}

// RemoveThought deletes a thought optimistically. If the server refuses, the
// thought comes back at the head of the list, or a full sync runs when the
// list was replaced in the meantime. Like toggling it needs a server id.
func (s *Store) RemoveThought(ctx context.Context, id string) {
	if id == "" || !s.backend.Authenticated() || !s.acquire(id) {
		return
	}
	var removed *thought.Thought
	var gen uint64
	s.mutate(func(st *AppState) []Event {
		i := thought.IndexOfID(st.Thoughts, id)
		if i < 0 {
			return nil
		}
		t := st.Thoughts[i]
		removed = &t
		gen = s.generation
		st.Thoughts = thought.RemoveAt(st.Thoughts, i)
		return []Event{{Type: ThoughtRemoved, Thought: t}}
	})
	if removed == nil {
		s.release(id)
		return
	}

	s.async(ctx, func(ctx context.Context) {
		defer s.release(id)
		err := s.backend.DeleteThought(ctx, id)
		if err == nil || apperr.IsNotFound(err) {
			return
		}
		s.logger.Warn("remove thought failed, restoring", zap.String("id", id), zap.Error(err))
		if s.currentGeneration() != gen {
			s.Sync(ctx)
			return
		}
		s.mutate(func(st *AppState) []Event {
			if thought.IndexOfID(st.Thoughts, id) >= 0 {
				return nil
			}
			st.Thoughts = thought.Prepend(st.Thoughts, *removed, MaxThoughts)
			return []Event{{Type: ThoughtRestored, Thought: *removed}}
		})
	})
}

// ReorderThoughts moves the thought at start to end. The order is local only.
func (s *Store) ReorderThoughts(start, end int) {
	s.mutate(func(st *AppState) []Event {
		moved, ok := thought.Move(st.Thoughts, start, end)
		if !ok || start == end {
			return nil
		}
		st.Thoughts = moved
		return []Event{{Type: ThoughtsReordered}}
	})
}

// provisional reports whether id is only known as a client id.
func (s *Store) provisional(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return thought.IndexOfID(s.state.Thoughts, id) < 0 && thought.IndexOf(s.state.Thoughts, id) >= 0
}

// Find returns the thought whose id or client id is key.
func (s *Store) Find(key string) (thought.Thought, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := thought.IndexOf(s.state.Thoughts, strings.TrimSpace(key))
	if i < 0 {
		return thought.Thought{}, false
	}
	return s.state.Thoughts[i], true
}
