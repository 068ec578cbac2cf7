package server

import (
	"crypto/subtle"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rishupatwarisrt10-lgtm/Manas01/pkg/api"
	"github.com/rishupatwarisrt10-lgtm/Manas01/pkg/apperr"
	"github.com/rishupatwarisrt10-lgtm/Manas01/pkg/datastore"
	"github.com/rishupatwarisrt10-lgtm/Manas01/pkg/remote"
	"github.com/rishupatwarisrt10-lgtm/Manas01/pkg/thought"
)

func (s *Server) listThoughts(w http.ResponseWriter, r *http.Request) {
	page, limit := pageParams(r, api.DefaultThoughtsPage)
	list, total, err := s.store.ListThoughts(r.Context(), userID(r), page, limit)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if list == nil {
		list = []thought.Thought{}
	}
	writeJSON(w, http.StatusOK, api.ThoughtList{
		Thoughts:   list,
		Pagination: api.NewPagination(page, limit, total),
	})
}

func (s *Server) createThought(w http.ResponseWriter, r *http.Request) {
	var d thought.Draft
	if err := decode(r, &d); err != nil {
		s.fail(w, r, err)
		return
	}
	t, err := s.store.CreateThought(r.Context(), userID(r), d.Normalize(), s.now())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.metrics.thoughts.Inc()
	writeJSON(w, http.StatusCreated, t)
}

func (s *Server) updateThought(w http.ResponseWriter, r *http.Request) {
	var p thought.Patch
	if err := decode(r, &p); err != nil {
		s.fail(w, r, err)
		return
	}
	t, err := s.store.UpdateThought(r.Context(), userID(r), chi.URLParam(r, "id"), p, s.now())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

func (s *Server) deleteThought(w http.ResponseWriter, r *http.Request) {
	outcome, err := s.store.DeleteThought(r.Context(), userID(r), chi.URLParam(r, "id"), s.now())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	msg := "Thought deleted"
	if outcome == datastore.AlreadyDeleted {
		msg = "Thought already deleted"
	}
	writeJSON(w, http.StatusOK, api.Message{Message: msg})
}

func (s *Server) cleanup(w http.ResponseWriter, r *http.Request) {
	s.runCleanup(w, r, userID(r))
}

func (s *Server) globalCleanup(w http.ResponseWriter, r *http.Request) {
	if s.cleanupKey != "" {
		got := r.Header.Get(remote.CleanupKeyHeader)
		if subtle.ConstantTimeCompare([]byte(got), []byte(s.cleanupKey)) != 1 {
			s.fail(w, r, apperr.NewAuth("Unauthorized"))
			return
		}
	}
	s.runCleanup(w, r, "")
}

func (s *Server) runCleanup(w http.ResponseWriter, r *http.Request, user string) {
	n, err := s.store.Cleanup(r.Context(), user, s.now())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.metrics.cleaned.Add(float64(n))
	writeJSON(w, http.StatusOK, api.CleanupResult{
		Message:      fmt.Sprintf("Cleaned up %d thoughts", n),
		DeletedCount: n,
	})
}
