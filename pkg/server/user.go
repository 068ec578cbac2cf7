package server

import (
	"net/http"

	"github.com/rishupatwarisrt10-lgtm/Manas01/pkg/api"
	"github.com/rishupatwarisrt10-lgtm/Manas01/pkg/apperr"
	"github.com/rishupatwarisrt10-lgtm/Manas01/pkg/prefs"
	"github.com/rishupatwarisrt10-lgtm/Manas01/pkg/session"
)

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, api.Health{Status: "ok", Time: s.now().UTC()})
}

func (s *Server) createSession(w http.ResponseWriter, r *http.Request) {
	var rec session.Record
	if err := decode(r, &rec); err != nil {
		s.fail(w, r, err)
		return
	}
	out, err := s.store.CreateSession(r.Context(), userID(r), rec, s.now())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.metrics.sessions.WithLabelValues(string(out.Mode)).Inc()
	writeJSON(w, http.StatusCreated, out)
}

func (s *Server) listSessions(w http.ResponseWriter, r *http.Request) {
	page, limit := pageParams(r, api.DefaultSessionsPage)
	f := api.SessionFilter{Page: page, Limit: limit}

	q := r.URL.Query()
	if raw := q.Get("mode"); raw != "" {
		mode := session.Mode(raw)
		if !mode.Valid() {
			s.fail(w, r, apperr.NewValidation("invalid mode %q", raw))
			return
		}
		f.Mode = mode
	}
	var err error
	if f.StartDate, err = parseDate(q.Get("startDate")); err != nil {
		s.fail(w, r, err)
		return
	}
	if f.EndDate, err = parseDate(q.Get("endDate")); err != nil {
		s.fail(w, r, err)
		return
	}

	list, total, err := s.store.ListSessions(r.Context(), userID(r), f)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if list == nil {
		list = []session.Record{}
	}
	writeJSON(w, http.StatusOK, api.SessionList{
		Sessions:   list,
		Pagination: api.NewPagination(page, limit, total),
	})
}

func (s *Server) getPreferences(w http.ResponseWriter, r *http.Request) {
	p, err := s.store.Preferences(r.Context(), userID(r))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) putPreferences(w http.ResponseWriter, r *http.Request) {
	var patch prefs.Patch
	if err := decode(r, &patch); err != nil {
		s.fail(w, r, err)
		return
	}
	if err := patch.Validate(); err != nil {
		s.fail(w, r, err)
		return
	}
	p, err := s.store.UpdatePreferences(r.Context(), userID(r), patch)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) stats(w http.ResponseWriter, r *http.Request) {
	sum, err := s.store.Summary(r.Context(), userID(r), s.now())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sum)
}
