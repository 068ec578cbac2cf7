package remote

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/rishupatwarisrt10-lgtm/Manas01/pkg/api"
	"github.com/rishupatwarisrt10-lgtm/Manas01/pkg/apperr"
	"github.com/rishupatwarisrt10-lgtm/Manas01/pkg/session"
	"github.com/rishupatwarisrt10-lgtm/Manas01/pkg/stats"
	"github.com/rishupatwarisrt10-lgtm/Manas01/pkg/thought"
)

func newClient(t *testing.T, h http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	c, err := New(srv.URL, "tok", WithLogger(zap.NewNop()), WithTimeout(2*time.Second))
	require.NoError(t, err)
	return c
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestNewRequiresBaseURL(t *testing.T) {
	_, err := New("", "tok")
	assert.Error(t, err)
}

func TestCreateThoughtSendsBearerAndBody(t *testing.T) {
	c := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/thoughts", r.URL.Path)
		var d thought.Draft
		require.NoError(t, json.NewDecoder(r.Body).Decode(&d))
		assert.Equal(t, "buy milk", d.Text)
		writeJSON(w, http.StatusCreated, thought.Thought{ID: "t1", Text: d.Text, Session: d.Session})
	}))

	got, err := c.CreateThought(context.Background(), thought.Draft{
		Text:    "  buy milk ",
		Session: &thought.Meta{Mode: session.Focus, SessionNumber: 2},
	})
	require.NoError(t, err)
	assert.Equal(t, "t1", got.ID)
	assert.Equal(t, 2, got.Session.SessionNumber)
}

func TestCreateThoughtValidatesBeforeCalling(t *testing.T) {
	var calls int32
	c := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
	}))
	_, err := c.CreateThought(context.Background(), thought.Draft{Text: strings.Repeat("x", 1001)})
	assert.True(t, apperr.IsValidation(err))
	_, err = c.CreateThought(context.Background(), thought.Draft{Text: " "})
	assert.True(t, apperr.IsValidation(err))
	assert.Zero(t, atomic.LoadInt32(&calls))
}

func TestStatusMapping(t *testing.T) {
	tests := []struct {
		status int
		check  func(error) bool
	}{
		{http.StatusBadRequest, apperr.IsValidation},
		{http.StatusUnauthorized, apperr.IsAuth},
		{http.StatusNotFound, apperr.IsNotFound},
		{http.StatusInternalServerError, apperr.IsRemote},
	}
	for _, tt := range tests {
		t.Run(strconv.Itoa(tt.status), func(t *testing.T) {
			c := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				writeJSON(w, tt.status, api.ErrorBody{Error: "nope"})
			}))
			err := c.DeleteThought(context.Background(), "abc")
			require.Error(t, err)
			assert.True(t, tt.check(err), "got %v", err)
			assert.Contains(t, err.Error(), "nope")
		})
	}
}

func TestNetworkErrorIsRemote(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()
	c, err := New(srv.URL, "tok")
	require.NoError(t, err)
	_, err = c.FetchStats(context.Background())
	assert.True(t, apperr.IsRemote(err))
}

func TestBreakerOpensAfterRepeatedServerErrors(t *testing.T) {
	var calls int32
	c := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	for i := 0; i < 8; i++ {
		_, err := c.FetchStats(context.Background())
		assert.True(t, apperr.IsRemote(err))
	}
	assert.EqualValues(t, 5, atomic.LoadInt32(&calls))
}

func TestClientErrorsDoNotTripBreaker(t *testing.T) {
	var calls int32
	c := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusNotFound)
	}))
	for i := 0; i < 8; i++ {
		assert.True(t, apperr.IsNotFound(c.DeleteThought(context.Background(), "x")))
	}
	assert.EqualValues(t, 8, atomic.LoadInt32(&calls))
}

func TestFetchSnapshotPagesAndFilters(t *testing.T) {
	const total = 230
	mux := http.NewServeMux()
	mux.HandleFunc("/api/user/stats", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, stats.Summary{SessionsCompleted: 4, TotalFocusTime: 100, Streak: 2})
	})
	mux.HandleFunc("/api/thoughts", func(w http.ResponseWriter, r *http.Request) {
		page, _ := strconv.Atoi(r.URL.Query().Get("page"))
		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
		assert.LessOrEqual(t, limit, api.MaxPageSize)
		var list []thought.Thought
		for i := (page - 1) * limit; i < page*limit && i < total; i++ {
			list = append(list, thought.Thought{ID: fmt.Sprintf("t%d", i), IsDeleted: i == 0})
		}
		writeJSON(w, http.StatusOK, api.ThoughtList{Thoughts: list, Pagination: api.NewPagination(page, limit, total)})
	})
	c := newClient(t, mux)

	snap, err := c.FetchSnapshot(context.Background(), 200)
	require.NoError(t, err)
	assert.Equal(t, 4, snap.Stats.SessionsCompleted)
	assert.Len(t, snap.Thoughts, 199)
	assert.Equal(t, "t1", snap.Thoughts[0].ID)
}

func TestFetchSnapshotFailsWhenStatsFail(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/user/stats", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})
	mux.HandleFunc("/api/thoughts", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, api.ThoughtList{})
	})
	c := newClient(t, mux)
	_, err := c.FetchSnapshot(context.Background(), 200)
	assert.True(t, apperr.IsRemote(err))
}

func TestGlobalCleanupSendsKey(t *testing.T) {
	c := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "s3cret", r.Header.Get(CleanupKeyHeader))
		writeJSON(w, http.StatusOK, api.CleanupResult{Message: "ok", DeletedCount: 3})
	}))
	res, err := c.GlobalCleanup(context.Background(), "s3cret")
	require.NoError(t, err)
	assert.EqualValues(t, 3, res.DeletedCount)
}

func TestListSessionsQuery(t *testing.T) {
	since := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	c := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "focus", q.Get("mode"))
		assert.Equal(t, "2026-01-02T03:04:05Z", q.Get("startDate"))
		assert.Equal(t, "5", q.Get("limit"))
		writeJSON(w, http.StatusOK, api.SessionList{Sessions: []session.Record{{Mode: session.Focus, Duration: 25}}})
	}))
	list, err := c.ListSessions(context.Background(), api.SessionFilter{Limit: 5, Mode: session.Focus, StartDate: &since})
	require.NoError(t, err)
	assert.Len(t, list.Sessions, 1)
}
