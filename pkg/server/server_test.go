package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/rishupatwarisrt10-lgtm/Manas01/pkg/api"
	"github.com/rishupatwarisrt10-lgtm/Manas01/pkg/apperr"
	"github.com/rishupatwarisrt10-lgtm/Manas01/pkg/auth"
	"github.com/rishupatwarisrt10-lgtm/Manas01/pkg/datastore"
	"github.com/rishupatwarisrt10-lgtm/Manas01/pkg/prefs"
	"github.com/rishupatwarisrt10-lgtm/Manas01/pkg/remote"
	"github.com/rishupatwarisrt10-lgtm/Manas01/pkg/session"
	"github.com/rishupatwarisrt10-lgtm/Manas01/pkg/state"
	"github.com/rishupatwarisrt10-lgtm/Manas01/pkg/thought"
)

type clock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *clock) Set(t time.Time) {
	c.mu.Lock()
	c.t = t
	c.mu.Unlock()
}

type fixture struct {
	url    string
	clock  *clock
	issuer *auth.Issuer
}

func (f *fixture) token(t *testing.T, user string) string {
	t.Helper()
	tok, err := f.issuer.Issue(user, time.Now())
	require.NoError(t, err)
	return tok
}

func (f *fixture) client(t *testing.T, user string) *remote.Client {
	t.Helper()
	c, err := remote.New(f.url, f.token(t, user), remote.WithLogger(zap.NewNop()))
	require.NoError(t, err)
	return c
}

func newFixture(t *testing.T, opts ...Option) *fixture {
	t.Helper()
	store, err := datastore.Open(context.Background(), filepath.Join(t.TempDir(), "manas.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	issuer, err := auth.NewIssuer("secret", "manas-test", time.Hour)
	require.NoError(t, err)

	c := &clock{t: time.Date(2026, 4, 10, 14, 0, 0, 0, time.UTC)}
	opts = append([]Option{WithClock(c.Now), WithLogger(zap.NewNop())}, opts...)
	srv := httptest.NewServer(New(store, issuer, opts...).Handler())
	t.Cleanup(srv.Close)
	return &fixture{url: srv.URL, clock: c, issuer: issuer}
}

func do(t *testing.T, method, url, token, body string) (*http.Response, string) {
	t.Helper()
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, url, rd)
	require.NoError(t, err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(raw)
}

func TestHealthIsPublic(t *testing.T) {
	f := newFixture(t)
	h, err := f.client(t, "u1").Health(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "ok", h.Status)
}

func TestRejectsMissingAndBadTokens(t *testing.T) {
	f := newFixture(t)
	resp, body := do(t, http.MethodGet, f.url+"/api/thoughts", "", "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Contains(t, body, `"error"`)

	resp, _ = do(t, http.MethodGet, f.url+"/api/thoughts", "garbage", "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestThoughtLifecycle(t *testing.T) {
	f := newFixture(t)
	c := f.client(t, "u1")
	ctx := context.Background()

	created, err := c.CreateThought(ctx, thought.Draft{Text: "call mom", Tags: []string{"home"}})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "call mom", created.Text)

	done := true
	updated, err := c.UpdateThought(ctx, created.ID, thought.Patch{IsCompleted: &done})
	require.NoError(t, err)
	assert.True(t, updated.IsCompleted)

	require.NoError(t, c.DeleteThought(ctx, created.ID))
	// repeat deletes still succeed
	require.NoError(t, c.DeleteThought(ctx, created.ID))

	err = c.DeleteThought(ctx, "missing")
	assert.True(t, apperr.IsNotFound(err), "got %v", err)

	_, err = c.UpdateThought(ctx, created.ID, thought.Patch{IsCompleted: &done})
	assert.True(t, apperr.IsNotFound(err), "got %v", err)
}

func TestThoughtsAreScopedToUser(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	mine, err := f.client(t, "u1").CreateThought(ctx, thought.Draft{Text: "mine"})
	require.NoError(t, err)

	other := f.client(t, "u2")
	list, err := other.ListThoughts(ctx, 1, 10)
	require.NoError(t, err)
	assert.Empty(t, list.Thoughts)
	assert.True(t, apperr.IsNotFound(other.DeleteThought(ctx, mine.ID)))
}

func TestCreateThoughtValidation(t *testing.T) {
	f := newFixture(t)
	tok := f.token(t, "u1")

	resp, body := do(t, http.MethodPost, f.url+"/api/thoughts", tok, `{"text":"   "}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, body, "error")

	resp, _ = do(t, http.MethodPost, f.url+"/api/thoughts", tok, `{"text":"`+strings.Repeat("a", 1001)+`"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = do(t, http.MethodPost, f.url+"/api/thoughts", tok, `{`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestListThoughtsPaginationCapsLimit(t *testing.T) {
	f := newFixture(t)
	c := f.client(t, "u1")
	ctx := context.Background()
	for i := 0; i < 3; i++ {
		_, err := c.CreateThought(ctx, thought.Draft{Text: "t"})
		require.NoError(t, err)
	}

	resp, body := do(t, http.MethodGet, f.url+"/api/thoughts?limit=500&page=1", f.token(t, "u1"), "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var list api.ThoughtList
	require.NoError(t, json.Unmarshal([]byte(body), &list))
	assert.Equal(t, api.MaxPageSize, list.Pagination.Limit)
	assert.Equal(t, 3, list.Pagination.Total)
	assert.Equal(t, 1, list.Pagination.Pages)

	list, err := c.ListThoughts(ctx, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, api.DefaultThoughtsPage, list.Pagination.Limit)
	assert.Equal(t, 1, list.Pagination.Page)
}

func TestCleanup(t *testing.T) {
	f := newFixture(t)
	c := f.client(t, "u1")
	ctx := context.Background()

	dealt, err := c.CreateThought(ctx, thought.Draft{Text: "dealt"})
	require.NoError(t, err)
	_, err = c.CreateThought(ctx, thought.Draft{Text: "keep"})
	require.NoError(t, err)
	yes := true
	_, err = c.UpdateThought(ctx, dealt.ID, thought.Patch{IsDealtWith: &yes})
	require.NoError(t, err)

	res, err := c.Cleanup(ctx)
	require.NoError(t, err)
	assert.Zero(t, res.DeletedCount)

	f.clock.Set(f.clock.Now().Add(24 * time.Hour))
	res, err = c.Cleanup(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, res.DeletedCount)

	list, err := c.ListThoughts(ctx, 1, 10)
	require.NoError(t, err)
	require.Len(t, list.Thoughts, 1)
	assert.Equal(t, "keep", list.Thoughts[0].Text)
}

func TestGlobalCleanupKey(t *testing.T) {
	f := newFixture(t, WithCleanupKey("sekret"))
	c := f.client(t, "u1")
	ctx := context.Background()

	_, err := c.GlobalCleanup(ctx, "")
	assert.True(t, apperr.IsAuth(err), "got %v", err)
	_, err = c.GlobalCleanup(ctx, "wrong")
	assert.True(t, apperr.IsAuth(err), "got %v", err)

	res, err := c.GlobalCleanup(ctx, "sekret")
	require.NoError(t, err)
	assert.Zero(t, res.DeletedCount)
}

func TestSessionsAndStats(t *testing.T) {
	f := newFixture(t)
	c := f.client(t, "u1")
	ctx := context.Background()
	start := f.clock.Now().Add(-25 * time.Minute)
	end := f.clock.Now()

	rec, err := c.CreateSession(ctx, session.Record{
		Mode: session.Focus, Duration: 25, Completed: true, StartTime: start, EndTime: &end,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, rec.ID)
	_, err = c.CreateSession(ctx, session.Record{Mode: session.ShortBreak, Duration: 5, Completed: true, StartTime: end})
	require.NoError(t, err)

	_, err = c.CreateSession(ctx, session.Record{Mode: "nap", Duration: 5, StartTime: end})
	assert.True(t, apperr.IsValidation(err), "got %v", err)

	list, err := c.ListSessions(ctx, api.SessionFilter{Mode: session.Focus})
	require.NoError(t, err)
	require.Len(t, list.Sessions, 1)
	assert.Equal(t, api.DefaultSessionsPage, list.Pagination.Limit)

	sum, err := c.FetchStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, sum.SessionsCompleted)
	assert.Equal(t, 25, sum.TotalFocusTime)
	assert.Equal(t, 1, sum.Streak)
	assert.Equal(t, 2, sum.TodaySessions)
	assert.Len(t, sum.RecentSessions, 2)
}

func TestListSessionsRejectsBadQuery(t *testing.T) {
	f := newFixture(t)
	tok := f.token(t, "u1")
	resp, _ := do(t, http.MethodGet, f.url+"/api/sessions?mode=nap", tok, "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp, _ = do(t, http.MethodGet, f.url+"/api/sessions?startDate=yesterday", tok, "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp, _ = do(t, http.MethodGet, f.url+"/api/sessions?startDate=2026-04-01", tok, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestPreferences(t *testing.T) {
	f := newFixture(t)
	c := f.client(t, "u1")
	ctx := context.Background()

	got, err := c.GetPreferences(ctx)
	require.NoError(t, err)
	assert.Equal(t, prefs.Default(), got)

	focus := 50
	got, err = c.SetPreferences(ctx, prefs.Patch{FocusDuration: &focus})
	require.NoError(t, err)
	assert.Equal(t, 50, got.FocusDuration)
	assert.Equal(t, 5, got.ShortBreakDuration)

	resp, _ := do(t, http.MethodPut, f.url+"/api/user/preferences", f.token(t, "u1"), `{"longBreakDuration":2}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestMetricsEndpoint(t *testing.T) {
	f := newFixture(t)
	_, err := f.client(t, "u1").CreateThought(context.Background(), thought.Draft{Text: "x"})
	require.NoError(t, err)

	resp, body := do(t, http.MethodGet, f.url+"/metrics", "", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "manas_thoughts_created_total 1")
	assert.Contains(t, body, `manas_http_requests_total{method="POST"`)
}

func TestStoreAgainstServer(t *testing.T) {
	f := newFixture(t)
	st := state.New(state.NewRemoteBackend(f.client(t, "u1")), state.WithLogger(zap.NewNop()))
	ctx := context.Background()

	st.AddThought(ctx, "first", nil)
	st.Wait()
	snap := st.Snapshot()
	require.Len(t, snap.Thoughts, 1)
	assert.False(t, snap.Thoughts[0].Provisional())
	id := snap.Thoughts[0].ID

	st.ToggleTaskComplete(ctx, id)
	st.Wait()
	assert.True(t, st.Snapshot().Thoughts[0].IsCompleted)

	st.RemoveThought(ctx, id)
	st.Wait()
	assert.Empty(t, st.Snapshot().Thoughts)

	st.Sync(ctx)
	assert.Empty(t, st.Snapshot().Thoughts, "deleted thoughts stay hidden after resync")
}
