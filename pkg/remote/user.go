package remote

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/rishupatwarisrt10-lgtm/Manas01/pkg/api"
	"github.com/rishupatwarisrt10-lgtm/Manas01/pkg/prefs"
	"github.com/rishupatwarisrt10-lgtm/Manas01/pkg/session"
	"github.com/rishupatwarisrt10-lgtm/Manas01/pkg/stats"
	"github.com/rishupatwarisrt10-lgtm/Manas01/pkg/thought"
)

func (c *Client) FetchStats(ctx context.Context) (stats.Summary, error) {
	var out stats.Summary
	err := c.do(ctx, request{method: http.MethodGet, path: "/api/user/stats", out: &out})
	return out, err
}

// Snapshot is the server-side view a full resync replaces local state with.
type Snapshot struct {
	Stats    stats.Summary
	Thoughts []thought.Thought
}

// FetchSnapshot loads stats and up to n thoughts in parallel. Soft-deleted
// thoughts are dropped.
func (c *Client) FetchSnapshot(ctx context.Context, n int) (Snapshot, error) {
	var snap Snapshot
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s, err := c.FetchStats(gctx)
		snap.Stats = s
		return err
	})
	g.Go(func() error {
		list, err := c.ListAllThoughts(gctx, n)
		snap.Thoughts = thought.Active(list)
		return err
	})
	if err := g.Wait(); err != nil {
		return Snapshot{}, err
	}
	return snap, nil
}

func (c *Client) CreateSession(ctx context.Context, rec session.Record) (session.Record, error) {
	var out session.Record
	err := c.do(ctx, request{method: http.MethodPost, path: "/api/sessions", body: rec, out: &out})
	return out, err
}

func (c *Client) ListSessions(ctx context.Context, f api.SessionFilter) (api.SessionList, error) {
	q := url.Values{}
	if f.Page > 0 {
		q.Set("page", strconv.Itoa(f.Page))
	}
	if f.Limit > 0 {
		q.Set("limit", strconv.Itoa(f.Limit))
	}
	if f.Mode != "" {
		q.Set("mode", string(f.Mode))
	}
	if f.StartDate != nil {
		q.Set("startDate", f.StartDate.UTC().Format(time.RFC3339))
	}
	if f.EndDate != nil {
		q.Set("endDate", f.EndDate.UTC().Format(time.RFC3339))
	}
	var out api.SessionList
	err := c.do(ctx, request{method: http.MethodGet, path: "/api/sessions", query: q, out: &out})
	return out, err
}

func (c *Client) GetPreferences(ctx context.Context) (prefs.Preferences, error) {
	var out prefs.Preferences
	err := c.do(ctx, request{method: http.MethodGet, path: "/api/user/preferences", out: &out})
	return out, err
}

// SetPreferences applies a partial update and returns the stored result.
func (c *Client) SetPreferences(ctx context.Context, p prefs.Patch) (prefs.Preferences, error) {
	if err := p.Validate(); err != nil {
		return prefs.Preferences{}, err
	}
	var out prefs.Preferences
	err := c.do(ctx, request{method: http.MethodPut, path: "/api/user/preferences", body: p, out: &out})
	return out, err
}

func (c *Client) Health(ctx context.Context) (api.Health, error) {
	var out api.Health
	err := c.do(ctx, request{method: http.MethodGet, path: "/api/health", out: &out})
	return out, err
}
