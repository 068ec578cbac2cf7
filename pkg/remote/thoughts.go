package remote

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/rishupatwarisrt10-lgtm/Manas01/pkg/api"
	"github.com/rishupatwarisrt10-lgtm/Manas01/pkg/thought"
)

// ListThoughts returns one page of non-deleted thoughts, newest first.
func (c *Client) ListThoughts(ctx context.Context, page, limit int) (api.ThoughtList, error) {
	q := url.Values{}
	if page > 0 {
		q.Set("page", strconv.Itoa(page))
	}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	var out api.ThoughtList
	err := c.do(ctx, request{method: http.MethodGet, path: "/api/thoughts", query: q, out: &out})
	return out, err
}

// ListAllThoughts follows pagination until n thoughts are collected or the
// server runs out.
func (c *Client) ListAllThoughts(ctx context.Context, n int) ([]thought.Thought, error) {
	out := make([]thought.Thought, 0, n)
	limit := min(api.MaxPageSize, n)
	for page := 1; len(out) < n; page++ {
		list, err := c.ListThoughts(ctx, page, limit)
		if err != nil {
			return nil, err
		}
		out = append(out, list.Thoughts...)
		if len(list.Thoughts) == 0 || page >= list.Pagination.Pages {
			break
		}
	}
	if len(out) > n {
		out = out[:n]
	}
	return out, nil
}

// CreateThought validates the draft locally and posts it.
func (c *Client) CreateThought(ctx context.Context, d thought.Draft) (thought.Thought, error) {
	d = d.Normalize()
	if err := d.Validate(); err != nil {
		return thought.Thought{}, err
	}
	var out thought.Thought
	err := c.do(ctx, request{method: http.MethodPost, path: "/api/thoughts", body: d, out: &out})
	return out, err
}

func (c *Client) UpdateThought(ctx context.Context, id string, p thought.Patch) (thought.Thought, error) {
	p = p.Normalize()
	if err := p.Validate(); err != nil {
		return thought.Thought{}, err
	}
	var out thought.Thought
	err := c.do(ctx, request{method: http.MethodPut, path: "/api/thoughts/" + url.PathEscape(id), body: p, out: &out})
	return out, err
}

// DeleteThought soft-deletes id. Deleting an already deleted thought succeeds;
// an id that never existed yields a NotFound error.
func (c *Client) DeleteThought(ctx context.Context, id string) error {
	return c.do(ctx, request{method: http.MethodDelete, path: "/api/thoughts/" + url.PathEscape(id), out: &api.Message{}})
}

// Cleanup purges the caller's expired thoughts.
func (c *Client) Cleanup(ctx context.Context) (api.CleanupResult, error) {
	var out api.CleanupResult
	err := c.do(ctx, request{method: http.MethodPost, path: "/api/thoughts/cleanup", out: &out})
	return out, err
}

// GlobalCleanup purges expired thoughts for every user.
func (c *Client) GlobalCleanup(ctx context.Context, key string) (api.CleanupResult, error) {
	h := http.Header{}
	if key != "" {
		h.Set(CleanupKeyHeader, key)
	}
	var out api.CleanupResult
	err := c.do(ctx, request{method: http.MethodDelete, path: "/api/thoughts/cleanup", header: h, out: &out})
	return out, err
}
