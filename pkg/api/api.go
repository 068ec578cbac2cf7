// Package api holds the REST envelopes shared by the server and the client.
package api

import (
	"time"

	"github.com/rishupatwarisrt10-lgtm/Manas01/pkg/session"
	"github.com/rishupatwarisrt10-lgtm/Manas01/pkg/thought"
)

const (
	// MaxPageSize caps the thoughts limit query parameter.
	MaxPageSize = 100
	// DefaultThoughtsPage is used when no limit is supplied for thoughts.
	DefaultThoughtsPage = 50
	// DefaultSessionsPage is used when no limit is supplied for sessions.
	DefaultSessionsPage = 20
)

type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
	Pages int `json:"pages"`
}

// NewPagination derives the page count from total and limit.
func NewPagination(page, limit, total int) Pagination {
	pages := 0
	if limit > 0 {
		pages = (total + limit - 1) / limit
	}
	return Pagination{Page: page, Limit: limit, Total: total, Pages: pages}
}

type ThoughtList struct {
	Thoughts   []thought.Thought `json:"thoughts"`
	Pagination Pagination        `json:"pagination"`
}

type SessionList struct {
	Sessions   []session.Record `json:"sessions"`
	Pagination Pagination       `json:"pagination"`
}

// SessionFilter narrows GET /api/sessions.
type SessionFilter struct {
	Page      int
	Limit     int
	Mode      session.Mode
	StartDate *time.Time
	EndDate   *time.Time
}

type Message struct {
	Message string `json:"message"`
}

type CleanupResult struct {
	Message      string `json:"message"`
	DeletedCount int64  `json:"deletedCount"`
}

type ErrorBody struct {
	Error string `json:"error"`
}

type Health struct {
	Status string    `json:"status"`
	Time   time.Time `json:"time"`
}
