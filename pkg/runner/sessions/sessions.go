// Package sessions lists recorded pomodoro sessions.
package sessions

import (
	"context"
	"fmt"
	"time"

	"github.com/rishupatwarisrt10-lgtm/Manas01/pkg/api"
	"github.com/rishupatwarisrt10-lgtm/Manas01/pkg/printers"
	"github.com/rishupatwarisrt10-lgtm/Manas01/pkg/session"
	"github.com/rishupatwarisrt10-lgtm/Manas01/pkg/timeutil"
)

type Source interface {
	ListSessions(ctx context.Context, f api.SessionFilter) (api.SessionList, error)
}

// List prints one page of sessions. Since is a look-back window such as "1w";
// empty lists everything. Calendar prints this month's focus days instead.
type List struct {
	Source   Source
	Mode     session.Mode
	Since    string
	Page     int
	Limit    int
	Calendar bool

	Printer *printers.PrettyPrint
	JSON    bool
	Now     func() time.Time
}

func (l *List) Do(ctx context.Context) error {
	pp := l.Printer
	if pp == nil {
		pp = &printers.PrettyPrint{}
	}
	now := time.Now
	if l.Now != nil {
		now = l.Now
	}

	f := api.SessionFilter{Page: l.Page, Limit: l.Limit, Mode: l.Mode}
	title := "Sessions"
	if l.Since != "" {
		start, label, err := timeutil.Since(l.Since, now())
		if err != nil {
			return fmt.Errorf("--since: %w", err)
		}
		f.StartDate = &start
		title = fmt.Sprintf("Sessions (last %s)", label)
	}
	if l.Calendar {
		start := time.Date(now().Year(), now().Month(), 1, 0, 0, 0, 0, now().Location())
		f.StartDate, f.Mode, f.Limit = &start, session.Focus, api.MaxPageSize
	}

	list, err := l.Source.ListSessions(ctx, f)
	if err != nil {
		return err
	}
	if l.JSON {
		return printers.JSON(pp.Out, list)
	}
	if l.Calendar {
		pp.FocusMonth(now(), list.Sessions...)
		return nil
	}
	pp.TitleWithCount(title, list.Pagination.Total, "session")
	pp.Sessions(list.Sessions...)
	if list.Pagination.Pages > 1 {
		pp.Note("page %d of %d", list.Pagination.Page, list.Pagination.Pages)
	}
	return nil
}
