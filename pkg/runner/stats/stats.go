// Package stats prints the dashboard numbers.
package stats

import (
	"context"

	"github.com/rishupatwarisrt10-lgtm/Manas01/pkg/printers"
	"github.com/rishupatwarisrt10-lgtm/Manas01/pkg/state"
	"github.com/rishupatwarisrt10-lgtm/Manas01/pkg/stats"
)

type Source interface {
	FetchStats(ctx context.Context) (stats.Summary, error)
}

// Stats shows server statistics when Source is set and the device counters
// otherwise.
type Stats struct {
	Source  Source
	Store   *state.Store
	Printer *printers.PrettyPrint
	JSON    bool
}

func (s *Stats) Do(ctx context.Context) error {
	pp := s.Printer
	if pp == nil {
		pp = &printers.PrettyPrint{}
	}
	if s.Source != nil {
		sum, err := s.Source.FetchStats(ctx)
		if err != nil {
			return err
		}
		if s.JSON {
			return printers.JSON(pp.Out, sum)
		}
		pp.Stats(sum)
		return nil
	}

	snap := s.Store.Snapshot()
	if s.JSON {
		return printers.JSON(pp.Out, map[string]int{
			"sessionsCompleted": snap.SessionsCompleted,
			"totalFocusTime":    snap.TotalFocusTime,
			"streak":            snap.Streak,
			"activeThoughts":    len(snap.Thoughts),
		})
	}
	pp.LocalStats(snap.SessionsCompleted, snap.TotalFocusTime, snap.Streak, len(snap.Thoughts))
	return nil
}
