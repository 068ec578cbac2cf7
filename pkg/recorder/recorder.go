// Package recorder turns timer completions into session records.
package recorder

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/rishupatwarisrt10-lgtm/Manas01/pkg/pomodoro"
	"github.com/rishupatwarisrt10-lgtm/Manas01/pkg/session"
)

// Sender delivers a record to the server.
type Sender interface {
	Authenticated() bool
	CreateSession(ctx context.Context, rec session.Record) error
}

// Resyncer refreshes the client state from the server.
type Resyncer interface {
	Sync(ctx context.Context)
}

// Counters are the local counters a focus completion moves.
type Counters interface {
	IncrementSessions()
	AddFocusTime(minutes int)
}

// Recorder sends each record once, in the background. Failures are logged and
// dropped.
type Recorder struct {
	sender Sender
	resync Resyncer
	logger *zap.Logger
	wg     sync.WaitGroup
}

func New(sender Sender, resync Resyncer, logger *zap.Logger) *Recorder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Recorder{sender: sender, resync: resync, logger: logger.Named("recorder")}
}

// Record hands rec to the sender without blocking. A completed focus session
// is followed by a resync so server-side counters come back.
func (r *Recorder) Record(rec session.Record) {
	if r.sender == nil || !r.sender.Authenticated() {
		return
	}
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		ctx := context.Background()
		if err := r.sender.CreateSession(ctx, rec); err != nil {
			r.logger.Warn("session not recorded",
				zap.String("mode", string(rec.Mode)),
				zap.Time("start", rec.StartTime),
				zap.Error(err))
			return
		}
		r.logger.Debug("session recorded", zap.String("mode", string(rec.Mode)), zap.Int("minutes", rec.Duration))
		if rec.CountsAsFocus() && r.resync != nil {
			r.resync.Sync(ctx)
		}
	}()
}

// Wait blocks until every started send has finished.
func (r *Recorder) Wait() {
	r.wg.Wait()
}

// Attach subscribes to m: focus completions move counters, every completion
// is recorded.
func (r *Recorder) Attach(m *pomodoro.Machine, counters Counters) {
	m.OnComplete(func(rec session.Record) {
		if counters != nil && rec.CountsAsFocus() {
			counters.IncrementSessions()
			counters.AddFocusTime(rec.Duration)
		}
		r.Record(rec)
	})
}
