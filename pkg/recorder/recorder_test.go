package recorder

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/rishupatwarisrt10-lgtm/Manas01/pkg/pomodoro"
	"github.com/rishupatwarisrt10-lgtm/Manas01/pkg/session"
)

type fakeSender struct {
	mu   sync.Mutex
	auth bool
	err  error
	gate chan struct{}
	got  []session.Record
}

func (f *fakeSender) Authenticated() bool { return f.auth }

func (f *fakeSender) CreateSession(_ context.Context, rec session.Record) error {
	if f.gate != nil {
		<-f.gate
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.got = append(f.got, rec)
	return f.err
}

type countingSync struct {
	mu    sync.Mutex
	calls int
}

func (c *countingSync) Sync(context.Context) {
	c.mu.Lock()
	c.calls++
	c.mu.Unlock()
}

type counters struct {
	sessions int
	minutes  int
}

func (c *counters) IncrementSessions() { c.sessions++ }
func (c *counters) AddFocusTime(m int) { c.minutes += m }

func focusRecord() session.Record {
	end := time.Now()
	return session.Record{Mode: session.Focus, Duration: 25, Completed: true, StartTime: end.Add(-25 * time.Minute), EndTime: &end}
}

func TestRecordDoesNotBlock(t *testing.T) {
	s := &fakeSender{auth: true, gate: make(chan struct{})}
	r := New(s, nil, zap.NewNop())

	done := make(chan struct{})
	go func() {
		r.Record(focusRecord())
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Record blocked on the sender")
	}
	close(s.gate)
	r.Wait()
	assert.Len(t, s.got, 1)
}

func TestFocusCompletionResyncs(t *testing.T) {
	s := &fakeSender{auth: true}
	rs := &countingSync{}
	r := New(s, rs, nil)

	r.Record(focusRecord())
	r.Record(session.Record{Mode: session.ShortBreak, Duration: 5, Completed: true, StartTime: time.Now()})
	r.Wait()

	assert.Len(t, s.got, 2)
	assert.Equal(t, 1, rs.calls)
}

func TestFailureIsDroppedWithoutResync(t *testing.T) {
	s := &fakeSender{auth: true, err: errors.New("offline")}
	rs := &countingSync{}
	r := New(s, rs, nil)
	r.Record(focusRecord())
	r.Wait()
	assert.Len(t, s.got, 1)
	assert.Zero(t, rs.calls)
}

func TestGuestsAreNotRecorded(t *testing.T) {
	s := &fakeSender{}
	r := New(s, nil, nil)
	r.Record(focusRecord())
	r.Wait()
	assert.Empty(t, s.got)
}

func TestAttachMovesCountersOnFocusOnly(t *testing.T) {
	m := pomodoro.New()
	for _, mode := range session.Modes {
		m.UpdateDuration(mode, 1)
	}
	s := &fakeSender{auth: true}
	c := &counters{}
	r := New(s, nil, nil)
	r.Attach(m, c)

	for i := 0; i < 2; i++ {
		m.StartStop()
		for j := 0; j < 60; j++ {
			m.Tick()
		}
	}
	r.Wait()

	assert.Equal(t, 1, c.sessions)
	assert.Equal(t, 1, c.minutes)
	require.Len(t, s.got, 2)
	assert.ElementsMatch(t, []session.Mode{session.Focus, session.ShortBreak}, []session.Mode{s.got[0].Mode, s.got[1].Mode})
}
