package pomodoro

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rishupatwarisrt10-lgtm/Manas01/pkg/chime"
	"github.com/rishupatwarisrt10-lgtm/Manas01/pkg/session"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }
func newClock() *fakeClock                   { return &fakeClock{t: time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)} }

type recordingPlayer struct {
	chime.Nop
	cues []chime.Cue
}

func (p *recordingPlayer) Play(c chime.Cue) { p.cues = append(p.cues, c) }

func run(m *Machine, ticks int) {
	for i := 0; i < ticks; i++ {
		m.Tick()
	}
}

func TestDefaults(t *testing.T) {
	s := New().State()
	assert.Equal(t, session.Focus, s.Mode)
	assert.Equal(t, 25*60, s.Remaining)
	assert.False(t, s.Active)
	assert.Equal(t, 15*60, s.Durations[session.LongBreak])
}

func TestFocusCompletesIntoShortBreakOnOneTick(t *testing.T) {
	clock := newClock()
	player := &recordingPlayer{}
	m := New(WithClock(clock.Now), WithPlayer(player))
	var got []session.Record
	m.OnComplete(func(r session.Record) { got = append(got, r) })

	m.StartStop()
	m.UpdateDuration(session.ShortBreak, 5)
	m.mu.Lock()
	m.remaining = 1
	m.mu.Unlock()
	clock.Advance(25 * time.Minute)
	m.Tick()

	s := m.State()
	assert.Equal(t, session.ShortBreak, s.Mode)
	assert.Equal(t, 5*60, s.Remaining)
	assert.False(t, s.Active)
	assert.Equal(t, 1, s.SessionCount)
	assert.Nil(t, s.StartedAt)

	require.Len(t, got, 1)
	rec := got[0]
	assert.Equal(t, session.Focus, rec.Mode)
	assert.Equal(t, 25, rec.Duration)
	assert.True(t, rec.Completed)
	assert.Equal(t, time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC), rec.StartTime)
	require.NotNil(t, rec.EndTime)
	assert.Equal(t, 0, rec.ThoughtsCaptured)
	assert.Equal(t, []chime.Cue{chime.TimerStart, chime.FocusEnd, chime.BreakStart}, player.cues)
}

func TestEveryFourthFocusIsFollowedByLongBreak(t *testing.T) {
	m := New()
	for _, mode := range session.Modes {
		m.UpdateDuration(mode, 1)
	}
	var modes []session.Mode
	for i := 0; i < 8; i++ {
		m.StartStop()
		run(m, 60)
		modes = append(modes, m.State().Mode)
	}
	assert.Equal(t, []session.Mode{
		session.ShortBreak, session.Focus,
		session.ShortBreak, session.Focus,
		session.ShortBreak, session.Focus,
		session.LongBreak, session.Focus,
	}, modes)
	assert.Equal(t, 4, m.State().SessionCount)
}

func TestTickDecrementsOnlyWhileActive(t *testing.T) {
	m := New()
	m.Tick()
	assert.Equal(t, 25*60, m.State().Remaining)
	m.StartStop()
	run(m, 3)
	assert.Equal(t, 25*60-3, m.State().Remaining)
	m.StartStop()
	m.Tick()
	assert.Equal(t, 25*60-3, m.State().Remaining)
}

func TestPauseAccumulates(t *testing.T) {
	clock := newClock()
	m := New(WithClock(clock.Now))
	m.StartStop()
	start := *m.State().StartedAt

	clock.Advance(time.Minute)
	m.StartStop()
	clock.Advance(30 * time.Second)
	m.StartStop()
	clock.Advance(time.Minute)
	m.StartStop()
	clock.Advance(15 * time.Second)
	m.StartStop()

	s := m.State()
	assert.EqualValues(t, 45_000, s.PausedMs)
	assert.Equal(t, start, *s.StartedAt)
}

func TestUpdateDurationWhileActive(t *testing.T) {
	m := New()
	m.StartStop()
	run(m, 10)
	m.UpdateDuration(session.Focus, 50)
	s := m.State()
	assert.Equal(t, 3000, s.Remaining)
	assert.False(t, s.Active)

	m.UpdateDuration(session.LongBreak, 20)
	assert.Equal(t, 3000, m.State().Remaining)
	assert.Equal(t, 1200, m.State().Durations[session.LongBreak])
}

func TestResetDoesNotEmit(t *testing.T) {
	m := New()
	emitted := 0
	m.OnComplete(func(session.Record) { emitted++ })
	m.StartStop()
	run(m, 100)
	m.Reset()
	s := m.State()
	assert.Equal(t, 25*60, s.Remaining)
	assert.False(t, s.Active)
	assert.Nil(t, s.StartedAt)
	assert.Zero(t, emitted)
}

func TestSwitchModeIdlesAtFullDuration(t *testing.T) {
	player := &recordingPlayer{}
	m := New(WithPlayer(player))
	m.StartStop()
	run(m, 5)
	m.SwitchMode(session.LongBreak)
	s := m.State()
	assert.Equal(t, session.LongBreak, s.Mode)
	assert.Equal(t, 15*60, s.Remaining)
	assert.False(t, s.Active)
	assert.Nil(t, s.StartedAt)
	assert.Equal(t, chime.LongBreakStart, player.cues[len(player.cues)-1])

	m.SwitchMode("nap")
	assert.Equal(t, session.LongBreak, m.State().Mode)
}

func TestProgress(t *testing.T) {
	s := State{Mode: session.Focus, Remaining: 450, Durations: map[session.Mode]int{session.Focus: 600}}
	assert.InDelta(t, 0.25, s.Progress(), 1e-9)
}

func TestNoteCaptureCountsOnlyTrackedRuns(t *testing.T) {
	m := New()
	m.UpdateDuration(session.Focus, 1)
	var got []session.Record
	m.OnComplete(func(r session.Record) { got = append(got, r) })

	m.NoteCapture()
	m.StartStop()
	m.NoteCapture()
	m.NoteCapture()
	run(m, 60)

	require.Len(t, got, 1)
	assert.Equal(t, 2, got[0].ThoughtsCaptured)

	m.SwitchMode(session.Focus)
	m.StartStop()
	run(m, 60)
	require.Len(t, got, 2)
	assert.Equal(t, 0, got[1].ThoughtsCaptured)
}
