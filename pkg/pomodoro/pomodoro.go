// Package pomodoro is the countdown state machine behind the timer.
package pomodoro

import (
	"sync"
	"time"

	"github.com/rishupatwarisrt10-lgtm/Manas01/pkg/chime"
	"github.com/rishupatwarisrt10-lgtm/Manas01/pkg/prefs"
	"github.com/rishupatwarisrt10-lgtm/Manas01/pkg/session"
)

// LongBreakEvery is the number of focus runs between long breaks.
const LongBreakEvery = 4

// State is a read-only view of the machine.
type State struct {
	Mode         session.Mode
	Remaining    int
	Active       bool
	Durations    map[session.Mode]int
	SessionCount int
	StartedAt    *time.Time
	PausedMs     int64
}

// Total is the configured length of the current mode in seconds.
func (s State) Total() int {
	return s.Durations[s.Mode]
}

// Progress is the elapsed fraction of the current mode, 0..1.
func (s State) Progress() float64 {
	total := s.Total()
	if total <= 0 {
		return 0
	}
	return float64(total-s.Remaining) / float64(total)
}

// CompletionHandler receives the record of a finished run. Handlers run on the
// ticking goroutine and must not block.
type CompletionHandler func(session.Record)

// Machine is safe for concurrent use.
type Machine struct {
	mu        sync.Mutex
	mode      session.Mode
	remaining int
	active    bool
	durations map[session.Mode]int
	count     int
	startedAt *time.Time
	pausedAt  *time.Time
	pausedMs  int64
	captured  int

	now      func() time.Time
	player   chime.Player
	handlers []CompletionHandler
}

type Option func(*Machine)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(m *Machine) { m.now = now }
}

func WithPlayer(p chime.Player) Option {
	return func(m *Machine) {
		if p != nil {
			m.player = p
		}
	}
}

// WithPreferences seeds the mode durations.
func WithPreferences(p prefs.Preferences) Option {
	return func(m *Machine) {
		for _, mode := range session.Modes {
			m.durations[mode] = p.Minutes(mode) * 60
		}
	}
}

// New returns an idle machine in focus mode with the default durations.
func New(opts ...Option) *Machine {
	m := &Machine{
		mode:      session.Focus,
		durations: map[session.Mode]int{},
		now:       time.Now,
		player:    chime.Nop{},
	}
	WithPreferences(prefs.Default())(m)
	for _, opt := range opts {
		opt(m)
	}
	m.remaining = m.durations[m.mode]
	return m
}

// OnComplete registers h for every natural completion.
func (m *Machine) OnComplete(h CompletionHandler) {
	m.mu.Lock()
	m.handlers = append(m.handlers, h)
	m.mu.Unlock()
}

func (m *Machine) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	durations := make(map[session.Mode]int, len(m.durations))
	for k, v := range m.durations {
		durations[k] = v
	}
	s := State{
		Mode:         m.mode,
		Remaining:    m.remaining,
		Active:       m.active,
		Durations:    durations,
		SessionCount: m.count,
		PausedMs:     m.pausedMs,
	}
	if m.startedAt != nil {
		t := *m.startedAt
		s.StartedAt = &t
	}
	return s
}

// StartStop toggles the countdown. The first start of a run stamps its start
// time; a resume adds the paused span to the run's paused total.
func (m *Machine) StartStop() {
	m.mu.Lock()
	now := m.now()
	m.active = !m.active
	started := m.active
	if m.active {
		if m.startedAt == nil {
			m.startedAt = &now
		} else if m.pausedAt != nil {
			m.pausedMs += now.Sub(*m.pausedAt).Milliseconds()
		}
		m.pausedAt = nil
	} else {
		m.pausedAt = &now
	}
	m.mu.Unlock()

	if started {
		m.player.Play(chime.TimerStart)
	}
}

// Tick advances the countdown by one second. Reaching zero completes the run:
// the machine goes idle, moves to the next mode and notifies the handlers.
func (m *Machine) Tick() {
	m.mu.Lock()
	if !m.active || m.remaining <= 0 {
		m.mu.Unlock()
		return
	}
	m.remaining--
	if m.remaining > 0 {
		m.mu.Unlock()
		return
	}

	m.active = false
	finished := m.mode
	var rec *session.Record
	if m.startedAt != nil {
		end := m.now()
		rec = &session.Record{
			Mode:             finished,
			Duration:         m.durations[finished] / 60,
			Completed:        true,
			StartTime:        *m.startedAt,
			EndTime:          &end,
			PausedDuration:   m.pausedMs,
			ThoughtsCaptured: m.captured,
		}
	}

	next := session.Focus
	if finished == session.Focus {
		m.count++
		next = session.ShortBreak
		if m.count%LongBreakEvery == 0 {
			next = session.LongBreak
		}
	}
	m.mode = next
	m.remaining = m.durations[next]
	m.clearTracking()
	handlers := append([]CompletionHandler(nil), m.handlers...)
	m.mu.Unlock()

	m.player.Play(chime.EndOf(finished))
	m.player.Play(chime.StartOf(next))
	if rec == nil {
		return
	}
	for _, h := range handlers {
		h(*rec)
	}
}

// SwitchMode forces mode and leaves the machine idle at its full duration.
// A run in progress is abandoned without a record: its start time is not
// carried into the new mode.
func (m *Machine) SwitchMode(mode session.Mode) {
	if !mode.Valid() {
		return
	}
	m.mu.Lock()
	m.mode = mode
	m.remaining = m.durations[mode]
	m.active = false
	m.clearTracking()
	m.mu.Unlock()

	m.player.Play(chime.StartOf(mode))
}

// Reset rewinds the current mode without recording anything.
func (m *Machine) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.remaining = m.durations[m.mode]
	m.active = false
	m.clearTracking()
}

// UpdateDuration sets the length of mode in minutes. Changing the current
// mode rewinds it and pauses the countdown.
func (m *Machine) UpdateDuration(mode session.Mode, minutes int) {
	if !mode.Valid() {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.durations[mode] = minutes * 60
	if mode != m.mode {
		return
	}
	m.remaining = minutes * 60
	if m.active {
		now := m.now()
		m.pausedAt = &now
	}
	m.active = false
}

// NoteCapture counts a thought captured during the tracked run. The count is
// reported as ThoughtsCaptured on the run's record; a machine that never sees
// NoteCapture reports 0. It is ignored when no run has started.
func (m *Machine) NoteCapture() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.startedAt != nil {
		m.captured++
	}
}

func (m *Machine) clearTracking() {
	m.startedAt = nil
	m.pausedAt = nil
	m.pausedMs = 0
	m.captured = 0
}
