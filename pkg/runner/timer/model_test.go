package timer

import (
	"context"
	"io"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/rishupatwarisrt10-lgtm/Manas01/pkg/chime"
	"github.com/rishupatwarisrt10-lgtm/Manas01/pkg/local"
	"github.com/rishupatwarisrt10-lgtm/Manas01/pkg/pomodoro"
	"github.com/rishupatwarisrt10-lgtm/Manas01/pkg/session"
	"github.com/rishupatwarisrt10-lgtm/Manas01/pkg/state"
)

func newTestModel(t *testing.T) model {
	t.Helper()
	ls := local.New(filepath.Join(t.TempDir(), "store"), zap.NewNop())
	st := state.New(state.NewGuestBackend(ls))
	st.Init(context.Background())
	p := newCuePlayer(io.Discard, false)
	return newModel(context.Background(), pomodoro.New(pomodoro.WithPlayer(p)), st, p, "")
}

func keys(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func send(m model, msgs ...tea.Msg) model {
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(model)
	}
	return m
}

func TestStartStopAndTick(t *testing.T) {
	m := newTestModel(t)
	m = send(m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	assert.True(t, m.machine.State().Active)

	m = send(m, tickMsg{epoch: m.epoch}, tickMsg{epoch: m.epoch})
	assert.Equal(t, 25*60-2, m.machine.State().Remaining)
	assert.Contains(t, m.View(), "24:58")
}

func TestTicksBelongToTheRunThatStarted(t *testing.T) {
	m := newTestModel(t)
	space := tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}

	next, cmd := m.Update(tickMsg{epoch: m.epoch})
	m = next.(model)
	assert.Nil(t, cmd)
	assert.Equal(t, 25*60, m.machine.State().Remaining)

	next, cmd = m.Update(space)
	m = next.(model)
	require.NotNil(t, cmd)
	first := m.epoch

	// pause and resume starts a new run
	m = send(m, space, space)
	require.True(t, m.machine.State().Active)
	m = send(m, tickMsg{epoch: first})
	assert.Equal(t, 25*60, m.machine.State().Remaining)

	m = send(m, tickMsg{epoch: m.epoch})
	assert.Equal(t, 25*60-1, m.machine.State().Remaining)
}


func TestModeKeysAndDurationAdjust(t *testing.T) {
	m := newTestModel(t)
	m = send(m, keys("2"))
	assert.Equal(t, session.ShortBreak, m.machine.State().Mode)

	m = send(m, keys("+"), keys("+"))
	assert.Equal(t, 7*60, m.machine.State().Remaining)
	m = send(m, keys("-"))
	assert.Equal(t, 6*60, m.machine.State().Remaining)

	m = send(m, keys("3"))
	assert.Equal(t, session.LongBreak, m.machine.State().Mode)
	assert.Contains(t, m.View(), "Long Break")
}

func TestCaptureAddsThoughtWithSessionMeta(t *testing.T) {
	m := newTestModel(t)
	m = send(m, keys("n"))
	require.True(t, m.capturing)

	m = send(m, keys("water plants"), tea.KeyMsg{Type: tea.KeyEnter})
	assert.False(t, m.capturing)

	list := m.store.Snapshot().Thoughts
	require.Len(t, list, 1)
	assert.Equal(t, "water plants", list[0].Text)
	require.NotNil(t, list[0].Session)
	assert.Equal(t, session.Focus, list[0].Session.Mode)
	assert.Equal(t, 1, list[0].Session.SessionNumber)
	assert.Contains(t, m.View(), "water plants")
}

func TestCaptureEscapeDiscards(t *testing.T) {
	m := newTestModel(t)
	m = send(m, keys("n"), keys("nope"), tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, m.capturing)
	assert.Empty(t, m.store.Snapshot().Thoughts)
}

func TestSoundToggle(t *testing.T) {
	m := newTestModel(t)
	m = send(m, keys("s"))
	assert.True(t, m.player.Enabled())
	m = send(m, keys("s"))
	assert.False(t, m.player.Enabled())
}

func TestCueUpdatesStatus(t *testing.T) {
	m := newTestModel(t)
	m = send(m, cueMsg(chime.FocusEnd))
	assert.Equal(t, chime.FocusEnd.String(), m.status)
}

func TestThemeFallsBackAndTintsBreaks(t *testing.T) {
	focus := themeFor("no-such-theme", session.Focus)
	assert.Equal(t, themeFor("animated-gradient", session.Focus).from, focus.from)
	assert.NotEqual(t, focus.from, themeFor("animated-gradient", session.ShortBreak).from)
}
