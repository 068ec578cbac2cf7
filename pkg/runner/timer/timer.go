// Package timer runs the interactive pomodoro timer.
package timer

import (
	"context"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"go.uber.org/zap"

	"github.com/rishupatwarisrt10-lgtm/Manas01/pkg/pomodoro"
	"github.com/rishupatwarisrt10-lgtm/Manas01/pkg/prefs"
	"github.com/rishupatwarisrt10-lgtm/Manas01/pkg/recorder"
	"github.com/rishupatwarisrt10-lgtm/Manas01/pkg/state"
)

// Timer wires the state machine to the thought store and the session
// recorder and hands the terminal to Bubble Tea until the user quits.
type Timer struct {
	Store       *state.Store
	Recorder    *recorder.Recorder
	Preferences prefs.Preferences
	Sound       bool
	Logger      *zap.Logger

	// Bell receives the terminal bell; nil means stderr.
	Bell io.Writer
}

func (t *Timer) Do(ctx context.Context) error {
	if t.Store == nil {
		return fmt.Errorf("timer: no store")
	}
	logger := t.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	bell := t.Bell
	if bell == nil {
		bell = os.Stderr
	}

	player := newCuePlayer(bell, t.Sound && t.Preferences.Notifications)
	machine := pomodoro.New(pomodoro.WithPlayer(player), pomodoro.WithPreferences(t.Preferences))
	if t.Recorder != nil {
		t.Recorder.Attach(machine, t.Store)
	}
	if err := t.Store.Follow(ctx); err != nil {
		logger.Debug("not following local changes", zap.Error(err))
	}

	theme := t.Store.Snapshot().Theme
	if t.Preferences.Theme != "" {
		theme = t.Preferences.Theme
	}

	// Honors NO_COLOR and CLICOLOR_FORCE.
	lipgloss.SetColorProfile(termenv.EnvColorProfile())

	p := tea.NewProgram(newModel(ctx, machine, t.Store, player, theme), tea.WithAltScreen())
	go func() {
		<-ctx.Done()
		p.Quit()
	}()
	_, err := p.Run()

	if t.Recorder != nil {
		t.Recorder.Wait()
	}
	t.Store.Wait()
	if err != nil {
		return fmt.Errorf("timer: %w", err)
	}
	return nil
}
