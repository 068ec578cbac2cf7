package timer

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/muesli/reflow/truncate"

	"github.com/rishupatwarisrt10-lgtm/Manas01/pkg/chime"
	"github.com/rishupatwarisrt10-lgtm/Manas01/pkg/pomodoro"
	"github.com/rishupatwarisrt10-lgtm/Manas01/pkg/session"
	"github.com/rishupatwarisrt10-lgtm/Manas01/pkg/state"
	"github.com/rishupatwarisrt10-lgtm/Manas01/pkg/thought"
)

const recentThoughts = 5

type (
	// tickMsg carries the epoch of the run that scheduled it; ticks from an
	// earlier run are dropped.
	tickMsg  struct{ epoch int }
	eventMsg state.Event
	cueMsg   chime.Cue
)

type model struct {
	ctx     context.Context
	machine *pomodoro.Machine
	store   *state.Store
	player  *cuePlayer
	theme   string

	bar       progress.Model
	input     textinput.Model
	capturing bool
	status    string
	width     int
	interval  time.Duration
	epoch     int
}

func newModel(ctx context.Context, m *pomodoro.Machine, s *state.Store, p *cuePlayer, theme string) model {
	ti := textinput.New()
	ti.Placeholder = "What's on your mind?"
	ti.CharLimit = thought.MaxTextLength
	ti.Prompt = "› "

	return model{
		ctx:      ctx,
		machine:  m,
		store:    s,
		player:   p,
		theme:    theme,
		bar:      progress.New(progress.WithoutPercentage()),
		input:    ti,
		width:    60,
		interval: time.Second,
	}
}

// tick schedules the next decrement one interval from now.
func (m model) tick() tea.Cmd {
	epoch := m.epoch
	return tea.Tick(m.interval, func(time.Time) tea.Msg { return tickMsg{epoch: epoch} })
}

func (m model) waitEvent() tea.Cmd {
	events := m.store.Events()
	return func() tea.Msg {
		ev, ok := <-events
		if !ok {
			return nil
		}
		return eventMsg(ev)
	}
}

func (m model) waitCue() tea.Cmd {
	cues := m.player.cues
	return func() tea.Msg {
		return cueMsg(<-cues)
	}
}

func (m model) Init() tea.Cmd {
	return tea.Batch(m.waitEvent(), m.waitCue())
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tickMsg:
		if msg.epoch != m.epoch || !m.machine.State().Active {
			return m, nil
		}
		m.machine.Tick()
		return m, m.tick()

	case eventMsg:
		switch msg.Type {
		case state.ThoughtRestored:
			m.status = "could not delete, thought restored"
		case state.Synced:
			m.status = "synced"
		}
		return m, m.waitEvent()

	case cueMsg:
		m.status = chime.Cue(msg).String()
		return m, m.waitCue()

	case tea.KeyMsg:
		if m.capturing {
			return m.updateCapture(msg)
		}
		return m.updateNormal(msg)
	}
	return m, nil
}

func (m model) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	st := m.machine.State()
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case " ", "space", "enter":
		m.machine.StartStop()
		if !st.Active && m.machine.State().Active {
			m.epoch++
			return m, m.tick()
		}
	case "r":
		m.machine.Reset()
		m.status = "reset"
	case "1":
		m.machine.SwitchMode(session.Focus)
	case "2":
		m.machine.SwitchMode(session.ShortBreak)
	case "3":
		m.machine.SwitchMode(session.LongBreak)
	case "+", "=":
		m.machine.UpdateDuration(st.Mode, min(st.Total()/60+1, 120))
	case "-", "_":
		m.machine.UpdateDuration(st.Mode, max(st.Total()/60-1, 1))
	case "s":
		if m.player.Enabled() {
			m.player.Disable()
			m.status = "sound off"
		} else {
			m.player.Enable()
			m.status = "sound on"
		}
	case "n", "t":
		m.capturing = true
		m.input.SetValue("")
		return m, m.input.Focus()
	}
	return m, nil
}

func (m model) updateCapture(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.capturing = false
		m.input.Blur()
		return m, nil
	case "enter":
		text := strings.TrimSpace(m.input.Value())
		m.capturing = false
		m.input.Blur()
		if text == "" {
			return m, nil
		}
		st := m.machine.State()
		m.store.AddThought(m.ctx, text, &thought.Meta{Mode: st.Mode, SessionNumber: st.SessionCount + 1})
		m.machine.NoteCapture()
		m.status = "captured"
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func clock(seconds int) string {
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

func (m model) View() string {
	st := m.machine.State()
	app := m.store.Snapshot()
	sty := themeFor(m.theme, st.Mode)

	bar := m.bar
	bar.Width = max(10, min(m.width-4, 60))
	progress.WithGradient(sty.from, sty.to)(&bar)

	var b strings.Builder
	b.WriteString(sty.title.Render("manas · " + st.Mode.Label()))
	b.WriteString("\n\n")
	b.WriteString(sty.clock.Render(clock(st.Remaining)))
	if !st.Active {
		b.WriteString(sty.faint.Render("  paused"))
	}
	b.WriteString("\n\n")
	b.WriteString(bar.ViewAs(st.Progress()))
	b.WriteString("\n\n")
	b.WriteString(sty.faint.Render(fmt.Sprintf("session #%d · %d completed · %d min focused",
		st.SessionCount+1, app.SessionsCompleted, app.TotalFocusTime)))
	b.WriteString("\n\n")

	if m.capturing {
		b.WriteString(m.input.View())
		b.WriteString("\n\n")
	}

	active := thought.Active(app.Thoughts)
	for i, t := range active {
		if i == recentThoughts {
			b.WriteString(sty.faint.Render(fmt.Sprintf("  … %d more", len(active)-recentThoughts)))
			b.WriteString("\n")
			break
		}
		glyph := "•"
		if t.IsCompleted {
			glyph = "✕"
		}
		b.WriteString("  " + glyph + " " + truncate.StringWithTail(t.Text, uint(max(10, m.width-6)), "…") + "\n")
	}
	if len(active) > 0 {
		b.WriteString("\n")
	}

	if m.status != "" {
		b.WriteString(sty.status.Render(m.status))
		b.WriteString("\n")
	}
	b.WriteString(sty.faint.Render("space start/pause · r reset · 1/2/3 mode · +/- minutes · n note · s sound · q quit"))
	b.WriteString("\n")
	return b.String()
}
