// Package chime plays the audible cues of the timer.
package chime

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"github.com/rishupatwarisrt10-lgtm/Manas01/pkg/session"
)

type Cue int

const (
	TimerStart Cue = iota
	FocusStart
	FocusEnd
	BreakStart
	BreakEnd
	LongBreakStart
	LongBreakEnd
)

func (c Cue) String() string {
	switch c {
	case TimerStart:
		return "timer-start"
	case FocusStart:
		return "focus-start"
	case FocusEnd:
		return "focus-end"
	case BreakStart:
		return "break-start"
	case BreakEnd:
		return "break-end"
	case LongBreakStart:
		return "long-break-start"
	case LongBreakEnd:
		return "long-break-end"
	}
	return fmt.Sprintf("cue(%d)", int(c))
}

// StartOf is the cue played when mode begins.
func StartOf(mode session.Mode) Cue {
	switch mode {
	case session.ShortBreak:
		return BreakStart
	case session.LongBreak:
		return LongBreakStart
	}
	return FocusStart
}

// EndOf is the cue played when mode runs out.
func EndOf(mode session.Mode) Cue {
	switch mode {
	case session.ShortBreak:
		return BreakEnd
	case session.LongBreak:
		return LongBreakEnd
	}
	return FocusEnd
}

// Player is the audio capability handed to the timer. Play must not block.
type Player interface {
	Initialize() error
	Enable()
	Disable()
	Enabled() bool
	Play(Cue)
}

// Nop plays nothing.
type Nop struct{}

func (Nop) Initialize() error { return nil }
func (Nop) Enable()           {}
func (Nop) Disable()          {}
func (Nop) Enabled() bool     { return false }
func (Nop) Play(Cue)          {}

// Terminal rings the terminal bell and prints a colored marker for end cues.
// It stays silent until Initialize succeeds.
type Terminal struct {
	mu          sync.Mutex
	out         io.Writer
	fd          uintptr
	enabled     bool
	initialized bool
}

// NewTerminal writes cues to stderr, leaving stdout to the renderer.
func NewTerminal() *Terminal {
	return &Terminal{out: os.Stderr, fd: os.Stderr.Fd(), enabled: true}
}

// NewTerminalWriter is NewTerminal with an arbitrary writer. The writer is
// treated as a terminal.
func NewTerminalWriter(w io.Writer) *Terminal {
	return &Terminal{out: w, enabled: true, initialized: true}
}

func (t *Terminal) Initialize() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.initialized {
		return nil
	}
	if !isatty.IsTerminal(t.fd) && !isatty.IsCygwinTerminal(t.fd) {
		return fmt.Errorf("chime: output is not a terminal")
	}
	t.initialized = true
	return nil
}

func (t *Terminal) Enable() {
	t.mu.Lock()
	t.enabled = true
	t.mu.Unlock()
}

func (t *Terminal) Disable() {
	t.mu.Lock()
	t.enabled = false
	t.mu.Unlock()
}

func (t *Terminal) Enabled() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.enabled && t.initialized
}

func (t *Terminal) Play(c Cue) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.enabled || !t.initialized {
		return
	}
	switch c {
	case FocusEnd, BreakEnd, LongBreakEnd:
		_, _ = fmt.Fprint(t.out, "\a\a")
	default:
		_, _ = fmt.Fprint(t.out, "\a")
	}
	_, _ = fmt.Fprint(t.out, color.New(color.Faint).Sprintf("[%s]", c))
}
