package timer

import (
	"fmt"
	"io"
	"sync"

	"github.com/rishupatwarisrt10-lgtm/Manas01/pkg/chime"
)

// cuePlayer rings the bell on out and forwards each cue to the model, which
// owns the screen.
type cuePlayer struct {
	mu      sync.Mutex
	out     io.Writer
	enabled bool
	cues    chan chime.Cue
}

var _ chime.Player = (*cuePlayer)(nil)

func newCuePlayer(out io.Writer, enabled bool) *cuePlayer {
	return &cuePlayer{out: out, enabled: enabled, cues: make(chan chime.Cue, 8)}
}

func (p *cuePlayer) Initialize() error { return nil }

func (p *cuePlayer) Enable() {
	p.mu.Lock()
	p.enabled = true
	p.mu.Unlock()
}

func (p *cuePlayer) Disable() {
	p.mu.Lock()
	p.enabled = false
	p.mu.Unlock()
}

func (p *cuePlayer) Enabled() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.enabled
}

func (p *cuePlayer) Play(c chime.Cue) {
	if p.Enabled() && p.out != nil {
		_, _ = fmt.Fprint(p.out, "\a")
	}
	select {
	case p.cues <- c:
	default:
	}
}
