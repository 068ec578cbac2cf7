package chime

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"

	"github.com/rishupatwarisrt10-lgtm/Manas01/pkg/session"
)

func TestCueForMode(t *testing.T) {
	assert.Equal(t, FocusStart, StartOf(session.Focus))
	assert.Equal(t, BreakStart, StartOf(session.ShortBreak))
	assert.Equal(t, LongBreakEnd, EndOf(session.LongBreak))
	assert.Equal(t, "break-end", EndOf(session.ShortBreak).String())
}

func TestTerminalRespectsEnable(t *testing.T) {
	color.NoColor = true
	var buf bytes.Buffer
	p := NewTerminalWriter(&buf)
	assert.NoError(t, p.Initialize())

	p.Play(FocusEnd)
	assert.Equal(t, "\a\a[focus-end]", buf.String())

	p.Disable()
	assert.False(t, p.Enabled())
	p.Play(TimerStart)
	assert.Equal(t, 1, strings.Count(buf.String(), "["))

	p.Enable()
	p.Play(TimerStart)
	assert.True(t, strings.HasSuffix(buf.String(), "\a[timer-start]"))
}

func TestNopIsSilent(t *testing.T) {
	var p Player = Nop{}
	assert.NoError(t, p.Initialize())
	p.Play(FocusStart)
	assert.False(t, p.Enabled())
}
