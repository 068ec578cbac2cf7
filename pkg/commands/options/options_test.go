package options

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rishupatwarisrt10-lgtm/Manas01/pkg/session"
)

func TestPrefsPatchOnlyChangedFlags(t *testing.T) {
	o := &PrefsOptions{}
	cmd := &cobra.Command{Use: "set"}
	AddPrefsArgs(cmd, o)
	require.NoError(t, cmd.ParseFlags([]string{"--focus", "50", "--notifications=false"}))

	p := o.Patch(cmd)
	require.NotNil(t, p.FocusDuration)
	assert.Equal(t, 50, *p.FocusDuration)
	require.NotNil(t, p.Notifications)
	assert.False(t, *p.Notifications)
	assert.Nil(t, p.ShortBreakDuration)
	assert.Nil(t, p.LongBreakDuration)
	assert.Nil(t, p.Theme)
}

func TestThoughtMeta(t *testing.T) {
	o := &ThoughtOptions{}
	meta, err := o.Meta()
	require.NoError(t, err)
	assert.Nil(t, meta)

	o = &ThoughtOptions{Mode: "focus", SessionNumber: 3}
	meta, err = o.Meta()
	require.NoError(t, err)
	assert.Equal(t, session.Focus, meta.Mode)
	assert.Equal(t, 3, meta.SessionNumber)

	o = &ThoughtOptions{Mode: "nap"}
	_, err = o.Meta()
	assert.Error(t, err)
}

func TestSessionMode(t *testing.T) {
	o := &SessionOptions{}
	mode, err := o.GetMode()
	require.NoError(t, err)
	assert.Equal(t, session.Mode(""), mode)

	o.Mode = "bogus"
	_, err = o.GetMode()
	assert.Error(t, err)
}
