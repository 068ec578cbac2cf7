package prefs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rishupatwarisrt10-lgtm/Manas01/pkg/apperr"
	"github.com/rishupatwarisrt10-lgtm/Manas01/pkg/session"
)

func intp(i int) *int { return &i }

func TestDefaults(t *testing.T) {
	p := Default()
	require.NoError(t, p.Validate())
	assert.Equal(t, 25, p.Minutes(session.Focus))
	assert.Equal(t, 5, p.Minutes(session.ShortBreak))
	assert.Equal(t, 15, p.Minutes(session.LongBreak))
	assert.Equal(t, "animated-gradient", p.Theme)
}

func TestPatchRanges(t *testing.T) {
	tests := []struct {
		name  string
		patch Patch
		ok    bool
	}{
		{"focus min", Patch{FocusDuration: intp(1)}, true},
		{"focus max", Patch{FocusDuration: intp(120)}, true},
		{"focus over", Patch{FocusDuration: intp(121)}, false},
		{"focus zero", Patch{FocusDuration: intp(0)}, false},
		{"short over", Patch{ShortBreakDuration: intp(31)}, false},
		{"long under", Patch{LongBreakDuration: intp(4)}, false},
		{"long ok", Patch{LongBreakDuration: intp(60)}, true},
		{"empty", Patch{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.patch.Validate()
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.True(t, apperr.IsValidation(err), "got %v", err)
			}
		})
	}
}

func TestApply(t *testing.T) {
	theme := "midnight"
	off := false
	got := Patch{FocusDuration: intp(50), Theme: &theme, Notifications: &off}.Apply(Default())
	assert.Equal(t, 50, got.FocusDuration)
	assert.Equal(t, 5, got.ShortBreakDuration)
	assert.Equal(t, "midnight", got.Theme)
	assert.False(t, got.Notifications)
}
