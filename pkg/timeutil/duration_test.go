package timeutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseWindow(t *testing.T) {
	tests := []struct {
		in    string
		want  time.Duration
		label string
	}{
		{"", week, "1w"},
		{"3d", 3 * day, "3d"},
		{"1w2d6h30m", week + 2*day + 6*time.Hour + 30*time.Minute, "1w2d6h30m"},
		{"90 mins", 90 * time.Minute, "1h30m"},
		{"2 Weeks", 2 * week, "2w"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, label, err := ParseWindow(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.label, label)
		})
	}
}

func TestParseWindowInvalid(t *testing.T) {
	for _, in := range []string{"noop", "3x", "0d", "d3"} {
		_, _, err := ParseWindow(in)
		assert.Error(t, err, in)
	}
}

func TestSinceSnapsWholeDays(t *testing.T) {
	now := time.Date(2026, 4, 10, 14, 30, 0, 0, time.UTC)

	got, label, err := Since("1d", now)
	require.NoError(t, err)
	assert.Equal(t, "1d", label)
	assert.Equal(t, time.Date(2026, 4, 9, 0, 0, 0, 0, time.UTC), got)

	got, _, err = Since("2h", now)
	require.NoError(t, err)
	assert.Equal(t, now.Add(-2*time.Hour), got)
}

func TestFormatWindow(t *testing.T) {
	assert.Equal(t, "0s", FormatWindow(0))
	assert.Equal(t, "0s", FormatWindow(500*time.Millisecond))
	assert.Equal(t, "1h25m", FormatWindow(85*time.Minute))
}
