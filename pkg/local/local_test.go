package local

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/rishupatwarisrt10-lgtm/Manas01/pkg/thought"
)

func TestLoadDefaultsWhenMissing(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "store"), zap.NewNop())
	snap := s.Load()
	assert.Equal(t, DefaultSnapshot(), snap)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "store"), nil)
	want := Snapshot{
		SessionsCompleted: 3,
		Thoughts:          []thought.Thought{{ClientID: "c1", Text: "water plants"}},
		Theme:             "midnight",
		TotalFocusTime:    75,
		Streak:            2,
	}
	s.Save(want)

	got := New(s.BasePath(), nil).Load()
	assert.Equal(t, want.SessionsCompleted, got.SessionsCompleted)
	assert.Equal(t, want.Theme, got.Theme)
	assert.Equal(t, want.TotalFocusTime, got.TotalFocusTime)
	require.Len(t, got.Thoughts, 1)
	assert.Equal(t, "water plants", got.Thoughts[0].Text)
}

func TestLoadMalformedFailsSoft(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "store")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, Key), []byte("{not json"), 0o644))

	assert.Equal(t, DefaultSnapshot(), New(dir, nil).Load())
}

func TestClear(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "store"), nil)
	s.Save(Snapshot{SessionsCompleted: 1})
	require.NoError(t, s.Clear())
	require.NoError(t, s.Clear())
	assert.Equal(t, 0, s.Load().SessionsCompleted)
}

func TestWatchIgnoresOwnWritesAndSeesForeignOnes(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "store")
	mine := New(dir, nil)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changes, err := mine.Watch(ctx)
	require.NoError(t, err)

	mine.Save(Snapshot{SessionsCompleted: 1})
	select {
	case <-changes:
		t.Fatal("own write was reported")
	case <-time.After(300 * time.Millisecond):
	}

	New(dir, nil).Save(Snapshot{SessionsCompleted: 2})
	select {
	case <-changes:
	case <-time.After(2 * time.Second):
		t.Fatal("foreign write was not reported")
	}
	assert.Equal(t, 2, mine.Load().SessionsCompleted)
}
