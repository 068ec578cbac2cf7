// Package local persists the guest snapshot in a diskv directory.
package local

import (
	"crypto/md5"
	"encoding/json"
	"errors"
	"io"
	"io/fs"
	"sync"

	"github.com/peterbourgon/diskv/v3"
	"go.uber.org/zap"

	"github.com/rishupatwarisrt10-lgtm/Manas01/pkg/apperr"
	"github.com/rishupatwarisrt10-lgtm/Manas01/pkg/prefs"
	"github.com/rishupatwarisrt10-lgtm/Manas01/pkg/thought"
)

// Key is the single entry the guest snapshot lives under.
const Key = "manas_app_state_v1"

// Snapshot is the persisted subset of the app state.
type Snapshot struct {
	SessionsCompleted int               `json:"sessionsCompleted"`
	Thoughts          []thought.Thought `json:"thoughts"`
	Theme             string            `json:"theme"`
	TotalFocusTime    int               `json:"totalFocusTime"`
	Streak            int               `json:"streak"`
}

// DefaultSnapshot is what a first run, or an unreadable store, starts from.
func DefaultSnapshot() Snapshot {
	return Snapshot{Thoughts: []thought.Thought{}, Theme: prefs.DefaultTheme}
}

// Store reads and writes the guest snapshot.
type Store struct {
	d        *diskv.Diskv
	basePath string
	logger   *zap.Logger

	mu       sync.Mutex
	lastHash [md5.Size]byte
}

// New opens (or lazily creates) a store rooted at basePath.
func New(basePath string, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{
		d: diskv.New(diskv.Options{
			BasePath:  basePath,
			Transform: func(string) []string { return []string{} },
			// writes land in the temp dir first and are renamed into place
			TempDir:      basePath + "-tmp",
			CacheSizeMax: 0,
		}),
		basePath: basePath,
		logger:   logger.Named("local"),
	}
}

// BasePath is the directory holding the snapshot.
func (s *Store) BasePath() string {
	return s.basePath
}

// Load returns the stored snapshot. A missing or malformed entry yields the
// default snapshot; Load never fails.
func (s *Store) Load() Snapshot {
	snap, err := s.read()
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			s.logger.Debug("snapshot unreadable, using defaults", zap.Error(err))
		}
		return DefaultSnapshot()
	}
	return snap
}

func (s *Store) read() (Snapshot, error) {
	rc, err := s.d.ReadStream(Key, true)
	if err != nil {
		return Snapshot{}, err
	}
	defer rc.Close()
	raw, err := io.ReadAll(rc)
	if err != nil {
		return Snapshot{}, err
	}
	snap := DefaultSnapshot()
	if err := json.Unmarshal(raw, &snap); err != nil {
		return Snapshot{}, apperr.NewStorage("decode snapshot", err)
	}
	if snap.Thoughts == nil {
		snap.Thoughts = []thought.Thought{}
	}
	if snap.Theme == "" {
		snap.Theme = prefs.DefaultTheme
	}
	return snap, nil
}

// Save writes the snapshot. Failures are logged and swallowed.
func (s *Store) Save(snap Snapshot) {
	if err := s.save(snap); err != nil {
		s.logger.Debug("snapshot not saved", zap.Error(err))
	}
}

func (s *Store) save(snap Snapshot) error {
	raw, err := json.Marshal(snap)
	if err != nil {
		return apperr.NewStorage("encode snapshot", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.d.Write(Key, raw); err != nil {
		return apperr.NewStorage("write snapshot", err)
	}
	s.lastHash = md5.Sum(raw)
	return nil
}

// Clear removes the stored snapshot.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.d.Erase(Key); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return apperr.NewStorage("erase snapshot", err)
	}
	s.lastHash = [md5.Size]byte{}
	return nil
}

// ownWrite reports whether the stored bytes are exactly what this process
// wrote last.
func (s *Store) ownWrite() bool {
	rc, err := s.d.ReadStream(Key, true)
	if err != nil {
		return false
	}
	defer rc.Close()
	raw, err := io.ReadAll(rc)
	if err != nil {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return md5.Sum(raw) == s.lastHash
}
