package state

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Store is the serialized owner of AppState. Public operations return
// immediately; server round trips run on tracked goroutines and re-enter
// through mutate.
type Store struct {
	backend Backend
	logger  *zap.Logger
	now     func() time.Time
	newID   func() string

	mu         sync.RWMutex
	state      AppState
	version    uint64
	generation uint64
	pending    map[string]struct{}
	creating   map[string]struct{}

	persistMu sync.Mutex
	persisted uint64

	inflight sync.WaitGroup
	events   chan Event
}

type Option func(*Store)

func WithLogger(l *zap.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithClock replaces time.Now for thought timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithIDs replaces the client id generator.
func WithIDs(newID func() string) Option {
	return func(s *Store) { s.newID = newID }
}

// New returns a Store holding the default state. Call Init to load.
func New(backend Backend, opts ...Option) *Store {
	s := &Store{
		backend:  backend,
		logger:   zap.NewNop(),
		now:      time.Now,
		newID:    uuid.NewString,
		state:    Default(),
		pending:  map[string]struct{}{},
		creating: map[string]struct{}{},
		events:   make(chan Event, 64),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.Named("state")
	return s
}

// Authenticated reports whether changes are reconciled with a server.
func (s *Store) Authenticated() bool {
	return s.backend.Authenticated()
}

// Events publishes applied mutations. Events are dropped when the consumer
// falls behind; Snapshot always has the current state.
func (s *Store) Events() <-chan Event {
	return s.events
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() AppState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.clone()
}

// Wait blocks until every background call started so far has finished.
func (s *Store) Wait() {
	s.inflight.Wait()
}

// Init loads the initial state: the local snapshot for guests, a full sync
// otherwise.
func (s *Store) Init(ctx context.Context) {
	if s.backend.Authenticated() {
		s.Sync(ctx)
		return
	}
	s.reload(ctx)
}

// Follow reloads the guest snapshot whenever another process rewrites it,
// until ctx is done. It is a no-op for backends that cannot watch.
func (s *Store) Follow(ctx context.Context) error {
	w, ok := s.backend.(Watcher)
	if !ok {
		return nil
	}
	changes, err := w.Watch(ctx)
	if err != nil {
		return err
	}
	go func() {
		for range changes {
			s.reload(ctx)
		}
	}()
	return nil
}

func (s *Store) reload(ctx context.Context) {
	st, err := s.backend.Load(ctx)
	if err != nil {
		s.logger.Debug("load failed", zap.Error(err))
		return
	}
	s.apply(func(cur *AppState) []Event {
		*cur = st
		return []Event{{Type: Synced}}
	}, false)
}

// mutate is the only writer of s.state.
func (s *Store) mutate(fn func(*AppState) []Event) {
	s.apply(fn, true)
}

func (s *Store) apply(fn func(*AppState) []Event, persist bool) {
	s.mu.Lock()
	evs := fn(&s.state)
	if len(evs) == 0 {
		s.mu.Unlock()
		return
	}
	s.version++
	v := s.version
	snap := s.state.clone()
	s.mu.Unlock()

	if persist {
		s.persist(v, snap)
	}
	for _, ev := range evs {
		s.emit(ev)
	}
}

// persist hands snap to the backend unless a newer version was already
// written.
func (s *Store) persist(v uint64, snap AppState) {
	s.persistMu.Lock()
	defer s.persistMu.Unlock()
	if v <= s.persisted {
		return
	}
	s.persisted = v
	s.backend.Persist(snap)
}

func (s *Store) emit(ev Event) {
	select {
	case s.events <- ev:
	default:
	}
}

// acquire claims id for one in-flight server operation.
func (s *Store) acquire(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, busy := s.pending[id]; busy {
		return false
	}
	s.pending[id] = struct{}{}
	return true
}

func (s *Store) release(id string) {
	s.mu.Lock()
	delete(s.pending, id)
	s.mu.Unlock()
}

// Pending reports whether a server operation for id is in flight.
func (s *Store) Pending(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, busy := s.pending[id]
	return busy
}

// async runs fn on a tracked goroutine that outlives the caller's context.
func (s *Store) async(ctx context.Context, fn func(context.Context)) {
	ctx = context.WithoutCancel(ctx)
	s.inflight.Add(1)
	go func() {
		defer s.inflight.Done()
		fn(ctx)
	}()
}

func (s *Store) currentGeneration() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.generation
}
