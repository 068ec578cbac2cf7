package state

import (
	"context"

	"github.com/rishupatwarisrt10-lgtm/Manas01/pkg/apperr"
	"github.com/rishupatwarisrt10-lgtm/Manas01/pkg/local"
	"github.com/rishupatwarisrt10-lgtm/Manas01/pkg/remote"
	"github.com/rishupatwarisrt10-lgtm/Manas01/pkg/session"
	"github.com/rishupatwarisrt10-lgtm/Manas01/pkg/thought"
)

// Backend is where the Store reconciles its optimistic changes. It is chosen
// once, when the Store is built.
type Backend interface {
	// Authenticated gates every server call.
	Authenticated() bool
	// Load returns the authoritative state. Theme may be empty to keep the
	// current one.
	Load(ctx context.Context) (AppState, error)
	// Persist receives every committed state.
	Persist(AppState)

	CreateThought(ctx context.Context, d thought.Draft) (thought.Thought, error)
	UpdateThought(ctx context.Context, id string, p thought.Patch) (thought.Thought, error)
	DeleteThought(ctx context.Context, id string) error
	CreateSession(ctx context.Context, rec session.Record) error
}

// Watcher is implemented by backends that can report external changes.
type Watcher interface {
	Watch(ctx context.Context) (<-chan struct{}, error)
}

// GuestBackend keeps everything in the local snapshot and never talks to a
// server.
type GuestBackend struct {
	Local *local.Store
}

var _ Backend = (*GuestBackend)(nil)
var _ Watcher = (*GuestBackend)(nil)

func NewGuestBackend(l *local.Store) *GuestBackend {
	return &GuestBackend{Local: l}
}

func (*GuestBackend) Authenticated() bool { return false }

func (g *GuestBackend) Load(context.Context) (AppState, error) {
	return fromSnapshot(g.Local.Load()), nil
}

func (g *GuestBackend) Persist(st AppState) {
	g.Local.Save(st.snapshot())
}

func (g *GuestBackend) Watch(ctx context.Context) (<-chan struct{}, error) {
	return g.Local.Watch(ctx)
}

func (*GuestBackend) CreateThought(context.Context, thought.Draft) (thought.Thought, error) {
	return thought.Thought{}, apperr.NewAuth("sign in to sync thoughts")
}

func (*GuestBackend) UpdateThought(context.Context, string, thought.Patch) (thought.Thought, error) {
	return thought.Thought{}, apperr.NewAuth("sign in to sync thoughts")
}

func (*GuestBackend) DeleteThought(context.Context, string) error {
	return apperr.NewAuth("sign in to sync thoughts")
}

func (*GuestBackend) CreateSession(context.Context, session.Record) error {
	return apperr.NewAuth("sign in to record sessions")
}

// Remote is the subset of the REST client the RemoteBackend needs.
type Remote interface {
	FetchSnapshot(ctx context.Context, n int) (remote.Snapshot, error)
	CreateThought(ctx context.Context, d thought.Draft) (thought.Thought, error)
	UpdateThought(ctx context.Context, id string, p thought.Patch) (thought.Thought, error)
	DeleteThought(ctx context.Context, id string) error
	CreateSession(ctx context.Context, rec session.Record) (session.Record, error)
}

// RemoteBackend treats the server as the source of truth. Nothing is written
// locally.
type RemoteBackend struct {
	Client Remote
}

var _ Backend = (*RemoteBackend)(nil)

func NewRemoteBackend(c Remote) *RemoteBackend {
	return &RemoteBackend{Client: c}
}

func (*RemoteBackend) Authenticated() bool { return true }

func (r *RemoteBackend) Load(ctx context.Context) (AppState, error) {
	snap, err := r.Client.FetchSnapshot(ctx, MaxThoughts)
	if err != nil {
		return AppState{}, err
	}
	thoughts := thought.Active(snap.Thoughts)
	if len(thoughts) > MaxThoughts {
		thoughts = thoughts[:MaxThoughts]
	}
	return AppState{
		SessionsCompleted: snap.Stats.SessionsCompleted,
		TotalFocusTime:    snap.Stats.TotalFocusTime,
		Streak:            snap.Stats.Streak,
		Thoughts:          thoughts,
	}, nil
}

func (*RemoteBackend) Persist(AppState) {}

func (r *RemoteBackend) CreateThought(ctx context.Context, d thought.Draft) (thought.Thought, error) {
	return r.Client.CreateThought(ctx, d)
}

func (r *RemoteBackend) UpdateThought(ctx context.Context, id string, p thought.Patch) (thought.Thought, error) {
	return r.Client.UpdateThought(ctx, id, p)
}

func (r *RemoteBackend) DeleteThought(ctx context.Context, id string) error {
	return r.Client.DeleteThought(ctx, id)
}

func (r *RemoteBackend) CreateSession(ctx context.Context, rec session.Record) error {
	_, err := r.Client.CreateSession(ctx, rec)
	return err
}
