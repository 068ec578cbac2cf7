// Package journal runs the thought commands against the client store.
package journal

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/rishupatwarisrt10-lgtm/Manas01/pkg/apperr"
	"github.com/rishupatwarisrt10-lgtm/Manas01/pkg/printers"
	"github.com/rishupatwarisrt10-lgtm/Manas01/pkg/state"
	"github.com/rishupatwarisrt10-lgtm/Manas01/pkg/thought"
)

// ErrGuest is returned for operations that need a signed-in server identity.
var ErrGuest = apperr.NewAuth("this needs a server identity: set server.url and token")

// Output is shared by every journal runner.
type Output struct {
	Printer *printers.PrettyPrint
	JSON    bool
}

func (o Output) printer() *printers.PrettyPrint {
	if o.Printer == nil {
		return &printers.PrettyPrint{}
	}
	return o.Printer
}

func (o Output) list(st *state.Store) error {
	thoughts := st.Snapshot().Thoughts
	if o.JSON {
		return printers.JSON(o.printer().Out, thoughts)
	}
	pp := o.printer()
	pp.TitleWithCount("Thoughts", len(thoughts), "thought")
	pp.Thoughts(thoughts...)
	return nil
}

// Resolve finds a thought by its 1-based position in the list, its id, its
// client id or a unique id prefix.
func Resolve(st *state.Store, ref string) (thought.Thought, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return thought.Thought{}, apperr.NewValidation("requires a thought number or id")
	}
	list := st.Snapshot().Thoughts
	if n, err := strconv.Atoi(ref); err == nil {
		if n < 1 || n > len(list) {
			return thought.Thought{}, apperr.NewNotFound(fmt.Sprintf("thought #%d", n))
		}
		return list[n-1], nil
	}
	if t, ok := st.Find(ref); ok {
		return t, nil
	}
	var match *thought.Thought
	for i := range list {
		if list[i].ID != "" && strings.HasPrefix(list[i].ID, ref) {
			if match != nil {
				return thought.Thought{}, apperr.NewValidation("id prefix %q is ambiguous", ref)
			}
			match = &list[i]
		}
	}
	if match == nil {
		return thought.Thought{}, apperr.NewNotFound(fmt.Sprintf("thought %q", ref))
	}
	return *match, nil
}

// resolveSaved is Resolve for server operations: the thought must have a
// server id.
func resolveSaved(st *state.Store, ref string) (thought.Thought, error) {
	t, err := Resolve(st, ref)
	if err != nil {
		return t, err
	}
	if t.Provisional() {
		return t, apperr.NewValidation("thought %q is not saved on the server yet; run sync and try again", ref)
	}
	return t, nil
}

// Add captures a thought.
type Add struct {
	Store *state.Store
	Text  string
	Tags  []string
	Meta  *thought.Meta
	Output
}

func (a *Add) Do(ctx context.Context) error {
	d := thought.Draft{Text: a.Text, Tags: a.Tags}.Normalize()
	if d.Text == "" {
		return apperr.NewValidation("thought text is required")
	}
	if err := d.Validate(); err != nil && a.Store.Authenticated() {
		return err
	}
	a.Store.AddThought(ctx, d.Text, a.Meta, d.Tags...)
	a.Store.Wait()

	if a.Store.Authenticated() {
		if head := a.Store.Snapshot().Thoughts; len(head) > 0 && head[0].Provisional() {
			a.printer().Warn("the server did not confirm this thought; it is kept on this device")
		}
	}
	return a.list(a.Store)
}

// List prints the thought list.
type List struct {
	Store *state.Store
	Output
}

func (l *List) Do(context.Context) error {
	return l.list(l.Store)
}

// Toggle flips a thought's completion.
type Toggle struct {
	Store *state.Store
	Ref   string
	Output
}

func (t *Toggle) Do(ctx context.Context) error {
	if !t.Store.Authenticated() {
		return ErrGuest
	}
	target, err := resolveSaved(t.Store, t.Ref)
	if err != nil {
		return err
	}
	t.Store.ToggleTaskComplete(ctx, target.ID)
	t.Store.Wait()
	if now, ok := t.Store.Find(target.ID); ok && now.IsCompleted == target.IsCompleted {
		return apperr.NewRemote(0, "could not update the thought; it was left unchanged")
	}
	return t.list(t.Store)
}

// Done marks a thought dealt with, removing it once the server agrees.
type Done struct {
	Store *state.Store
	Ref   string
	Output
}

func (d *Done) Do(ctx context.Context) error {
	if !d.Store.Authenticated() {
		return ErrGuest
	}
	target, err := resolveSaved(d.Store, d.Ref)
	if err != nil {
		return err
	}
	d.Store.CompleteThought(ctx, target.ID)
	d.Store.Wait()
	if _, ok := d.Store.Find(target.ID); ok {
		return apperr.NewRemote(0, "could not complete the thought")
	}
	return d.list(d.Store)
}

// Remove deletes a thought.
type Remove struct {
	Store *state.Store
	Ref   string
	Output
}

func (r *Remove) Do(ctx context.Context) error {
	if !r.Store.Authenticated() {
		return ErrGuest
	}
	target, err := resolveSaved(r.Store, r.Ref)
	if err != nil {
		return err
	}
	r.Store.RemoveThought(ctx, target.ID)
	r.Store.Wait()
	if _, ok := r.Store.Find(target.ID); ok {
		return apperr.NewRemote(0, "could not delete the thought; it was restored")
	}
	return r.list(r.Store)
}

// Move reorders the list on this device.
type Move struct {
	Store    *state.Store
	From, To int
	Output
}

func (m *Move) Do(context.Context) error {
	n := len(m.Store.Snapshot().Thoughts)
	if m.From < 1 || m.From > n || m.To < 1 || m.To > n {
		return apperr.NewValidation("positions must be between 1 and %d", n)
	}
	m.Store.ReorderThoughts(m.From-1, m.To-1)
	return m.list(m.Store)
}

// Clear resets the client state.
type Clear struct {
	Store *state.Store
	Output
}

func (c *Clear) Do(context.Context) error {
	c.Store.ClearAll()
	return c.list(c.Store)
}

// Sync replaces the client state with the server's.
type Sync struct {
	Store *state.Store
	Output
}

func (s *Sync) Do(ctx context.Context) error {
	if !s.Store.Authenticated() {
		return ErrGuest
	}
	drain(s.Store)
	s.Store.Sync(ctx)
	if !synced(s.Store) {
		return apperr.NewRemote(0, "sync failed; showing the last known state")
	}
	return s.list(s.Store)
}

func drain(st *state.Store) {
	for {
		select {
		case <-st.Events():
		default:
			return
		}
	}
}

func synced(st *state.Store) bool {
	for {
		select {
		case ev := <-st.Events():
			if ev.Type == state.Synced {
				return true
			}
		default:
			return false
		}
	}
}
