// Package prefs reads and updates the timer preferences.
package prefs

import (
	"context"

	"github.com/rishupatwarisrt10-lgtm/Manas01/pkg/apperr"
	"github.com/rishupatwarisrt10-lgtm/Manas01/pkg/prefs"
	"github.com/rishupatwarisrt10-lgtm/Manas01/pkg/printers"
)

type Source interface {
	GetPreferences(ctx context.Context) (prefs.Preferences, error)
	SetPreferences(ctx context.Context, p prefs.Patch) (prefs.Preferences, error)
}

// Get prints the stored preferences, or the defaults without a Source.
type Get struct {
	Source  Source
	Printer *printers.PrettyPrint
	JSON    bool
}

func (g *Get) Do(ctx context.Context) error {
	p := prefs.Default()
	if g.Source != nil {
		var err error
		if p, err = g.Source.GetPreferences(ctx); err != nil {
			return err
		}
	}
	return show(g.Printer, g.JSON, p)
}

// Set applies Patch on the server.
type Set struct {
	Source  Source
	Patch   prefs.Patch
	Printer *printers.PrettyPrint
	JSON    bool
}

func (s *Set) Do(ctx context.Context) error {
	if s.Source == nil {
		return apperr.NewAuth("preferences are stored on the server: set server.url and token")
	}
	if s.Patch.FocusDuration == nil && s.Patch.ShortBreakDuration == nil && s.Patch.LongBreakDuration == nil &&
		s.Patch.Theme == nil && s.Patch.Notifications == nil {
		return apperr.NewValidation("nothing to update")
	}
	p, err := s.Source.SetPreferences(ctx, s.Patch)
	if err != nil {
		return err
	}
	return show(s.Printer, s.JSON, p)
}

func show(pp *printers.PrettyPrint, asJSON bool, p prefs.Preferences) error {
	if pp == nil {
		pp = &printers.PrettyPrint{}
	}
	if asJSON {
		return printers.JSON(pp.Out, p)
	}
	pp.Preferences(p)
	return nil
}
