package prefs

import (
	"github.com/rishupatwarisrt10-lgtm/Manas01/pkg/session"
	"github.com/rishupatwarisrt10-lgtm/Manas01/pkg/thought"
)

const DefaultTheme = "animated-gradient"

// Preferences are the per-user timer settings. Durations are minutes.
type Preferences struct {
	FocusDuration      int    `json:"focusDuration" yaml:"focusDuration" validate:"gte=1,lte=120"`
	ShortBreakDuration int    `json:"shortBreakDuration" yaml:"shortBreakDuration" validate:"gte=1,lte=30"`
	LongBreakDuration  int    `json:"longBreakDuration" yaml:"longBreakDuration" validate:"gte=5,lte=60"`
	Theme              string `json:"theme" yaml:"theme"`
	Notifications      bool   `json:"notifications" yaml:"notifications"`
}

// Default returns 25/5/15 with notifications on.
func Default() Preferences {
	return Preferences{
		FocusDuration:      25,
		ShortBreakDuration: 5,
		LongBreakDuration:  15,
		Theme:              DefaultTheme,
		Notifications:      true,
	}
}

// Minutes returns the configured duration for mode.
func (p Preferences) Minutes(mode session.Mode) int {
	switch mode {
	case session.ShortBreak:
		return p.ShortBreakDuration
	case session.LongBreak:
		return p.LongBreakDuration
	default:
		return p.FocusDuration
	}
}

func (p Preferences) Validate() error {
	return thought.ValidateStruct(p)
}

// Patch is a partial update. Nil fields keep their stored value.
type Patch struct {
	FocusDuration      *int    `json:"focusDuration,omitempty" validate:"omitempty,gte=1,lte=120"`
	ShortBreakDuration *int    `json:"shortBreakDuration,omitempty" validate:"omitempty,gte=1,lte=30"`
	LongBreakDuration  *int    `json:"longBreakDuration,omitempty" validate:"omitempty,gte=5,lte=60"`
	Theme              *string `json:"theme,omitempty"`
	Notifications      *bool   `json:"notifications,omitempty"`
}

func (p Patch) Validate() error {
	return thought.ValidateStruct(p)
}

// Apply merges the patch onto base.
func (p Patch) Apply(base Preferences) Preferences {
	if p.FocusDuration != nil {
		base.FocusDuration = *p.FocusDuration
	}
	if p.ShortBreakDuration != nil {
		base.ShortBreakDuration = *p.ShortBreakDuration
	}
	if p.LongBreakDuration != nil {
		base.LongBreakDuration = *p.LongBreakDuration
	}
	if p.Theme != nil {
		base.Theme = *p.Theme
	}
	if p.Notifications != nil {
		base.Notifications = *p.Notifications
	}
	return base
}
