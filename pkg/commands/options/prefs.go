package options

import (
	"github.com/spf13/cobra"

	"github.com/rishupatwarisrt10-lgtm/Manas01/pkg/prefs"
)

// PrefsOptions holds the flags of `prefs set`; only flags that were given
// end up in the patch.
type PrefsOptions struct {
	Focus         int
	ShortBreak    int
	LongBreak     int
	Theme         string
	Notifications bool
}

func AddPrefsArgs(cmd *cobra.Command, o *PrefsOptions) {
	cmd.Flags().IntVar(&o.Focus, "focus", 0, "Focus length in minutes (1-120).")
	cmd.Flags().IntVar(&o.ShortBreak, "short", 0, "Short break length in minutes (1-30).")
	cmd.Flags().IntVar(&o.LongBreak, "long", 0, "Long break length in minutes (5-60).")
	cmd.Flags().StringVar(&o.Theme, "theme", "", "Color theme.")
	cmd.Flags().BoolVar(&o.Notifications, "notifications", true, "Ring the bell when a run ends.")
}

func (o *PrefsOptions) Patch(cmd *cobra.Command) prefs.Patch {
	var p prefs.Patch
	if cmd.Flags().Changed("focus") {
		p.FocusDuration = &o.Focus
	}
	if cmd.Flags().Changed("short") {
		p.ShortBreakDuration = &o.ShortBreak
	}
	if cmd.Flags().Changed("long") {
		p.LongBreakDuration = &o.LongBreak
	}
	if cmd.Flags().Changed("theme") {
		p.Theme = &o.Theme
	}
	if cmd.Flags().Changed("notifications") {
		p.Notifications = &o.Notifications
	}
	return p
}
