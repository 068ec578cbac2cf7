package options

import (
	"github.com/spf13/cobra"

	"github.com/rishupatwarisrt10-lgtm/Manas01/pkg/session"
)

// SessionOptions
type SessionOptions struct {
	Mode     string
	Since    string
	Page     int
	Limit    int
	Calendar bool
}

func AddSessionArgs(cmd *cobra.Command, o *SessionOptions) {
	cmd.Flags().StringVar(&o.Mode, "mode", "",
		`Only sessions of this mode: "focus", "short" or "long".`)
	cmd.Flags().StringVar(&o.Since, "since", "",
		`Look-back window such as "1d" or "1w3d". Empty lists everything.`)
	cmd.Flags().IntVar(&o.Page, "page", 1, "Page to show.")
	cmd.Flags().IntVar(&o.Limit, "limit", 20, "Sessions per page, at most 100.")
	cmd.Flags().BoolVar(&o.Calendar, "calendar", false,
		"Show this month's focus days as a calendar.")
}

func (o *SessionOptions) GetMode() (session.Mode, error) {
	if o.Mode == "" {
		return "", nil
	}
	return session.ParseMode(o.Mode)
}
