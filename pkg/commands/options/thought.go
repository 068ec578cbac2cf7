package options

import (
	"github.com/spf13/cobra"

	"github.com/rishupatwarisrt10-lgtm/Manas01/pkg/session"
	"github.com/rishupatwarisrt10-lgtm/Manas01/pkg/thought"
)

// ThoughtOptions
type ThoughtOptions struct {
	Text          string
	Tags          []string
	Mode          string
	SessionNumber int
}

func AddThoughtArgs(cmd *cobra.Command, o *ThoughtOptions) {
	cmd.Flags().StringSliceVarP(&o.Tags, "tag", "t", nil,
		"Tag the thought, repeatable or comma separated.")
	cmd.Flags().StringVar(&o.Mode, "mode", "",
		`Timer mode the thought was captured in: "focus", "short" or "long".`)
	cmd.Flags().IntVar(&o.SessionNumber, "session", 0,
		"Session number the thought was captured in.")
}

// Meta builds the session metadata, nil when no mode was given.
func (o *ThoughtOptions) Meta() (*thought.Meta, error) {
	if o.Mode == "" {
		return nil, nil
	}
	mode, err := session.ParseMode(o.Mode)
	if err != nil {
		return nil, err
	}
	return &thought.Meta{Mode: mode, SessionNumber: o.SessionNumber}, nil
}
