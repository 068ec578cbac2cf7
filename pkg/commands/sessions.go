package commands

import (
	"context"

	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"github.com/rishupatwarisrt10-lgtm/Manas01/pkg/commands/options"
	"github.com/rishupatwarisrt10-lgtm/Manas01/pkg/runner/sessions"
)

func addSessions(topLevel *cobra.Command) {
	so := &options.SessionOptions{}

	cmd := &cobra.Command{
		Use:   "sessions",
		Short: "List recorded timer sessions.",
		Example: `
manas sessions
manas sessions --mode focus --since 1w
manas sessions --calendar
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			mode, err := so.GetMode()
			if err != nil {
				return oo.HandleError(err)
			}
			client, err := serverClient()
			if err != nil {
				return oo.HandleError(err)
			}

			s := sessions.List{
				Source:   client,
				Mode:     mode,
				Since:    so.Since,
				Page:     so.Page,
				Limit:    so.Limit,
				Calendar: so.Calendar,
				Printer:  printer(false),
				JSON:     oo.JSON,
			}
			err = s.Do(context.Background())
			return oo.HandleError(err)
		},
	}

	options.AddSessionArgs(cmd, so)
	base.AddOutputArg(cmd, oo)

	topLevel.AddCommand(cmd)
}
