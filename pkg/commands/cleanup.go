package commands

import (
	"context"

	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"github.com/rishupatwarisrt10-lgtm/Manas01/pkg/runner/cleanup"
)

func addCleanup(topLevel *cobra.Command) {
	var all bool
	var key string

	cmd := &cobra.Command{
		Use:   "cleanup",
		Short: "Purge completed thoughts older than a day.",
		Example: `
manas cleanup
manas cleanup --all --key $MANAS_CLEANUP_KEY
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			client, err := serverClient()
			if err != nil {
				return oo.HandleError(err)
			}

			s := cleanup.Cleanup{
				Source:  client,
				All:     all,
				Key:     key,
				Printer: printer(false),
				JSON:    oo.JSON,
			}
			err = s.Do(context.Background())
			return oo.HandleError(err)
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Sweep every user's thoughts. Needs --key.")
	cmd.Flags().StringVar(&key, "key", "", "Cleanup key the server was started with.")
	base.AddOutputArg(cmd, oo)

	topLevel.AddCommand(cmd)
}
