package commands

import (
	"context"

	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"github.com/rishupatwarisrt10-lgtm/Manas01/pkg/runner/stats"
)

func addStats(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show focus statistics.",
		Example: `
manas stats
manas stats --json
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			ctx := context.Background()
			e, err := loadEnv(ctx)
			if err != nil {
				return oo.HandleError(err)
			}
			defer e.close()

			s := stats.Stats{
				Store:   e.store,
				Printer: printer(false),
				JSON:    oo.JSON,
			}
			if e.client != nil {
				s.Source = e.client
			}
			err = s.Do(ctx)
			return oo.HandleError(err)
		},
	}

	base.AddOutputArg(cmd, oo)

	topLevel.AddCommand(cmd)
}
