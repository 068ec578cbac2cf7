package commands

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/rishupatwarisrt10-lgtm/Manas01/pkg/runner/info"
)

func addInfo(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "info",
		Short: "Details about the configuration and where state is kept.",
		Example: `
manas info
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			ctx := context.Background()
			e, err := loadEnv(ctx)
			if err != nil {
				return oo.HandleError(err)
			}
			defer e.close()

			s := info.Info{
				Config:  e.cfg,
				Store:   e.store,
				Printer: printer(false),
			}
			err = s.Do(ctx)
			return oo.HandleError(err)
		},
	}

	topLevel.AddCommand(cmd)
}
