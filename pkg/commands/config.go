package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rishupatwarisrt10-lgtm/Manas01/pkg/config"
)

func addConfig(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration.",
		Example: `
manas config
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			cfg, err := config.Load()
			if err != nil {
				return oo.HandleError(err)
			}
			b, err := cfg.YAML()
			if err != nil {
				return oo.HandleError(err)
			}
			fmt.Print(string(b))
			return nil
		},
	}

	topLevel.AddCommand(cmd)
}
