package commands

import (
	"context"

	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"github.com/rishupatwarisrt10-lgtm/Manas01/pkg/commands/options"
	"github.com/rishupatwarisrt10-lgtm/Manas01/pkg/runner/prefs"
)

func addPrefs(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "prefs",
		Aliases: []string{"preferences"},
		Short:   "Show or change timer preferences.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	addPrefsGet(cmd)
	addPrefsSet(cmd)

	topLevel.AddCommand(cmd)
}

func addPrefsGet(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "get",
		Short: "Show the timer preferences.",
		Example: `
manas prefs get
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			cfg, logger, err := loadConfig()
			if err != nil {
				return oo.HandleError(err)
			}
			defer func() { _ = logger.Sync() }()

			s := prefs.Get{
				Printer: printer(false),
				JSON:    oo.JSON,
			}
			if cfg.Authenticated() {
				client, err := newClient(cfg, logger)
				if err != nil {
					return oo.HandleError(err)
				}
				s.Source = client
			}
			err = s.Do(context.Background())
			return oo.HandleError(err)
		},
	}

	base.AddOutputArg(cmd, oo)

	parent.AddCommand(cmd)
}

func addPrefsSet(parent *cobra.Command) {
	po := &options.PrefsOptions{}

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Change timer preferences on the server.",
		Example: `
manas prefs set --focus 50 --short 10
manas prefs set --theme ocean --notifications=false
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			client, err := serverClient()
			if err != nil {
				return oo.HandleError(err)
			}

			s := prefs.Set{
				Source:  client,
				Patch:   po.Patch(cmd),
				Printer: printer(false),
				JSON:    oo.JSON,
			}
			err = s.Do(context.Background())
			return oo.HandleError(err)
		},
	}

	options.AddPrefsArgs(cmd, po)
	base.AddOutputArg(cmd, oo)

	parent.AddCommand(cmd)
}
