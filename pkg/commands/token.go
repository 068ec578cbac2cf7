package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/rishupatwarisrt10-lgtm/Manas01/pkg/apperr"
	"github.com/rishupatwarisrt10-lgtm/Manas01/pkg/auth"
	"github.com/rishupatwarisrt10-lgtm/Manas01/pkg/config"
)

func addToken(topLevel *cobra.Command) {
	var user string
	var ttl time.Duration

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Sign an identity token with the server secret.",
		Example: `
manas token --user alice
manas token --user alice --ttl 720h
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			if user == "" {
				return oo.HandleError(apperr.NewValidation("--user is required"))
			}
			cfg, err := config.Load()
			if err != nil {
				return oo.HandleError(err)
			}
			issuer, err := auth.NewIssuer(cfg.Serve.Secret, cfg.Serve.Issuer, ttl)
			if err != nil {
				return oo.HandleError(err)
			}
			token, err := issuer.Issue(user, time.Now())
			if err != nil {
				return oo.HandleError(err)
			}
			fmt.Println(token)
			return nil
		},
	}

	cmd.Flags().StringVar(&user, "user", "", "User id to put in the token.")
	cmd.Flags().DurationVar(&ttl, "ttl", auth.DefaultTTL, "How long the token stays valid.")

	topLevel.AddCommand(cmd)
}
