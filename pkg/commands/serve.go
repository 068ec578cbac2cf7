package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/rishupatwarisrt10-lgtm/Manas01/pkg/config"
	"github.com/rishupatwarisrt10-lgtm/Manas01/pkg/runner/serve"
)

func addServe(topLevel *cobra.Command) {
	var addr, db string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the reference REST server.",
		Example: `
MANAS_SERVE_SECRET=change-me manas serve --addr :8080
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			cfg, err := config.Load()
			if err != nil {
				return oo.HandleError(err)
			}
			logger, err := cfg.ServerLogger()
			if err != nil {
				return oo.HandleError(err)
			}
			defer func() { _ = logger.Sync() }()

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			s := serve.Serve{
				Addr:         cfg.Serve.Addr,
				DB:           cfg.Serve.DB,
				Secret:       cfg.Serve.Secret,
				Issuer:       cfg.Serve.Issuer,
				CleanupKey:   cfg.Serve.CleanupKey,
				CleanupEvery: cfg.Serve.CleanupEvery,
				Logger:       logger,
			}
			if cmd.Flags().Changed("addr") {
				s.Addr = addr
			}
			if cmd.Flags().Changed("db") {
				s.DB = db
			}
			err = s.Do(ctx)
			return oo.HandleError(err)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", config.DefaultAddr, "Address to listen on.")
	cmd.Flags().StringVar(&db, "db", config.DefaultDB, "SQLite database file.")

	topLevel.AddCommand(cmd)
}
