package commands

import (
	"context"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rishupatwarisrt10-lgtm/Manas01/pkg/prefs"
	"github.com/rishupatwarisrt10-lgtm/Manas01/pkg/recorder"
	"github.com/rishupatwarisrt10-lgtm/Manas01/pkg/runner/timer"
)

func addTimer(topLevel *cobra.Command) {
	var noSound bool

	cmd := &cobra.Command{
		Use:     "timer",
		Aliases: []string{"start", "focus"},
		Short:   "Run the pomodoro timer.",
		Long: `Run the pomodoro timer full screen.

Keys:
  space, enter  start or stop
  r             reset the current run
  1, 2, 3       focus, short break, long break
  +, -          one minute more or less
  n, t          capture a thought
  s             sound on or off
  q             quit
`,
		Example: `
manas timer
manas timer --no-sound
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
			defer stop()

			e, err := loadEnv(ctx)
			if err != nil {
				return oo.HandleError(err)
			}
			defer e.close()

			p := prefs.Default()
			if e.client != nil {
				if p, err = e.client.GetPreferences(ctx); err != nil {
					e.logger.Warn("using default preferences", zap.Error(err))
					p = prefs.Default()
				}
			}

			s := timer.Timer{
				Store:       e.store,
				Recorder:    recorder.New(e.backend, e.store, e.logger),
				Preferences: p,
				Sound:       !noSound,
				Logger:      e.logger,
			}
			err = s.Do(ctx)
			return oo.HandleError(err)
		},
	}

	cmd.Flags().BoolVar(&noSound, "no-sound", false, "Start with the bell off.")

	topLevel.AddCommand(cmd)
}
