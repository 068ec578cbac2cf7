package commands

import (
	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"
)

var (
	oo = &base.OutputOptions{}
)

func New() *cobra.Command {

	cmd := &cobra.Command{
		Use:   "manas",
		Short: base.Wrap80("A pomodoro timer with a thought journal on the command line."),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addTimer(topLevel)
	addAdd(topLevel)
	addList(topLevel)
	addToggle(topLevel)
	addDone(topLevel)
	addRemove(topLevel)
	addMove(topLevel)
	addClear(topLevel)
	addSync(topLevel)
	addStats(topLevel)
	addSessions(topLevel)
	addPrefs(topLevel)
	addCleanup(topLevel)
	addServe(topLevel)
	addToken(topLevel)
	addConfig(topLevel)
	addInfo(topLevel)
	addVersion(topLevel)
	addUpgrade(topLevel)
	addCompletions(topLevel)
}
