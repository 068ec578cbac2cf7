package commands

import (
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rishupatwarisrt10-lgtm/Manas01/pkg/config"
	"github.com/rishupatwarisrt10-lgtm/Manas01/pkg/local"
)

func addCompletions(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "completion",
		Short: "Generates bash completion scripts",
		Long: `To load completion run

. <(manas completion)

To configure your bash shell to load completions for each session add to your bashrc

# ~/.bashrc or ~/.profile
. <(manas completion)
`,
		Run: func(cmd *cobra.Command, args []string) {
			_ = topLevel.GenBashCompletion(os.Stdout)
		},
	}

	topLevel.AddCommand(cmd)
}

// thoughtCompletions offers list numbers from the guest snapshot. Signed in
// users get nothing; completing should not wait on the network.
func thoughtCompletions(_ *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	cfg, err := config.Load()
	if err != nil || cfg.Authenticated() {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	snap := local.New(cfg.Path, zap.NewNop()).Load()
	var out []string
	for i, t := range snap.Thoughts {
		n := strconv.Itoa(i + 1)
		if strings.HasPrefix(n, toComplete) {
			out = append(out, n+"\t"+t.Text)
		}
	}
	return out, cobra.ShellCompDirectiveNoFileComp
}
