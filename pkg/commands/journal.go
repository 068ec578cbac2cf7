package commands

import (
	"context"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"github.com/rishupatwarisrt10-lgtm/Manas01/pkg/apperr"
	"github.com/rishupatwarisrt10-lgtm/Manas01/pkg/commands/options"
	"github.com/rishupatwarisrt10-lgtm/Manas01/pkg/runner/journal"
	"github.com/rishupatwarisrt10-lgtm/Manas01/pkg/thought"
)

func output(io *options.IDOptions) journal.Output {
	return journal.Output{Printer: printer(io.ShowID), JSON: oo.JSON}
}

func addAdd(topLevel *cobra.Command) {
	to := &options.ThoughtOptions{}
	io := &options.IDOptions{}

	cmd := &cobra.Command{
		Use:   "add <text>",
		Short: "Capture a thought.",
		Example: `
manas add call the dentist
manas add --tag errand --tag health call the dentist
manas add --mode focus --session 3 that idea about the cache
`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) < 1 {
				return apperr.NewValidation("thought text is required")
			}
			to.Text = strings.Join(args, " ")
			if utf8.RuneCountInString(to.Text) > thought.MaxTextLength {
				return apperr.NewValidation("thought text must be at most %d characters", thought.MaxTextLength)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			meta, err := to.Meta()
			if err != nil {
				return oo.HandleError(err)
			}
			ctx := context.Background()
			e, err := loadEnv(ctx)
			if err != nil {
				return oo.HandleError(err)
			}
			defer e.close()

			s := journal.Add{
				Store:  e.store,
				Text:   to.Text,
				Tags:   to.Tags,
				Meta:   meta,
				Output: output(io),
			}
			err = s.Do(ctx)
			return oo.HandleError(err)
		},
	}

	options.AddThoughtArgs(cmd, to)
	options.AddShowIDArgs(cmd, io)
	base.AddOutputArg(cmd, oo)

	topLevel.AddCommand(cmd)
}

func addList(topLevel *cobra.Command) {
	io := &options.IDOptions{}

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List thoughts, newest first.",
		Example: `
manas list
manas list --show-id
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

			s := journal.List{
				Store:  e.store,
				Output: output(io),
			}
			err = s.Do(ctx)
			return oo.HandleError(err)
		},
	}

	options.AddShowIDArgs(cmd, io)
	base.AddOutputArg(cmd, oo)

	topLevel.AddCommand(cmd)
}

// refArgs takes the one thought reference: a list number, an id or a unique
// id prefix.
func refArgs(io *options.IDOptions) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) != 1 {
			return apperr.NewValidation("expected one thought: a list number or an id")
		}
		io.Ref = args[0]
		return nil
	}
}

func addToggle(topLevel *cobra.Command) {
	io := &options.IDOptions{}

	cmd := &cobra.Command{
		Use:   "toggle <thought>",
		Short: "Flip a thought between open and done.",
		Example: `
manas toggle 2
manas toggle 5f0c
`,
		Args:              refArgs(io),
		ValidArgsFunction: thoughtCompletions,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			ctx := context.Background()
			e, err := loadEnv(ctx)
			if err != nil {
				return oo.HandleError(err)
			}
			defer e.close()

			s := journal.Toggle{
				Store:  e.store,
				Ref:    io.Ref,
				Output: output(io),
			}
			err = s.Do(ctx)
			return oo.HandleError(err)
		},
	}

	options.AddShowIDArgs(cmd, io)
	base.AddOutputArg(cmd, oo)

	topLevel.AddCommand(cmd)
}

func addDone(topLevel *cobra.Command) {
	io := &options.IDOptions{}

	cmd := &cobra.Command{
		Use:     "done <thought>",
		Aliases: []string{"complete"},
		Short:   "Mark a thought done and drop it from the list.",
		Long: base.Wrap80("Mark a thought done. The server confirms first; " +
			"the thought leaves the list only once it has."),
		Example: `
manas done 1
`,
		Args:              refArgs(io),
		ValidArgsFunction: thoughtCompletions,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			ctx := context.Background()
			e, err := loadEnv(ctx)
			if err != nil {
				return oo.HandleError(err)
			}
			defer e.close()

			s := journal.Done{
				Store:  e.store,
				Ref:    io.Ref,
				Output: output(io),
			}
			err = s.Do(ctx)
			return oo.HandleError(err)
		},
	}

	options.AddShowIDArgs(cmd, io)
	base.AddOutputArg(cmd, oo)

	topLevel.AddCommand(cmd)
}

func addRemove(topLevel *cobra.Command) {
	io := &options.IDOptions{}

	cmd := &cobra.Command{
		Use:     "rm <thought>",
		Aliases: []string{"remove", "delete"},
		Short:   "Delete a thought.",
		Example: `
manas rm 3
`,
		Args:              refArgs(io),
		ValidArgsFunction: thoughtCompletions,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			ctx := context.Background()
			e, err := loadEnv(ctx)
			if err != nil {
				return oo.HandleError(err)
			}
			defer e.close()

			s := journal.Remove{
				Store:  e.store,
				Ref:    io.Ref,
				Output: output(io),
			}
			err = s.Do(ctx)
			return oo.HandleError(err)
		},
	}

	options.AddShowIDArgs(cmd, io)
	base.AddOutputArg(cmd, oo)

	topLevel.AddCommand(cmd)
}

func addMove(topLevel *cobra.Command) {
	io := &options.IDOptions{}
	var from, to int

	cmd := &cobra.Command{
		Use:   "move <from> <to>",
		Short: "Reorder a thought in the local list.",
		Example: `
manas move 4 1
`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 2 {
				return apperr.NewValidation("expected two list numbers")
			}
			var err error
			if from, err = strconv.Atoi(args[0]); err != nil {
				return apperr.NewValidation("%q is not a list number", args[0])
			}
			if to, err = strconv.Atoi(args[1]); err != nil {
				return apperr.NewValidation("%q is not a list number", args[1])
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			ctx := context.Background()
			e, err := loadEnv(ctx)
			if err != nil {
				return oo.HandleError(err)
			}
			defer e.close()

			s := journal.Move{
				Store:  e.store,
				From:   from,
				To:     to,
				Output: output(io),
			}
			err = s.Do(ctx)
			return oo.HandleError(err)
		},
	}

	options.AddShowIDArgs(cmd, io)
	base.AddOutputArg(cmd, oo)

	topLevel.AddCommand(cmd)
}

func addClear(topLevel *cobra.Command) {
	var yes bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Reset the local state to its defaults.",
		Example: `
manas clear --yes
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			if !yes {
				return oo.HandleError(apperr.NewValidation("refusing to clear without --yes"))
			}
			ctx := context.Background()
			e, err := loadEnv(ctx)
			if err != nil {
				return oo.HandleError(err)
			}
			defer e.close()

			s := journal.Clear{
				Store:  e.store,
				Output: output(&options.IDOptions{}),
			}
			err = s.Do(ctx)
			return oo.HandleError(err)
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Confirm the reset.")
	base.AddOutputArg(cmd, oo)

	topLevel.AddCommand(cmd)
}

func addSync(topLevel *cobra.Command) {
	io := &options.IDOptions{}

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Replace the local view with the server's.",
		Example: `
manas sync
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

			s := journal.Sync{
				Store:  e.store,
				Output: output(io),
			}
			err = s.Do(ctx)
			return oo.HandleError(err)
		},
	}

	options.AddShowIDArgs(cmd, io)
	base.AddOutputArg(cmd, oo)

	topLevel.AddCommand(cmd)
}
