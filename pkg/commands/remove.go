package commands

import (
	"io"

	"github.com/spf13/cobra"

	"tableflip.dev/roster/pkg/commands/options"
	"tableflip.dev/roster/pkg/prompt"
	"tableflip.dev/roster/pkg/runner/remove"
)

func addRemove(topLevel *cobra.Command) {
	co := &options.ConfirmOptions{}

	cmd := &cobra.Command{
		Use:     "rm <account>...",
		Aliases: []string{"remove", "delete"},
		Short:   "Remove accounts",
		Example: `
roster rm alice
roster rm alice bob --yes
`,
		Args:              cobra.MinimumNArgs(1),
		ValidArgsFunction: accountCompletions,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			s, err := open(cmd.Context(), openOptions{})
			if err != nil {
				return output.HandleError(err)
			}
			r := remove.Remove{
				Roster: s.Roster,
				Refs:   args,
			}
			if !co.Yes {
				r.Confirm = func(question string) (bool, error) {
					return prompt.Confirm(io.NopCloser(cmd.InOrStdin()), prompt.NopCloser(cmd.OutOrStdout()), question)
				}
			}
			err = r.Do(cmd.Context())
			return output.HandleError(err)
		},
	}

	options.AddConfirmArgs(cmd, co)
	options.AddOutputArg(cmd, output)

	topLevel.AddCommand(cmd)
}
