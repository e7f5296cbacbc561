package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/roster/pkg/commands/options"
	"tableflip.dev/roster/pkg/runner/edit"
)

func addEdit(topLevel *cobra.Command) {
	ao := &options.AccountOptions{}
	so := &options.StatusOptions{}

	cmd := &cobra.Command{
		Use:   "edit <account>",
		Short: "Change fields of an account",
		Long: `Change fields of an account. The account is picked by id, unique id
prefix or username. Only the flags given are changed.`,
		Example: `
roster edit alice --nickname Ally
roster edit alice --cooldown 20h
roster edit 3f2a --status normal --prime
`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: accountCompletions,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			p := ao.Patch(cmd)
			if err := so.Apply(&p); err != nil {
				return output.HandleError(err)
			}
			s, err := open(cmd.Context(), openOptions{})
			if err != nil {
				return output.HandleError(err)
			}
			e := edit.Edit{
				Roster: s.Roster,
				Ref:    args[0],
				Patch:  p,
			}
			err = e.Do(cmd.Context())
			return output.HandleError(err)
		},
	}

	options.AddAccountArgs(cmd, ao)
	options.AddCredentialArgs(cmd, ao)
	options.AddStatusArgs(cmd, so)
	options.AddOutputArg(cmd, output)

	topLevel.AddCommand(cmd)
}
