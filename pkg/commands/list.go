package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/roster/pkg/commands/options"
	"tableflip.dev/roster/pkg/runner/list"
)

func addList(topLevel *cobra.Command) {
	do := &options.DisplayOptions{}
	fo := &options.FilterOptions{}

	cmd := &cobra.Command{
		Use:     "list [account]",
		Aliases: []string{"ls"},
		Short:   "List accounts, or show one account in detail",
		Example: `
roster list
roster list --status normal --status cooldown
roster list alice --show-secrets
roster ls --json
`,
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: accountCompletions,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			statuses, err := fo.Parsed()
			if err != nil {
				return output.HandleError(err)
			}
			s, err := open(cmd.Context(), openOptions{quiet: output.JSON})
			if err != nil {
				return output.HandleError(err)
			}
			l := list.List{
				Roster:      s.Roster,
				ShowID:      do.ShowID,
				JSON:        output.JSON,
				Statuses:    statuses,
				ShowSecrets: do.ShowSecrets,
			}
			if len(args) == 1 {
				l.Ref = args[0]
			}
			err = l.Do(cmd.Context())
			return output.HandleError(err)
		},
	}

	options.AddDisplayArgs(cmd, do)
	options.AddFilterArgs(cmd, fo)
	options.AddOutputArg(cmd, output)

	topLevel.AddCommand(cmd)
}
