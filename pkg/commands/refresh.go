package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/roster/pkg/commands/options"
	"tableflip.dev/roster/pkg/runner/refresh"
)

func addRefresh(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "refresh [account]...",
		Short: "Check ban status with the Steam Web API",
		Long: `Check VAC, game and economy bans with the Steam Web API. Only accounts
with a SteamID64 are checked, and an API key must be saved first with
'roster settings --api-key'. Accounts the API does not report on are
marked normal. With no accounts given, every account is checked.`,
		Example: `
roster refresh
roster refresh alice bob
`,
		ValidArgsFunction: accountCompletions,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			s, err := open(cmd.Context(), openOptions{})
			if err != nil {
				return output.HandleError(err)
			}
			r := refresh.Refresh{
				Roster: s.Roster,
				Refs:   args,
			}
			err = r.Do(cmd.Context())
			return output.HandleError(err)
		},
	}

	options.AddOutputArg(cmd, output)
	topLevel.AddCommand(cmd)
}

func addNicknames(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "nicknames [account]...",
		Short: "Replace nicknames with Steam persona names",
		Example: `
roster nicknames
roster nicknames alice
`,
		ValidArgsFunction: accountCompletions,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			s, err := open(cmd.Context(), openOptions{})
			if err != nil {
				return output.HandleError(err)
			}
			r := refresh.Refresh{
				Roster:    s.Roster,
				Refs:      args,
				Nicknames: true,
			}
			err = r.Do(cmd.Context())
			return output.HandleError(err)
		},
	}

	options.AddOutputArg(cmd, output)
	topLevel.AddCommand(cmd)
}
