package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/roster/pkg/commands/options"
	"tableflip.dev/roster/pkg/runner/login"
)

func addLogin(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "login <account>",
		Short: "Restart Steam logged in as an account",
		Long: `Close the running Steam client and start it again with the account's
credentials. Steam is found through steam.path in the config, the registry
on Windows, or the PATH.`,
		Example: `
roster login alice
`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: accountCompletions,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			s, err := open(cmd.Context(), openOptions{})
			if err != nil {
				return output.HandleError(err)
			}
			l := login.Login{
				Roster:   s.Roster,
				Ref:      args[0],
				Launcher: s.launcher(),
			}
			err = l.Do(cmd.Context())
			return output.HandleError(err)
		},
	}

	options.AddOutputArg(cmd, output)
	topLevel.AddCommand(cmd)
}
