package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/roster/pkg/store"

	teaui "tableflip.dev/roster/pkg/runner/tea"
)

func addUI(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "ui",
		Short: "open the live account view",
		Long: `Open a full screen view of the roster. Cooldowns count down live,
ended cooldowns are swept automatically and changes made by other roster
commands show up right away. Logs go to roster.log in the roster folder.`,
		Example: `
roster ui
`,
		ValidArgs: []string{},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			cfg, err := store.LoadConfig()
			if err != nil {
				return err
			}
			logs, err := openLogFile(cfg)
			if err != nil {
				return err
			}
			defer logs.Close()

			s, err := open(cmd.Context(), openOptions{logTo: logs, quiet: true})
			if err != nil {
				return err
			}
			u := teaui.Runner{
				Roster:      s.Roster,
				Persistence: s.Persistence,
				Launcher:    s.launcher(),
				Interval:    s.Config.SweepInterval(),
				Log:         s.Log,
			}
			return u.Do(cmd.Context())
		},
	}

	topLevel.AddCommand(cmd)
}
