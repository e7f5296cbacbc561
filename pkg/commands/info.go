package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/roster/pkg/runner/info"
)

func addInfo(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "info",
		Short: "Details about the configuration and where accounts are stored.",
		Example: `
roster info
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			s, err := open(cmd.Context(), openOptions{quiet: true})
			if err != nil {
				return err
			}
			i := info.Info{
				Config: s.Config,
				Roster: s.Roster,
			}
			err = i.Do(cmd.Context())
			return output.HandleError(err)
		},
	}

	topLevel.AddCommand(cmd)
}
