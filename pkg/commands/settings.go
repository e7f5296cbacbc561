package commands

import (
	"io"

	"github.com/spf13/cobra"

	"tableflip.dev/roster/pkg/commands/options"
	"tableflip.dev/roster/pkg/prompt"
	"tableflip.dev/roster/pkg/runner/settings"
)

func addSettings(topLevel *cobra.Command) {
	apiKey := ""
	notice := ""

	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change the Steam Web API key and the startup notice",
		Example: `
roster settings
roster settings --api-key 0123456789ABCDEF
roster settings --api-key -
roster settings --notice off
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			r := settings.Settings{}
			if cmd.Flags().Changed("api-key") {
				if apiKey == "-" {
					var err error
					apiKey, err = prompt.Secret(io.NopCloser(cmd.InOrStdin()), prompt.NopCloser(cmd.OutOrStdout()), "Steam Web API key")
					if err != nil {
						return output.HandleError(err)
					}
				}
				r.APIKey = &apiKey
			}
			if cmd.Flags().Changed("notice") {
				show, err := prompt.ParseBool(notice)
				if err != nil {
					return output.HandleError(err)
				}
				r.Notice = &show
			}

			s, err := open(cmd.Context(), openOptions{quiet: true})
			if err != nil {
				return output.HandleError(err)
			}
			r.Roster = s.Roster
			err = r.Do(cmd.Context())
			return output.HandleError(err)
		},
	}

	cmd.Flags().StringVar(&apiKey, "api-key", "",
		"Steam Web API key used by refresh and nicknames. Empty clears it, - asks for it.")
	cmd.Flags().StringVar(&notice, "notice", "",
		"Show the unencrypted storage notice: on or off.")
	options.AddOutputArg(cmd, output)

	topLevel.AddCommand(cmd)
}
