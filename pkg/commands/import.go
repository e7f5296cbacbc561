package commands

import (
	"io"
	"os"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"

	"tableflip.dev/roster/pkg/commands/options"
	"tableflip.dev/roster/pkg/importer"
	"tableflip.dev/roster/pkg/runner/bulk"
)

func addImport(topLevel *cobra.Command) {
	policy := ""
	noClean := false
	dryRun := false

	cmd := &cobra.Command{
		Use:   "import [file|-]",
		Short: "Add many accounts from text, one per line",
		Long: `Add many accounts from text, one per line, such as

  user----password----nickname----email----email password----email url

Fields may also be separated by ---, --, -, comma or |. Labels such as
"username:" or "密码：" are removed first unless --no-clean is given.
Lines without a username and password are skipped and reported.
Reads standard input when the file is - or left out.`,
		Example: `
roster import accounts.txt
pbpaste | roster import --policy notes
roster import accounts.txt --dry-run
roster import accounts.txt --json
`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			p, err := importer.ParsePolicy(policy)
			if err != nil {
				return output.HandleError(err)
			}

			var in io.Reader = cmd.InOrStdin()
			if len(args) == 1 && args[0] != "-" {
				path, err := homedir.Expand(args[0])
				if err != nil {
					return output.HandleError(err)
				}
				f, err := os.Open(path)
				if err != nil {
					return output.HandleError(err)
				}
				defer f.Close()
				in = f
			}

			s, err := open(cmd.Context(), openOptions{quiet: output.JSON})
			if err != nil {
				return output.HandleError(err)
			}
			b := bulk.Import{
				Roster:  s.Roster,
				Input:   in,
				Options: importer.Options{Policy: p, CleanLabels: !noClean},
				DryRun:  dryRun,
				JSON:    output.JSON,
			}
			err = b.Do(cmd.Context())
			return output.HandleError(err)
		},
	}

	cmd.Flags().StringVar(&policy, "policy", "positional",
		"Where fields after the password go: positional or notes.")
	cmd.Flags().BoolVar(&noClean, "no-clean", false,
		"Keep field labels such as \"username:\".")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false,
		"Show what would be added without saving.")
	options.AddOutputArg(cmd, output)

	topLevel.AddCommand(cmd)
}
