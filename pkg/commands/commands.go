package commands

import (
	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/roster/pkg/commands/options"
)

var (
	output = &options.OutputOptions{}
)

func New() *cobra.Command {

	cmd := &cobra.Command{
		Use:   "roster",
		Short: base.Wrap80("Keep track of Steam accounts, their cooldowns and ban status."),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addList(topLevel)
	addAdd(topLevel)
	addEdit(topLevel)
	addRemove(topLevel)
	addImport(topLevel)
	addRefresh(topLevel)
	addNicknames(topLevel)
	addSweep(topLevel)
	addWatch(topLevel)
	addLogin(topLevel)
	addUI(topLevel)
	addSettings(topLevel)
	addKey(topLevel)
	addInfo(topLevel)
	addMCP(topLevel)
	addCompletions(topLevel)
	addVersion(topLevel)
}
