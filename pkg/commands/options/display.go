package options

import (
	"github.com/spf13/cobra"
)

// DisplayOptions picks the optional columns and fields of list output.
type DisplayOptions struct {
	ShowID      bool
	ShowSecrets bool
}

func AddDisplayArgs(cmd *cobra.Command, o *DisplayOptions) {
	cmd.Flags().BoolVarP(&o.ShowID, "show-id", "k", false,
		"Show the short ID of each account.")
	cmd.Flags().BoolVar(&o.ShowSecrets, "show-secrets", false,
		"Include passwords in the output.")
}
