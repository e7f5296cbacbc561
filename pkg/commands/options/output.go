package options

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"tableflip.dev/roster/pkg/account"
	"tableflip.dev/roster/pkg/importer"
	"tableflip.dev/roster/pkg/launcher"
	"tableflip.dev/roster/pkg/roster"
	"tableflip.dev/roster/pkg/steamapi"
)

// OutputOptions
type OutputOptions struct {
	JSON bool
}

func AddOutputArg(cmd *cobra.Command, po *OutputOptions) {
	cmd.Flags().BoolVar(&po.JSON, "json", false,
		"Output as JSON.")
}

// HandleError prints err as a JSON object on stdout when --json is set, and
// then reports success so scripts only have one place to look.
func (o *OutputOptions) HandleError(err error) error {
	if !o.JSON || err == nil {
		return err
	}
	out := map[string]string{
		"error": err.Error(),
	}
	if code := ErrorCode(err); code != "" {
		out["code"] = code
	}
	b, jerr := json.Marshal(out)
	if jerr != nil {
		return jerr
	}
	_, _ = fmt.Fprintln(color.Output, string(b))
	return nil
}

// ErrorCode names the failures a script may want to branch on. Anything
// else is "".
func ErrorCode(err error) string {
	var (
		verr *account.ValidationError
		rerr *steamapi.RequestError
	)
	switch {
	case errors.Is(err, roster.ErrNotFound):
		return "not_found"
	case errors.Is(err, roster.ErrAmbiguous):
		return "ambiguous"
	case errors.Is(err, roster.ErrBusy):
		return "busy"
	case errors.Is(err, roster.ErrNoSteamIDs):
		return "no_steam_ids"
	case errors.Is(err, steamapi.ErrMissingAPIKey):
		return "missing_api_key"
	case errors.Is(err, importer.ErrNoAccounts):
		return "no_accounts"
	case errors.Is(err, launcher.ErrSteamNotFound):
		return "steam_not_found"
	case errors.As(err, &verr):
		return "invalid"
	case errors.As(err, &rerr):
		return "remote"
	}
	return ""
}
