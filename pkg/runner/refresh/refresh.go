// Package refresh pulls ban status or nicknames from the Steam Web API.
package refresh

import (
	"context"
	"errors"
	"fmt"

	"github.com/fatih/color"

	"tableflip.dev/roster/pkg/printers"
	"tableflip.dev/roster/pkg/roster"
)

type Refresh struct {
	Roster *roster.Roster
	// Refs selects accounts; empty means every account with a SteamID64.
	Refs      []string
	Nicknames bool
}

func (n *Refresh) Do(ctx context.Context) error {
	if n.Roster == nil {
		return errors.New("can not refresh, no roster")
	}
	ids, err := n.Roster.Resolve(n.Refs...)
	if err != nil {
		return err
	}

	if n.Nicknames {
		_, err = n.Roster.RefreshNicknames(ctx, ids...)
	} else {
		_, err = n.Roster.RefreshStatus(ctx, ids...)
	}
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintln(color.Output, n.Roster.StatusLine())
	pp := printers.PrettyPrint{Now: n.Roster.Now()}
	pp.NewLine()
	pp.Roster(n.Roster.View()...)
	return nil
}
