// Package add creates a single account.
package add

import (
	"context"
	"errors"

	"tableflip.dev/roster/pkg/account"
	"tableflip.dev/roster/pkg/printers"
	"tableflip.dev/roster/pkg/roster"
)

type Add struct {
	Roster  *roster.Roster
	Account *account.Account
	// Patch carries the status or cooldown chosen on the command line.
	Patch account.Patch
}

func (n *Add) Do(ctx context.Context) error {
	if n.Roster == nil {
		return errors.New("can not add, no roster")
	}
	if n.Account == nil {
		return errors.New("can not add, no account")
	}

	a := n.Account.Clone()
	if err := n.Patch.Apply(a, n.Roster.Now()); err != nil {
		return err
	}
	added, err := n.Roster.Add(ctx, a)
	if err != nil {
		return err
	}

	pp := printers.PrettyPrint{Now: n.Roster.Now()}
	pp.NewLine()
	pp.Title("Added")
	pp.Account(added)
	return nil
}
