// Package edit changes fields of one account.
package edit

import (
	"context"
	"errors"

	"tableflip.dev/roster/pkg/account"
	"tableflip.dev/roster/pkg/printers"
	"tableflip.dev/roster/pkg/roster"
)

type Edit struct {
	Roster *roster.Roster
	Ref    string
	Patch  account.Patch
}

func (n *Edit) Do(ctx context.Context) error {
	if n.Roster == nil {
		return errors.New("can not edit, no roster")
	}
	if n.Patch.Empty() {
		return errors.New("nothing to change, set at least one flag")
	}

	a, err := n.Roster.Find(n.Ref)
	if err != nil {
		return err
	}
	now := n.Roster.Now()
	edited, err := n.Roster.Edit(ctx, a.ID, func(a *account.Account) error {
		return n.Patch.Apply(a, now)
	})
	if err != nil {
		return err
	}

	pp := printers.PrettyPrint{Now: now}
	pp.NewLine()
	pp.Title("Updated")
	pp.Account(edited)
	return nil
}
