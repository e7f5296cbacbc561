// Package list prints the roster.
package list

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/fatih/color"

	"tableflip.dev/roster/pkg/account"
	"tableflip.dev/roster/pkg/printers"
	"tableflip.dev/roster/pkg/roster"
)

type List struct {
	Roster *roster.Roster
	ShowID bool
	JSON   bool
	// Statuses limits the output when not empty.
	Statuses []account.Status
	// Ref prints one account in detail instead of the table.
	Ref         string
	ShowSecrets bool
}

func (n *List) Do(ctx context.Context) error {
	if n.Roster == nil {
		return errors.New("can not list, no roster")
	}

	if n.Ref != "" {
		a, err := n.Roster.Find(n.Ref)
		if err != nil {
			return err
		}
		if n.JSON {
			if !n.ShowSecrets {
				a = a.Redacted()
			}
			return printJSON(a)
		}
		pp := printers.PrettyPrint{ShowSecrets: n.ShowSecrets, Now: n.Roster.Now()}
		pp.NewLine()
		pp.Account(a)
		return nil
	}

	all := n.filtered(n.Roster.View())
	if n.JSON {
		if !n.ShowSecrets {
			for i, a := range all {
				all[i] = a.Redacted()
			}
		}
		return printJSON(all)
	}

	pp := printers.PrettyPrint{ShowID: n.ShowID, Now: n.Roster.Now()}
	pp.NewLine()
	pp.TitleWithCount("Accounts", len(all))
	pp.Roster(all...)
	if line := n.Roster.StatusLine(); line != "" {
		_, _ = color.New(color.Faint).Fprintln(color.Output, line)
	}
	return nil
}

func (n *List) filtered(all []*account.Account) []*account.Account {
	if len(n.Statuses) == 0 {
		return all
	}
	keep := make(map[account.Status]bool, len(n.Statuses))
	for _, s := range n.Statuses {
		keep[s] = true
	}
	out := make([]*account.Account, 0, len(all))
	for _, a := range all {
		if keep[a.Status] {
			out = append(out, a)
		}
	}
	return out
}

func printJSON(v interface{}) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(color.Output, string(b))
	return err
}
