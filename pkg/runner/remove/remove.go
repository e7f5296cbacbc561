// Package remove deletes accounts.
package remove

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/fatih/color"

	"tableflip.dev/roster/pkg/roster"
)

type Remove struct {
	Roster *roster.Roster
	Refs   []string
	// Confirm is asked before deleting; nil deletes without asking.
	Confirm func(question string) (bool, error)
}

func (n *Remove) Do(ctx context.Context) error {
	if n.Roster == nil {
		return errors.New("can not remove, no roster")
	}
	ids, err := n.Roster.Resolve(n.Refs...)
	if err != nil {
		return err
	}

	names := make([]string, 0, len(ids))
	for _, id := range ids {
		a, err := n.Roster.Find(id)
		if err != nil {
			return err
		}
		names = append(names, a.Username)
	}

	if n.Confirm != nil {
		ok, err := n.Confirm(fmt.Sprintf("Delete %s", strings.Join(names, ", ")))
		if err != nil {
			return err
		}
		if !ok {
			_, _ = fmt.Fprintln(color.Output, "Cancelled.")
			return nil
		}
	}

	removed, err := n.Roster.Delete(ctx, ids...)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(color.Output, "Deleted %d account(s).\n", removed)
	return nil
}
