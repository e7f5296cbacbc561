// Package login starts Steam signed in as a roster account.
package login

import (
	"context"
	"errors"
	"fmt"

	"github.com/fatih/color"

	"tableflip.dev/roster/pkg/launcher"
	"tableflip.dev/roster/pkg/roster"
)

type Login struct {
	Roster   *roster.Roster
	Ref      string
	Launcher *launcher.Launcher
}

func (n *Login) Do(ctx context.Context) error {
	if n.Roster == nil || n.Launcher == nil {
		return errors.New("can not log in, no launcher")
	}
	a, err := n.Roster.Find(n.Ref)
	if err != nil {
		return err
	}
	if err := n.Launcher.Login(ctx, a); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(color.Output, "Starting Steam as %s.\n", a.Name())
	return nil
}
