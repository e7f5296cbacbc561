// Package settings shows and changes the persisted settings.
package settings

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/roster/pkg/roster"
)

type Settings struct {
	Roster *roster.Roster
	// APIKey and Notice are applied when set.
	APIKey *string
	Notice *bool
}

func (n *Settings) Do(ctx context.Context) error {
	if n.Roster == nil {
		return errors.New("can not change settings, no roster")
	}
	if n.APIKey != nil {
		if err := n.Roster.SetAPIKey(ctx, *n.APIKey); err != nil {
			return err
		}
	}
	if n.Notice != nil {
		if err := n.Roster.SetNotice(ctx, *n.Notice); err != nil {
			return err
		}
	}

	s := n.Roster.Settings()
	bold := color.New(color.Bold)
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("API key"), maskKey(s.APIKey))
	tbl.AddRow(bold.Sprint("Startup notice"), onOff(s.ShowStartupNotice))
	tbl.RightAlign(0)
	_, _ = fmt.Fprintln(color.Output, tbl)
	return nil
}

func maskKey(k string) string {
	switch {
	case k == "":
		return color.New(color.Faint).Sprint("not set")
	case len(k) <= 4:
		return strings.Repeat("•", len(k))
	default:
		return strings.Repeat("•", len(k)-4) + k[len(k)-4:]
	}
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
