package info

import (
	"context"
	"fmt"
	"os"

	"github.com/fatih/color"

	"tableflip.dev/roster/pkg/account"
	"tableflip.dev/roster/pkg/roster"
	"tableflip.dev/roster/pkg/store"
)

type Info struct {
	Config store.Config
	Roster *roster.Roster
}

func (n *Info) Do(ctx context.Context) error {
	out := color.Output

	if override := os.Getenv("ROSTER_CONFIG_PATH"); override != "" {
		_, _ = fmt.Fprintln(out, "ROSTER_CONFIG_PATH found on env, using", override)
	} else {
		_, _ = fmt.Fprintln(out, "ROSTER_CONFIG_PATH env var not set")
	}

	if n.Config == nil {
		var err error
		n.Config, err = store.LoadConfig()
		if err != nil {
			return err
		}
	}

	_, _ = fmt.Fprintln(out, "Config.path:", n.Config.BasePath())
	_, _ = fmt.Fprintln(out, "Config.api.base_url:", n.Config.APIBaseURL())
	_, _ = fmt.Fprintln(out, "Config.api.timeout:", n.Config.APITimeout())
	_, _ = fmt.Fprintln(out, "Config.sweep.interval:", n.Config.SweepInterval())
	_, _ = fmt.Fprintln(out, "Config.cooldown.default:", n.Config.DefaultCooldown())
	if p := n.Config.SteamPath(); p != "" {
		_, _ = fmt.Fprintln(out, "Config.steam.path:", p)
	}

	if n.Roster == nil {
		return fmt.Errorf("failed to open the roster")
	}

	counts := make(map[account.Status]int)
	for _, a := range n.Roster.View() {
		counts[a.Status]++
	}
	_, _ = fmt.Fprintf(out, "Accounts: %d\n", n.Roster.Len())
	for _, s := range account.AllStatuses() {
		if counts[s] > 0 {
			_, _ = fmt.Fprintf(out, "  %-9s %d\n", s, counts[s])
		}
	}
	return nil
}
