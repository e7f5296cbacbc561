package options

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/roster/pkg/account"
	"tableflip.dev/roster/pkg/timeutil"
)

func statusNames() string {
	names := make([]string, 0, len(account.AllStatuses()))
	for _, s := range account.AllStatuses() {
		names = append(names, s.String())
	}
	return strings.Join(names, ", ")
}

// StatusOptions sets a status or starts a cooldown.
type StatusOptions struct {
	Status   string
	Cooldown string
}

func AddStatusArgs(cmd *cobra.Command, o *StatusOptions) {
	cmd.Flags().StringVarP(&o.Status, "status", "s", "",
		fmt.Sprintf("Set the status, one of: %s.", statusNames()))
	cmd.Flags().StringVarP(&o.Cooldown, "cooldown", "c", "",
		`Start a cooldown, example: --cooldown=7d or --cooldown=3d12h.`)
}

// Apply adds the status and cooldown to p. A cooldown wins over a status.
func (o *StatusOptions) Apply(p *account.Patch) error {
	if o.Cooldown != "" {
		days, hours, err := timeutil.ParseCooldown(o.Cooldown)
		if err != nil {
			return err
		}
		p.CooldownDays, p.CooldownHours = &days, &hours
		return nil
	}
	if o.Status == "" {
		return nil
	}
	s, ok := account.ParseStatus(o.Status)
	if !ok {
		return fmt.Errorf("unknown status %q, expected one of: %s", o.Status, statusNames())
	}
	if s == account.Cooldown {
		return fmt.Errorf("cooldown needs a duration, use --cooldown")
	}
	p.Status = &s
	return nil
}

// FilterOptions selects accounts by status.
type FilterOptions struct {
	Statuses []string
}

func AddFilterArgs(cmd *cobra.Command, o *FilterOptions) {
	cmd.Flags().StringSliceVarP(&o.Statuses, "status", "s", nil,
		fmt.Sprintf("Only show these statuses: %s.", statusNames()))
}

// Parsed returns the selected statuses.
func (o *FilterOptions) Parsed() ([]account.Status, error) {
	out := make([]account.Status, 0, len(o.Statuses))
	for _, raw := range o.Statuses {
		s, ok := account.ParseStatus(raw)
		if !ok {
			return nil, fmt.Errorf("unknown status %q, expected one of: %s", raw, statusNames())
		}
		out = append(out, s)
	}
	return out, nil
}
