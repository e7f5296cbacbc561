package commands

import (
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/roster/pkg/commands/options"
	"tableflip.dev/roster/pkg/runner/sweep"
)

func addSweep(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Mark accounts whose cooldown has ended as normal",
		Example: `
roster sweep
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			s, err := open(cmd.Context(), openOptions{})
			if err != nil {
				return output.HandleError(err)
			}
			r := sweep.Sweep{Roster: s.Roster}
			err = r.Do(cmd.Context())
			return output.HandleError(err)
		},
	}

	options.AddOutputArg(cmd, output)
	topLevel.AddCommand(cmd)
}

func addWatch(topLevel *cobra.Command) {
	var interval time.Duration

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Keep sweeping cooldowns until interrupted",
		Long: `Sweep ended cooldowns now and then on every interval, and reload when
the roster files are changed by another roster process.`,
		Example: `
roster watch
roster watch --interval 30s
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			s, err := open(ctx, openOptions{})
			if err != nil {
				return err
			}
			if interval <= 0 {
				interval = s.Config.SweepInterval()
			}
			w := sweep.Watch{
				Roster:      s.Roster,
				Persistence: s.Persistence,
				Interval:    interval,
				Log:         s.Log,
			}
			return w.Do(ctx)
		},
	}

	cmd.Flags().DurationVar(&interval, "interval", 0,
		"How often to sweep. Defaults to sweep.interval from the config.")

	topLevel.AddCommand(cmd)
}
