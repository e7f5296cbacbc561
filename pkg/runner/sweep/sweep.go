// Package sweep ends expired cooldowns, once or continuously.
package sweep

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/rs/zerolog"

	"tableflip.dev/roster/pkg/roster"
	"tableflip.dev/roster/pkg/store"
)

// Sweep runs a single pass.
type Sweep struct {
	Roster *roster.Roster
}

func (n *Sweep) Do(ctx context.Context) error {
	if n.Roster == nil {
		return errors.New("can not sweep, no roster")
	}
	flipped, err := n.Roster.Sweep(ctx)
	if err != nil {
		return err
	}
	if len(flipped) == 0 {
		_, _ = fmt.Fprintln(color.Output, "No cooldowns have ended.")
		return nil
	}
	_, _ = fmt.Fprintln(color.Output, n.Roster.StatusLine())
	return nil
}

// Watch keeps sweeping on an interval and reloads when the data files are
// edited elsewhere. It returns when ctx is cancelled.
type Watch struct {
	Roster      *roster.Roster
	Persistence store.Persistence
	Interval    time.Duration
	Log         zerolog.Logger
}

func (n *Watch) Do(ctx context.Context) error {
	if n.Roster == nil || n.Persistence == nil {
		return errors.New("can not watch, no roster")
	}

	events, err := n.Persistence.Watch(ctx)
	if err != nil {
		return err
	}

	cancel := n.Roster.Subscribe(func(c roster.Change) {
		switch c.Kind {
		case roster.Swept, roster.Reloaded:
			n.Log.Info().Str("kind", c.Kind.String()).Strs("ids", c.IDs).Msg(c.Message)
		}
	})
	defer cancel()

	go func() {
		if err := n.Roster.Follow(ctx, events); err != nil && !errors.Is(err, context.Canceled) {
			n.Log.Error().Err(err).Msg("follow stopped")
		}
	}()

	n.Log.Info().Str("path", n.Persistence.Location()).Dur("interval", n.Interval).Msg("watching")
	s := roster.Sweeper{Roster: n.Roster, Interval: n.Interval, Log: n.Log}
	if err := s.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
