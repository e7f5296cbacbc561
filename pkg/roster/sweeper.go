package roster

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"tableflip.dev/roster/pkg/store"
)

// DefaultSweepInterval is how often the sweeper looks for ended cooldowns.
const DefaultSweepInterval = time.Minute

// Sweeper runs Roster.Sweep once at start and then on every tick. Expiry is
// judged by the roster's clock; the interval only sets how soon a flip is
// noticed.
type Sweeper struct {
	Roster   *Roster
	Interval time.Duration
	Log      zerolog.Logger
}

// Run blocks until ctx is done. Sweep errors are logged and the loop keeps
// going.
func (s *Sweeper) Run(ctx context.Context) error {
	interval := s.Interval
	if interval <= 0 {
		interval = DefaultSweepInterval
	}

	s.sweep(ctx)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

func (s *Sweeper) sweep(ctx context.Context) {
	flipped, err := s.Roster.Sweep(ctx)
	if err != nil {
		s.Log.Error().Err(err).Msg("sweep failed")
		return
	}
	if len(flipped) > 0 {
		s.Log.Debug().Int("flipped", len(flipped)).Msg("sweep")
	}
}

// Follow reloads the roster whenever the watched files change, until the
// events channel closes or ctx is done.
func (r *Roster) Follow(ctx context.Context, events <-chan store.Event) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			r.log.Debug().Str("event", ev.Type.String()).Msg("external change")
			if err := r.Reload(ctx); err != nil {
				r.log.Error().Err(err).Msg("reload failed")
				r.setStatus("reload failed: " + err.Error())
			}
		}
	}
}
