package teaui

import (
	"context"
	"errors"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"

	"tableflip.dev/roster/pkg/roster"
	"tableflip.dev/roster/pkg/store"
)

var errNoTerminal = errors.New("the live view needs an interactive terminal; try `roster list`")

// Runner drives the live view: it keeps cooldowns swept, follows changes made
// by other processes and forwards roster changes to the UI.
type Runner struct {
	Roster      *roster.Roster
	Persistence store.Persistence
	Launcher    Launcher
	Interval    time.Duration
	Log         zerolog.Logger
}

// Do runs the UI until the user quits or ctx is done.
func (r Runner) Do(ctx context.Context) error {
	if fd := os.Stdout.Fd(); !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd) {
		return errNoTerminal
	}
	if r.Roster == nil {
		return errors.New("live view requires a roster")
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sweeper := &roster.Sweeper{Roster: r.Roster, Interval: r.Interval, Log: r.Log}
	go func() {
		if err := sweeper.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			r.Log.Warn().Err(err).Msg("sweeper stopped")
		}
	}()

	if r.Persistence != nil {
		events, err := r.Persistence.Watch(ctx)
		if err != nil {
			r.Log.Warn().Err(err).Msg("not watching for outside changes")
		} else {
			go func() { _ = r.Roster.Follow(ctx, events) }()
		}
	}

	m := New(r.Roster, r.Launcher)
	m.ctx = ctx
	p := tea.NewProgram(m, tea.WithAltScreen())

	// Changes are emitted from whichever goroutine made them, including the
	// UI's own Update, so they are queued and sent from one goroutine.
	q := newChangeQueue()
	unsubscribe := r.Roster.Subscribe(q.push)
	defer unsubscribe()
	go q.run(ctx, func(c roster.Change) { p.Send(changeMsg{change: c}) })

	go func() {
		<-ctx.Done()
		p.Quit()
	}()

	_, err := p.Run()
	return err
}
