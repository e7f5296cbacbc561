package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"tableflip.dev/roster/pkg/launcher"
	"tableflip.dev/roster/pkg/logging"
	"tableflip.dev/roster/pkg/roster"
	"tableflip.dev/roster/pkg/steamapi"
	"tableflip.dev/roster/pkg/store"
)

const logFile = "roster.log"

// session is everything a command needs to work on the saved roster.
type session struct {
	Config      store.Config
	Log         zerolog.Logger
	Persistence store.Persistence
	Roster      *roster.Roster
}

type openOptions struct {
	// logTo overrides stderr, for commands that own the terminal.
	logTo io.Writer
	// quiet skips the startup notice.
	quiet bool
}

func open(ctx context.Context, o openOptions) (*session, error) {
	cfg, err := store.LoadConfig()
	if err != nil {
		return nil, err
	}
	w := o.logTo
	if w == nil {
		w = os.Stderr
	}
	log := logging.New(cfg.LogLevel(), w)

	p, err := store.Load(cfg)
	if err != nil {
		return nil, err
	}
	r := roster.New(roster.Options{
		Persistence:     p,
		Source:          steamapi.New(cfg.APIBaseURL(), cfg.APITimeout(), log),
		Log:             log,
		DefaultCooldown: cfg.DefaultCooldown(),
	})
	if err := r.Open(ctx); err != nil {
		return nil, err
	}
	if !o.quiet && r.Settings().ShowStartupNotice {
		_, _ = fmt.Fprintln(os.Stderr, color.YellowString(
			"Note: passwords are stored unencrypted in %s. Run `roster settings --notice off` to hide this.",
			p.Location()))
	}
	return &session{Config: cfg, Log: log, Persistence: p, Roster: r}, nil
}

// openLogFile sends logs to the roster folder while a full screen view owns
// the terminal.
func openLogFile(cfg store.Config) (io.WriteCloser, error) {
	if err := os.MkdirAll(cfg.BasePath(), 0o700); err != nil {
		return nil, err
	}
	return os.OpenFile(filepath.Join(cfg.BasePath(), logFile), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
}

func (s *session) launcher() *launcher.Launcher {
	return launcher.New(s.Config.SteamPath(), s.Log)
}

// accountCompletions offers usernames for the account argument.
func accountCompletions(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	s, err := open(cmd.Context(), openOptions{logTo: io.Discard, quiet: true})
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	taken := make(map[string]bool, len(args))
	for _, a := range args {
		taken[a] = true
	}
	var out []string
	for _, a := range s.Roster.View() {
		if taken[a.Username] || !strings.HasPrefix(strings.ToLower(a.Username), strings.ToLower(toComplete)) {
			continue
		}
		out = append(out, a.Username+"\t"+a.Name())
	}
	return out, cobra.ShellCompDirectiveNoFileComp
}
