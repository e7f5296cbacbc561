// Package launcher restarts the Steam client signed in as a roster account.
package launcher

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"

	"github.com/rs/zerolog"

	"tableflip.dev/roster/pkg/account"
)

// ProcessName is the Steam client process name without extension.
const ProcessName = "steam"

// ErrSteamNotFound is returned when no Steam executable can be located.
var ErrSteamNotFound = errors.New("launcher: steam executable not found")

// Processes is the slice of process control the launcher needs.
type Processes interface {
	// Kill stops every process called name. No matching process is not an
	// error.
	Kill(ctx context.Context, name string) error
	// Start launches path detached from the current process.
	Start(path string, args ...string) error
}

// Locator finds the Steam executable.
type Locator interface {
	SteamPath() (string, error)
}

// Launcher logs a Steam client in as a chosen account.
type Launcher struct {
	Processes Processes
	Locator   Locator
	Log       zerolog.Logger
}

// New returns a launcher using the real OS. A non-empty override is used
// as the executable path instead of looking it up.
func New(override string, log zerolog.Logger) *Launcher {
	return &Launcher{
		Processes: OS{},
		Locator:   &SystemLocator{Override: override},
		Log:       log,
	}
}

// Login closes any running Steam client and starts a new one with the
// account's credentials.
func (l *Launcher) Login(ctx context.Context, a *account.Account) error {
	if a == nil {
		return errors.New("launcher: no account")
	}
	path, err := l.Locator.SteamPath()
	if err != nil {
		return err
	}
	if path == "" {
		return ErrSteamNotFound
	}

	l.Log.Debug().Str("path", path).Msg("stopping steam")
	if err := l.Processes.Kill(ctx, ProcessName); err != nil {
		return fmt.Errorf("launcher: stop steam: %w", err)
	}

	l.Log.Info().Str("username", a.Username).Msg("starting steam")
	if err := l.Processes.Start(path, "-login", a.Username, a.Password); err != nil {
		return fmt.Errorf("launcher: start steam: %w", err)
	}
	return nil
}

// SystemLocator finds Steam the way the platform expects.
type SystemLocator struct {
	Override string
}

func (s *SystemLocator) SteamPath() (string, error) {
	if s.Override != "" {
		if _, err := os.Stat(s.Override); err != nil {
			return "", fmt.Errorf("%w: %s", ErrSteamNotFound, s.Override)
		}
		return s.Override, nil
	}
	return platformSteamPath()
}

// OS controls real processes.
type OS struct{}

func (OS) Start(path string, args ...string) error {
	cmd := exec.Command(path, args...)
	if err := cmd.Start(); err != nil {
		return err
	}
	return cmd.Process.Release()
}

func (OS) Kill(ctx context.Context, name string) error {
	cmd := killCommand(ctx, name)
	out, err := cmd.CombinedOutput()
	if err == nil {
		return nil
	}
	var exit *exec.ExitError
	if errors.As(err, &exit) && noSuchProcess(exit.ExitCode()) {
		return nil
	}
	return fmt.Errorf("%w: %s", err, out)
}
