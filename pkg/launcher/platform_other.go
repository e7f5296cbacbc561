//go:build !windows

package launcher

import (
	"context"
	"os/exec"
)

func platformSteamPath() (string, error) {
	path, err := exec.LookPath(ProcessName)
	if err != nil {
		return "", ErrSteamNotFound
	}
	return path, nil
}

func killCommand(ctx context.Context, name string) *exec.Cmd {
	return exec.CommandContext(ctx, "pkill", "-x", name)
}

// pkill exits 1 when no process matched.
func noSuchProcess(code int) bool {
	return code == 1
}
