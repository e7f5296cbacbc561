//go:build windows

package launcher

import (
	"context"
	"errors"
	"os"
	"os/exec"

	"golang.org/x/sys/windows/registry"
)

func platformSteamPath() (string, error) {
	k, err := registry.OpenKey(registry.CURRENT_USER, `Software\Valve\Steam`, registry.QUERY_VALUE)
	if err != nil {
		return "", ErrSteamNotFound
	}
	defer k.Close()

	path, _, err := k.GetStringValue("SteamExe")
	if err != nil || path == "" {
		return "", ErrSteamNotFound
	}
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", ErrSteamNotFound
		}
		return "", err
	}
	return path, nil
}

func killCommand(ctx context.Context, name string) *exec.Cmd {
	return exec.CommandContext(ctx, "taskkill", "/F", "/IM", name+".exe")
}

// taskkill exits 128 when no process matched.
func noSuchProcess(code int) bool {
	return code == 128
}
