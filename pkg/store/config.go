package store

import (
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"

	"tableflip.dev/roster/pkg/timeutil"
)

// Config exposes the settings read from .roster.yaml and ROSTER_* variables.
type Config interface {
	BasePath() string
	APIBaseURL() string
	APITimeout() time.Duration
	SweepInterval() time.Duration
	DefaultCooldown() time.Duration
	SteamPath() string
	LogLevel() string
}

const (
	DefaultAPIBaseURL = "https://api.steampowered.com"
	defaultPath       = "~/.roster"
)

// LoadConfig reads configuration from the first .roster.yaml found in
// $ROSTER_CONFIG_PATH, the working directory or ~/.config/roster, with
// ROSTER_* environment variables taking precedence.
func LoadConfig() (Config, error) {
	v := viper.New()
	v.SetDefault("path", defaultPath)
	v.SetDefault("api.base_url", DefaultAPIBaseURL)
	v.SetDefault("api.timeout", "30s")
	v.SetDefault("sweep.interval", "1m")
	v.SetDefault("cooldown.default", "7d")
	v.SetDefault("steam.path", "")
	v.SetDefault("log.level", "info")

	v.SetConfigName(".roster") // .yaml is implicit
	v.SetEnvPrefix("ROSTER")
	v.AutomaticEnv()

	if override := os.Getenv("ROSTER_CONFIG_PATH"); override != "" {
		v.AddConfigPath(override)
	}
	v.AddConfigPath("./")
	if home, err := homedir.Dir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".config", "roster"))
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	path, err := homedir.Expand(v.GetString("path"))
	if err != nil {
		return nil, err
	}

	cooldown := 7 * 24 * time.Hour
	if days, hours, err := timeutil.ParseCooldown(v.GetString("cooldown.default")); err == nil {
		cooldown = time.Duration(days)*24*time.Hour + time.Duration(hours)*time.Hour
	}

	steamPath := v.GetString("steam.path")
	if steamPath != "" {
		if expanded, err := homedir.Expand(steamPath); err == nil {
			steamPath = expanded
		}
	}

	return &FileConfig{
		Path:     path,
		BaseURL:  v.GetString("api.base_url"),
		Timeout:  v.GetDuration("api.timeout"),
		Interval: v.GetDuration("sweep.interval"),
		Cooldown: cooldown,
		Steam:    steamPath,
		Level:    v.GetString("log.level"),
		Source:   v.ConfigFileUsed(),
	}, nil
}

// FileConfig is the resolved configuration. Tests build one directly.
type FileConfig struct {
	Path     string        `json:"path"`
	BaseURL  string        `json:"apiBaseUrl"`
	Timeout  time.Duration `json:"apiTimeout"`
	Interval time.Duration `json:"sweepInterval"`
	Cooldown time.Duration `json:"defaultCooldown"`
	Steam    string        `json:"steamPath,omitempty"`
	Level    string        `json:"logLevel"`
	Source   string        `json:"configFile,omitempty"`
}

func (f *FileConfig) BasePath() string {
	return f.Path
}

func (f *FileConfig) APIBaseURL() string {
	if f.BaseURL == "" {
		return DefaultAPIBaseURL
	}
	return f.BaseURL
}

func (f *FileConfig) APITimeout() time.Duration {
	if f.Timeout <= 0 {
		return 30 * time.Second
	}
	return f.Timeout
}

func (f *FileConfig) SweepInterval() time.Duration {
	if f.Interval <= 0 {
		return time.Minute
	}
	return f.Interval
}

func (f *FileConfig) DefaultCooldown() time.Duration {
	if f.Cooldown <= 0 {
		return 7 * 24 * time.Hour
	}
	return f.Cooldown
}

func (f *FileConfig) SteamPath() string {
	return f.Steam
}

func (f *FileConfig) LogLevel() string {
	if f.Level == "" {
		return "info"
	}
	return f.Level
}
