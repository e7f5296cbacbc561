// Package store persists the roster and its settings as two JSON documents
// in the data directory.
package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/peterbourgon/diskv/v3"

	"tableflip.dev/roster/pkg/account"
)

const (
	AccountsKey = "accounts.json"
	SettingsKey = "settings.json"
	tempDir     = ".tmp"
)

// Persistence reads and writes the account list and the settings record.
// Every save replaces the whole document.
type Persistence interface {
	LoadAccounts(ctx context.Context) ([]*account.Account, error)
	SaveAccounts(ctx context.Context, accounts []*account.Account) error
	LoadSettings(ctx context.Context) (Settings, error)
	SaveSettings(ctx context.Context, s Settings) error
	Location() string
	Watch(ctx context.Context) (<-chan Event, error)
}

// Load creates a Persistence backed by diskv using the provided config.
func Load(cfg Config) (Persistence, error) {
	if cfg == nil {
		var err error
		cfg, err = LoadConfig()
		if err != nil {
			return nil, err
		}
	}

	basePath := cfg.BasePath()
	if basePath == "" {
		return nil, fmt.Errorf("store: base path unknown")
	}
	return &persistence{
		d: diskv.New(diskv.Options{
			BasePath:          basePath,
			TempDir:           filepath.Join(basePath, tempDir),
			AdvancedTransform: keyToPathTransform,
			InverseTransform:  pathToKeyTransform,
			PathPerm:          0o700,
			FilePerm:          0o600,
		}),
		basePath: basePath,
		written:  make(map[string]time.Time),
	}, nil
}

type persistence struct {
	d        *diskv.Diskv
	basePath string

	mu      sync.Mutex
	written map[string]time.Time
}

func (p *persistence) Location() string {
	return p.basePath
}

func (p *persistence) LoadAccounts(_ context.Context) ([]*account.Account, error) {
	if !p.d.Has(AccountsKey) {
		return []*account.Account{}, nil
	}
	val, err := p.d.Read(AccountsKey)
	if err != nil {
		return nil, fmt.Errorf("store: read %s: %w", AccountsKey, err)
	}
	if len(bytes.TrimSpace(val)) == 0 {
		return []*account.Account{}, nil
	}
	var list []*account.Account
	if err := json.Unmarshal(val, &list); err != nil {
		return nil, fmt.Errorf("store: parse %s: %w", AccountsKey, err)
	}
	out := make([]*account.Account, 0, len(list))
	for _, a := range list {
		if a == nil {
			continue
		}
		a.Normalize()
		out = append(out, a)
	}
	return out, nil
}

func (p *persistence) SaveAccounts(_ context.Context, accounts []*account.Account) error {
	if accounts == nil {
		accounts = []*account.Account{}
	}
	data, err := json.MarshalIndent(accounts, "", "  ")
	if err != nil {
		return err
	}
	return p.write(AccountsKey, data)
}

func (p *persistence) LoadSettings(_ context.Context) (Settings, error) {
	s := DefaultSettings()
	if !p.d.Has(SettingsKey) {
		return s, nil
	}
	val, err := p.d.Read(SettingsKey)
	if err != nil {
		return s, fmt.Errorf("store: read %s: %w", SettingsKey, err)
	}
	if len(bytes.TrimSpace(val)) == 0 {
		return s, nil
	}
	if err := json.Unmarshal(val, &s); err != nil {
		return DefaultSettings(), fmt.Errorf("store: parse %s: %w", SettingsKey, err)
	}
	return s, nil
}

func (p *persistence) SaveSettings(_ context.Context, s Settings) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	return p.write(SettingsKey, data)
}

func (p *persistence) write(key string, data []byte) error {
	if err := os.MkdirAll(filepath.Join(p.basePath, tempDir), 0o700); err != nil {
		return fmt.Errorf("store: ensure base path: %w", err)
	}
	p.mu.Lock()
	p.written[key] = time.Now()
	p.mu.Unlock()
	if err := p.d.Write(key, data); err != nil {
		return fmt.Errorf("store: write %s: %w", key, err)
	}
	return nil
}

// ownWrite reports whether key was written by this process within window.
func (p *persistence) ownWrite(key string, window time.Duration) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	at, ok := p.written[key]
	return ok && time.Since(at) < window
}

// Both documents live directly in the base directory.
func keyToPathTransform(key string) *diskv.PathKey {
	return &diskv.PathKey{
		Path:     []string{},
		FileName: key,
	}
}

func pathToKeyTransform(pathKey *diskv.PathKey) string {
	return pathKey.FileName
}
