// Package roster owns the in-memory account list. Every change goes through
// a Roster so the CLI, the live view and the MCP server share one set of
// rules: validate, persist the whole list, then tell subscribers.
package roster

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"tableflip.dev/roster/pkg/account"
	"tableflip.dev/roster/pkg/clock"
	"tableflip.dev/roster/pkg/steamapi"
	"tableflip.dev/roster/pkg/store"
)

var (
	ErrBusy       = errors.New("roster: a refresh is already running")
	ErrNotFound   = errors.New("roster: account not found")
	ErrAmbiguous  = errors.New("roster: reference matches more than one account")
	ErrNoSteamIDs = errors.New("roster: none of the selected accounts has a SteamID64")
	ErrDuplicate  = errors.New("roster: account id already exists")
)

// DefaultCooldown is used for a remote probation report when none is
// configured.
const DefaultCooldown = 7 * 24 * time.Hour

// StatusSource is the remote side of a refresh. *steamapi.Client implements
// it.
type StatusSource interface {
	PlayerBans(ctx context.Context, key string, ids []string) (map[string]steamapi.Bans, error)
	PlayerSummaries(ctx context.Context, key string, ids []string) (map[string]steamapi.Summary, error)
}

// Options configure New.
type Options struct {
	Persistence     store.Persistence
	Source          StatusSource
	Clock           clock.Clock
	Log             zerolog.Logger
	DefaultCooldown time.Duration
}

// Roster is safe for concurrent use. Mutations are serialized; remote calls
// run without holding the lock.
type Roster struct {
	persist         store.Persistence
	source          StatusSource
	clock           clock.Clock
	log             zerolog.Logger
	defaultCooldown time.Duration

	mu       sync.Mutex
	accounts []*account.Account
	settings store.Settings
	status   string

	busy atomic.Bool
	obs  observers
}

// New returns an empty Roster. Call Open to load the saved state.
func New(o Options) *Roster {
	if o.Clock == nil {
		o.Clock = clock.New()
	}
	if o.DefaultCooldown <= 0 {
		o.DefaultCooldown = DefaultCooldown
	}
	return &Roster{
		persist:         o.Persistence,
		source:          o.Source,
		clock:           o.Clock,
		log:             o.Log,
		defaultCooldown: o.DefaultCooldown,
		settings:        store.DefaultSettings(),
	}
}

// Open loads accounts and settings from persistence.
func (r *Roster) Open(ctx context.Context) error {
	if r.persist == nil {
		return errors.New("roster: no persistence configured")
	}
	accounts, err := r.persist.LoadAccounts(ctx)
	if err != nil {
		return err
	}
	settings, err := r.persist.LoadSettings(ctx)
	if err != nil {
		return err
	}

	r.mu.Lock()
	r.accounts = accounts
	r.settings = settings
	n := len(accounts)
	r.mu.Unlock()

	r.log.Debug().Int("accounts", n).Str("path", r.persist.Location()).Msg("roster loaded")
	r.obs.emit(Change{Kind: Reloaded})
	return nil
}

// Reload re-reads the saved state, typically after the files changed on
// disk.
func (r *Roster) Reload(ctx context.Context) error {
	return r.Open(ctx)
}

// Subscribe registers fn for every later Change. The returned func removes
// it. fn runs on the goroutine that made the change and must not block.
func (r *Roster) Subscribe(fn func(Change)) func() {
	return r.obs.add(fn)
}

// Now is the roster's clock reading.
func (r *Roster) Now() time.Time {
	return r.clock.Now()
}

// Busy reports whether a refresh is in flight.
func (r *Roster) Busy() bool {
	return r.busy.Load()
}

// StatusLine is the most recent human readable notice.
func (r *Roster) StatusLine() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.status
}

func (r *Roster) setStatus(msg string) {
	r.mu.Lock()
	r.status = msg
	r.mu.Unlock()
	r.obs.emit(Change{Kind: Status, Message: msg})
}

// View returns copies of all accounts in display order.
func (r *Roster) View() []*account.Account {
	r.mu.Lock()
	defer r.mu.Unlock()
	return account.Sorted(cloneAll(r.accounts))
}

// Len is the number of accounts.
func (r *Roster) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.accounts)
}

// Find resolves ref to one account. An exact ID wins, then an exact
// username (case-insensitive), then a unique ID prefix.
func (r *Roster) Find(ref string) (*account.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, err := r.find(ref)
	if err != nil {
		return nil, err
	}
	return a.Clone(), nil
}

func (r *Roster) find(ref string) (*account.Account, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, fmt.Errorf("%w: empty reference", ErrNotFound)
	}
	for _, a := range r.accounts {
		if a.ID == ref {
			return a, nil
		}
	}

	var byName []*account.Account
	for _, a := range r.accounts {
		if strings.EqualFold(a.Username, ref) {
			byName = append(byName, a)
		}
	}
	switch len(byName) {
	case 1:
		return byName[0], nil
	case 0:
	default:
		return nil, fmt.Errorf("%w: %q (%d usernames)", ErrAmbiguous, ref, len(byName))
	}

	var byPrefix []*account.Account
	for _, a := range r.accounts {
		if strings.HasPrefix(a.ID, ref) {
			byPrefix = append(byPrefix, a)
		}
	}
	switch len(byPrefix) {
	case 1:
		return byPrefix[0], nil
	case 0:
		return nil, fmt.Errorf("%w: %q", ErrNotFound, ref)
	default:
		return nil, fmt.Errorf("%w: %q (%d ids)", ErrAmbiguous, ref, len(byPrefix))
	}
}

// Resolve maps several refs to account IDs, failing on the first bad one.
func (r *Roster) Resolve(refs ...string) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ids := make([]string, 0, len(refs))
	for _, ref := range refs {
		a, err := r.find(ref)
		if err != nil {
			return nil, err
		}
		ids = append(ids, a.ID)
	}
	return ids, nil
}

// Add validates a and appends it.
func (r *Roster) Add(ctx context.Context, a *account.Account) (*account.Account, error) {
	if a == nil {
		return nil, errors.New("roster: nil account")
	}
	added, err := r.addAll(ctx, []*account.Account{a})
	if err != nil {
		return nil, err
	}
	return added[0], nil
}

// BulkAdd validates every account and appends them all, or none.
func (r *Roster) BulkAdd(ctx context.Context, accounts []*account.Account) (int, error) {
	added, err := r.addAll(ctx, accounts)
	return len(added), err
}

func (r *Roster) addAll(ctx context.Context, accounts []*account.Account) ([]*account.Account, error) {
	staged := make([]*account.Account, 0, len(accounts))
	for i, a := range accounts {
		if a == nil {
			continue
		}
		c := a.Clone()
		if c.ID == "" {
			c.Normalize()
		}
		if err := c.Validate(); err != nil {
			return nil, fmt.Errorf("account %d (%s): %w", i+1, c.Username, err)
		}
		staged = append(staged, c)
	}
	if len(staged) == 0 {
		return nil, nil
	}

	r.mu.Lock()
	seen := make(map[string]struct{}, len(r.accounts)+len(staged))
	for _, a := range r.accounts {
		seen[a.ID] = struct{}{}
	}
	for _, a := range staged {
		if _, dup := seen[a.ID]; dup {
			r.mu.Unlock()
			return nil, fmt.Errorf("%w: %s", ErrDuplicate, a.ID)
		}
		seen[a.ID] = struct{}{}
	}
	next := make([]*account.Account, 0, len(r.accounts)+len(staged))
	next = append(next, r.accounts...)
	next = append(next, staged...)
	if err := r.commitLocked(ctx, next); err != nil {
		r.mu.Unlock()
		return nil, err
	}
	out := cloneAll(staged)
	r.mu.Unlock()

	msg := fmt.Sprintf("added %d account(s)", len(out))
	r.setStatus(msg)
	r.obs.emit(Change{Kind: Added, IDs: idsOf(out), Message: msg})
	return out, nil
}

// Edit applies fn to a copy of the account and commits the copy only when
// fn succeeds and the result validates. The ID cannot be changed.
func (r *Roster) Edit(ctx context.Context, id string, fn func(*account.Account) error) (*account.Account, error) {
	r.mu.Lock()
	idx := r.indexLocked(id)
	if idx < 0 {
		r.mu.Unlock()
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	c := r.accounts[idx].Clone()
	if err := fn(c); err != nil {
		r.mu.Unlock()
		return nil, err
	}
	c.ID = id
	if err := c.Validate(); err != nil {
		r.mu.Unlock()
		return nil, err
	}
	next := cloneSlice(r.accounts)
	next[idx] = c
	if err := r.commitLocked(ctx, next); err != nil {
		r.mu.Unlock()
		return nil, err
	}
	out := c.Clone()
	r.mu.Unlock()

	r.obs.emit(Change{Kind: Updated, IDs: []string{id}})
	return out, nil
}

// Delete removes every account whose ID is in ids and reports how many
// were removed.
func (r *Roster) Delete(ctx context.Context, ids ...string) (int, error) {
	drop := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		drop[id] = struct{}{}
	}

	r.mu.Lock()
	next := make([]*account.Account, 0, len(r.accounts))
	var removed []string
	for _, a := range r.accounts {
		if _, ok := drop[a.ID]; ok {
			removed = append(removed, a.ID)
			continue
		}
		next = append(next, a)
	}
	if len(removed) == 0 {
		r.mu.Unlock()
		return 0, nil
	}
	if err := r.commitLocked(ctx, next); err != nil {
		r.mu.Unlock()
		return 0, err
	}
	r.mu.Unlock()

	msg := fmt.Sprintf("deleted %d account(s)", len(removed))
	r.setStatus(msg)
	r.obs.emit(Change{Kind: Removed, IDs: removed, Message: msg})
	return len(removed), nil
}

// Sweep returns every Cooldown account whose expiry is at or before now to
// Normal. The list is saved once if anything changed.
func (r *Roster) Sweep(ctx context.Context) ([]*account.Account, error) {
	now := r.clock.Now()

	r.mu.Lock()
	var next []*account.Account
	var flipped []*account.Account
	for i, a := range r.accounts {
		if a.Status != account.Cooldown || a.CooldownExpiry == nil || now.Before(a.CooldownExpiry.Time) {
			continue
		}
		if next == nil {
			next = cloneSlice(r.accounts)
		}
		c := a.Clone()
		c.ExpireCooldown(now)
		next[i] = c
		flipped = append(flipped, c)
	}
	if len(flipped) == 0 {
		r.mu.Unlock()
		return nil, nil
	}
	if err := r.commitLocked(ctx, next); err != nil {
		r.mu.Unlock()
		return nil, err
	}
	notices := make([]string, 0, len(flipped))
	for _, a := range flipped {
		notices = append(notices, fmt.Sprintf("cooldown ended for %s", a.Name()))
	}
	msg := strings.Join(notices, "; ")
	r.status = msg
	out := cloneAll(flipped)
	r.mu.Unlock()

	for _, a := range out {
		r.log.Info().Str("id", a.ID).Str("username", a.Username).Msg("cooldown ended")
	}
	r.obs.emit(Change{Kind: Status, Message: msg})
	r.obs.emit(Change{Kind: Swept, IDs: idsOf(out), Message: msg})
	return out, nil
}

// RefreshStatus asks the remote source for the ban state of the selected
// accounts, or of all accounts when ids is empty. Accounts the source does
// not report on are set to Normal. On failure nothing is changed.
func (r *Roster) RefreshStatus(ctx context.Context, ids ...string) (int, error) {
	if !r.busy.CompareAndSwap(false, true) {
		return 0, ErrBusy
	}
	defer r.busy.Store(false)

	key, targets, err := r.selectTargets(ids)
	if err != nil {
		r.setStatus(err.Error())
		return 0, err
	}
	if r.source == nil {
		return 0, errors.New("roster: no status source configured")
	}

	r.setStatus("updating account status...")
	bans, err := r.source.PlayerBans(ctx, key, steamIDs(targets))
	if err != nil {
		r.setStatus("status refresh failed: " + err.Error())
		return 0, err
	}

	now := r.clock.Now()
	r.mu.Lock()
	next := cloneSlice(r.accounts)
	var touched []string
	for i, a := range next {
		sid, ok := targets[a.ID]
		if !ok || a.SteamID64 != sid {
			continue
		}
		c := a.Clone()
		if b, found := bans[sid]; found {
			c.ApplyBans(account.Bans{
				VACBanned:        b.VACBanned,
				GameBans:         b.NumberOfGameBans,
				DaysSinceLastBan: b.DaysSinceLastBan,
				EconomyBan:       b.EconomyBan,
			}, now, r.defaultCooldown)
		} else {
			c.ApplyNotFound()
		}
		next[i] = c
		touched = append(touched, c.ID)
	}
	if len(touched) > 0 {
		if err := r.commitLocked(ctx, next); err != nil {
			r.mu.Unlock()
			r.setStatus("status refresh failed: " + err.Error())
			return 0, err
		}
	}
	r.mu.Unlock()

	msg := fmt.Sprintf("status refreshed for %d account(s)", len(touched))
	r.setStatus(msg)
	r.obs.emit(Change{Kind: Refreshed, IDs: touched, Message: msg})
	return len(touched), nil
}

// RefreshNicknames replaces nicknames with the remote persona names.
func (r *Roster) RefreshNicknames(ctx context.Context, ids ...string) (int, error) {
	if !r.busy.CompareAndSwap(false, true) {
		return 0, ErrBusy
	}
	defer r.busy.Store(false)

	key, targets, err := r.selectTargets(ids)
	if err != nil {
		r.setStatus(err.Error())
		return 0, err
	}
	if r.source == nil {
		return 0, errors.New("roster: no status source configured")
	}

	r.setStatus("updating nicknames...")
	summaries, err := r.source.PlayerSummaries(ctx, key, steamIDs(targets))
	if err != nil {
		r.setStatus("nickname refresh failed: " + err.Error())
		return 0, err
	}
	if len(summaries) == 0 {
		r.setStatus("API returned no data")
		return 0, nil
	}

	r.mu.Lock()
	next := cloneSlice(r.accounts)
	var touched []string
	for i, a := range next {
		sid, ok := targets[a.ID]
		if !ok || a.SteamID64 != sid {
			continue
		}
		s, found := summaries[sid]
		if !found || s.PersonaName == "" {
			continue
		}
		c := a.Clone()
		c.Nickname = s.PersonaName
		next[i] = c
		touched = append(touched, c.ID)
	}
	if len(touched) > 0 {
		if err := r.commitLocked(ctx, next); err != nil {
			r.mu.Unlock()
			r.setStatus("nickname refresh failed: " + err.Error())
			return 0, err
		}
	}
	r.mu.Unlock()

	msg := fmt.Sprintf("updated nicknames for %d account(s)", len(touched))
	r.setStatus(msg)
	r.obs.emit(Change{Kind: Refreshed, IDs: touched, Message: msg})
	return len(touched), nil
}

// selectTargets returns the API key and the SteamID64 of every selected
// account that has one, keyed by account ID.
func (r *Roster) selectTargets(ids []string) (string, map[string]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	want := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		want[id] = struct{}{}
	}
	targets := make(map[string]string)
	for _, a := range r.accounts {
		if len(want) > 0 {
			if _, ok := want[a.ID]; !ok {
				continue
			}
		}
		if a.SteamID64 == "" {
			continue
		}
		targets[a.ID] = a.SteamID64
	}
	if len(targets) == 0 {
		return "", nil, ErrNoSteamIDs
	}
	if strings.TrimSpace(r.settings.APIKey) == "" {
		return "", nil, steamapi.ErrMissingAPIKey
	}
	return r.settings.APIKey, targets, nil
}

// Settings returns the current settings.
func (r *Roster) Settings() store.Settings {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.settings
}

// SetAPIKey stores the Steam Web API key.
func (r *Roster) SetAPIKey(ctx context.Context, key string) error {
	key = strings.TrimSpace(key)
	return r.updateSettings(ctx, func(s *store.Settings) { s.APIKey = key }, "API key saved")
}

// DismissNotice turns the startup notice off for good.
func (r *Roster) DismissNotice(ctx context.Context) error {
	return r.SetNotice(ctx, false)
}

// SetNotice turns the startup notice on or off.
func (r *Roster) SetNotice(ctx context.Context, show bool) error {
	return r.updateSettings(ctx, func(s *store.Settings) { s.ShowStartupNotice = show }, "")
}

func (r *Roster) updateSettings(ctx context.Context, fn func(*store.Settings), msg string) error {
	r.mu.Lock()
	next := r.settings
	fn(&next)
	if next == r.settings {
		r.mu.Unlock()
		return nil
	}
	if err := r.persist.SaveSettings(ctx, next); err != nil {
		r.mu.Unlock()
		return err
	}
	r.settings = next
	r.mu.Unlock()

	if msg != "" {
		r.setStatus(msg)
	}
	return nil
}

// commitLocked saves next and, only if that worked, makes it current.
// r.mu must be held.
func (r *Roster) commitLocked(ctx context.Context, next []*account.Account) error {
	if r.persist == nil {
		return errors.New("roster: no persistence configured")
	}
	if err := r.persist.SaveAccounts(ctx, next); err != nil {
		return fmt.Errorf("roster: save: %w", err)
	}
	r.accounts = next
	return nil
}

func (r *Roster) indexLocked(id string) int {
	for i, a := range r.accounts {
		if a.ID == id {
			return i
		}
	}
	return -1
}

// cloneSlice copies the slice but shares the elements; callers replace the
// elements they change with clones.
func cloneSlice(in []*account.Account) []*account.Account {
	out := make([]*account.Account, len(in))
	copy(out, in)
	return out
}

func cloneAll(in []*account.Account) []*account.Account {
	out := make([]*account.Account, 0, len(in))
	for _, a := range in {
		out = append(out, a.Clone())
	}
	return out
}

func idsOf(in []*account.Account) []string {
	out := make([]string, 0, len(in))
	for _, a := range in {
		out = append(out, a.ID)
	}
	return out
}

func steamIDs(targets map[string]string) []string {
	out := make([]string, 0, len(targets))
	for _, sid := range targets {
		out = append(out, sid)
	}
	sort.Strings(out)
	return out
}
