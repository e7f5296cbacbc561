// Package account models a single Steam account in the roster and its ban
// status lifecycle.
package account

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrCooldownDuration is returned when a cooldown is started with a
	// non-positive length.
	ErrCooldownDuration = errors.New("account: cooldown needs a positive duration")
	// ErrCooldownExpiry is returned when Cooldown is set without an expiry.
	ErrCooldownExpiry = errors.New("account: cooldown status requires an expiry")
)

// EconomyProbation is the economy ban tier the Steam Web API reports for a
// competitive cooldown.
const EconomyProbation = "probation"

// Account is one entry of the roster. Only the exported, tagged fields are
// persisted; priority and display status are derived on read.
type Account struct {
	ID            string `json:"id"`
	Username      string `json:"username" validate:"required"`
	Password      string `json:"password" validate:"required"`
	Nickname      string `json:"nickname,omitempty"`
	SteamID64     string `json:"steamId64,omitempty" validate:"omitempty,number"`
	Email         string `json:"email,omitempty"`
	EmailPassword string `json:"emailPassword,omitempty"`
	EmailURL      string `json:"emailUrl,omitempty" validate:"omitempty,url"`
	Notes         string `json:"notes,omitempty"`
	Prime         bool   `json:"prime"`

	Status         Status     `json:"status"`
	CooldownExpiry *Timestamp `json:"cooldownExpiry,omitempty"`

	VACBanned        bool   `json:"vacBanned"`
	GameBans         int    `json:"gameBans,omitempty"`
	DaysSinceLastBan int    `json:"daysSinceLastBan,omitempty"`
	EconomyBan       string `json:"economyBan,omitempty"`
}

// New returns an unchecked account with a fresh identifier.
func New(username, password string) *Account {
	return &Account{
		ID:       uuid.NewString(),
		Username: username,
		Password: password,
		Status:   Unknown,
	}
}

// Name is the label shown to people: the nickname when set, else the username.
func (a *Account) Name() string {
	if a.Nickname != "" {
		return a.Nickname
	}
	return a.Username
}

// SetStatus moves the account to s. Leaving Cooldown clears the expiry;
// entering Cooldown this way is only allowed when an expiry is already set,
// use StartCooldown otherwise.
func (a *Account) SetStatus(s Status) error {
	if s == Cooldown {
		if a.CooldownExpiry == nil {
			return ErrCooldownExpiry
		}
		a.Status = Cooldown
		return nil
	}
	a.Status = s
	a.CooldownExpiry = nil
	return nil
}

// StartCooldown puts the account in Cooldown until now + days + hours. The
// expiry is fixed here and never recomputed.
func (a *Account) StartCooldown(now time.Time, days, hours int) error {
	d := time.Duration(days)*24*time.Hour + time.Duration(hours)*time.Hour
	if d <= 0 {
		return ErrCooldownDuration
	}
	return a.startCooldownFor(now, d)
}

func (a *Account) startCooldownFor(now time.Time, d time.Duration) error {
	if d <= 0 {
		return ErrCooldownDuration
	}
	a.Status = Cooldown
	a.CooldownExpiry = NewTimestamp(now.Add(d))
	return nil
}

// ExpireCooldown returns the account to Normal when its cooldown has run out
// at now. It reports whether anything changed.
func (a *Account) ExpireCooldown(now time.Time) bool {
	if a.Status != Cooldown || a.CooldownExpiry == nil {
		return false
	}
	if now.Before(a.CooldownExpiry.Time) {
		return false
	}
	a.Status = Normal
	a.CooldownExpiry = nil
	return true
}

// Bans is the subset of a remote ban report the account cares about.
type Bans struct {
	VACBanned        bool
	GameBans         int
	DaysSinceLastBan int
	EconomyBan       string
}

// ApplyBans maps a remote ban report onto the account. A probation report
// keeps an existing future expiry and otherwise starts a cooldown of
// defaultCooldown.
func (a *Account) ApplyBans(b Bans, now time.Time, defaultCooldown time.Duration) {
	a.VACBanned = b.VACBanned
	a.GameBans = b.GameBans
	a.DaysSinceLastBan = b.DaysSinceLastBan
	a.EconomyBan = b.EconomyBan

	switch {
	case b.VACBanned:
		_ = a.SetStatus(VacBan)
	case b.GameBans > 0:
		_ = a.SetStatus(GameBan)
	case b.EconomyBan == EconomyProbation:
		if a.Status == Cooldown && a.CooldownExpiry != nil && now.Before(a.CooldownExpiry.Time) {
			return
		}
		if err := a.startCooldownFor(now, defaultCooldown); err != nil {
			_ = a.startCooldownFor(now, 24*time.Hour)
		}
	default:
		_ = a.SetStatus(Normal)
	}
}

// ApplyNotFound handles an account the remote service returned nothing for.
// Such accounts are treated as clean.
func (a *Account) ApplyNotFound() {
	a.VACBanned = false
	a.GameBans = 0
	a.DaysSinceLastBan = 0
	a.EconomyBan = ""
	_ = a.SetStatus(Normal)
}

// Normalize repairs records that break the cooldown invariant, as can happen
// with hand-edited or legacy files.
func (a *Account) Normalize() {
	if a.CooldownExpiry != nil && a.CooldownExpiry.IsZero() {
		a.CooldownExpiry = nil
	}
	switch {
	case a.Status == Cooldown && a.CooldownExpiry == nil:
		a.Status = Unknown
	case a.Status != Cooldown && a.CooldownExpiry != nil:
		a.CooldownExpiry = nil
	}
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
}

// Clone returns a deep copy.
func (a *Account) Clone() *Account {
	c := *a
	if a.CooldownExpiry != nil {
		c.CooldownExpiry = NewTimestamp(a.CooldownExpiry.Time)
	}
	return &c
}
