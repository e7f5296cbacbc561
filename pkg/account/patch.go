package account

import (
	"time"
)

// Patch is a partial update. Nil fields are left alone.
type Patch struct {
	Username      *string
	Password      *string
	Nickname      *string
	SteamID64     *string
	Email         *string
	EmailPassword *string
	EmailURL      *string
	Notes         *string
	Prime         *bool
	Status        *Status
	// CooldownDays and CooldownHours start a new cooldown when their sum is
	// set; they win over Status.
	CooldownDays  *int
	CooldownHours *int
}

// Empty reports whether the patch changes nothing.
func (p Patch) Empty() bool {
	return p == Patch{}
}

// Apply writes the set fields onto a. Status changes go through SetStatus
// and StartCooldown so the expiry stays consistent.
func (p Patch) Apply(a *Account, now time.Time) error {
	set := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	set(&a.Username, p.Username)
	set(&a.Password, p.Password)
	set(&a.Nickname, p.Nickname)
	set(&a.SteamID64, p.SteamID64)
	set(&a.Email, p.Email)
	set(&a.EmailPassword, p.EmailPassword)
	set(&a.EmailURL, p.EmailURL)
	set(&a.Notes, p.Notes)
	if p.Prime != nil {
		a.Prime = *p.Prime
	}

	if p.CooldownDays != nil || p.CooldownHours != nil {
		var days, hours int
		if p.CooldownDays != nil {
			days = *p.CooldownDays
		}
		if p.CooldownHours != nil {
			hours = *p.CooldownHours
		}
		return a.StartCooldown(now, days, hours)
	}
	if p.Status != nil {
		if *p.Status == Cooldown && a.Status == Cooldown {
			return nil
		}
		return a.SetStatus(*p.Status)
	}
	return nil
}

// Redacted returns a copy without the account and email passwords.
func (a *Account) Redacted() *Account {
	c := a.Clone()
	c.Password = ""
	c.EmailPassword = ""
	return c
}
