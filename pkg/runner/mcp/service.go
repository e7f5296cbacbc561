// Package mcp exposes the roster over the Model Context Protocol.
package mcp

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"tableflip.dev/roster/pkg/account"
	"tableflip.dev/roster/pkg/glyph"
	"tableflip.dev/roster/pkg/importer"
	"tableflip.dev/roster/pkg/roster"
	"tableflip.dev/roster/pkg/timeutil"
)

// Service adapts roster operations to transport-friendly values.
type Service struct {
	Roster *roster.Roster
}

// AccountDTO is an account without its secrets.
type AccountDTO struct {
	ID               string `json:"id"`
	Username         string `json:"username"`
	Nickname         string `json:"nickname,omitempty"`
	SteamID64        string `json:"steamId64,omitempty"`
	Email            string `json:"email,omitempty"`
	EmailURL         string `json:"emailUrl,omitempty"`
	Notes            string `json:"notes,omitempty"`
	Prime            bool   `json:"prime"`
	Status           string `json:"status"`
	StatusSymbol     string `json:"statusSymbol"`
	DisplayStatus    string `json:"displayStatus"`
	Priority         int    `json:"priority"`
	CooldownExpiry   string `json:"cooldownExpiry,omitempty"`
	CooldownLeft     string `json:"cooldownLeft,omitempty"`
	VACBanned        bool   `json:"vacBanned"`
	GameBans         int    `json:"gameBans,omitempty"`
	DaysSinceLastBan int    `json:"daysSinceLastBan,omitempty"`
}

// AddAccountOptions are the fields accepted when creating an account.
type AddAccountOptions struct {
	Username  string
	Password  string
	Nickname  string
	SteamID64 string
	Email     string
	Notes     string
	Prime     bool
}

// NewService wraps r.
func NewService(r *roster.Roster) *Service {
	return &Service{Roster: r}
}

func (s *Service) ready() error {
	if s.Roster == nil {
		return errors.New("roster is not configured")
	}
	return nil
}

// ListAccounts returns accounts in display order, optionally only those
// with the given status.
func (s *Service) ListAccounts(_ context.Context, status string) ([]AccountDTO, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	var filter *account.Status
	if strings.TrimSpace(status) != "" {
		st, ok := account.ParseStatus(status)
		if !ok {
			return nil, fmt.Errorf("unknown status %q", status)
		}
		filter = &st
	}

	out := make([]AccountDTO, 0)
	for _, a := range s.Roster.View() {
		if filter != nil && a.Status != *filter {
			continue
		}
		out = append(out, s.toDTO(a))
	}
	return out, nil
}

// Account resolves ref to a single account.
func (s *Service) Account(_ context.Context, ref string) (*AccountDTO, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	a, err := s.Roster.Find(ref)
	if err != nil {
		return nil, err
	}
	dto := s.toDTO(a)
	return &dto, nil
}

// AddAccount creates an account.
func (s *Service) AddAccount(ctx context.Context, o AddAccountOptions) (*AccountDTO, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	a := account.New(strings.TrimSpace(o.Username), o.Password)
	a.Nickname = strings.TrimSpace(o.Nickname)
	a.SteamID64 = strings.TrimSpace(o.SteamID64)
	a.Email = strings.TrimSpace(o.Email)
	a.Notes = o.Notes
	a.Prime = o.Prime

	added, err := s.Roster.Add(ctx, a)
	if err != nil {
		return nil, err
	}
	dto := s.toDTO(added)
	return &dto, nil
}

// UpdateAccount applies a patch to the account ref resolves to.
func (s *Service) UpdateAccount(ctx context.Context, ref string, p account.Patch) (*AccountDTO, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	if p.Empty() {
		return nil, errors.New("no fields to update")
	}
	a, err := s.Roster.Find(ref)
	if err != nil {
		return nil, err
	}
	now := s.Roster.Now()
	edited, err := s.Roster.Edit(ctx, a.ID, func(a *account.Account) error {
		return p.Apply(a, now)
	})
	if err != nil {
		return nil, err
	}
	dto := s.toDTO(edited)
	return &dto, nil
}

// StartCooldown puts the account in cooldown for a duration such as "3d12h".
func (s *Service) StartCooldown(ctx context.Context, ref, duration string) (*AccountDTO, error) {
	days, hours, err := timeutil.ParseCooldown(duration)
	if err != nil {
		return nil, err
	}
	return s.UpdateAccount(ctx, ref, account.Patch{CooldownDays: &days, CooldownHours: &hours})
}

// DeleteAccount removes one account.
func (s *Service) DeleteAccount(ctx context.Context, ref string) (*AccountDTO, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	a, err := s.Roster.Find(ref)
	if err != nil {
		return nil, err
	}
	if _, err := s.Roster.Delete(ctx, a.ID); err != nil {
		return nil, err
	}
	dto := s.toDTO(a)
	return &dto, nil
}

// RefreshStatus updates ban status for refs, or for every account.
func (s *Service) RefreshStatus(ctx context.Context, refs []string) ([]AccountDTO, string, error) {
	if err := s.ready(); err != nil {
		return nil, "", err
	}
	ids, err := s.Roster.Resolve(refs...)
	if err != nil {
		return nil, "", err
	}
	if _, err := s.Roster.RefreshStatus(ctx, ids...); err != nil {
		return nil, "", err
	}
	return s.pick(ids), s.Roster.StatusLine(), nil
}

// RefreshNicknames replaces nicknames with Steam persona names.
func (s *Service) RefreshNicknames(ctx context.Context, refs []string) ([]AccountDTO, string, error) {
	if err := s.ready(); err != nil {
		return nil, "", err
	}
	ids, err := s.Roster.Resolve(refs...)
	if err != nil {
		return nil, "", err
	}
	if _, err := s.Roster.RefreshNicknames(ctx, ids...); err != nil {
		return nil, "", err
	}
	return s.pick(ids), s.Roster.StatusLine(), nil
}

// Sweep ends expired cooldowns.
func (s *Service) Sweep(ctx context.Context) ([]AccountDTO, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	flipped, err := s.Roster.Sweep(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]AccountDTO, 0, len(flipped))
	for _, a := range flipped {
		out = append(out, s.toDTO(a))
	}
	return out, nil
}

// ImportAccounts parses text and adds every account found.
func (s *Service) ImportAccounts(ctx context.Context, text, policy string) (int, []importer.Skipped, error) {
	if err := s.ready(); err != nil {
		return 0, nil, err
	}
	p, err := importer.ParsePolicy(policy)
	if err != nil {
		return 0, nil, err
	}
	o := importer.DefaultOptions()
	o.Policy = p

	res := importer.Parse(text, o)
	if err := res.Err(); err != nil {
		return 0, res.Skipped, err
	}
	n, err := s.Roster.BulkAdd(ctx, res.Accounts)
	return n, res.Skipped, err
}

func (s *Service) pick(ids []string) []AccountDTO {
	want := make(map[string]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}
	out := make([]AccountDTO, 0)
	for _, a := range s.Roster.View() {
		if len(want) == 0 || want[a.ID] {
			out = append(out, s.toDTO(a))
		}
	}
	return out
}

func (s *Service) toDTO(a *account.Account) AccountDTO {
	now := s.Roster.Now()
	dto := AccountDTO{
		ID:               a.ID,
		Username:         a.Username,
		Nickname:         a.Nickname,
		SteamID64:        a.SteamID64,
		Email:            a.Email,
		EmailURL:         a.EmailURL,
		Notes:            a.Notes,
		Prime:            a.Prime,
		Status:           a.Status.String(),
		StatusSymbol:     glyph.For(a.Status).Symbol,
		DisplayStatus:    a.DisplayStatus(now),
		Priority:         a.Priority(),
		VACBanned:        a.VACBanned,
		GameBans:         a.GameBans,
		DaysSinceLastBan: a.DaysSinceLastBan,
	}
	if a.CooldownExpiry != nil {
		dto.CooldownExpiry = account.FormatTime(a.CooldownExpiry.Time)
		dto.CooldownLeft = timeutil.FormatRemaining(a.Remaining(now))
	}
	return dto
}
