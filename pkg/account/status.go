package account

import (
	"strings"
)

// Status is the ban state of an account.
type Status int

const (
	// Unknown is used for accounts that were never checked and for persisted
	// values this version does not understand.
	Unknown Status = iota
	// Normal accounts can queue without restriction.
	Normal
	// Cooldown is a temporary restriction that ends at CooldownExpiry.
	Cooldown
	// GameBan is a game-issued ban reported by the Steam Web API.
	GameBan
	// VacBan is a Valve Anti-Cheat ban reported by the Steam Web API.
	VacBan
)

var statusNames = map[Status]string{
	Unknown:  "unknown",
	Normal:   "normal",
	Cooldown: "cooldown",
	GameBan:  "game_ban",
	VacBan:   "vac_ban",
}

// statusAliases maps lowercase spellings, including the labels written by
// earlier versions of the roster file, onto a Status.
var statusAliases = map[string]Status{
	"unknown":  Unknown,
	"normal":   Normal,
	"ok":       Normal,
	"clean":    Normal,
	"cooldown": Cooldown,
	"cd":       Cooldown,
	"game_ban": GameBan,
	"gameban":  GameBan,
	"game-ban": GameBan,
	"game":     GameBan,
	"vac_ban":  VacBan,
	"vacban":   VacBan,
	"vac-ban":  VacBan,
	"vac":      VacBan,
	"正常":       Normal,
	"冷却":       Cooldown,
	"未知":       Unknown,
	"封禁":       GameBan,
	"游戏封禁":     GameBan,
}

// AllStatuses returns every status in priority order.
func AllStatuses() []Status {
	return []Status{Unknown, Normal, Cooldown, GameBan, VacBan}
}

// ParseStatus converts raw text to a Status. Anything unrecognized becomes
// Unknown with ok == false.
func ParseStatus(raw string) (Status, bool) {
	cleaned := strings.ToLower(strings.TrimSpace(raw))
	cleaned = strings.Trim(cleaned, "✨⏳🚫⛔❌✅ ")
	if s, found := statusAliases[cleaned]; found {
		return s, true
	}
	return Unknown, false
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return statusNames[Unknown]
}

func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText never fails; unknown values load as Unknown.
func (s *Status) UnmarshalText(b []byte) error {
	*s, _ = ParseStatus(string(b))
	return nil
}
