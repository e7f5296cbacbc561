package account

import (
	"encoding/json"
)

// Ban reasons of the first roster format, which stored IsBanned and
// BanReason instead of a status.
const (
	legacyReasonCooldown = 1
	legacyReasonBanned   = 2
)

type legacyFields struct {
	Status    json.RawMessage `json:"status"`
	IsBanned  *bool           `json:"IsBanned"`
	BanReason int             `json:"BanReason"`
	IsPrime   bool            `json:"IsPrime"`
}

// UnmarshalJSON reads current documents and the first roster format. When a
// document has no status, IsBanned and BanReason decide it.
func (a *Account) UnmarshalJSON(b []byte) error {
	type plain Account
	var p plain
	if err := json.Unmarshal(b, &p); err != nil {
		return err
	}
	var l legacyFields
	if err := json.Unmarshal(b, &l); err != nil {
		return err
	}
	*a = Account(p)

	if l.IsPrime {
		a.Prime = true
	}
	if (len(l.Status) == 0 || string(l.Status) == "null") && l.IsBanned != nil {
		a.Status = legacyStatus(*l.IsBanned, l.BanReason)
	}
	return nil
}

func legacyStatus(banned bool, reason int) Status {
	if !banned {
		return Normal
	}
	switch reason {
	case legacyReasonCooldown:
		return Cooldown
	case legacyReasonBanned:
		return VacBan
	default:
		return Unknown
	}
}
