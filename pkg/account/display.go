package account

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"
)

// Priority ranks the status for display; lower sorts first.
func (a *Account) Priority() int {
	switch a.Status {
	case Normal:
		return 1
	case Cooldown:
		return 2
	case GameBan:
		return 3
	case VacBan:
		return 4
	default:
		return 0
	}
}

// Remaining is the cooldown time left at now, or zero when not in cooldown.
func (a *Account) Remaining(now time.Time) time.Duration {
	if a.Status != Cooldown || a.CooldownExpiry == nil {
		return 0
	}
	left := a.CooldownExpiry.Sub(now)
	if left < 0 {
		return 0
	}
	return left
}

// DisplayStatus renders the status with a live cooldown countdown. It is
// recomputed on every call.
func (a *Account) DisplayStatus(now time.Time) string {
	switch a.Status {
	case Normal:
		return "normal"
	case GameBan:
		return "game ban"
	case VacBan:
		return "VAC"
	case Cooldown:
		if a.CooldownExpiry == nil {
			return "cooldown (no expiry)"
		}
		left := a.CooldownExpiry.Sub(now)
		switch {
		case left <= 0:
			return "cooldown (ended)"
		case left >= 24*time.Hour:
			return fmt.Sprintf("cooldown (%dd left)", int(math.Ceil(left.Hours()/24)))
		default:
			return fmt.Sprintf("cooldown (%dh left)", int(math.Ceil(left.Hours())))
		}
	default:
		return "unknown"
	}
}

// Sorted returns a new slice ordered for display: prime accounts first, then
// by status priority, then by username.
func Sorted(accounts []*Account) []*Account {
	out := make([]*Account, 0, len(accounts))
	for _, a := range accounts {
		if a != nil {
			out = append(out, a)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		l, r := out[i], out[j]
		if l.Prime != r.Prime {
			return l.Prime
		}
		if lp, rp := l.Priority(), r.Priority(); lp != rp {
			return lp < rp
		}
		if lu, ru := strings.ToLower(l.Username), strings.ToLower(r.Username); lu != ru {
			return lu < ru
		}
		return l.ID < r.ID
	})
	return out
}
