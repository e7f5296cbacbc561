package glyph

import (
	"fmt"

	"github.com/fatih/color"

	"tableflip.dev/roster/pkg/account"
)

// Glyph is the one-character marker shown next to an account.
type Glyph struct {
	Key     string
	Symbol  string
	Meaning string
	// Color is used by the plain printers, Shade (an ANSI 256 code) by the
	// live view.
	Color color.Attribute
	Shade string
}

const (
	escape     = "\x1b"
	resetCode  = 0
	boldCode   = 1
	strikeCode = 9
)

func Strike(in string) string {
	return fmt.Sprintf("%s[%dm%s%s[%dm", escape, strikeCode, in, escape, resetCode)
}

func Bold(in string) string {
	return fmt.Sprintf("%s[%dm%s%s[%dm", escape, boldCode, in, escape, resetCode)
}

var statusGlyphs = map[account.Status]Glyph{
	account.Unknown:  {Key: "unknown", Symbol: "?", Meaning: "never checked", Color: color.FgWhite, Shade: "244"},
	account.Normal:   {Key: "normal", Symbol: "●", Meaning: "ready to play", Color: color.FgGreen, Shade: "42"},
	account.Cooldown: {Key: "cooldown", Symbol: "◷", Meaning: "competitive cooldown, counts down", Color: color.FgYellow, Shade: "214"},
	account.GameBan:  {Key: "game_ban", Symbol: "✘", Meaning: "game ban", Color: color.FgMagenta, Shade: "170"},
	account.VacBan:   {Key: "vac_ban", Symbol: "⊘", Meaning: "VAC ban", Color: color.FgRed, Shade: "196"},
}

// Prime marks accounts on the prime tier.
var Prime = Glyph{Key: "prime", Symbol: "★", Meaning: "prime account, listed first", Color: color.FgHiYellow, Shade: "220"}

// For returns the glyph of a status.
func For(s account.Status) Glyph {
	if g, ok := statusGlyphs[s]; ok {
		return g
	}
	return statusGlyphs[account.Unknown]
}

// Legend lists the status glyphs in display priority order, then Prime.
func Legend() []Glyph {
	out := make([]Glyph, 0, len(statusGlyphs)+1)
	for _, s := range account.AllStatuses() {
		out = append(out, For(s))
	}
	return append(out, Prime)
}

func (g Glyph) String() string {
	return g.Symbol
}

// Paint renders the symbol in the glyph's color.
func (g Glyph) Paint() string {
	return color.New(g.Color).Sprint(g.Symbol)
}
