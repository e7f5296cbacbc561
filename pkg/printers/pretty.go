package printers

import (
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/roster/pkg/account"
	"tableflip.dev/roster/pkg/glyph"
)

type PrettyPrint struct {
	ShowID bool
	// ShowSecrets prints passwords instead of masking them.
	ShowSecrets bool
	Now         time.Time
}

const shortID = 8

func (pp *PrettyPrint) now() time.Time {
	if pp.Now.IsZero() {
		return time.Now()
	}
	return pp.Now
}

func (pp *PrettyPrint) NewLine() {
	_, _ = fmt.Fprintln(color.Output, "")
}

func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)
	_, _ = t.Fprintln(color.Output, title)
}

func (pp *PrettyPrint) TitleWithCount(title string, count int) {
	t := color.New(color.Bold, color.Underline)
	c := color.New(color.Faint)

	_, _ = t.Fprint(color.Output, title)
	_, _ = c.Fprintf(color.Output, " - %d", count)

	switch count {
	case 1:
		_, _ = c.Fprintln(color.Output, " account")
	default:
		_, _ = c.Fprintln(color.Output, " accounts")
	}
}

// Roster prints accounts as a table, in the order given.
func (pp *PrettyPrint) Roster(accounts ...*account.Account) {
	if len(accounts) == 0 {
		f := color.New(color.Faint, color.Italic)
		_, _ = f.Fprint(color.Output, " none\n\n")
		return
	}

	bold := color.New(color.Bold)
	y := color.New(color.FgHiYellow, color.Italic, color.Faint)
	now := pp.now()

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.MaxColWidth = 40
	header := []interface{}{" ", bold.Sprint("Account"), bold.Sprint("Nickname"), bold.Sprint("SteamID64"), bold.Sprint("Status")}
	if pp.ShowID {
		header = append([]interface{}{bold.Sprint("ID")}, header...)
	}
	tbl.AddRow(header...)

	for _, a := range accounts {
		g := glyph.For(a.Status)
		marker := g.Paint()
		if a.Prime {
			marker = glyph.Prime.Paint() + marker
		} else {
			marker = " " + marker
		}
		name := a.Username
		switch {
		case a.Status == account.VacBan:
			name = glyph.Strike(name)
		case a.Prime:
			name = glyph.Bold(name)
		}
		row := []interface{}{marker, name, a.Nickname, a.SteamID64, color.New(g.Color).Sprint(a.DisplayStatus(now))}
		if pp.ShowID {
			row = append([]interface{}{y.Sprint(short(a.ID))}, row...)
		}
		tbl.AddRow(row...)
	}
	_, _ = fmt.Fprintln(color.Output, tbl)
	pp.NewLine()
}

// Account prints every field of one account.
func (pp *PrettyPrint) Account(a *account.Account) {
	bold := color.New(color.Bold)
	g := glyph.For(a.Status)

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.Wrap = true
	tbl.MaxColWidth = 60
	add := func(k, v string) {
		if v != "" {
			tbl.AddRow(bold.Sprint(k), v)
		}
	}
	add("ID", a.ID)
	add("Username", a.Username)
	add("Password", pp.secret(a.Password))
	add("Nickname", a.Nickname)
	add("SteamID64", a.SteamID64)
	add("Email", a.Email)
	add("Email password", pp.secret(a.EmailPassword))
	add("Recovery URL", a.EmailURL)
	if a.Prime {
		add("Prime", glyph.Prime.Paint()+" yes")
	}
	add("Status", g.Paint()+" "+a.DisplayStatus(pp.now()))
	if a.CooldownExpiry != nil {
		add("Cooldown ends", a.CooldownExpiry.String())
	}
	if a.VACBanned || a.GameBans > 0 {
		add("Bans", fmt.Sprintf("vac=%t game=%d, %d days ago", a.VACBanned, a.GameBans, a.DaysSinceLastBan))
	}
	add("Notes", a.Notes)
	tbl.RightAlign(0)

	_, _ = fmt.Fprintln(color.Output, tbl)
	pp.NewLine()
}

// Legend prints the glyph key.
func (pp *PrettyPrint) Legend() {
	bold := color.New(color.Bold)

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("Glyph"), bold.Sprint("Status"), bold.Sprint("Meaning"))
	for _, g := range glyph.Legend() {
		tbl.AddRow(g.Paint(), g.Key, g.Meaning)
	}
	tbl.RightAlign(0)

	_, _ = fmt.Fprintln(color.Output, tbl)
}

func (pp *PrettyPrint) secret(s string) string {
	if s == "" || pp.ShowSecrets {
		return s
	}
	return strings.Repeat("•", 8)
}

func short(id string) string {
	if len(id) <= shortID {
		return id
	}
	return id[:shortID]
}
