package teaui

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/muesli/reflow/ansi"

	"tableflip.dev/roster/pkg/account"
	"tableflip.dev/roster/pkg/clock"
	"tableflip.dev/roster/pkg/roster"
	"tableflip.dev/roster/pkg/store"
)

var epoch = time.Date(2025, time.March, 10, 12, 0, 0, 0, time.UTC)

func stripANSI(s string) string {
	var b strings.Builder
	ansiSeq := false
	for _, r := range s {
		if r == ansi.Marker {
			ansiSeq = true
			continue
		}
		if ansiSeq {
			if ansi.IsTerminator(r) {
				ansiSeq = false
			}
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func newTestRoster(t *testing.T, accounts ...*account.Account) (*roster.Roster, *clock.Mock) {
	t.Helper()
	p, err := store.Load(&store.FileConfig{Path: t.TempDir()})
	if err != nil {
		t.Fatalf("store.Load: %v", err)
	}
	clk := clock.NewMock(epoch)
	r := roster.New(roster.Options{Persistence: p, Clock: clk})
	ctx := context.Background()
	if err := r.Open(ctx); err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := r.SetNotice(ctx, false); err != nil {
		t.Fatalf("SetNotice: %v", err)
	}
	if len(accounts) > 0 {
		if _, err := r.BulkAdd(ctx, accounts); err != nil {
			t.Fatalf("BulkAdd: %v", err)
		}
	}
	return r, clk
}

func sized(m Model) Model {
	next, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 30})
	return next.(Model)
}

func press(t *testing.T, m Model, keys ...tea.KeyPressMsg) Model {
	t.Helper()
	for _, k := range keys {
		next, _ := m.Update(k)
		m = next.(Model)
	}
	return m
}

func key(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Text: string(r), Code: r}
}

func TestViewListsAccountsAndMasksSecrets(t *testing.T) {
	alice := account.New("alice", "hunter2")
	alice.Nickname = "Ally"
	alice.Prime = true
	bob := account.New("bob", "swordfish")
	r, _ := newTestRoster(t, bob, alice)

	m := sized(New(r, nil))
	view := stripANSI(m.View())

	if !strings.Contains(view, "★ ? Ally") {
		t.Fatalf("expected prime account with glyph; view=%q", view)
	}
	if strings.Index(view, "Ally") > strings.Index(view, "bob") {
		t.Fatalf("expected prime account listed first; view=%q", view)
	}
	if strings.Contains(view, "hunter2") {
		t.Fatalf("password shown before reveal; view=%q", view)
	}
	if !strings.Contains(view, "[NORMAL]") || !strings.Contains(view, "2 accounts") {
		t.Fatalf("expected footer with mode and summary; view=%q", view)
	}

	m = press(t, m, key('s'))
	if view := stripANSI(m.View()); !strings.Contains(view, "hunter2") {
		t.Fatalf("expected password after reveal; view=%q", view)
	}
}

func TestEmptyRosterShowsHint(t *testing.T) {
	r, _ := newTestRoster(t)
	m := sized(New(r, nil))
	if view := stripANSI(m.View()); !strings.Contains(view, "No accounts yet") {
		t.Fatalf("expected empty hint; view=%q", view)
	}
}

func TestDoubleDDeletesSelected(t *testing.T) {
	r, _ := newTestRoster(t, account.New("alice", "x"), account.New("bob", "y"))
	m := sized(New(r, nil))

	m = press(t, m, key('d'))
	if r.Len() != 2 {
		t.Fatalf("single d must not delete")
	}
	if !strings.Contains(m.status, "Press d again") {
		t.Fatalf("expected confirmation hint, got %q", m.status)
	}

	m = press(t, m, key('d'))
	if r.Len() != 1 {
		t.Fatalf("expected one account left, got %d", r.Len())
	}
	if len(m.list.Items()) != 1 {
		t.Fatalf("expected list to shrink, got %d items", len(m.list.Items()))
	}
}

func TestDDWindowResetsOnOtherKey(t *testing.T) {
	r, _ := newTestRoster(t, account.New("alice", "x"))
	m := sized(New(r, nil))

	m = press(t, m, key('d'), key('j'), key('d'))
	if r.Len() != 1 {
		t.Fatalf("interrupted dd must not delete")
	}
}

func TestCooldownCommandAndTick(t *testing.T) {
	r, clk := newTestRoster(t, account.New("alice", "x"))
	m := sized(New(r, nil))

	var cmds []tea.Cmd
	m.runCommand("cooldown 1d2h", &cmds)
	if len(cmds) != 0 {
		t.Fatalf("unexpected error commands")
	}
	a, err := r.Find("alice")
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if a.Status != account.Cooldown {
		t.Fatalf("expected cooldown, got %s", a.Status)
	}
	if view := stripANSI(m.View()); !strings.Contains(view, "cooldown (2d left)") {
		t.Fatalf("expected countdown; view=%q", view)
	}

	clk.Advance(25 * time.Hour)
	next, _ := m.Update(tickMsg(clk.Now()))
	m = next.(Model)
	if view := stripANSI(m.View()); !strings.Contains(view, "cooldown (1h left)") {
		t.Fatalf("expected countdown after tick; view=%q", view)
	}
}

func TestCommandErrorsBecomeStatus(t *testing.T) {
	r, _ := newTestRoster(t, account.New("alice", "x"))
	m := sized(New(r, nil))

	var cmds []tea.Cmd
	m.runCommand("cooldown soon", &cmds)
	if len(cmds) != 1 {
		t.Fatalf("expected one error command, got %d", len(cmds))
	}
	next, _ := m.Update(cmds[0]())
	m = next.(Model)
	if !strings.HasPrefix(m.status, "ERR: ") {
		t.Fatalf("expected error status, got %q", m.status)
	}

	m.runCommand("status cooldown", &cmds)
	if !strings.Contains(m.status, ":cooldown") {
		t.Fatalf("expected cooldown hint, got %q", m.status)
	}

	m.runCommand("launch", &cmds)
	if m.status != "Unknown command: launch" {
		t.Fatalf("unexpected status %q", m.status)
	}
}

func TestAddCommandSelectsNewAccount(t *testing.T) {
	r, _ := newTestRoster(t, account.New("alice", "x"))
	m := sized(New(r, nil))

	var cmds []tea.Cmd
	m.runCommand("add zed pw Zed Zero", &cmds)
	if r.Len() != 2 {
		t.Fatalf("expected two accounts, got %d", r.Len())
	}
	if a := m.current(); a == nil || a.Username != "zed" || a.Nickname != "Zed Zero" {
		t.Fatalf("expected new account selected, got %+v", a)
	}

	m.runCommand("add lonely", &cmds)
	if !strings.HasPrefix(m.status, "usage:") {
		t.Fatalf("expected usage hint, got %q", m.status)
	}
}

func TestImportCommandReadsFile(t *testing.T) {
	r, _ := newTestRoster(t)
	m := sized(New(r, nil))

	path := filepath.Join(t.TempDir(), "accounts.txt")
	if err := os.WriteFile(path, []byte("alice----one\nnope\nbob----two\n"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	var cmds []tea.Cmd
	m.runCommand("import "+path, &cmds)
	if r.Len() != 2 {
		t.Fatalf("expected two imported accounts, got %d", r.Len())
	}
	if m.status != "Imported 2 accounts, skipped 1 lines" {
		t.Fatalf("unexpected status %q", m.status)
	}
}

type fakeLauncher struct {
	got *account.Account
	err error
}

func (f *fakeLauncher) Login(_ context.Context, a *account.Account) error {
	f.got = a
	return f.err
}

func TestEnterLaunchesSelected(t *testing.T) {
	r, _ := newTestRoster(t, account.New("alice", "x"))
	l := &fakeLauncher{}
	m := sized(New(r, l))

	next, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	m = next.(Model)
	if cmd == nil {
		t.Fatalf("expected login command")
	}
	msg := m.loginCmd(m.current())()
	if l.got == nil || l.got.Username != "alice" {
		t.Fatalf("expected launcher to receive alice, got %+v", l.got)
	}
	next, _ = m.Update(msg)
	if got := next.(Model).status; got != "Steam launched as alice" {
		t.Fatalf("unexpected status %q", got)
	}

	l.err = errors.New("steam not found")
	next, _ = m.Update(m.loginCmd(m.current())())
	if got := next.(Model).status; got != "ERR: steam not found" {
		t.Fatalf("unexpected status %q", got)
	}
}

func TestRefreshWithoutAPIKeyReportsError(t *testing.T) {
	a := account.New("alice", "x")
	a.SteamID64 = "76561198000000001"
	r, _ := newTestRoster(t, a)
	m := sized(New(r, nil))

	cmd := m.refreshCmd(false)
	if cmd == nil {
		t.Fatalf("expected refresh command")
	}
	next, _ := m.Update(cmd())
	if got := next.(Model).status; !strings.HasPrefix(got, "ERR: ") {
		t.Fatalf("expected error status, got %q", got)
	}
}

func TestChangeMessageUpdatesStatus(t *testing.T) {
	r, _ := newTestRoster(t, account.New("alice", "x"))
	m := sized(New(r, nil))

	next, _ := m.Update(changeMsg{change: roster.Change{Kind: roster.Swept, Message: "cooldown ended for alice"}})
	if got := next.(Model).status; got != "cooldown ended for alice" {
		t.Fatalf("unexpected status %q", got)
	}
}
