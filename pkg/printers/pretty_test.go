package printers

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/roster/pkg/account"
)

func capture(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prevOut, prevNoColor := color.Output, color.NoColor
	color.Output = &buf
	color.NoColor = true
	t.Cleanup(func() {
		color.Output = prevOut
		color.NoColor = prevNoColor
	})
	return &buf
}

func TestRosterShowsCountdownAndShortID(t *testing.T) {
	buf := capture(t)
	now := time.Date(2025, time.March, 10, 12, 0, 0, 0, time.UTC)

	a := account.New("alice", "secret")
	a.ID = "0123456789abcdef"
	if err := a.StartCooldown(now, 2, 0); err != nil {
		t.Fatal(err)
	}
	pp := &PrettyPrint{ShowID: true, Now: now}
	pp.Roster(a)

	out := buf.String()
	for _, want := range []string{"01234567", "alice", "cooldown (2d left)"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
	if strings.Contains(out, "0123456789abcdef") {
		t.Fatalf("expected a shortened id:\n%s", out)
	}
}

func TestAccountMasksSecrets(t *testing.T) {
	buf := capture(t)
	a := account.New("alice", "hunter2")
	(&PrettyPrint{}).Account(a)
	if strings.Contains(buf.String(), "hunter2") {
		t.Fatalf("password leaked:\n%s", buf.String())
	}

	buf.Reset()
	(&PrettyPrint{ShowSecrets: true}).Account(a)
	if !strings.Contains(buf.String(), "hunter2") {
		t.Fatalf("expected password when secrets are shown:\n%s", buf.String())
	}
}

func TestEmptyRoster(t *testing.T) {
	buf := capture(t)
	(&PrettyPrint{}).Roster()
	if !strings.Contains(buf.String(), "none") {
		t.Fatalf("expected none marker, got %q", buf.String())
	}
}
