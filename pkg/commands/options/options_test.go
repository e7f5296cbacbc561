package options

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"tableflip.dev/roster/pkg/account"
	"tableflip.dev/roster/pkg/roster"
	"tableflip.dev/roster/pkg/steamapi"
)

func TestPatchOnlyHasChangedFlags(t *testing.T) {
	o := &AccountOptions{}
	cmd := &cobra.Command{Use: "edit"}
	AddAccountArgs(cmd, o)
	AddCredentialArgs(cmd, o)
	if err := cmd.ParseFlags([]string{"--nickname", "Ally", "--prime=false", "--notes="}); err != nil {
		t.Fatalf("ParseFlags: %v", err)
	}

	p := o.Patch(cmd)
	if p.Nickname == nil || *p.Nickname != "Ally" {
		t.Fatalf("expected nickname in patch, got %v", p.Nickname)
	}
	if p.Prime == nil || *p.Prime {
		t.Fatalf("expected prime=false in patch")
	}
	if p.Notes == nil || *p.Notes != "" {
		t.Fatalf("expected notes cleared in patch")
	}
	if p.SteamID64 != nil || p.Password != nil {
		t.Fatalf("unexpected fields in patch")
	}
}

func TestStatusOptionsApply(t *testing.T) {
	var p account.Patch
	o := &StatusOptions{Status: "vac", Cooldown: "2d3h"}
	if err := o.Apply(&p); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if p.Status != nil {
		t.Fatalf("cooldown should win over status")
	}
	if *p.CooldownDays != 2 || *p.CooldownHours != 3 {
		t.Fatalf("unexpected cooldown %d %d", *p.CooldownDays, *p.CooldownHours)
	}

	p = account.Patch{}
	o = &StatusOptions{Status: "vac_ban"}
	if err := o.Apply(&p); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if p.Status == nil || *p.Status != account.VacBan {
		t.Fatalf("expected vac_ban status")
	}

	if err := (&StatusOptions{Status: "cooldown"}).Apply(&p); err == nil {
		t.Fatalf("expected error for cooldown without duration")
	}
	if err := (&StatusOptions{Status: "banana"}).Apply(&p); err == nil {
		t.Fatalf("expected error for unknown status")
	}
}

func TestFilterOptionsParsed(t *testing.T) {
	o := &FilterOptions{Statuses: []string{"normal", "cooldown"}}
	got, err := o.Parsed()
	if err != nil {
		t.Fatalf("Parsed: %v", err)
	}
	if len(got) != 2 || got[0] != account.Normal || got[1] != account.Cooldown {
		t.Fatalf("unexpected statuses %v", got)
	}
	o.Statuses = []string{"nope"}
	if _, err := o.Parsed(); err == nil {
		t.Fatalf("expected error")
	}
}

func TestErrorCode(t *testing.T) {
	tests := map[string]struct {
		err  error
		want string
	}{
		"wrapped not found": {err: fmt.Errorf("%w: %q", roster.ErrNotFound, "zed"), want: "not_found"},
		"busy":              {err: roster.ErrBusy, want: "busy"},
		"api key":           {err: steamapi.ErrMissingAPIKey, want: "missing_api_key"},
		"validation":        {err: fmt.Errorf("add: %w", &account.ValidationError{}), want: "invalid"},
		"remote":            {err: &steamapi.RequestError{Err: errors.New("boom")}, want: "remote"},
		"other":             {err: errors.New("disk full"), want: ""},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			if got := ErrorCode(tc.err); got != tc.want {
				t.Fatalf("ErrorCode() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestHandleErrorJSON(t *testing.T) {
	var buf bytes.Buffer
	prev := color.Output
	color.Output = &buf
	t.Cleanup(func() { color.Output = prev })

	o := &OutputOptions{JSON: true}
	if err := o.HandleError(roster.ErrBusy); err != nil {
		t.Fatalf("expected the error to be swallowed, got %v", err)
	}
	got := strings.TrimSpace(buf.String())
	if !strings.Contains(got, `"code":"busy"`) || !strings.Contains(got, `"error":"roster: a refresh is already running"`) {
		t.Fatalf("unexpected envelope %s", got)
	}

	o.JSON = false
	if err := o.HandleError(roster.ErrBusy); !errors.Is(err, roster.ErrBusy) {
		t.Fatalf("expected the error back, got %v", err)
	}
}
