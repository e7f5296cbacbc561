package timeutil

import (
	"testing"
	"time"
)

func TestParseCooldownDaysAndHours(t *testing.T) {
	days, hours, err := ParseCooldown("3d12h")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if days != 3 || hours != 12 {
		t.Fatalf("expected 3d12h, got %dd%dh", days, hours)
	}
}

func TestParseCooldownCarriesHours(t *testing.T) {
	days, hours, err := ParseCooldown("1w30h")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if days != 8 || hours != 6 {
		t.Fatalf("expected 8d6h, got %dd%dh", days, hours)
	}
}

func TestParseCooldownBareNumberIsDays(t *testing.T) {
	days, hours, err := ParseCooldown("7")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if days != 7 || hours != 0 {
		t.Fatalf("expected 7d, got %dd%dh", days, hours)
	}
}

func TestParseCooldownInvalid(t *testing.T) {
	for _, in := range []string{"", "noop", "0d", "5m"} {
		if _, _, err := ParseCooldown(in); err == nil {
			t.Fatalf("expected error for %q", in)
		}
	}
}

func TestFormatRemaining(t *testing.T) {
	cases := map[time.Duration]string{
		0:                           "0m",
		25 * time.Hour:              "2d",
		90 * time.Minute:            "2h",
		10*time.Minute + time.Second: "11m",
	}
	for in, want := range cases {
		if got := FormatRemaining(in); got != want {
			t.Fatalf("FormatRemaining(%v) = %q, want %q", in, got, want)
		}
	}
}
