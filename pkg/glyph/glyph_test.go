package glyph

import (
	"testing"

	"tableflip.dev/roster/pkg/account"
)

func TestLegendCoversEveryStatus(t *testing.T) {
	legend := Legend()
	if len(legend) != len(account.AllStatuses())+1 {
		t.Fatalf("expected one glyph per status plus prime, got %d", len(legend))
	}
	seen := map[string]bool{}
	for _, g := range legend {
		if g.Symbol == "" || g.Meaning == "" {
			t.Fatalf("glyph %q is missing a symbol or meaning", g.Key)
		}
		if seen[g.Symbol] {
			t.Fatalf("symbol %q used twice", g.Symbol)
		}
		seen[g.Symbol] = true
	}
	if legend[0].Key != account.Unknown.String() {
		t.Fatalf("expected legend to start with unknown, got %q", legend[0].Key)
	}
}

func TestForFallsBackToUnknown(t *testing.T) {
	if got := For(account.Status(99)); got.Key != "unknown" {
		t.Fatalf("expected unknown glyph, got %q", got.Key)
	}
}
