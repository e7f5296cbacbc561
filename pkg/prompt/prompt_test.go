package prompt

import (
	"bytes"
	"testing"
)

func TestParseBool(t *testing.T) {
	for _, in := range []string{"on", "Yes", "TRUE", " 1 ", "y"} {
		got, err := ParseBool(in)
		if err != nil || !got {
			t.Fatalf("ParseBool(%q) = %v, %v", in, got, err)
		}
	}
	for _, in := range []string{"off", "No", "false", "0"} {
		got, err := ParseBool(in)
		if err != nil || got {
			t.Fatalf("ParseBool(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := ParseBool("maybe"); err == nil {
		t.Fatalf("expected error for maybe")
	}
}

func TestNopCloserKeepsWriting(t *testing.T) {
	var buf bytes.Buffer
	w := NopCloser(&buf)
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if _, err := w.Write([]byte("still open")); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if buf.String() != "still open" {
		t.Fatalf("unexpected buffer %q", buf.String())
	}
}
