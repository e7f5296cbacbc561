package mcp

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestParseTransport(t *testing.T) {
	for raw, want := range map[string]Transport{"": TransportHTTP, "HTTP": TransportHTTP, " stdio ": TransportStdio} {
		got, err := ParseTransport(raw)
		if err != nil || got != want {
			t.Fatalf("ParseTransport(%q) = %q, %v", raw, got, err)
		}
	}
	if _, err := ParseTransport("carrier-pigeon"); err == nil {
		t.Fatalf("expected error for unknown transport")
	}
}

func TestEndpointPath(t *testing.T) {
	for raw, want := range map[string]string{"": "/mcp", "  ": "/mcp", "rpc": "/rpc", "/x/y": "/x/y"} {
		if got := EndpointPath(raw); got != want {
			t.Fatalf("EndpointPath(%q) = %q, want %q", raw, got, want)
		}
	}
}

func TestHealthHandler(t *testing.T) {
	svc, _ := newService(t, stubSource{})
	h := healthHandler(svc.Roster)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, healthPath, nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", rec.Code)
	}
	if got := strings.TrimSpace(rec.Body.String()); got != `{"accounts":0,"busy":false}` {
		t.Fatalf("unexpected body %s", got)
	}

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, healthPath, nil))
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", rec.Code)
	}
}
