package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog"

	"tableflip.dev/roster/pkg/roster"
)

// Transport selects the mechanism used to expose the MCP server.
type Transport string

const (
	// TransportHTTP serves MCP via the streamable HTTP transport.
	TransportHTTP Transport = "http"
	// TransportStdio serves MCP over stdio.
	TransportStdio Transport = "stdio"
)

const (
	defaultListenAddr = "127.0.0.1:8080"
	healthPath        = "/healthz"
	shutdownGrace     = 5 * time.Second
)

// Runner coordinates MCP server startup.
type Runner struct {
	Roster  *roster.Roster
	Name    string
	Version string
	Log     zerolog.Logger

	Transport        Transport
	HTTPListenAddr   string
	HTTPEndpointPath string
	OnHTTPListening  func(net.Addr)
	HTTPServerCert   string
	HTTPServerKey    string
}

// ParseTransport accepts "http" or "stdio".
func ParseTransport(raw string) (Transport, error) {
	switch t := Transport(strings.ToLower(strings.TrimSpace(raw))); t {
	case TransportHTTP, TransportStdio:
		return t, nil
	case "":
		return TransportHTTP, nil
	default:
		return "", fmt.Errorf("unsupported transport %q (expected http or stdio)", raw)
	}
}

// EndpointPath cleans a user supplied endpoint path, defaulting to /mcp.
func EndpointPath(raw string) string {
	path := strings.TrimSpace(raw)
	if path == "" {
		return "/mcp"
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return path
}

// Do executes the runner.
func (r Runner) Do(ctx context.Context) error {
	if r.Roster == nil {
		return errors.New("mcp runner requires a roster")
	}
	name := r.Name
	if name == "" {
		name = "roster"
	}
	version := r.Version
	if version == "" {
		version = "dev"
	}

	srv := server.NewMCPServer(
		fmt.Sprintf("%s MCP", name),
		version,
		server.WithResourceCapabilities(false, false),
		server.WithToolCapabilities(false),
		server.WithInstructions("Manage a roster of Steam accounts: list, edit, cooldowns and ban status checks. Passwords are never returned."),
		server.WithResourceRecovery(),
		server.WithRecovery(),
	)

	svc := NewService(r.Roster)
	registerResources(srv, svc)
	registerTools(srv, svc)

	switch t := r.Transport; t {
	case "", TransportHTTP:
		return r.serveHTTP(ctx, srv)
	case TransportStdio:
		r.Log.Info().Msg("serving MCP on stdio")
		return server.ServeStdio(srv)
	default:
		return fmt.Errorf("unknown MCP transport %q", t)
	}
}

func (r Runner) serveHTTP(ctx context.Context, srv *server.MCPServer) error {
	tls := r.HTTPServerCert != "" || r.HTTPServerKey != ""
	if tls && (r.HTTPServerCert == "" || r.HTTPServerKey == "") {
		return errors.New("both http tls cert and key must be provided")
	}

	path := EndpointPath(r.HTTPEndpointPath)
	listenAddr := r.HTTPListenAddr
	if listenAddr == "" {
		listenAddr = defaultListenAddr
	}

	mux := http.NewServeMux()
	mux.Handle(path, server.NewStreamableHTTPServer(srv))
	mux.Handle(healthPath, healthHandler(r.Roster))
	httpSrv := &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ln, err := net.Listen("tcp", listenAddr)
	if err != nil {
		return err
	}
	r.Log.Info().Str("addr", ln.Addr().String()).Str("path", path).Bool("tls", tls).Msg("serving MCP over HTTP")
	if r.OnHTTPListening != nil {
		r.OnHTTPListening(ln.Addr())
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			r.Log.Warn().Err(err).Msg("MCP shutdown")
		}
	}()

	if tls {
		err = httpSrv.ServeTLS(ln, r.HTTPServerCert, r.HTTPServerKey)
	} else {
		err = httpSrv.Serve(ln)
	}
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

type health struct {
	Accounts int  `json:"accounts"`
	Busy     bool `json:"busy"`
}

// healthHandler answers GET with the roster size and whether a refresh is
// running.
func healthHandler(r *roster.Roster) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		if req.Method != http.MethodGet {
			w.Header().Set("Allow", http.MethodGet)
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(health{Accounts: r.Len(), Busy: r.Busy()})
	})
}
