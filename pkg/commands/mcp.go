package commands

import (
	"fmt"
	"net"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/roster/pkg/runner/mcp"
)

func addMCP(topLevel *cobra.Command) {
	var (
		transport   string
		httpHost    string
		httpPort    int
		httpPath    string
		httpTLSCert string
		httpTLSKey  string
	)

	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "start the Model Context Protocol server",
		Long: `Launch an MCP server that lists, edits and refreshes accounts in the roster.
Passwords are never returned by the server.`,
		Example: `
roster mcp
roster mcp --transport stdio
roster mcp --http-port 0
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			t, err := mcp.ParseTransport(transport)
			if err != nil {
				return err
			}

			s, err := open(cmd.Context(), openOptions{quiet: true})
			if err != nil {
				return err
			}

			path := mcp.EndpointPath(httpPath)
			runner := mcp.Runner{
				Roster:           s.Roster,
				Name:             "roster",
				Version:          version,
				Log:              s.Log,
				Transport:        t,
				HTTPEndpointPath: path,
				HTTPServerCert:   strings.TrimSpace(httpTLSCert),
				HTTPServerKey:    strings.TrimSpace(httpTLSKey),
			}

			if t == mcp.TransportHTTP {
				host := strings.TrimSpace(httpHost)
				if host == "" {
					host = "127.0.0.1"
				}
				if httpPort < 0 || httpPort > 65535 {
					return fmt.Errorf("invalid http-port %d", httpPort)
				}
				addr := net.JoinHostPort(host, strconv.Itoa(httpPort))
				runner.HTTPListenAddr = addr
				runner.OnHTTPListening = func(a net.Addr) {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "MCP HTTP server listening on %s\n",
						listenURL(a, host, addr, path, runner.HTTPServerCert != ""))
				}
			}

			return runner.Do(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&transport, "transport", string(mcp.TransportHTTP), "transport to use: http or stdio")
	cmd.Flags().StringVar(&httpHost, "http-host", "127.0.0.1", "host/interface for HTTP transport")
	cmd.Flags().IntVar(&httpPort, "http-port", 8080, "port for HTTP transport (use 0 for random)")
	cmd.Flags().StringVar(&httpPath, "http-path", "/mcp", "HTTP endpoint path")
	cmd.Flags().StringVar(&httpTLSCert, "http-tls-cert", "", "TLS certificate file for HTTPS")
	cmd.Flags().StringVar(&httpTLSKey, "http-tls-key", "", "TLS private key file for HTTPS")

	topLevel.AddCommand(cmd)
}

// listenURL renders the address a client should dial, filling in the port
// picked by the kernel when --http-port is 0.
func listenURL(a net.Addr, host, fallback, path string, tls bool) string {
	tcpAddr, ok := a.(*net.TCPAddr)
	if !ok {
		return fallback + path
	}

	displayHost := host
	if displayHost == "0.0.0.0" || displayHost == "::" {
		if tcpAddr.IP != nil && !tcpAddr.IP.IsUnspecified() {
			displayHost = tcpAddr.IP.String()
		} else {
			displayHost = "127.0.0.1"
		}
	}

	scheme := "http"
	if tls {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s%s", scheme, net.JoinHostPort(displayHost, strconv.Itoa(tcpAddr.Port)), path)
}
