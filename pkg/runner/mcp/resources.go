package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"tableflip.dev/roster/pkg/glyph"
)

func registerResources(srv *server.MCPServer, svc *Service) {
	registerAccountsResource(srv, svc)
	registerAccountTemplate(srv, svc)
	registerLegendResource(srv)
}

func registerAccountsResource(srv *server.MCPServer, svc *Service) {
	resource := mcp.NewResource(
		"roster://accounts",
		"Accounts",
		mcp.WithResourceDescription("Every roster account in display order, without passwords."),
		mcp.WithMIMEType("application/json"),
	)

	srv.AddResource(resource, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		accounts, err := svc.ListAccounts(ctx, "")
		if err != nil {
			return nil, err
		}
		payload := map[string]any{
			"accounts": accounts,
			"count":    len(accounts),
		}
		return encodeResourceJSON(request.Params.URI, payload)
	})
}

func registerAccountTemplate(srv *server.MCPServer, svc *Service) {
	template := mcp.NewResourceTemplate(
		"roster://accounts/{ref}",
		"Account Details",
		mcp.WithTemplateDescription("One account by id, id prefix or username."),
		mcp.WithTemplateMIMEType("application/json"),
	)

	srv.AddResourceTemplate(template, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		ref := argument(request.Params.Arguments["ref"])
		if ref == "" {
			return nil, fmt.Errorf("account ref is required")
		}
		dto, err := svc.Account(ctx, ref)
		if err != nil {
			return nil, err
		}
		return encodeResourceJSON(request.Params.URI, map[string]any{"account": dto})
	})
}

func registerLegendResource(srv *server.MCPServer) {
	resource := mcp.NewResource(
		"roster://legend",
		"Status Legend",
		mcp.WithResourceDescription("What each account status and glyph means."),
		mcp.WithMIMEType("application/json"),
	)

	srv.AddResource(resource, func(_ context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		type row struct {
			Status  string `json:"status"`
			Symbol  string `json:"symbol"`
			Meaning string `json:"meaning"`
		}
		rows := make([]row, 0)
		for _, g := range glyph.Legend() {
			rows = append(rows, row{Status: g.Key, Symbol: g.Symbol, Meaning: g.Meaning})
		}
		return encodeResourceJSON(request.Params.URI, map[string]any{"legend": rows})
	})
}

// argument unwraps template variables, which arrive as a string or a
// one-element list depending on the server version.
func argument(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case []string:
		if len(t) > 0 {
			return t[0]
		}
	case []any:
		if len(t) > 0 {
			s, _ := t[0].(string)
			return s
		}
	}
	return ""
}

func encodeResourceJSON(uri string, payload any) ([]mcp.ResourceContents, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
