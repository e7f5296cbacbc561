package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"tableflip.dev/roster/pkg/account"
)

func registerTools(srv *server.MCPServer, svc *Service) {
	registerListAccountsTool(srv, svc)
	registerGetAccountTool(srv, svc)
	registerAddAccountTool(srv, svc)
	registerUpdateAccountTool(srv, svc)
	registerStartCooldownTool(srv, svc)
	registerDeleteAccountTool(srv, svc)
	registerRefreshStatusTool(srv, svc)
	registerRefreshNicknamesTool(srv, svc)
	registerSweepTool(srv, svc)
	registerImportTool(srv, svc)
}

func statusNames() []string {
	out := make([]string, 0, len(account.AllStatuses()))
	for _, s := range account.AllStatuses() {
		out = append(out, s.String())
	}
	return out
}

func registerListAccountsTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"list_accounts",
		mcp.WithDescription("List roster accounts in display order. Passwords are never returned."),
		mcp.WithString("status",
			mcp.Description("Only return accounts with this status."),
			mcp.Enum(statusNames()...),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		status := request.GetString("status", "")
		accounts, err := svc.ListAccounts(ctx, status)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{
			"accounts": accounts,
			"count":    len(accounts),
		})
	})
}

func registerGetAccountTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"get_account",
		mcp.WithDescription("Fetch one account by id, id prefix or username."),
		mcp.WithString("ref",
			mcp.Required(),
			mcp.Description("Account id, unique id prefix or username."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		ref, err := request.RequireString("ref")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		dto, err := svc.Account(ctx, ref)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerAddAccountTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"add_account",
		mcp.WithDescription("Add a new account to the roster."),
		mcp.WithString("username", mcp.Required(), mcp.Description("Steam login name.")),
		mcp.WithString("password", mcp.Required(), mcp.Description("Steam password.")),
		mcp.WithString("nickname", mcp.Description("Display name.")),
		mcp.WithString("steam_id", mcp.Description("SteamID64, digits only.")),
		mcp.WithString("email", mcp.Description("Email address bound to the account.")),
		mcp.WithString("notes", mcp.Description("Free-form notes.")),
		mcp.WithBoolean("prime", mcp.Description("Whether the account has prime status.")),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args struct {
			Username string `json:"username"`
			Password string `json:"password"`
			Nickname string `json:"nickname"`
			SteamID  string `json:"steam_id"`
			Email    string `json:"email"`
			Notes    string `json:"notes"`
			Prime    bool   `json:"prime"`
		}
		if err := request.BindArguments(&args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}

		dto, err := svc.AddAccount(ctx, AddAccountOptions{
			Username:  args.Username,
			Password:  args.Password,
			Nickname:  args.Nickname,
			SteamID64: args.SteamID,
			Email:     args.Email,
			Notes:     args.Notes,
			Prime:     args.Prime,
		})
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerUpdateAccountTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"update_account",
		mcp.WithDescription("Change fields of an account. Only the given fields are changed."),
		mcp.WithString("ref", mcp.Required(), mcp.Description("Account id, unique id prefix or username.")),
		mcp.WithString("nickname", mcp.Description("New display name.")),
		mcp.WithString("steam_id", mcp.Description("New SteamID64.")),
		mcp.WithString("email", mcp.Description("New email address.")),
		mcp.WithString("notes", mcp.Description("New notes.")),
		mcp.WithBoolean("prime", mcp.Description("Prime status.")),
		mcp.WithString("status",
			mcp.Description("New status. Use start_cooldown for cooldowns."),
			mcp.Enum("unknown", "normal", "game_ban", "vac_ban"),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		ref, err := request.RequireString("ref")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		args := request.GetArguments()
		var p account.Patch
		str := func(name string) *string {
			if _, ok := args[name]; !ok {
				return nil
			}
			v := request.GetString(name, "")
			return &v
		}
		p.Nickname = str("nickname")
		p.SteamID64 = str("steam_id")
		p.Email = str("email")
		p.Notes = str("notes")
		if _, ok := args["prime"]; ok {
			v := request.GetBool("prime", false)
			p.Prime = &v
		}
		if raw := str("status"); raw != nil {
			st, ok := account.ParseStatus(*raw)
			if !ok {
				return mcp.NewToolResultError(fmt.Sprintf("unknown status %q", *raw)), nil
			}
			p.Status = &st
		}

		dto, err := svc.UpdateAccount(ctx, ref, p)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerStartCooldownTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"start_cooldown",
		mcp.WithDescription("Put an account in cooldown for a fixed duration."),
		mcp.WithString("ref", mcp.Required(), mcp.Description("Account id, unique id prefix or username.")),
		mcp.WithString("duration", mcp.Required(), mcp.Description("Length such as 7d, 3d12h or 20h.")),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		ref, err := request.RequireString("ref")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		duration, err := request.RequireString("duration")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		dto, err := svc.StartCooldown(ctx, ref, duration)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerDeleteAccountTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"delete_account",
		mcp.WithDescription("Remove an account from the roster."),
		mcp.WithString("ref", mcp.Required(), mcp.Description("Account id, unique id prefix or username.")),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		ref, err := request.RequireString("ref")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		dto, err := svc.DeleteAccount(ctx, ref)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{"deleted": dto})
	})
}

func registerRefreshStatusTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"refresh_status",
		mcp.WithDescription("Check ban status with the Steam Web API. Accounts need a SteamID64."),
		mcp.WithString("refs", mcp.Description("Comma separated account refs. Empty means all accounts.")),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		accounts, msg, err := svc.RefreshStatus(ctx, splitRefs(request.GetString("refs", "")))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{"message": msg, "accounts": accounts})
	})
}

func registerRefreshNicknamesTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"refresh_nicknames",
		mcp.WithDescription("Replace nicknames with Steam persona names."),
		mcp.WithString("refs", mcp.Description("Comma separated account refs. Empty means all accounts.")),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		accounts, msg, err := svc.RefreshNicknames(ctx, splitRefs(request.GetString("refs", "")))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{"message": msg, "accounts": accounts})
	})
}

func registerSweepTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"sweep_cooldowns",
		mcp.WithDescription("Return every account whose cooldown has ended to normal."),
	)

	srv.AddTool(tool, func(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		flipped, err := svc.Sweep(ctx)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{"ended": flipped, "count": len(flipped)})
	})
}

func registerImportTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"import_accounts",
		mcp.WithDescription("Import accounts from text, one per line, such as user----pass----nickname."),
		mcp.WithString("text", mcp.Required(), mcp.Description("Lines to import.")),
		mcp.WithString("policy",
			mcp.Description("Where fields after the password go."),
			mcp.Enum("positional", "notes"),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		text, err := request.RequireString("text")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		n, skipped, err := svc.ImportAccounts(ctx, text, request.GetString("policy", ""))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{"imported": n, "skipped": skipped})
	})
}

func splitRefs(raw string) []string {
	var out []string
	for _, r := range strings.Split(raw, ",") {
		if r = strings.TrimSpace(r); r != "" {
			out = append(out, r)
		}
	}
	return out
}

func toJSONResult(data any) (*mcp.CallToolResult, error) {
	b, err := json.Marshal(data)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("marshal error: %v", err)), nil
	}
	return mcp.NewToolResultText(string(b)), nil
}
