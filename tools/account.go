package tools

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/lexandro/codestudio-mcp/account"
	"github.com/lexandro/codestudio-mcp/metrics"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// RegisterArgs defines the input parameters for the studio_register tool.
type RegisterArgs struct {
	Email    string `json:"email" jsonschema:"Account email"`
	Username string `json:"username" jsonschema:"Display name"`
	Secret   string `json:"secret" jsonschema:"Password"`
}

// LoginArgs defines the input parameters for the studio_login tool.
type LoginArgs struct {
	Email  string `json:"email" jsonschema:"Account email"`
	Secret string `json:"secret" jsonschema:"Password"`
}

// LogoutArgs defines the input parameters for the studio_logout tool (none required).
type LogoutArgs struct{}

// AccountHandler serves register, login and logout.
type AccountHandler struct {
	Accounts *account.Service
	Logger   *slog.Logger
}

// HandleRegister processes a studio_register request.
func (h *AccountHandler) HandleRegister(ctx context.Context, req *mcp.CallToolRequest, args RegisterArgs) (*mcp.CallToolResult, any, error) {
	acct, err := h.Accounts.Register(args.Email, args.Username, args.Secret)
	metrics.RecordToolCall("studio_register", err == nil)
	switch {
	case errors.Is(err, account.ErrAccountExists), errors.Is(err, account.ErrValidation):
		h.Logger.Info("studio_register rejected", "error", err)
		return errorResult("%v", err), nil, nil
	case err != nil:
		h.Logger.Error("studio_register failed", "error", err)
		return errorResult("registration failed: %v", err), nil, nil
	}

	h.Logger.Info("studio_register", "account", acct.ID)
	return textResult(fmt.Sprintf("Registered and logged in as %s <%s>", acct.Username, acct.Email)), nil, nil
}

// HandleLogin processes a studio_login request.
func (h *AccountHandler) HandleLogin(ctx context.Context, req *mcp.CallToolRequest, args LoginArgs) (*mcp.CallToolResult, any, error) {
	acct, err := h.Accounts.Login(args.Email, args.Secret)
	metrics.RecordToolCall("studio_login", err == nil)
	switch {
	case errors.Is(err, account.ErrInvalidCredentials):
		h.Logger.Info("studio_login rejected")
		return errorResult("invalid credentials"), nil, nil
	case err != nil:
		h.Logger.Error("studio_login failed", "error", err)
		return errorResult("login failed: %v", err), nil, nil
	}

	h.Logger.Info("studio_login", "account", acct.ID)
	return textResult(fmt.Sprintf("Logged in as %s <%s>", acct.Username, acct.Email)), nil, nil
}

// HandleLogout processes a studio_logout request.
func (h *AccountHandler) HandleLogout(ctx context.Context, req *mcp.CallToolRequest, args LogoutArgs) (*mcp.CallToolResult, any, error) {
	err := h.Accounts.Logout()
	metrics.RecordToolCall("studio_logout", err == nil)
	if err != nil {
		h.Logger.Error("studio_logout failed", "error", err)
		return errorResult("logout failed: %v", err), nil, nil
	}

	h.Logger.Info("studio_logout")
	return textResult("Logged out"), nil, nil
}
