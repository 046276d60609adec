package mcpserver

import (
	"errors"
	"fmt"

	apppublic "chess-relay/internal/app/public"

	"github.com/mark3labs/mcp-go/mcp"
)

func toolResult(data any) *mcp.CallToolResult {
	return mcp.NewToolResultStructuredOnly(data)
}

func toolError(code, message string) *mcp.CallToolResult {
	result := mcp.NewToolResultStructured(
		map[string]any{
			"error": map[string]any{
				"code":    code,
				"message": message,
			},
		},
		fmt.Sprintf("%s: %s", code, message),
	)
	result.IsError = true
	return result
}

func mapDomainError(err error) *mcp.CallToolResult {
	switch {
	case err == nil:
		return toolError("internal_error", "unknown error")
	case errors.Is(err, apppublic.ErrInvalidRequest):
		return toolError("invalid_request", err.Error())
	case errors.Is(err, apppublic.ErrGameNotFound):
		return toolError("not_found", err.Error())
	case errors.Is(err, apppublic.ErrJournalDisabled):
		return toolError("journal_disabled", "move history requires POSTGRES_DSN")
	default:
		return toolError("internal_error", err.Error())
	}
}
