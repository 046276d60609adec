package mcpserver

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
)

const (
	defaultMovesLimit = 200
	maxMovesLimit     = 500
)

func (s *Server) registerTools() {
	s.mcpServer.AddTool(
		mcp.NewTool(
			"get_board_state",
			mcp.WithDescription("Current position (FEN), side to move, outcome and seat occupancy"),
		),
		s.handleGetBoardState,
	)

	s.mcpServer.AddTool(
		mcp.NewTool(
			"list_moves",
			mcp.WithDescription("Accepted moves of a game from the journal, oldest first"),
			mcp.WithString("game_id", mcp.Description("Game id, defaults to the current game")),
			mcp.WithNumber("after_ply", mcp.Description("Only moves after this ply, default 0")),
			mcp.WithNumber("limit", mcp.Description("Page size, default 200, max 500")),
		),
		s.handleListMoves,
	)
}

func (s *Server) handleGetBoardState(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return toolResult(s.publicSvc.State()), nil
}

func (s *Server) handleListMoves(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	gameID := request.GetString("game_id", "")
	if gameID == "" {
		gameID = s.publicSvc.CurrentGameID()
	}
	afterPly := request.GetInt("after_ply", 0)
	if afterPly < 0 {
		return toolError("invalid_request", "after_ply must be >= 0"), nil
	}
	limit := request.GetInt("limit", defaultMovesLimit)
	if limit <= 0 {
		limit = defaultMovesLimit
	}
	if limit > maxMovesLimit {
		limit = maxMovesLimit
	}

	resp, err := s.publicSvc.GameMoves(ctx, gameID, afterPly, limit)
	if err != nil {
		return mapDomainError(err), nil
	}
	return toolResult(resp), nil
}
