package mcpserver

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"sort"
	"testing"

	apppublic "chess-relay/internal/app/public"
	"chess-relay/internal/relay"
	"chess-relay/internal/rules"
	"chess-relay/internal/store"

	"github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/mcp-go/client/transport"
	"github.com/mark3labs/mcp-go/mcp"
)

type memHistory struct {
	games map[string]store.Game
	moves []store.MoveRecord
}

func (m *memHistory) GetGame(_ context.Context, id string) (store.Game, error) {
	g, ok := m.games[id]
	if !ok {
		return store.Game{}, store.ErrNotFound
	}
	return g, nil
}

func (m *memHistory) ListMoves(_ context.Context, gameID string, afterPly, limit int) ([]store.MoveRecord, error) {
	out := []store.MoveRecord{}
	for _, mv := range m.moves {
		if mv.GameID == gameID && mv.Ply > afterPly && len(out) < limit {
			out = append(out, mv)
		}
	}
	return out, nil
}

type nopPeer struct{ id relay.ConnID }

func (p nopPeer) ID() relay.ConnID { return p.id }
func (p nopPeer) Send(any) error   { return nil }

func newTestRelay(t *testing.T) *relay.Relay {
	t.Helper()
	eng, err := rules.NewChess("")
	if err != nil {
		t.Fatalf("new chess: %v", err)
	}
	return relay.New(eng, relay.Options{})
}

func TestMCPServerBoardStateAndMoves(t *testing.T) {
	rl := newTestRelay(t)
	rl.Connect(nopPeer{id: "a"})
	rl.Connect(nopPeer{id: "b"})
	if err := rl.SubmitMove("a", rules.MoveInput{From: "d2", To: "d4"}); err != nil {
		t.Fatalf("submit: %v", err)
	}
	hist := &memHistory{
		games: map[string]store.Game{rl.GameID(): {ID: rl.GameID(), StartPosition: "start"}},
		moves: []store.MoveRecord{{GameID: rl.GameID(), Ply: 1, Side: "w", From: "d2", To: "d4", SAN: "d4"}},
	}
	srv := New(apppublic.NewService(rl, hist))
	httpSrv := httptest.NewServer(srv.Handler())
	defer httpSrv.Close()

	c, closeClient := newMCPClient(t, httpSrv.URL+"/mcp")
	defer closeClient()

	assertToolNames(t, mustListTools(t, c), "get_board_state", "list_moves")

	state := mustCallTool(t, c, "get_board_state", map[string]any{})
	if state.IsError {
		t.Fatalf("get_board_state error: %v", state.StructuredContent)
	}
	payload := mapFromStructured(t, state)
	if asString(payload["turn"]) != "b" || asString(payload["game_id"]) != rl.GameID() {
		t.Fatalf("unexpected state payload: %v", payload)
	}
	if payload["white_seated"] != true || payload["black_seated"] != true {
		t.Fatalf("expected both seats occupied: %v", payload)
	}

	moves := mustCallTool(t, c, "list_moves", map[string]any{})
	if moves.IsError {
		t.Fatalf("list_moves error: %v", moves.StructuredContent)
	}
	mp := mapFromStructured(t, moves)
	items, _ := mp["items"].([]any)
	if len(items) != 1 {
		t.Fatalf("expected one move, got %v", mp)
	}
	first, _ := items[0].(map[string]any)
	if asString(first["san"]) != "d4" {
		t.Fatalf("unexpected move item: %v", first)
	}
}

func TestMCPServerToolErrors(t *testing.T) {
	rl := newTestRelay(t)

	noJournal := httptest.NewServer(New(apppublic.NewService(rl, nil)).Handler())
	defer noJournal.Close()
	c, closeClient := newMCPClient(t, noJournal.URL+"/mcp")
	defer closeClient()
	assertToolErrorCode(t, mustCallTool(t, c, "list_moves", map[string]any{}), "journal_disabled")
	assertToolErrorCode(t, mustCallTool(t, c, "list_moves", map[string]any{"after_ply": -1}), "invalid_request")

	withJournal := httptest.NewServer(New(apppublic.NewService(rl, &memHistory{games: map[string]store.Game{}})).Handler())
	defer withJournal.Close()
	c2, closeClient2 := newMCPClient(t, withJournal.URL+"/mcp")
	defer closeClient2()
	assertToolErrorCode(t, mustCallTool(t, c2, "list_moves", map[string]any{"game_id": "missing"}), "not_found")
}

func newMCPClient(t *testing.T, endpoint string) (*client.Client, func()) {
	t.Helper()
	ctx := context.Background()
	trans, err := transport.NewStreamableHTTP(endpoint)
	if err != nil {
		t.Fatalf("new transport: %v", err)
	}
	if err := trans.Start(ctx); err != nil {
		t.Fatalf("transport start: %v", err)
	}
	c := client.NewClient(trans)
	_, err = c.Initialize(ctx, mcp.InitializeRequest{Params: mcp.InitializeParams{ProtocolVersion: mcp.LATEST_PROTOCOL_VERSION}})
	if err != nil {
		t.Fatalf("initialize: %v", err)
	}
	return c, func() { _ = trans.Close() }
}

func mustListTools(t *testing.T, c *client.Client) []mcp.Tool {
	t.Helper()
	res, err := c.ListTools(context.Background(), mcp.ListToolsRequest{})
	if err != nil {
		t.Fatalf("list tools: %v", err)
	}
	return res.Tools
}

func assertToolNames(t *testing.T, tools []mcp.Tool, expected ...string) {
	t.Helper()
	got := make([]string, 0, len(tools))
	for _, tool := range tools {
		got = append(got, tool.Name)
	}
	sort.Strings(got)
	sort.Strings(expected)
	if len(got) != len(expected) {
		t.Fatalf("tool count mismatch got=%v expected=%v", got, expected)
	}
	for i := range got {
		if got[i] != expected[i] {
			t.Fatalf("tool list mismatch got=%v expected=%v", got, expected)
		}
	}
}

func mustCallTool(t *testing.T, c *client.Client, name string, args map[string]any) *mcp.CallToolResult {
	t.Helper()
	res, err := c.CallTool(context.Background(), mcp.CallToolRequest{Params: mcp.CallToolParams{Name: name, Arguments: args}})
	if err != nil {
		t.Fatalf("call tool %s: %v", name, err)
	}
	return res
}

func assertToolErrorCode(t *testing.T, res *mcp.CallToolResult, want string) {
	t.Helper()
	if !res.IsError {
		t.Fatalf("expected tool error %q, got success: %v", want, res.StructuredContent)
	}
	errObj, ok := mapFromStructured(t, res)["error"].(map[string]any)
	if !ok {
		t.Fatalf("error payload missing 'error': %v", res.StructuredContent)
	}
	if got := asString(errObj["code"]); got != want {
		t.Fatalf("error code=%q want=%q", got, want)
	}
}

func mapFromStructured(t *testing.T, res *mcp.CallToolResult) map[string]any {
	t.Helper()
	b, err := json.Marshal(res.StructuredContent)
	if err != nil {
		t.Fatalf("marshal structured content: %v", err)
	}
	var out map[string]any
	if err := json.Unmarshal(b, &out); err != nil {
		t.Fatalf("unmarshal structured content: %v", err)
	}
	return out
}

func asString(v any) string {
	s, _ := v.(string)
	return s
}
