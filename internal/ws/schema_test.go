package ws

import (
	"encoding/json"
	"os"
	"strings"
	"testing"
	"time"

	"chess-relay/internal/relay"

	"github.com/gorilla/websocket"
	"github.com/santhosh-tekuri/jsonschema/v5"
)

func compileSchema(t *testing.T) *jsonschema.Schema {
	t.Helper()
	compiler := jsonschema.NewCompiler()
	data, err := os.ReadFile("../../api/schema/relay_v1.schema.json")
	if err != nil {
		t.Fatalf("read schema: %v", err)
	}
	if err := compiler.AddResource("relay_v1.schema.json", strings.NewReader(string(data))); err != nil {
		t.Fatalf("add resource: %v", err)
	}
	schema, err := compiler.Compile("relay_v1.schema.json")
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	return schema
}

func validate(t *testing.T, schema *jsonschema.Schema, raw []byte) {
	t.Helper()
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		t.Fatalf("unmarshal %s: %v", raw, err)
	}
	if err := schema.Validate(v); err != nil {
		t.Fatalf("schema validate %s: %v", raw, err)
	}
}

func TestWSProtocolSchema(t *testing.T) {
	schema := compileSchema(t)
	samples := []string{
		`{"type":"playerRole","protocol_version":"1.0","side":"w"}`,
		`{"type":"spectatorRole","protocol_version":"1.0"}`,
		`{"type":"move","protocol_version":"1.0","from":"e7","to":"e8","promotion":"q","san":"e8=Q"}`,
		`{"type":"boardState","protocol_version":"1.0","position":"rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1"}`,
		`{"type":"invalidMove","protocol_version":"1.0","from":"e2","to":"e5","promotion":"q","reason":"illegal_move"}`,
		`{"type":"seatVacated","protocol_version":"1.0","side":"b"}`,
	}
	for _, s := range samples {
		validate(t, schema, []byte(s))
	}

	var v any
	_ = json.Unmarshal([]byte(`{"type":"playerRole","protocol_version":"1.0","side":"x"}`), &v)
	if err := schema.Validate(v); err == nil {
		t.Fatal("expected invalid side to fail validation")
	}
}

func TestServerFramesMatchSchema(t *testing.T) {
	schema := compileSchema(t)
	_, url := newTestServer(t, relay.Options{RejectOutOfTurn: true})
	read := func(conn *websocket.Conn) []byte {
		_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
		_, data, err := conn.ReadMessage()
		if err != nil {
			t.Fatalf("read: %v", err)
		}
		return data
	}
	c1 := dial(t, url)
	validate(t, schema, read(c1))
	c2 := dial(t, url)
	validate(t, schema, read(c2))
	c3 := dial(t, url)
	validate(t, schema, read(c3))

	sendMove(t, c2, "e7", "e5", "")
	validate(t, schema, read(c2))

	sendMove(t, c1, "e2", "e4", "q")
	validate(t, schema, read(c3))
	validate(t, schema, read(c3))
}
