package ws

import (
	"encoding/json"
	"os"
	"strings"
	"testing"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

func TestClientMessageSchema(t *testing.T) {
	compiler := jsonschema.NewCompiler()
	data, err := os.ReadFile("../../api/schema/ws_v1.schema.json")
	if err != nil {
		t.Fatalf("read schema: %v", err)
	}
	if err := compiler.AddResource("ws_v1.schema.json", strings.NewReader(string(data))); err != nil {
		t.Fatalf("add resource: %v", err)
	}
	schema, err := compiler.Compile("ws_v1.schema.json")
	if err != nil {
		t.Fatalf("compile: %v", err)
	}

	samples := []string{
		`{"type":"createRoom","title":"evening game","settings":{"handicap":"none","komi":"6.5","stoneColor":"auto","basicTime":"10m","byoyomiTime":"30s","byoyomiPeriods":"3"}}`,
		`{"type":"joinRoom","roomId":"A1B2C3"}`,
		`{"type":"updateReadyStatus","roomId":"A1B2C3","isReady":true}`,
		`{"type":"kickPlayer","roomId":"A1B2C3","targetUserId":42}`,
		`{"type":"addBots","roomId":"A1B2C3","count":3}`,
		`{"type":"startGame","roomId":"A1B2C3"}`,
		`{"type":"playMove","roomId":"A1B2C3","y":3,"x":16}`,
		`{"type":"playMove","roomId":"A1B2C3","y":-1,"x":-1}`,
		`{"type":"resign","roomId":"A1B2C3"}`,
		`{"type":"reconnect","roomId":"A1B2C3"}`,
	}
	for i, s := range samples {
		var v any
		if err := json.Unmarshal([]byte(s), &v); err != nil {
			t.Fatalf("unmarshal sample %d: %v", i, err)
		}
		if err := schema.Validate(v); err != nil {
			t.Fatalf("schema validate sample %d: %v", i, err)
		}
	}

	invalid := []string{
		`{"type":"teleport"}`,
		`{"type":"joinRoom"}`,
		`{"type":"kickPlayer","roomId":"A1B2C3"}`,
	}
	for i, s := range invalid {
		var v any
		if err := json.Unmarshal([]byte(s), &v); err != nil {
			t.Fatalf("unmarshal invalid sample %d: %v", i, err)
		}
		if err := schema.Validate(v); err == nil {
			t.Fatalf("invalid sample %d unexpectedly passed", i)
		}
	}
}
