package telemetry

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestInfoWritesJSONLine(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetOutput(nil)

	Info("analysis.completed", map[string]any{"score": 71.5, "err": errors.New("x")})

	var entry map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry); err != nil {
		t.Fatalf("invalid json: %v (%s)", err, buf.String())
	}
	if entry["level"] != "info" || entry["msg"] != "analysis.completed" {
		t.Fatalf("unexpected entry: %v", entry)
	}
	if _, ok := entry["ts"].(string); !ok {
		t.Fatalf("expected ts string, got %v", entry["ts"])
	}
	if entry["score"] != 71.5 || entry["err"] != "x" {
		t.Fatalf("fields not flattened: %v", entry)
	}
	if _, ok := entry["time"]; ok {
		t.Fatalf("time key should be renamed: %v", entry)
	}
}

func TestSetLevelFiltersDebug(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetOutput(nil)
	defer SetLevel("info")

	Debug("hidden", nil)
	if buf.Len() != 0 {
		t.Fatalf("debug should be filtered at info: %s", buf.String())
	}
	SetLevel("debug")
	Debug("shown", nil)
	if !strings.Contains(buf.String(), `"level":"debug"`) {
		t.Fatalf("expected debug line, got %s", buf.String())
	}
	SetLevel("error")
	buf.Reset()
	Warn("dropped", nil)
	Error("kept", nil)
	if strings.Contains(buf.String(), "dropped") || !strings.Contains(buf.String(), "kept") {
		t.Fatalf("unexpected output at error level: %s", buf.String())
	}
}
