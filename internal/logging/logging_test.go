package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func TestNewWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	log, err := New(&buf, "debug")
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}
	log.Debug().Str("mode", "SURVIVAL").Msg("game started")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("expected a JSON line, got %q: %v", buf.String(), err)
	}
	if entry["message"] != "game started" || entry["mode"] != "SURVIVAL" || entry["level"] != "debug" {
		t.Fatalf("unexpected entry %v", entry)
	}
}

func TestNewFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	log, err := New(&buf, "")
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}
	log.Debug().Msg("hidden")
	if buf.Len() != 0 {
		t.Fatalf("debug must be filtered at the default level, got %q", buf.String())
	}
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	if _, err := New(&bytes.Buffer{}, "loud"); err == nil {
		t.Fatalf("expected error for unknown level")
	}
}

func TestOpenFileCreatesDirs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "typearena.log")
	f, err := OpenFile(path)
	if err != nil {
		t.Fatalf("open file: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected log file: %v", err)
	}
}
