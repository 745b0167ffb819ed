package observability

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestNewLogger_ProdIsJSONAtInfo(t *testing.T) {
	var buf bytes.Buffer
	l := newLogger(&buf, "prod", "api")

	l.Debug().Msg("hidden")
	if buf.Len() != 0 {
		t.Fatalf("debug event written in prod: %q", buf.String())
	}

	l.Info().Str("k", "v").Msg("shown")
	var m map[string]any
	if err := json.Unmarshal(buf.Bytes(), &m); err != nil {
		t.Fatalf("not JSON: %q", buf.String())
	}
	if m["service"] != "api" || m["message"] != "shown" || m["k"] != "v" {
		t.Fatalf("unexpected fields: %v", m)
	}
}

func TestNewLogger_DevIsConsoleAtDebug(t *testing.T) {
	var buf bytes.Buffer
	l := newLogger(&buf, "dev", "reanalyzer")

	l.Debug().Msg("visible")
	out := buf.String()
	if !strings.Contains(out, "visible") || strings.HasPrefix(out, "{") {
		t.Fatalf("expected console output, got %q", out)
	}
}
