package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zerolog.Level
	}{
		{"trace", zerolog.TraceLevel},
		{"DEBUG", zerolog.DebugLevel},
		{"info", zerolog.InfoLevel},
		{"warning", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"disabled", zerolog.Disabled},
		{"nonsense", zerolog.InfoLevel},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := parseLevel(tt.in); got != tt.want {
				t.Errorf("parseLevel(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestInit_JSONOutput(t *testing.T) {
	defer Init(DefaultConfig())

	var buf bytes.Buffer
	Init(Config{Level: "debug", Format: "json", Output: &buf})

	l := With().Str("component", "viewer").Logger()
	l.Debug().Str("scene", "lobby").Msg("mounted")

	out := buf.String()
	for _, want := range []string{`"component":"viewer"`, `"scene":"lobby"`, `"message":"mounted"`, `"level":"debug"`} {
		if !strings.Contains(out, want) {
			t.Errorf("output %q missing %s", out, want)
		}
	}
}

func TestInit_LevelFilters(t *testing.T) {
	defer Init(DefaultConfig())

	var buf bytes.Buffer
	Init(Config{Level: "warn", Format: "json", Output: &buf})
	Info().Msg("hidden")
	Warn().Msg("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info message emitted at warn level: %q", out)
	}
	if !strings.Contains(out, "shown") {
		t.Errorf("warn message missing: %q", out)
	}
}
