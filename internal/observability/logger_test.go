package observability

import (
	"context"
	"log/slog"
	"testing"

	"fecreport/internal/config"
)

func TestNewLogger_Formats(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.LoggerConfig
	}{
		{name: "json", cfg: config.LoggerConfig{Level: "debug", Format: "json"}},
		{name: "text", cfg: config.LoggerConfig{Level: "info", Format: "text"}},
		{name: "unknown format falls back", cfg: config.LoggerConfig{Level: "warn", Format: "yaml"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if logger := NewLogger(tt.cfg); logger == nil {
				t.Error("NewLogger() returned nil")
			}
		})
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"garbage", slog.LevelInfo},
	}

	for _, tt := range tests {
		if got := parseLogLevel(tt.in); got != tt.want {
			t.Errorf("parseLogLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestSectionIDContext(t *testing.T) {
	ctx := context.Background()

	if got := GetSectionID(ctx); got != "" {
		t.Errorf("empty context should carry no section id, got %q", got)
	}

	ctx = WithSectionID(ctx, "top-parties")
	if got := GetSectionID(ctx); got != "top-parties" {
		t.Errorf("GetSectionID() = %q, want %q", got, "top-parties")
	}
}
