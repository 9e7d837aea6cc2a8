package config

import (
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() with defaults should not error, got: %v", err)
	}

	if cfg.Input.CSVFile != "candidate_summary.csv" {
		t.Errorf("unexpected default input: %q", cfg.Input.CSVFile)
	}
	if cfg.Output.Dir != "report" {
		t.Errorf("unexpected default output dir: %q", cfg.Output.Dir)
	}
	if cfg.Output.ChartWidth != 1024 || cfg.Output.ChartHeight != 512 {
		t.Errorf("unexpected default chart size: %dx%d", cfg.Output.ChartWidth, cfg.Output.ChartHeight)
	}
	if cfg.Run.Workers != 4 {
		t.Errorf("unexpected default workers: %d", cfg.Run.Workers)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("FEC_CSV_FILE", "other.csv")
	t.Setenv("FEC_OUTPUT_DIR", "out")
	t.Setenv("FEC_WORKERS", "2")
	t.Setenv("LOG_FORMAT", "json")

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Input.CSVFile != "other.csv" {
		t.Errorf("expected env input override, got %q", cfg.Input.CSVFile)
	}
	if cfg.Output.Dir != "out" {
		t.Errorf("expected env output override, got %q", cfg.Output.Dir)
	}
	if cfg.Run.Workers != 2 {
		t.Errorf("expected 2 workers, got %d", cfg.Run.Workers)
	}
	if cfg.Logger.Format != "json" {
		t.Errorf("expected json log format, got %q", cfg.Logger.Format)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{name: "bad log level", key: "LOG_LEVEL", value: "loud"},
		{name: "bad log format", key: "LOG_FORMAT", value: "xml"},
		{name: "zero workers", key: "FEC_WORKERS", value: "0"},
		{name: "negative chart width", key: "FEC_CHART_WIDTH", value: "-5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			if _, err := Load(); err == nil {
				t.Errorf("Load() should reject %s=%s", tt.key, tt.value)
			}
		})
	}
}
