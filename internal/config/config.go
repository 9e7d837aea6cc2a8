package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

type Config struct {
	Input  InputConfig
	Output OutputConfig
	Logger LoggerConfig
	Run    RunConfig
}

type InputConfig struct {
	CSVFile string
}

type OutputConfig struct {
	Dir         string
	ChartWidth  int
	ChartHeight int
}

type LoggerConfig struct {
	Level  string
	Format string
}

type RunConfig struct {
	Workers int
}

func Load() (*Config, error) {
	cfg := &Config{
		Input: InputConfig{
			CSVFile: getEnvString("FEC_CSV_FILE", "candidate_summary.csv"),
		},
		Output: OutputConfig{
			Dir:         getEnvString("FEC_OUTPUT_DIR", "report"),
			ChartWidth:  getEnvInt("FEC_CHART_WIDTH", 1024),
			ChartHeight: getEnvInt("FEC_CHART_HEIGHT", 512),
		},
		Logger: LoggerConfig{
			Level:  getEnvString("LOG_LEVEL", "info"),
			Format: getEnvString("LOG_FORMAT", "text"),
		},
		Run: RunConfig{
			Workers: getEnvInt("FEC_WORKERS", 4),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.Input.CSVFile == "" {
		return fmt.Errorf("CSV file path cannot be empty")
	}

	if c.Output.Dir == "" {
		return fmt.Errorf("output directory cannot be empty")
	}

	if c.Output.ChartWidth <= 0 || c.Output.ChartHeight <= 0 {
		return fmt.Errorf("chart dimensions must be positive, got %dx%d",
			c.Output.ChartWidth, c.Output.ChartHeight)
	}

	if c.Run.Workers <= 0 {
		return fmt.Errorf("worker count must be positive, got %d", c.Run.Workers)
	}

	validLogLevels := []string{"debug", "info", "warn", "error"}
	if !contains(validLogLevels, c.Logger.Level) {
		return fmt.Errorf("invalid log level %q, must be one of: %s", c.Logger.Level, strings.Join(validLogLevels, ", "))
	}

	validLogFormats := []string{"json", "text"}
	if !contains(validLogFormats, c.Logger.Format) {
		return fmt.Errorf("invalid log format %q, must be one of: %s", c.Logger.Format, strings.Join(validLogFormats, ", "))
	}

	return nil
}

func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
