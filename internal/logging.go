package internal

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewLogger builds the CLI logger: JSON lines on stderr at the configured level
func NewLogger(config *Config) (*zap.Logger, error) {
	level := config.LogLevel
	if config.Verbose {
		level = "debug"
	}
	return buildLogger(level, []string{"stderr"})
}

// NewMCPLogger builds the logger used while serving MCP. Stdout carries the
// protocol, so entries go to mcp.log in the cache directory, or nowhere.
func NewMCPLogger(config *Config) (*zap.Logger, error) {
	if !config.MCPLogEnabled {
		return zap.NewNop(), nil
	}

	if err := EnsureDirs(config.CacheDir); err != nil {
		return nil, fmt.Errorf("creating log directory: %w", err)
	}

	level := config.LogLevel
	if config.Verbose {
		level = "debug"
	}
	return buildLogger(level, []string{MCPLogPath(config.CacheDir)})
}

// MCPLogPath returns the log file used while serving MCP
func MCPLogPath(cacheDir string) string {
	return filepath.Join(cacheDir, "mcp.log")
}

func buildLogger(level string, outputs []string) (*zap.Logger, error) {
	zapLevel, err := zapcore.ParseLevel(level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: invalid log level %q, using warn\n", level)
		zapLevel = zapcore.WarnLevel
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapLevel)
	cfg.OutputPaths = outputs
	cfg.ErrorOutputPaths = []string{"stderr"}
	cfg.EncoderConfig.TimeKey = "timestamp"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("building logger: %w", err)
	}
	return logger, nil
}
