package internal

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/spf13/viper"
	"github.com/subosito/gotenv"
)

const appName = "ytapp"

// Config holds application settings
type Config struct {
	// Credentials, one per remote service
	YouTubeAPIKey string
	OpenAIAPIKey  string

	// User configurable settings
	OpenAIModel     string
	OpenAIBaseURL   string
	YouTubeEndpoint string
	Temperature     float64
	MaxTokens       int64
	RequestTimeout  time.Duration
	Prompt          string
	LogLevel        string
	Verbose         bool
	Quiet           bool
	MCPLogEnabled   bool

	// Fixed XDG paths (not configurable)
	ConfigDir string
	CacheDir  string
	StateDir  string
}

//go:embed config.toml
var defaultFS embed.FS

// ConfigFilePath returns where config.toml lives inside configDir
func ConfigFilePath(configDir string) string {
	return filepath.Join(configDir, "config.toml")
}

// EnsureDefaultConfig writes the embedded config.toml into configDir unless one exists
func EnsureDefaultConfig(configDir string) error {
	filePath := ConfigFilePath(configDir)
	if FileExists(filePath) {
		return nil
	}

	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	defaultContent, err := defaultFS.ReadFile("config.toml")
	if err != nil {
		return fmt.Errorf("reading embedded default configuration: %w", err)
	}

	if err := os.WriteFile(filePath, defaultContent, 0600); err != nil {
		return fmt.Errorf("writing default configuration: %w", err)
	}
	return nil
}

// LoadDotEnv loads KEY=value pairs from path into the environment.
// Variables already set win; a missing file is not an error.
func LoadDotEnv(path string) error {
	if err := gotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return nil
}

// InitConfig initializes Viper and loads configuration from defaults,
// config.toml, environment variables and an optional .env file
func InitConfig() *Config {
	configDir := filepath.Join(xdg.ConfigHome, appName)
	cacheDir := filepath.Join(xdg.CacheHome, appName)
	stateDir := filepath.Join(xdg.StateHome, appName)

	if err := LoadDotEnv(".env"); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}

	v := newViper(configDir)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			fmt.Fprintf(os.Stderr, "Warning: Error reading config file: %v\n", err)
		}
	}

	config := configFromViper(v)
	config.ConfigDir = configDir
	config.CacheDir = cacheDir
	config.StateDir = stateDir

	return config
}

func newViper(configDir string) *viper.Viper {
	v := viper.New()

	v.SetDefault("openai_model", "gpt-4o-mini")
	v.SetDefault("openai_base_url", "")
	v.SetDefault("youtube_endpoint", "")
	v.SetDefault("temperature", 0.8)
	v.SetDefault("max_tokens", 500)
	v.SetDefault("request_timeout", 30*time.Second)
	v.SetDefault("prompt", "")
	v.SetDefault("log_level", "warn")
	v.SetDefault("verbose", false)
	v.SetDefault("quiet", false)
	v.SetDefault("mcp_log", false)

	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(configDir)
	v.AddConfigPath(".")

	v.SetEnvPrefix(strings.ToUpper(appName))
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	// The conventional unprefixed names are accepted for both credentials
	_ = v.BindEnv("youtube_api_key", "YTAPP_YOUTUBE_API_KEY", "YOUTUBE_API_KEY")
	_ = v.BindEnv("openai_api_key", "YTAPP_OPENAI_API_KEY", "OPENAI_API_KEY")

	return v
}

func configFromViper(v *viper.Viper) *Config {
	return &Config{
		YouTubeAPIKey:   v.GetString("youtube_api_key"),
		OpenAIAPIKey:    v.GetString("openai_api_key"),
		OpenAIModel:     v.GetString("openai_model"),
		OpenAIBaseURL:   v.GetString("openai_base_url"),
		YouTubeEndpoint: v.GetString("youtube_endpoint"),
		Temperature:     v.GetFloat64("temperature"),
		MaxTokens:       v.GetInt64("max_tokens"),
		RequestTimeout:  v.GetDuration("request_timeout"),
		Prompt:          v.GetString("prompt"),
		LogLevel:        v.GetString("log_level"),
		Verbose:         v.GetBool("verbose"),
		Quiet:           v.GetBool("quiet"),
		MCPLogEnabled:   v.GetBool("mcp_log"),
	}
}

// AISettings returns the generation parameters derived from the config
func (c *Config) AISettings() AISettings {
	return AISettings{
		Model:       c.OpenAIModel,
		BaseURL:     c.OpenAIBaseURL,
		Temperature: c.Temperature,
		MaxTokens:   c.MaxTokens,
		Timeout:     c.RequestTimeout,
	}
}
