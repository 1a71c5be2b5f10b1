package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"

	"github.com/adrg/xdg"
	"github.com/spf13/cobra"

	"github.com/elnala24/ytapp-project/internal"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run MCP server for ytapp",
	Long: `Run a Model Context Protocol (MCP) server that exposes ytapp functionality as tools.

The MCP server provides four tools:
- resolve_video_url: Extract the video ID from a YouTube URL
- get_video_metadata: Look up title, channel, duration and thumbnail
- generate_title_variations: Rewrite a title in several tones
- load_video: Metadata and title variations in one step

Transport options:
- stdio (default): Standard MCP transport via stdin/stdout
- http: HTTP transport on specified port (use --port to configure)

With --metrics-port set, Prometheus metrics for the upstream APIs are
served on /metrics.`,
	Example: `  # Run MCP server with stdio transport (e.g. for Claude Desktop)
  ytapp mcp

  # Run MCP server with HTTP transport on port 8080 and metrics on 9090
  ytapp mcp --transport=http --port=8080 --metrics-port=9090

  # Set up Claude Desktop integration
  ytapp mcp setup-claude`,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		// MCP uses stdio protocol, so nothing may be written to stdout
		config.Verbose = false
		config.Quiet = true
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		transport, _ := cmd.Flags().GetString("transport")
		port, _ := cmd.Flags().GetInt("port")
		metricsPort, _ := cmd.Flags().GetInt("metrics-port")

		if transport != "stdio" && transport != "http" {
			return fmt.Errorf("unsupported transport %q (use stdio or http)", transport)
		}

		mcpLogger, err := internal.NewMCPLogger(config)
		if err != nil {
			return err
		}
		defer func() { _ = mcpLogger.Sync() }()

		metrics := internal.NewMetrics()
		app := internal.NewApp(config, mcpLogger, metrics)
		mcpServer := internal.NewMCPServer(app, metrics, mcpLogger, buildVersion())

		// Start the server (this will block until context is cancelled)
		return mcpServer.Start(cmd.Context(), transport, port, metricsPort)
	},
}

var setupClaudeCmd = &cobra.Command{
	Use:   "setup-claude",
	Short: "Register ytapp as an MCP server in Claude Desktop",
	Long: `Add (or update) a ytapp entry in Claude Desktop's claude_desktop_config.json.

Other configured MCP servers are preserved. Claude Desktop starts servers with
a minimal environment, so the XDG base directories and any YOUTUBE_API_KEY /
OPENAI_API_KEY present in the current shell are written into the entry.`,
	Example: `  # Register the server
  ytapp mcp setup-claude

  # Show the entry without touching the file
  ytapp mcp setup-claude --dry-run`,
	RunE: func(cmd *cobra.Command, args []string) error {
		name, _ := cmd.Flags().GetString("name")
		dryRun, _ := cmd.Flags().GetBool("dry-run")
		return setupClaudeDesktop(name, dryRun)
	},
}

// claudeServerEntry is one element of the mcpServers map
type claudeServerEntry struct {
	Command string            `json:"command"`
	Args    []string          `json:"args"`
	Env     map[string]string `json:"env,omitempty"`
}

func setupClaudeDesktop(name string, dryRun bool) error {
	execPath, err := os.Executable()
	if err != nil {
		return fmt.Errorf("getting executable path: %w", err)
	}
	if execPath, err = filepath.EvalSymlinks(execPath); err != nil {
		return fmt.Errorf("resolving executable path: %w", err)
	}

	entry := claudeServerEntry{
		Command: execPath,
		Args:    []string{"mcp"},
		Env:     serverEnv(),
	}

	if dryRun {
		return printJSON(map[string]claudeServerEntry{name: entry}, true)
	}

	configPath, err := claudeDesktopConfigPath()
	if err != nil {
		return err
	}

	data, err := os.ReadFile(configPath)
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("config for Claude Desktop not found at %s - start Claude Desktop once first", configPath)
	}
	if err != nil {
		return fmt.Errorf("reading Claude Desktop config: %w", err)
	}

	// Decoded loosely so unrelated settings survive the rewrite
	var desktop map[string]json.RawMessage
	if err := json.Unmarshal(data, &desktop); err != nil {
		return fmt.Errorf("parsing Claude Desktop config: %w", err)
	}
	if desktop == nil {
		desktop = map[string]json.RawMessage{}
	}

	servers := map[string]json.RawMessage{}
	if raw, ok := desktop["mcpServers"]; ok {
		if err := json.Unmarshal(raw, &servers); err != nil {
			return fmt.Errorf("parsing mcpServers: %w", err)
		}
	}

	if servers[name], err = json.Marshal(entry); err != nil {
		return fmt.Errorf("encoding server entry: %w", err)
	}
	if desktop["mcpServers"], err = json.Marshal(servers); err != nil {
		return fmt.Errorf("encoding mcpServers: %w", err)
	}

	out, err := json.MarshalIndent(desktop, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding Claude Desktop config: %w", err)
	}

	tmp := configPath + ".tmp"
	if err := os.WriteFile(tmp, out, 0644); err != nil {
		return fmt.Errorf("writing Claude Desktop config: %w", err)
	}
	if err := os.Rename(tmp, configPath); err != nil {
		return fmt.Errorf("replacing Claude Desktop config: %w", err)
	}

	fmt.Printf("Registered MCP server %q in %s\n", name, configPath)
	fmt.Println("Restart Claude Desktop to pick it up")
	return nil
}

// serverEnv is the environment Claude Desktop passes to the server process
func serverEnv() map[string]string {
	env := map[string]string{
		"XDG_CONFIG_HOME": xdg.ConfigHome,
		"XDG_CACHE_HOME":  xdg.CacheHome,
		"XDG_STATE_HOME":  xdg.StateHome,
	}
	for _, key := range []string{"YOUTUBE_API_KEY", "OPENAI_API_KEY"} {
		if value := os.Getenv(key); value != "" {
			env[key] = value
		}
	}
	return env
}

func claudeDesktopConfigPath() (string, error) {
	const fileName = "claude_desktop_config.json"

	switch runtime.GOOS {
	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, "Library", "Application Support", "Claude", fileName), nil
	case "windows":
		appData := os.Getenv("APPDATA")
		if appData == "" {
			return "", fmt.Errorf("APPDATA environment variable not set")
		}
		return filepath.Join(appData, "Claude", fileName), nil
	case "linux":
		return filepath.Join(xdg.ConfigHome, "Claude", fileName), nil
	default:
		return "", fmt.Errorf("unsupported platform: %s", runtime.GOOS)
	}
}

func init() {
	mcpCmd.Flags().String("transport", "stdio", "Transport protocol (stdio or http)")
	mcpCmd.Flags().Int("port", 8080, "Port for HTTP transport (only used with --transport=http)")
	mcpCmd.Flags().Int("metrics-port", 0, "Serve Prometheus metrics on this port (0 disables)")

	setupClaudeCmd.Flags().String("name", "ytapp", "Server name in the mcpServers map")
	setupClaudeCmd.Flags().Bool("dry-run", false, "Print the entry instead of writing it")

	mcpCmd.AddCommand(setupClaudeCmd)
	rootCmd.AddCommand(mcpCmd)
}
