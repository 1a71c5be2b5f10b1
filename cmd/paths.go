package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/elnala24/ytapp-project/internal"
)

// pathsCmd represents the paths command
var pathsCmd = &cobra.Command{
	Use:   "paths",
	Short: "Show directories and files used by ytapp",
	Example: `  # Show all application paths
  ytapp paths

  # Edit the config file
  $EDITOR "$(ytapp paths --config)"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if only, _ := cmd.Flags().GetBool("config"); only {
			fmt.Println(internal.ConfigFilePath(config.ConfigDir))
			return nil
		}

		fmt.Printf("Config file: %s\n", internal.ConfigFilePath(config.ConfigDir))
		fmt.Printf("Last title: %s\n", internal.LastTitlePath(config.StateDir))
		fmt.Printf("MCP log: %s", internal.MCPLogPath(config.CacheDir))
		if !config.MCPLogEnabled {
			fmt.Print(" (disabled, set mcp_log = true)")
		}
		fmt.Println()
		return nil
	},
}

func init() {
	pathsCmd.Flags().Bool("config", false, "Print only the config file path")
	rootCmd.AddCommand(pathsCmd)
}
