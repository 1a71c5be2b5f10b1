package cmd

import (
	"fmt"
	"runtime"
	"runtime/debug"

	"github.com/spf13/cobra"
)

// Set with -ldflags "-X github.com/elnala24/ytapp-project/cmd.version=..."
var (
	version = "dev"
	commit  = ""
	date    = ""
)

// buildVersion falls back to the module version when installed with go install
func buildVersion() string {
	if version != "dev" {
		return version
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}
	return version
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Example: `  # Show version information
  ytapp version`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("ytapp %s", buildVersion())
		if commit != "" {
			fmt.Printf(" (commit %s, built %s)", commit, date)
		}
		fmt.Printf(" %s/%s %s\n", runtime.GOOS, runtime.GOARCH, runtime.Version())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
