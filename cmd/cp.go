package cmd

import (
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/elnala24/ytapp-project/internal"
)

// copyRequestedVariation copies the variation selected with --copy to the system clipboard
func copyRequestedVariation(cmd *cobra.Command, variations []internal.TitleVariation) error {
	n, _ := cmd.Flags().GetInt("copy")
	if n == 0 {
		return nil
	}
	if n < 0 || n > len(variations) {
		return fmt.Errorf("--copy %d is out of range (1-%d)", n, len(variations))
	}

	title := variations[n-1].Title
	if err := clipboard.WriteAll(title); err != nil {
		return fmt.Errorf("copying title to clipboard: %w", err)
	}

	if !config.Quiet {
		fmt.Printf("Copied to clipboard: %s\n", title)
	}
	return nil
}
