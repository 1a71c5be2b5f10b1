package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/elnala24/ytapp-project/internal"
)

// resolveCmd prints the video ID contained in a URL
var resolveCmd = &cobra.Command{
	Use:   "resolve [URL]",
	Short: "Print the video ID of a YouTube URL",
	Example: `  ytapp resolve "https://www.youtube.com/watch?v=dQw4w9WgXcQ&t=42"
  ytapp resolve "https://youtu.be/dQw4w9WgXcQ"
  ytapp resolve "https://www.youtube.com/embed/dQw4w9WgXcQ"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ref, err := internal.ResolveURL(args[0])
		if err != nil {
			return err
		}
		fmt.Println(ref.ID)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(resolveCmd)
}
