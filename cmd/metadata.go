package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/elnala24/ytapp-project/internal"
)

var metadataCmd = &cobra.Command{
	Use:   "metadata [URL]",
	Short: "Look up a video's title, channel, duration and thumbnail",
	Long: `Fetch a video's metadata from the YouTube Data API without generating
title variations. Only YOUTUBE_API_KEY is required.`,
	Example: `  # Print metadata as JSON
  ytapp metadata "https://www.youtube.com/watch?v=dQw4w9WgXcQ"
  ytapp metadata dQw4w9WgXcQ --pretty

  # Save metadata to file
  ytapp metadata dQw4w9WgXcQ -o metadata.json

  # Render like the main command does
  ytapp metadata dQw4w9WgXcQ --markdown`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := internal.NewApp(config, logger, nil)

		metadata, err := app.MetadataWithStatus(cmd.Context(), internal.NormalizeArg(args[0]), !config.Quiet)
		if err != nil {
			return err
		}
		rememberTitle(metadata.Title)

		if asMarkdown, _ := cmd.Flags().GetBool("markdown"); asMarkdown {
			return printMarkdown(internal.FormatMetadataMarkdown(metadata))
		}

		pretty, _ := cmd.Flags().GetBool("pretty")
		outputFile, _ := cmd.Flags().GetString("output")
		if outputFile == "" {
			return printJSON(metadata, pretty)
		}

		data, err := marshalJSON(metadata, pretty)
		if err != nil {
			return err
		}
		if err := os.WriteFile(outputFile, data, 0644); err != nil {
			return fmt.Errorf("writing %s: %w", outputFile, err)
		}
		if !config.Quiet {
			fmt.Fprintf(os.Stderr, "Metadata written to %s\n", outputFile)
		}
		return nil
	},
}

func init() {
	metadataCmd.Flags().StringP("output", "o", "", "Output file path (default: stdout)")
	metadataCmd.Flags().Bool("pretty", false, "Format output as pretty JSON")
	metadataCmd.Flags().Bool("markdown", false, "Render as markdown instead of JSON")
	rootCmd.AddCommand(metadataCmd)
}
