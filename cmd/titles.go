package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/elnala24/ytapp-project/internal"
)

// titlesCmd regenerates title variations without fetching metadata again
var titlesCmd = &cobra.Command{
	Use:   "titles [title]",
	Short: "Generate title variations for a title",
	Long: `Generate title variations for the given title. Without an argument the
title of the most recently loaded video is used, so running it again
regenerates a fresh set.`,
	Example: `  # Regenerate variations for the last loaded video
  ytapp titles

  # Rewrite any title
  ytapp titles "How I Built a Cabin in 30 Days"

  # Use a specific model and copy the first result
  ytapp titles "How I Built a Cabin in 30 Days" --model gpt-4o --copy 1`,
	Args: cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := internal.ValidateOpenAIRequirements(cmd, config); err != nil {
			return err
		}

		title := strings.TrimSpace(strings.Join(args, " "))
		if title == "" {
			var err error
			if title, err = internal.LoadLastTitle(config.StateDir); err != nil {
				return err
			}
		}

		app := internal.NewApp(config, logger, nil)
		if err := internal.HandlePromptFlag(cmd, app); err != nil {
			return err
		}

		variations, err := app.TitleVariationsWithStatus(cmd.Context(), title, !config.Quiet)
		if err != nil {
			return err
		}

		if jsonOutput(cmd) {
			return printJSON(variations, true)
		}

		if err := printMarkdown(internal.FormatVariationsMarkdown(variations)); err != nil {
			return err
		}
		return copyRequestedVariation(cmd, variations)
	},
}

func init() {
	internal.AddOpenAIFlags(titlesCmd)
	internal.AddOutputFlags(titlesCmd)
	rootCmd.AddCommand(titlesCmd)
}
