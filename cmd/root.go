package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/elnala24/ytapp-project/internal"
)

var (
	config *internal.Config
	logger *zap.Logger
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "ytapp [YouTube URL or ID]",
	Short: "Look up a YouTube video and rewrite its title in different tones",
	Long: `ytapp resolves a YouTube link, fetches the video's metadata from the
YouTube Data API and asks an OpenAI model for alternative titles in four
tones: casual, professional, clickbait and academic.

Both YOUTUBE_API_KEY and OPENAI_API_KEY must be configured.`,
	Example: `  # Load a video and generate title variations
  ytapp "https://www.youtube.com/watch?v=dQw4w9WgXcQ"
  ytapp "https://youtu.be/dQw4w9WgXcQ"
  ytapp dQw4w9WgXcQ

  # Copy the second variation to the clipboard
  ytapp "https://youtu.be/dQw4w9WgXcQ" --copy 2

  # Regenerate variations for the last video
  ytapp titles`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := internal.HandleVerboseFlag(cmd, config); err != nil {
			return err
		}
		var err error
		logger, err = internal.NewLogger(config)
		return err
	},
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := internal.ValidateOpenAIRequirements(cmd, config); err != nil {
			return err
		}

		app := internal.NewApp(config, logger, nil)
		if err := internal.HandlePromptFlag(cmd, app); err != nil {
			return err
		}

		report, err := app.LoadVideoWithStatus(cmd.Context(), internal.NormalizeArg(args[0]), !config.Quiet)
		if report != nil && report.Metadata != nil {
			rememberTitle(report.Metadata.Title)
		}
		if err != nil {
			// Metadata that did arrive is still shown before the failure
			if report != nil && report.Metadata != nil && !jsonOutput(cmd) {
				_ = printMarkdown(internal.FormatMetadataMarkdown(report.Metadata))
			}
			return err
		}

		if jsonOutput(cmd) {
			return printJSON(report, true)
		}

		if err := printMarkdown(internal.FormatMetadataMarkdown(report.Metadata) + "\n" +
			internal.FormatVariationsMarkdown(report.Variations)); err != nil {
			return err
		}

		return copyRequestedVariation(cmd, report.Variations)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	config = internal.InitConfig()

	if err := internal.EnsureDirs(config.ConfigDir, config.CacheDir, config.StateDir); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating XDG directories: %v\n", err)
		os.Exit(1)
	}

	if err := internal.EnsureDefaultConfig(config.ConfigDir); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Failed to ensure default config: %v\n", err)
	}

	// Nothing is persisted mid-request, so an interrupt simply ends the process
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
		os.Exit(130)
	}()

	rootCmd.SetContext(ctx)

	err := rootCmd.Execute()
	if logger != nil {
		_ = logger.Sync()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		var appErr *internal.Error
		if errors.As(err, &appErr) && config.Verbose {
			fmt.Fprintf(os.Stderr, "Kind: %s\n", appErr.Kind)
		}
	}
	return err
}

func init() {
	internal.AddOpenAIFlags(rootCmd)
	internal.AddOutputFlags(rootCmd)
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output for debugging")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "Suppress status output")
	rootCmd.SilenceErrors = true
}
