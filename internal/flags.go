package internal

import (
	"fmt"

	"github.com/spf13/cobra"
)

// AddOpenAIFlags adds flags related to title generation
func AddOpenAIFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("model", "m", "", "OpenAI model to use for title variations")
	cmd.Flags().StringP("prompt", "p", "", "Custom instruction for the model (string or file path)")
	cmd.Flags().Float64("temperature", 0, "Sampling temperature (default from config)")
}

// AddOutputFlags adds flags controlling how results are printed
func AddOutputFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("json", false, "Print the result as JSON instead of rendered markdown")
	cmd.Flags().Int("copy", 0, "Copy the Nth title variation to the clipboard")
}

// HandlePromptFlag processes the --prompt flag to set custom prompt
func HandlePromptFlag(cmd *cobra.Command, app *App) error {
	promptFlag := cmd.Flags().Lookup("prompt")
	if promptFlag == nil || !promptFlag.Changed {
		return nil
	}

	prompt, err := cmd.Flags().GetString("prompt")
	if err != nil {
		return fmt.Errorf("failed to get prompt flag: %w", err)
	}

	if prompt == "" {
		return nil
	}

	app.SetPromptManager(NewPromptManager(prompt))

	if IsLikelyFilePath(prompt) && FileExists(prompt) {
		app.ui.Verbose("Using custom prompt file: %s\n", prompt)
	} else {
		app.ui.Verbose("Using custom prompt string\n")
	}

	return nil
}

// HandleVerboseFlag processes the --verbose and --quiet flags to update config
func HandleVerboseFlag(cmd *cobra.Command, config *Config) error {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		return fmt.Errorf("failed to get verbose flag: %w", err)
	}
	quiet, err := cmd.Flags().GetBool("quiet")
	if err != nil {
		return fmt.Errorf("failed to get quiet flag: %w", err)
	}
	if verbose {
		config.Verbose = true
	}
	if quiet {
		config.Quiet = true
	}
	return nil
}

// ValidateYouTubeAPIKey returns a MissingCredential error when the key is empty
func ValidateYouTubeAPIKey(apiKey string) error {
	if apiKey == "" {
		return newError(KindMissingCredential, "YouTube API key is required - set it in config.toml or YOUTUBE_API_KEY environment variable", nil)
	}
	return nil
}

// ValidateOpenAIAPIKey returns a MissingCredential error when the key is empty
func ValidateOpenAIAPIKey(apiKey string) error {
	if apiKey == "" {
		return newError(KindMissingCredential, "OpenAI API key is required - set it in config.toml or OPENAI_API_KEY environment variable", nil)
	}
	return nil
}

// ValidateCredentials checks both credentials needed to load a video
func ValidateCredentials(config *Config) error {
	if err := ValidateYouTubeAPIKey(config.YouTubeAPIKey); err != nil {
		return err
	}
	return ValidateOpenAIAPIKey(config.OpenAIAPIKey)
}

// ValidateOpenAIRequirements validates the OpenAI model and temperature from flags and config
func ValidateOpenAIRequirements(cmd *cobra.Command, config *Config) error {
	modelFlag, _ := cmd.Flags().GetString("model")
	fromFlag := modelFlag != ""
	if fromFlag {
		config.OpenAIModel = modelFlag
	}

	// Compatible endpoints serve their own model names
	if config.OpenAIBaseURL == "" {
		if err := ValidateModel(config.OpenAIModel); err != nil {
			if fromFlag {
				return err
			}
			return fmt.Errorf("invalid model in config: %w", err)
		}
	}

	if f := cmd.Flags().Lookup("temperature"); f != nil && f.Changed {
		temperature, _ := cmd.Flags().GetFloat64("temperature")
		config.Temperature = temperature
	}
	if config.Temperature < 0 || config.Temperature > 2 {
		return fmt.Errorf("temperature must be between 0 and 2, got %g", config.Temperature)
	}

	return nil
}
