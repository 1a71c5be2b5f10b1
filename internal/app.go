package internal

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// App holds the application state and dependencies
type App struct {
	youtube *YouTube
	ai      *AI
	config  *Config
	ui      UIManager
	logger  *zap.Logger
}

// NewApp initializes the application
func NewApp(config *Config, logger *zap.Logger, metrics *Metrics, options ...AppOption) *App {
	if logger == nil {
		logger = zap.NewNop()
	}

	app := &App{
		youtube: NewYouTube(config.YouTubeEndpoint, config.RequestTimeout, logger.Named("youtube"), metrics),
		ai:      NewAI(config.AISettings(), NewPromptManager(config.Prompt), logger.Named("openai"), metrics),
		config:  config,
		ui:      NewUIManager(config.Verbose, config.Quiet),
		logger:  logger,
	}

	for _, option := range options {
		option(app)
	}

	return app
}

// AppOption customizes App creation
type AppOption func(*App)

// WithYouTube sets a custom metadata adapter
func WithYouTube(youtube *YouTube) AppOption {
	return func(a *App) {
		a.youtube = youtube
	}
}

// WithAI sets a custom title-variation adapter
func WithAI(ai *AI) AppOption {
	return func(a *App) {
		a.ai = ai
	}
}

// WithUI sets a custom UI manager
func WithUI(ui UIManager) AppOption {
	return func(a *App) {
		a.ui = ui
	}
}

// SetPromptManager sets a new prompt manager
func (app *App) SetPromptManager(pm *PromptManager) {
	app.ai.SetPromptManager(pm)
}

// Resolve extracts the video reference from user input
func (app *App) Resolve(text string) (VideoReference, error) {
	ref, err := ResolveURL(text)
	if err != nil {
		app.logger.Debug("URL resolution failed", zap.String("input", text), zap.Error(err))
		return VideoReference{}, err
	}
	return ref, nil
}

// Metadata resolves the URL and fetches the video's metadata
func (app *App) Metadata(ctx context.Context, rawURL string) (*VideoMetadata, error) {
	return app.MetadataWithStatus(ctx, rawURL, false)
}

// MetadataWithStatus resolves and fetches metadata with optional status spinner
func (app *App) MetadataWithStatus(ctx context.Context, rawURL string, showStatus bool) (*VideoMetadata, error) {
	ref, err := app.Resolve(rawURL)
	if err != nil {
		return nil, err
	}

	if err := ValidateYouTubeAPIKey(app.config.YouTubeAPIKey); err != nil {
		return nil, err
	}

	return app.fetchMetadata(ctx, ref, showStatus)
}

// TitleVariations generates rewrites for a title; this is the regenerate action
func (app *App) TitleVariations(ctx context.Context, title string) ([]TitleVariation, error) {
	return app.TitleVariationsWithStatus(ctx, title, false)
}

// TitleVariationsWithStatus generates rewrites with optional status spinner
func (app *App) TitleVariationsWithStatus(ctx context.Context, title string, showStatus bool) ([]TitleVariation, error) {
	if err := ValidateOpenAIAPIKey(app.config.OpenAIAPIKey); err != nil {
		return nil, err
	}

	var spinner ProgressBar = SilentProgressBar{}
	if showStatus {
		spinner = app.ui.NewSpinner("Generating title variations...")
	}
	defer spinner.Finish()

	app.ui.Verbose("Generating title variations for %q\n", title)

	variations, err := app.ai.TitleVariations(ctx, title, app.config.OpenAIAPIKey)
	if err != nil {
		return nil, err
	}

	app.ui.Verbose("Received %d title variations\n", len(variations))
	return variations, nil
}

// LoadVideo performs the complete sequence: resolve -> metadata -> title variations.
// When only the last step fails, the report still carries the metadata.
func (app *App) LoadVideo(ctx context.Context, rawURL string) (*VideoReport, error) {
	return app.LoadVideoWithStatus(ctx, rawURL, false)
}

// LoadVideoWithStatus is LoadVideo with optional status spinners
func (app *App) LoadVideoWithStatus(ctx context.Context, rawURL string, showStatus bool) (*VideoReport, error) {
	ref, err := app.Resolve(rawURL)
	if err != nil {
		return nil, err
	}

	// Both credentials are checked before the first request goes out
	if err := ValidateCredentials(app.config); err != nil {
		return nil, err
	}

	metadata, err := app.fetchMetadata(ctx, ref, showStatus)
	if err != nil {
		return nil, err
	}

	report := &VideoReport{Video: ref, Metadata: metadata}

	variations, err := app.TitleVariationsWithStatus(ctx, metadata.Title, showStatus)
	if err != nil {
		return report, fmt.Errorf("generating title variations: %w", err)
	}
	report.Variations = variations

	app.logger.Info("Video loaded",
		zap.String("video_id", ref.ID),
		zap.Int("variations", len(variations)))

	return report, nil
}

func (app *App) fetchMetadata(ctx context.Context, ref VideoReference, showStatus bool) (*VideoMetadata, error) {
	var spinner ProgressBar = SilentProgressBar{}
	if showStatus {
		spinner = app.ui.NewSpinner("Fetching video metadata from YouTube...")
	}
	defer spinner.Finish()

	app.ui.Verbose("Fetching metadata for %s\n", ref.ID)

	metadata, err := app.youtube.Metadata(ctx, ref.ID, app.config.YouTubeAPIKey)
	if err != nil {
		return nil, err
	}

	app.ui.Verbose("Title: %s\nChannel: %s\nDuration: %s\n",
		metadata.Title, metadata.ChannelName, metadata.DurationDisplay)

	return metadata, nil
}
