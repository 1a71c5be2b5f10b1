package internal

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"
)

// metadataParts are the resource facets requested for every lookup
var metadataParts = []string{"snippet", "contentDetails"}

// YouTube looks up video metadata through the YouTube Data API.
// It holds no credential; the key is supplied per call.
type YouTube struct {
	endpoint   string
	httpClient *http.Client
	timeout    time.Duration
	logger     *zap.Logger
	metrics    *Metrics
}

// NewYouTube creates a metadata adapter. An empty endpoint uses the public API.
func NewYouTube(endpoint string, timeout time.Duration, logger *zap.Logger, metrics *Metrics) *YouTube {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &YouTube{
		endpoint: endpoint,
		timeout:  timeout,
		logger:   logger,
		metrics:  metrics,
	}
}

// WithHTTPClient makes the adapter send requests through client.
// The API key is then expected to be attached by the client itself.
func (yt *YouTube) WithHTTPClient(client *http.Client) *YouTube {
	yt.httpClient = client
	return yt
}

// Metadata fetches the snippet and content details of one video
func (yt *YouTube) Metadata(ctx context.Context, videoID, apiKey string) (metadata *VideoMetadata, err error) {
	start := time.Now()
	defer func() {
		yt.metrics.ObserveRequest(adapterMetadata, err, time.Since(start))
	}()

	if apiKey == "" && yt.httpClient == nil {
		return nil, newError(KindMissingCredential, "YouTube API key is required - set it in config.toml or YOUTUBE_API_KEY environment variable", nil)
	}

	if yt.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, yt.timeout)
		defer cancel()
	}

	service, err := youtube.NewService(ctx, yt.serviceOptions(apiKey)...)
	if err != nil {
		return nil, newError(KindNetworkFailure, "", fmt.Errorf("creating youtube service: %w", err))
	}

	yt.logger.Debug("Requesting video metadata", zap.String("video_id", videoID))

	resp, err := service.Videos.List(metadataParts).Id(videoID).Context(ctx).Do()
	if err != nil {
		classified := classifyYouTubeError(err)
		yt.logger.Warn("Video metadata lookup failed",
			zap.String("video_id", videoID),
			zap.Stringer("kind", classified.Kind),
			zap.Error(err))
		return nil, classified
	}

	// An empty result set is how the API reports missing and private videos alike.
	if len(resp.Items) == 0 {
		yt.logger.Debug("Video metadata lookup returned no items", zap.String("video_id", videoID))
		return nil, newError(KindResourceNotFoundOrPrivate, "", nil)
	}

	metadata = metadataFromVideo(resp.Items[0])

	yt.logger.Debug("Video metadata received",
		zap.String("video_id", videoID),
		zap.String("title", metadata.Title),
		zap.String("duration", metadata.DurationDisplay))

	return metadata, nil
}

func (yt *YouTube) serviceOptions(apiKey string) []option.ClientOption {
	var opts []option.ClientOption
	if yt.httpClient != nil {
		opts = append(opts, option.WithHTTPClient(yt.httpClient))
	} else {
		opts = append(opts, option.WithAPIKey(apiKey))
	}
	if yt.endpoint != "" {
		opts = append(opts, option.WithEndpoint(yt.endpoint))
	}
	return opts
}

// metadataFromVideo maps the API resource onto the internal record
func metadataFromVideo(item *youtube.Video) *VideoMetadata {
	metadata := &VideoMetadata{DurationDisplay: fallbackDuration}

	if item.ContentDetails != nil {
		metadata.DurationDisplay = FormatDuration(item.ContentDetails.Duration)
	}

	snippet := item.Snippet
	if snippet == nil {
		return metadata
	}

	metadata.Title = snippet.Title
	metadata.ChannelName = snippet.ChannelTitle
	metadata.Description = snippet.Description
	metadata.ThumbnailURL = pickThumbnail(snippet.Thumbnails)

	return metadata
}

// pickThumbnail prefers the high resolution image and falls back to medium
func pickThumbnail(thumbnails *youtube.ThumbnailDetails) string {
	if thumbnails == nil {
		return ""
	}
	if thumbnails.High != nil && thumbnails.High.Url != "" {
		return thumbnails.High.Url
	}
	if thumbnails.Medium != nil {
		return thumbnails.Medium.Url
	}
	return ""
}

// classifyYouTubeError maps an API or transport error onto the error taxonomy
func classifyYouTubeError(err error) *Error {
	var apiErr *googleapi.Error
	if !errors.As(err, &apiErr) {
		return newError(KindNetworkFailure, "", err)
	}

	switch apiErr.Code {
	case http.StatusUnauthorized, http.StatusForbidden:
		return newError(KindInvalidOrExhaustedCredential, "YouTube API key is invalid or its quota is exhausted", err)
	case http.StatusNotFound:
		return newError(KindResourceNotFoundOrPrivate, "", err)
	case http.StatusBadRequest:
		if hasReason(apiErr, "keyInvalid") {
			return newError(KindInvalidOrExhaustedCredential, "YouTube API key is invalid or its quota is exhausted", err)
		}
	}

	message := apiErr.Message
	if message == "" {
		message = fmt.Sprintf("YouTube API request failed (status %d)", apiErr.Code)
	}
	return newError(KindUpstreamError, message, err)
}

func hasReason(apiErr *googleapi.Error, reason string) bool {
	for _, item := range apiErr.Errors {
		if item.Reason == reason {
			return true
		}
	}
	return false
}
