package internal

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 3 * time.Second

// MCPServer wraps the MCP server and application dependencies
type MCPServer struct {
	app       *App
	metrics   *Metrics
	logger    *zap.Logger
	mcpServer *server.MCPServer

	stdin  io.Reader
	stdout io.Writer
}

// NewMCPServer creates a new MCP server instance
func NewMCPServer(app *App, metrics *Metrics, logger *zap.Logger, version string) *MCPServer {
	if logger == nil {
		logger = zap.NewNop()
	}

	mcpServer := server.NewMCPServer(
		"ytapp-server",
		version,
		server.WithToolCapabilities(true),
	)

	s := &MCPServer{
		app:       app,
		metrics:   metrics,
		logger:    logger,
		mcpServer: mcpServer,
		stdin:     os.Stdin,
		stdout:    os.Stdout,
	}

	s.registerTools()

	return s
}

// registerTools registers all available MCP tools
func (s *MCPServer) registerTools() {
	s.mcpServer.AddTool(mcp.NewTool("resolve_video_url",
		mcp.WithDescription("Extract the video ID from a YouTube watch, youtu.be or embed URL. No network access."),
		mcp.WithString("url",
			mcp.Description("YouTube video URL"),
			mcp.Required(),
		),
	), s.handleResolve)

	s.mcpServer.AddTool(mcp.NewTool("get_video_metadata",
		mcp.WithDescription("Look up a YouTube video's title, channel, duration, thumbnail and description through the YouTube Data API."),
		mcp.WithString("url",
			mcp.Description("YouTube video URL"),
			mcp.Required(),
		),
	), s.handleGetMetadata)

	s.mcpServer.AddTool(mcp.NewTool("generate_title_variations",
		mcp.WithDescription("Rewrite a video title in several tones (casual, professional, clickbait, academic). Returns a JSON array of {tone, title}. Calls the OpenAI API."),
		mcp.WithString("title",
			mcp.Description("The title to rewrite"),
			mcp.Required(),
		),
	), s.handleGenerateTitles)

	s.mcpServer.AddTool(mcp.NewTool("load_video",
		mcp.WithDescription("Resolve a YouTube URL, fetch its metadata and generate title variations in one step. Returns JSON."),
		mcp.WithString("url",
			mcp.Description("YouTube video URL"),
			mcp.Required(),
		),
	), s.handleLoadVideo)
}

// handleResolve implements the resolve_video_url tool
func (s *MCPServer) handleResolve(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	url, err := request.RequireString("url")
	if err != nil {
		return mcp.NewToolResultError("url parameter is required and must be a string"), nil
	}

	ref, err := s.app.Resolve(url)
	if err != nil {
		return s.toolError("resolve error", err), nil
	}

	return mcp.NewToolResultText(ref.ID), nil
}

// handleGetMetadata implements the get_video_metadata tool
func (s *MCPServer) handleGetMetadata(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	url, err := request.RequireString("url")
	if err != nil {
		return mcp.NewToolResultError("url parameter is required and must be a string"), nil
	}

	metadata, err := s.app.Metadata(ctx, url)
	if err != nil {
		return s.toolError("metadata error", err), nil
	}

	var buf strings.Builder
	fmt.Fprintf(&buf, "Title: %s\n", metadata.Title)
	fmt.Fprintf(&buf, "Channel: %s\n", metadata.ChannelName)
	fmt.Fprintf(&buf, "Duration: %s\n", metadata.DurationDisplay)
	fmt.Fprintf(&buf, "Thumbnail: %s\n", metadata.ThumbnailURL)
	if metadata.Description != "" {
		fmt.Fprintf(&buf, "Description: %s\n", metadata.Description)
	}

	return mcp.NewToolResultText(buf.String()), nil
}

// handleGenerateTitles implements the generate_title_variations tool
func (s *MCPServer) handleGenerateTitles(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	title, err := request.RequireString("title")
	if err != nil || strings.TrimSpace(title) == "" {
		return mcp.NewToolResultError("title parameter is required and must be a non-empty string"), nil
	}

	variations, err := s.app.TitleVariations(ctx, title)
	if err != nil {
		return s.toolError("title generation error", err), nil
	}

	return jsonResult(variations)
}

// handleLoadVideo implements the load_video tool
func (s *MCPServer) handleLoadVideo(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	url, err := request.RequireString("url")
	if err != nil {
		return mcp.NewToolResultError("url parameter is required and must be a string"), nil
	}

	report, err := s.app.LoadVideo(ctx, url)
	if err != nil {
		return s.toolError("load error", err), nil
	}

	return jsonResult(report)
}

func (s *MCPServer) toolError(prefix string, err error) *mcp.CallToolResult {
	s.logger.Info("Tool call failed",
		zap.String("tool_error", prefix),
		zap.Stringer("kind", KindOf(err)),
		zap.Error(err))
	return mcp.NewToolResultErrorFromErr(prefix, err)
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling result: %w", err)
	}
	return mcp.NewToolResultText(string(data)), nil
}

// Start serves MCP over the given transport. A positive metricsPort also
// serves Prometheus metrics until the transport ends or ctx is cancelled.
func (s *MCPServer) Start(ctx context.Context, transport string, port, metricsPort int) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, ctx := errgroup.WithContext(ctx)

	if metricsPort > 0 && s.metrics != nil {
		g.Go(func() error {
			return s.serveMetrics(ctx, metricsPort)
		})
	}

	g.Go(func() error {
		// The metrics listener lives only as long as the transport
		defer cancel()
		if transport == "http" {
			return s.serveHTTP(ctx, port)
		}
		return s.serveStdio(ctx)
	})

	return g.Wait()
}

func (s *MCPServer) serveStdio(ctx context.Context) error {
	s.logger.Info("Serving MCP on stdio")
	err := server.NewStdioServer(s.mcpServer).Listen(ctx, s.stdin, s.stdout)
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	s.logger.Info("MCP stdio session ended")
	return nil
}

func (s *MCPServer) serveHTTP(ctx context.Context, port int) error {
	httpServer := server.NewStreamableHTTPServer(s.mcpServer)
	addr := fmt.Sprintf(":%d", port)

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = httpServer.Shutdown(shutdownCtx)
	}()

	s.logger.Info("Serving MCP over HTTP", zap.String("addr", addr))
	if err := httpServer.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *MCPServer) serveMetrics(ctx context.Context, port int) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", s.metrics.Handler())

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info("Serving metrics", zap.String("addr", srv.Addr))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// GetServer returns the underlying MCP server for advanced configuration
func (s *MCPServer) GetServer() *server.MCPServer {
	return s.mcpServer
}
