package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	slackclient "github.com/virtualcourier/slackless/internal/slack"
)

// ToolHandler defines the interface for archive tool operations
type ToolHandler interface {
	ArchiveChannel(ctx context.Context, req *mcp.CallToolRequest, input ArchiveChannelInput) (*mcp.CallToolResult, ArchiveChannelOutput, error)
}

// errorWrappingHandler wraps a ToolHandler to provide enhanced error messages
type errorWrappingHandler struct {
	handler ToolHandler
	logger  *zap.Logger
}

func (h *errorWrappingHandler) ArchiveChannel(ctx context.Context, req *mcp.CallToolRequest, input ArchiveChannelInput) (*mcp.CallToolResult, ArchiveChannelOutput, error) {
	result, output, err := h.handler.ArchiveChannel(ctx, req, input)
	return result, output, slackclient.WrapError(h.logger, "archive_channel", err)
}

// CreateServer creates an MCP server with the archive tool registered
func CreateServer(logger *zap.Logger, handler ToolHandler) *mcp.Server {
	logger.Info("Starting MCP server")
	server := mcp.NewServer(
		&mcp.Implementation{
			Name:    "virtual-courier-archive",
			Version: "1.0.0",
		},
		nil,
	)

	// Wrap handler to provide enhanced error messages for auth failures
	wrappedHandler := &errorWrappingHandler{handler: handler, logger: logger}
	registerTools(server, wrappedHandler)
	logger.Info("Archive server initialized, starting transport")
	return server
}

// registerTools registers the archive tools with the MCP server
func registerTools(server *mcp.Server, handler ToolHandler) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "slack_archive_channel",
		Description: "Archive a Slack channel's full history to a CSV and a PDF document. Optionally uploads both artifacts back to the channel and keeps downloaded image attachments.",
	}, handler.ArchiveChannel)
}
