package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"github.com/virtualcourier/slackless/internal/archive"
	slackclient "github.com/virtualcourier/slackless/internal/slack"
)

// ArchiveChannelInput defines input for archiving a channel
type ArchiveChannelInput struct {
	Channel    string `json:"channel" jsonschema:"Channel display name (e.g. general)"`
	OutputDir  string `json:"output_dir,omitempty" jsonschema:"Base directory for the output folder (default: current directory)"`
	Post       bool   `json:"post,omitempty" jsonschema:"Upload the CSV and PDF back to the channel"`
	Keep       bool   `json:"keep,omitempty" jsonschema:"Keep downloaded image attachments instead of cleaning them up"`
	IncludeRaw bool   `json:"include_raw,omitempty" jsonschema:"Also write the raw unparsed history as JSON"`
}

// ArchiveChannelOutput reports the run's artifacts
type ArchiveChannelOutput struct {
	ChannelID    string `json:"channel_id"`
	ChannelName  string `json:"channel_name"`
	MessageCount int    `json:"message_count"`
	CSVPath      string `json:"csv_path"`
	PDFPath      string `json:"pdf_path"`
	JSONPath     string `json:"json_path,omitempty"`
}

// Archiver runs the archive pipeline on behalf of MCP tool calls.
type Archiver struct {
	api        slackclient.SlackAPI
	logger     *zap.Logger
	outputRoot string
}

func NewArchiver(api slackclient.SlackAPI, outputRoot string, logger *zap.Logger) *Archiver {
	return &Archiver{
		api:        api,
		logger:     logger,
		outputRoot: outputRoot,
	}
}

// ArchiveChannel archives a channel's history to CSV and PDF, optionally
// posting both artifacts back to the channel.
func (h *Archiver) ArchiveChannel(ctx context.Context, req *mcp.CallToolRequest, input ArchiveChannelInput) (*mcp.CallToolResult, ArchiveChannelOutput, error) {
	root := input.OutputDir
	if root == "" {
		root = h.outputRoot
	}

	arch, err := archive.New(ctx, h.api, archive.Config{
		ChannelName: input.Channel,
		OutputRoot:  root,
		Logger:      h.logger,
	})
	if err != nil {
		return nil, ArchiveChannelOutput{}, err
	}

	output := ArchiveChannelOutput{
		ChannelID:    arch.Channel().ID,
		ChannelName:  arch.Channel().Name,
		MessageCount: len(arch.Messages()),
	}

	if err := arch.DownloadAttachments(ctx); err != nil {
		return nil, ArchiveChannelOutput{}, err
	}

	if input.IncludeRaw {
		jsonPath, err := arch.WriteRawJSON()
		if err != nil {
			return nil, ArchiveChannelOutput{}, err
		}
		output.JSONPath = jsonPath
	}

	csvPath, err := arch.WriteCSV()
	if err != nil {
		return nil, ArchiveChannelOutput{}, err
	}
	output.CSVPath = csvPath

	pdfPath, err := arch.WritePDF()
	if err != nil {
		return nil, ArchiveChannelOutput{}, err
	}
	output.PDFPath = pdfPath

	if input.Post {
		if err := arch.Publish(ctx, archive.KindCSV); err != nil {
			return nil, ArchiveChannelOutput{}, err
		}
		if err := arch.Publish(ctx, archive.KindPDF); err != nil {
			return nil, ArchiveChannelOutput{}, err
		}
	}

	if !input.Keep {
		if err := arch.Cleanup(); err != nil {
			return nil, ArchiveChannelOutput{}, err
		}
	}

	return nil, output, nil
}
