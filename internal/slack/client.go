package slack

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/slack-go/slack"
	"github.com/slack-go/slack/socketmode"
	"go.uber.org/zap"
)

// SlackAPI defines the Slack API methods the archiver depends on. It is
// satisfied by both *slack.Client and *Client, so the core can be driven
// by a bare vendor client in tests and by the retrying wrapper in
// production.
type SlackAPI interface {
	GetConversationsContext(ctx context.Context, params *slack.GetConversationsParameters) ([]slack.Channel, string, error)
	GetConversationInfoContext(ctx context.Context, input *slack.GetConversationInfoInput) (*slack.Channel, error)
	GetConversationHistoryContext(ctx context.Context, params *slack.GetConversationHistoryParameters) (*slack.GetConversationHistoryResponse, error)
	GetUserInfoContext(ctx context.Context, user string) (*slack.User, error)
	GetFileContext(ctx context.Context, downloadURL string, writer io.Writer) error
	UploadFileV2Context(ctx context.Context, params slack.UploadFileV2Parameters) (*slack.FileSummary, error)
	PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error)
}

// Config holds configuration for the Slack client
type Config struct {
	Token    string // Slack bot token (required)
	AppToken string // app-level token for socket mode (optional)
	Cookie   string // Slack cookie for xoxc token auth (optional)
}

// Client wraps the Slack API with rate-limit retries. It implements
// SlackAPI itself so the archive core never sees the retry machinery.
type Client struct {
	api    SlackAPI
	raw    *slack.Client
	logger *zap.Logger
}

func NewClient(cfg Config, logger *zap.Logger) (*Client, error) {
	if cfg.Token == "" {
		return nil, fmt.Errorf("slack token is required")
	}

	opts := []slack.Option{}

	if cfg.Cookie != "" {
		logger.Info("Using cookie authentication for Slack client")
		httpClient := &http.Client{
			Transport: newCookieTransport(cfg.Cookie),
		}
		opts = append(opts, slack.OptionHTTPClient(httpClient))
	}

	if cfg.AppToken != "" {
		opts = append(opts, slack.OptionAppLevelToken(cfg.AppToken))
	}

	api := slack.New(cfg.Token, opts...)

	return &Client{
		api:    api,
		raw:    api,
		logger: logger,
	}, nil
}

// newClientWithAPI creates a client with a given SlackAPI (for testing)
func newClientWithAPI(api SlackAPI, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		api:    api,
		logger: logger,
	}
}

// SocketMode returns a socket-mode client over the underlying connection.
// Requires an app-level token in the Config.
func (c *Client) SocketMode() (*socketmode.Client, error) {
	if c.raw == nil {
		return nil, fmt.Errorf("socket mode requires a real Slack connection")
	}
	return socketmode.New(c.raw), nil
}

func (c *Client) GetConversationsContext(ctx context.Context, params *slack.GetConversationsParameters) ([]slack.Channel, string, error) {
	var channels []slack.Channel
	var cursor string
	err := withRetry(ctx, c.logger, func() error {
		var e error
		channels, cursor, e = c.api.GetConversationsContext(ctx, params)
		return e
	})
	return channels, cursor, err
}

func (c *Client) GetConversationInfoContext(ctx context.Context, input *slack.GetConversationInfoInput) (*slack.Channel, error) {
	var ch *slack.Channel
	err := withRetry(ctx, c.logger, func() error {
		var e error
		ch, e = c.api.GetConversationInfoContext(ctx, input)
		return e
	})
	return ch, err
}

func (c *Client) GetConversationHistoryContext(ctx context.Context, params *slack.GetConversationHistoryParameters) (*slack.GetConversationHistoryResponse, error) {
	var history *slack.GetConversationHistoryResponse
	err := withRetry(ctx, c.logger, func() error {
		var e error
		history, e = c.api.GetConversationHistoryContext(ctx, params)
		return e
	})
	return history, err
}

func (c *Client) GetUserInfoContext(ctx context.Context, user string) (*slack.User, error) {
	var u *slack.User
	err := withRetry(ctx, c.logger, func() error {
		var e error
		u, e = c.api.GetUserInfoContext(ctx, user)
		return e
	})
	return u, err
}

func (c *Client) GetFileContext(ctx context.Context, downloadURL string, writer io.Writer) error {
	return withRetry(ctx, c.logger, func() error {
		return c.api.GetFileContext(ctx, downloadURL, writer)
	})
}

func (c *Client) UploadFileV2Context(ctx context.Context, params slack.UploadFileV2Parameters) (*slack.FileSummary, error) {
	var summary *slack.FileSummary
	err := withRetry(ctx, c.logger, func() error {
		var e error
		summary, e = c.api.UploadFileV2Context(ctx, params)
		return e
	})
	return summary, err
}

func (c *Client) PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error) {
	var channel, ts string
	err := withRetry(ctx, c.logger, func() error {
		var e error
		channel, ts, e = c.api.PostMessageContext(ctx, channelID, options...)
		return e
	})
	return channel, ts, err
}
