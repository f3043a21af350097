// Package listener runs the long-lived socket-mode process that archives
// a channel whenever the app is mentioned in it.
package listener

import (
	"context"

	"github.com/slack-go/slack"
	"github.com/slack-go/slack/slackevents"
	"github.com/slack-go/slack/socketmode"
	"go.uber.org/zap"

	"github.com/virtualcourier/slackless/internal/archive"
	slackclient "github.com/virtualcourier/slackless/internal/slack"
)

// ackMessage is posted to the channel as soon as a mention is received,
// before the pipeline starts.
const ackMessage = "Working on it! I'll send a CSV and PDF in a few minutes."

// Config holds configuration for the mention listener.
type Config struct {
	OutputRoot string // base directory for per-run output folders
}

// Listener reacts to app_mention events by running the full archive
// pipeline against the mentioning channel. Runs are independent; each
// owns its own archive state and output directory.
type Listener struct {
	client *slackclient.Client
	api    slackclient.SlackAPI
	cfg    Config
	logger *zap.Logger
}

func New(client *slackclient.Client, cfg Config, logger *zap.Logger) *Listener {
	return &Listener{
		client: client,
		api:    client,
		cfg:    cfg,
		logger: logger,
	}
}

// Run connects over socket mode and dispatches mention events until the
// context is cancelled.
func (l *Listener) Run(ctx context.Context) error {
	sock, err := l.client.SocketMode()
	if err != nil {
		return err
	}

	go l.dispatch(ctx, sock)

	l.logger.Info("Listening for app mentions")
	return sock.RunContext(ctx)
}

func (l *Listener) dispatch(ctx context.Context, sock *socketmode.Client) {
	for {
		select {
		case <-ctx.Done():
			return
		case evt, ok := <-sock.Events:
			if !ok {
				return
			}
			switch evt.Type {
			case socketmode.EventTypeConnected:
				l.logger.Info("Connected to Slack over socket mode")
			case socketmode.EventTypeConnectionError:
				l.logger.Warn("Socket mode connection error, retrying")
			case socketmode.EventTypeEventsAPI:
				apiEvent, valid := evt.Data.(slackevents.EventsAPIEvent)
				if !valid {
					continue
				}
				if evt.Request != nil {
					sock.Ack(*evt.Request)
				}
				if mention, isMention := apiEvent.InnerEvent.Data.(*slackevents.AppMentionEvent); isMention {
					go l.handleMention(ctx, mention)
				}
			}
		}
	}
}

// handleMention acknowledges the mention in-channel, then runs the full
// pipeline: fetch/parse, download, render both artifacts, publish them,
// clean up staged files. Fatal errors are logged; only publish failures
// notify the channel (from inside Publish).
func (l *Listener) handleMention(ctx context.Context, mention *slackevents.AppMentionEvent) {
	logger := l.logger.With(zap.String("channel_id", mention.Channel))
	logger.Info("Mentioned, starting archive run")

	if _, _, err := l.api.PostMessageContext(ctx, mention.Channel,
		slack.MsgOptionText(ackMessage, false)); err != nil {
		logger.Error("Failed to post acknowledgement", zap.Error(err))
		return
	}

	arch, err := archive.New(ctx, l.api, archive.Config{
		Event: &archive.Event{
			Channel:   mention.Channel,
			User:      mention.User,
			Timestamp: mention.TimeStamp,
		},
		OutputRoot: l.cfg.OutputRoot,
		Logger:     logger,
	})
	if err != nil {
		logger.Error("Archive construction failed", zap.Error(err))
		return
	}

	if err := l.runPipeline(ctx, arch); err != nil {
		logger.Error("Archive run failed", zap.Error(err))
		return
	}
	logger.Info("Archive run complete", zap.Int("message_count", len(arch.Messages())))
}

func (l *Listener) runPipeline(ctx context.Context, arch *archive.Archive) error {
	if err := arch.DownloadAttachments(ctx); err != nil {
		return err
	}
	if _, err := arch.WriteCSV(); err != nil {
		return err
	}
	if _, err := arch.WritePDF(); err != nil {
		return err
	}
	if err := arch.Publish(ctx, archive.KindCSV); err != nil {
		return err
	}
	if err := arch.Publish(ctx, archive.KindPDF); err != nil {
		return err
	}
	return arch.Cleanup()
}
