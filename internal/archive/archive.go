// Package archive implements the channel-history-to-document pipeline:
// it fetches a Slack channel's full history, resolves user identities,
// parses messages into one shared chronological model, and renders that
// model as a CSV and a paginated PDF document.
package archive

import (
	"context"
	"fmt"
	osuser "os/user"
	"path/filepath"
	"strings"
	"time"

	"github.com/slack-go/slack"
	"go.uber.org/zap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	slackclient "github.com/virtualcourier/slackless/internal/slack"
)

// Channel identifies the archived channel. Resolved once per run and
// immutable afterward.
type Channel struct {
	ID   string
	Name string
}

// Event carries the fields of an in-channel mention trigger.
type Event struct {
	Channel   string // channel identifier
	User      string // triggering user identifier
	Timestamp string // event epoch timestamp
}

// Config configures one archive run. Exactly one of ChannelName or
// Event must be set.
type Config struct {
	// ChannelName selects the channel by display name (direct mode).
	ChannelName string
	// Event selects the channel from a mention event (event mode).
	Event *Event
	// OutputRoot is the base directory for the "<Channel Title> Archive"
	// output folder. Defaults to the current directory.
	OutputRoot string
	// Logger receives structured diagnostics. Defaults to a no-op logger.
	Logger *zap.Logger
}

// Archive holds one run's state: the resolved channel, identity map and
// ordered message sequence. Rendering and downloading mutate only
// derived filesystem artifacts, never the message sequence.
type Archive struct {
	api    slackclient.SlackAPI
	logger *zap.Logger

	channel    Channel
	outputDir  string
	exportedBy string
	exportedAt string

	rawHistory     []slack.Message
	members        map[string]string
	lookupFailures []IdentityLookupError
	messages       []Message

	csvPath  string
	pdfPath  string
	jsonPath string
}

var titleCaser = cases.Title(language.English)

// New constructs an archive run: resolves the channel, fetches the
// complete history, builds the identity map and parses every message.
// The returned archive is ready for downloading and rendering.
func New(ctx context.Context, api slackclient.SlackAPI, cfg Config) (*Archive, error) {
	if cfg.ChannelName == "" && cfg.Event == nil {
		return nil, &ConfigurationError{Reason: "either a channel name or an event is required"}
	}
	if cfg.ChannelName != "" && cfg.Event != nil {
		return nil, &ConfigurationError{Reason: "channel name and event are mutually exclusive"}
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	a := &Archive{api: api, logger: logger}

	if err := a.resolveChannel(ctx, cfg); err != nil {
		return nil, err
	}

	root := cfg.OutputRoot
	if root == "" {
		root = "."
	}
	a.outputDir = filepath.Join(root, titleCaser.String(a.channel.Name)+" Archive")

	raw, err := a.fetchHistory(ctx, a.channel.ID)
	if err != nil {
		return nil, err
	}
	a.rawHistory = raw
	logger.Info("Fetched channel history",
		zap.String("channel_id", a.channel.ID),
		zap.Int("message_count", len(raw)))

	a.resolveIdentities(ctx, raw)

	a.setExporter(cfg.Event)

	if err := a.parseMessages(); err != nil {
		return nil, err
	}

	return a, nil
}

// resolveChannel maps the run's trigger to a channel ID and display
// name. Event mode looks the channel up by ID; direct mode searches the
// public and private conversation lists by name.
func (a *Archive) resolveChannel(ctx context.Context, cfg Config) error {
	if cfg.Event != nil {
		ch, err := a.api.GetConversationInfoContext(ctx, &slack.GetConversationInfoInput{
			ChannelID: cfg.Event.Channel,
		})
		if err != nil {
			return &ResolutionError{Channel: cfg.Event.Channel, Err: err}
		}
		a.channel = Channel{ID: ch.ID, Name: ch.Name}
		return nil
	}

	want := strings.ToLower(cfg.ChannelName)
	for _, types := range [][]string{{"public_channel"}, {"private_channel"}} {
		cursor := ""
		for {
			channels, next, err := a.api.GetConversationsContext(ctx, &slack.GetConversationsParameters{
				Types:           types,
				Cursor:          cursor,
				ExcludeArchived: false,
			})
			if err != nil {
				return &ResolutionError{Channel: cfg.ChannelName, Err: err}
			}
			for _, ch := range channels {
				if strings.ToLower(ch.Name) == want {
					a.channel = Channel{ID: ch.ID, Name: ch.Name}
					return nil
				}
			}
			if next == "" {
				break
			}
			cursor = next
		}
	}
	return &ResolutionError{Channel: cfg.ChannelName}
}

// setExporter records who triggered the run and when, for the document
// title block. Event mode uses the mentioning user and event timestamp;
// direct mode uses the OS login name and the wall clock.
func (a *Archive) setExporter(event *Event) {
	if event != nil {
		if name, ok := a.members[event.User]; ok {
			a.exportedBy = name
		} else {
			a.exportedBy = event.User
		}
		a.exportedAt = epochToTime(event.Timestamp).Format(displayTimeLayout)
		return
	}

	if current, err := osuser.Current(); err == nil {
		a.exportedBy = current.Username
	} else {
		a.exportedBy = "unknown"
	}
	a.exportedAt = time.Now().Format(displayTimeLayout)
}

// parseMessages reverses the newest-first raw history and numbers the
// parsed messages 1..N oldest-first, so id order equals chronological
// order.
func (a *Archive) parseMessages() error {
	a.messages = make([]Message, 0, len(a.rawHistory))
	for i := len(a.rawHistory) - 1; i >= 0; i-- {
		id := len(a.rawHistory) - i
		msg, err := a.parseMessage(a.rawHistory[i], id)
		if err != nil {
			return err
		}
		a.messages = append(a.messages, msg)
	}
	return nil
}

// Channel returns the resolved channel.
func (a *Archive) Channel() Channel { return a.channel }

// Messages returns the parsed message sequence in chronological order.
func (a *Archive) Messages() []Message { return a.messages }

// OutputDir returns the run's output directory.
func (a *Archive) OutputDir() string { return a.outputDir }

// artifactName joins the output directory with "<channel name>.<ext>".
func (a *Archive) artifactName(ext string) string {
	return filepath.Join(a.outputDir, fmt.Sprintf("%s.%s", a.channel.Name, ext))
}
