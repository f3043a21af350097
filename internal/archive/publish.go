package archive

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/slack-go/slack"
	"go.uber.org/zap"
)

// ArtifactKind names a rendered output format.
type ArtifactKind string

const (
	KindCSV ArtifactKind = "csv"
	KindPDF ArtifactKind = "pdf"
)

// supportEscalationMessage is posted to the channel when an upload
// fails. The one place the pipeline proactively notifies end users.
const supportEscalationMessage = "An error occurred while uploading the file to this channel. Contact <@U03F805UUDC> for support."

// Publish uploads a rendered artifact back to the channel with the
// title "<channel name> <kind>". On an upload failure it posts the
// fixed support-escalation message before returning a PublishError;
// the rendered file stays on disk.
func (a *Archive) Publish(ctx context.Context, kind ArtifactKind) error {
	var path string
	switch kind {
	case KindCSV:
		path = a.csvPath
	case KindPDF:
		path = a.pdfPath
	default:
		return fmt.Errorf("artifact kind must be %q or %q", KindCSV, KindPDF)
	}
	if path == "" {
		return fmt.Errorf("no rendered %s artifact to publish", kind)
	}

	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("failed to stat %s artifact: %w", kind, err)
	}

	_, err = a.api.UploadFileV2Context(ctx, slack.UploadFileV2Parameters{
		File:     path,
		FileSize: int(info.Size()),
		Filename: filepath.Base(path),
		Title:    fmt.Sprintf("%s %s", a.channel.Name, kind),
		Channel:  a.channel.ID,
	})
	if err != nil {
		a.logger.Error("Artifact upload failed, notifying channel",
			zap.String("kind", string(kind)),
			zap.Error(err))
		if _, _, postErr := a.api.PostMessageContext(ctx, a.channel.ID,
			slack.MsgOptionText(supportEscalationMessage, false)); postErr != nil {
			a.logger.Error("Failed to post escalation message", zap.Error(postErr))
		}
		return &PublishError{Kind: kind, Err: err}
	}

	a.logger.Info("Published artifact",
		zap.String("kind", string(kind)),
		zap.String("channel_id", a.channel.ID))
	return nil
}
