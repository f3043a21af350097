package archive

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// DownloadAttachments stages every supported image attachment under its
// message's staging directory. Attachments without a download URL are
// skipped silently; non-image attachments are never downloaded. A
// network failure aborts the run: there is no partial-archive mode.
func (a *Archive) DownloadAttachments(ctx context.Context) error {
	for _, msg := range a.messages {
		var images []Attachment
		for _, att := range msg.Attachments {
			if att.IsImage() {
				images = append(images, att)
			}
		}
		if len(images) == 0 {
			continue
		}

		if err := os.MkdirAll(msg.StagingDir, 0o755); err != nil {
			return fmt.Errorf("failed to create staging directory: %w", err)
		}

		for _, att := range images {
			if att.DownloadURL == "" {
				continue
			}
			if err := a.downloadFile(ctx, att.DownloadURL, filepath.Join(msg.StagingDir, att.Filename)); err != nil {
				return err
			}
			a.logger.Debug("Staged attachment",
				zap.Int("message_id", msg.ID),
				zap.String("filename", att.Filename))
		}
	}
	return nil
}

func (a *Archive) downloadFile(ctx context.Context, url, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer file.Close()

	if err := a.api.GetFileContext(ctx, url, file); err != nil {
		return fmt.Errorf("failed to download %s: %w", filepath.Base(path), err)
	}
	return nil
}
