package archive

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/slack-go/slack"
)

const (
	// systemSenderName labels channel-join records that carry no other
	// resolvable sender.
	systemSenderName = "Slackbot"

	displayTimeLayout  = "01/02/2006 at 03:04 PM"
	sortableTimeLayout = "2006-01-02 03:04PM"
)

// imageExtensions are the attachment types the downloader stages and the
// document renderer embeds. Everything else is referenced by URL only.
var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
}

// Attachment is a file owned by exactly one message. Filename is unique
// within the owning message.
type Attachment struct {
	Filename    string `json:"filename"`
	DownloadURL string `json:"url_download,omitempty"`
	URL         string `json:"url,omitempty"`
}

// IsImage reports whether the attachment has a supported image extension.
func (a Attachment) IsImage() bool {
	return imageExtensions[strings.ToLower(filepath.Ext(a.Filename))]
}

// Message is one parsed channel history record. IDs are 1-based and
// assigned oldest-first, so ID order equals chronological order.
type Message struct {
	ID          int          `json:"message_id"`
	Type        string       `json:"type"`
	SubType     string       `json:"subtype,omitempty"`
	Sender      string       `json:"user"`
	Text        string       `json:"text"`
	Attachments []Attachment `json:"files,omitempty"`
	StagingDir  string       `json:"file_dir"`
	DisplayTime string       `json:"timestamp_display"`
	SortTime    string       `json:"timestamp"`
}

// uniqueFilename returns name made distinct from the used set by
// appending " (n)" before the extension for increasing n.
func uniqueFilename(name string, used []string) string {
	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)

	taken := func(candidate string) bool {
		for _, u := range used {
			if u == candidate {
				return true
			}
		}
		return false
	}

	candidate := stem
	for counter := 1; taken(candidate + ext); counter++ {
		candidate = fmt.Sprintf("%s (%d)", stem, counter)
	}
	return candidate + ext
}

// epochToTime converts a Slack epoch timestamp ("1234567890.123456") to
// a time.Time. Malformed timestamps collapse to the epoch.
func epochToTime(ts string) time.Time {
	seconds, err := strconv.ParseFloat(ts, 64)
	if err != nil {
		return time.Unix(0, 0).UTC()
	}
	return time.Unix(int64(seconds), 0).UTC()
}

// parseMessage transforms one raw history record into a Message with the
// given 1-based id. The caller is responsible for reversing newest-first
// history before assigning ids.
func (a *Archive) parseMessage(raw slack.Message, id int) (Message, error) {
	var files []Attachment
	for _, f := range raw.Files {
		name := f.Name
		if name == "" {
			name = "Unknown"
		}
		used := make([]string, len(files))
		for i, existing := range files {
			used[i] = existing.Filename
		}
		files = append(files, Attachment{
			Filename:    uniqueFilename(name, used),
			DownloadURL: f.URLPrivateDownload,
			URL:         f.URLPrivate,
		})
	}

	sender, err := a.resolveSender(raw)
	if err != nil {
		return Message{}, err
	}

	ts := epochToTime(raw.Timestamp)

	return Message{
		ID:          id,
		Type:        raw.Type,
		SubType:     raw.SubType,
		Sender:      sender,
		Text:        normalizeText(raw.Text, a.members, true),
		Attachments: files,
		StagingDir:  filepath.Join(a.outputDir, fmt.Sprintf("message_%d", id)),
		DisplayTime: ts.Format(displayTimeLayout),
		SortTime:    ts.Format(sortableTimeLayout),
	}, nil
}

// resolveSender applies the sender priority rule: explicit bot username,
// then the identity map entry, then the raw identifier, then the fixed
// system name for channel-join records. A record with none of these is a
// data-integrity failure.
func (a *Archive) resolveSender(raw slack.Message) (string, error) {
	if raw.Username != "" {
		return raw.Username, nil
	}
	if raw.User != "" {
		if name, ok := a.members[raw.User]; ok {
			return name, nil
		}
		return raw.User, nil
	}
	if raw.SubType == "channel_join" {
		return systemSenderName, nil
	}

	record, err := json.Marshal(raw)
	if err != nil {
		record = []byte(fmt.Sprintf("ts=%s type=%s subtype=%s", raw.Timestamp, raw.Type, raw.SubType))
	}
	return "", &DataIntegrityError{Raw: string(record)}
}
