package archive

import (
	"errors"
	"testing"

	"github.com/slack-go/slack"
)

func TestUniqueFilename(t *testing.T) {
	tests := []struct {
		name string
		in   string
		used []string
		want string
	}{
		{
			name: "no collision",
			in:   "a.png",
			used: nil,
			want: "a.png",
		},
		{
			name: "first collision",
			in:   "a.png",
			used: []string{"a.png"},
			want: "a (1).png",
		},
		{
			name: "skips counters already taken",
			in:   "a.png",
			used: []string{"a.png", "a (1).png"},
			want: "a (2).png",
		},
		{
			name: "no extension",
			in:   "README",
			used: []string{"README"},
			want: "README (1)",
		},
		{
			name: "dotted stem keeps only the final extension",
			in:   "report.v1.pdf",
			used: []string{"report.v1.pdf"},
			want: "report.v1 (1).pdf",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := uniqueFilename(tt.in, tt.used)
			if got != tt.want {
				t.Errorf("uniqueFilename(%q, %v) = %q, want %q", tt.in, tt.used, got, tt.want)
			}
		})
	}
}

func TestAttachmentIsImage(t *testing.T) {
	tests := []struct {
		filename string
		want     bool
	}{
		{"photo.png", true},
		{"photo.JPG", true},
		{"anim.gif", true},
		{"pic.jpeg", true},
		{"notes.pdf", false},
		{"archive.tar.gz", false},
		{"noext", false},
	}

	for _, tt := range tests {
		got := Attachment{Filename: tt.filename}.IsImage()
		if got != tt.want {
			t.Errorf("IsImage(%q) = %v, want %v", tt.filename, got, tt.want)
		}
	}
}

func TestParseMessage_Timestamps(t *testing.T) {
	a := &Archive{members: map[string]string{"U1": "Alice"}, outputDir: "/tmp/out"}

	// 2021-01-01 00:00:00 UTC
	msg, err := a.parseMessage(rawMessage("1609459200.000100", "U1", "happy new year"), 1)
	if err != nil {
		t.Fatalf("parseMessage failed: %v", err)
	}

	if msg.DisplayTime != "01/01/2021 at 12:00 AM" {
		t.Errorf("DisplayTime = %q, want %q", msg.DisplayTime, "01/01/2021 at 12:00 AM")
	}
	if msg.SortTime != "2021-01-01 12:00AM" {
		t.Errorf("SortTime = %q, want %q", msg.SortTime, "2021-01-01 12:00AM")
	}
	if msg.Sender != "Alice" {
		t.Errorf("Sender = %q, want %q", msg.Sender, "Alice")
	}
}

func TestParseMessage_AttachmentDedup(t *testing.T) {
	a := &Archive{members: map[string]string{}, outputDir: "/tmp/out"}

	raw := rawMessage("1609459200.000100", "U1", "")
	raw.Files = []slack.File{
		{Name: "a.png", URLPrivate: "https://files/a1", URLPrivateDownload: "https://files/a1/download"},
		{Name: "a.png", URLPrivate: "https://files/a2", URLPrivateDownload: "https://files/a2/download"},
		{Name: "", URLPrivate: "https://files/b"},
	}

	msg, err := a.parseMessage(raw, 7)
	if err != nil {
		t.Fatalf("parseMessage failed: %v", err)
	}

	if len(msg.Attachments) != 3 {
		t.Fatalf("attachment count = %d, want 3", len(msg.Attachments))
	}
	wantNames := []string{"a.png", "a (1).png", "Unknown"}
	for i, want := range wantNames {
		if msg.Attachments[i].Filename != want {
			t.Errorf("attachment %d filename = %q, want %q", i, msg.Attachments[i].Filename, want)
		}
	}
	if msg.StagingDir != "/tmp/out/message_7" {
		t.Errorf("StagingDir = %q, want %q", msg.StagingDir, "/tmp/out/message_7")
	}
}

func TestResolveSender_Priority(t *testing.T) {
	a := &Archive{members: map[string]string{"U1": "Alice"}}

	tests := []struct {
		name string
		msg  slack.Message
		want string
	}{
		{
			name: "bot username beats identity map",
			msg:  slack.Message{Msg: slack.Msg{Username: "deploybot", User: "U1", SubType: "bot_message"}},
			want: "deploybot",
		},
		{
			name: "identity map entry",
			msg:  slack.Message{Msg: slack.Msg{User: "U1"}},
			want: "Alice",
		},
		{
			name: "unmapped user falls back to raw identifier",
			msg:  slack.Message{Msg: slack.Msg{User: "U404"}},
			want: "U404",
		},
		{
			name: "channel join without user gets the system name",
			msg:  slack.Message{Msg: slack.Msg{SubType: "channel_join"}},
			want: "Slackbot",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := a.resolveSender(tt.msg)
			if err != nil {
				t.Fatalf("resolveSender failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("resolveSender = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestResolveSender_NoSenderIsDataIntegrityError(t *testing.T) {
	a := &Archive{members: map[string]string{}}

	_, err := a.resolveSender(slack.Message{Msg: slack.Msg{Type: "message", Timestamp: "123.456"}})
	if err == nil {
		t.Fatal("expected an error for a message with no sender")
	}

	var integrityErr *DataIntegrityError
	if !errors.As(err, &integrityErr) {
		t.Fatalf("error type = %T, want *DataIntegrityError", err)
	}
	if integrityErr.Raw == "" {
		t.Error("expected the offending raw record to be captured")
	}
}
