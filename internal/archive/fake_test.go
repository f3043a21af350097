package archive

import (
	"context"
	"errors"
	"io"

	"github.com/slack-go/slack"
)

// fakeSlackAPI implements the slackclient.SlackAPI surface with
// overridable function fields. Unset calls fail loudly.
type fakeSlackAPI struct {
	conversations    func(params *slack.GetConversationsParameters) ([]slack.Channel, string, error)
	conversationInfo func(input *slack.GetConversationInfoInput) (*slack.Channel, error)
	history          func(params *slack.GetConversationHistoryParameters) (*slack.GetConversationHistoryResponse, error)
	userInfo         func(user string) (*slack.User, error)
	getFile          func(downloadURL string, writer io.Writer) error
	upload           func(params slack.UploadFileV2Parameters) (*slack.FileSummary, error)
	postMessage      func(channelID string, options ...slack.MsgOption) (string, string, error)
}

var errFakeUnset = errors.New("fake call not configured")

func (f *fakeSlackAPI) GetConversationsContext(_ context.Context, params *slack.GetConversationsParameters) ([]slack.Channel, string, error) {
	if f.conversations == nil {
		return nil, "", errFakeUnset
	}
	return f.conversations(params)
}

func (f *fakeSlackAPI) GetConversationInfoContext(_ context.Context, input *slack.GetConversationInfoInput) (*slack.Channel, error) {
	if f.conversationInfo == nil {
		return nil, errFakeUnset
	}
	return f.conversationInfo(input)
}

func (f *fakeSlackAPI) GetConversationHistoryContext(_ context.Context, params *slack.GetConversationHistoryParameters) (*slack.GetConversationHistoryResponse, error) {
	if f.history == nil {
		return nil, errFakeUnset
	}
	return f.history(params)
}

func (f *fakeSlackAPI) GetUserInfoContext(_ context.Context, user string) (*slack.User, error) {
	if f.userInfo == nil {
		return nil, errFakeUnset
	}
	return f.userInfo(user)
}

func (f *fakeSlackAPI) GetFileContext(_ context.Context, downloadURL string, writer io.Writer) error {
	if f.getFile == nil {
		return errFakeUnset
	}
	return f.getFile(downloadURL, writer)
}

func (f *fakeSlackAPI) UploadFileV2Context(_ context.Context, params slack.UploadFileV2Parameters) (*slack.FileSummary, error) {
	if f.upload == nil {
		return nil, errFakeUnset
	}
	return f.upload(params)
}

func (f *fakeSlackAPI) PostMessageContext(_ context.Context, channelID string, options ...slack.MsgOption) (string, string, error) {
	if f.postMessage == nil {
		return "", "", errFakeUnset
	}
	return f.postMessage(channelID, options...)
}

// singleChannel returns a conversations handler serving one channel.
func singleChannel(id, name string) func(params *slack.GetConversationsParameters) ([]slack.Channel, string, error) {
	return func(params *slack.GetConversationsParameters) ([]slack.Channel, string, error) {
		return []slack.Channel{newChannel(id, name)}, "", nil
	}
}

func newChannel(id, name string) slack.Channel {
	return slack.Channel{
		GroupConversation: slack.GroupConversation{
			Conversation: slack.Conversation{ID: id},
			Name:         name,
		},
	}
}

// pagedHistory returns a history handler serving the given pages in
// order, chaining continuation cursors between them.
func pagedHistory(pages ...[]slack.Message) func(params *slack.GetConversationHistoryParameters) (*slack.GetConversationHistoryResponse, error) {
	cursors := make(map[string]int)
	for i := 1; i < len(pages); i++ {
		cursors[pageCursor(i)] = i
	}
	return func(params *slack.GetConversationHistoryParameters) (*slack.GetConversationHistoryResponse, error) {
		idx := 0
		if params.Cursor != "" {
			i, ok := cursors[params.Cursor]
			if !ok {
				return nil, errors.New("unknown cursor " + params.Cursor)
			}
			idx = i
		}
		resp := &slack.GetConversationHistoryResponse{Messages: pages[idx]}
		if idx < len(pages)-1 {
			resp.HasMore = true
			resp.ResponseMetaData.NextCursor = pageCursor(idx + 1)
		}
		return resp, nil
	}
}

func pageCursor(i int) string {
	return "cursor-" + string(rune('0'+i))
}

// userDirectory returns a userInfo handler backed by a fixed set of
// profiles.
func userDirectory(users map[string]*slack.User) func(user string) (*slack.User, error) {
	return func(user string) (*slack.User, error) {
		u, ok := users[user]
		if !ok {
			return nil, errors.New("user_not_found")
		}
		return u, nil
	}
}

func newUser(id, shortName, realName string) *slack.User {
	return &slack.User{
		ID:   id,
		Name: shortName,
		Profile: slack.UserProfile{
			RealName: realName,
		},
	}
}

func rawMessage(ts, user, text string) slack.Message {
	return slack.Message{Msg: slack.Msg{
		Type:      "message",
		Timestamp: ts,
		User:      user,
		Text:      text,
	}}
}
