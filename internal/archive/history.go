package archive

import (
	"context"

	"github.com/slack-go/slack"
)

const historyPageSize = 200

// fetchHistory retrieves the complete raw history for a channel,
// following continuation cursors until a page reports no more. Messages
// accumulate in arrival order (newest first, as Slack delivers them).
// Any page failure aborts the whole fetch.
func (a *Archive) fetchHistory(ctx context.Context, channelID string) ([]slack.Message, error) {
	var messages []slack.Message
	cursor := ""

	for {
		select {
		case <-ctx.Done():
			return nil, &FetchError{ChannelID: channelID, Err: ctx.Err()}
		default:
		}

		history, err := a.api.GetConversationHistoryContext(ctx, &slack.GetConversationHistoryParameters{
			ChannelID: channelID,
			Cursor:    cursor,
			Limit:     historyPageSize,
		})
		if err != nil {
			return nil, &FetchError{ChannelID: channelID, Err: err}
		}

		messages = append(messages, history.Messages...)

		if !history.HasMore || history.ResponseMetaData.NextCursor == "" {
			return messages, nil
		}
		cursor = history.ResponseMetaData.NextCursor
	}
}
