package archive

import (
	"context"

	"github.com/slack-go/slack"
	"go.uber.org/zap"
)

// deactivatedPlaceholder is the literal real_name Slack reports for
// deactivated accounts; the short account name is used instead.
const deactivatedPlaceholder = "Deactivated User"

// resolveIdentities builds the identifier-to-display-name map covering
// every distinct non-empty user identifier in the raw history. Each
// profile is looked up once. A failed lookup is non-fatal: the raw
// identifier stands in and the failure is recorded for diagnostics.
func (a *Archive) resolveIdentities(ctx context.Context, rawHistory []slack.Message) {
	var userIDs []string
	seen := make(map[string]bool)
	for _, msg := range rawHistory {
		if msg.User != "" && !seen[msg.User] {
			seen[msg.User] = true
			userIDs = append(userIDs, msg.User)
		}
	}

	a.members = make(map[string]string, len(userIDs))
	for _, userID := range userIDs {
		user, err := a.api.GetUserInfoContext(ctx, userID)
		if err != nil {
			a.logger.Warn("Failed to resolve user profile, falling back to raw identifier",
				zap.String("user_id", userID),
				zap.Error(err))
			a.lookupFailures = append(a.lookupFailures, IdentityLookupError{UserID: userID, Err: err})
			a.members[userID] = userID
			continue
		}
		a.members[userID] = displayName(user)
	}
}

// displayName applies the resolution policy: the profile's real name
// unless it is missing or the deactivated-account placeholder, in which
// case the short account name is used.
func displayName(user *slack.User) string {
	name := user.Profile.RealName
	if name == "" || name == deactivatedPlaceholder {
		return user.Name
	}
	return name
}

// LookupFailures returns the non-fatal identity resolution failures
// recorded during construction.
func (a *Archive) LookupFailures() []IdentityLookupError {
	return a.lookupFailures
}
