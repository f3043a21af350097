package archive

import (
	"regexp"
	"strings"
)

// User mention token: <@U123ABC>
var mentionPattern = regexp.MustCompile(`<@[a-zA-Z0-9]*>`)

// specialCharReplacer decodes characters that latin-1 output cannot
// represent into plain-ASCII equivalents.
var specialCharReplacer = strings.NewReplacer(
	"’", "'",
	"…", "...",
)

// normalizeText decodes special characters and, when possibleUserID is
// set, substitutes the first mention token with "@" plus the resolved
// display name (the raw identifier when unresolved). Only the first
// mention token per call is substituted; every occurrence of that same
// token is replaced.
func normalizeText(text string, members map[string]string, possibleUserID bool) string {
	text = specialCharReplacer.Replace(text)

	if !possibleUserID {
		return text
	}

	token := mentionPattern.FindString(text)
	if token == "" {
		return text
	}

	userID := token[2 : len(token)-1]
	name, ok := members[userID]
	if !ok {
		name = userID
	}
	return strings.ReplaceAll(text, token, "@"+name)
}
