package archive

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/slack-go/slack"
)

// rawHistoryDump is the shape of the optional raw-history JSON file:
// every fetched page concatenated, with pagination state collapsed.
type rawHistoryDump struct {
	Ok       bool            `json:"ok"`
	Messages []slack.Message `json:"messages"`
	HasMore  bool            `json:"has_more"`
}

// WriteRawJSON persists the raw unparsed history as
// "<channel name>.json" in the output directory.
func (a *Archive) WriteRawJSON() (string, error) {
	if err := os.MkdirAll(a.outputDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}
	path := a.artifactName("json")

	data, err := json.MarshalIndent(rawHistoryDump{
		Ok:       true,
		Messages: a.rawHistory,
	}, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal raw history: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write raw history: %w", err)
	}

	a.jsonPath = path
	return path, nil
}
