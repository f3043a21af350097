package archive

import (
	"encoding/csv"
	"fmt"
	"os"
)

// utf8BOM makes spreadsheet applications detect the encoding correctly.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

var csvColumns = []string{"sender", "timestamp", "text", "file"}

// WriteCSV renders the message sequence as a BOM-prefixed UTF-8 tabular
// file: one row per message without attachments, one row per attachment
// otherwise, each attachment row repeating sender/timestamp/text with
// that attachment's display URL in the file column. Returns the output
// path, which is also recorded for publishing.
func (a *Archive) WriteCSV() (string, error) {
	if err := os.MkdirAll(a.outputDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}
	path := a.artifactName("csv")

	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create csv file: %w", err)
	}
	defer file.Close()

	if _, err := file.Write(utf8BOM); err != nil {
		return "", fmt.Errorf("failed to write BOM: %w", err)
	}

	w := csv.NewWriter(file)
	if err := w.Write(csvColumns); err != nil {
		return "", fmt.Errorf("failed to write header: %w", err)
	}

	for _, msg := range a.messages {
		if len(msg.Attachments) == 0 {
			if err := w.Write([]string{msg.Sender, msg.SortTime, msg.Text, ""}); err != nil {
				return "", fmt.Errorf("failed to write row: %w", err)
			}
			continue
		}
		for _, att := range msg.Attachments {
			if err := w.Write([]string{msg.Sender, msg.SortTime, msg.Text, att.URL}); err != nil {
				return "", fmt.Errorf("failed to write row: %w", err)
			}
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("failed to flush csv: %w", err)
	}

	a.csvPath = path
	return path, nil
}
