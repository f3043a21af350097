package archive

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	// Staged attachments are validated as decodable images before the
	// renderer embeds them.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/go-pdf/fpdf"
)

// WritePDF renders the message sequence as a letter-sized document with
// one-inch margins: a title block, then per message a header line, the
// wrapped text, embedded images or hyperlink lines for attachments, and
// a near-full-width rule. Page breaks are left to the engine. Returns
// the output path, which is also recorded for publishing.
func (a *Archive) WritePDF() (string, error) {
	if err := os.MkdirAll(a.outputDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}
	path := a.artifactName("pdf")

	pdf := fpdf.New("P", "in", "Letter", "")
	pdf.SetMargins(1, 1, 1)
	pdf.SetAutoPageBreak(true, 1)
	pdf.AddPage()
	pdf.SetFont("Arial", "", 12)
	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.01)

	pageWidth, _ := pdf.GetPageSize()
	leftMargin, _, rightMargin, _ := pdf.GetMargins()
	colWidth := pageWidth - leftMargin - rightMargin
	_, lineHeight := pdf.GetFontSize()

	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(colWidth, lineHeight, latin1(a.channel.Name+" Channel Archive"), "", 1, "", false, 0, "")
	pdf.SetFont("Arial", "", 12)
	pdf.CellFormat(colWidth, lineHeight, latin1("Exported on "+a.exportedAt), "", 1, "", false, 0, "")
	pdf.Ln(lineHeight)

	for _, msg := range a.messages {
		header := msg.DisplayTime
		if msg.SubType != "channel_join" {
			header = fmt.Sprintf("%s on %s", msg.Sender, msg.DisplayTime)
		}
		pdf.CellFormat(colWidth, lineHeight, latin1(header), "", 1, "", false, 0, "")

		if msg.Text != "" {
			pdf.MultiCell(colWidth, lineHeight, latin1(msg.Text), "", "", false)
		}

		for _, att := range msg.Attachments {
			name := normalizeText(att.Filename, nil, false)
			staged := filepath.Join(msg.StagingDir, name)
			if att.IsImage() && readableImage(staged) {
				pdf.ImageOptions(staged, pdf.GetX(), 0, colWidth/2.5, 0, true, fpdf.ImageOptions{}, 0, "")
				pdf.Ln(lineHeight)
			} else {
				putLink(pdf, colWidth, lineHeight, "File: "+name, att.URL)
			}
		}

		pdf.Ln(lineHeight / 2)
		y := pdf.GetY()
		pdf.Line(leftMargin/2, y, pageWidth-rightMargin/2, y)
		pdf.Ln(lineHeight / 2)
	}

	if err := pdf.OutputFileAndClose(path); err != nil {
		return "", fmt.Errorf("failed to write pdf: %w", err)
	}

	a.pdfPath = path
	return path, nil
}

// putLink renders a hyperlink-styled line and restores the text color.
func putLink(pdf *fpdf.Fpdf, w, h float64, text, url string) {
	pdf.SetTextColor(6, 69, 173) // hyperlink blue
	pdf.CellFormat(w, h, latin1(text), "", 1, "", false, 0, url)
	pdf.SetTextColor(0, 0, 0)
}

// latin1 re-encodes a string for the single-byte core fonts: runes in
// the latin-1 range become their one-byte form, everything above is
// escaped instead of dropped so every message stays renderable.
func latin1(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r <= 0xFF:
			b.WriteByte(byte(r))
		case r <= 0xFFFF:
			fmt.Fprintf(&b, "\\u%04x", r)
		default:
			fmt.Fprintf(&b, "\\U%08x", r)
		}
	}
	return b.String()
}

// readableImage reports whether path exists and holds a decodable image.
// Validating up front keeps a corrupt download from poisoning the
// renderer's sticky error state; unreadable files fall back to links.
func readableImage(path string) bool {
	file, err := os.Open(path)
	if err != nil {
		return false
	}
	defer file.Close()

	_, _, err = image.DecodeConfig(file)
	return err == nil
}
