package infrastructure

import (
	"bytes"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/nguyenthenguyen/docx"
	"github.com/unidoc/unipdf/v3/extractor"
	"github.com/unidoc/unipdf/v3/model"
)

// maxRawContent caps how much of an unknown binary format is passed through
// as-is to the AI service.
const maxRawContent = 10000

// ExtractText pulls plain text out of an uploaded document so it can be sent
// to the AI service. txt is returned directly, pdf goes through unipdf, docx
// through the docx reader. Anything else is truncated and passed through.
func ExtractText(data []byte, filename string) (string, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".txt", ".md":
		return string(data), nil
	case ".pdf":
		return extractTextFromPDF(data)
	case ".docx":
		return extractTextFromDocx(data)
	default:
		if len(data) > maxRawContent {
			data = data[:maxRawContent]
		}
		return string(data), nil
	}
}

func extractTextFromPDF(data []byte) (string, error) {
	pdfReader, err := model.NewPdfReader(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("failed to read PDF: %w", err)
	}

	numPages, err := pdfReader.GetNumPages()
	if err != nil {
		return "", fmt.Errorf("failed to get page count: %w", err)
	}
	if numPages == 0 {
		return "", fmt.Errorf("PDF has no pages")
	}

	var textBuilder strings.Builder
	extractedAnyText := false

	for i := 1; i <= numPages; i++ {
		page, err := pdfReader.GetPage(i)
		if err != nil {
			continue // skip pages with errors
		}

		ex, err := extractor.New(page)
		if err != nil {
			continue
		}

		pageText, err := ex.ExtractText()
		if err != nil {
			continue
		}

		if pageText != "" {
			extractedAnyText = true
			textBuilder.WriteString(pageText)
			textBuilder.WriteString("\n\n")
		}
	}

	if !extractedAnyText {
		return "", fmt.Errorf("no text could be extracted from any page of the PDF")
	}
	return strings.TrimSpace(textBuilder.String()), nil
}

var docxTagPattern = regexp.MustCompile(`<[^>]+>`)

func extractTextFromDocx(data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to read docx: %w", err)
	}
	defer doc.Close()

	content := doc.Editable().GetContent()
	// Paragraph closers become newlines, every other tag is dropped.
	content = strings.ReplaceAll(content, "</w:p>", "\n")
	content = docxTagPattern.ReplaceAllString(content, "")

	text := strings.TrimSpace(content)
	if text == "" {
		return "", fmt.Errorf("no text could be extracted from docx")
	}
	return text, nil
}
