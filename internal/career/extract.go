package career

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/muhammadolammi/careerpilot/internal/apperr"
)

type Extractor interface {
	Extract(ctx context.Context, u Upload) (string, error)
}

// PlaceholderExtractor does not read the document. It describes the file
// so the analysis prompt still has something to work with.
type PlaceholderExtractor struct{}

func (PlaceholderExtractor) Extract(_ context.Context, u Upload) (string, error) {
	return placeholderText(u), nil
}

func placeholderText(u Upload) string {
	var b strings.Builder
	b.WriteString("[PDF Content Extracted]\n\n")
	fmt.Fprintf(&b, "This is a simulated text extraction from the uploaded PDF file: %s\n\n", u.Filename)
	b.WriteString("In a production environment, this would contain the actual text content from your PDF resume.\n")
	b.WriteString("The text would include sections like:\n")
	for _, section := range []string{
		"Personal Information",
		"Professional Summary",
		"Work Experience",
		"Education",
		"Skills",
		"Certifications",
		"Projects",
	} {
		fmt.Fprintf(&b, "- %s\n", section)
	}
	fmt.Fprintf(&b, "\nFile size: %s\n", formatKB(u.Size()))
	fmt.Fprintf(&b, "File type: %s\n", u.ContentType)
	return b.String()
}

// PDFExtractor reads the text layer page by page. A document without any
// text (a scan, say) gets the placeholder description instead.
type PDFExtractor struct{}

func (PDFExtractor) Extract(_ context.Context, u Upload) (string, error) {
	text, err := extractPDFText(u.Data)
	if err != nil {
		return "", &apperr.FileValidationError{
			Reason:  "unreadable",
			Message: fmt.Sprintf("Failed to extract text from PDF: %v", err),
		}
	}
	if strings.TrimSpace(text) == "" {
		return placeholderText(u), nil
	}
	return text, nil
}

func extractPDFText(data []byte) (string, error) {
	pdfReader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to read pdf: %w", err)
	}
	var textBuilder strings.Builder
	numPages := pdfReader.NumPage()
	for i := 1; i <= numPages; i++ {
		page := pdfReader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		textBuilder.WriteString(text)
		textBuilder.WriteString("\n")
	}
	return textBuilder.String(), nil
}
