package career

import (
	"fmt"

	"github.com/muhammadolammi/careerpilot/internal/apperr"
)

const (
	PDFContentType = "application/pdf"
	MaxUploadBytes = 10 * 1024 * 1024
)

type Upload struct {
	Filename    string
	ContentType string
	Data        []byte
}

func (u Upload) Size() int64 { return int64(len(u.Data)) }

type FileInfo struct {
	Name string `json:"name"`
	Size string `json:"size"`
	Type string `json:"type"`
}

// ValidateUpload checks type and size before anything is read or sent.
func ValidateUpload(contentType string, size int64) error {
	if contentType != PDFContentType {
		return &apperr.FileValidationError{
			Reason:  "type",
			Message: "Please upload a valid PDF file (max 10MB).",
		}
	}
	if size > MaxUploadBytes {
		return &apperr.FileValidationError{
			Reason:  "size",
			Message: "Please upload a valid PDF file (max 10MB).",
		}
	}
	return nil
}

func Info(u Upload) FileInfo {
	return FileInfo{
		Name: u.Filename,
		Size: formatKB(u.Size()),
		Type: u.ContentType,
	}
}

func formatKB(size int64) string {
	return fmt.Sprintf("%.2f KB", float64(size)/1024)
}
