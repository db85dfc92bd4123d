// Package ingest holds the local, side-effect-free half of document
// ingestion: kind classification from the filename and byte-to-text decoding.
package ingest

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Document kinds assigned at ingestion.
const (
	KindPDF  = "PDF"
	KindCSV  = "CSV"
	KindWeb  = "WEB"
	KindText = "TEXT"
)

// Classify maps a filename to a document kind by extension. Anything that is
// not a PDF or CSV is treated as plain text; WEB documents come from the
// link path, never from file upload.
func Classify(fileName string) string {
	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".pdf":
		return KindPDF
	case ".csv":
		return KindCSV
	default:
		return KindText
	}
}

// SizeLabel renders a byte count the way it is shown next to a document.
func SizeLabel(sizeBytes int) string {
	const (
		kb = 1024
		mb = 1024 * kb
	)
	switch {
	case sizeBytes >= mb:
		return fmt.Sprintf("%.1f MB", float64(sizeBytes)/float64(mb))
	case sizeBytes >= kb:
		return fmt.Sprintf("%.1f KB", float64(sizeBytes)/float64(kb))
	default:
		return fmt.Sprintf("%d B", sizeBytes)
	}
}
