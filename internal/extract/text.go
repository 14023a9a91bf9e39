package extract

import (
	"bytes"
	"fmt"
	"io"
	"log"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
)

// UploadedFile is the ephemeral input to the extraction pipeline.
type UploadedFile struct {
	Bytes        []byte
	ContentType  string // declared media type; may be empty or generic
	OriginalName string
	Size         int64
}

// textExtensions are the filename extensions treated as text when the
// declared media type is a generic binary stream.
var textExtensions = map[string]bool{
	".txt":  true,
	".csv":  true,
	".json": true,
}

// AcquireText derives raw text from an uploaded file. It never fails: any
// unreadable input degrades to a synthetic placeholder naming the file.
func AcquireText(file UploadedFile) string {
	mediaType := normalizeMediaType(file.ContentType)

	switch {
	case strings.HasPrefix(mediaType, "text/"),
		isGenericBinary(mediaType) && hasTextExtension(file.OriginalName):
		if utf8.Valid(file.Bytes) {
			return string(file.Bytes)
		}
		log.Printf("extract.AcquireText: %s is not valid UTF-8, using placeholder", file.OriginalName)
		return PlaceholderText(file.OriginalName)

	case mediaType == "application/pdf":
		text, err := pdfToText(file.Bytes)
		if err != nil {
			log.Printf("extract.AcquireText: pdf extraction failed for %s: %v", file.OriginalName, err)
			return PlaceholderText(file.OriginalName)
		}
		return text

	default:
		return PlaceholderText(file.OriginalName)
	}
}

func normalizeMediaType(contentType string) string {
	// Strip parameters such as "; charset=utf-8".
	return strings.ToLower(strings.TrimSpace(strings.Split(contentType, ";")[0]))
}

func isGenericBinary(mediaType string) bool {
	return mediaType == "" || mediaType == "application/octet-stream"
}

func hasTextExtension(name string) bool {
	return textExtensions[strings.ToLower(filepath.Ext(name))]
}

// pdfToText extracts plain text from PDF bytes. The reader can panic on
// malformed documents, so the recover maps that to an error as well.
func pdfToText(data []byte) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("pdf reader panic: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}
	plain, err := reader.GetPlainText()
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return "", err
	}
	return buf.String(), nil
}
