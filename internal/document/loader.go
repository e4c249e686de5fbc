package document

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/akolanti/DocChat/internal/config"
	"github.com/akolanti/DocChat/internal/domain/commonModels"
	"github.com/akolanti/DocChat/pkg/logger_i"
)

var (
	ErrInvalidEncoding = errors.New("content is not valid UTF-8 text")
	ErrEmptyDocument   = errors.New("document has no text")
	ErrUnreadable      = errors.New("document could not be read")
)

var logger = logger_i.NewLogger("DocumentLoader")

// LoadError is returned for every upload that cannot become a document. The
// caller can show Error() to the user and ask for another file.
type LoadError struct {
	Name   string
	Reason string
	Err    error
}

func (e *LoadError) Error() string {
	if e.Name == "" {
		return fmt.Sprintf("could not read file: %s", e.Reason)
	}
	return fmt.Sprintf("could not read file %q: %s", e.Name, e.Reason)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

func loadError(name string, reason string, err error) *LoadError {
	return &LoadError{Name: name, Reason: reason, Err: err}
}

// Load consumes r and decodes it into a document. Plain text is returned
// unchanged; PDF and office formats go through their extractors first.
func Load(name string, r io.Reader) (commonModels.Document, error) {
	if r == nil {
		return commonModels.Document{}, loadError(name, "no file content received", ErrUnreadable)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		logger.Warn("Reading upload failed", "name", name, "error", err)
		return commonModels.Document{}, loadError(name, err.Error(), errors.Join(ErrUnreadable, err))
	}
	return LoadBytes(name, data)
}

func LoadBytes(name string, data []byte) (commonModels.Document, error) {
	docType := getDocType(name)
	logger.Debug("Loading document", "name", name, "type", docType, "bytes", len(data))

	content, err := extractText(name, docType, data)
	if err != nil {
		return commonModels.Document{}, err
	}
	if len(content) == 0 {
		return commonModels.Document{}, loadError(name, "the file is empty", ErrEmptyDocument)
	}

	return commonModels.Document{
		Name:        name,
		Content:     content,
		Size:        len(data),
		ContentType: docType,
		LoadedAt:    time.Now(),
	}, nil
}

// Preview is the leading part of content shown back after an upload.
func Preview(content string) string {
	if utf8.RuneCountInString(content) <= config.DocumentPreviewLen {
		return content
	}
	runes := []rune(content)
	return string(runes[:config.DocumentPreviewLen]) + "..."
}

func getDocType(name string) commonModels.DocType {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".pdf":
		return commonModels.PDF
	case ".docx", ".odt", ".rtf":
		return commonModels.DOCX
	default:
		return commonModels.TXT
	}
}

func extractText(name string, docType commonModels.DocType, data []byte) (string, error) {
	switch docType {
	case commonModels.PDF:
		return extractPDF(name, data)
	case commonModels.DOCX:
		return extractDocxOdtRtf(name, data)
	default:
		return decodeText(name, data)
	}
}

func decodeText(name string, data []byte) (string, error) {
	if !utf8.Valid(data) {
		offset := firstInvalidByte(data)
		return "", loadError(name, fmt.Sprintf("invalid UTF-8 at byte %d, make sure this is a valid text file", offset), ErrInvalidEncoding)
	}
	return string(data), nil
}

func firstInvalidByte(data []byte) int {
	for i := 0; i < len(data); {
		r, size := utf8.DecodeRune(data[i:])
		if r == utf8.RuneError && size <= 1 {
			return i
		}
		i += size
	}
	return -1
}
