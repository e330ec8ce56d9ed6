package document

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// StdinName is the path that selects standard input
const StdinName = "-"

var (
	// ErrEmptyDocument is returned when a document has no text to analyze
	ErrEmptyDocument = errors.New("document is empty")
	// ErrUnsupportedFormat is returned for files that cannot be read as text
	ErrUnsupportedFormat = errors.New("unsupported document format")
	// ErrTooLarge is returned when a document exceeds the configured size limit
	ErrTooLarge = errors.New("document exceeds size limit")
)

// Document is the plain text of a résumé or job description
type Document struct {
	Name string `json:"name"`
	Text string `json:"-"`
}

// FromString wraps already-extracted text
func FromString(name, text string) Document {
	return Document{Name: name, Text: normalizeWhitespace(text)}
}

// Load reads the document at path, extracting text from PDF and DOCX files.
// A path of "-" reads standard input. maxBytes <= 0 disables the size limit.
func Load(path string, maxBytes int64) (Document, error) {
	if path == StdinName {
		return Read("stdin", os.Stdin, maxBytes)
	}

	f, err := os.Open(path)
	if err != nil {
		return Document{}, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	return Read(path, f, maxBytes)
}

// Read extracts text from r, choosing a parser by the extension of name
func Read(name string, r io.Reader, maxBytes int64) (Document, error) {
	data, err := readLimited(r, maxBytes)
	if err != nil {
		return Document{}, fmt.Errorf("failed to read %s: %w", name, err)
	}

	var text string
	switch strings.ToLower(filepath.Ext(name)) {
	case ".pdf":
		text, err = extractPDF(data)
	case ".docx":
		text, err = extractDocx(data)
	case ".doc", ".odt", ".rtf", ".pages", ".png", ".jpg", ".jpeg":
		err = ErrUnsupportedFormat
	default:
		text, err = extractPlain(data)
	}
	if err != nil {
		return Document{}, fmt.Errorf("failed to extract text from %s: %w", name, err)
	}

	return FromString(name, text), nil
}

// Require returns ErrEmptyDocument when d has no usable text.
// label names the document in the error ("resume", "job description").
func Require(label string, d Document) error {
	if d.IsEmpty() {
		return fmt.Errorf("%s: %w", label, ErrEmptyDocument)
	}
	return nil
}

// IsEmpty reports whether the document has no non-whitespace text
func (d Document) IsEmpty() bool {
	return strings.TrimSpace(d.Text) == ""
}

// Fingerprint returns the hex SHA-256 of the normalized text
func (d Document) Fingerprint() string {
	sum := sha256.Sum256([]byte(d.Text))
	return hex.EncodeToString(sum[:])
}

func readLimited(r io.Reader, maxBytes int64) ([]byte, error) {
	if maxBytes <= 0 {
		return io.ReadAll(r)
	}
	data, err := io.ReadAll(io.LimitReader(r, maxBytes+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > maxBytes {
		return nil, ErrTooLarge
	}
	return data, nil
}

func extractPlain(data []byte) (string, error) {
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))
	if !utf8.Valid(data) {
		return "", ErrUnsupportedFormat
	}
	return string(data), nil
}

// normalizeWhitespace collapses whitespace runs into single spaces
func normalizeWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
