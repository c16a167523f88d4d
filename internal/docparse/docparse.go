// Package docparse extracts plain text from evidence documents so the
// simulation can feed them into agent prompts. PDFs go through text
// extraction; plain-text formats are read directly; inline content is
// accepted as-is. Images and scanned documents are out of scope.
package docparse

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"
)

var extraneousWhitespace = regexp.MustCompile(`\s+`)

// Document is the extraction result for one evidence file.
type Document struct {
	Text      string `json:"text"`
	WordCount int    `json:"word_count"`
	Method    string `json:"extraction_method"`
}

// Parser dispatches documents to the right extraction method by file
// extension.
type Parser struct{}

// New returns a ready parser.
func New() *Parser {
	return &Parser{}
}

// Parse extracts text from the file at path. Unsupported extensions are an
// error; the caller decides whether that is fatal for its pipeline.
func (p *Parser) Parse(path string) (Document, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return p.parsePDF(path)
	case ".txt", ".md":
		return p.parseTextFile(path)
	default:
		return Document{}, fmt.Errorf("unsupported document type %q", filepath.Ext(path))
	}
}

// ParseContent wraps already-extracted text in a Document. Used for
// evidence records that carry their content inline instead of a file path.
func (p *Parser) ParseContent(content string) Document {
	text := strings.TrimSpace(content)
	return Document{
		Text:      text,
		WordCount: len(strings.Fields(text)),
		Method:    "inline",
	}
}

// parsePDF extracts the plain-text layer of a PDF. Extracted text has all
// whitespace runs collapsed because PDF text streams fragment words and
// lines arbitrarily.
func (p *Parser) parsePDF(path string) (Document, error) {
	file, reader, err := pdf.Open(path)
	if err != nil {
		return Document{}, fmt.Errorf("failed to open pdf: %w", err)
	}
	defer file.Close()

	content, err := reader.GetPlainText()
	if err != nil {
		return Document{}, fmt.Errorf("failed to extract pdf text: %w", err)
	}

	var builder strings.Builder
	if _, err := io.Copy(&builder, content); err != nil {
		return Document{}, fmt.Errorf("failed to read pdf text: %w", err)
	}

	text := strings.TrimSpace(extraneousWhitespace.ReplaceAllString(builder.String(), " "))
	return Document{
		Text:      text,
		WordCount: len(strings.Fields(text)),
		Method:    "pdf",
	}, nil
}

// parseTextFile reads a plain-text document. Internal line structure is
// preserved; only the edges are trimmed.
func (p *Parser) parseTextFile(path string) (Document, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Document{}, fmt.Errorf("failed to read text file: %w", err)
	}

	text := strings.TrimSpace(string(raw))
	return Document{
		Text:      text,
		WordCount: len(strings.Fields(text)),
		Method:    "text_file",
	}, nil
}
