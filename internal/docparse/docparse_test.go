package docparse

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseContent(t *testing.T) {
	p := New()

	doc := p.ParseContent("  The witness arrived at nine.\nShe left at ten.  ")
	if doc.Method != "inline" {
		t.Errorf("Method = %q, want inline", doc.Method)
	}
	if doc.WordCount != 9 {
		t.Errorf("WordCount = %d, want 9", doc.WordCount)
	}
	if strings.HasPrefix(doc.Text, " ") || strings.HasSuffix(doc.Text, " ") {
		t.Errorf("Text not trimmed: %q", doc.Text)
	}
	if !strings.Contains(doc.Text, "\n") {
		t.Errorf("Inline content should keep line structure: %q", doc.Text)
	}
}

func TestParse_TextFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "statement.txt")
	body := "On the night in question the van was parked outside.\nNobody moved it until morning.\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	doc, err := New().Parse(path)
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if doc.Method != "text_file" {
		t.Errorf("Method = %q, want text_file", doc.Method)
	}
	if doc.WordCount != 15 {
		t.Errorf("WordCount = %d, want 15", doc.WordCount)
	}
	if strings.HasSuffix(doc.Text, "\n") {
		t.Errorf("Trailing newline should be trimmed: %q", doc.Text)
	}
}

func TestParse_MarkdownUsesTextPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "notes.MD")
	if err := os.WriteFile(path, []byte("# Evidence notes\n\nChain of custody intact."), 0o644); err != nil {
		t.Fatal(err)
	}

	doc, err := New().Parse(path)
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if doc.Method != "text_file" {
		t.Errorf("Method = %q, want text_file", doc.Method)
	}
}

func TestParse_UnsupportedExtension(t *testing.T) {
	_, err := New().Parse("evidence.docx")
	if err == nil {
		t.Fatal("Expected error for unsupported extension")
	}
	if !strings.Contains(err.Error(), "unsupported document type") {
		t.Errorf("Unexpected error: %v", err)
	}
}

func TestParse_MissingFiles(t *testing.T) {
	if _, err := New().Parse(filepath.Join(t.TempDir(), "gone.txt")); err == nil {
		t.Error("Expected error for missing text file")
	}
	if _, err := New().Parse(filepath.Join(t.TempDir(), "gone.pdf")); err == nil {
		t.Error("Expected error for missing pdf")
	}
}

func TestParseContent_Empty(t *testing.T) {
	doc := New().ParseContent("   ")
	if doc.Text != "" {
		t.Errorf("Text = %q, want empty", doc.Text)
	}
	if doc.WordCount != 0 {
		t.Errorf("WordCount = %d, want 0", doc.WordCount)
	}
}
