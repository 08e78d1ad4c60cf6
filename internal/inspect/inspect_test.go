package inspect

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-pdf/fpdf"
	"github.com/rotisserie/eris"
)

func makePDF(t *testing.T, pages []string) string {
	t.Helper()
	doc := fpdf.New("P", "mm", "A4", "")
	doc.SetFont("Helvetica", "", 12)
	for _, text := range pages {
		doc.AddPage()
		if text != "" {
			doc.Cell(40, 10, text)
		}
	}
	path := filepath.Join(t.TempDir(), "doc.pdf")
	if err := doc.OutputFileAndClose(path); err != nil {
		t.Fatalf("write pdf: %v", err)
	}
	return path
}

func TestFile(t *testing.T) {
	tests := []struct {
		name     string
		pages    []string
		wantText bool
	}{
		{"scanned-like", []string{"", ""}, false},
		{"with text", []string{"Hello world"}, true},
		{"text on later page", []string{"", "", "Appendix"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := makePDF(t, tt.pages)
			rep, err := File(path)
			if err != nil {
				t.Fatalf("File: %v", err)
			}
			if rep.Pages != len(tt.pages) {
				t.Errorf("Pages = %d, want %d", rep.Pages, len(tt.pages))
			}
			if rep.HasTextLayer != tt.wantText {
				t.Errorf("HasTextLayer = %v, want %v", rep.HasTextLayer, tt.wantText)
			}
			if rep.Bytes <= 0 || rep.Path != path {
				t.Errorf("unexpected report %+v", rep)
			}
		})
	}
}

func TestFileRejectsNonPDF(t *testing.T) {
	dir := t.TempDir()
	notPDF := filepath.Join(dir, "notes.pdf")
	if err := os.WriteFile(notPDF, []byte("just some text"), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name       string
		path       string
		unreadable bool
	}{
		{"not a pdf", notPDF, true},
		{"missing", filepath.Join(dir, "missing.pdf"), false},
		{"directory", dir, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rep, err := File(tt.path)
			if err == nil {
				t.Fatalf("File(%q) succeeded, want error", tt.path)
			}
			if got := eris.Is(err, ErrUnreadable); got != tt.unreadable {
				t.Errorf("eris.Is(err, ErrUnreadable) = %v, want %v (err: %v)", got, tt.unreadable, err)
			}
			if tt.unreadable && (rep.Path != tt.path || rep.Bytes != int64(len("just some text"))) {
				t.Errorf("partial report = %+v", rep)
			}
		})
	}
}

func TestFileTrailingBytes(t *testing.T) {
	path := makePDF(t, []string{""})
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	b = append(b, bytes.Repeat([]byte{0}, 256)...)
	if err := os.WriteFile(path, b, 0o644); err != nil {
		t.Fatal(err)
	}

	rep, err := File(path)
	if !eris.Is(err, ErrUnreadable) {
		t.Fatalf("File() error = %v, want %v", err, ErrUnreadable)
	}
	if rep.Bytes != int64(len(b)) || rep.Pages != 0 {
		t.Errorf("partial report = %+v", rep)
	}
}
