package convert

import (
	"log/slog"

	"github.com/thywilljoshua/pdfocr/internal/ocr"
	"github.com/thywilljoshua/pdfocr/internal/translate"
)

// FileResult describes one processed input file.
type FileResult struct {
	Path       string `json:"path"`
	Pages      int    `json:"pages,omitempty"`
	TextLayer  bool   `json:"had_text_layer,omitempty"`
	Characters int    `json:"characters"`
	Chunks     int    `json:"translation_chunks,omitempty"`
	Translated bool   `json:"translated"`
}

type Result struct {
	RunID  string       `json:"run_id,omitempty"`
	Format string       `json:"format"`
	Output string       `json:"output"`
	Files  []FileResult `json:"files"`
}

type Config struct {
	Format string
	// Output is the file written to: appended to in txt mode, replaced in pdf mode.
	Output string
	RunID  string

	Extractor ocr.Extractor
	// Translator is translate.Noop (or nil) when translation is disabled.
	Translator translate.Translator

	SkipPreflight bool
	Logger        *slog.Logger
}
