// Package convert runs input PDFs through recognition and optional translation
// and writes the combined result as a text or PDF file.
package convert

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/rotisserie/eris"

	"github.com/thywilljoshua/pdfocr/internal/config"
	"github.com/thywilljoshua/pdfocr/internal/inspect"
	"github.com/thywilljoshua/pdfocr/internal/translate"
)

// Run processes files one at a time, in order. The first failure stops the
// run; in txt mode the text already appended for earlier files stays on disk.
func Run(ctx context.Context, files []string, cfg Config) (Result, error) {
	if len(files) == 0 {
		return Result{}, config.ErrNoFiles
	}
	if cfg.Format != config.FormatTXT && cfg.Format != config.FormatPDF {
		return Result{}, eris.Wrapf(config.ErrUnknownFormat, "%q", cfg.Format)
	}
	if cfg.Extractor == nil {
		return Result{}, eris.New("no extractor configured")
	}
	log := cfg.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	if cfg.Translator == nil {
		cfg.Translator = translate.Noop{}
	}
	if dir := filepath.Dir(cfg.Output); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return Result{}, eris.Wrapf(err, "create output directory %s", dir)
		}
	}

	res := Result{RunID: cfg.RunID, Format: cfg.Format, Output: cfg.Output}
	var buf strings.Builder
	for i, path := range files {
		log.Info("processing file", "file", path, "index", i+1, "total", len(files))

		fr, text, err := processFile(ctx, path, cfg, log)
		if err != nil {
			return res, err
		}
		res.Files = append(res.Files, fr)

		switch cfg.Format {
		case config.FormatTXT:
			if err := appendText(cfg.Output, text); err != nil {
				return res, err
			}
		case config.FormatPDF:
			buf.WriteString(text)
			buf.WriteString("\n")
		}
	}

	if cfg.Format == config.FormatPDF {
		if err := renderPDF(cfg.Output, buf.String()); err != nil {
			return res, err
		}
	}
	log.Info("output written", "path", cfg.Output, "format", cfg.Format, "files", len(res.Files))
	return res, nil
}

func processFile(ctx context.Context, path string, cfg Config, log *slog.Logger) (FileResult, string, error) {
	fr := FileResult{Path: path}
	if !cfg.SkipPreflight {
		rep, err := inspect.File(path)
		switch {
		case eris.Is(err, inspect.ErrUnreadable):
			log.Warn("local PDF check failed, sending file to OCR anyway", "file", path, "error", err)
		case err != nil:
			return fr, "", err
		default:
			fr.Pages = rep.Pages
			fr.TextLayer = rep.HasTextLayer
			if rep.HasTextLayer {
				log.Warn("file already has a text layer, running OCR anyway", "file", path)
			}
			log.Debug("preflight", "file", path, "pages", rep.Pages, "bytes", rep.Bytes)
		}
	}

	text, err := cfg.Extractor.ExtractText(ctx, path)
	if err != nil {
		return fr, "", eris.Wrapf(err, "extract text from %s", path)
	}
	log.Info("text extracted", "file", path, "characters", utf8.RuneCountInString(text))

	_, disabled := cfg.Translator.(translate.Noop)
	if !disabled {
		fr.Chunks = len(translate.Split(text, translate.ChunkSize))
	}
	text, err = cfg.Translator.Translate(ctx, text)
	if err != nil {
		return fr, "", eris.Wrapf(err, "translate text from %s", path)
	}
	if !disabled {
		fr.Translated = true
		log.Info("text translated", "file", path, "chunks", fr.Chunks)
	}
	fr.Characters = utf8.RuneCountInString(text)
	return fr, text, nil
}
