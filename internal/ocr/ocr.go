// Package ocr extracts plain text from PDF files through a remote recognition service.
package ocr

import (
	"context"
	"log/slog"

	"github.com/rotisserie/eris"

	"github.com/thywilljoshua/pdfocr/internal/config"
)

// MIMEType is declared on every document submitted for recognition.
const MIMEType = "application/pdf"

type Extractor interface {
	ExtractText(ctx context.Context, path string) (string, error)
	Close() error
}

// New builds the extractor selected by cfg.Engine.
func New(ctx context.Context, cfg config.Config, log *slog.Logger) (Extractor, error) {
	switch cfg.Engine {
	case config.EngineDocumentAI, "":
		d, err := NewDocumentAI(ctx, DocumentAIOptions{
			ProjectID:          cfg.ProjectID,
			Location:           cfg.Location,
			ProcessorID:        cfg.ProcessorID,
			ProcessorVersionID: cfg.ProcessorVersionID,
			FieldMask:          cfg.FieldMask,
			Logger:             log,
		})
		if err != nil {
			return nil, err
		}
		return d, nil
	case config.EngineGemini:
		g, err := NewGemini(ctx, cfg.Gemini.APIKey, cfg.Gemini.Model)
		if err != nil {
			return nil, err
		}
		return g, nil
	default:
		return nil, eris.Wrapf(config.ErrUnknownEngine, "%q", cfg.Engine)
	}
}
