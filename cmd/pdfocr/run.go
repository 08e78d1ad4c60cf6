package main

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/thywilljoshua/pdfocr/internal/config"
	"github.com/thywilljoshua/pdfocr/internal/convert"
	"github.com/thywilljoshua/pdfocr/internal/ocr"
	"github.com/thywilljoshua/pdfocr/internal/translate"
)

func runCmd() *cobra.Command {
	var skipPreflight bool

	cmd := &cobra.Command{
		Use:   "run",
		Short: "OCR the PDFs listed in FILES and write result.ocr.txt or result.ocr.pdf",
		Long: `Reads its settings from the environment (or --config, where the environment leaves a key unset):

  PROJECT_ID, LOCATION, PROCESSOR_ID   Document AI processor
  PROCESSOR_VERSION_ID                 optional processor version
  FIELD_MASK                           optional comma-separated Document AI field mask
  FILES                                colon-separated list of PDF paths
  OUTPUT_FILE_FORMAT                   txt (appends to result.ocr.txt) or pdf (writes result.ocr.pdf)
  OUTPUT_DIR                           directory for the result file, default "."
  OCR_ENGINE                           documentai (default) or gemini
  GOOGLE_API_KEY                       Gemini API key, required for the gemini engine
  GEMINI_MODEL                         Gemini model, default ` + config.DefaultGeminiModel + `
  TRANSLATION_CONSENT                  "y" to translate the recognized text
  TRANSLATION_TARGET_LANGUAGE          target language code, required when translating
  TRANSLATION_SOURCE_LANGUAGE          optional source language code, detected when empty
  TRANSLATION_LOCATION                 Cloud Translation location, default ` + config.DefaultTranslationLocation,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfgPath, _ := cmd.Flags().GetString("config")
			cfg, err := config.Load(cfgPath)
			if err != nil {
				return err
			}

			runID := uuid.NewString()
			log := newLogger(cmd).With("run_id", runID)
			ctx := cmd.Context()

			extractor, err := ocr.New(ctx, cfg, log)
			if err != nil {
				return err
			}
			defer extractor.Close()

			conf := convert.Config{
				Format:        cfg.OutputFormat,
				Output:        cfg.OutputPath(),
				RunID:         runID,
				Extractor:     extractor,
				Translator:    translate.Noop{},
				SkipPreflight: skipPreflight,
				Logger:        log,
			}
			if cfg.Translation.Enabled {
				tr, err := translate.NewCloud(ctx, translate.Options{
					ProjectID:      cfg.ProjectID,
					Location:       cfg.Translation.Location,
					TargetLanguage: cfg.Translation.TargetLanguage,
					SourceLanguage: cfg.Translation.SourceLanguage,
					Logger:         log,
				})
				if err != nil {
					return err
				}
				defer tr.Close()
				conf.Translator = tr
			}

			log.Info("starting run", "files", len(cfg.Files), "format", cfg.OutputFormat,
				"engine", cfg.Engine, "translate", cfg.Translation.Enabled)
			res, err := convert.Run(ctx, cfg.Files, conf)
			if err != nil {
				return err
			}
			b, _ := json.MarshalIndent(res, "", "  ")
			fmt.Fprintln(cmd.OutOrStdout(), string(b))
			return nil
		},
	}
	cmd.Flags().BoolVar(&skipPreflight, "no-preflight", false, "send files to OCR without checking them locally first")
	return cmd
}

func newLogger(cmd *cobra.Command) *slog.Logger {
	level := slog.LevelInfo
	if v, _ := cmd.Flags().GetBool("verbose"); v {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
}
