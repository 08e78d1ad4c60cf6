// Package config loads the run configuration from the environment and an optional YAML file.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

const (
	FormatTXT = "txt"
	FormatPDF = "pdf"

	EngineDocumentAI = "documentai"
	EngineGemini     = "gemini"

	DefaultTranslationLocation = "global"
	DefaultGeminiModel         = "gemini-2.5-flash"
)

var (
	ErrNoFiles       = eris.New("No files specified.")
	ErrUnknownFormat = eris.New("unknown output mode")
	ErrUnknownEngine = eris.New("unknown OCR engine")
)

type Translation struct {
	Enabled        bool
	Location       string
	TargetLanguage string
	SourceLanguage string
}

type Gemini struct {
	APIKey string
	Model  string
}

// Config is populated once at startup and only read afterwards.
type Config struct {
	ProjectID          string
	Location           string
	ProcessorID        string
	ProcessorVersionID string
	FieldMask          []string

	Translation Translation

	Files        []string
	OutputFormat string
	OutputDir    string

	Engine string
	Gemini Gemini
}

type fileConfig struct {
	ProjectID                 string `yaml:"project_id"`
	Location                  string `yaml:"location"`
	ProcessorID               string `yaml:"processor_id"`
	ProcessorVersionID        string `yaml:"processor_version_id"`
	FieldMask                 string `yaml:"field_mask"`
	TranslationConsent        string `yaml:"translation_consent"`
	TranslationTargetLanguage string `yaml:"translation_target_language"`
	TranslationSourceLanguage string `yaml:"translation_source_language"`
	TranslationLocation       string `yaml:"translation_location"`
	Files                     string `yaml:"files"`
	OutputFileFormat          string `yaml:"output_file_format"`
	OutputDir                 string `yaml:"output_dir"`
	OCREngine                 string `yaml:"ocr_engine"`
	GoogleAPIKey              string `yaml:"google_api_key"`
	GeminiModel               string `yaml:"gemini_model"`
}

// values maps environment variable names to the YAML fallbacks.
func (f fileConfig) values() map[string]string {
	return map[string]string{
		"PROJECT_ID":                  f.ProjectID,
		"LOCATION":                    f.Location,
		"PROCESSOR_ID":                f.ProcessorID,
		"PROCESSOR_VERSION_ID":        f.ProcessorVersionID,
		"FIELD_MASK":                  f.FieldMask,
		"TRANSLATION_CONSENT":         f.TranslationConsent,
		"TRANSLATION_TARGET_LANGUAGE": f.TranslationTargetLanguage,
		"TRANSLATION_SOURCE_LANGUAGE": f.TranslationSourceLanguage,
		"TRANSLATION_LOCATION":        f.TranslationLocation,
		"FILES":                       f.Files,
		"OUTPUT_FILE_FORMAT":          f.OutputFileFormat,
		"OUTPUT_DIR":                  f.OutputDir,
		"OCR_ENGINE":                  f.OCREngine,
		"GOOGLE_API_KEY":              f.GoogleAPIKey,
		"GEMINI_MODEL":                f.GeminiModel,
	}
}

// Load reads the process environment. A non-empty path adds a YAML file whose
// values are used only where the environment leaves a key unset.
func Load(path string) (Config, error) {
	return LoadFrom(os.LookupEnv, path)
}

// LoadFrom is Load with an injectable environment lookup.
func LoadFrom(lookup func(string) (string, bool), path string) (Config, error) {
	get, err := getter(lookup, path)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		ProjectID:          get("PROJECT_ID"),
		Location:           get("LOCATION"),
		ProcessorID:        get("PROCESSOR_ID"),
		ProcessorVersionID: get("PROCESSOR_VERSION_ID"),
		FieldMask:          SplitList(get("FIELD_MASK"), ","),
		Translation: Translation{
			Enabled:        get("TRANSLATION_CONSENT") == "y",
			Location:       get("TRANSLATION_LOCATION"),
			TargetLanguage: get("TRANSLATION_TARGET_LANGUAGE"),
			SourceLanguage: get("TRANSLATION_SOURCE_LANGUAGE"),
		},
		Files:        SplitList(get("FILES"), ":"),
		OutputFormat: get("OUTPUT_FILE_FORMAT"),
		OutputDir:    get("OUTPUT_DIR"),
		Engine:       strings.ToLower(get("OCR_ENGINE")),
		Gemini: Gemini{
			APIKey: get("GOOGLE_API_KEY"),
			Model:  get("GEMINI_MODEL"),
		},
	}
	ensureDefaults(&cfg)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Files resolves only FILES, from the environment and then the YAML file at
// path. Nothing else is validated. An empty list returns ErrNoFiles.
func Files(lookup func(string) (string, bool), path string) ([]string, error) {
	get, err := getter(lookup, path)
	if err != nil {
		return nil, err
	}
	files := SplitList(get("FILES"), ":")
	if len(files) == 0 {
		return nil, ErrNoFiles
	}
	return files, nil
}

// getter returns a key lookup where non-empty environment values win over
// the YAML file.
func getter(lookup func(string) (string, bool), path string) (func(string) string, error) {
	var fc fileConfig
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, eris.Wrapf(err, "read config file %s", path)
		}
		if err := yaml.Unmarshal(b, &fc); err != nil {
			return nil, eris.Wrapf(err, "parse config file %s", path)
		}
	}
	fallback := fc.values()
	return func(key string) string {
		if v, ok := lookup(key); ok && v != "" {
			return v
		}
		return fallback[key]
	}, nil
}

func ensureDefaults(cfg *Config) {
	if cfg.OutputDir == "" {
		cfg.OutputDir = "."
	}
	if cfg.Engine == "" {
		cfg.Engine = EngineDocumentAI
	}
	if cfg.Translation.Location == "" {
		cfg.Translation.Location = DefaultTranslationLocation
	}
	if cfg.Gemini.Model == "" {
		cfg.Gemini.Model = DefaultGeminiModel
	}
}

// Validate checks presence only. The file list and output format are checked
// first since either one stops the run before anything else happens.
func (c Config) Validate() error {
	if len(c.Files) == 0 {
		return ErrNoFiles
	}
	if c.OutputFormat != FormatTXT && c.OutputFormat != FormatPDF {
		return eris.Wrapf(ErrUnknownFormat, "%q", c.OutputFormat)
	}
	switch c.Engine {
	case EngineDocumentAI:
		if c.ProjectID == "" {
			return eris.New("PROJECT_ID is not set")
		}
		if c.Location == "" {
			return eris.New("LOCATION is not set")
		}
		if c.ProcessorID == "" {
			return eris.New("PROCESSOR_ID is not set")
		}
	case EngineGemini:
		if c.Gemini.APIKey == "" {
			return eris.New("GOOGLE_API_KEY is not set")
		}
	default:
		return eris.Wrapf(ErrUnknownEngine, "%q", c.Engine)
	}
	if c.Translation.Enabled {
		if c.ProjectID == "" {
			return eris.New("PROJECT_ID is not set (required for translation)")
		}
		if c.Translation.TargetLanguage == "" {
			return eris.New("TRANSLATION_TARGET_LANGUAGE is not set")
		}
	}
	return nil
}

// OutputPath is result.ocr.<format> inside OutputDir.
func (c Config) OutputPath() string {
	return filepath.Join(c.OutputDir, "result.ocr."+c.OutputFormat)
}

// SplitList splits s on sep. Entries are trimmed and blank ones are dropped,
// so "a.pdf::b.pdf" yields two paths.
func SplitList(s, sep string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, p := range strings.Split(s, sep) {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
