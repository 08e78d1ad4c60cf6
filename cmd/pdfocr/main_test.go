package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-pdf/fpdf"
	"github.com/rotisserie/eris"

	"github.com/thywilljoshua/pdfocr/internal/config"
	"github.com/thywilljoshua/pdfocr/internal/inspect"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func setEnv(t *testing.T, m map[string]string) {
	t.Helper()
	for _, k := range []string{"PROJECT_ID", "LOCATION", "PROCESSOR_ID", "FILES", "OUTPUT_FILE_FORMAT",
		"OUTPUT_DIR", "TRANSLATION_CONSENT", "TRANSLATION_TARGET_LANGUAGE", "OCR_ENGINE"} {
		t.Setenv(k, m[k])
	}
}

func TestRunExitsEarly(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr error
	}{
		{
			name: "no files",
			env: map[string]string{
				"PROJECT_ID": "p", "LOCATION": "us", "PROCESSOR_ID": "x",
				"OUTPUT_FILE_FORMAT": "txt",
			},
			wantErr: config.ErrNoFiles,
		},
		{
			name: "unknown format",
			env: map[string]string{
				"PROJECT_ID": "p", "LOCATION": "us", "PROCESSOR_ID": "x",
				"FILES": "a.pdf", "OUTPUT_FILE_FORMAT": "html",
			},
			wantErr: config.ErrUnknownFormat,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			tt.env["OUTPUT_DIR"] = dir
			setEnv(t, tt.env)

			_, err := execute(t, "run")
			if !eris.Is(err, tt.wantErr) {
				t.Fatalf("run error = %v, want %v", err, tt.wantErr)
			}
			entries, _ := os.ReadDir(dir)
			if len(entries) != 0 {
				t.Errorf("output written despite early exit: %d entries", len(entries))
			}
		})
	}
}

func TestInspect(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.pdf")
	doc := fpdf.New("P", "mm", "A4", "")
	doc.AddPage()
	if err := doc.OutputFileAndClose(path); err != nil {
		t.Fatal(err)
	}
	setEnv(t, map[string]string{"FILES": path})

	out, err := execute(t, "inspect")
	if err != nil {
		t.Fatalf("inspect: %v", err)
	}
	var reports []inspect.Report
	if err := json.Unmarshal([]byte(out), &reports); err != nil {
		t.Fatalf("decode output %q: %v", out, err)
	}
	if len(reports) != 1 || reports[0].Path != path || reports[0].Pages != 1 {
		t.Errorf("unexpected reports %+v", reports)
	}
}

func TestInspectWithoutFiles(t *testing.T) {
	setEnv(t, nil)
	if _, err := execute(t, "inspect"); !eris.Is(err, config.ErrNoFiles) {
		t.Errorf("inspect error = %v, want %v", err, config.ErrNoFiles)
	}
}

func TestInspectUsesConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.pdf")
	doc := fpdf.New("P", "mm", "A4", "")
	doc.AddPage()
	doc.AddPage()
	if err := doc.OutputFileAndClose(path); err != nil {
		t.Fatal(err)
	}
	cfgPath := filepath.Join(dir, "pdfocr.yml")
	if err := os.WriteFile(cfgPath, []byte("files: "+path+"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	setEnv(t, nil)

	out, err := execute(t, "--config", cfgPath, "inspect")
	if err != nil {
		t.Fatalf("inspect: %v", err)
	}
	var reports []inspect.Report
	if err := json.Unmarshal([]byte(out), &reports); err != nil {
		t.Fatalf("decode output %q: %v", out, err)
	}
	if len(reports) != 1 || reports[0].Path != path || reports[0].Pages != 2 {
		t.Errorf("unexpected reports %+v", reports)
	}
}

func TestRunHelpListsEnvironment(t *testing.T) {
	out, err := execute(t, "run", "--help")
	if err != nil {
		t.Fatalf("run --help: %v", err)
	}
	for _, key := range []string{
		"PROJECT_ID", "LOCATION", "PROCESSOR_ID", "PROCESSOR_VERSION_ID", "FIELD_MASK",
		"FILES", "OUTPUT_FILE_FORMAT", "OUTPUT_DIR", "OCR_ENGINE", "GOOGLE_API_KEY", "GEMINI_MODEL",
		"TRANSLATION_CONSENT", "TRANSLATION_TARGET_LANGUAGE", "TRANSLATION_SOURCE_LANGUAGE", "TRANSLATION_LOCATION",
	} {
		if !strings.Contains(out, key) {
			t.Errorf("run --help does not mention %s", key)
		}
	}
}
