package ocr

import (
	"context"
	"os"
	"strings"

	"github.com/rotisserie/eris"
	genai "google.golang.org/genai"
)

const transcribePrompt = `Transcribe all text in this PDF in reading order.
Return ONLY the plain text - no markdown, no code fences, no commentary.
Separate pages with a blank line.`

type generator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Gemini transcribes PDFs with a multimodal Gemini model instead of a Document AI processor.
type Gemini struct {
	models generator
	model  string
}

func NewGemini(ctx context.Context, apiKey, model string) (*Gemini, error) {
	if apiKey == "" {
		return nil, eris.New("missing GOOGLE_API_KEY")
	}
	if model == "" {
		model = "gemini-2.5-flash"
	}
	c, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey, Backend: genai.BackendGeminiAPI})
	if err != nil {
		return nil, eris.Wrap(err, "create gemini client")
	}
	return &Gemini{models: c.Models, model: model}, nil
}

func (g *Gemini) ExtractText(ctx context.Context, path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", eris.Wrapf(err, "read %s", path)
	}
	content := []*genai.Content{
		{
			Role: genai.RoleUser,
			Parts: []*genai.Part{
				{Text: transcribePrompt},
				{InlineData: &genai.Blob{MIMEType: MIMEType, Data: b}},
			},
		},
	}
	res, err := g.models.GenerateContent(ctx, g.model, content, nil)
	if err != nil {
		return "", eris.Wrapf(err, "gemini transcription of %s", path)
	}
	return stripCodeFences(res.Text()), nil
}

func (g *Gemini) Close() error { return nil }

func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		if nl := strings.Index(s, "\n"); nl != -1 {
			s = s[nl+1:]
		} else {
			s = strings.TrimPrefix(s, "```")
		}
	}
	if strings.HasSuffix(s, "```") {
		s = strings.TrimSpace(strings.TrimSuffix(s, "```"))
	}
	return s
}
