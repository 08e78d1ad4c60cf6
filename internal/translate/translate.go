// Package translate sends extracted text through a translation service in fixed-size chunks.
package translate

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	translatesvc "cloud.google.com/go/translate/apiv3"
	"cloud.google.com/go/translate/apiv3/translatepb"
	"github.com/googleapis/gax-go/v2"
	"github.com/rotisserie/eris"
	"google.golang.org/api/option"
)

type Translator interface {
	Translate(ctx context.Context, text string) (string, error)
}

// Noop leaves text untouched. It is used when translation is disabled.
type Noop struct{}

func (Noop) Translate(ctx context.Context, text string) (string, error) { return text, nil }

// textClient is the part of the Cloud Translation client that Cloud uses.
type textClient interface {
	TranslateText(ctx context.Context, req *translatepb.TranslateTextRequest, opts ...gax.CallOption) (*translatepb.TranslateTextResponse, error)
	Close() error
}

type Options struct {
	ProjectID      string
	Location       string
	TargetLanguage string
	// SourceLanguage is optional; the service detects it when empty.
	SourceLanguage string
	ChunkSize      int
	Logger         *slog.Logger
}

// Cloud translates through Google Cloud Translation v3, one request per chunk.
type Cloud struct {
	client    textClient
	parent    string
	target    string
	source    string
	chunkSize int
	log       *slog.Logger
}

func NewCloud(ctx context.Context, opts Options, clientOpts ...option.ClientOption) (*Cloud, error) {
	c, err := translatesvc.NewTranslationClient(ctx, clientOpts...)
	if err != nil {
		return nil, eris.Wrap(err, "create translation client")
	}
	return newCloud(c, opts), nil
}

func newCloud(client textClient, opts Options) *Cloud {
	if opts.Location == "" {
		opts.Location = "global"
	}
	if opts.ChunkSize <= 0 {
		opts.ChunkSize = ChunkSize
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
	return &Cloud{
		client:    client,
		parent:    fmt.Sprintf("projects/%s/locations/%s", opts.ProjectID, opts.Location),
		target:    opts.TargetLanguage,
		source:    opts.SourceLanguage,
		chunkSize: opts.ChunkSize,
		log:       opts.Logger,
	}
}

// Translate sends the chunks in order and joins the translations as returned.
func (c *Cloud) Translate(ctx context.Context, text string) (string, error) {
	chunks := Split(text, c.chunkSize)
	var b strings.Builder
	for i, chunk := range chunks {
		c.log.Debug("translating chunk", "chunk", i+1, "of", len(chunks), "chars", len([]rune(chunk)))
		resp, err := c.client.TranslateText(ctx, &translatepb.TranslateTextRequest{
			Parent:             c.parent,
			Contents:           []string{chunk},
			MimeType:           "text/plain",
			TargetLanguageCode: c.target,
			SourceLanguageCode: c.source,
		})
		if err != nil {
			return "", eris.Wrapf(err, "translate chunk %d/%d", i+1, len(chunks))
		}
		for _, t := range resp.GetTranslations() {
			b.WriteString(t.GetTranslatedText())
		}
	}
	return b.String(), nil
}

func (c *Cloud) Close() error { return c.client.Close() }
