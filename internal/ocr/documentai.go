package ocr

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	documentai "cloud.google.com/go/documentai/apiv1"
	"cloud.google.com/go/documentai/apiv1/documentaipb"
	"github.com/googleapis/gax-go/v2"
	"github.com/rotisserie/eris"
	"google.golang.org/api/option"
	"google.golang.org/protobuf/types/known/fieldmaskpb"
)

type processClient interface {
	ProcessDocument(ctx context.Context, req *documentaipb.ProcessRequest, opts ...gax.CallOption) (*documentaipb.ProcessResponse, error)
	Close() error
}

type DocumentAIOptions struct {
	ProjectID   string
	Location    string
	ProcessorID string
	// ProcessorVersionID pins a processor version; empty uses the default version.
	ProcessorVersionID string
	FieldMask          []string
	Logger             *slog.Logger
}

// DocumentAI runs each file through a Google Cloud Document AI processor.
type DocumentAI struct {
	client    processClient
	name      string
	fieldMask *fieldmaskpb.FieldMask
	log       *slog.Logger
}

// Endpoint is the regional API endpoint for a Document AI location such as "us" or "eu".
func Endpoint(location string) string {
	return fmt.Sprintf("%s-documentai.googleapis.com:443", location)
}

// ProcessorName is the full resource name of the processor, or of a pinned
// processor version when versionID is set.
func ProcessorName(projectID, location, processorID, versionID string) string {
	name := fmt.Sprintf("projects/%s/locations/%s/processors/%s", projectID, location, processorID)
	if versionID != "" {
		name += "/processorVersions/" + versionID
	}
	return name
}

func NewDocumentAI(ctx context.Context, opts DocumentAIOptions, clientOpts ...option.ClientOption) (*DocumentAI, error) {
	clientOpts = append([]option.ClientOption{option.WithEndpoint(Endpoint(opts.Location))}, clientOpts...)
	c, err := documentai.NewDocumentProcessorClient(ctx, clientOpts...)
	if err != nil {
		return nil, eris.Wrap(err, "create document processor client")
	}
	return newDocumentAI(c, opts), nil
}

func newDocumentAI(client processClient, opts DocumentAIOptions) *DocumentAI {
	d := &DocumentAI{
		client: client,
		name:   ProcessorName(opts.ProjectID, opts.Location, opts.ProcessorID, opts.ProcessorVersionID),
		log:    opts.Logger,
	}
	if d.log == nil {
		d.log = slog.New(slog.DiscardHandler)
	}
	if len(opts.FieldMask) > 0 {
		d.fieldMask = &fieldmaskpb.FieldMask{Paths: opts.FieldMask}
	}
	return d
}

func (d *DocumentAI) ExtractText(ctx context.Context, path string) (string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return "", eris.Wrapf(err, "read %s", path)
	}
	d.log.Debug("submitting document", "processor", d.name, "path", path, "bytes", len(content))
	resp, err := d.client.ProcessDocument(ctx, &documentaipb.ProcessRequest{
		Name: d.name,
		Source: &documentaipb.ProcessRequest_RawDocument{
			RawDocument: &documentaipb.RawDocument{
				Content:  content,
				MimeType: MIMEType,
			},
		},
		FieldMask: d.fieldMask,
	})
	if err != nil {
		return "", eris.Wrapf(err, "process %s", path)
	}
	return resp.GetDocument().GetText(), nil
}

func (d *DocumentAI) Close() error { return d.client.Close() }
