// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package ingest routes uploaded documents to a processor by file type.
// Storage upload events name a bucket and an object; PDFs and scanned
// documents go to the document processor and photos to the image processor.
package ingest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/rs/zerolog"

	"github.com/pdiddy/hio-assistant/pkg/types"
)

// Kind is the processing path for a file.
type Kind string

const (
	KindDocument Kind = "document"
	KindImage    Kind = "image"
)

var (
	// ErrMissingProject is returned when no project is configured.
	ErrMissingProject = errors.New("ingest project is not configured")

	// ErrInvalidEvent is returned for events without a bucket or object name.
	ErrInvalidEvent = errors.New("invalid storage event: bucket and name are required")

	// ErrUnsupportedType is returned for file extensions no processor handles.
	ErrUnsupportedType = errors.New("unsupported file type")
)

// extensionKinds maps lower-case extensions to their processing path and
// MIME type.
var extensionKinds = map[string]struct {
	kind Kind
	mime string
}{
	"pdf":  {KindDocument, "application/pdf"},
	"tiff": {KindDocument, "image/tiff"},
	"gif":  {KindDocument, "image/gif"},
	"jpg":  {KindImage, "image/jpeg"},
	"jpeg": {KindImage, "image/jpeg"},
	"png":  {KindImage, "image/png"},
	"bmp":  {KindImage, "image/bmp"},
	"webp": {KindImage, "image/webp"},
}

// StorageEvent is the payload of an object upload notification.
type StorageEvent struct {
	Bucket      string `json:"bucket" yaml:"bucket"`
	Name        string `json:"name" yaml:"name"`
	ContentType string `json:"contentType,omitempty" yaml:"content_type,omitempty"`
}

// URI returns the gs:// URI of the uploaded object.
func (e StorageEvent) URI() string {
	return "gs://" + e.Bucket + "/" + e.Name
}

// DecodeEvent reads one JSON StorageEvent from r.
func DecodeEvent(r io.Reader) (StorageEvent, error) {
	var ev StorageEvent
	if err := json.NewDecoder(r).Decode(&ev); err != nil {
		return StorageEvent{}, fmt.Errorf("decoding storage event: %w", err)
	}
	return ev, nil
}

// Route returns the processing path and MIME type for an object name.
func Route(name string) (Kind, string, error) {
	ext := strings.ToLower(strings.TrimPrefix(path.Ext(name), "."))
	k, ok := extensionKinds[ext]
	if !ok {
		return "", "", fmt.Errorf("%w: %q for file %s", ErrUnsupportedType, ext, name)
	}
	return k.kind, k.mime, nil
}

// Document is the unit of work handed to a Processor.
type Document struct {
	URI      string
	Kind     Kind
	MIMEType string
	Project  string
	Location string
	// ProcessorID names the document processor; empty for images.
	ProcessorID string
}

// Processor extracts content from one document.
type Processor interface {
	Process(ctx context.Context, doc Document) error
}

// Router dispatches storage events to processors.
type Router struct {
	cfg        types.IngestConfig
	processors map[Kind]Processor
	log        zerolog.Logger
}

// NewRouter returns a router using processors by kind. Kinds without a
// processor fall back to a LogProcessor.
func NewRouter(cfg types.IngestConfig, processors map[Kind]Processor, log zerolog.Logger) *Router {
	if cfg.Location == "" {
		cfg.Location = "us-central1"
	}
	r := &Router{cfg: cfg, processors: make(map[Kind]Processor), log: log}
	for _, k := range []Kind{KindDocument, KindImage} {
		if p, ok := processors[k]; ok && p != nil {
			r.processors[k] = p
		} else {
			r.processors[k] = &LogProcessor{Log: log}
		}
	}
	return r
}

// Handle validates ev, routes it by extension and runs the processor.
func (r *Router) Handle(ctx context.Context, ev StorageEvent) (Document, error) {
	if r.cfg.Project == "" {
		return Document{}, ErrMissingProject
	}
	if ev.Bucket == "" || ev.Name == "" {
		return Document{}, ErrInvalidEvent
	}

	kind, mime, err := Route(ev.Name)
	if err != nil {
		r.log.Warn().Str("uri", ev.URI()).Msg("skipping unsupported file")
		return Document{}, err
	}

	doc := Document{
		URI:      ev.URI(),
		Kind:     kind,
		MIMEType: mime,
		Project:  r.cfg.Project,
		Location: r.cfg.Location,
	}
	if kind == KindDocument {
		doc.ProcessorID = r.cfg.ProcessorID
	}
	r.log.Info().Str("uri", doc.URI).Str("kind", string(kind)).Msg("processing document")

	if err := r.processors[kind].Process(ctx, doc); err != nil {
		return doc, fmt.Errorf("processing %s: %w", doc.URI, err)
	}
	r.log.Info().Str("uri", doc.URI).Msg("processed document")
	return doc, nil
}

// LogProcessor records documents in the log without extracting anything.
type LogProcessor struct {
	Log zerolog.Logger
}

// Process logs doc.
func (p *LogProcessor) Process(_ context.Context, doc Document) error {
	p.Log.Info().
		Str("uri", doc.URI).
		Str("kind", string(doc.Kind)).
		Str("mime_type", doc.MIMEType).
		Str("project", doc.Project).
		Str("location", doc.Location).
		Str("processor_id", doc.ProcessorID).
		Msg("document queued for extraction")
	return nil
}
