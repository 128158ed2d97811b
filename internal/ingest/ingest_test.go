// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ingest

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/hio-assistant/pkg/types"
)

type recordingProcessor struct {
	docs []Document
	err  error
}

func (p *recordingProcessor) Process(_ context.Context, doc Document) error {
	p.docs = append(p.docs, doc)
	return p.err
}

func TestRoute(t *testing.T) {
	tests := []struct {
		name     string
		wantKind Kind
		wantMIME string
		wantErr  bool
	}{
		{"report.pdf", KindDocument, "application/pdf", false},
		{"scan.TIFF", KindDocument, "image/tiff", false},
		{"anim.gif", KindDocument, "image/gif", false},
		{"photos/site.JPG", KindImage, "image/jpeg", false},
		{"photo.jpeg", KindImage, "image/jpeg", false},
		{"logo.png", KindImage, "image/png", false},
		{"old.bmp", KindImage, "image/bmp", false},
		{"hero.webp", KindImage, "image/webp", false},
		{"notes.docx", "", "", true},
		{"README", "", "", true},
		{"archive.tar.gz", "", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kind, mime, err := Route(tt.name)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnsupportedType)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantKind, kind)
			assert.Equal(t, tt.wantMIME, mime)
		})
	}
}

func TestStorageEventURI(t *testing.T) {
	ev := StorageEvent{Bucket: "hio-uploads", Name: "2026/03/brochure.pdf"}
	assert.Equal(t, "gs://hio-uploads/2026/03/brochure.pdf", ev.URI())
}

func TestDecodeEvent(t *testing.T) {
	ev, err := DecodeEvent(strings.NewReader(`{"bucket":"b","name":"n.png","contentType":"image/png","size":"12"}`))
	require.NoError(t, err)
	assert.Equal(t, StorageEvent{Bucket: "b", Name: "n.png", ContentType: "image/png"}, ev)

	_, err = DecodeEvent(strings.NewReader(`not json`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decoding storage event")
}

func TestHandleRoutesByKind(t *testing.T) {
	docs := &recordingProcessor{}
	images := &recordingProcessor{}
	r := NewRouter(types.IngestConfig{Project: "hio-prod", ProcessorID: "ocr-1"},
		map[Kind]Processor{KindDocument: docs, KindImage: images}, zerolog.Nop())

	doc, err := r.Handle(context.Background(), StorageEvent{Bucket: "b", Name: "menu.pdf"})
	require.NoError(t, err)
	assert.Equal(t, Document{
		URI: "gs://b/menu.pdf", Kind: KindDocument, MIMEType: "application/pdf",
		Project: "hio-prod", Location: "us-central1", ProcessorID: "ocr-1",
	}, doc)

	_, err = r.Handle(context.Background(), StorageEvent{Bucket: "b", Name: "site.webp"})
	require.NoError(t, err)

	require.Len(t, docs.docs, 1)
	require.Len(t, images.docs, 1)
	assert.Equal(t, "gs://b/site.webp", images.docs[0].URI)
	assert.Empty(t, images.docs[0].ProcessorID)
}

func TestHandleErrors(t *testing.T) {
	tests := []struct {
		name    string
		cfg     types.IngestConfig
		ev      StorageEvent
		wantErr error
	}{
		{"missing project", types.IngestConfig{}, StorageEvent{Bucket: "b", Name: "a.pdf"}, ErrMissingProject},
		{"missing bucket", types.IngestConfig{Project: "p"}, StorageEvent{Name: "a.pdf"}, ErrInvalidEvent},
		{"missing name", types.IngestConfig{Project: "p"}, StorageEvent{Bucket: "b"}, ErrInvalidEvent},
		{"unsupported", types.IngestConfig{Project: "p"}, StorageEvent{Bucket: "b", Name: "a.csv"}, ErrUnsupportedType},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &recordingProcessor{}
			r := NewRouter(tt.cfg, map[Kind]Processor{KindDocument: p, KindImage: p}, zerolog.Nop())
			_, err := r.Handle(context.Background(), tt.ev)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, p.docs)
		})
	}
}

func TestHandleProcessorFailure(t *testing.T) {
	p := &recordingProcessor{err: errors.New("quota exceeded")}
	r := NewRouter(types.IngestConfig{Project: "p", Location: "europe-west2"}, map[Kind]Processor{KindImage: p}, zerolog.Nop())

	doc, err := r.Handle(context.Background(), StorageEvent{Bucket: "b", Name: "x.png"})
	require.Error(t, err)
	assert.Equal(t, "processing gs://b/x.png: quota exceeded", err.Error())
	assert.Equal(t, "europe-west2", doc.Location)
}

func TestDefaultLogProcessor(t *testing.T) {
	var buf bytes.Buffer
	r := NewRouter(types.IngestConfig{Project: "p", ProcessorID: "ocr-1"}, nil, zerolog.New(&buf))

	_, err := r.Handle(context.Background(), StorageEvent{Bucket: "b", Name: "scan.tiff"})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), `"message":"document queued for extraction"`)
	assert.Contains(t, buf.String(), `"mime_type":"image/tiff"`)
	assert.Contains(t, buf.String(), `"processor_id":"ocr-1"`)
}
