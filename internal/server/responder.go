// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package server

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/pdiddy/hio-assistant/internal/gateway"
	"github.com/pdiddy/hio-assistant/pkg/types"
)

// Responder produces the answer for one query.
type Responder interface {
	Respond(ctx context.Context, query string) (types.QueryResponse, error)
}

// MockSources are cited by every MockResponder answer.
var MockSources = []string{"mock_source1.txt", "mock_source2.pdf"}

// MockResponder answers without calling a model. Project, Location and Model
// identify the deployment it stands in for.
type MockResponder struct {
	Project  string
	Location string
	Model    string
}

// Respond echoes the query back in a fixed answer, logging the deployment it
// stands in for to the context logger.
func (m *MockResponder) Respond(ctx context.Context, query string) (types.QueryResponse, error) {
	zerolog.Ctx(ctx).Debug().
		Str("project", m.Project).
		Str("location", m.Location).
		Str("model", m.Model).
		Msg("answering with mock response")
	return types.QueryResponse{
		Response: fmt.Sprintf("Mock Vertex AI response for: '%s'", query),
		Sources:  append([]string(nil), MockSources...),
	}, nil
}

// ForwardResponder relays queries to an upstream gateway.
type ForwardResponder struct {
	Client *gateway.Client
}

// Respond submits query upstream and decodes the answer.
func (f *ForwardResponder) Respond(ctx context.Context, query string) (types.QueryResponse, error) {
	var resp types.QueryResponse
	if err := f.Client.Submit(ctx, query, &resp); err != nil {
		return types.QueryResponse{}, fmt.Errorf("forwarding query: %w", err)
	}
	return resp, nil
}
