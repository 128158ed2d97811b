// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package gateway

import (
	"context"
	"fmt"
	"time"
)

// DefaultMockDelay is the simulated network latency of Mock.
const DefaultMockDelay = 500 * time.Millisecond

// MockSources are the sources every mock response cites.
var MockSources = []string{"doc1.pdf", "website.com/article"}

// Mock answers queries with a fixed response after Delay, without any
// network access. It stands in for the gateway during front-end work.
type Mock struct {
	Delay time.Duration
}

// SubmitQuery returns {"response": ..., "sources": [...]} for query. It
// returns ctx.Err() if the context ends during the simulated delay.
func (m *Mock) SubmitQuery(ctx context.Context, query string) (any, error) {
	if m.Delay > 0 {
		t := time.NewTimer(m.Delay)
		defer t.Stop()
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-t.C:
		}
	}

	sources := make([]any, len(MockSources))
	for i, s := range MockSources {
		sources[i] = s
	}
	return map[string]any{
		"response": fmt.Sprintf("Mock response for query: \"%s\"", query),
		"sources":  sources,
	}, nil
}

var (
	_ Querier = (*Client)(nil)
	_ Querier = (*Mock)(nil)
)
