// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines the shared data structures for hio: the query wire
// format exchanged with the API gateway, theme tokens, and per-component
// configuration.
package types

// QueryRequest is the JSON body sent to the gateway's query endpoint.
type QueryRequest struct {
	Query string `json:"query" yaml:"query"`
}

// QueryResponse is the answer shape produced by the gateway's LLM query
// function and by the mock querier. Clients that forward arbitrary JSON do
// not depend on it.
type QueryResponse struct {
	// Response is the generated answer text.
	Response string `json:"response" yaml:"response"`

	// Sources lists the documents the answer was drawn from.
	Sources []string `json:"sources" yaml:"sources"`
}

// ErrorResponse is the body the gateway returns alongside a non-2xx status.
type ErrorResponse struct {
	Error string `json:"error" yaml:"error"`
}
