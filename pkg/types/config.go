// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings used by components that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "hio/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// GatewayConfig holds settings for the API gateway client.
type GatewayConfig struct {
	HTTPConfig `yaml:",inline"`

	// BaseURL is the API gateway root, e.g. "https://gw.example.com/api".
	// Queries are posted to BaseURL + "/query". Empty means unconfigured.
	BaseURL string `json:"base_url" yaml:"base_url"`

	// APIKey is an optional bearer token sent with every request.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// MaxRetries is the number of retries on HTTP 429. Zero disables retrying.
	MaxRetries int `json:"max_retries" yaml:"max_retries"`
}

// ServerConfig holds settings for the local development gateway.
type ServerConfig struct {
	// Addr is the listen address (default ":3001").
	Addr string `json:"addr" yaml:"addr"`

	// Prefix is the path prefix the query route is mounted under (default "/api").
	Prefix string `json:"prefix" yaml:"prefix"`

	// Project is the cloud project the query function runs in. Queries are
	// rejected while it is empty.
	Project string `json:"project" yaml:"project"`

	// Location is the model region (default "us-central1").
	Location string `json:"location" yaml:"location"`

	// Model is the generative model name reported by the mock responder.
	Model string `json:"model" yaml:"model"`

	// Upstream, when set, makes the server forward queries to another
	// gateway instead of answering with mock responses.
	Upstream GatewayConfig `json:"upstream" yaml:"upstream"`

	// ShutdownTimeout bounds graceful shutdown (default 5s).
	ShutdownTimeout time.Duration `json:"shutdown_timeout" yaml:"shutdown_timeout"`
}

// HistoryConfig holds settings for the local query history.
type HistoryConfig struct {
	// Dir is the directory holding history.db.
	Dir string `json:"dir" yaml:"dir"`

	// Enabled controls whether queries are recorded.
	Enabled bool `json:"enabled" yaml:"enabled"`

	// MaxResults is the default number of entries listed (default 20).
	MaxResults int `json:"max_results" yaml:"max_results"`
}

// IngestConfig holds settings for the document ingest router.
type IngestConfig struct {
	// Project is the cloud project documents are processed in.
	Project string `json:"project" yaml:"project"`

	// Location is the processing region (default "us-central1").
	Location string `json:"location" yaml:"location"`

	// ProcessorID is the Document AI processor used for document files.
	ProcessorID string `json:"processor_id" yaml:"processor_id"`
}
