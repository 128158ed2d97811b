// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package gateway

import (
	"errors"
	"fmt"
)

// ErrMissingBaseURL is returned when no gateway base URL is configured.
var ErrMissingBaseURL = errors.New("gateway base URL is not configured: set gateway.base_url or HIO_GATEWAY_BASE_URL")

// StatusError reports a non-2xx gateway response.
type StatusError struct {
	StatusCode int
	// Body is the response body text, empty when it could not be read.
	Body string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("gateway returned HTTP %d", e.StatusCode)
	}
	return fmt.Sprintf("gateway returned HTTP %d: %s", e.StatusCode, e.Body)
}
