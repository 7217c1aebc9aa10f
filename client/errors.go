package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
)

// The pipeline surfaces exactly three error shapes: NetworkError,
// TimeoutError, and HTTPError. Callers branch on these with errors.As and
// never see raw transport errors.

// NetworkError means the transport could not complete the call at all
// (DNS failure, connection refused, TLS failure).
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string { return fmt.Sprintf("network error: %v", e.Err) }
func (e *NetworkError) Unwrap() error { return e.Err }

// TimeoutError means the call's deadline elapsed before the transport
// produced a response.
type TimeoutError struct {
	Err error
}

func (e *TimeoutError) Error() string { return fmt.Sprintf("request timed out: %v", e.Err) }
func (e *TimeoutError) Unwrap() error { return e.Err }

// HTTPError means the transport completed but the server answered with a
// non-2xx status. Payload holds the best-effort parsed response body:
// structured data if the body was JSON, the raw text otherwise, nil if empty.
type HTTPError struct {
	StatusCode int
	Payload    interface{}
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("unexpected HTTP status: %d %s", e.StatusCode, http.StatusText(e.StatusCode))
}

// classifyTransportError maps a failed http.Client.Do call onto the taxonomy.
func classifyTransportError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return &TimeoutError{Err: err}
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Timeout() {
		return &TimeoutError{Err: err}
	}
	return &NetworkError{Err: err}
}

// decodePayload parses a response body for HTTPError.Payload.
func decodePayload(body []byte) interface{} {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return nil
	}
	var v interface{}
	if err := json.Unmarshal(trimmed, &v); err == nil {
		return v
	}
	return string(body)
}
