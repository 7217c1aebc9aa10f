package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/bfflix/bfflix/db"
)

// DefaultTimeout bounds one request attempt unless the descriptor overrides it.
const DefaultTimeout = 20 * time.Second

// TokenStore is the credential storage the client reads at call time and
// writes after login. db.TokenRepository satisfies it.
type TokenStore interface {
	Get(ctx context.Context) (*db.Token, error)
	Upsert(ctx context.Context, token *db.Token) error
	Clear(ctx context.Context) error
}

// AccessTokenRefresher yields a fresh access token after a 401, coordinating
// concurrent callers so only one refresh call reaches the backend.
// auth.Coordinator satisfies it.
type AccessTokenRefresher interface {
	EnsureFreshToken(ctx context.Context) (string, error)
}

// Request describes one outgoing API call. A retried call is built from the
// same descriptor with a new Authorization header; the descriptor itself is
// never mutated.
type Request struct {
	Method string
	Path   string
	Query  url.Values
	Header http.Header
	Body   interface{} // marshaled to JSON when non-nil

	// SkipAuth suppresses the Authorization header and the 401 refresh cycle.
	// Login, signup, password reset, and the refresh call itself use it; the
	// refresh call must not be able to trigger its own refresh.
	SkipAuth bool

	// Timeout overrides DefaultTimeout for this call when positive.
	Timeout time.Duration
}

// Response is a completed 2xx call.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// Decode unmarshals the response body into v.
func (r *Response) Decode(v interface{}) error {
	return json.Unmarshal(r.Body, v)
}

// Client is the authenticated request pipeline. Every API call in the app
// goes through Send; callers never talk to the refresh coordinator directly.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenStore
	refresher  AccessTokenRefresher
	timeout    time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithTimeout overrides the default per-attempt timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// New is the constructor for the API client.
func New(baseURL string, tokens TokenStore, refresher AccessTokenRefresher, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
		tokens:     tokens,
		refresher:  refresher,
		timeout:    DefaultTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Send executes one API call. Authenticated calls carry the stored access
// token; on a 401 the pipeline obtains a fresh token through the refresh
// coordinator and retries exactly once. A second 401, or a failed refresh,
// surfaces the 401 as an HTTPError for the session layer to act on.
func (c *Client) Send(ctx context.Context, req Request) (*Response, error) {
	rid := uuid.NewString()

	token := ""
	if !req.SkipAuth {
		record, err := c.tokens.Get(ctx)
		if err != nil {
			// A store read failure is not fatal here: the request goes out
			// unauthenticated and the server rejects it if auth was required.
			log.Warn().Err(err).Str("request_id", rid).Msg("Failed to read token record; sending without Authorization")
		} else if record != nil {
			token = record.AccessToken
		}
	}

	resp, err := c.attempt(ctx, req, token, rid)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusUnauthorized || req.SkipAuth {
		return finish(resp)
	}

	// First attempt came back 401 on an authenticated call: refresh once,
	// retry once. There is deliberately no loop here.
	log.Debug().Str("request_id", rid).Str("path", req.Path).Msg("Received 401; attempting token refresh")
	fresh, err := c.refresher.EnsureFreshToken(ctx)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			return nil, &TimeoutError{Err: err}
		}
		// Refresh failed or no session: the store is already cleared where
		// appropriate; the original 401 is the caller's signal to log out.
		log.Debug().Err(err).Str("request_id", rid).Msg("Refresh did not yield a token; returning original 401")
		return finish(resp)
	}

	retry, err := c.attempt(ctx, req, fresh, rid)
	if err != nil {
		return nil, err
	}
	return finish(retry)
}

// attempt executes the descriptor once under its deadline. Each attempt
// builds a fresh *http.Request so a retry carries the new Authorization
// header without mutating the original descriptor.
func (c *Client) attempt(ctx context.Context, req Request, token, rid string) (*Response, error) {
	timeout := c.timeout
	if req.Timeout > 0 {
		timeout = req.Timeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	httpReq, err := c.newHTTPRequest(ctx, req, token, rid)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	log.Debug().Str("request_id", rid).Str("method", req.Method).Str("path", req.Path).Msg("Sending API request")
	res, err := c.httpClient.Do(httpReq)
	if err != nil {
		classified := classifyTransportError(err)
		log.Debug().Err(err).Str("request_id", rid).Msg("API request failed at transport level")
		return nil, classified
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, classifyTransportError(err)
	}

	log.Debug().Str("request_id", rid).Int("status", res.StatusCode).Msg("API request completed")
	return &Response{StatusCode: res.StatusCode, Header: res.Header, Body: body}, nil
}

// newHTTPRequest materializes a descriptor into an *http.Request.
func (c *Client) newHTTPRequest(ctx context.Context, req Request, token, rid string) (*http.Request, error) {
	u := c.baseURL + "/" + strings.TrimLeft(req.Path, "/")
	if len(req.Query) > 0 {
		u += "?" + req.Query.Encode()
	}

	var body io.Reader
	if req.Body != nil {
		payload, err := json.Marshal(req.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		body = bytes.NewReader(payload)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, u, body)
	if err != nil {
		return nil, err
	}
	for k, vs := range req.Header {
		for _, v := range vs {
			httpReq.Header.Add(k, v)
		}
	}
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("X-Request-ID", rid)
	if req.Body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	if !req.SkipAuth && token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+token)
	}
	return httpReq, nil
}

// finish converts a completed attempt into the caller-facing result:
// 2xx responses pass through, everything else becomes an HTTPError.
func finish(resp *Response) (*Response, error) {
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &HTTPError{StatusCode: resp.StatusCode, Payload: decodePayload(resp.Body)}
	}
	return resp, nil
}
