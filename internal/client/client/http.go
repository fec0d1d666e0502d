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
	"sync"
	"time"

	"github.com/dmitrijs2005/irccwatch/internal/logging"
	"github.com/dmitrijs2005/irccwatch/internal/netx"
	"github.com/google/uuid"
)

// BasePath is the fixed prefix of every backend endpoint.
const BasePath = "/api"

const (
	RequestIDHeader     = "X-Request-ID"
	AuthorizationHeader = "Authorization"
)

// TokenStore is the part of tokenstore.Store the transport needs.
type TokenStore interface {
	Get(ctx context.Context) (string, bool, error)
	Clear(ctx context.Context) error
}

// UnauthorizedHandler is invoked after the stored token was cleared
// because the backend answered 401.
type UnauthorizedHandler func(ctx context.Context)

// HTTPClient is the single JSON transport to the backend. It attaches the
// stored bearer token and turns every 401 into a forced logout.
type HTTPClient struct {
	baseURL       *url.URL
	hc            *http.Client
	tokens        TokenStore
	log           logging.Logger
	allowInsecure bool
	newRequestID  func() string

	mu             sync.RWMutex
	onUnauthorized UnauthorizedHandler
}

type Option func(*HTTPClient)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *HTTPClient) { c.hc = hc }
}

// WithTimeout sets the transport timeout; zero means none.
func WithTimeout(d time.Duration) Option {
	return func(c *HTTPClient) { c.hc.Timeout = d }
}

func WithLogger(l logging.Logger) Option {
	return func(c *HTTPClient) { c.log = l }
}

// WithAllowInsecure permits sending the bearer token over plain http to
// non-loopback hosts.
func WithAllowInsecure(allow bool) Option {
	return func(c *HTTPClient) { c.allowInsecure = allow }
}

func WithUnauthorizedHandler(h UnauthorizedHandler) Option {
	return func(c *HTTPClient) { c.onUnauthorized = h }
}

func NewHTTPClient(baseURL string, tokens TokenStore, opts ...Option) (*HTTPClient, error) {
	u, err := url.Parse(strings.TrimSpace(baseURL))
	if err != nil {
		return nil, fmt.Errorf("invalid base url %q: %w", baseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid base url %q: scheme must be http or https", baseURL)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("invalid base url %q: missing host", baseURL)
	}
	if tokens == nil {
		return nil, errors.New("token store is required")
	}

	c := &HTTPClient{
		baseURL:      u,
		hc:           &http.Client{},
		tokens:       tokens,
		log:          logging.Nop(),
		newRequestID: func() string { return uuid.NewString() },
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// SetUnauthorizedHandler replaces the 401 hook. The session is usually built
// after the client, so the hook is wired late.
func (c *HTTPClient) SetUnauthorizedHandler(h UnauthorizedHandler) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onUnauthorized = h
}

func (c *HTTPClient) unauthorizedHandler() UnauthorizedHandler {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.onUnauthorized
}

func (c *HTTPClient) Get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

func (c *HTTPClient) Post(ctx context.Context, path string, in, out any) error {
	return c.do(ctx, http.MethodPost, path, in, out)
}

func (c *HTTPClient) Put(ctx context.Context, path string, in, out any) error {
	return c.do(ctx, http.MethodPut, path, in, out)
}

func (c *HTTPClient) Delete(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodDelete, path, nil, out)
}

func (c *HTTPClient) endpoint(path string) string {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return strings.TrimRight(c.baseURL.String(), "/") + BasePath + path
}

// secureEnough reports whether a bearer token may travel to the base URL.
func (c *HTTPClient) secureEnough() bool {
	return c.allowInsecure || netx.IsConfidential(c.baseURL)
}

func (c *HTTPClient) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.endpoint(path), body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	requestID := c.newRequestID()
	req.Header.Set(RequestIDHeader, requestID)

	token, ok, err := c.tokens.Get(ctx)
	if err != nil {
		return fmt.Errorf("read token: %w", err)
	}
	if ok {
		if !c.secureEnough() {
			return fmt.Errorf("%w: %s", ErrInsecureTransport, c.baseURL.Host)
		}
		req.Header.Set(AuthorizationHeader, "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.hc.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		c.log.Debug(ctx, "api request failed", "method", method, "path", path, "request_id", requestID, "error", err)
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	c.log.Debug(ctx, "api request",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"duration", time.Since(start),
		"request_id", requestID,
		"authenticated", ok,
	)

	if resp.StatusCode == http.StatusUnauthorized {
		return c.unauthorized(ctx, resp, requestID)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp, requestID)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: read response: %w", ErrUnavailable, err)
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode response of %s %s: %w", method, path, err)
	}
	return nil
}

func (c *HTTPClient) unauthorized(ctx context.Context, resp *http.Response, requestID string) error {
	apiErr := decodeError(resp, requestID)

	if err := c.tokens.Clear(ctx); err != nil {
		c.log.Error(ctx, "failed to clear token after 401", "error", err)
	}
	if h := c.unauthorizedHandler(); h != nil {
		h(ctx)
	}
	return apiErr
}

type errorBody struct {
	Error   string          `json:"error"`
	Message string          `json:"message"`
	Errors  json.RawMessage `json:"errors"`
	Fields  json.RawMessage `json:"fields"`
}

func decodeError(resp *http.Response, requestID string) *APIError {
	apiErr := &APIError{
		Status:    resp.StatusCode,
		Kind:      kindForStatus(resp.StatusCode),
		RequestID: requestID,
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil || len(bytes.TrimSpace(raw)) == 0 {
		apiErr.Message = http.StatusText(resp.StatusCode)
		return apiErr
	}

	var eb errorBody
	if err := json.Unmarshal(raw, &eb); err != nil {
		apiErr.Message = strings.TrimSpace(string(raw))
		return apiErr
	}
	apiErr.Message = eb.Error
	if apiErr.Message == "" {
		apiErr.Message = eb.Message
	}
	if apiErr.Message == "" {
		apiErr.Message = http.StatusText(resp.StatusCode)
	}
	apiErr.Fields = decodeFields(eb.Fields)
	if apiErr.Fields == nil {
		apiErr.Fields = decodeFields(eb.Errors)
	}
	return apiErr
}

// decodeFields accepts {"field": "msg"} or a list of messages.
func decodeFields(raw json.RawMessage) map[string]string {
	if len(raw) == 0 {
		return nil
	}
	var m map[string]string
	if err := json.Unmarshal(raw, &m); err == nil && len(m) > 0 {
		return m
	}
	var list []string
	if err := json.Unmarshal(raw, &list); err == nil && len(list) > 0 {
		return map[string]string{"": strings.Join(list, "; ")}
	}
	return nil
}
