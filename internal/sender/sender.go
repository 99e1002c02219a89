// Package sender issues single HTTP requests on behalf of a listing page:
// CSRF header injection for mutating methods and body decoding driven by the
// response content type.
package sender

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"listing-bidder/internal/biddingerrors"
	"listing-bidder/utils"
)

//go:generate mockgen -source=sender.go -destination=mock_sender.go -package=sender

const (
	// CSRFHeader is the header mutating requests carry the page token in
	CSRFHeader = "X-CSRFToken"
	// RequestIDHeader correlates client and server log lines
	RequestIDHeader = "X-Request-ID"

	defaultTimeout = 10 * time.Second
)

// Doer is the subset of *http.Client the sender needs
type Doer interface {
	Do(*http.Request) (*http.Response, error)
}

// TokenSource yields the page's csrfmiddlewaretoken value
type TokenSource interface {
	CSRFToken() (string, error)
}

// Request describes one outbound request. An empty Method means GET.
type Request struct {
	Method string
	URL    string
	Header http.Header
	Body   io.Reader
}

// Sender issues requests relative to a base URL
type Sender struct {
	baseURL *url.URL
	client  Doer
	tokens  TokenSource
}

// Option configures a Sender
type Option func(*Sender)

// WithDoer replaces the default *http.Client
func WithDoer(d Doer) Option {
	return func(s *Sender) { s.client = d }
}

// WithTimeout sets the timeout of the default *http.Client
func WithTimeout(timeout time.Duration) Option {
	return func(s *Sender) { s.client = &http.Client{Timeout: timeout} }
}

// WithTokenSource sets where POST and PUT requests read their CSRF token from
func WithTokenSource(ts TokenSource) Option {
	return func(s *Sender) { s.tokens = ts }
}

// New creates a Sender resolving relative URLs against baseURL
func New(baseURL string, opts ...Option) (*Sender, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url %q: %w", baseURL, err)
	}

	s := &Sender{
		baseURL: base,
		client:  &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// SetTokenSource swaps the token source, e.g. after a page has been loaded
func (s *Sender) SetTokenSource(ts TokenSource) {
	s.tokens = ts
}

// Send issues req and returns the decoded response body.
// Non-2xx responses come back as *StatusError.
func (s *Sender) Send(ctx context.Context, req Request) (Body, error) {
	method := strings.ToUpper(req.Method)
	if method == "" {
		method = http.MethodGet
	}

	target, err := s.baseURL.Parse(req.URL)
	if err != nil {
		return Body{}, fmt.Errorf("parse url %q: %w", req.URL, err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, target.String(), req.Body)
	if err != nil {
		return Body{}, fmt.Errorf("build request: %w", err)
	}
	for key, values := range req.Header {
		for _, v := range values {
			httpReq.Header.Add(key, v)
		}
	}

	if method == http.MethodPost || method == http.MethodPut {
		token, err := s.csrfToken()
		if err != nil {
			return Body{}, err
		}
		httpReq.Header.Add(CSRFHeader, token)
	}

	requestID := utils.GenerateID()
	httpReq.Header.Set(RequestIDHeader, requestID)

	resp, err := s.client.Do(httpReq)
	if err != nil {
		utils.Error("sender: request failed", map[string]any{
			"method":     method,
			"url":        target.String(),
			"request_id": requestID,
			"error":      err.Error(),
		})
		return Body{}, fmt.Errorf("%s %s: %w: %v", method, target.Path, biddingerrors.ErrNetwork, err)
	}
	defer resp.Body.Close()

	body, err := decodeBody(resp)
	if err != nil {
		return Body{}, fmt.Errorf("%s %s: %w", method, target.Path, err)
	}

	utils.Debug("sender: response received", map[string]any{
		"method":     method,
		"url":        target.String(),
		"status":     resp.StatusCode,
		"json":       body.IsJSON(),
		"request_id": requestID,
	})

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return body, &StatusError{StatusCode: resp.StatusCode, Body: body}
	}
	return body, nil
}

func (s *Sender) csrfToken() (string, error) {
	if s.tokens == nil {
		return "", biddingerrors.ErrMissingCSRFToken
	}
	token, err := s.tokens.CSRFToken()
	if err != nil {
		return "", fmt.Errorf("read csrf token: %w", err)
	}
	return token, nil
}

func decodeBody(resp *http.Response) (Body, error) {
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return Body{}, fmt.Errorf("read response body: %w", err)
	}

	if !strings.Contains(strings.ToLower(resp.Header.Get("Content-Type")), "json") {
		return Body{raw: raw}, nil
	}

	var compact bytes.Buffer
	if err := json.Compact(&compact, raw); err != nil {
		return Body{}, fmt.Errorf("decode json body: %w", err)
	}
	return Body{raw: compact.Bytes(), isJSON: true}, nil
}

// Body is a decoded response body, either JSON or text
type Body struct {
	raw    []byte
	isJSON bool
}

// NewBody wraps an already decoded body, e.g. for fake transports
func NewBody(raw []byte, isJSON bool) Body {
	return Body{raw: raw, isJSON: isJSON}
}

// IsJSON reports whether the response declared a JSON content type
func (b Body) IsJSON() bool {
	return b.isJSON
}

// String returns the text body, or the compact JSON encoding of a JSON body
func (b Body) String() string {
	return string(b.raw)
}

// Decode unmarshals a JSON body into v
func (b Body) Decode(v any) error {
	if !b.isJSON {
		return fmt.Errorf("decode body: response is not json")
	}
	return json.Unmarshal(b.raw, v)
}

// StatusError is returned for responses outside the 2xx range.
// Its message is the decoded body.
type StatusError struct {
	StatusCode int
	Body       Body
}

func (e *StatusError) Error() string {
	return e.Body.String()
}

func (e *StatusError) Is(target error) bool {
	return target == biddingerrors.ErrUnexpectedStatus
}
