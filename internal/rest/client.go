// Package rest is the single request/response path every network call in
// the client goes through. It attaches the bearer credential, unwraps the
// server's code/msg/data envelope, classifies failures as business or
// transport errors, and surfaces one user notification per failed call.
package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
	"golang.org/x/oauth2"
)

// Kind selects how the response body is interpreted.
type Kind int

const (
	// KindJSON expects the code/msg/data envelope.
	KindJSON Kind = iota
	// KindBinary returns the raw response bytes; envelope rules do not apply.
	KindBinary
)

// Multipart describes a multipart/form-data upload body.
type Multipart struct {
	Fields    map[string]string
	FileField string
	FileName  string
	File      io.Reader
}

// Spec describes one request: target path, method, and optional
// body/query/headers/response kind.
type Spec struct {
	Path   string
	Method string
	Query  url.Values
	// Body is JSON-encoded when Upload is nil.
	Body   any
	Upload *Multipart
	Header http.Header
	Kind   Kind
}

// Payload is the unwrapped result of a successful call. Response headers
// ride on the struct, outside the JSON payload, so callers that need them
// (the login flow) can read them without them leaking into the decoded data.
type Payload struct {
	// Data is the envelope's data field.
	Data json.RawMessage
	// Raw is the whole envelope body, kept for legacy fields that some
	// endpoints still place outside data.
	Raw json.RawMessage
	// Body holds the response bytes for KindBinary requests.
	Body   []byte
	Header http.Header
}

// Decode unmarshals the payload data into v.
func (p *Payload) Decode(v any) error {
	if len(p.Data) == 0 {
		return fmt.Errorf("response carries no data")
	}
	return json.Unmarshal(p.Data, v)
}

// ClientOptions configures client construction.
type ClientOptions struct {
	HTTPClient *http.Client
	Notifier   Notifier
	Tokens     oauth2.TokenSource
}

// ClientOption mutates ClientOptions.
type ClientOption func(*ClientOptions)

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(client *http.Client) ClientOption {
	return func(opts *ClientOptions) {
		opts.HTTPClient = client
	}
}

// WithNotifier overrides where user notifications go.
func WithNotifier(n Notifier) ClientOption {
	return func(opts *ClientOptions) {
		opts.Notifier = n
	}
}

// WithTokenSource sets the credential source consulted on every request.
// A source yielding an empty access token leaves the request anonymous.
func WithTokenSource(ts oauth2.TokenSource) ClientOption {
	return func(opts *ClientOptions) {
		opts.Tokens = ts
	}
}

// Client is the configured pipeline. All feature endpoints and the auth
// gateway issue their calls through it; nothing else touches the network.
type Client struct {
	base   *url.URL
	http   *http.Client
	notify Notifier
	tokens oauth2.TokenSource
}

// NewClient creates a client for the API server at baseURL.
func NewClient(baseURL string, optFns ...ClientOption) (*Client, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid server URL %q: %w", baseURL, err)
	}

	opts := ClientOptions{}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = &http.Client{Timeout: 5 * time.Second}
	}
	if opts.Notifier == nil {
		opts.Notifier = TermNotifier{}
	}

	return &Client{
		base:   base,
		http:   opts.HTTPClient,
		notify: opts.Notifier,
		tokens: opts.Tokens,
	}, nil
}

// envelope is the server's generic response wrapper. code is a pointer so
// an absent code is distinguishable from zero; both mean success.
type envelope struct {
	Code    *int            `json:"code"`
	Msg     string          `json:"msg"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func (e *envelope) failed() bool {
	return e.Code != nil && *e.Code != 0 && *e.Code != http.StatusOK
}

func (e *envelope) message() string {
	if e.Msg != "" {
		return e.Msg
	}
	return e.Message
}

// Do executes one request. On failure it emits exactly one user
// notification and returns a *BusinessError or *TransportError; it never
// swallows the failure.
func (c *Client) Do(ctx context.Context, spec Spec) (*Payload, error) {
	req, err := c.newRequest(ctx, spec)
	if err != nil {
		// Malformed spec: reject without notification or retry.
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		terr := &TransportError{cause: err}
		c.notify.Error(terr.Error())
		return nil, terr
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		terr := &TransportError{Status: resp.StatusCode, cause: err}
		c.notify.Error(terr.Error())
		return nil, terr
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		terr := &TransportError{
			Status: resp.StatusCode,
			cause:  fmt.Errorf("server returned %s", resp.Status),
		}
		// Prefer a server-embedded message when the error body still
		// carries a parseable envelope.
		var env envelope
		if jsonErr := json.Unmarshal(body, &env); jsonErr == nil {
			terr.Msg = env.message()
		}
		c.notify.Error(terr.Error())
		return nil, terr
	}

	if spec.Kind == KindBinary {
		return &Payload{Body: body, Header: resp.Header}, nil
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		terr := &TransportError{Status: resp.StatusCode, cause: err}
		c.notify.Error(terr.Error())
		return nil, terr
	}

	if env.failed() {
		berr := &BusinessError{Code: *env.Code, Msg: env.message()}
		c.notify.Error(berr.Error())
		return nil, berr
	}

	return &Payload{
		Data:   env.Data,
		Raw:    json.RawMessage(body),
		Header: resp.Header,
	}, nil
}

func (c *Client) newRequest(ctx context.Context, spec Spec) (*http.Request, error) {
	ref, err := url.Parse(spec.Path)
	if err != nil {
		return nil, fmt.Errorf("invalid request path %q: %w", spec.Path, err)
	}
	u := c.base.ResolveReference(ref)
	if len(spec.Query) > 0 {
		u.RawQuery = spec.Query.Encode()
	}

	var body io.Reader
	contentType := ""
	switch {
	case spec.Upload != nil:
		buf, ct, err := encodeMultipart(spec.Upload)
		if err != nil {
			return nil, err
		}
		body, contentType = buf, ct
	case spec.Body != nil:
		data, err := json.Marshal(spec.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		body, contentType = bytes.NewReader(data), "application/json"
	}

	req, err := http.NewRequestWithContext(ctx, spec.Method, u.String(), body)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", uuid.NewString())
	for key, vals := range spec.Header {
		for _, v := range vals {
			req.Header.Add(key, v)
		}
	}

	if c.tokens != nil {
		if tok, err := c.tokens.Token(); err == nil && tok.AccessToken != "" {
			tok.SetAuthHeader(req)
		}
	}

	return req, nil
}

func encodeMultipart(m *Multipart) (*bytes.Buffer, string, error) {
	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)
	for key, val := range m.Fields {
		if err := w.WriteField(key, val); err != nil {
			return nil, "", fmt.Errorf("failed to write form field %q: %w", key, err)
		}
	}
	if m.File != nil {
		part, err := w.CreateFormFile(m.FileField, m.FileName)
		if err != nil {
			return nil, "", fmt.Errorf("failed to create form file: %w", err)
		}
		if _, err := io.Copy(part, m.File); err != nil {
			return nil, "", fmt.Errorf("failed to copy upload body: %w", err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("failed to finalize multipart body: %w", err)
	}
	return buf, w.FormDataContentType(), nil
}
