package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"
)

// DefaultBaseURL is the production API host.
const DefaultBaseURL = "https://api.myace.ai"

// TokenSource supplies the current session token. An empty string means no
// session is held and the request goes out unauthenticated.
type TokenSource interface {
	Token() string
}

// StaticToken is a TokenSource for a fixed token (tests, one-off scripts).
type StaticToken string

func (s StaticToken) Token() string { return string(s) }

// Client is the single transport every API call goes through. It prefixes
// the host, attaches the bearer token and a request ID, encodes and decodes
// JSON, and translates failures into the typed errors in this package.
//
// Calls are fire-once: no retries, no backoff, no coalescing.
type Client struct {
	BaseURL string
	HTTP    *http.Client
	Tokens  TokenSource

	// OnUnauthorized fires whenever the server answers 401. The session
	// layer hooks this to tear down the logged-in state.
	OnUnauthorized func()

	Log *slog.Logger
}

// New returns a Client for the given host. Pass an empty baseURL for the
// production default.
func New(baseURL string, tokens TokenSource) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    &http.Client{},
		Tokens:  tokens,
		Log:     slog.Default(),
	}
}

// do performs one request and returns the HTTP status along with the raw
// body. A non-2xx status is returned as a *ServerError; out, when non-nil,
// receives the decoded 2xx body.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) (int, error) {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return 0, &EncodeError{Err: err}
		}
		reqBody = bytes.NewReader(data)
	}

	u := c.BaseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reqBody)
	if err != nil {
		return 0, &EncodeError{Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if c.Tokens != nil {
		if token := c.Tokens.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return 0, &NetworkError{Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, &NetworkError{Err: err}
	}

	if resp.StatusCode == http.StatusUnauthorized && c.OnUnauthorized != nil {
		c.OnUnauthorized()
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		srvErr := &ServerError{StatusCode: resp.StatusCode, Message: serverMessage(raw)}
		c.Log.Debug("api request failed", "method", method, "path", path, "status", resp.StatusCode)
		return resp.StatusCode, srvErr
	}

	if out != nil {
		if err := json.Unmarshal(raw, out); err != nil {
			return resp.StatusCode, &DecodeError{Err: err}
		}
	}
	return resp.StatusCode, nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	_, err := c.do(ctx, http.MethodGet, path, query, nil, out)
	return err
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	_, err := c.do(ctx, http.MethodPost, path, nil, body, out)
	return err
}

func (c *Client) put(ctx context.Context, path string, body, out any) error {
	_, err := c.do(ctx, http.MethodPut, path, nil, body, out)
	return err
}

func (c *Client) delete(ctx context.Context, path string) error {
	_, err := c.do(ctx, http.MethodDelete, path, nil, nil, nil)
	return err
}

// serverMessage pulls the {"error": "..."} text out of a failure body, if
// the server sent one.
func serverMessage(raw []byte) string {
	var payload struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return ""
	}
	return payload.Error
}
