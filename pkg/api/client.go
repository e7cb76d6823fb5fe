// Package api provides a client for the Trackme REST API.
//
// A Client translates typed method calls into HTTP requests, attaches the
// bearer token held by its Session to authenticated requests, and returns
// decoded resources. Every non-2xx response is returned as an
// *httpclient.APIError whose message is the server's detail.
//
// The typed methods decode into the structs of pkg/types, so fields the
// server adds beyond those structs are dropped. Client.DoRaw returns the
// response body unchanged and is the way to read a resource in full.
package api

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/trackme/trackme/internal/common/httpclient"
	"github.com/trackme/trackme/pkg/types"
)

// DefaultBaseURL is used when New is called with an empty base URL.
const DefaultBaseURL = "http://localhost:8000"

// APIError is the error returned for non-2xx responses.
type APIError = httpclient.APIError

// RequestOptions describes a request sent with Client.Do.
type RequestOptions = httpclient.RequestOptions

// ErrRequestFailed is matched by every APIError.
var ErrRequestFailed = httpclient.ErrRequestFailed

// Client is a Trackme API client. It is safe for concurrent use.
type Client struct {
	baseURL string
	session *Session
	http    *httpclient.HTTPClient
}

// ClientOption configures a Client.
type ClientOption func(*clientConfig)

type clientConfig struct {
	httpClient    *http.Client
	timeout       time.Duration
	session       *Session
	logger        *zerolog.Logger
	retryAttempts uint
	retryDelay    time.Duration
	insecure      bool
}

// WithHTTPClient sets the underlying *http.Client. Timeout and TLS options
// are ignored when it is set.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *clientConfig) {
		c.httpClient = hc
	}
}

// WithTimeout sets the timeout of each request attempt.
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *clientConfig) {
		c.timeout = timeout
	}
}

// WithSession makes the client use s for its credentials. Clients sharing a
// Session observe each other's logins and logouts.
func WithSession(s *Session) ClientOption {
	return func(c *clientConfig) {
		c.session = s
	}
}

// WithLogger sets the logger used for failed requests.
func WithLogger(l zerolog.Logger) ClientOption {
	return func(c *clientConfig) {
		c.logger = &l
	}
}

// WithRetry retries requests that fail at the transport level, up to
// attempts tries in total, backing off from delay. Error responses are never
// retried. The default is a single attempt.
func WithRetry(attempts uint, delay time.Duration) ClientOption {
	return func(c *clientConfig) {
		c.retryAttempts = attempts
		c.retryDelay = delay
	}
}

// WithInsecureSkipVerify disables TLS certificate validation.
func WithInsecureSkipVerify() ClientOption {
	return func(c *clientConfig) {
		c.insecure = true
	}
}

// New creates a client for the API at baseURL.
func New(baseURL string, opts ...ClientOption) *Client {
	config := clientConfig{}
	for _, opt := range opts {
		opt(&config)
	}

	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	session := config.session
	if session == nil {
		session = NewSession("")
	}

	c := &Client{
		baseURL: baseURL,
		session: session,
	}
	c.http = httpclient.NewClientWithOptions(&endpoint{client: c}, httpclient.ClientOptions{
		HTTPClient:            config.httpClient,
		Timeout:               config.timeout,
		DisableCertValidation: config.insecure,
		RetryAttempts:         config.retryAttempts,
		RetryDelay:            config.retryDelay,
		Logger:                config.logger,
	})
	return c
}

// endpoint exposes the client's location and credentials to httpclient.
type endpoint struct {
	client *Client
}

func (e *endpoint) GetServerURL() string { return e.client.baseURL }
func (e *endpoint) GetToken() string     { return e.client.session.Token() }

// BaseURL returns the API base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Session returns the session holding the client's credentials.
func (c *Client) Session() *Session {
	return c.session
}

// Token returns the current session token, or "" when logged out.
func (c *Client) Token() string {
	return c.session.Token()
}

// SetToken replaces the session token. An empty token logs the client out.
func (c *Client) SetToken(token string) {
	c.session.SetToken(token)
}

// Logout discards the session token.
func (c *Client) Logout() {
	c.session.Clear()
}

// IsAuthenticated reports whether the client holds a token.
func (c *Client) IsAuthenticated() bool {
	return c.session.Token() != ""
}

// Do sends an arbitrary request and decodes the response into out when out
// is non-nil.
func (c *Client) Do(ctx context.Context, opts RequestOptions, out any) error {
	return c.http.Do(ctx, opts, out)
}

// DoRaw sends an arbitrary request and returns the response body unchanged.
func (c *Client) DoRaw(ctx context.Context, opts RequestOptions) ([]byte, error) {
	return c.http.DoRequest(ctx, opts)
}

// Root returns the API name and version.
func (c *Client) Root(ctx context.Context) (*types.ServerInfo, error) {
	var info types.ServerInfo
	if err := c.http.Do(ctx, RequestOptions{Path: "/", NoAuth: true}, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// Health reports the server health status.
func (c *Client) Health(ctx context.Context) (*types.HealthStatus, error) {
	var status types.HealthStatus
	if err := c.http.Do(ctx, RequestOptions{Path: "/health", NoAuth: true}, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

func (c *Client) get(ctx context.Context, path string, params Params, out any) error {
	return c.http.Do(ctx, RequestOptions{
		Method:      http.MethodGet,
		Path:        path,
		QueryParams: params.values(),
	}, out)
}

func (c *Client) send(ctx context.Context, method, path string, body any, out any) error {
	return c.http.Do(ctx, RequestOptions{
		Method: method,
		Path:   path,
		Body:   body,
	}, out)
}

func (c *Client) delete(ctx context.Context, path string) error {
	_, err := c.http.DoRequest(ctx, RequestOptions{Method: http.MethodDelete, Path: path})
	return err
}
