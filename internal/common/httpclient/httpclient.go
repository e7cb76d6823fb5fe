// Package httpclient provides the request primitive used to talk to the
// Trackme REST API. It builds requests from a RequestOptions value, attaches
// bearer credentials supplied by a Configurator, and normalizes error
// responses into a single APIError kind.
package httpclient

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/tidwall/gjson"
	"github.com/trackme/trackme/internal/common/logtrace"
	"github.com/trackme/trackme/internal/common/uuid"
)

// DefaultTimeout is applied when ClientOptions does not specify a timeout or
// an *http.Client.
const DefaultTimeout = 30 * time.Second

var (
	// ErrRequestFailed is matched by every *APIError.
	ErrRequestFailed = errors.New("API request failed")
	// ErrInvalidPath is returned before any I/O when a path does not start
	// with "/" or carries a malformed percent escape.
	ErrInvalidPath = errors.New("invalid endpoint path")
	// ErrInvalidResponse is returned when a successful response does not carry JSON.
	ErrInvalidResponse = errors.New("response is not valid JSON")
)

// Configurator supplies the server location and the current credentials.
type Configurator interface {
	GetServerURL() string
	GetToken() string
}

// APIError is returned for every non-2xx response.
type APIError struct {
	StatusCode int    // HTTP status code of the response
	Message    string // detail from the response body, or the status text
}

func (e *APIError) Error() string {
	return e.Message
}

func (e *APIError) Is(target error) bool {
	return target == ErrRequestFailed
}

// StatusCode returns the HTTP status carried by err, or 0 if err is not an APIError.
func StatusCode(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}

// HTTPClient executes requests against the server returned by its Configurator.
type HTTPClient struct {
	config        Configurator
	httpClient    *http.Client
	retryAttempts uint
	retryDelay    time.Duration
	logger        zerolog.Logger
}

// ClientOptions contains options for configuring the HTTP client.
type ClientOptions struct {
	HTTPClient            *http.Client    // used as is when set
	Timeout               time.Duration   // DefaultTimeout when zero
	DisableCertValidation bool            // skips TLS certificate validation
	RetryAttempts         uint            // total attempts for transport failures, 1 when zero
	RetryDelay            time.Duration   // base delay between attempts
	Logger                *zerolog.Logger // global logger when nil
}

// NewClient creates a new HTTP client using the provided configuration.
func NewClient(config Configurator, opts ...ClientOptions) *HTTPClient {
	clientOpts := ClientOptions{}
	if len(opts) > 0 {
		clientOpts = opts[0]
	}
	return NewClientWithOptions(config, clientOpts)
}

// NewClientWithOptions creates a new HTTP client using the provided configuration and options.
func NewClientWithOptions(config Configurator, opts ClientOptions) *HTTPClient {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.Timeout
		if timeout == 0 {
			timeout = DefaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
		if opts.DisableCertValidation {
			httpClient.Transport = &http.Transport{
				TLSClientConfig: &tls.Config{
					InsecureSkipVerify: true,
				},
			}
		}
	}

	attempts := opts.RetryAttempts
	if attempts == 0 {
		attempts = 1
	}
	delay := opts.RetryDelay
	if delay == 0 {
		delay = 200 * time.Millisecond
	}

	logger := log.Logger
	if opts.Logger != nil {
		logger = *opts.Logger
	}

	return &HTTPClient{
		config:        config,
		httpClient:    httpClient,
		retryAttempts: attempts,
		retryDelay:    delay,
		logger:        logger,
	}
}

// RequestOptions describes a single API request.
type RequestOptions struct {
	Method      string            // GET when empty
	Path        string            // escaped endpoint path, must start with "/"; may carry a query string
	QueryParams map[string]string // merged into the query string
	Body        any               // []byte and json.RawMessage are sent as is, other values are JSON encoded
	Headers     map[string]string // extra headers; Content-Type and Authorization are ignored
	NoAuth      bool              // never send the Authorization header
}

// DoRequest makes an HTTP request with the given options and returns the
// response body unchanged. A 204 response returns a nil body.
func (c *HTTPClient) DoRequest(ctx context.Context, opts RequestOptions) ([]byte, error) {
	endpoint, _, _ := strings.Cut(opts.Path, "?")
	body, err := c.doRequest(ctx, opts)
	if err != nil {
		ev := c.logger.Error().Str("endpoint", endpoint).Err(err)
		if code := StatusCode(err); code != 0 {
			ev = ev.Int("status", code)
		}
		ev.Msg("API request failed")
		return nil, err
	}
	return body, nil
}

// Do executes the request and decodes a non-empty response into out.
func (c *HTTPClient) Do(ctx context.Context, opts RequestOptions, out any) error {
	body, err := c.DoRequest(ctx, opts)
	if err != nil {
		return err
	}
	if out == nil || len(body) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func (c *HTTPClient) doRequest(ctx context.Context, opts RequestOptions) ([]byte, error) {
	if !strings.HasPrefix(opts.Path, "/") {
		return nil, fmt.Errorf("%w: %q", ErrInvalidPath, opts.Path)
	}
	method := opts.Method
	if method == "" {
		method = http.MethodGet
	}

	u, err := c.buildURL(opts)
	if err != nil {
		return nil, err
	}

	payload, err := encodeBody(opts.Body)
	if err != nil {
		return nil, err
	}

	requestID := logtrace.RequestIdFromContext(ctx)
	if requestID == "" {
		requestID = uuid.NewRequestID()
	}

	var resp *http.Response
	err = retry.Do(
		func() error {
			var bodyReader io.Reader
			if payload != nil {
				bodyReader = bytes.NewReader(payload)
			}
			req, err := http.NewRequestWithContext(ctx, method, u.String(), bodyReader)
			if err != nil {
				return retry.Unrecoverable(fmt.Errorf("failed to create request: %w", err))
			}
			req.Header.Set("Content-Type", "application/json")
			req.Header.Set(logtrace.RequestIDHeader, requestID)
			for k, v := range opts.Headers {
				if reservedHeaders[http.CanonicalHeaderKey(k)] {
					continue
				}
				req.Header.Set(k, v)
			}
			if !opts.NoAuth {
				if token := c.config.GetToken(); token != "" {
					req.Header.Set("Authorization", "Bearer "+token)
				}
			}

			r, err := c.httpClient.Do(req)
			if err != nil {
				return fmt.Errorf("request failed: %w", err)
			}
			resp = r
			return nil
		},
		retry.Attempts(c.retryAttempts),
		retry.Context(ctx),
		retry.Delay(c.retryDelay),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			c.logger.Debug().Uint("attempt", n+1).Str("method", method).Str("endpoint", u.Path).Err(err).Msg("retrying request")
		}),
	)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	c.logger.Debug().
		Str("method", method).
		Str("endpoint", u.Path).
		Int("status", resp.StatusCode).
		Str("request_id", requestID).
		Msg("api request")

	if resp.StatusCode == http.StatusNoContent {
		return nil, nil
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Message:    errorMessage(body, resp),
		}
	}

	if !gjson.ValidBytes(body) {
		return nil, ErrInvalidResponse
	}
	return body, nil
}

// reservedHeaders are owned by the client and cannot be overridden through
// RequestOptions.Headers.
var reservedHeaders = map[string]bool{
	"Content-Type":  true,
	"Authorization": true,
}

func (c *HTTPClient) buildURL(opts RequestOptions) (*url.URL, error) {
	u, err := url.Parse(c.config.GetServerURL())
	if err != nil {
		return nil, fmt.Errorf("invalid server URL: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid server URL: %q", c.config.GetServerURL())
	}

	// Path is taken as already escaped, so segments built with
	// url.PathEscape reach the server as the caller encoded them.
	p, rawQuery, _ := strings.Cut(opts.Path, "?")
	rawPath := strings.TrimRight(u.EscapedPath(), "/") + p
	decoded, err := url.PathUnescape(rawPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidPath, opts.Path)
	}
	u.Path = decoded
	u.RawPath = rawPath

	q, err := url.ParseQuery(rawQuery)
	if err != nil {
		return nil, fmt.Errorf("invalid query string: %w", err)
	}
	for k, v := range opts.QueryParams {
		q.Set(k, v)
	}
	u.RawQuery = q.Encode()
	return u, nil
}

func encodeBody(body any) ([]byte, error) {
	switch b := body.(type) {
	case nil:
		return nil, nil
	case []byte:
		return b, nil
	case json.RawMessage:
		return b, nil
	default:
		data, err := json.Marshal(b)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		return data, nil
	}
}

// errorMessage returns the detail carried by an error body, or the status
// text when the body has none.
func errorMessage(body []byte, resp *http.Response) string {
	if gjson.ValidBytes(body) {
		detail := gjson.GetBytes(body, "detail")
		switch {
		case detail.Type == gjson.String:
			if s := detail.String(); s != "" {
				return s
			}
		case detail.IsArray():
			var msgs []string
			for _, item := range detail.Array() {
				if m := item.Get("msg").String(); m != "" {
					msgs = append(msgs, m)
				}
			}
			if len(msgs) > 0 {
				return strings.Join(msgs, "; ")
			}
			return detail.Raw
		case detail.IsObject(), detail.Type == gjson.Number:
			return detail.Raw
		}
	}
	if text := http.StatusText(resp.StatusCode); text != "" {
		return text
	}
	return resp.Status
}
