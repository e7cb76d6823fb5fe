package httpclient

import (
	"net/http"
	"net/http/httptest"
)

// HandlerTransport is an http.RoundTripper that serves requests directly from
// an http.Handler. It uses httptest.NewRecorder to capture responses without
// making network calls.
type HandlerTransport struct {
	Handler http.Handler
}

// RoundTrip implements http.RoundTripper.
func (t *HandlerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Body != nil {
		defer req.Body.Close()
	}
	if err := req.Context().Err(); err != nil {
		return nil, err
	}

	serverReq := req.Clone(req.Context())
	serverReq.RequestURI = req.URL.RequestURI()
	serverReq.RemoteAddr = "192.0.2.1:1234"
	if serverReq.Body == nil {
		serverReq.Body = http.NoBody
	}

	rr := httptest.NewRecorder()
	t.Handler.ServeHTTP(rr, serverReq)

	resp := rr.Result()
	resp.Request = req
	return resp, nil
}

// NewTestClient creates a client whose requests are served in-process by handler.
func NewTestClient(config Configurator, handler http.Handler, opts ...ClientOptions) *HTTPClient {
	clientOpts := ClientOptions{}
	if len(opts) > 0 {
		clientOpts = opts[0]
	}
	clientOpts.HTTPClient = &http.Client{Transport: &HandlerTransport{Handler: handler}}
	return NewClientWithOptions(config, clientOpts)
}
