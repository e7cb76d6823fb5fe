// Package httpx provides request parsing and response rendering helpers for
// the JSON handlers of the development server. Errors are rendered in the
// {"detail": "..."} shape the Trackme API uses.
package httpx

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/rs/zerolog/log"
	"github.com/trackme/trackme/internal/common/apperrors"
)

// MaxRequestBody bounds the size of a JSON request body.
const MaxRequestBody int64 = 1 << 20

// GetRequestData parses the JSON request body into data. Only POST, PUT and
// PATCH are accepted. An empty body is an error.
func GetRequestData(r *http.Request, data any) error {
	switch r.Method {
	case http.MethodPost, http.MethodPut, http.MethodPatch:
	default:
		return ErrReqMethodNotSupported()
	}
	if r.Body == nil || r.Body == http.NoBody {
		log.Ctx(r.Context()).Error().Msg("Empty request body")
		return ErrUnableToParseReqData()
	}
	dec := json.NewDecoder(io.LimitReader(r.Body, MaxRequestBody))
	if err := dec.Decode(data); err != nil {
		if errors.Is(err, io.EOF) {
			return ErrUnableToParseReqData()
		}
		log.Ctx(r.Context()).Debug().Err(err).Msg("unable to decode request body")
		return ErrUnableToParseReqData()
	}
	return nil
}

// Response represents a handler result. A nil Response value with
// http.StatusNoContent writes no body.
type Response struct {
	StatusCode int
	Location   string
	Response   any
}

// RequestHandler defines a function type for handling HTTP requests.
type RequestHandler func(r *http.Request) (*Response, error)

// WrapHttpRsp adapts a RequestHandler into an http.HandlerFunc that renders
// the response as JSON and errors as {"detail": ...}.
func WrapHttpRsp(handler RequestHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rsp, err := handler(r)
		if err != nil {
			var httperror *Error
			var appErr apperrors.Error
			switch {
			case errors.As(err, &httperror):
				httperror.Send(w)
			case errors.As(err, &appErr):
				log.Ctx(r.Context()).Debug().Str("error", appErr.ErrorAll()).Msg("request failed")
				SendError(w, appErr)
			default:
				log.Ctx(r.Context()).Error().Err(err).Msg("unhandled error")
				ErrApplicationError().Send(w)
			}
			return
		}
		if rsp == nil {
			ErrApplicationError().Send(w)
			return
		}
		if rsp.StatusCode == 0 {
			rsp.StatusCode = http.StatusOK
		}
		if rsp.StatusCode == http.StatusNoContent {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		var location []string
		if rsp.Location != "" {
			location = append(location, rsp.Location)
		}
		SendJsonRsp(r.Context(), w, rsp.StatusCode, rsp.Response, location...)
	}
}
