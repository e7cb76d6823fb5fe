package httpx

import (
	"encoding/json"
	"net/http"

	"github.com/trackme/trackme/internal/common/apperrors"
)

// Error represents an HTTP error response with status code and detail.
// When Details is set it is sent as the detail instead of Detail.
type Error struct {
	Detail     string
	Details    any
	StatusCode int
}

type errorRsp struct {
	Detail any `json:"detail"`
}

// ValidationIssue describes one invalid field of a request.
type ValidationIssue struct {
	Loc  []string `json:"loc"`
	Msg  string   `json:"msg"`
	Type string   `json:"type"`
}

// Send writes the error response to w. If w is nil, no action is taken.
func (e *Error) Send(w http.ResponseWriter) {
	if w == nil {
		return
	}
	var detail any = e.Detail
	if e.Details != nil {
		detail = e.Details
	}
	rspJson, err := json.Marshal(&errorRsp{Detail: detail})
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("Unable to parse error"))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(e.StatusCode)
	w.Write(rspJson)
}

func (e *Error) Error() string {
	return e.Detail
}

// SendError sends an application error as an HTTP error response. Errors
// without a status code are sent as 500.
func SendError(w http.ResponseWriter, err apperrors.Error) {
	if err == nil {
		return
	}
	statusCode := err.StatusCode()
	if statusCode == 0 {
		statusCode = http.StatusInternalServerError
	}
	httperror := &Error{
		StatusCode: statusCode,
		Detail:     err.Error(),
	}
	httperror.Send(w)
}

func withDefault(msg []string, def string) string {
	if len(msg) > 0 && msg[0] != "" {
		return msg[0]
	}
	return def
}

// ErrReqMethodNotSupported returns an error for unsupported HTTP methods.
func ErrReqMethodNotSupported() *Error {
	return &Error{
		Detail:     "Method Not Allowed",
		StatusCode: http.StatusMethodNotAllowed,
	}
}

// ErrUnableToParseReqData returns an error when request data cannot be parsed.
func ErrUnableToParseReqData() *Error {
	return &Error{
		Detail:     "unable to parse request data",
		StatusCode: http.StatusUnprocessableEntity,
	}
}

// ErrApplicationError returns an error for application-level failures.
func ErrApplicationError(msg ...string) *Error {
	return &Error{
		Detail:     withDefault(msg, "Internal Server Error"),
		StatusCode: http.StatusInternalServerError,
	}
}

// ErrUnAuthorized returns an error for unauthenticated requests.
func ErrUnAuthorized(msg ...string) *Error {
	return &Error{
		Detail:     withDefault(msg, "Could not validate credentials"),
		StatusCode: http.StatusUnauthorized,
	}
}

// ErrInvalidRequest returns an error for invalid request data.
func ErrInvalidRequest(msg ...string) *Error {
	return &Error{
		Detail:     withDefault(msg, "invalid request data"),
		StatusCode: http.StatusBadRequest,
	}
}

// ErrNotFound returns a 404 error.
func ErrNotFound(msg ...string) *Error {
	return &Error{
		Detail:     withDefault(msg, "Not Found"),
		StatusCode: http.StatusNotFound,
	}
}

// ErrRequestTimeout returns an error for request timeout.
func ErrRequestTimeout() *Error {
	return &Error{
		Detail:     "request timed out",
		StatusCode: http.StatusRequestTimeout,
	}
}

// ErrValidation returns a 422 error listing the invalid fields. The message
// of the first issue is used as Detail.
func ErrValidation(issues []ValidationIssue) *Error {
	e := &Error{
		Detail:     "validation error",
		Details:    issues,
		StatusCode: http.StatusUnprocessableEntity,
	}
	if len(issues) > 0 {
		e.Detail = issues[0].Msg
	}
	return e
}
