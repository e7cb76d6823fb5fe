// Package apperrors provides chainable application errors that carry an HTTP
// status code. An error created from another error with New or Msg matches its
// parent through errors.Is, so callers can define a small tree of error kinds
// and test against any level of it.
package apperrors

// Error defines the interface for application errors. All builder methods
// return a new Error and leave the receiver unchanged.
type Error interface {
	error
	Unwrap() error // support for errors.Is / errors.As

	New(msg string) Error                  // child error with a new message
	Msg(msg string) Error                  // child error with a new message that also wraps the receiver
	MsgErr(msg string, err ...error) Error // like Msg, additionally wrapping errs
	Err(err ...error) Error                // same message, additionally wrapping errs
	SetStatusCode(int) Error               // copy with the given HTTP status code
	StatusCode() int                       // HTTP status code, 0 if unset
	ErrorAll() string                      // message followed by wrapped error messages
}
