package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for API operations. An *APIError matches the sentinel of
// its kind with errors.Is.
var (
	// ErrInvalidRequest indicates the request could not be formed
	ErrInvalidRequest = errors.New("invalid request")

	// ErrTransport indicates the network call failed before a response arrived
	ErrTransport = errors.New("photo service is unreachable")

	// ErrServerStatus indicates a response status outside 200-299
	ErrServerStatus = errors.New("photo service returned an error status")

	// ErrDecode indicates the response body did not match the expected schema
	ErrDecode = errors.New("unexpected response from photo service")

	// ErrUnknown indicates any other failure
	ErrUnknown = errors.New("unknown error")
)

// ErrorKind classifies API failures
type ErrorKind int

const (
	ErrKindUnknown ErrorKind = iota
	ErrKindInvalidRequest
	ErrKindTransport
	ErrKindServerStatus
	ErrKindDecode
)

func (k ErrorKind) String() string {
	switch k {
	case ErrKindInvalidRequest:
		return "invalid request"
	case ErrKindTransport:
		return "transport"
	case ErrKindServerStatus:
		return "server status"
	case ErrKindDecode:
		return "decode"
	default:
		return "unknown"
	}
}

func (k ErrorKind) sentinel() error {
	switch k {
	case ErrKindInvalidRequest:
		return ErrInvalidRequest
	case ErrKindTransport:
		return ErrTransport
	case ErrKindServerStatus:
		return ErrServerStatus
	case ErrKindDecode:
		return ErrDecode
	default:
		return ErrUnknown
	}
}

// APIError is the single error type returned by the API client
type APIError struct {
	Kind       ErrorKind
	StatusCode int   // Set for ErrKindServerStatus
	Err        error // Underlying cause, may be nil
}

// NewAPIError wraps err with the given kind
func NewAPIError(kind ErrorKind, err error) *APIError {
	return &APIError{Kind: kind, Err: err}
}

// NewStatusError builds a server status error for code
func NewStatusError(code int) *APIError {
	return &APIError{Kind: ErrKindServerStatus, StatusCode: code}
}

func (e *APIError) Error() string {
	msg := e.Kind.sentinel().Error()
	if e.Kind == ErrKindServerStatus {
		msg = fmt.Sprintf("%s: %d", msg, e.StatusCode)
	}
	if e.Err != nil {
		msg = msg + ": " + e.Err.Error()
	}
	return msg
}

func (e *APIError) Unwrap() error { return e.Err }

// Is matches the sentinel for the error's kind
func (e *APIError) Is(target error) bool {
	return target == e.Kind.sentinel()
}

// KindOf returns the kind of err, ErrKindUnknown for foreign errors
func KindOf(err error) ErrorKind {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Kind
	}
	return ErrKindUnknown
}
