package manifest

import (
	"context"
	"errors"
	"fmt"
	"os"
)

// Kind classifies a fetch failure
type Kind int

const (
	KindNetwork Kind = iota + 1
	KindHTTPStatus
	KindRead
	KindValidation
)

// String returns the string representation of the kind
func (k Kind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindHTTPStatus:
		return "http_status"
	case KindRead:
		return "read"
	case KindValidation:
		return "validation"
	default:
		return "unknown"
	}
}

// Error is returned by Fetch
type Error struct {
	Kind       Kind
	URL        string
	StatusCode int
	Msg        string
	Err        error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the failure kind of err, or zero when err is not a fetch error
func KindOf(err error) Kind {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return 0
}

// IsTimeout reports whether err is a network failure caused by a deadline,
// either the fetch timeout or the caller's context
func IsTimeout(err error) bool {
	var fe *Error
	if !errors.As(err, &fe) || fe.Kind != KindNetwork {
		return false
	}
	return isTimeout(fe.Err)
}

func isTimeout(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) || os.IsTimeout(err) {
		return true
	}
	var t interface{ Timeout() bool }
	return errors.As(err, &t) && t.Timeout()
}

func networkError(url string, err error) *Error {
	return &Error{Kind: KindNetwork, URL: url, Msg: "Failed to download manifest", Err: err}
}

func statusError(url string, code int, text string) *Error {
	msg := fmt.Sprintf("Server returned status %d", code)
	if text != "" {
		msg += " " + text
	}
	return &Error{Kind: KindHTTPStatus, URL: url, StatusCode: code, Msg: msg}
}

func readError(url string, err error) *Error {
	return &Error{Kind: KindRead, URL: url, Msg: "Failed to read manifest", Err: err}
}

func validationError(url, detected string) *Error {
	msg := "Downloaded file is not a valid Office manifest"
	if detected != "" {
		msg += " (received " + detected + ")"
	}
	return &Error{Kind: KindValidation, URL: url, Msg: msg}
}
