package gateway

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
	"strings"
)

// Kind classifies a gateway failure for the caller's retry decision.
type Kind string

const (
	// KindTransport covers network, DNS and timeout failures. The outcome of
	// the remote operation is unknown; callers should re-fetch the entity's
	// authoritative state instead of assuming failure.
	KindTransport Kind = "transport"
	// KindAuth means the API rejected our credentials. Not retryable
	// without reconfiguration.
	KindAuth Kind = "auth"
	// KindValidation means the API rejected the request shape or amounts.
	// Retrying the same request will fail the same way.
	KindValidation Kind = "validation"
	// KindRemote is an opaque gateway-side failure (5xx). Retryable with
	// backoff at the caller's discretion.
	KindRemote Kind = "remote"
)

// Error is the typed failure surfaced by every client operation.
type Error struct {
	Kind        Kind
	Op          string
	Description string
	Err         error
}

func (e *Error) Error() string {
	if e.Description != "" {
		return fmt.Sprintf("gateway %s: %s: %s", e.Op, e.Kind, e.Description)
	}
	return fmt.Sprintf("gateway %s: %s: %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// IsRetryable reports whether the caller may retry the operation as-is.
func (e *Error) IsRetryable() bool {
	return e.Kind == KindTransport || e.Kind == KindRemote
}

// AsError extracts a *Error from err, or nil.
func AsError(err error) *Error {
	var ge *Error
	if errors.As(err, &ge) {
		return ge
	}
	return nil
}

// classify wraps an SDK or transport error into the typed taxonomy. The
// Razorpay SDK surfaces API rejections with the remote error description in
// the message and network faults as raw transport errors, so classification
// inspects both the error chain and the message text.
func classify(op string, err error) *Error {
	if err == nil {
		return nil
	}

	var netErr net.Error
	var urlErr *url.Error
	switch {
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return &Error{Kind: KindTransport, Op: op, Err: err}
	case errors.As(err, &urlErr), errors.As(err, &netErr):
		return &Error{Kind: KindTransport, Op: op, Err: err}
	}

	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "authentication") || strings.Contains(msg, "api key") || strings.Contains(msg, "unauthorized"):
		return &Error{Kind: KindAuth, Op: op, Description: err.Error(), Err: err}
	case strings.Contains(msg, "bad_request") || strings.Contains(msg, "bad request") || strings.Contains(msg, "input validation failed"):
		return &Error{Kind: KindValidation, Op: op, Description: err.Error(), Err: err}
	case strings.Contains(msg, "connection refused") || strings.Contains(msg, "no such host") || strings.Contains(msg, "timeout"):
		return &Error{Kind: KindTransport, Op: op, Err: err}
	}
	return &Error{Kind: KindRemote, Op: op, Description: err.Error(), Err: err}
}
