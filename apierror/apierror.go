// Package apierror classifies failures reported by upstream data services.
package apierror

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Kind distinguishes upstream failure modes.
type Kind string

const (
	// KindService means the upstream answered with an unexpected status.
	KindService Kind = "service"
	// KindMalformed means a success response could not be decoded.
	KindMalformed Kind = "malformed"
)

// maxBodyMessage caps how much of a raw body ends up in an error message.
const maxBodyMessage = 512

// Error is returned by the data clients for upstream failures.
type Error struct {
	Kind       Kind
	Service    string
	StatusCode int
	Message    string
	Err        error
}

func (e *Error) Error() string {
	var sb strings.Builder
	if e.Service != "" {
		sb.WriteString(e.Service)
		sb.WriteString(": ")
	}
	if e.StatusCode != 0 {
		fmt.Fprintf(&sb, "status %d: ", e.StatusCode)
	}
	sb.WriteString(e.Message)
	if e.Err != nil {
		sb.WriteString(": ")
		sb.WriteString(e.Err.Error())
	}
	return sb.String()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Service builds a KindService error from a non-success response body.
// The JSON "message" field is preferred; otherwise the raw body is used.
func Service(service string, status int, body []byte) *Error {
	return &Error{
		Kind:       KindService,
		Service:    service,
		StatusCode: status,
		Message:    messageFromBody(body),
	}
}

// Malformed builds a KindMalformed error wrapping the decode failure.
func Malformed(service, message string, err error) *Error {
	return &Error{
		Kind:    KindMalformed,
		Service: service,
		Message: message,
		Err:     err,
	}
}

// IsService reports whether err carries a KindService error.
func IsService(err error) bool {
	return is(err, KindService)
}

// IsMalformed reports whether err carries a KindMalformed error.
func IsMalformed(err error) bool {
	return is(err, KindMalformed)
}

// StatusCode returns the upstream status carried by err, or 0.
func StatusCode(err error) int {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}

// Message returns the upstream-provided message carried by err.
func Message(err error) string {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return ""
}

func is(err error, kind Kind) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Kind == kind
}

func messageFromBody(body []byte) string {
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Message != "" {
		return payload.Message
	}
	msg := strings.TrimSpace(string(body))
	if len(msg) > maxBodyMessage {
		msg = msg[:maxBodyMessage]
	}
	return msg
}
