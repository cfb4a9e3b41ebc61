package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNetwork         = errors.New("network error")
	ErrParse           = errors.New("parse error")
	ErrShape           = errors.New("shape error")
	ErrUnknownEndpoint = errors.New("unknown endpoint")
)

// NetworkError means the transport did not deliver a successful response.
type NetworkError struct {
	URL        string
	StatusCode int // 0 when no response was received
	Err        error
}

func (e *NetworkError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("network: GET %s: status %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("network: GET %s: %v", e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

func (e *NetworkError) Is(target error) bool { return target == ErrNetwork }

// ParseError means the body was not syntactically valid JSON.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string { return fmt.Sprintf("parse: %v", e.Err) }

func (e *ParseError) Unwrap() error { return e.Err }

func (e *ParseError) Is(target error) bool { return target == ErrParse }

// ShapeError means the JSON was valid but a required key was missing or had the wrong type.
type ShapeError struct {
	Endpoint Endpoint // zero when extraction ran outside a client call
	Key      string   // path of the offending key, e.g. "Data[2].close"
	Reason   string
	Message  string // upstream error message, when the body was an error envelope
}

func (e *ShapeError) Error() string {
	var b strings.Builder
	b.WriteString("shape: ")
	if e.Endpoint.Valid() {
		b.WriteString(e.Endpoint.String())
		b.WriteString(": ")
	}
	if e.Key != "" {
		b.WriteString(e.Key)
		b.WriteString(": ")
	}
	b.WriteString(e.Reason)
	if e.Message != "" {
		b.WriteString(" (upstream: ")
		b.WriteString(e.Message)
		b.WriteString(")")
	}
	return b.String()
}

func (e *ShapeError) Is(target error) bool { return target == ErrShape }
