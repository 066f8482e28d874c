package platform

import (
	"encoding/json"
	"errors"
	"net"
)

type Kind int

const (
	// KindUnknown covers failures that are neither transport nor HTTP errors.
	KindUnknown Kind = iota
	// KindNetwork means no response reached us; StatusCode is 0.
	KindNetwork
	// KindServer means the platform answered with a failure.
	KindServer
)

func (k Kind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindServer:
		return "server"
	}
	return "unknown"
}

// Error is the only error type returned by Client methods. Message is always
// safe to show to an operator.
type Error struct {
	Kind       Kind
	StatusCode int
	Message    string
	Err        error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func NetworkError(err error) *Error {
	return &Error{Kind: KindNetwork, Message: err.Error(), Err: err}
}

// ServerError builds the error for a failed platform response. The message is
// taken from the body's error field, then its message field, then fallback.
func ServerError(status int, body []byte, fallback string) *Error {
	return &Error{Kind: KindServer, StatusCode: status, Message: bodyMessage(body, fallback)}
}

// Normalize funnels any failure into an *Error. Causes that are not errors at
// all carry no usable text, so they get the fallback message.
func Normalize(cause any, fallback string) *Error {
	if cause == nil {
		return &Error{Kind: KindUnknown, Message: fallback}
	}
	err, ok := cause.(error)
	if !ok {
		return &Error{Kind: KindUnknown, Message: fallback}
	}
	var perr *Error
	if errors.As(err, &perr) && perr != nil {
		return perr
	}
	var nerr net.Error
	if errors.As(err, &nerr) {
		return NetworkError(err)
	}
	msg := err.Error()
	if msg == "" {
		msg = fallback
	}
	return &Error{Kind: KindUnknown, Message: msg, Err: err}
}

func bodyMessage(body []byte, fallback string) string {
	var b struct {
		Error   json.RawMessage `json:"error"`
		Message json.RawMessage `json:"message"`
	}
	if err := json.Unmarshal(body, &b); err != nil {
		return fallback
	}
	if s := rawString(b.Error); s != "" {
		return s
	}
	if s := rawString(b.Message); s != "" {
		return s
	}
	return fallback
}

func rawString(raw json.RawMessage) string {
	var s string
	if len(raw) == 0 || json.Unmarshal(raw, &s) != nil {
		return ""
	}
	return s
}
