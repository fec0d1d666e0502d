package client

import (
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
)

var (
	ErrUnavailable       = errors.New("service unavailable")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrForbidden         = errors.New("permission denied")
	ErrNotFound          = errors.New("record not found")
	ErrValidation        = errors.New("validation failed")
	ErrInsecureTransport = errors.New("refusing to send credentials over plain http")
)

// Kind classifies a failed call the way screens need to render it.
type Kind int

const (
	KindUnknown Kind = iota
	KindNetwork
	KindUnauthorized
	KindForbidden
	KindNotFound
	KindValidation
	KindServer
)

func (k Kind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindUnauthorized:
		return "unauthorized"
	case KindForbidden:
		return "forbidden"
	case KindNotFound:
		return "not_found"
	case KindValidation:
		return "validation"
	case KindServer:
		return "server"
	default:
		return "unknown"
	}
}

// APIError is a non-2xx answer from the backend, or a local validation
// failure shaped the same way (Status 0).
type APIError struct {
	Status    int
	Kind      Kind
	Message   string
	Fields    map[string]string
	RequestID string
}

func (e *APIError) Error() string {
	var b strings.Builder
	if e.Status != 0 {
		fmt.Fprintf(&b, "api error %d", e.Status)
	} else {
		b.WriteString(e.Kind.String())
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if len(e.Fields) > 0 {
		keys := make([]string, 0, len(e.Fields))
		for k := range e.Fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, 0, len(keys))
		for _, k := range keys {
			parts = append(parts, k+": "+e.Fields[k])
		}
		b.WriteString(" (")
		b.WriteString(strings.Join(parts, "; "))
		b.WriteString(")")
	}
	return b.String()
}

// Is lets callers match an APIError against the package sentinels.
func (e *APIError) Is(target error) bool {
	switch target {
	case ErrUnauthorized:
		return e.Kind == KindUnauthorized
	case ErrForbidden:
		return e.Kind == KindForbidden
	case ErrNotFound:
		return e.Kind == KindNotFound
	case ErrValidation:
		return e.Kind == KindValidation
	case ErrUnavailable:
		return e.Kind == KindNetwork
	}
	return false
}

// ValidationError builds a local validation failure with per-field messages.
func ValidationError(msg string, fields map[string]string) *APIError {
	return &APIError{Kind: KindValidation, Message: msg, Fields: fields}
}

func kindForStatus(status int) Kind {
	switch {
	case status == http.StatusUnauthorized:
		return KindUnauthorized
	case status == http.StatusForbidden:
		return KindForbidden
	case status == http.StatusNotFound:
		return KindNotFound
	case status == http.StatusBadRequest, status == http.StatusUnprocessableEntity, status == http.StatusConflict:
		return KindValidation
	default:
		return KindServer
	}
}

// KindOf classifies any error returned by this package or wrapping one.
func KindOf(err error) Kind {
	if err == nil {
		return KindUnknown
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Kind
	}
	switch {
	case errors.Is(err, ErrUnavailable):
		return KindNetwork
	case errors.Is(err, ErrUnauthorized):
		return KindUnauthorized
	case errors.Is(err, ErrForbidden):
		return KindForbidden
	case errors.Is(err, ErrNotFound):
		return KindNotFound
	case errors.Is(err, ErrValidation):
		return KindValidation
	}
	return KindUnknown
}

// FieldErrors returns per-field messages carried by err, if any.
func FieldErrors(err error) map[string]string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Fields
	}
	return nil
}
