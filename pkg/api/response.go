package api

import (
	"bytes"
	"errors"
	"log/slog"
	"net/http"

	"github.com/goccy/go-json"

	"github.com/mchmarny/ngwp/pkg/menu"
	"github.com/mchmarny/ngwp/pkg/server"
	"github.com/mchmarny/ngwp/pkg/site"
	"github.com/mchmarny/ngwp/pkg/widget"
)

// Error codes used in the error envelope.
const (
	ErrCodeBadRequest       = "BAD_REQUEST"
	ErrCodeNotFound         = "NOT_FOUND"
	ErrCodeMethodNotAllowed = "METHOD_NOT_ALLOWED"
	ErrCodeInvalidData      = "INVALID_DATA"
	ErrCodeInternalError    = "INTERNAL_ERROR"
	ErrCodeUnavailable      = "SERVICE_UNAVAILABLE"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// ErrorBody describes what went wrong.
type ErrorBody struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	body, err := json.Marshal(data)
	if err != nil {
		slog.Error("failed to marshal JSON response", "error", err)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":{"code":"INTERNAL_ERROR","message":"failed to encode response"}}`))
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil {
		slog.Error("failed to write JSON response", "error", err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	requestID := server.RequestIDFromContext(r.Context())

	if status >= http.StatusInternalServerError {
		slog.Error("request failed", "status", status, "code", code, "message", message, "request_id", requestID)
	} else {
		slog.Debug("request rejected", "status", status, "code", code, "message", message, "request_id", requestID)
	}

	writeJSON(w, status, ErrorResponse{Error: ErrorBody{
		Code:      code,
		Message:   message,
		RequestID: requestID,
	}})
}

// writeFailure maps err onto the error envelope.
func writeFailure(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, site.ErrNotFound):
		writeError(w, r, http.StatusNotFound, ErrCodeNotFound, err.Error())
	case errors.Is(err, site.ErrNotLoaded):
		writeError(w, r, http.StatusServiceUnavailable, ErrCodeUnavailable, err.Error())
	case errors.Is(err, menu.ErrInvalidInput), errors.Is(err, widget.ErrInvalidInput):
		writeError(w, r, http.StatusUnprocessableEntity, ErrCodeInvalidData, err.Error())
	default:
		slog.Error("source failure", "error", err, "path", r.URL.Path)
		writeError(w, r, http.StatusInternalServerError, ErrCodeInternalError, "internal error, see logs for details")
	}
}

func notFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, r, http.StatusNotFound, ErrCodeNotFound, "no route matches "+r.URL.Path)
}

func methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Allow", http.MethodGet)
	writeError(w, r, http.StatusMethodNotAllowed, ErrCodeMethodNotAllowed, r.Method+" is not allowed on "+r.URL.Path)
}

// orderedObject is a JSON object that keeps its keys in insertion order.
// Setting an existing key replaces the value in place.
type orderedObject[V any] struct {
	keys   []string
	values map[string]V
}

func newOrderedObject[V any](size int) *orderedObject[V] {
	return &orderedObject[V]{
		keys:   make([]string, 0, size),
		values: make(map[string]V, size),
	}
}

func (o *orderedObject[V]) set(key string, v V) {
	if _, ok := o.values[key]; !ok {
		o.keys = append(o.keys, key)
	}
	o.values[key] = v
}

// MarshalJSON implements json.Marshaler.
func (o *orderedObject[V]) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range o.keys {
		if i > 0 {
			buf.WriteByte(',')
		}

		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(o.values[k])
		if err != nil {
			return nil, err
		}

		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
