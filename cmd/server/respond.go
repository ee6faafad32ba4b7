package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/Simplici0/printstock/internal/inventory"
	"github.com/Simplici0/printstock/internal/logger"
)

type errorBody struct {
	Detail string            `json:"detail"`
	Fields map[string]string `json:"fields,omitempty"`
}

// internalErrorJSON is written when a response body cannot be encoded.
const internalErrorJSON = `{"detail":"internal error"}` + "\n"

// writeJSON encodes v before the status line goes out, so an unencodable
// value turns into a 500 instead of an empty 200.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	if v == nil {
		w.WriteHeader(status)
		return
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		logger.Error(context.Background(), "encode response", logger.ErrorF(err))
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = io.WriteString(w, internalErrorJSON)
		return
	}

	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

// writeError maps service errors to status codes.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *inventory.ValidationError
	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusBadRequest, errorBody{Detail: "validation error", Fields: verr.Fields})
	case errors.Is(err, inventory.ErrValidation):
		writeJSON(w, http.StatusBadRequest, errorBody{Detail: err.Error()})
	case errors.Is(err, inventory.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorBody{Detail: err.Error()})
	default:
		logger.Error(r.Context(), "request failed",
			logger.String("path", r.URL.Path),
			logger.ErrorF(err),
		)
		writeJSON(w, http.StatusInternalServerError, errorBody{Detail: "internal error"})
	}
}

func badRequest(w http.ResponseWriter, detail string) {
	writeJSON(w, http.StatusBadRequest, errorBody{Detail: detail})
}
