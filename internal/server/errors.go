package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
)

// requireData rejects POST bodies that carry no data: nothing at all, or a
// JSON value that is empty or zero ({}, [], "", null, 0, false). Anything
// else is handed on untouched for the strict handler to decode.
func requireData(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			next.ServeHTTP(w, r)
			return
		}
		var data []byte
		if r.Body != nil {
			var err error
			data, err = io.ReadAll(r.Body)
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				writeFailure(w, http.StatusRequestEntityTooLarge, msgTooLong)
				return
			}
			if err != nil {
				writeFailure(w, http.StatusInternalServerError, serverError+err.Error())
				return
			}
		}

		var v any
		if len(bytes.TrimSpace(data)) == 0 || (json.Unmarshal(data, &v) == nil && isEmptyJSON(v)) {
			writeFailure(w, http.StatusBadRequest, msgNoData)
			return
		}
		r.Body = io.NopCloser(bytes.NewReader(data))
		next.ServeHTTP(w, r)
	})
}

func isEmptyJSON(v any) bool {
	switch v := v.(type) {
	case nil:
		return true
	case map[string]any:
		return len(v) == 0
	case []any:
		return len(v) == 0
	case string:
		return v == ""
	case float64:
		return v == 0
	case bool:
		return !v
	default:
		return false
	}
}

// requestErrorHandler maps body decoding failures onto the generate
// endpoint's error contract.
func requestErrorHandler(logger *slog.Logger) func(http.ResponseWriter, *http.Request, error) {
	return func(w http.ResponseWriter, r *http.Request, err error) {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.Is(err, io.EOF):
			writeFailure(w, http.StatusBadRequest, msgNoData)
		case errors.As(err, &tooLarge):
			writeFailure(w, http.StatusRequestEntityTooLarge, msgTooLong)
		default:
			logger.Warn("rejecting malformed request", "path", r.URL.Path, "error", err)
			writeFailure(w, http.StatusInternalServerError, serverError+err.Error())
		}
	}
}

func responseErrorHandler(logger *slog.Logger) func(http.ResponseWriter, *http.Request, error) {
	return func(w http.ResponseWriter, r *http.Request, err error) {
		logger.Error("handler failed", "path", r.URL.Path, "error", err)
		writeFailure(w, http.StatusInternalServerError, serverError+err.Error())
	}
}

func writeFailure(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(failureBody(msg))
}
