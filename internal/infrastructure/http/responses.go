package httpserver

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"

	"autoelite/internal/application"
	infraconfig "autoelite/internal/infrastructure/config"
	"autoelite/internal/infrastructure/logx"

	"go.uber.org/zap"
)

type errorBody struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// writeJSON encodes v before committing the status, so an unencodable value
// becomes a 500 instead of an empty success.
func writeJSON(w http.ResponseWriter, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		logx.L().Error("response.encode_failed", zap.Error(err))
		status = http.StatusInternalServerError
		body, _ = json.Marshal(errorBody{Code: status, Message: http.StatusText(status)})
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(append(body, '\n'))
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorBody{Code: status, Message: msg})
}

// writeServiceError maps application errors onto status codes.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, application.ErrBadRequest):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, application.ErrNotFound):
		writeError(w, http.StatusNotFound, http.StatusText(http.StatusNotFound))
	case errors.Is(err, application.ErrConflict):
		writeError(w, http.StatusConflict, "duplicate request")
	default:
		logx.From(r.Context()).Error("request_failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
	}
}

func decodeJSON(w http.ResponseWriter, r *http.Request, out any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, infraconfig.DefaultMaxBodyBytes))
	if err := dec.Decode(out); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return false
	}
	return true
}

func idempotencyKey(r *http.Request) *string {
	if k := r.Header.Get("X-Idempotency-Key"); k != "" {
		return &k
	}
	return nil
}

// queryFloat reads an optional float query parameter.
func queryFloat(r *http.Request, name string, def float64) (float64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%s must be a finite number", name)
	}
	return f, nil
}

func queryInt(r *http.Request, name string, def int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	i, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer", name)
	}
	return i, nil
}

// optFloat and optInt return nil for an absent parameter.
func optFloat(r *http.Request, name string) (*float64, error) {
	if r.URL.Query().Get(name) == "" {
		return nil, nil
	}
	f, err := queryFloat(r, name, 0)
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func optInt(r *http.Request, name string) (*int, error) {
	if r.URL.Query().Get(name) == "" {
		return nil, nil
	}
	i, err := queryInt(r, name, 0)
	if err != nil {
		return nil, err
	}
	return &i, nil
}
