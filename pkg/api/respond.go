package api

import (
	"encoding/json"
	"io"
	"math"
	"net/http"
	"strconv"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/gridsmith/pkg/errors"
	"github.com/matzehuels/gridsmith/pkg/observability"
)

var errNoStore = errors.New(errors.ErrCodeUnsupported, "project storage is not configured on this server")

func errNotFound(r *http.Request) error {
	return errors.New(errors.ErrCodeNotFound, "no route for %s %s", r.Method, r.URL.Path)
}

func writeMethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusMethodNotAllowed, errorBody{
		Code:    errors.ErrCodeUnsupported,
		Message: "method " + r.Method + " not allowed on " + r.URL.Path,
	})
}

// errorBody is the JSON shape of every error response.
type errorBody struct {
	Code    errors.Code `json:"code"`
	Message string      `json:"message"`
}

// statusFor maps an error code to an HTTP status. Well-formed requests that
// describe impossible geometry are 422; malformed ones are 400.
func statusFor(code errors.Code) int {
	switch code.Kind() {
	case errors.KindInvalid:
		switch code {
		case errors.ErrCodeInvalidSpecification, errors.ErrCodeInvalidItem, errors.ErrCodeInvalidState:
			return http.StatusUnprocessableEntity
		}
		return http.StatusBadRequest
	case errors.KindNotFound:
		return http.StatusNotFound
	case errors.KindUnsupported:
		return http.StatusNotImplemented
	}
	return http.StatusInternalServerError
}

// writeError renders err as {code, message}. Errors without a code are
// internal: they are logged and their text is not sent to the client.
func writeError(w http.ResponseWriter, r *http.Request, logger *log.Logger, err error) {
	code := errors.CodeOf(err)
	body := errorBody{Code: code, Message: errors.Message(err)}
	status := statusFor(code)
	if code == "" {
		body = errorBody{Code: errors.ErrCodeInternal, Message: "internal server error"}
		logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "err", err)
		observability.HTTP().OnError(r.Context(), r.Method, r.URL.Path, err)
	}
	writeJSON(w, status, body)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}

// decode reads a JSON body into v. Malformed and oversized bodies become
// INVALID_INPUT errors.
func decode(w http.ResponseWriter, r *http.Request, v any) error {
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(body)
	if err := dec.Decode(v); err != nil {
		if err == io.EOF {
			return errors.New(errors.ErrCodeInvalidInput, "request body is empty")
		}
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request body")
	}
	if dec.More() {
		return errors.New(errors.ErrCodeInvalidInput, "request body has trailing data")
	}
	return nil
}

// queryFloat parses an optional numeric query parameter.
func queryFloat(r *http.Request, name string) (float64, error) {
	s := r.URL.Query().Get(name)
	if s == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, errors.New(errors.ErrCodeInvalidInput, "query parameter %s=%q is not a number", name, s)
	}
	return v, nil
}
