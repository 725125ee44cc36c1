package web

import (
	"encoding/json"
	"errors"
	"net/http"

	"stocktrack/internal/core"
	"stocktrack/internal/logging"
)

// writeJSON serializes v with the given status. Encoding failures are logged
// but not surfaced; headers are already on the wire.
func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.FromContext(r.Context()).Error("encoding response", "error", err)
	}
}

// respondError maps domain errors to HTTP statuses. Validation, conflict and
// import errors are client mistakes (400), missing products are 404, anything
// else is a 500 with the detail kept out of the response body.
func respondError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		validation *core.ValidationError
		conflict   *core.ConflictError
		notFound   *core.NotFoundError
		importErr  *core.ImportError
	)

	switch {
	case errors.As(err, &validation):
		writeJSON(w, r, http.StatusBadRequest, errorBody{Error: validation.Error()})
	case errors.As(err, &conflict):
		writeJSON(w, r, http.StatusBadRequest, errorBody{Error: conflict.Error()})
	case errors.As(err, &importErr):
		writeJSON(w, r, http.StatusBadRequest, errorBody{Error: importErr.Error()})
	case errors.As(err, &notFound):
		writeJSON(w, r, http.StatusNotFound, errorBody{Error: notFound.Error()})
	default:
		logging.FromContext(r.Context()).Error("request failed", "error", err)
		writeJSON(w, r, http.StatusInternalServerError, errorBody{Error: "internal server error"})
	}
}

type errorBody struct {
	Error string `json:"error"`
}
