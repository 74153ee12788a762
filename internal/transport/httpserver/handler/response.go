package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	expensesdomain "expenses-app-go/internal/domain/expenses"
	"expenses-app-go/pkg/logger"
)

type errorEnvelope struct {
	Error errorBody `json:"error"`
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorEnvelope{Error: errorBody{Code: code, Message: message}})
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func redirect(w http.ResponseWriter, r *http.Request, location string) {
	http.Redirect(w, r, location, http.StatusSeeOther)
}

// failure is the http shape of a service error.
type failure struct {
	status   int
	code     string
	message  string
	internal bool
}

func classify(err error) failure {
	switch {
	case errors.Is(err, expensesdomain.ErrValidation):
		return failure{status: http.StatusBadRequest, code: "invalid_request", message: err.Error()}
	case errors.Is(err, expensesdomain.ErrNotFound):
		return failure{status: http.StatusNotFound, code: "not_found", message: err.Error()}
	case errors.Is(err, expensesdomain.ErrConflict):
		return failure{status: http.StatusConflict, code: "conflict", message: err.Error()}
	case errors.Is(err, expensesdomain.ErrDataIntegrity):
		return failure{status: http.StatusInternalServerError, code: "data_integrity", message: "stored data is inconsistent", internal: true}
	default:
		return failure{status: http.StatusInternalServerError, code: "internal_error", message: "internal error", internal: true}
	}
}

func (h *Handlers) logFailure(r *http.Request, op string, f failure, err error, args ...any) {
	log := logger.FromContext(r.Context(), h.log)
	if f.internal {
		log.InternalError(op+": failed", err, args...)
		return
	}
	log.BusinessError(op+": rejected", err, args...)
}

// fail logs err and renders the html error page.
func (h *Handlers) fail(w http.ResponseWriter, r *http.Request, op string, err error, args ...any) {
	f := classify(err)
	h.logFailure(r, op, f, err, args...)
	h.renderError(w, r, f.status, f.message)
}

// failJSON logs err and writes the json error envelope.
func (h *Handlers) failJSON(w http.ResponseWriter, r *http.Request, op string, err error, args ...any) {
	f := classify(err)
	h.logFailure(r, op, f, err, args...)
	writeError(w, f.status, f.code, f.message)
}
