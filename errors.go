package main

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/jackc/pgx/v5/pgconn"
)

// APIError is the single error type every failure path funnels into. The
// responder serializes it verbatim as {"status": N, "message": "..."}.
type APIError struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

func (e *APIError) Error() string { return e.Message }

func apiError(status int, message string) *APIError {
	return &APIError{Status: status, Message: message}
}

// dataError classifies a database error. Unique (23505) and foreign-key
// (23503) violations become 400s carrying the server's message; everything
// else passes through untouched and will surface as a 500.
func dataError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505", "23503":
			return apiError(http.StatusBadRequest, pgErr.Message)
		}
	}
	return err
}

// --------- Response helpers ---------

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Println("[api] write response:", err)
	}
}

// writeError is the centralized responder: every handler and middleware
// failure ends here exactly once.
func writeError(w http.ResponseWriter, err error) {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		log.Println("[api] unclassified error:", err)
		apiErr = apiError(http.StatusInternalServerError, err.Error())
	}
	writeJSON(w, apiErr.Status, apiErr)
}
