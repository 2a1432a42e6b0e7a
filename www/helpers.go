package www

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"ordertrack/orders"
	"ordertrack/store"
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

// writeOrderError maps manager errors onto the response taxonomy: business
// rule violations and bad input are 400, a missing order is 404, anything
// else is logged in full and reported as a generic 500.
func writeOrderError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		writeError(w, http.StatusNotFound, "order not found")
	case errors.Is(err, orders.ErrTerminalStatus),
		errors.Is(err, orders.ErrStatusRegression),
		errors.Is(err, orders.ErrUnknownStatus),
		errors.Is(err, orders.ErrInvalidOrder):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		log.Printf("order api: %v", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}
