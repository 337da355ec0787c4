package httpx

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/agroshop/admin-api/internal/catalog"
	"github.com/agroshop/admin-api/internal/clients"
	"github.com/agroshop/admin-api/internal/drivers"
	"github.com/agroshop/admin-api/internal/orders"
	"github.com/agroshop/admin-api/internal/promos"
)

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}

// writeDomainError maps repo errors onto status codes; anything unclassified
// is a 500.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, catalog.ErrNotFound),
		errors.Is(err, clients.ErrNotFound),
		errors.Is(err, drivers.ErrNotFound),
		errors.Is(err, orders.ErrNotFound),
		errors.Is(err, promos.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, catalog.ErrInvalidInput),
		errors.Is(err, clients.ErrInvalidInput),
		errors.Is(err, drivers.ErrInvalidInput),
		errors.Is(err, orders.ErrInvalidInput),
		errors.Is(err, promos.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, orders.ErrInvalidTransition),
		errors.Is(err, promos.ErrNotActive):
		writeError(w, http.StatusConflict, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}
