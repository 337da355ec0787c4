package httpx

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/agroshop/admin-api/internal/notifications"
)

type NotificationsHandler struct {
	Repo *notifications.Repo
}

func (h *NotificationsHandler) Register(r *chi.Mux) {
	r.Get("/notifications", h.list)
}

func (h *NotificationsHandler) list(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	ns, err := h.Repo.List(ctx)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, ns)
}
