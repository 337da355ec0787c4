package httpx

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/agroshop/admin-api/internal/clients"
	"github.com/agroshop/admin-api/internal/orders"
)

type ClientsHandler struct {
	Repo   *clients.Repo
	Orders *orders.Repo
}

func (h *ClientsHandler) Register(r *chi.Mux) {
	r.Post("/clients", h.create)
	r.Get("/clients", h.list)
	r.Get("/clients/{id}", h.get)
	r.Put("/clients/{id}", h.update)
	r.Delete("/clients/{id}", h.delete)

	r.Get("/clients/{id}/orders", h.listOrders)
	r.Get("/clients/{id}/favorites", h.listFavorites)
	r.Post("/clients/{id}/favorites", h.addFavorite)
	r.Get("/clients/{id}/coupons", h.listCoupons)
	r.Post("/clients/{id}/coupons", h.addCoupon)
	r.Get("/clients/{id}/notifications", h.listNotifications)
	r.Post("/clients/{id}/notifications", h.addNotification)
}

func (h *ClientsHandler) create(w http.ResponseWriter, r *http.Request) {
	var req clients.ClientInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	c, err := h.Repo.Create(ctx, req)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, c)
}

func (h *ClientsHandler) list(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	cs, err := h.Repo.List(ctx)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cs)
}

func (h *ClientsHandler) get(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	c, err := h.Repo.Get(ctx, chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (h *ClientsHandler) update(w http.ResponseWriter, r *http.Request) {
	var req clients.ClientInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	c, err := h.Repo.Update(ctx, chi.URLParam(r, "id"), req)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (h *ClientsHandler) delete(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := h.Repo.Delete(ctx, chi.URLParam(r, "id")); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *ClientsHandler) listOrders(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	os, err := h.Orders.List(ctx, chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, os)
}

func (h *ClientsHandler) listFavorites(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	fs, err := h.Repo.ListFavorites(ctx, chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, fs)
}

func (h *ClientsHandler) addFavorite(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ProductID string `json:"product_id"`
		Name      string `json:"name"`
		Image     string `json:"image"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	f, err := h.Repo.AddFavorite(ctx, chi.URLParam(r, "id"), req.ProductID, req.Name, req.Image)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, f)
}

func (h *ClientsHandler) listCoupons(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	cs, err := h.Repo.ListCoupons(ctx, chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cs)
}

func (h *ClientsHandler) addCoupon(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Code       string    `json:"code"`
		PercentOff int       `json:"percent_off"`
		ExpiresAt  time.Time `json:"expires_at"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	c, err := h.Repo.AddCoupon(ctx, chi.URLParam(r, "id"), req.Code, req.PercentOff, req.ExpiresAt)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, c)
}

func (h *ClientsHandler) listNotifications(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	ns, err := h.Repo.ListNotifications(ctx, chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ns)
}

func (h *ClientsHandler) addNotification(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Title string `json:"title"`
		Body  string `json:"body"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	n, err := h.Repo.AddNotification(ctx, chi.URLParam(r, "id"), req.Title, req.Body)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, n)
}
