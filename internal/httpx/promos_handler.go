package httpx

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/agroshop/admin-api/internal/promos"
)

type PromosHandler struct {
	Repo *promos.Repo
}

// promotionView attaches the clock-derived status the dashboard shows.
type promotionView struct {
	promos.Promotion
	Status promos.Status `json:"status"`
}

func (h *PromosHandler) Register(r *chi.Mux) {
	r.Post("/promotions", h.create)
	r.Get("/promotions", h.list)
	r.Get("/promotions/{id}", h.get)
	r.Put("/promotions/{id}", h.update)
	r.Delete("/promotions/{id}", h.delete)
	r.Post("/promotions/{id}/redeem", h.redeem)
}

func (h *PromosHandler) view(p promos.Promotion) promotionView {
	return promotionView{Promotion: p, Status: promos.DeriveStatus(p, h.Repo.Now())}
}

func (h *PromosHandler) create(w http.ResponseWriter, r *http.Request) {
	var req promos.PromotionInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	p, err := h.Repo.Create(ctx, req)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, h.view(p))
}

func (h *PromosHandler) list(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	ps, err := h.Repo.List(ctx)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	out := make([]promotionView, 0, len(ps))
	for _, p := range ps {
		out = append(out, h.view(p))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *PromosHandler) get(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	p, err := h.Repo.Get(ctx, chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, h.view(p))
}

func (h *PromosHandler) update(w http.ResponseWriter, r *http.Request) {
	var req promos.PromotionInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	p, err := h.Repo.Update(ctx, chi.URLParam(r, "id"), req)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, h.view(p))
}

func (h *PromosHandler) delete(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := h.Repo.Delete(ctx, chi.URLParam(r, "id")); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *PromosHandler) redeem(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	p, err := h.Repo.Redeem(ctx, chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, h.view(p))
}
