package httpx

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	kafkago "github.com/segmentio/kafka-go"

	kafkax "github.com/agroshop/admin-api/internal/kafka"
	"github.com/agroshop/admin-api/internal/orders"
	"github.com/agroshop/admin-api/internal/redisx"
)

type OrdersHandler struct {
	Repo     *orders.Repo
	Producer *kafkax.Producer
	Redis    *redis.Client
	Service  string
}

type CreateOrderReq struct {
	ClientID string             `json:"client_id"`
	Items    []orders.ItemInput `json:"items"`
}

func (h *OrdersHandler) Register(r *chi.Mux) {
	r.Post("/orders", h.createOrder)
	r.Get("/orders", h.listOrders)
	r.Get("/orders/history", h.history)
	r.Get("/orders/top-products", h.topProducts)
	r.Get("/orders/{id}", h.getOrder)
	r.Patch("/orders/{id}/status", h.updateStatus)
}

func (h *OrdersHandler) createOrder(w http.ResponseWriter, r *http.Request) {
	var req CreateOrderReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	o, err := h.Repo.Create(ctx, req.ClientID, req.Items)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	// cache status so GET is cheap right after create
	statusKey := fmt.Sprintf(redisx.KeyOrderStatus, o.ID)
	_ = h.Redis.Set(ctx, statusKey, `{"status":"pending"}`, redisx.TTLStatusCache).Err()

	h.publish(r, orders.EventOrderCreated, o.ID, orders.OrderCreatedPayload{
		OrderID:    o.ID,
		ClientID:   o.ClientID,
		Items:      o.Items,
		TotalCents: o.TotalCents,
	})

	writeJSON(w, http.StatusCreated, o)
}

func (h *OrdersHandler) listOrders(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	os, err := h.Repo.List(ctx, r.URL.Query().Get("client"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, os)
}

func (h *OrdersHandler) getOrder(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	o, err := h.Repo.Get(ctx, chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, o)
}

func (h *OrdersHandler) updateStatus(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Status orders.Status `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	o, from, err := h.Repo.UpdateStatus(ctx, chi.URLParam(r, "id"), req.Status)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	statusKey := fmt.Sprintf(redisx.KeyOrderStatus, o.ID)
	_ = h.Redis.Set(ctx, statusKey,
		fmt.Sprintf(`{"status":%q}`, o.Status), redisx.TTLStatusCache).Err()

	h.publish(r, orders.EventOrderStatusUpdated, o.ID, orders.OrderStatusUpdatedPayload{
		OrderID:    o.ID,
		ClientID:   o.ClientID,
		From:       from,
		To:         o.Status,
		TotalCents: o.TotalCents,
	})

	writeJSON(w, http.StatusOK, o)
}

// history groups the full order set by day/month/year and attaches the
// per-group summaries the dashboard table shows.
func (h *OrdersHandler) history(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	all, err := h.Repo.List(ctx, "")
	if err != nil {
		writeDomainError(w, err)
		return
	}

	g := orders.Granularity(r.URL.Query().Get("granularity"))
	switch g {
	case orders.GroupByDay, orders.GroupByMonth, orders.GroupByYear:
	case "":
		g = orders.GroupByDay
	default:
		writeError(w, http.StatusBadRequest, "granularity must be day, month or year")
		return
	}

	groups := orders.GroupHistory(all, g, r.URL.Query().Get("filter"))

	type historyGroup struct {
		orders.Group
		Summary orders.GroupSummary `json:"summary"`
	}
	out := make([]historyGroup, 0, len(groups))
	for _, grp := range groups {
		out = append(out, historyGroup{Group: grp, Summary: orders.Summarize(grp)})
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *OrdersHandler) topProducts(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	all, err := h.Repo.List(ctx, "")
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, orders.TopProducts(all, 10))
}

func (h *OrdersHandler) publish(r *http.Request, eventType, orderID string, payload any) {
	ev := orders.Envelope{
		EventID:       uuid.NewString(),
		EventType:     eventType,
		EventVersion:  1,
		OccurredAt:    time.Now().UTC(),
		Producer:      h.Service,
		TraceID:       r.Header.Get("X-Request-Id"),
		CorrelationID: orderID,
		Payload:       kafkax.MustMarshal(payload),
	}
	h.Producer.Publish(orders.PartitionKey(orderID), kafkax.MustMarshal(ev),
		kafkago.Header{Key: "x-event-type", Value: []byte(eventType)},
		kafkago.Header{Key: "x-event-version", Value: []byte("1")},
	)
}
