package httpx

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/agroshop/admin-api/internal/watch"
)

// InitialFetch loads the current result set of a collection so a new
// subscriber starts from the present state before the pushed snapshots.
type InitialFetch func(ctx context.Context) (any, error)

// WatchHandler bridges watch subscriptions to the dashboard over SSE. The
// router's global timeout bounds one connection; EventSource reconnects and
// replays the initial state, so a cut stream only costs a refresh.
type WatchHandler struct {
	Hub     *watch.Hub
	Initial map[string]InitialFetch
}

func (h *WatchHandler) Register(r *chi.Mux) {
	r.Get("/watch/{collection}", h.stream)
}

func (h *WatchHandler) stream(w http.ResponseWriter, r *http.Request) {
	collection := chi.URLParam(r, "collection")
	fetch, ok := h.Initial[collection]
	if !ok {
		writeError(w, http.StatusNotFound, "unknown collection")
		return
	}
	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, http.StatusInternalServerError, "streaming unsupported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	initial, err := fetch(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	b, _ := json.Marshal(initial)
	fmt.Fprintf(w, "event: init\ndata: %s\n\n", b)
	flusher.Flush()

	events := make(chan watch.Snapshot, 64)
	sub, err := h.Hub.Subscribe(r.Context(), collection, func(s watch.Snapshot) {
		select {
		case events <- s:
		default: // slow client: drop, the next write catches it up
		}
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	defer sub.Cancel()

	for {
		select {
		case <-r.Context().Done():
			return
		case s := <-events:
			b, err := json.Marshal(s)
			if err != nil {
				continue
			}
			fmt.Fprintf(w, "event: snapshot\ndata: %s\n\n", b)
			flusher.Flush()
		}
	}
}
