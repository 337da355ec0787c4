package httpx

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/agroshop/admin-api/internal/blobstore"
)

type FilesHandler struct {
	Blobs *blobstore.Store
}

func (h *FilesHandler) Register(r *chi.Mux) {
	r.Get("/files/{name}", h.download)
}

func (h *FilesHandler) download(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	contentType, data, err := h.Blobs.Get(ctx, chi.URLParam(r, "name"))
	if errors.Is(err, blobstore.ErrNotFound) {
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
