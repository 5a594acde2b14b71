package api

import (
	"net/http"

	"github.com/filmoteca/filmoteca/internal/api/respond"
	"github.com/filmoteca/filmoteca/internal/store"
)

// HealthHandler reports whether the document store is reachable.
type HealthHandler struct {
	store store.Store
}

func NewHealthHandler(st store.Store) *HealthHandler { return &HealthHandler{store: st} }

// CheckHealth GET /api/health
func (h *HealthHandler) CheckHealth(w http.ResponseWriter, r *http.Request) {
	if err := h.store.HealthCheck(r.Context()); err != nil {
		respond.WriteError(w, http.StatusServiceUnavailable, "Store unavailable")
		return
	}
	respond.WriteData(w, http.StatusOK, map[string]string{"status": "healthy"})
}
