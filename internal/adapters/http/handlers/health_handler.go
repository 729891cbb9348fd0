package handlers

import (
	"net/http"
	"strconv"

	"github.com/jsamuelsen11/todolists/internal/adapters/http/dto"
	"github.com/jsamuelsen11/todolists/internal/ports"
)

// notReadyRetryAfter is the Retry-After hint, in seconds, sent with a 503.
const notReadyRetryAfter = 5

// HealthHandler serves /health/live and /health/ready. Readiness runs
// the checkers registered for the selected backend (firebase-auth and
// firestore, or backend-memory) and session store (redis or sessions).
type HealthHandler struct {
	registry    ports.HealthRegistry
	activeViews func() int
}

// NewHealthHandler creates a HealthHandler. activeViews may be nil.
func NewHealthHandler(registry ports.HealthRegistry, activeViews func() int) *HealthHandler {
	if activeViews == nil {
		activeViews = func() int { return 0 }
	}
	return &HealthHandler{registry: registry, activeViews: activeViews}
}

// Liveness handles GET /health/live. It never calls a dependency.
func (h *HealthHandler) Liveness(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, dto.LivenessResponse{
		Status:      "ok",
		ActiveViews: h.activeViews(),
	})
}

// Readiness handles GET /health/ready: 200 when every check passes, 503
// with a Retry-After hint otherwise.
func (h *HealthHandler) Readiness(w http.ResponseWriter, r *http.Request) {
	resp, ready := dto.ToReadinessResponse(h.registry.CheckAll(r.Context()))
	if !ready {
		w.Header().Set("Retry-After", strconv.Itoa(notReadyRetryAfter))
		writeJSON(w, http.StatusServiceUnavailable, resp)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
