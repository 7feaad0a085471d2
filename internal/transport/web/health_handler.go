package web

import (
	"context"
	"net/http"
	"time"
)

// HealthResponse is the /health body.
type HealthResponse struct {
	Status      string    `json:"status"`
	Timestamp   time.Time `json:"timestamp"`
	Environment string    `json:"environment"`
	Uptime      string    `json:"uptime,omitempty"`
}

// ReadinessResponse is the /readiness body / Réponse de /readiness
type ReadinessResponse struct {
	Status    string            `json:"status"` // "ok" or "error"
	Timestamp time.Time         `json:"timestamp"`
	Checks    map[string]string `json:"checks"`
}

var startTime = time.Now()

// HealthCheck handles the /health endpoint.
// Liveness only: it answers 200 while the process runs and checks no dependency.
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	jsonResponse(w, HealthResponse{
		Status:      "ok",
		Timestamp:   time.Now().UTC(),
		Environment: h.container.Config.Environment,
		Uptime:      time.Since(startTime).Round(time.Second).String(),
	})
}

// ReadinessCheck handles the /readiness endpoint.
// 503 when the database cannot be reached / 503 si la base est injoignable
func (h *Handler) ReadinessCheck(w http.ResponseWriter, r *http.Request) {
	checks := map[string]string{"database": h.checkDatabase(r.Context())}

	status, code := "ok", http.StatusOK
	for _, v := range checks {
		if v != "ok" {
			status, code = "error", http.StatusServiceUnavailable
		}
	}

	writeJSON(w, code, ReadinessResponse{
		Status:    status,
		Timestamp: time.Now().UTC(),
		Checks:    checks,
	})
}

// checkDatabase pings the pool and runs SELECT 1.
func (h *Handler) checkDatabase(ctx context.Context) string {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	var one int
	if err := h.container.DB.QueryRowContext(ctx, "SELECT 1").Scan(&one); err != nil {
		return "error"
	}
	return "ok"
}
