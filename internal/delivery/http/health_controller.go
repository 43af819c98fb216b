package http

import (
	"context"
	"net/http"
	"time"
)

// Pinger is satisfied by *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type HealthController struct {
	DB      Pinger
	Timeout time.Duration
}

func NewHealthController(db Pinger) *HealthController {
	return &HealthController{DB: db, Timeout: 2 * time.Second}
}

// HealthResponse is the body of a successful health check.
type HealthResponse struct {
	Status string `json:"status"`
}

// Health reports whether the database answers a ping.
func (c *HealthController) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), c.Timeout)
	defer cancel()
	if err := c.DB.PingContext(ctx); err != nil {
		respondError(w, http.StatusServiceUnavailable, codeUnavailable, "database unavailable")
		return
	}
	respondOK(w, HealthResponse{Status: "ok"})
}
