package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/dropDatabas3/bookwookie/internal/cache"
	"github.com/dropDatabas3/bookwookie/internal/http/helpers"
	"github.com/dropDatabas3/bookwookie/internal/store/core"
)

// HealthController responde /healthz chequeando store y cache.
type HealthController struct {
	Store core.Store
	Cache cache.Client
}

type healthResponse struct {
	Status     string            `json:"status"`
	Components map[string]string `json:"components"`
}

// Healthz maneja GET /healthz. Degradado sigue siendo 200; solo el
// store caído baja a 503.
func (c *HealthController) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	resp := healthResponse{Status: "ok", Components: map[string]string{}}
	status := http.StatusOK

	if err := c.Store.Ping(ctx); err != nil {
		resp.Components["store"] = "down: " + err.Error()
		resp.Status = "unavailable"
		status = http.StatusServiceUnavailable
	} else {
		resp.Components["store"] = "ok"
	}

	if c.Cache != nil {
		if err := c.Cache.Ping(ctx); err != nil {
			resp.Components["cache"] = "down: " + err.Error()
			if resp.Status == "ok" {
				resp.Status = "degraded"
			}
		} else {
			resp.Components["cache"] = "ok"
		}
	}

	helpers.WriteJSON(w, status, resp)
}
