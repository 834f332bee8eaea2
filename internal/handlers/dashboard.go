package handlers

import (
	"context"
	"net/http"

	"htxagri/internal/auth"
	"htxagri/internal/middleware"
	"htxagri/internal/money"
	"htxagri/internal/websocket"
)

func (h *Handler) DashboardStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.dashboard.Stats(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to load dashboard stats")
		return
	}
	respondJSON(w, http.StatusOK, stats)
}

// WSDashboard upgrades to a websocket that receives a stats snapshot after
// every mutation touching the dashboard numbers. Browsers cannot set headers
// on websocket handshakes, so the token may come in the query string.
func (h *Handler) WSDashboard(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		if bearer, ok := middleware.BearerToken(r.Header.Get("Authorization")); ok {
			token = bearer
		}
	}
	if token == "" {
		respondError(w, http.StatusUnauthorized, "missing token")
		return
	}
	if _, err := auth.ParseToken(h.cfg.JWTSecret, token); err != nil {
		respondError(w, http.StatusUnauthorized, "invalid token")
		return
	}
	websocket.ServeWS(w, r, h.hub)
}

func (h *Handler) broadcastStats(ctx context.Context) {
	stats, err := h.dashboard.Stats(ctx)
	if err != nil {
		return
	}
	h.hub.BroadcastStats(websocket.StatsUpdate{
		Stats:           stats,
		TotalRevenueVND: money.FormatVND(stats.TotalRevenue),
	})
}
