package websocket

import (
	"encoding/json"
	"sync"

	"htxagri/internal/models"
)

// StatsUpdate is pushed to every dashboard subscriber after a mutation
// changes the numbers behind the summary cards.
type StatsUpdate struct {
	Stats           models.DashboardStats `json:"stats"`
	TotalRevenueVND string                `json:"total_revenue_vnd"`
}

type Hub struct {
	mu      sync.RWMutex
	clients map[*Client]struct{}
}

func NewHub() *Hub {
	return &Hub{
		clients: make(map[*Client]struct{}),
	}
}

func (h *Hub) Register(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[client] = struct{}{}
}

func (h *Hub) Unregister(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.clients, client)
}

func (h *Hub) BroadcastStats(update StatsUpdate) {
	payload, _ := json.Marshal(update)
	h.mu.RLock()
	defer h.mu.RUnlock()
	for client := range h.clients {
		select {
		case client.send <- payload:
		default:
		}
	}
}
