package services

import (
	"encoding/json"
	"sync"

	"github.com/gorilla/websocket"
)

type WSClient struct {
	OwnerID string
	Conn    *websocket.Conn
	mu      sync.Mutex
}

func (c *WSClient) write(msgType int, data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.Conn.WriteMessage(msgType, data)
}

// Ping keeps the connection alive through proxies.
func (c *WSClient) Ping() error {
	return c.write(websocket.PingMessage, nil)
}

type RealtimeHub struct {
	mu      sync.RWMutex
	clients map[string]map[*WSClient]struct{}
}

func NewRealtimeHub() *RealtimeHub {
	return &RealtimeHub{clients: make(map[string]map[*WSClient]struct{})}
}

func (h *RealtimeHub) Register(c *WSClient) {
	h.mu.Lock()
	if h.clients[c.OwnerID] == nil {
		h.clients[c.OwnerID] = make(map[*WSClient]struct{})
	}
	h.clients[c.OwnerID][c] = struct{}{}
	h.mu.Unlock()
}

func (h *RealtimeHub) Unregister(c *WSClient) {
	h.mu.Lock()
	if set := h.clients[c.OwnerID]; set != nil {
		delete(set, c)
		if len(set) == 0 {
			delete(h.clients, c.OwnerID)
		}
	}
	h.mu.Unlock()
	_ = c.Conn.Close()
}

// Connected is the number of live sockets for ownerID.
func (h *RealtimeHub) Connected(ownerID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[ownerID])
}

func (h *RealtimeHub) Broadcast(ownerID string, payload any) {
	msg, err := json.Marshal(payload)
	if err != nil {
		return
	}
	h.mu.RLock()
	targets := make([]*WSClient, 0, len(h.clients[ownerID]))
	for c := range h.clients[ownerID] {
		targets = append(targets, c)
	}
	h.mu.RUnlock()

	for _, c := range targets {
		_ = c.write(websocket.TextMessage, msg)
	}
}
