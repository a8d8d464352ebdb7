package ws

import (
	"context"
	"log/slog"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"hiinakas-server/config"
	"hiinakas-server/lobby"
	"hiinakas-server/wsutil"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Allow all origins for development; restrict in production.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Hub maintains the set of active clients and routes per-player messages.
// It implements lobby.Sender so the registry can fan snapshots out without
// knowing about websockets.
type Hub struct {
	mu         sync.RWMutex
	clients    map[*Client]bool
	byPlayer   map[string]*Client
	Register   chan *Client
	Unregister chan *Client
	Registry   *lobby.Registry
	Config     *config.Config
}

// NewHub creates a new Hub. Wire the registry afterwards with SetRegistry
// (the registry needs the hub as its sender).
func NewHub(cfg *config.Config) *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		byPlayer:   make(map[string]*Client),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		Config:     cfg,
	}
}

// SetRegistry attaches the lobby registry. Must be called before Run.
func (h *Hub) SetRegistry(r *lobby.Registry) {
	h.Registry = r
}

// SendToPlayer routes an encoded message to the named player's connection.
// Unknown or disconnected players are silently skipped.
func (h *Hub) SendToPlayer(uid string, data []byte) {
	h.mu.RLock()
	client := h.byPlayer[uid]
	h.mu.RUnlock()
	if client == nil {
		return
	}
	wsutil.SafeSend(client.Send, data)
}

// bindPlayer associates an identified player uid with its connection.
func (h *Hub) bindPlayer(uid string, c *Client) {
	h.mu.Lock()
	h.byPlayer[uid] = c
	h.mu.Unlock()
}

// Run starts the hub's main loop. Should be run as a goroutine. When ctx is
// cancelled, Run returns and no longer accepts registrations.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			slog.Info("shutdown signal received, stopping", "tag", "ws")
			return
		case client := <-h.Register:
			h.mu.Lock()
			h.clients[client] = true
			total := len(h.clients)
			h.mu.Unlock()
			slog.Info("client connected", "tag", "ws", "total", total)

		case client := <-h.Unregister:
			h.mu.Lock()
			_, ok := h.clients[client]
			if ok {
				delete(h.clients, client)
				if client.UID != "" && h.byPlayer[client.UID] == client {
					delete(h.byPlayer, client.UID)
				}
				close(client.Send)
			}
			total := len(h.clients)
			h.mu.Unlock()
			if !ok {
				continue
			}
			slog.Info("client disconnected", "tag", "ws", "total", total)

			// A dropped connection vacates its seat; an empty lobby is
			// destroyed by the registry.
			if client.UID != "" && client.SessionUID != "" {
				h.Registry.Leave(client.SessionUID, client.UID)
			}
		}
	}
}

// ServeWS handles WebSocket upgrade requests and creates a new Client.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Error("websocket upgrade", "tag", "ws", "err", err)
		return
	}

	client := &Client{
		Hub:  h,
		Conn: conn,
		Send: make(chan []byte, 256),
	}

	h.Register <- client

	go client.WritePump()
	go client.ReadPump()
}
