// Package streaming pushes bus events to connected WebSocket clients.
package streaming

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/devdash/devdash/internal/common/logger"
	"github.com/devdash/devdash/internal/events"
	"github.com/devdash/devdash/internal/events/bus"
)

// Client is a single WebSocket connection owned by one user.
type Client struct {
	ID     string
	UserID string

	conn   *websocket.Conn
	send   chan []byte
	hub    *Hub
	logger *logger.Logger
	mu     sync.RWMutex
	closed bool
}

// frame is the JSON message delivered to clients for each bus event.
type frame struct {
	Subject string     `json:"subject"`
	Event   *bus.Event `json:"event"`
}

// Hub routes bus events to the WebSocket clients of the user they concern.
type Hub struct {
	clients     map[*Client]bool
	userClients map[string]map[*Client]bool

	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte // frames for every client, regardless of user
	deliver    chan userFrame

	eventBus bus.EventBus
	logger   *logger.Logger
	mu       sync.RWMutex
}

type userFrame struct {
	userID  string
	payload []byte
}

// NewHub creates a hub wired to the given event bus.
func NewHub(eventBus bus.EventBus, log *logger.Logger) *Hub {
	return &Hub{
		clients:     make(map[*Client]bool),
		userClients: make(map[string]map[*Client]bool),
		register:    make(chan *Client),
		unregister:  make(chan *Client),
		broadcast:   make(chan []byte, 256),
		deliver:     make(chan userFrame, 256),
		eventBus:    eventBus,
		logger:      log,
	}
}

// Run processes registrations and deliveries until the context is cancelled.
// It subscribes to every subject on the bus; events carrying a user_id go to
// that user's connections, events without one go to everybody.
func (h *Hub) Run(ctx context.Context) {
	sub, err := h.eventBus.Subscribe(events.SubjectAll, h.handleEvent)
	if err != nil {
		h.logger.Error("Failed to subscribe to event bus", zap.Error(err))
		return
	}
	defer sub.Unsubscribe()

	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			return

		case client := <-h.register:
			h.addClient(client)

		case client := <-h.unregister:
			h.removeClient(client)

		case payload := <-h.broadcast:
			h.mu.RLock()
			for client := range h.clients {
				h.sendOrEvict(client, payload)
			}
			h.mu.RUnlock()

		case uf := <-h.deliver:
			h.mu.RLock()
			for client := range h.userClients[uf.userID] {
				h.sendOrEvict(client, uf.payload)
			}
			h.mu.RUnlock()
		}
	}
}

// handleEvent marshals a bus event and hands it to the delivery loop.
func (h *Hub) handleEvent(ctx context.Context, event *bus.Event) error {
	payload, err := json.Marshal(frame{Subject: event.Type, Event: event})
	if err != nil {
		return err
	}

	if userID := event.UserID(); userID != "" {
		select {
		case h.deliver <- userFrame{userID: userID, payload: payload}:
		default:
			h.logger.Warn("Dropping event, delivery queue full", zap.String("subject", event.Type))
		}
		return nil
	}

	select {
	case h.broadcast <- payload:
	default:
		h.logger.Warn("Dropping event, broadcast queue full", zap.String("subject", event.Type))
	}
	return nil
}

// Register adds a client to the hub.
func (h *Hub) Register(client *Client) {
	h.register <- client
}

// Unregister removes a client from the hub.
func (h *Hub) Unregister(client *Client) {
	h.unregister <- client
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *Hub) addClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.clients[client] = true
	if h.userClients[client.UserID] == nil {
		h.userClients[client.UserID] = make(map[*Client]bool)
	}
	h.userClients[client.UserID][client] = true

	h.logger.Debug("Client connected",
		zap.String("client_id", client.ID),
		zap.String("user_id", client.UserID),
		zap.Int("total_clients", len(h.clients)))
}

func (h *Hub) removeClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if !h.clients[client] {
		return
	}
	delete(h.clients, client)
	if peers := h.userClients[client.UserID]; peers != nil {
		delete(peers, client)
		if len(peers) == 0 {
			delete(h.userClients, client.UserID)
		}
	}
	client.closeSend()

	h.logger.Debug("Client disconnected",
		zap.String("client_id", client.ID),
		zap.Int("total_clients", len(h.clients)))
}

// sendOrEvict queues a payload for a client, dropping the client if its
// buffer is full. Callers hold the read lock; eviction happens via the
// unregister channel to avoid deadlocking on the write lock.
func (h *Hub) sendOrEvict(client *Client, payload []byte) {
	if !client.enqueue(payload) {
		h.logger.Warn("Client send buffer full, evicting",
			zap.String("client_id", client.ID))
		go func() { h.unregister <- client }()
	}
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for client := range h.clients {
		client.closeSend()
	}
	h.clients = make(map[*Client]bool)
	h.userClients = make(map[string]map[*Client]bool)
}
