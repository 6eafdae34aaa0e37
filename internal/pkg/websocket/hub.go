package websocket

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/rs/zerolog"
	"github.com/tinkerlab/labtrack/internal/app/models"
)

// Envelope types written to clients
const (
	TypeConnected    = "connected"
	TypeEcho         = "echo"
	TypeNotification = "notification"
)

// Envelope is the JSON frame sent to clients
type Envelope struct {
	Type    string      `json:"type"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

type delivery struct {
	userID  string
	client  *Client
	payload []byte
}

// Hub tracks connected clients per user and fans out pushes to them.
// All client bookkeeping happens on the Run goroutine.
type Hub struct {
	// Registered clients organized by user ID
	clients map[string]map[*Client]struct{}

	register   chan *Client
	unregister chan *Client
	deliver    chan delivery

	// closed when Run returns
	done chan struct{}

	// guards clients for ClientCount readers
	mu sync.RWMutex

	logger zerolog.Logger
}

// NewHub creates a new Hub instance
func NewHub(logger zerolog.Logger) *Hub {
	return &Hub{
		clients:    make(map[string]map[*Client]struct{}),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		deliver:    make(chan delivery, 256),
		done:       make(chan struct{}),
		logger:     logger,
	}
}

// Run processes registrations and deliveries until ctx is cancelled, then
// closes every client.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)

	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			return

		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case d := <-h.deliver:
			if d.client != nil {
				h.sendTo(d.client, d.payload)
				continue
			}
			h.fanOut(d.userID, d.payload)
		}
	}
}

func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	if _, ok := h.clients[client.userID]; !ok {
		h.clients[client.userID] = make(map[*Client]struct{})
	}
	h.clients[client.userID][client] = struct{}{}
	h.mu.Unlock()

	greeting, _ := json.Marshal(Envelope{Type: TypeConnected, Message: "WebSocket connection established"})
	client.send <- greeting

	h.logger.Info().
		Str("userID", client.userID).
		Str("clientID", client.id).
		Msg("Client registered")
}

func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	clients, ok := h.clients[client.userID]
	if !ok {
		return
	}
	if _, ok := clients[client]; !ok {
		return
	}

	delete(clients, client)
	close(client.send)
	if len(clients) == 0 {
		delete(h.clients, client.userID)
	}

	h.logger.Info().
		Str("userID", client.userID).
		Str("clientID", client.id).
		Msg("Client unregistered")
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for userID, clients := range h.clients {
		for client := range clients {
			close(client.send)
		}
		delete(h.clients, userID)
	}
}

func (h *Hub) isRegistered(client *Client) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	_, ok := h.clients[client.userID][client]
	return ok
}

// sendTo queues payload for one client, dropping the client if its buffer is full
func (h *Hub) sendTo(client *Client, payload []byte) {
	if !h.isRegistered(client) {
		return
	}
	select {
	case client.send <- payload:
	default:
		h.logger.Warn().Str("clientID", client.id).Msg("Dropping slow WebSocket client")
		h.unregisterClient(client)
	}
}

func (h *Hub) fanOut(userID string, payload []byte) {
	h.mu.RLock()
	targets := make([]*Client, 0, len(h.clients[userID]))
	for client := range h.clients[userID] {
		targets = append(targets, client)
	}
	h.mu.RUnlock()

	for _, client := range targets {
		h.sendTo(client, payload)
	}
}

// queue hands a delivery to Run without blocking past shutdown
func (h *Hub) queue(d delivery) bool {
	select {
	case h.deliver <- d:
		return true
	case <-h.done:
		return false
	default:
		h.logger.Warn().Str("userID", d.userID).Msg("WebSocket delivery queue full, dropping message")
		return false
	}
}

// SendToUser pushes an envelope to every connection of userID
func (h *Hub) SendToUser(userID string, env Envelope) error {
	payload, err := json.Marshal(env)
	if err != nil {
		return err
	}
	h.queue(delivery{userID: userID, payload: payload})
	return nil
}

// PublishNotification pushes a freshly stored notification to its addressee
// if they are connected. Offline users simply see it on their next list call.
func (h *Hub) PublishNotification(_ context.Context, n *models.Notification) {
	if err := h.SendToUser(n.UserID, Envelope{Type: TypeNotification, Data: n}); err != nil {
		h.logger.Error().Err(err).Int64("notificationID", n.ID).Msg("Failed to encode notification push")
	}
}

// ClientCount returns the number of open connections for a user
func (h *Hub) ClientCount(userID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[userID])
}
