package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"

	"github.com/dom/hero-forge/internal/domain"
	"github.com/dom/hero-forge/internal/logger"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// ErrHubStopped is returned when notifying a hub that has shut down
var ErrHubStopped = errors.New("websocket hub stopped")

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Hub fans committed notifications out to connected clients
type Hub struct {
	clients    map[*Client]bool
	unregister chan *Client
	broadcast  chan domain.Notification
	stop       chan struct{}
	done       chan struct{} // closed when Run() exits
	running    bool
	stopped    bool
	mu         sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		unregister: make(chan *Client),
		broadcast:  make(chan domain.Notification, 64),
		stop:       make(chan struct{}),
		done:       make(chan struct{}),
	}
}

// Run serves the hub until Stop. It returns at once if the hub is already
// running or stopped.
func (h *Hub) Run() {
	h.mu.Lock()
	if h.running || h.stopped {
		h.mu.Unlock()
		return
	}
	h.running = true
	h.mu.Unlock()
	defer close(h.done)

	for {
		select {
		case <-h.stop:
			h.mu.Lock()
			h.stopped = true
			h.closeClients()
			h.mu.Unlock()
			return

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				client.Close()
			}
			h.mu.Unlock()

		case n := <-h.broadcast:
			h.fanOut(n)
		}
	}
}

// Stop shuts the hub down and blocks until Run has returned. A hub that was
// never run is marked done directly.
func (h *Hub) Stop() {
	h.mu.Lock()
	if h.stopped {
		h.mu.Unlock()
		return
	}
	h.stopped = true
	running := h.running
	if !running {
		h.closeClients()
	}
	h.mu.Unlock()

	close(h.stop)
	if !running {
		close(h.done)
		return
	}
	<-h.done
}

// Register adds the client before its pumps start, so replies to its first
// message always find it registered
func (h *Hub) Register(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.stopped {
		client.Close()
		return
	}
	h.clients[client] = true
}

func (h *Hub) Unregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

// ClientCount returns the number of connected clients
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Notify queues a notification for delivery to interested clients
func (h *Hub) Notify(ctx context.Context, n domain.Notification) error {
	h.mu.RLock()
	stopped := h.stopped
	h.mu.RUnlock()
	if stopped {
		return ErrHubStopped
	}

	select {
	case h.broadcast <- n:
		return nil
	case <-h.done:
		return ErrHubStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Serve upgrades the request and attaches a client for the account
func (h *Hub) Serve(w http.ResponseWriter, r *http.Request, accountID uuid.UUID) error {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return err
	}

	client := NewClient(h, conn, accountID)
	h.Register(client)

	go client.WritePump()
	go client.ReadPump()
	return nil
}

func (h *Hub) fanOut(n domain.Notification) {
	msg, err := NewMessage(MessageTypeNotification, n)
	if err != nil {
		logger.Sugar().Errorf("failed to marshal notification %s: %v", n.ID, err)
		return
	}
	data, err := json.Marshal(msg)
	if err != nil {
		logger.Sugar().Errorf("failed to marshal notification %s: %v", n.ID, err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for client := range h.clients {
		if client.wants(n) {
			h.enqueue(client, data)
		}
	}
}

func (h *Hub) deliver(client *Client, data []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[client]; ok {
		h.enqueue(client, data)
	}
}

// closeClients disconnects everyone. Callers hold h.mu.
func (h *Hub) closeClients() {
	for client := range h.clients {
		client.Close()
	}
	h.clients = make(map[*Client]bool)
}

// enqueue drops clients whose buffer is full. Callers hold h.mu.
func (h *Hub) enqueue(client *Client, data []byte) {
	select {
	case client.send <- data:
	default:
		logger.Sugar().Warnf("dropping slow websocket client %s", client.accountID)
		delete(h.clients, client)
		client.Close()
	}
}
