package websocket

import (
	"encoding/json"
	"slices"
	"sync"
	"time"

	"github.com/dom/hero-forge/internal/domain"
	"github.com/dom/hero-forge/internal/logger"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 64 * 1024
	sendBuffer     = 256
)

// Client is one websocket connection owned by an account. It always receives
// notifications naming its account, plus those for heroes it subscribed to.
type Client struct {
	hub       *Hub
	conn      *websocket.Conn
	send      chan []byte
	accountID uuid.UUID
	closeOnce sync.Once

	mu     sync.Mutex
	heroes map[uint64]struct{}
	all    bool
}

func NewClient(hub *Hub, conn *websocket.Conn, accountID uuid.UUID) *Client {
	return &Client{
		hub:       hub,
		conn:      conn,
		send:      make(chan []byte, sendBuffer),
		accountID: accountID,
		heroes:    make(map[uint64]struct{}),
	}
}

func (c *Client) AccountID() uuid.UUID {
	return c.accountID
}

// Close stops the write pump. Safe to call more than once.
func (c *Client) Close() {
	c.closeOnce.Do(func() {
		close(c.send)
	})
}

func (c *Client) ReadPump() {
	defer func() {
		c.hub.Unregister(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logger.Sugar().Warnf("websocket error: %v", err)
			}
			break
		}

		var msg Message
		if err := json.Unmarshal(data, &msg); err != nil {
			c.sendError("INVALID_MESSAGE", "Message is not valid JSON")
			continue
		}

		c.handleMessage(&msg)
	}
}

func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			w, err := c.conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(message)

			if err := w.Close(); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (c *Client) handleMessage(msg *Message) {
	switch msg.Type {
	case MessageTypeSubscribe, MessageTypeUnsubscribe:
		var payload SubscribePayload
		if err := json.Unmarshal(msg.Payload, &payload); err != nil {
			c.sendError("INVALID_PAYLOAD", "Invalid subscription payload")
			return
		}
		c.Send(MessageTypeSubscribed, c.updateSubscription(payload, msg.Type == MessageTypeSubscribe))

	default:
		c.sendError("UNKNOWN_TYPE", "Unknown message type")
	}
}

func (c *Client) updateSubscription(p SubscribePayload, add bool) SubscribedPayload {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, id := range p.HeroIDs {
		if add {
			c.heroes[id] = struct{}{}
		} else {
			delete(c.heroes, id)
		}
	}
	if p.All {
		c.all = add
	}

	out := SubscribedPayload{HeroIDs: make([]uint64, 0, len(c.heroes)), All: c.all}
	for id := range c.heroes {
		out.HeroIDs = append(out.HeroIDs, id)
	}
	slices.Sort(out.HeroIDs)
	return out
}

// wants reports whether the notification should reach this client
func (c *Client) wants(n domain.Notification) bool {
	if slices.Contains(n.Accounts, c.accountID) {
		return true
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.all {
		return true
	}
	for _, id := range n.HeroIDs {
		if _, ok := c.heroes[id]; ok {
			return true
		}
	}
	return false
}

func (c *Client) sendError(code, message string) {
	c.Send(MessageTypeError, ErrorPayload{Code: code, Message: message})
}

// Send queues a message, dropping it if the client is not keeping up
func (c *Client) Send(msgType MessageType, payload interface{}) {
	msg, err := NewMessage(msgType, payload)
	if err != nil {
		logger.Sugar().Errorf("failed to marshal message: %v", err)
		return
	}
	data, err := json.Marshal(msg)
	if err != nil {
		logger.Sugar().Errorf("failed to marshal message: %v", err)
		return
	}
	c.hub.deliver(c, data)
}
