package websocket

import (
	"encoding/json"
	"time"
)

type MessageType string

const (
	// Client to Server
	MessageTypeSubscribe   MessageType = "SUBSCRIBE"
	MessageTypeUnsubscribe MessageType = "UNSUBSCRIBE"

	// Server to Client
	MessageTypeSubscribed   MessageType = "SUBSCRIBED"
	MessageTypeNotification MessageType = "NOTIFICATION"
	MessageTypeError        MessageType = "ERROR"
)

type Message struct {
	Type      MessageType     `json:"type"`
	Payload   json.RawMessage `json:"payload"`
	Timestamp int64           `json:"timestamp"`
}

func NewMessage(msgType MessageType, payload interface{}) (*Message, error) {
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return &Message{
		Type:      msgType,
		Payload:   payloadBytes,
		Timestamp: time.Now().UnixMilli(),
	}, nil
}

// Client to Server payloads

// SubscribePayload selects heroes to follow. All follows every notification.
type SubscribePayload struct {
	HeroIDs []uint64 `json:"heroIds"`
	All     bool     `json:"all"`
}

// Server to Client payloads

type SubscribedPayload struct {
	HeroIDs []uint64 `json:"heroIds"`
	All     bool     `json:"all"`
}

type ErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
