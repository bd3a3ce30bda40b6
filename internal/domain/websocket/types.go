package websocket

import (
	"time"
)

// EventType represents different real-time event types
type EventType string

const (
	// Connection events
	EventTypePing      EventType = "ping"
	EventTypePong      EventType = "pong"
	EventTypeConnected EventType = "connected"
	EventTypeError     EventType = "error"

	// Activity feed events (server -> client)
	EventTypeActivityEntry EventType = "activity:entry"
)

// WSMessage is the universal message format
type WSMessage struct {
	Type      EventType   `json:"type"`
	Data      interface{} `json:"data,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

func NewMessage(t EventType, data interface{}) *WSMessage {
	return &WSMessage{
		Type:      t,
		Data:      data,
		Timestamp: time.Now(),
	}
}
