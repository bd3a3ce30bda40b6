package websocket

import (
	"encoding/json"
	"time"

	wstypes "agencyhub-service/internal/domain/websocket"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4 * 1024
)

// ClientAuth holds authentication information
type ClientAuth struct {
	IdentityID string
	Email      string
	Roles      []string
}

type Client struct {
	hub        *Hub
	conn       *websocket.Conn
	send       chan []byte
	identityID string
	agencyID   string
	logger     *zap.Logger
}

func NewClient(hub *Hub, conn *websocket.Conn, auth *ClientAuth, agencyID string, logger *zap.Logger) *Client {
	return &Client{
		hub:        hub,
		conn:       conn,
		send:       make(chan []byte, 64),
		identityID: auth.IdentityID,
		agencyID:   agencyID,
		logger:     logger,
	}
}

// Start launches the read and write pumps.
func (c *Client) Start() {
	go c.writePump()
	go c.readPump()
}

// readPump drains inbound frames. The feed is one-way; clients only send
// pings, anything else is ignored.
func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.Warn("websocket read error", zap.Error(err))
			}
			return
		}

		var msg wstypes.WSMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			continue
		}
		if msg.Type == wstypes.EventTypePing {
			c.enqueue(wstypes.NewMessage(wstypes.EventTypePong, nil))
		}
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case raw, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, raw); err != nil {
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

// SendConnected pushes the initial handshake ack onto the send queue.
func (c *Client) SendConnected(msg *wstypes.WSMessage) {
	c.enqueue(msg)
}

func (c *Client) enqueue(msg *wstypes.WSMessage) {
	raw, err := encodeMessage(msg)
	if err != nil {
		return
	}
	select {
	case c.send <- raw:
	default:
	}
}

func encodeMessage(msg *wstypes.WSMessage) ([]byte, error) {
	return json.Marshal(msg)
}
