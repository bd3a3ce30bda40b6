package websocket

import (
	"context"
	"sync"

	wstypes "agencyhub-service/internal/domain/websocket"
	"agencyhub-service/internal/pkg/jwt"

	"go.uber.org/zap"
)

// Hub fans activity events out to the dashboard clients of each agency.
// Clients are grouped by the agency they watch; a broadcast reaches every
// open socket for that agency.
type Hub struct {
	// Registered clients by agency ID
	clients map[string]map[*Client]bool
	mu      sync.RWMutex

	// Registration/unregistration
	Register   chan *Client
	unregister chan *Client

	// Broadcasting
	broadcast chan *BroadcastMessage

	jwtVerifier *jwt.Verifier
	logger      *zap.Logger
}

type BroadcastMessage struct {
	AgencyID string
	Message  *wstypes.WSMessage
}

func NewHub(jwtVerifier *jwt.Verifier, logger *zap.Logger) *Hub {
	return &Hub{
		clients:     make(map[string]map[*Client]bool),
		Register:    make(chan *Client),
		unregister:  make(chan *Client),
		broadcast:   make(chan *BroadcastMessage, 256),
		jwtVerifier: jwtVerifier,
		logger:      logger,
	}
}

// AuthenticateClient validates the JWT token and returns the client identity.
func (h *Hub) AuthenticateClient(_ context.Context, token string) (*ClientAuth, error) {
	claims, err := h.jwtVerifier.Verify(token)
	if err != nil {
		return nil, ErrInvalidToken
	}

	return &ClientAuth{
		IdentityID: claims.IdentityID(),
		Email:      claims.Email,
		Roles:      claims.Roles,
	}, nil
}

// Publish queues an event for every client watching the agency. Non-blocking:
// when the broadcast buffer is full the event is dropped, the activity log in
// Postgres remains the source of truth.
func (h *Hub) Publish(agencyID string, msg *wstypes.WSMessage) {
	select {
	case h.broadcast <- &BroadcastMessage{AgencyID: agencyID, Message: msg}:
	default:
		h.logger.Warn("activity broadcast buffer full, dropping event",
			zap.String("agency_id", agencyID),
		)
	}
}

func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.shutdown()
			return

		case client := <-h.Register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case msg := <-h.broadcast:
			h.broadcastToAgency(msg)
		}
	}
}

func (h *Hub) registerClient(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.clients[c.agencyID] == nil {
		h.clients[c.agencyID] = make(map[*Client]bool)
	}
	h.clients[c.agencyID][c] = true

	h.logger.Info("websocket client registered",
		zap.String("agency_id", c.agencyID),
		zap.String("identity_id", c.identityID),
	)
}

func (h *Hub) unregisterClient(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if conns, ok := h.clients[c.agencyID]; ok {
		if _, ok := conns[c]; ok {
			delete(conns, c)
			close(c.send)
			if len(conns) == 0 {
				delete(h.clients, c.agencyID)
			}
		}
	}
}

func (h *Hub) broadcastToAgency(msg *BroadcastMessage) {
	raw, err := encodeMessage(msg.Message)
	if err != nil {
		h.logger.Error("failed to encode broadcast message", zap.Error(err))
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for client := range h.clients[msg.AgencyID] {
		select {
		case client.send <- raw:
		default:
			// Slow consumer, skip rather than block the hub.
		}
	}
}

func (h *Hub) shutdown() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for agencyID, conns := range h.clients {
		for client := range conns {
			close(client.send)
			client.conn.Close()
		}
		delete(h.clients, agencyID)
	}
}
