package websocket

import (
	"net/http"

	wstypes "agencyhub-service/internal/domain/websocket"
	"agencyhub-service/internal/pkg/response"
	ws "agencyhub-service/internal/websocket"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Browsers cannot set Authorization headers on socket upgrades, so
		// the token rides in the query string; origin policy is enforced at
		// the edge proxy.
		return true
	},
}

type WebSocketHandler struct {
	hub    *ws.Hub
	logger *zap.Logger
}

func NewWebSocketHandler(hub *ws.Hub, logger *zap.Logger) *WebSocketHandler {
	return &WebSocketHandler{
		hub:    hub,
		logger: logger,
	}
}

// HandleConnection authenticates the socket and attaches it to the activity
// feed of one agency.
// GET /ws?agency_id=...&token=...
func (h *WebSocketHandler) HandleConnection(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		response.Unauthorized(c, "missing authentication token")
		return
	}

	agencyID := c.Query("agency_id")
	if agencyID == "" {
		response.Error(c, http.StatusBadRequest, "missing agency_id", ws.ErrMissingAgency)
		return
	}

	auth, err := h.hub.AuthenticateClient(c.Request.Context(), token)
	if err != nil {
		h.logger.Warn("websocket authentication failed",
			zap.Error(err),
			zap.String("ip", c.ClientIP()),
		)
		response.Unauthorized(c, "authentication failed")
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Error("websocket upgrade failed",
			zap.Error(err),
			zap.String("ip", c.ClientIP()),
		)
		return
	}

	client := ws.NewClient(h.hub, conn, auth, agencyID, h.logger)
	h.hub.Register <- client
	client.Start()

	client.SendConnected(wstypes.NewMessage(wstypes.EventTypeConnected, gin.H{
		"agency_id": agencyID,
	}))
}
