package handler

import (
	"log"
	"net/http"

	"tutorlink/messaging/internal/chathub"
	"tutorlink/messaging/internal/config"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The SPA is served from another origin; CORS is enforced on the
	// HTTP routes and the handshake is authenticated below.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// ServeWebSocket authenticates the handshake, upgrades the connection and
// registers the client with the hub. Room membership is restored
// asynchronously; a rejoin failure never blocks the connection.
func (h *Handler) ServeWebSocket(c *gin.Context) {
	token := bearerToken(c)
	if token == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization token missing"})
		return
	}

	identity, err := h.Auth.Authenticate(token)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token or expired"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade has already replied to the client; writing again here
		// would only corrupt the response.
		log.Printf("WARNING: Failed to upgrade connection for user %s: %v", identity.UserID, err)
		return
	}

	client := chathub.NewWebSocketClient(h.Hub, identity.UserID, conn)
	client.OnPong = func() {
		if err := h.Storage.RefreshOnline(identity.UserID, config.PresenceTTL); err != nil {
			log.Printf("WARNING: Failed to refresh presence for user %s: %v", identity.UserID, err)
		}
	}

	h.Hub.RegisterCh <- client
	client.Run()

	go h.Hub.RejoinRooms(client)
}

// bearerToken takes the credential from the Authorization header, falling
// back to the token query parameter for browser WebSocket clients that
// cannot set headers on the handshake.
func bearerToken(c *gin.Context) string {
	h := c.GetHeader("Authorization")
	if len(h) > 7 && h[:7] == "Bearer " {
		return h[7:]
	}
	return c.Query("token")
}
