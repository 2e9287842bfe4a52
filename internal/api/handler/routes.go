package handler

import (
	"net/http"

	"tutorlink/messaging/internal/api/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterRoutes wires the HTTP façade and the WebSocket endpoint onto the
// engine. Everything under /messaging requires a bearer credential; the
// health probe does not.
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: false,
	}))

	r.GET("/health", h.Health)
	r.GET("/ws", h.ServeWebSocket)

	messaging := r.Group("/messaging")
	messaging.Use(middleware.RequireAuth(h.Auth))
	{
		messaging.GET("/participants", h.ListParticipants)
		messaging.POST("/conversations", h.CreateConversation)
		messaging.GET("/conversations", h.ListConversations)
		messaging.GET("/conversations/:id/messages", h.ListMessages)
		messaging.POST("/conversations/:id/messages", h.SendMessage)
		messaging.POST("/conversations/:id/upload", h.UploadAttachment)
		messaging.PUT("/conversations/:id/read", h.MarkConversationRead)
		messaging.PUT("/conversations/:id/archive", h.ArchiveConversation)
		messaging.GET("/conversations/:id/unread-count", h.UnreadCount)
		messaging.DELETE("/messages/:id", h.DeleteMessage)
	}
}

// Health is the unauthenticated liveness probe.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
