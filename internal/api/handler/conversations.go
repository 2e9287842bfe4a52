package handler

import (
	"errors"
	"net/http"
	"time"

	"tutorlink/messaging/internal/api/middleware"
	"tutorlink/messaging/internal/models"
	"tutorlink/messaging/internal/storage"

	"github.com/gin-gonic/gin"
)

type createConversationRequest struct {
	ParticipantID string  `json:"participant_id" binding:"required"`
	BookingID     *string `json:"booking_id"`
}

// CreateConversation returns the existing conversation for the unordered
// (caller, participant) pair, or creates one. A conversation between A and
// B is canonical: both orderings resolve to the same row.
func (h *Handler) CreateConversation(c *gin.Context) {
	identity := middleware.Identity(c)

	var req createConversationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "participant_id is required"})
		return
	}
	if req.ParticipantID == identity.UserID {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot start a conversation with yourself"})
		return
	}

	if _, err := h.Storage.GetUserByID(req.ParticipantID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Participant not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load participant"})
		return
	}

	conv, err := h.Storage.FindConversationByParticipants(identity.UserID, req.ParticipantID)
	if err == nil {
		c.JSON(http.StatusOK, conv)
		return
	}
	if !errors.Is(err, storage.ErrNotFound) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to look up conversation"})
		return
	}

	conv = &models.Conversation{
		Participant1ID: identity.UserID,
		Participant2ID: req.ParticipantID,
		BookingID:      req.BookingID,
	}
	if err := h.Storage.CreateConversation(conv); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create conversation"})
		return
	}
	c.JSON(http.StatusCreated, conv)
}

// ListConversations returns the caller's conversations with unread counts,
// newest activity first. Threads with no messages yet are omitted.
func (h *Handler) ListConversations(c *gin.Context) {
	identity := middleware.Identity(c)
	page, limit := pagination(c)

	summaries, err := h.Storage.ListConversations(identity.UserID, page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list conversations"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"conversations": summaries, "page": page, "limit": limit})
}

// MarkConversationRead sets read_at on every unread message the caller did
// not send, then broadcasts a messages_read receipt to the room. Marking
// an already-read conversation is a successful no-op.
func (h *Handler) MarkConversationRead(c *gin.Context) {
	identity := middleware.Identity(c)

	conv, ok := h.participantConversation(c, identity.UserID)
	if !ok {
		return
	}

	readAt := time.Now()
	updated, err := h.Storage.MarkConversationRead(conv.ID, identity.UserID, readAt)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to mark conversation read"})
		return
	}

	if updated > 0 {
		h.Hub.Broadcast(conv.ID, models.ServerEvent{
			Event: models.EventMessagesRead,
			Data: models.MessagesReadEvent{
				ConversationID: conv.ID,
				ReadBy:         identity.UserID,
				ReadAt:         readAt,
			},
		})
	}
	c.JSON(http.StatusOK, gin.H{"updated": updated})
}

// ArchiveConversation sets status=archived. Archiving an archived
// conversation is rejected.
func (h *Handler) ArchiveConversation(c *gin.Context) {
	identity := middleware.Identity(c)

	conv, ok := h.participantConversation(c, identity.UserID)
	if !ok {
		return
	}
	if conv.Status == models.ConversationArchived {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Conversation is already archived"})
		return
	}

	if err := h.Storage.ArchiveConversation(conv.ID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Conversation is already archived"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to archive conversation"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": models.ConversationArchived})
}

// UnreadCount returns the caller's unread message count for one
// conversation.
func (h *Handler) UnreadCount(c *gin.Context) {
	identity := middleware.Identity(c)

	conv, ok := h.participantConversation(c, identity.UserID)
	if !ok {
		return
	}

	count, err := h.Storage.UnreadCount(conv.ID, identity.UserID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count unread messages"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"unread_count": count})
}

// participantConversation loads the :id conversation and enforces the
// participant-only rule shared by every conversation-scoped endpoint. On
// failure the response is already written.
func (h *Handler) participantConversation(c *gin.Context, userID string) (*models.Conversation, bool) {
	conv, err := h.Storage.GetConversationByID(c.Param("id"))
	if errors.Is(err, storage.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Conversation not found"})
		return nil, false
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load conversation"})
		return nil, false
	}
	if !conv.HasParticipant(userID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not a participant of this conversation"})
		return nil, false
	}
	return conv, true
}
