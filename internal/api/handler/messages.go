package handler

import (
	"errors"
	"log"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"tutorlink/messaging/internal/api/middleware"
	"tutorlink/messaging/internal/config"
	"tutorlink/messaging/internal/models"
	"tutorlink/messaging/internal/sanitize"
	"tutorlink/messaging/internal/storage"

	"github.com/gin-gonic/gin"
)

// ListMessages returns a page of a conversation's messages, oldest first
// within the page. Soft-deleted messages are excluded.
func (h *Handler) ListMessages(c *gin.Context) {
	identity := middleware.Identity(c)

	conv, ok := h.participantConversation(c, identity.UserID)
	if !ok {
		return
	}
	page, limit := pagination(c)

	msgs, err := h.Storage.ListMessages(conv.ID, page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list messages"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"messages": msgs, "page": page, "limit": limit})
}

type sendMessageRequest struct {
	Content     string `json:"content" binding:"required"`
	MessageType string `json:"message_type"`
}

// SendMessage is the HTTP fallback send: the same sanitize, persist and
// last-message pipeline as the realtime path. It does not broadcast to the
// realtime channel; clients on this path poll for updates.
func (h *Handler) SendMessage(c *gin.Context) {
	identity := middleware.Identity(c)

	conv, ok := h.participantConversation(c, identity.UserID)
	if !ok {
		return
	}

	var req sendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "content is required"})
		return
	}

	messageType := req.MessageType
	if messageType == "" {
		messageType = "text"
	}
	if !config.MessageTypes[messageType] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unsupported message type"})
		return
	}

	content := sanitize.Clean(req.Content)
	if content == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Message content is empty"})
		return
	}
	if len(content) > config.MaxMessageLength {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Message content too long"})
		return
	}

	msg := &models.Message{
		ConversationID: conv.ID,
		SenderID:       identity.UserID,
		Content:        content,
		MessageType:    messageType,
	}
	if err := h.Storage.SaveMessage(msg); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send message"})
		return
	}

	h.finishSend(conv, msg)
	c.JSON(http.StatusCreated, h.messageRecord(msg))
}

// UploadAttachment stores the multipart file and persists a message row
// referencing it. The file field must be named "file".
func (h *Handler) UploadAttachment(c *gin.Context) {
	identity := middleware.Identity(c)

	conv, ok := h.participantConversation(c, identity.UserID)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}
	if fileHeader.Size > config.MaxUploadSize {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File exceeds the upload size limit"})
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read upload"})
		return
	}
	defer f.Close()

	path, err := h.Files.Save(fileHeader.Filename, f)
	if err != nil {
		log.Printf("ERROR: Failed to store upload for conversation %s: %v", conv.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store file"})
		return
	}

	fileName := fileHeader.Filename
	fileSize := fileHeader.Size
	msg := &models.Message{
		ConversationID: conv.ID,
		SenderID:       identity.UserID,
		Content:        sanitize.Clean(fileName),
		MessageType:    attachmentType(fileName),
		FileName:       &fileName,
		FileSize:       &fileSize,
		FilePath:       &path,
	}
	if err := h.Storage.SaveMessage(msg); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send message"})
		return
	}

	h.finishSend(conv, msg)
	c.JSON(http.StatusCreated, h.messageRecord(msg))
}

// DeleteMessage soft-deletes a message. Only the sender may delete, a
// deleted message stays deleted, and the room is told via a
// message_deleted broadcast.
func (h *Handler) DeleteMessage(c *gin.Context) {
	identity := middleware.Identity(c)

	msg, err := h.Storage.GetMessageByID(c.Param("id"))
	if errors.Is(err, storage.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Message not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load message"})
		return
	}
	if msg.SenderID != identity.UserID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only the sender can delete a message"})
		return
	}
	if msg.DeletedAt != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Message already deleted"})
		return
	}

	if err := h.Storage.SoftDeleteMessage(msg.ID, time.Now()); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Message already deleted"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete message"})
		return
	}

	h.Hub.Broadcast(msg.ConversationID, models.ServerEvent{
		Event: models.EventMessageDeleted,
		Data: models.MessageDeletedEvent{
			MessageID:      msg.ID,
			ConversationID: msg.ConversationID,
			DeletedBy:      identity.UserID,
		},
	})
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

// finishSend runs the best-effort tail of the send pipeline: refresh the
// conversation's denormalized listing fields. Failure never rolls the
// message back.
func (h *Handler) finishSend(conv *models.Conversation, msg *models.Message) {
	at := msg.CreatedAt
	if at.IsZero() {
		at = time.Now()
	}
	if err := h.Storage.UpdateConversationLastMessage(conv.ID, msg.Content, at); err != nil {
		log.Printf("WARNING: Failed to update last message for conversation %s: %v", conv.ID, err)
	}
}

func (h *Handler) messageRecord(msg *models.Message) models.MessageRecord {
	record := models.MessageRecord{Message: *msg}
	if sender, err := h.Storage.GetUserByID(msg.SenderID); err == nil {
		record.SenderName = sender.DisplayName()
		record.SenderRole = sender.Role
	}
	return record
}

func attachmentType(fileName string) string {
	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".png", ".jpg", ".jpeg", ".gif", ".webp":
		return "image"
	case ".pdf", ".doc", ".docx", ".odt":
		return "document"
	default:
		return "file"
	}
}
