package chathub

import (
	"encoding/json"
	"errors"
	"log"
	"time"

	"tutorlink/messaging/internal/config"
	"tutorlink/messaging/internal/models"
	"tutorlink/messaging/internal/sanitize"
	"tutorlink/messaging/internal/storage"
)

// Error codes carried by message_error events.
const (
	CodeInvalidPayload = "invalid_payload"
	CodeNotFound       = "not_found"
	CodeUnauthorized   = "unauthorized"
	CodeSendFailed     = "send_failed"
)

func (h *Hub) registerHandlers() {
	h.bus.Subscribe(models.EventJoinConversation, h.handleJoin)
	h.bus.Subscribe(models.EventLeaveConversation, h.handleLeave)
	h.bus.Subscribe(models.EventSendMessage, h.handleSendMessage)
	h.bus.Subscribe(models.EventTypingStart, func(c Client, data json.RawMessage) {
		h.handleTyping(c, data, true)
	})
	h.bus.Subscribe(models.EventTypingStop, func(c Client, data json.RawMessage) {
		h.handleTyping(c, data, false)
	})
}

// handleJoin subscribes the connection to a conversation room. Membership
// is verified against the stored participants, the same check send makes.
// Joining a room twice is a no-op.
func (h *Hub) handleJoin(c Client, data json.RawMessage) {
	var p models.RoomPayload
	if err := json.Unmarshal(data, &p); err != nil || p.ConversationID == "" {
		h.sendError(c, "Invalid join payload", "", CodeInvalidPayload)
		return
	}

	conv, err := h.Storage.GetConversationByID(p.ConversationID)
	if errors.Is(err, storage.ErrNotFound) {
		h.sendError(c, "Conversation not found", "", CodeNotFound)
		return
	}
	if err != nil {
		h.sendError(c, "Failed to join conversation", "", CodeSendFailed)
		return
	}
	if !conv.HasParticipant(c.GetUserID()) {
		h.sendError(c, "Not a participant of this conversation", "", CodeUnauthorized)
		return
	}

	h.joinRoom(conv.ID, c)
}

func (h *Hub) handleLeave(c Client, data json.RawMessage) {
	var p models.RoomPayload
	if err := json.Unmarshal(data, &p); err != nil || p.ConversationID == "" {
		return
	}
	h.leaveRoom(p.ConversationID, c)
}

// handleSendMessage runs the full send pipeline to completion on the hub
// goroutine: authorize against the stored participants, sanitize, persist,
// broadcast, then best-effort denormalization. Room members therefore see
// new_message events in commit order.
func (h *Hub) handleSendMessage(c Client, data json.RawMessage) {
	senderID := c.GetUserID()

	var p models.SendMessagePayload
	if err := json.Unmarshal(data, &p); err != nil || p.ConversationID == "" {
		h.sendError(c, "Invalid message payload", "", CodeInvalidPayload)
		return
	}

	conv, err := h.Storage.GetConversationByID(p.ConversationID)
	if errors.Is(err, storage.ErrNotFound) {
		h.sendError(c, "Conversation not found", "", CodeNotFound)
		return
	}
	if err != nil {
		h.sendError(c, "Failed to send message", "datastore unavailable", CodeSendFailed)
		return
	}
	if !conv.HasParticipant(senderID) {
		h.sendError(c, "Not a participant of this conversation", "", CodeUnauthorized)
		return
	}

	messageType := p.MessageType
	if messageType == "" {
		messageType = "text"
	}
	if !config.MessageTypes[messageType] {
		h.sendError(c, "Unsupported message type", messageType, CodeInvalidPayload)
		return
	}

	content := sanitize.Clean(p.Content)
	if content == "" {
		h.sendError(c, "Message content is empty", "", CodeInvalidPayload)
		return
	}
	if len(content) > config.MaxMessageLength {
		h.sendError(c, "Message content too long", "", CodeInvalidPayload)
		return
	}

	msg := &models.Message{
		ConversationID: conv.ID,
		SenderID:       senderID,
		Content:        content,
		MessageType:    messageType,
	}
	if err := h.Storage.SaveMessage(msg); err != nil {
		h.sendError(c, "Failed to send message", "could not persist message", CodeSendFailed)
		return
	}

	record := models.MessageRecord{Message: *msg}
	sender, err := h.Storage.GetUserByID(senderID)
	if err != nil {
		log.Printf("WARNING: Failed to load sender %s for broadcast: %v", senderID, err)
	} else {
		record.SenderName = sender.DisplayName()
		record.SenderRole = sender.Role
	}

	// Everyone in the room gets the message, the sender included, so a
	// sender's other open tabs stay current.
	h.broadcastRoom(conv.ID, models.ServerEvent{
		Event: models.EventNewMessage,
		Data:  record,
	}, "")

	at := msg.CreatedAt
	if at.IsZero() {
		at = time.Now()
	}
	if err := h.Storage.UpdateConversationLastMessage(conv.ID, content, at); err != nil {
		log.Printf("WARNING: Failed to update last message for conversation %s: %v", conv.ID, err)
	}

	h.notifyIfOffline(conv.OtherParticipant(senderID), record.SenderName, content)
}

// handleTyping fans the indicator out to the other room members. Nothing
// is persisted and there is no error path.
func (h *Hub) handleTyping(c Client, data json.RawMessage, isTyping bool) {
	var p models.RoomPayload
	if err := json.Unmarshal(data, &p); err != nil || p.ConversationID == "" {
		return
	}
	h.broadcastRoom(p.ConversationID, models.ServerEvent{
		Event: models.EventUserTyping,
		Data:  models.TypingEvent{UserID: c.GetUserID(), IsTyping: isTyping},
	}, c.GetUserID())
}

// RejoinRooms re-subscribes a freshly (re)connected client to all of its
// conversations. Runs off the hub goroutine; membership changes still go
// through the command channel. A fetch failure only logs: the connection
// stays usable, the user just misses room events until the next reconnect.
func (h *Hub) RejoinRooms(c Client) {
	ids, err := h.Storage.ListConversationIDs(c.GetUserID())
	if err != nil {
		log.Printf("WARNING: Failed to rejoin rooms for user %s: %v", c.GetUserID(), err)
		return
	}
	for _, id := range ids {
		data, err := json.Marshal(models.RoomPayload{ConversationID: id})
		if err != nil {
			continue
		}
		h.CommandCh <- Command{Client: c, Event: models.EventJoinConversation, Data: data}
	}
}

// notifyIfOffline hands the message preview to the notifier when the other
// participant has no live connection. Called on the hub goroutine, so the
// registry read is safe; the notifier runs detached.
func (h *Hub) notifyIfOffline(recipientID, senderName, preview string) {
	if _, connected := h.Clients[recipientID]; connected {
		return
	}
	go func() {
		recipient, err := h.Storage.GetUserByID(recipientID)
		if err != nil {
			return
		}
		h.Notifier.MessageSent(recipient, senderName, preview)
	}()
}

// sendError reports a failure to the originating connection only. Errors
// are never broadcast to the room.
func (h *Hub) sendError(c Client, msg, details, code string) {
	h.sendTo(c, models.ServerEvent{
		Event: models.EventMessageError,
		Data:  models.MessageErrorEvent{Error: msg, Details: details, Code: code},
	})
}
