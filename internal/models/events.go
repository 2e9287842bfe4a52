package models

import (
	"encoding/json"
	"time"
)

// Client-to-server event names.
const (
	EventJoinConversation  = "join_conversation"
	EventLeaveConversation = "leave_conversation"
	EventSendMessage       = "send_message"
	EventTypingStart       = "typing_start"
	EventTypingStop        = "typing_stop"
)

// Server-to-client event names.
const (
	EventConnected      = "connected"
	EventNewMessage     = "new_message"
	EventUserTyping     = "user_typing"
	EventMessageError   = "message_error"
	EventMessageDeleted = "message_deleted"
	EventMessagesRead   = "messages_read"
)

// ClientFrame is the envelope every client-to-server WebSocket frame uses.
type ClientFrame struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// ServerEvent is the envelope for server-to-client frames. Data is
// marshalled by the write pump.
type ServerEvent struct {
	Event string `json:"event"`
	Data  any    `json:"data"`
}

// RoomPayload covers join_conversation, leave_conversation, typing_start
// and typing_stop, which all carry only the target conversation.
type RoomPayload struct {
	ConversationID string `json:"conversationId"`
}

type SendMessagePayload struct {
	ConversationID string `json:"conversationId"`
	Content        string `json:"content"`
	MessageType    string `json:"messageType"`
}

type ConnectedEvent struct {
	UserID string `json:"userId"`
}

type TypingEvent struct {
	UserID   string `json:"userId"`
	IsTyping bool   `json:"isTyping"`
}

// MessageErrorEvent is sent only to the connection whose command failed,
// never broadcast.
type MessageErrorEvent struct {
	Error   string `json:"error"`
	Details string `json:"details"`
	Code    string `json:"code"`
}

type MessageDeletedEvent struct {
	MessageID      string `json:"messageId"`
	ConversationID string `json:"conversationId"`
	DeletedBy      string `json:"deletedBy"`
}

type MessagesReadEvent struct {
	ConversationID string    `json:"conversationId"`
	ReadBy         string    `json:"readBy"`
	ReadAt         time.Time `json:"readAt"`
}
