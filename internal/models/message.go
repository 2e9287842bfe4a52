package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Message belongs to exactly one conversation. Content is sanitized plain
// text. ReadAt and DeletedAt only ever transition from null to set: there
// is no unread and no undelete.
type Message struct {
	ID             string `gorm:"primaryKey" json:"id"`
	ConversationID string `gorm:"type:uuid;not null;index:idx_conv_msg" json:"conversation_id"`
	SenderID       string `gorm:"type:uuid;not null;index:idx_conv_msg" json:"sender_id"`
	Content        string `gorm:"type:text;not null" json:"content"`
	// MessageType is one of config.MessageTypes ("text", "image", ...).
	MessageType string `gorm:"type:text;not null;default:text" json:"message_type"`

	// File metadata, set when the type carries an attachment.
	FileName *string `gorm:"type:text" json:"file_name,omitempty"`
	FileSize *int64  `json:"file_size,omitempty"`
	FilePath *string `gorm:"type:text" json:"-"`

	CreatedAt time.Time  `gorm:"index" json:"created_at"`
	ReadAt    *time.Time `json:"read_at,omitempty"`
	DeletedAt *time.Time `gorm:"index" json:"deleted_at,omitempty"`
}

func (m *Message) BeforeCreate(tx *gorm.DB) (err error) {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	if m.MessageType == "" {
		m.MessageType = "text"
	}
	return
}

// MessageRecord is the fully-joined shape broadcast to a room and returned
// by the HTTP send path: the message plus the sender's display fields, so
// clients never need a second lookup to render it.
type MessageRecord struct {
	Message
	SenderName string `json:"sender_name"`
	SenderRole string `json:"sender_role"`
}
