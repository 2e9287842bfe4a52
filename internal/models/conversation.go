package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	ConversationActive   = "active"
	ConversationArchived = "archived"
)

// Conversation is a durable 1-on-1 thread between two participants,
// optionally tied to the booking that started it. The pair is conceptually
// unordered: a thread between A and B must never exist in both orderings,
// so lookups always check both column arrangements before an insert.
type Conversation struct {
	ID             string  `gorm:"primaryKey" json:"id"`
	Participant1ID string  `gorm:"type:uuid;not null;index:idx_conv_pair" json:"participant1_id"`
	Participant2ID string  `gorm:"type:uuid;not null;index:idx_conv_pair" json:"participant2_id"`
	BookingID      *string `gorm:"type:uuid" json:"booking_id,omitempty"`
	Status         string  `gorm:"type:text;not null;default:active" json:"status"`

	// LastMessageContent/LastMessageAt are denormalized from the newest
	// non-deleted message so listings avoid a join. Best-effort: updated
	// after each send, failures only logged.
	LastMessageContent string     `gorm:"type:text" json:"last_message_content"`
	LastMessageAt      *time.Time `gorm:"index" json:"last_message_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

func (c *Conversation) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	if c.Status == "" {
		c.Status = ConversationActive
	}
	return
}

// HasParticipant reports whether userID is one of the two participants.
func (c *Conversation) HasParticipant(userID string) bool {
	return c.Participant1ID == userID || c.Participant2ID == userID
}

// OtherParticipant returns the participant that is not userID.
func (c *Conversation) OtherParticipant(userID string) string {
	if c.Participant1ID == userID {
		return c.Participant2ID
	}
	return c.Participant1ID
}

// ConversationSummary is a listing row: the conversation plus the caller's
// unread count and the other participant's display fields.
type ConversationSummary struct {
	Conversation
	UnreadCount int64 `json:"unread_count"`
	Partner     *User `json:"partner,omitempty"`
}
