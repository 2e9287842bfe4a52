package models_test

import (
	"testing"

	"tutorlink/messaging/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

// TestConversationBeforeCreate_GeneratesUUID verifies the hook fills the ID
// and default status.
func TestConversationBeforeCreate_GeneratesUUID(t *testing.T) {
	conv := &models.Conversation{
		Participant1ID: uuid.New().String(),
		Participant2ID: uuid.New().String(),
	}

	assert.Empty(t, conv.ID, "ID should be empty before BeforeCreate")

	err := conv.BeforeCreate(nil)

	assert.NoError(t, err)
	assert.NotEmpty(t, conv.ID)
	_, parseErr := uuid.Parse(conv.ID)
	assert.NoError(t, parseErr, "ID must be a valid UUID string")
	assert.Equal(t, models.ConversationActive, conv.Status)
}

func TestConversationBeforeCreate_PreservesExistingID(t *testing.T) {
	existing := uuid.New().String()
	conv := &models.Conversation{ID: existing, Status: models.ConversationArchived}

	err := conv.BeforeCreate(nil)

	assert.NoError(t, err)
	assert.Equal(t, existing, conv.ID)
	assert.Equal(t, models.ConversationArchived, conv.Status)
}

func TestConversationParticipants(t *testing.T) {
	conv := &models.Conversation{Participant1ID: "alice", Participant2ID: "bob"}

	assert.True(t, conv.HasParticipant("alice"))
	assert.True(t, conv.HasParticipant("bob"))
	assert.False(t, conv.HasParticipant("mallory"))

	assert.Equal(t, "bob", conv.OtherParticipant("alice"))
	assert.Equal(t, "alice", conv.OtherParticipant("bob"))
}

func TestMessageBeforeCreate_Defaults(t *testing.T) {
	msg := &models.Message{
		ConversationID: uuid.New().String(),
		SenderID:       uuid.New().String(),
		Content:        "hi",
	}

	err := msg.BeforeCreate(nil)

	assert.NoError(t, err)
	_, parseErr := uuid.Parse(msg.ID)
	assert.NoError(t, parseErr)
	assert.Equal(t, "text", msg.MessageType)
	assert.Nil(t, msg.ReadAt)
	assert.Nil(t, msg.DeletedAt)
}

func TestMessageBeforeCreate_KeepsExplicitType(t *testing.T) {
	msg := &models.Message{MessageType: "image"}

	err := msg.BeforeCreate(nil)

	assert.NoError(t, err)
	assert.Equal(t, "image", msg.MessageType)
}

func TestUserDisplayName(t *testing.T) {
	assert.Equal(t, "Alice Nguyen", (&models.User{FirstName: "Alice", LastName: "Nguyen"}).DisplayName())
	assert.Equal(t, "Alice", (&models.User{FirstName: "Alice"}).DisplayName())
}

func TestUserBeforeCreate_GeneratesUniqueIDs(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 3; i++ {
		u := &models.User{FirstName: "U", Role: models.RoleStudent}
		assert.NoError(t, u.BeforeCreate(nil))
		assert.NotContains(t, seen, u.ID)
		seen[u.ID] = true
	}
}
