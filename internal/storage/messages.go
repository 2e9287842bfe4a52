package storage

import (
	"errors"
	"log"
	"time"

	"tutorlink/messaging/internal/models"

	"gorm.io/gorm"
)

func (s *Service) SaveMessage(msg *models.Message) error {
	if err := s.DB.Create(msg).Error; err != nil {
		log.Printf("ERROR: Failed to save message for conversation %s: %v", msg.ConversationID, err)
		return err
	}
	return nil
}

func (s *Service) GetMessageByID(id string) (*models.Message, error) {
	var msg models.Message
	err := s.DB.First(&msg, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		log.Printf("ERROR: Failed to get message %s: %v", id, err)
		return nil, err
	}
	return &msg, nil
}

// ListMessages returns a page of the conversation's non-deleted messages.
// The newest page is fetched first, then reversed so the slice reads oldest
// to newest for display.
func (s *Service) ListMessages(conversationID string, page, limit int) ([]models.Message, error) {
	var msgs []models.Message
	err := s.DB.
		Where("conversation_id = ? AND deleted_at IS NULL", conversationID).
		Order("created_at desc").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&msgs).Error
	if err != nil {
		log.Printf("ERROR: Failed to list messages for conversation %s: %v", conversationID, err)
		return nil, err
	}

	for i, j := 0, len(msgs)-1; i < j; i, j = i+1, j-1 {
		msgs[i], msgs[j] = msgs[j], msgs[i]
	}
	return msgs, nil
}

// MarkConversationRead sets read_at on every unread message in the
// conversation that the reader did not send. Returns the number of messages
// transitioned; re-reading an already-read conversation affects zero rows
// and is not an error.
func (s *Service) MarkConversationRead(conversationID, readerID string, at time.Time) (int64, error) {
	result := s.DB.Model(&models.Message{}).
		Where("conversation_id = ? AND sender_id <> ? AND read_at IS NULL AND deleted_at IS NULL",
			conversationID, readerID).
		Update("read_at", at)
	if result.Error != nil {
		log.Printf("ERROR: Failed to mark conversation %s read by %s: %v", conversationID, readerID, result.Error)
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// SoftDeleteMessage sets deleted_at once. A second delete matches zero rows
// and returns ErrNotFound; the timestamp is never overwritten or cleared.
func (s *Service) SoftDeleteMessage(id string, at time.Time) error {
	result := s.DB.Model(&models.Message{}).
		Where("id = ? AND deleted_at IS NULL", id).
		Update("deleted_at", at)
	if result.Error != nil {
		log.Printf("ERROR: Failed to delete message %s: %v", id, result.Error)
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Service) UnreadCount(conversationID, userID string) (int64, error) {
	var count int64
	err := s.DB.Model(&models.Message{}).
		Where("conversation_id = ? AND sender_id <> ? AND read_at IS NULL AND deleted_at IS NULL",
			conversationID, userID).
		Count(&count).Error
	if err != nil {
		log.Printf("ERROR: Failed to count unread for conversation %s: %v", conversationID, err)
		return 0, err
	}
	return count, nil
}
