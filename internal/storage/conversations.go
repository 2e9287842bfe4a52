package storage

import (
	"errors"
	"log"
	"time"

	"tutorlink/messaging/internal/models"

	"gorm.io/gorm"
)

func (s *Service) GetConversationByID(id string) (*models.Conversation, error) {
	var conv models.Conversation
	err := s.DB.First(&conv, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		log.Printf("ERROR: Failed to get conversation %s: %v", id, err)
		return nil, err
	}
	return &conv, nil
}

// FindConversationByParticipants looks up the conversation for an unordered
// pair: both column orderings are checked so (A,B) and (B,A) resolve to the
// same row. Returns ErrNotFound when no conversation exists yet.
func (s *Service) FindConversationByParticipants(a, b string) (*models.Conversation, error) {
	var conv models.Conversation
	err := s.DB.
		Where("(participant1_id = ? AND participant2_id = ?) OR (participant1_id = ? AND participant2_id = ?)", a, b, b, a).
		First(&conv).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		log.Printf("ERROR: Failed to find conversation for pair (%s, %s): %v", a, b, err)
		return nil, err
	}
	return &conv, nil
}

func (s *Service) CreateConversation(conv *models.Conversation) error {
	if err := s.DB.Create(conv).Error; err != nil {
		log.Printf("ERROR: Failed to create conversation for pair (%s, %s): %v",
			conv.Participant1ID, conv.Participant2ID, err)
		return err
	}
	return nil
}

// ListConversations returns the caller's conversations, newest activity
// first, skipping threads that never received a message. Each row carries
// the caller's unread count and the other participant's profile.
func (s *Service) ListConversations(userID string, page, limit int) ([]models.ConversationSummary, error) {
	var convs []models.Conversation
	err := s.DB.
		Where("participant1_id = ? OR participant2_id = ?", userID, userID).
		Where("last_message_at IS NOT NULL").
		Order("last_message_at desc").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&convs).Error
	if err != nil {
		log.Printf("ERROR: Failed to list conversations for user %s: %v", userID, err)
		return nil, err
	}

	summaries := make([]models.ConversationSummary, 0, len(convs))
	for _, conv := range convs {
		summary := models.ConversationSummary{Conversation: conv}

		count, err := s.UnreadCount(conv.ID, userID)
		if err != nil {
			return nil, err
		}
		summary.UnreadCount = count

		partner, err := s.GetUserByID(conv.OtherParticipant(userID))
		if err != nil && !errors.Is(err, ErrNotFound) {
			return nil, err
		}
		summary.Partner = partner

		summaries = append(summaries, summary)
	}
	return summaries, nil
}

// ListConversationIDs returns every conversation id the user participates
// in, used for room rejoin on reconnect.
func (s *Service) ListConversationIDs(userID string) ([]string, error) {
	var ids []string
	err := s.DB.Model(&models.Conversation{}).
		Where("participant1_id = ? OR participant2_id = ?", userID, userID).
		Pluck("id", &ids).Error
	if err != nil {
		log.Printf("ERROR: Failed to list conversation ids for user %s: %v", userID, err)
		return nil, err
	}
	return ids, nil
}

// UpdateConversationLastMessage refreshes the denormalized listing fields.
// Callers treat a failure as non-fatal: the message itself is already
// persisted and broadcast.
func (s *Service) UpdateConversationLastMessage(id, content string, at time.Time) error {
	return s.DB.Model(&models.Conversation{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"last_message_content": content,
			"last_message_at":      at,
		}).Error
}

func (s *Service) ArchiveConversation(id string) error {
	result := s.DB.Model(&models.Conversation{}).
		Where("id = ? AND status = ?", id, models.ConversationActive).
		Update("status", models.ConversationArchived)
	if result.Error != nil {
		log.Printf("ERROR: Failed to archive conversation %s: %v", id, result.Error)
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
