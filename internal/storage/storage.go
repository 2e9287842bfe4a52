package storage

import (
	"context"
	"errors"
	"time"

	"tutorlink/messaging/internal/models"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// ErrNotFound is returned when a referenced user, conversation or message
// does not exist (or is already soft-deleted, for delete-again attempts).
var ErrNotFound = errors.New("record not found")

type Storage interface {
	GetUserByID(id string) (*models.User, error)
	ListUsersByRole(role string) ([]models.User, error)

	GetConversationByID(id string) (*models.Conversation, error)
	FindConversationByParticipants(a, b string) (*models.Conversation, error)
	CreateConversation(conv *models.Conversation) error
	ListConversations(userID string, page, limit int) ([]models.ConversationSummary, error)
	ListConversationIDs(userID string) ([]string, error)
	UpdateConversationLastMessage(id, content string, at time.Time) error
	ArchiveConversation(id string) error

	SaveMessage(msg *models.Message) error
	GetMessageByID(id string) (*models.Message, error)
	ListMessages(conversationID string, page, limit int) ([]models.Message, error)
	MarkConversationRead(conversationID, readerID string, at time.Time) (int64, error)
	SoftDeleteMessage(id string, at time.Time) error
	UnreadCount(conversationID, userID string) (int64, error)

	SetOnline(userID string, ttl time.Duration) error
	RefreshOnline(userID string, ttl time.Duration) error
	SetOffline(userID string) error
	IsOnline(userID string) (bool, error)
}

type Service struct {
	DB    *gorm.DB
	Redis *redis.Client
	Ctx   context.Context
}

// NewService Constructor
func NewService(db *gorm.DB, rdb *redis.Client) *Service {
	return &Service{
		DB:    db,
		Redis: rdb,
		Ctx:   context.Background(),
	}
}

func (s *Service) GetUserByID(id string) (*models.User, error) {
	var user models.User
	err := s.DB.First(&user, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *Service) ListUsersByRole(role string) ([]models.User, error) {
	var users []models.User
	if err := s.DB.Where("role = ?", role).
		Order("last_name asc, first_name asc").
		Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

const presencePrefix = "presence:"

// SetOnline marks the user online in Redis with a TTL so a crashed process
// never leaves stale presence behind.
func (s *Service) SetOnline(userID string, ttl time.Duration) error {
	return s.Redis.Set(s.Ctx, presencePrefix+userID, "1", ttl).Err()
}

// RefreshOnline extends the presence TTL; called from pong activity.
func (s *Service) RefreshOnline(userID string, ttl time.Duration) error {
	return s.Redis.Expire(s.Ctx, presencePrefix+userID, ttl).Err()
}

func (s *Service) SetOffline(userID string) error {
	return s.Redis.Del(s.Ctx, presencePrefix+userID).Err()
}

func (s *Service) IsOnline(userID string) (bool, error) {
	_, err := s.Redis.Get(s.Ctx, presencePrefix+userID).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
