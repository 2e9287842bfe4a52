package chathub_test

import (
	"time"

	"tutorlink/messaging/internal/models"

	"github.com/stretchr/testify/mock"
)

type MockStorage struct {
	mock.Mock
}

func (m *MockStorage) GetUserByID(id string) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockStorage) ListUsersByRole(role string) ([]models.User, error) {
	args := m.Called(role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *MockStorage) GetConversationByID(id string) (*models.Conversation, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Conversation), args.Error(1)
}

func (m *MockStorage) FindConversationByParticipants(a, b string) (*models.Conversation, error) {
	args := m.Called(a, b)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Conversation), args.Error(1)
}

func (m *MockStorage) CreateConversation(conv *models.Conversation) error {
	args := m.Called(conv)
	return args.Error(0)
}

func (m *MockStorage) ListConversations(userID string, page, limit int) ([]models.ConversationSummary, error) {
	args := m.Called(userID, page, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ConversationSummary), args.Error(1)
}

func (m *MockStorage) ListConversationIDs(userID string) ([]string, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockStorage) UpdateConversationLastMessage(id, content string, at time.Time) error {
	args := m.Called(id, content, at)
	return args.Error(0)
}

func (m *MockStorage) ArchiveConversation(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockStorage) SaveMessage(msg *models.Message) error {
	args := m.Called(msg)
	return args.Error(0)
}

func (m *MockStorage) GetMessageByID(id string) (*models.Message, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Message), args.Error(1)
}

func (m *MockStorage) ListMessages(conversationID string, page, limit int) ([]models.Message, error) {
	args := m.Called(conversationID, page, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Message), args.Error(1)
}

func (m *MockStorage) MarkConversationRead(conversationID, readerID string, at time.Time) (int64, error) {
	args := m.Called(conversationID, readerID, at)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockStorage) SoftDeleteMessage(id string, at time.Time) error {
	args := m.Called(id, at)
	return args.Error(0)
}

func (m *MockStorage) UnreadCount(conversationID, userID string) (int64, error) {
	args := m.Called(conversationID, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockStorage) SetOnline(userID string, ttl time.Duration) error {
	args := m.Called(userID, ttl)
	return args.Error(0)
}

func (m *MockStorage) RefreshOnline(userID string, ttl time.Duration) error {
	args := m.Called(userID, ttl)
	return args.Error(0)
}

func (m *MockStorage) SetOffline(userID string) error {
	args := m.Called(userID)
	return args.Error(0)
}

func (m *MockStorage) IsOnline(userID string) (bool, error) {
	args := m.Called(userID)
	return args.Bool(0), args.Error(1)
}
