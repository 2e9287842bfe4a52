package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Roles a profile can carry. The messaging service only cares about the
// student/tutor pairing rule; other roles never reach it.
const (
	RoleStudent = "student"
	RoleTutor   = "tutor"
)

// User is the profile mirror the messaging service reads for roles and
// display fields. The auth service owns the canonical record.
type User struct {
	ID        string `gorm:"primaryKey" json:"id"`
	FirstName string `gorm:"type:text;not null" json:"first_name"`
	LastName  string `gorm:"type:text;not null" json:"last_name"`
	Email     string `gorm:"uniqueIndex;not null" json:"email"`
	// Role is either "student" or "tutor".
	Role string `gorm:"type:text;not null;index" json:"role"`
	// Subjects lists a tutor's teaching subjects as tags.
	Subjects pq.StringArray `gorm:"type:text[]" json:"subjects,omitempty"`
	// TelegramChatID, when linked, receives offline-message notifications.
	TelegramChatID *int64    `json:"-"`
	CreatedAt      time.Time `json:"created_at"`
}

// BeforeCreate generates a UUID for the user if the ID is not set yet.
func (u *User) BeforeCreate(tx *gorm.DB) (err error) {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	return
}

// DisplayName is the name attached to broadcast message records.
func (u *User) DisplayName() string {
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}
