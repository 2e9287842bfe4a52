package config

import "time"

const (
	// Messages
	MaxMessageLength = 2000

	// Pagination
	DefaultPageSize = 20
	MaxPageSize     = 100

	// Uploads
	MaxUploadSize = 10 << 20 // 10 MiB

	// Auth
	TokenTTL    = 72 * time.Hour
	TokenIssuer = "tutorlink-messaging"

	// Presence
	PresenceTTL = 90 * time.Second
)

// MessageTypes lists the accepted values for a message's message_type.
// attendance_marked is written through the HTTP fallback path when a tutor
// marks a lesson attended.
var MessageTypes = map[string]bool{
	"text":              true,
	"image":             true,
	"file":              true,
	"document":          true,
	"attendance_marked": true,
}
