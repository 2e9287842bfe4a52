// Package notify delivers best-effort out-of-band notifications when a
// message arrives for a participant with no live connection. Delivery
// infrastructure is an external collaborator; this package only carries
// the contract the messaging core needs plus the Telegram implementation.
package notify

import "tutorlink/messaging/internal/models"

type Notifier interface {
	// MessageSent tells the recipient a new message is waiting. Failures
	// are the implementation's problem to log; the send pipeline never
	// depends on the outcome.
	MessageSent(recipient *models.User, senderName, preview string)
}

// Noop is used when no notification channel is configured.
type Noop struct{}

func (Noop) MessageSent(*models.User, string, string) {}
