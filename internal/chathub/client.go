package chathub

import "tutorlink/messaging/internal/models"

// Client is the interface for one live connection. It abstracts the
// underlying transport so the hub can manage connections uniformly and
// tests can substitute in-memory clients.
type Client interface {
	// GetUserID returns the authenticated user this connection belongs to.
	GetUserID() string

	// GetSendChannel returns the channel the hub pushes server events
	// into. It is a send-only channel; the client's write pump drains it.
	GetSendChannel() chan<- models.ServerEvent

	// Run starts the client's read and write pumps.
	Run()
	// Close shuts down the connection and its send channel. Safe to call
	// more than once.
	Close()
}
