package chathub_test

import (
	"encoding/json"
	"sync"
	"testing"
	"time"

	"tutorlink/messaging/internal/chathub"
	"tutorlink/messaging/internal/models"
)

// mockClient is an in-memory Client whose received events can be inspected.
type mockClient struct {
	userID    string
	Recv      chan models.ServerEvent
	closeOnce sync.Once
	closed    bool
}

func newMockClient(userID string) *mockClient {
	return &mockClient{
		userID: userID,
		Recv:   make(chan models.ServerEvent, 16),
	}
}

func (c *mockClient) GetUserID() string                         { return c.userID }
func (c *mockClient) GetSendChannel() chan<- models.ServerEvent { return c.Recv }
func (c *mockClient) Run()                                      {}
func (c *mockClient) Close() {
	c.closeOnce.Do(func() {
		c.closed = true
		close(c.Recv)
	})
}

// receive waits briefly for the next event; ok is false on timeout or when
// the channel was closed.
func (c *mockClient) receive(t *testing.T) (models.ServerEvent, bool) {
	t.Helper()
	select {
	case ev, open := <-c.Recv:
		return ev, open
	case <-time.After(500 * time.Millisecond):
		return models.ServerEvent{}, false
	}
}

// expectNothing asserts that no event arrives within the grace window.
func (c *mockClient) expectNothing(t *testing.T) {
	t.Helper()
	select {
	case ev := <-c.Recv:
		t.Errorf("client %s unexpectedly received %s", c.userID, ev.Event)
	case <-time.After(150 * time.Millisecond):
	}
}

func mustJSON(t *testing.T, v any) json.RawMessage {
	t.Helper()
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	return data
}

// registerAndDrain registers the client with a running hub and consumes the
// connected handshake event.
func registerAndDrain(t *testing.T, hub *chathub.Hub, c *mockClient) {
	t.Helper()
	hub.RegisterCh <- c
	if ev, ok := c.receive(t); !ok || ev.Event != models.EventConnected {
		t.Fatalf("expected connected event for %s, got %+v", c.userID, ev)
	}
}

// join subscribes the client to a conversation room through the command
// channel, the same path the read pump uses.
func join(t *testing.T, hub *chathub.Hub, c *mockClient, conversationID string) {
	t.Helper()
	hub.CommandCh <- chathub.Command{
		Client: c,
		Event:  models.EventJoinConversation,
		Data:   mustJSON(t, models.RoomPayload{ConversationID: conversationID}),
	}
}
