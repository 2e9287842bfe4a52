package chathub

import (
	"encoding/json"
	"log"

	"tutorlink/messaging/internal/config"
	"tutorlink/messaging/internal/models"
	"tutorlink/messaging/internal/notify"
	"tutorlink/messaging/internal/storage"
)

// Command is one inbound client event, queued by a read pump.
type Command struct {
	Client Client
	Event  string
	Data   json.RawMessage
}

// RoomEvent is a room-scoped broadcast request. The HTTP façade enqueues
// these for messages_read and message_deleted; it never touches membership.
type RoomEvent struct {
	ConversationID string
	Payload        models.ServerEvent
	// ExcludeUserID, when set, skips that member (typing fan-out).
	ExcludeUserID string
}

// Hub owns the realtime session registry and room membership. A single
// Run goroutine mutates both and performs every broadcast, so each command
// runs to completion before the next one is taken; per-room ordering of
// persist-then-broadcast follows from that, with no locks on the maps.
type Hub struct {
	RegisterCh   chan Client
	UnregisterCh chan Client
	CommandCh    chan Command
	BroadcastCh  chan RoomEvent

	// Clients maps userID to its single live connection.
	Clients map[string]Client
	// rooms maps conversationID to the members currently joined.
	rooms map[string]map[string]Client

	bus      *EventBus
	Storage  storage.Storage
	Notifier notify.Notifier
}

func NewHub(s storage.Storage, n notify.Notifier) *Hub {
	if n == nil {
		n = notify.Noop{}
	}
	h := &Hub{
		RegisterCh:   make(chan Client),
		UnregisterCh: make(chan Client),
		CommandCh:    make(chan Command),
		BroadcastCh:  make(chan RoomEvent, 64),
		Clients:      make(map[string]Client),
		rooms:        make(map[string]map[string]Client),
		bus:          NewEventBus(),
		Storage:      s,
		Notifier:     n,
	}
	h.registerHandlers()
	return h
}

// Run is the hub dispatcher. Everything that touches Clients or rooms
// happens here.
func (h *Hub) Run() {
	for {
		select {
		case c := <-h.RegisterCh:
			h.register(c)

		case c := <-h.UnregisterCh:
			h.unregister(c)

		case cmd := <-h.CommandCh:
			// A read pump or rejoin goroutine may have queued commands
			// before the connection's disconnect or eviction was
			// processed. Dropping them here keeps a closed connection
			// from re-entering room membership.
			if current, ok := h.Clients[cmd.Client.GetUserID()]; !ok || current != cmd.Client {
				continue
			}
			h.bus.Publish(EventKind(cmd.Event), cmd.Client, cmd.Data)

		case ev := <-h.BroadcastCh:
			h.broadcastRoom(ev.ConversationID, ev.Payload, ev.ExcludeUserID)
		}
	}
}

// Broadcast enqueues a room-scoped event. This is the only broadcast entry
// point for code outside the hub goroutine.
func (h *Hub) Broadcast(conversationID string, event models.ServerEvent) {
	h.BroadcastCh <- RoomEvent{ConversationID: conversationID, Payload: event}
}

// register installs the connection as the user's single live one. A prior
// connection for the same user is force-closed and dropped from its rooms
// so the registry never holds a dead handle.
func (h *Hub) register(c Client) {
	userID := c.GetUserID()

	if old, ok := h.Clients[userID]; ok && old != c {
		h.removeFromRooms(old)
		old.Close()
		log.Printf("INFO: Evicted previous connection for user %s", userID)
	}
	h.Clients[userID] = c

	if err := h.Storage.SetOnline(userID, config.PresenceTTL); err != nil {
		log.Printf("WARNING: Failed to set presence for user %s: %v", userID, err)
	}

	h.sendTo(c, models.ServerEvent{
		Event: models.EventConnected,
		Data:  models.ConnectedEvent{UserID: userID},
	})
	log.Printf("INFO: User %s connected", userID)
}

func (h *Hub) unregister(c Client) {
	userID := c.GetUserID()

	// The evicted old connection also unregisters on its way out; only a
	// disconnect of the current connection clears the registry entry.
	if current, ok := h.Clients[userID]; !ok || current != c {
		h.removeFromRooms(c)
		return
	}

	delete(h.Clients, userID)
	h.removeFromRooms(c)
	c.Close()

	if err := h.Storage.SetOffline(userID); err != nil {
		log.Printf("WARNING: Failed to clear presence for user %s: %v", userID, err)
	}
	log.Printf("INFO: User %s disconnected", userID)
}

func (h *Hub) joinRoom(conversationID string, c Client) {
	members, ok := h.rooms[conversationID]
	if !ok {
		members = make(map[string]Client)
		h.rooms[conversationID] = members
	}
	members[c.GetUserID()] = c
}

func (h *Hub) leaveRoom(conversationID string, c Client) {
	members, ok := h.rooms[conversationID]
	if !ok {
		return
	}
	if members[c.GetUserID()] == c {
		delete(members, c.GetUserID())
	}
	if len(members) == 0 {
		delete(h.rooms, conversationID)
	}
}

func (h *Hub) removeFromRooms(c Client) {
	for conversationID := range h.rooms {
		h.leaveRoom(conversationID, c)
	}
}

// broadcastRoom pushes the event to every member of the room. A member
// whose send buffer is full is skipped rather than blocking the hub.
func (h *Hub) broadcastRoom(conversationID string, event models.ServerEvent, excludeUserID string) {
	for userID, member := range h.rooms[conversationID] {
		if userID == excludeUserID {
			continue
		}
		h.sendTo(member, event)
	}
}

func (h *Hub) sendTo(c Client, event models.ServerEvent) {
	// A send on a closed channel panics; recovering here contains a
	// straggling reference to a closed connection so one dead member
	// cannot abort a fan-out or kill the hub goroutine.
	defer func() {
		if r := recover(); r != nil {
			log.Printf("WARNING: Dropped %s for user %s: connection closed", event.Event, c.GetUserID())
		}
	}()

	select {
	case c.GetSendChannel() <- event:
	default:
		log.Printf("WARNING: Send buffer full for user %s, dropping %s", c.GetUserID(), event.Event)
	}
}
