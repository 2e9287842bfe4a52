package chathub

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"tutorlink/messaging/internal/models"

	"github.com/gorilla/websocket"
)

const (
	writeWait    = 10 * time.Second
	pongWait     = 60 * time.Second
	pingPeriod   = (pongWait * 9) / 10
	maxFrameSize = 4096
)

// WebSocketClient implements Client over a gorilla/websocket connection.
type WebSocketClient struct {
	UserID string
	Conn   *websocket.Conn
	Hub    *Hub
	Send   chan models.ServerEvent

	// OnPong fires on every pong from the peer; the handshake handler
	// wires it to the presence refresh.
	OnPong func()

	closeOnce sync.Once
}

func NewWebSocketClient(hub *Hub, userID string, conn *websocket.Conn) *WebSocketClient {
	return &WebSocketClient{
		UserID: userID,
		Conn:   conn,
		Hub:    hub,
		Send:   make(chan models.ServerEvent, 256),
	}
}

func (c *WebSocketClient) GetUserID() string                         { return c.UserID }
func (c *WebSocketClient) GetSendChannel() chan<- models.ServerEvent { return c.Send }

// Run starts the pumps for this connection.
func (c *WebSocketClient) Run() {
	go c.writePump()
	go c.readPump()
}

// Close closes the Send channel, which stops the write pump and makes it
// close the underlying connection. The read pump then exits on read error.
func (c *WebSocketClient) Close() {
	c.closeOnce.Do(func() {
		close(c.Send)
	})
}

func (c *WebSocketClient) readPump() {
	defer func() {
		c.Hub.UnregisterCh <- c
		c.Conn.Close()
	}()

	c.Conn.SetReadLimit(maxFrameSize)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		if c.OnPong != nil {
			c.OnPong()
		}
		return nil
	})

	for {
		_, raw, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("error reading from client %s: %v", c.UserID, err)
			}
			break
		}

		var frame models.ClientFrame
		if err := json.Unmarshal(raw, &frame); err != nil {
			log.Printf("Error decoding frame from client %s: %v", c.UserID, err)
			continue
		}
		if frame.Event == "" {
			continue
		}

		c.Hub.CommandCh <- Command{Client: c, Event: frame.Event, Data: frame.Data}
	}
}

func (c *WebSocketClient) writePump() {
	ticker := time.NewTicker(pingPeriod)

	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case event, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// Channel closed by the hub, tell the peer goodbye.
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			data, err := json.Marshal(event)
			if err != nil {
				log.Printf("Error encoding event for client %s: %v", c.UserID, err)
				continue
			}
			if err := c.Conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}

		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
