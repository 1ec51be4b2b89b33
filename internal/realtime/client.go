package realtime

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
)

// Client is one websocket connection. The user id is verified during the
// handshake and never changes for the connection's lifetime; a reconnect
// goes through verification again.
type Client struct {
	hub    *Hub
	conn   *websocket.Conn
	userID uuid.UUID
	send   chan []byte
	rooms  map[string]struct{}
}

func newClient(hub *Hub, conn *websocket.Conn, userID uuid.UUID) *Client {
	return &Client{
		hub:    hub,
		conn:   conn,
		userID: userID,
		send:   make(chan []byte, 16),
		rooms:  make(map[string]struct{}),
	}
}

type roomEvent struct {
	Room             string `json:"room"`
	ShouldReturnData bool   `json:"shouldReturnData"`
}

// readPump dispatches inbound events to the hub until the connection drops.
func (c *Client) readPump() {
	defer func() {
		c.hub.unregister(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			return
		}

		var env envelope
		if err := json.Unmarshal(message, &env); err != nil {
			continue
		}

		switch env.Event {
		case "join-room":
			var ev roomEvent
			if err := json.Unmarshal(env.Data, &ev); err != nil || ev.Room == "" {
				continue
			}
			c.hub.join(c, ev.Room, ev.ShouldReturnData)

		case "leave-room":
			var ev roomEvent
			if err := json.Unmarshal(env.Data, &ev); err != nil || ev.Room == "" {
				continue
			}
			c.hub.leave(c, ev.Room, ev.ShouldReturnData)
		}
	}
}

// writePump drains the send channel onto the wire and keeps the connection
// alive with pings.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// emit queues an event for this client. Slow consumers are dropped rather
// than allowed to stall the hub.
func (c *Client) emit(event string, data interface{}) {
	message, err := json.Marshal(outEnvelope{Event: event, Data: data})
	if err != nil {
		return
	}
	select {
	case c.send <- message:
	default:
	}
}
