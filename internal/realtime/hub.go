// Package realtime provides the room-based websocket channel. A single hub
// goroutine owns all room state; clients talk to it over channels, so no
// locks are shared with request handlers.
package realtime

import (
	"encoding/json"
	"log/slog"
)

type command struct {
	kind   commandKind
	client *Client
	room   string
	ack    bool
	event  string
	data   interface{}
}

type commandKind int

const (
	cmdRegister commandKind = iota
	cmdUnregister
	cmdJoin
	cmdLeave
	cmdBroadcast
)

type Hub struct {
	rooms    map[string]map[*Client]struct{}
	clients  map[*Client]struct{}
	commands chan command
	logger   *slog.Logger
}

func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		rooms:    make(map[string]map[*Client]struct{}),
		clients:  make(map[*Client]struct{}),
		commands: make(chan command, 64),
		logger:   logger,
	}
}

// Run owns the room state until the context given to the caller ends the
// process. Start it once from main.
func (h *Hub) Run() {
	for cmd := range h.commands {
		switch cmd.kind {
		case cmdRegister:
			h.clients[cmd.client] = struct{}{}

		case cmdUnregister:
			h.removeClient(cmd.client)

		case cmdJoin:
			if _, ok := h.rooms[cmd.room]; !ok {
				h.rooms[cmd.room] = make(map[*Client]struct{})
			}
			h.rooms[cmd.room][cmd.client] = struct{}{}
			cmd.client.rooms[cmd.room] = struct{}{}
			h.logger.Debug("client joined room", "user_id", cmd.client.userID, "room", cmd.room)
			if cmd.ack {
				cmd.client.emit("join-room-return", ackPayload{
					Room:    cmd.room,
					Message: "joined room " + cmd.room,
				})
			}

		case cmdLeave:
			h.removeFromRoom(cmd.client, cmd.room)
			h.logger.Debug("client left room", "user_id", cmd.client.userID, "room", cmd.room)
			if cmd.ack {
				cmd.client.emit("leave-room-return", ackPayload{
					Room:    cmd.room,
					Message: "left room " + cmd.room,
				})
			}

		case cmdBroadcast:
			for client := range h.rooms[cmd.room] {
				client.emit(cmd.event, cmd.data)
			}
		}
	}
}

// Broadcast sends an event to every client currently in the room.
func (h *Hub) Broadcast(room, event string, data interface{}) {
	h.commands <- command{kind: cmdBroadcast, room: room, event: event, data: data}
}

func (h *Hub) register(c *Client) {
	h.commands <- command{kind: cmdRegister, client: c}
}

func (h *Hub) unregister(c *Client) {
	h.commands <- command{kind: cmdUnregister, client: c}
}

func (h *Hub) join(c *Client, room string, ack bool) {
	h.commands <- command{kind: cmdJoin, client: c, room: room, ack: ack}
}

func (h *Hub) leave(c *Client, room string, ack bool) {
	h.commands <- command{kind: cmdLeave, client: c, room: room, ack: ack}
}

func (h *Hub) removeClient(c *Client) {
	if _, ok := h.clients[c]; !ok {
		return
	}
	for room := range c.rooms {
		h.removeFromRoom(c, room)
	}
	delete(h.clients, c)
	close(c.send)
	h.logger.Debug("client disconnected", "user_id", c.userID)
}

func (h *Hub) removeFromRoom(c *Client, room string) {
	if members, ok := h.rooms[room]; ok {
		delete(members, c)
		if len(members) == 0 {
			delete(h.rooms, room)
		}
	}
	delete(c.rooms, room)
}

type ackPayload struct {
	Room    string `json:"room"`
	Message string `json:"message"`
}

type envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

type outEnvelope struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}
