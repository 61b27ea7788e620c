package ws

import (
	"encoding/json"
	"log"
	"sync"
)

// outMessage is the outbound WebSocket envelope format
type outMessage struct {
	Type    string `json:"type"`
	Payload any    `json:"payload"`
}

// Hub manages WebSocket connections for rooms
type Hub struct {
	// roomID -> playerID -> connection
	conns map[string]map[string]*Connection

	mu sync.RWMutex

	// Channels for coordination
	register   chan *Connection
	unregister chan *Connection
	broadcast  chan *BroadcastMessage
}

// Connection represents a WebSocket connection bound to one account
type Connection struct {
	ID      string
	Account string
	RoomID  string
	Send    chan []byte
	Hub     *Hub
}

// BroadcastMessage is a message to broadcast
type BroadcastMessage struct {
	RoomID   string
	ToPlayer string // Empty means all players in the room
	Message  *outMessage
}

// NewHub creates a new WebSocket hub
func NewHub() *Hub {
	h := &Hub{
		conns:      make(map[string]map[string]*Connection),
		register:   make(chan *Connection),
		unregister: make(chan *Connection),
		broadcast:  make(chan *BroadcastMessage, 256),
	}
	go h.run()
	return h
}

func (h *Hub) run() {
	for {
		select {
		case conn := <-h.register:
			h.mu.Lock()
			if h.conns[conn.RoomID] == nil {
				h.conns[conn.RoomID] = make(map[string]*Connection)
			}
			h.conns[conn.RoomID][conn.ID] = conn
			h.mu.Unlock()
			log.Printf("Player %s connected to room %s", conn.ID, conn.RoomID)

		case conn := <-h.unregister:
			h.mu.Lock()
			if players, ok := h.conns[conn.RoomID]; ok {
				if existing, ok := players[conn.ID]; ok && existing == conn {
					delete(players, conn.ID)
					if len(players) == 0 {
						delete(h.conns, conn.RoomID)
					}
					log.Printf("Player %s disconnected from room %s", conn.ID, conn.RoomID)
				}
			}
			h.mu.Unlock()

		case msg := <-h.broadcast:
			h.mu.RLock()
			data, _ := json.Marshal(msg.Message)

			if msg.ToPlayer != "" {
				// Send to specific player
				if players, ok := h.conns[msg.RoomID]; ok {
					if conn, ok := players[msg.ToPlayer]; ok {
						select {
						case conn.Send <- data:
						default:
							// Drop message if buffer full
						}
					}
				}
			} else {
				// Broadcast to all players in the room
				if players, ok := h.conns[msg.RoomID]; ok {
					for _, conn := range players {
						select {
						case conn.Send <- data:
						default:
						}
					}
				}
			}
			h.mu.RUnlock()
		}
	}
}

// Register adds a connection to its current room
func (h *Hub) Register(conn *Connection) {
	h.register <- conn
}

// Unregister removes a connection from its current room
func (h *Hub) Unregister(conn *Connection) {
	h.unregister <- conn
}

// ToRoom sends an event to every player in a room (implements game.Broadcaster)
func (h *Hub) ToRoom(roomID, event string, payload any) {
	h.broadcast <- &BroadcastMessage{
		RoomID:  roomID,
		Message: &outMessage{Type: event, Payload: payload},
	}
}

// ToPlayer sends an event to a single player (implements game.Broadcaster)
func (h *Hub) ToPlayer(roomID, playerID, event string, payload any) {
	h.broadcast <- &BroadcastMessage{
		RoomID:   roomID,
		ToPlayer: playerID,
		Message:  &outMessage{Type: event, Payload: payload},
	}
}
