package ws

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"tagarena/internal/game"
	"tagarena/internal/service"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for dev
	},
}

// Handler handles WebSocket connections
type Handler struct {
	hub      *Hub
	authSvc  *service.AuthService
	registry *game.Registry
}

// NewHandler creates a new WebSocket handler
func NewHandler(hub *Hub, authSvc *service.AuthService, registry *game.Registry) *Handler {
	return &Handler{
		hub:      hub,
		authSvc:  authSvc,
		registry: registry,
	}
}

// ServeWS handles GET /v1/ws?token=...
func (h *Handler) ServeWS(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")

	if token == "" {
		http.Error(w, "missing token", http.StatusUnauthorized)
		return
	}

	claims, err := h.authSvc.ValidateToken(token)
	if err != nil {
		http.Error(w, "invalid token", http.StatusUnauthorized)
		return
	}

	wsConn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade error: %v", err)
		return
	}

	conn := &Connection{
		ID:      "p_" + uuid.New().String()[:8],
		Account: claims.Account,
		Send:    make(chan []byte, 256),
		Hub:     h.hub,
	}

	log.Printf("Account %s connected via WebSocket as %s", claims.Account, conn.ID)

	go h.writePump(wsConn, conn)
	go h.readPump(wsConn, conn)
}

func (h *Handler) readPump(wsConn *websocket.Conn, conn *Connection) {
	defer func() {
		if conn.RoomID != "" {
			h.hub.Unregister(conn)
			h.registry.Leave(conn.RoomID, conn.ID)
		}
		wsConn.Close()
	}()

	wsConn.SetReadLimit(maxMessageSize)
	wsConn.SetReadDeadline(time.Now().Add(pongWait))
	wsConn.SetPongHandler(func(string) error {
		wsConn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, data, err := wsConn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket error: %v", err)
			}
			break
		}
		var msg Message
		if err := json.Unmarshal(data, &msg); err != nil {
			continue
		}
		h.handleMessage(conn, &msg)
	}
}

// handleMessage dispatches one inbound client action. Malformed payloads
// degrade to no-ops; nothing here is fatal to the connection.
func (h *Handler) handleMessage(conn *Connection, msg *Message) {
	switch msg.Type {
	case MsgJoinRoom:
		var p JoinRoomPayload
		if err := json.Unmarshal(msg.Payload, &p); err != nil || p.RoomID == "" {
			return
		}
		if conn.RoomID != "" {
			h.hub.Unregister(conn)
			h.registry.Leave(conn.RoomID, conn.ID)
		}
		conn.RoomID = p.RoomID
		h.hub.Register(conn)
		h.registry.Join(context.Background(), p.RoomID, conn.ID, conn.Account, p.PlayerName)

	case MsgStartGame:
		if conn.RoomID != "" {
			h.registry.Start(conn.RoomID)
		}

	case MsgPlayerMove:
		if conn.RoomID == "" {
			return
		}
		var p MovePayload
		if err := json.Unmarshal(msg.Payload, &p); err != nil {
			return
		}
		h.registry.Move(conn.RoomID, conn.ID, p.X, p.Y)

	case MsgRestartGame:
		if conn.RoomID != "" {
			h.registry.Restart(conn.RoomID)
		}

	case MsgQTEInput:
		if conn.RoomID == "" {
			return
		}
		var p QTEInputPayload
		if err := json.Unmarshal(msg.Payload, &p); err != nil {
			return
		}
		h.registry.QTEInput(conn.RoomID, conn.ID, p.Key)

	case MsgPurchaseItem:
		if conn.RoomID == "" {
			return
		}
		var p PurchasePayload
		if err := json.Unmarshal(msg.Payload, &p); err != nil {
			return
		}
		h.registry.Purchase(conn.RoomID, conn.ID, p.Item)
	}
}

func (h *Handler) writePump(wsConn *websocket.Conn, conn *Connection) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		wsConn.Close()
	}()

	for {
		select {
		case message, ok := <-conn.Send:
			wsConn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				wsConn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			w, err := wsConn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(message)

			if err := w.Close(); err != nil {
				return
			}

		case <-ticker.C:
			wsConn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := wsConn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
