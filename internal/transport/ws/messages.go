package ws

import "encoding/json"

// MessageType defines the type of WebSocket message
type MessageType string

// Inbound message types (client -> server)
const (
	MsgJoinRoom     MessageType = "joinRoom"
	MsgStartGame    MessageType = "startGame"
	MsgPlayerMove   MessageType = "playerMove"
	MsgRestartGame  MessageType = "restartGame"
	MsgQTEInput     MessageType = "qteInput"
	MsgPurchaseItem MessageType = "purchaseItem"
)

// Message is the inbound WebSocket envelope format
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type JoinRoomPayload struct {
	RoomID     string `json:"roomId"`
	PlayerName string `json:"playerName"`
}

type MovePayload struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type QTEInputPayload struct {
	Key string `json:"key"`
}

type PurchasePayload struct {
	Item string `json:"item"`
}
