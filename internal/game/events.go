package game

// Outbound event names, matching the wire surface the browser client
// listens on.
const (
	EvtRoomJoined       = "roomJoined"
	EvtPlayerJoined     = "playerJoined"
	EvtPlayerLeft       = "playerLeft"
	EvtGameStarted      = "gameStarted"
	EvtGameUpdate       = "gameUpdate"
	EvtGameRestart      = "gameRestart"
	EvtPlayerMoved      = "playerMoved"
	EvtPlayerTagged     = "playerTagged"
	EvtTagBlocked       = "tagBlocked"
	EvtPowerUpSpawned   = "powerUpSpawned"
	EvtPowerUpCollected = "powerUpCollected"
	EvtPowerUpRemoved   = "powerUpRemoved"
	EvtQTEStart         = "qteStart"
	EvtQTEProgress      = "qteProgress"
	EvtQTEEnd           = "qteEnd"
	EvtGameEnd          = "gameEnd"
	EvtPurchaseResult   = "purchaseResult"
	EvtTaggerzUpdate    = "taggerzUpdate"
	EvtPlayerUpdate     = "playerUpdate"
)

// Position is a point in room-bounds coordinates.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// GameState is the authoritative snapshot broadcast to every client.
type GameState struct {
	RoomID     string    `json:"roomId"`
	IsRunning  bool      `json:"isRunning"`
	TimeLeft   int       `json:"timeLeft"`
	TagCount   int       `json:"tagCount"`
	GameWidth  float64   `json:"gameWidth"`
	GameHeight float64   `json:"gameHeight"`
	PlayerSize float64   `json:"playerSize"`
	Players    []Player  `json:"players"`
	PowerUps   []PowerUp `json:"powerUps"`
}

type RoomJoinedPayload struct {
	PlayerID  string    `json:"playerId"`
	Player    Player    `json:"player"`
	GameState GameState `json:"gameState"`
}

type PlayerJoinedPayload struct {
	Player    Player    `json:"player"`
	GameState GameState `json:"gameState"`
}

type PlayerLeftPayload struct {
	PlayerID  string    `json:"playerId"`
	GameState GameState `json:"gameState"`
}

type PlayerMovedPayload struct {
	PlayerID string   `json:"playerId"`
	Position Position `json:"position"`
}

type PlayerTaggedPayload struct {
	TagCount int `json:"tagCount"`
}

type TagBlockedPayload struct {
	PlayerID string `json:"playerId"`
}

type PowerUpCollectedPayload struct {
	ID       string `json:"id"`
	PlayerID string `json:"playerId"`
	Type     Effect `json:"type"`
}

type PowerUpRemovedPayload struct {
	ID string `json:"id"`
}

type QTEStartPayload struct {
	Sequence   []string `json:"sequence"`
	DurationMs int      `json:"durationMs"`
}

type QTEProgressPayload struct {
	PlayerID string `json:"playerId"`
	Progress int    `json:"progress"`
}

type QTEEndPayload struct {
	WinnerID       string `json:"winnerId"`
	LoserID        string `json:"loserId"`
	WinnerProgress int    `json:"winnerProgress"`
	LoserProgress  int    `json:"loserProgress"`
	Timeout        bool   `json:"timeout"`
	Tagged         bool   `json:"tagged"`
}

// PlayerStanding is one row of the end-of-match summary.
type PlayerStanding struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Taggerz   int      `json:"taggerz"`
	Purchased []string `json:"purchased"`
}

type GameEndPayload struct {
	Winner   string           `json:"winner"`
	TagCount int              `json:"tagCount"`
	Taggerz  []PlayerStanding `json:"taggerz"`
}

type PurchaseResultPayload struct {
	Success bool   `json:"success"`
	Item    string `json:"item"`
	Taggerz int    `json:"taggerz,omitempty"`
	Error   string `json:"error,omitempty"`
}

type TaggerzUpdatePayload struct {
	PlayerID string `json:"playerId"`
	Taggerz  int    `json:"taggerz"`
}

type PlayerUpdatePayload struct {
	PlayerID  string   `json:"playerId"`
	Taggerz   int      `json:"taggerz"`
	Purchased []string `json:"purchased"`
}
