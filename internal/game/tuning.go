package game

import "time"

// Arena and gameplay tuning. Values mirror the live balance of the
// production browser client.
const (
	GameWidth  = 500.0
	GameHeight = 400.0
	PlayerSize = 30.0

	RoundSeconds = 60
	WinCredit    = 10

	TagCooldown     = 2 * time.Second
	HitboxScale     = 0.9
	HitTolerance    = 5.0
	FightBackChance = 0.3

	PowerUpSize      = 20.0
	PowerUpSpawnRate = 10 * time.Second
	PowerUpTTL       = 10 * time.Second
	MaxPowerUps      = 2
	MinSpawnDistance = 100.0

	EffectDuration = 5 * time.Second
	FreezeDuration = 3 * time.Second
	BoostExtension = 2 * time.Second

	QTESequenceLength = 5
	QTEDuration       = 5 * time.Second
)

// QTEAlphabet is the symbol set fight-back sequences are drawn from.
var QTEAlphabet = []string{"w", "a", "s", "d"}

// BoostUnlock is the shop item that extends power-up effect durations.
const BoostUnlock = "powerup-boost"

const (
	colorBlue  = "#3498db"
	colorGreen = "#27ae60"
)
