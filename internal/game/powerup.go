package game

import (
	"math"
	"time"

	"github.com/google/uuid"
)

// PowerUp is a timed pickup on the arena floor.
type PowerUp struct {
	ID        string  `json:"id"`
	Type      Effect  `json:"type"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Size      float64 `json:"size"`
	Collected bool    `json:"collected"`
}

var powerUpTypes = []Effect{EffectSpeed, EffectFreeze, EffectShield}

// Placement rejection is bounded so a pathological random source cannot
// stall the dispatch loop; a crowded arena just skips one spawn interval.
const maxPlacementTries = 40

// spawnPowerUp places a new pickup of a random kind at a random position,
// rejecting spots within MinSpawnDistance of any player. No-op when the cap
// is reached or the room is not running.
func (r *Room) spawnPowerUp() {
	if len(r.powerUps) >= MaxPowerUps || !r.running {
		return
	}
	pu := &PowerUp{
		ID:   uuid.NewString(),
		Type: powerUpTypes[r.dice.Intn(len(powerUpTypes))],
		Size: PowerUpSize,
	}
	placed := false
	for tries := 0; tries < maxPlacementTries; tries++ {
		pu.X = r.dice.Float64()*(GameWidth-2*PowerUpSize) + PowerUpSize
		pu.Y = r.dice.Float64()*(GameHeight-2*PowerUpSize) + PowerUpSize
		if !r.nearAnyPlayer(pu.X, pu.Y, MinSpawnDistance) {
			placed = true
			break
		}
	}
	if !placed {
		return
	}
	r.powerUps = append(r.powerUps, pu)
	id := pu.ID
	r.after(PowerUpTTL, func() {
		r.post(powerUpExpiredCmd{id: id})
	})
	r.emitRoom(EvtPowerUpSpawned, *pu)
}

func (r *Room) nearAnyPlayer(x, y, dist float64) bool {
	for _, p := range r.players {
		if math.Hypot(x-p.X, y-p.Y) < dist {
			return true
		}
	}
	return false
}

// collectPowerUps runs the overlap test between the player and every
// uncollected pickup. Collected items leave the pool in the same step, so a
// given id reports at most one collection.
func (r *Room) collectPowerUps(p *Player) {
	for i := len(r.powerUps) - 1; i >= 0; i-- {
		pu := r.powerUps[i]
		if pu.Collected {
			continue
		}
		if !overlapAABB(p.X, p.Y, PlayerSize/2, pu.X, pu.Y, pu.Size/2, HitTolerance) {
			continue
		}
		pu.Collected = true
		r.powerUps = append(r.powerUps[:i], r.powerUps[i+1:]...)
		r.applyPowerUp(p, pu.Type)
		r.emitRoom(EvtPowerUpCollected, PowerUpCollectedPayload{ID: pu.ID, PlayerID: p.ID, Type: pu.Type})
	}
}

// applyPowerUp routes the effect: speed and shield land on the collector,
// freeze lands on the opponent. The boost unlock extends every duration.
func (r *Room) applyPowerUp(p *Player, kind Effect) {
	var boost time.Duration
	if p.Owns(BoostUnlock) {
		boost = BoostExtension
	}
	switch kind {
	case EffectSpeed:
		r.applyEffect(p, EffectSpeed, EffectDuration+boost)
	case EffectFreeze:
		if other := r.otherPlayer(p.ID); other != nil {
			r.applyEffect(other, EffectFreeze, FreezeDuration+boost)
		}
	case EffectShield:
		r.applyEffect(p, EffectShield, EffectDuration+boost)
	}
}

// applyEffect sets the status flag and schedules its expiry. Re-application
// bumps the sequence, which resets the window instead of stacking.
func (r *Room) applyEffect(p *Player, e Effect, d time.Duration) {
	p.setEffect(e, true)
	seq := p.bumpEffect(e)
	id := p.ID
	r.after(d, func() {
		r.post(effectExpiredCmd{playerID: id, effect: e, seq: seq})
	})
}

func (r *Room) handleEffectExpired(c effectExpiredCmd) {
	p := r.players[c.playerID]
	if p == nil || p.effectSeqFor(c.effect) != c.seq {
		return
	}
	p.setEffect(c.effect, false)
}

func (r *Room) handlePowerUpExpired(id string) {
	for i, pu := range r.powerUps {
		if pu.ID != id {
			continue
		}
		r.powerUps = append(r.powerUps[:i], r.powerUps[i+1:]...)
		r.emitRoom(EvtPowerUpRemoved, PowerUpRemovedPayload{ID: id})
		return
	}
}
