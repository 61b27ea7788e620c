package game

import "testing"

// With the default scripted rolls a pickup lands at (434, 344), far enough
// from both spawn points.
const (
	dropX = 0.9*(GameWidth-2*PowerUpSize) + PowerUpSize
	dropY = 0.9*(GameHeight-2*PowerUpSize) + PowerUpSize
)

func TestPowerUpSpawnCap(t *testing.T) {
	f := newFixture(t)
	f.joinPair()
	f.start()

	f.room.spawnPowerUp()
	f.room.spawnPowerUp()
	f.room.spawnPowerUp()

	if got := len(f.room.powerUps); got != MaxPowerUps {
		t.Errorf("pool holds %d pickups, want %d", got, MaxPowerUps)
	}
	if got := f.log.count(EvtPowerUpSpawned); got != MaxPowerUps {
		t.Errorf("powerUpSpawned broadcast %d times, want %d", got, MaxPowerUps)
	}
}

func TestPowerUpSpawnNeedsRunningMatch(t *testing.T) {
	f := newFixture(t)
	f.joinPair()

	f.room.spawnPowerUp()

	if len(f.room.powerUps) != 0 || f.log.count(EvtPowerUpSpawned) != 0 {
		t.Error("pickup spawned before the match started")
	}
}

func TestPowerUpSpawnRejectsCrowdedSpots(t *testing.T) {
	f := newFixture(t)
	// Every candidate lands exactly on the runner's spawn point.
	f.dice.floats = []float64{
		(GameWidth/4 - PowerUpSize) / (GameWidth - 2*PowerUpSize),
		(GameHeight/2 - PowerUpSize) / (GameHeight - 2*PowerUpSize),
	}
	f.joinPair()
	f.start()

	f.room.spawnPowerUp()

	if len(f.room.powerUps) != 0 || f.log.count(EvtPowerUpSpawned) != 0 {
		t.Error("pickup placed on top of a player")
	}
}

func TestPowerUpCollectAppliesSpeedOnce(t *testing.T) {
	f := newFixture(t)
	f.joinPair()
	f.start()
	f.room.spawnPowerUp()

	f.move("p2", dropX, dropY)

	if !f.player("p2").SpeedBoost {
		t.Fatal("collector did not get the speed boost")
	}
	collected := lastPayload[PowerUpCollectedPayload](t, f.log, EvtPowerUpCollected)
	if collected.PlayerID != "p2" || collected.Type != EffectSpeed {
		t.Errorf("powerUpCollected = %+v", collected)
	}
	if len(f.room.powerUps) != 0 {
		t.Error("collected pickup still pooled")
	}
	if len(f.timers.entries) != 2 || f.timers.entries[1].d != EffectDuration {
		t.Fatalf("expected TTL and effect timers, got %v", f.timers.entries)
	}

	// Standing on the spot cannot collect the same pickup again.
	f.move("p2", dropX, dropY)
	if got := f.log.count(EvtPowerUpCollected); got != 1 {
		t.Errorf("pickup collected %d times", got)
	}

	// The TTL timer fires against an already collected pickup.
	f.timers.fire(0)
	f.drain()
	if got := f.log.count(EvtPowerUpRemoved); got != 0 {
		t.Error("powerUpRemoved broadcast for a collected pickup")
	}

	// The effect expires on its own timer.
	f.timers.fire(1)
	f.drain()
	if f.player("p2").SpeedBoost {
		t.Error("speed boost survived its expiry")
	}
}

func TestPowerUpExpiresUncollected(t *testing.T) {
	f := newFixture(t)
	f.joinPair()
	f.start()
	f.room.spawnPowerUp()
	id := f.room.powerUps[0].ID

	f.timers.fire(0)
	f.drain()

	if len(f.room.powerUps) != 0 {
		t.Error("expired pickup still pooled")
	}
	if got := lastPayload[PowerUpRemovedPayload](t, f.log, EvtPowerUpRemoved); got.ID != id {
		t.Errorf("powerUpRemoved names %q, want %q", got.ID, id)
	}
}

func TestFreezeLandsOnOpponent(t *testing.T) {
	f := newFixture(t)
	f.dice.ints = []int{1} // freeze
	f.joinPair()
	f.start()
	f.room.spawnPowerUp()

	f.move("p2", dropX, dropY)

	if f.player("p2").Frozen {
		t.Error("freeze landed on the collector")
	}
	if !f.player("p1").Frozen {
		t.Fatal("opponent not frozen")
	}
	if f.timers.entries[1].d != FreezeDuration {
		t.Errorf("freeze expiry scheduled for %v, want %v", f.timers.entries[1].d, FreezeDuration)
	}

	f.move("p1", 200, 200)
	if f.player("p1").X != GameWidth/4 {
		t.Error("frozen opponent moved")
	}

	f.timers.fire(1)
	f.drain()
	if f.player("p1").Frozen {
		t.Error("freeze survived its expiry")
	}
	f.move("p1", 200, 220)
	if f.player("p1").X != 200 {
		t.Error("player still stuck after the freeze expired")
	}
}

func TestBoostUnlockExtendsEffects(t *testing.T) {
	f := newFixture(t)
	f.joinPair()
	f.start()
	f.player("p2").Purchased = append(f.player("p2").Purchased, BoostUnlock)
	f.room.spawnPowerUp()

	f.move("p2", dropX, dropY)

	if got := f.timers.entries[1].d; got != EffectDuration+BoostExtension {
		t.Errorf("boosted effect scheduled for %v, want %v", got, EffectDuration+BoostExtension)
	}
}

func TestEffectRefreshOutlivesStaleTimer(t *testing.T) {
	f := newFixture(t)
	f.joinPair()
	f.start()

	f.room.spawnPowerUp()
	f.move("p2", dropX, dropY) // timers: 0 TTL, 1 effect
	f.move("p2", GameWidth*3/4, GameHeight/2)
	f.room.spawnPowerUp()
	f.move("p2", dropX, dropY) // timers: 2 TTL, 3 effect

	if !f.player("p2").SpeedBoost {
		t.Fatal("speed boost not applied")
	}

	// The first expiry is stale after the refresh.
	f.timers.fire(1)
	f.drain()
	if !f.player("p2").SpeedBoost {
		t.Error("stale expiry cleared a refreshed effect")
	}

	f.timers.fire(3)
	f.drain()
	if f.player("p2").SpeedBoost {
		t.Error("refreshed effect survived its own expiry")
	}
}
