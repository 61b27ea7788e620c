package game

import "fmt"

// Effect is a timed status applied to a player by a power-up.
type Effect string

const (
	EffectSpeed  Effect = "speed"
	EffectFreeze Effect = "freeze"
	EffectShield Effect = "shield"
)

// Player is a roster entry owned exclusively by its room. Position is always
// within [PlayerSize/2, bound-PlayerSize/2] on both axes.
type Player struct {
	ID         string   `json:"id"`
	Account    string   `json:"-"`
	Name       string   `json:"name"`
	X          float64  `json:"x"`
	Y          float64  `json:"y"`
	IsIt       bool     `json:"isIt"`
	Color      string   `json:"color"`
	SpeedBoost bool     `json:"speedBoost"`
	Shielded   bool     `json:"shielded"`
	Frozen     bool     `json:"frozen"`
	Slowed     bool     `json:"slowed"`
	Taggerz    int      `json:"taggerz"`
	Purchased  []string `json:"purchased"`

	// effectSeq guards timed expiries: a re-application bumps the sequence
	// so a stale timer cannot clear the refreshed effect.
	effectSeq map[Effect]uint64
}

func newPlayer(id, account, name string, index int) *Player {
	p := &Player{
		ID:        id,
		Account:   account,
		Name:      name,
		X:         GameWidth / 4,
		Y:         GameHeight / 2,
		IsIt:      index == 1,
		Color:     colorBlue,
		Purchased: []string{},
	}
	if p.Name == "" {
		p.Name = fmt.Sprintf("Player %d", index+1)
	}
	if index != 0 {
		p.X = GameWidth * 3 / 4
		p.Color = colorGreen
	}
	return p
}

// Owns reports whether the player has purchased the given unlock.
func (p *Player) Owns(item string) bool {
	for _, it := range p.Purchased {
		if it == item {
			return true
		}
	}
	return false
}

func (p *Player) bumpEffect(e Effect) uint64 {
	if p.effectSeq == nil {
		p.effectSeq = make(map[Effect]uint64)
	}
	p.effectSeq[e]++
	return p.effectSeq[e]
}

func (p *Player) effectSeqFor(e Effect) uint64 {
	return p.effectSeq[e]
}

func (p *Player) setEffect(e Effect, on bool) {
	switch e {
	case EffectSpeed:
		p.SpeedBoost = on
	case EffectFreeze:
		p.Frozen = on
	case EffectShield:
		p.Shielded = on
	}
}

// clearEffects resets every status flag and invalidates pending expiries.
func (p *Player) clearEffects() {
	for _, e := range []Effect{EffectSpeed, EffectFreeze, EffectShield} {
		p.bumpEffect(e)
		p.setEffect(e, false)
	}
	p.Slowed = false
}
