package game

import "time"

// checkTagging runs the proximity test between the two tag-relevant players
// after every accepted move. Gated on a running match, an elapsed cooldown
// and no active fight-back session.
func (r *Room) checkTagging() {
	if !r.running || r.qte != nil || len(r.order) < 2 {
		return
	}
	if r.now().Before(r.cooldownUntil) {
		return
	}
	p1 := r.players[r.order[0]]
	p2 := r.players[r.order[1]]
	half := PlayerSize * HitboxScale / 2
	if !overlapAABB(p1.X, p1.Y, half, p2.X, p2.Y, half, HitTolerance) {
		return
	}
	if r.dice.Float64() < FightBackChance {
		r.startQTE()
		return
	}
	r.resolveTag()
}

// resolveTag flips the chaser role on both players unless the target holds
// an active shield, and opens the post-tag cooldown window.
func (r *Room) resolveTag() {
	if target := r.target(); target != nil && target.Shielded {
		r.emitRoom(EvtTagBlocked, TagBlockedPayload{PlayerID: target.ID})
		return
	}
	r.flipRoles()
	r.tagCount++
	r.cooldownUntil = r.now().Add(TagCooldown)
	r.emitRoom(EvtPlayerTagged, PlayerTaggedPayload{TagCount: r.tagCount})
}

func (r *Room) flipRoles() {
	for _, p := range r.players {
		p.IsIt = !p.IsIt
	}
}

// chaser returns the player holding the "it" role, in join order.
func (r *Room) chaser() *Player {
	for _, id := range r.order {
		if p := r.players[id]; p.IsIt {
			return p
		}
	}
	return nil
}

// target returns the first player not holding the "it" role, in join order.
func (r *Room) target() *Player {
	for _, id := range r.order {
		if p := r.players[id]; !p.IsIt {
			return p
		}
	}
	return nil
}

func (r *Room) otherPlayer(id string) *Player {
	for _, pid := range r.order {
		if pid != id {
			return r.players[pid]
		}
	}
	return nil
}

// startQTE opens a fight-back session shared by the whole roster. Mutual
// exclusion with other sessions is enforced by the checkTagging gate.
func (r *Room) startQTE() {
	r.qte = NewQTESession(r.dice, append([]string(nil), r.order...), r.now())
	r.qteSeq++
	seq := r.qteSeq
	r.after(r.qte.Duration, func() {
		r.post(qteTimeoutCmd{seq: seq})
	})
	r.emitRoom(EvtQTEStart, QTEStartPayload{
		Sequence:   r.qte.Sequence,
		DurationMs: int(r.qte.Duration / time.Millisecond),
	})
}

func (r *Room) handleQTEInput(playerID, key string) {
	if r.qte == nil {
		return
	}
	if r.players[playerID] == nil {
		return
	}
	advanced, done := r.qte.Submit(playerID, key)
	if !advanced {
		return
	}
	r.emitRoom(EvtQTEProgress, QTEProgressPayload{
		PlayerID: playerID,
		Progress: r.qte.Progress(playerID),
	})
	if done {
		r.finishQTE(r.qte.WinOutcome(playerID))
	}
}

// finishQTE destroys the session and feeds the outcome back into the room:
// the tag stands only when the chaser won the race. The cooldown opens on
// either outcome so the pair cannot re-collide instantly.
func (r *Room) finishQTE(out QTEOutcome) {
	r.qte = nil
	r.qteSeq++
	r.cooldownUntil = r.now().Add(TagCooldown)
	winner := r.players[out.WinnerID]
	tagged := winner != nil && winner.IsIt
	if tagged {
		r.flipRoles()
		r.tagCount++
	}
	r.emitRoom(EvtQTEEnd, QTEEndPayload{
		WinnerID:       out.WinnerID,
		LoserID:        out.LoserID,
		WinnerProgress: out.WinnerProgress,
		LoserProgress:  out.LoserProgress,
		Timeout:        out.Timeout,
		Tagged:         tagged,
	})
	if tagged {
		r.emitRoom(EvtPlayerTagged, PlayerTaggedPayload{TagCount: r.tagCount})
	}
}
