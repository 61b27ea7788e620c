package game

import (
	"context"
	"log"
	"sync/atomic"
	"time"

	"tagarena/internal/model"
)

// Broadcaster delivers outbound events to connected clients. The ws hub
// implements it.
type Broadcaster interface {
	ToRoom(roomID, event string, payload any)
	ToPlayer(roomID, playerID, event string, payload any)
}

// LedgerStore loads and persists per-account currency records. Records are
// keyed by account identity and outlive any room.
type LedgerStore interface {
	Load(ctx context.Context, account string) (*model.Account, error)
	Save(ctx context.Context, acct *model.Account) error
}

// Dice is the source of gameplay randomness. *rand.Rand satisfies it; tests
// substitute fixed rolls.
type Dice interface {
	Float64() float64
	Intn(n int) int
}

// Commands carried on the room inbox. Timer callbacks re-enter the dispatch
// loop through these and must re-validate state on receipt: the entity they
// reference may be gone by the time they fire.
type (
	joinCmd struct {
		id      string
		account string
		name    string
		acct    *model.Account
	}
	leaveCmd    struct{ id string }
	startCmd    struct{}
	moveCmd     struct {
		id   string
		x, y float64
	}
	qteInputCmd struct{ id, key string }
	restartCmd  struct{}
	purchaseCmd struct{ id, item string }

	powerUpExpiredCmd struct{ id string }
	effectExpiredCmd  struct {
		playerID string
		effect   Effect
		seq      uint64
	}
	qteTimeoutCmd struct{ seq uint64 }
)

// Room owns one match: roster, countdown, tag detection, power-ups and the
// fight-back session. All mutations are serialized through its dispatch
// loop, so no client ever observes a half-applied transition.
type Room struct {
	ID    string
	Inbox chan any

	players       map[string]*Player
	order         []string
	running       bool
	ended         bool
	timeLeft      int
	tagCount      int
	powerUps      []*PowerUp
	qte           *QTESession
	qteSeq        uint64
	cooldownUntil time.Time

	countdown *time.Ticker
	spawner   *time.Ticker

	dice  Dice
	bc    Broadcaster
	store LedgerStore

	now   func() time.Time
	after func(d time.Duration, f func())

	size     atomic.Int64
	quit     chan struct{}
	stopped  bool
	onEmpty  func(id string)
	onRoster func(id string, players int)
}

func newRoom(id string, dice Dice, bc Broadcaster, store LedgerStore, onEmpty func(string)) *Room {
	r := &Room{
		ID:       id,
		Inbox:    make(chan any, 256),
		players:  make(map[string]*Player),
		timeLeft: RoundSeconds,
		dice:     dice,
		bc:       bc,
		store:    store,
		now:      time.Now,
		quit:     make(chan struct{}),
		onEmpty:  onEmpty,
	}
	r.after = func(d time.Duration, f func()) {
		time.AfterFunc(d, f)
	}
	return r
}

// NumPlayers returns the current roster size.
func (r *Room) NumPlayers() int {
	return int(r.size.Load())
}

// Run drives the room's serialized dispatch loop until the room shuts down.
func (r *Room) Run() {
	for {
		var tickC, spawnC <-chan time.Time
		if r.countdown != nil {
			tickC = r.countdown.C
		}
		if r.spawner != nil {
			spawnC = r.spawner.C
		}
		select {
		case <-r.quit:
			return
		case cmd := <-r.Inbox:
			r.dispatch(cmd)
		case <-tickC:
			r.tick()
		case <-spawnC:
			r.spawnPowerUp()
		}
	}
}

// post delivers a command into the dispatch loop, dropping it if the room
// has already shut down.
func (r *Room) post(cmd any) {
	select {
	case <-r.quit:
		return
	default:
	}
	select {
	case r.Inbox <- cmd:
	case <-r.quit:
	}
}

func (r *Room) dispatch(cmd any) {
	switch c := cmd.(type) {
	case joinCmd:
		r.handleJoin(c)
	case leaveCmd:
		r.handleLeave(c.id)
	case startCmd:
		r.handleStart()
	case moveCmd:
		r.handleMove(c.id, c.x, c.y)
	case qteInputCmd:
		r.handleQTEInput(c.id, c.key)
	case restartCmd:
		r.handleRestart()
	case purchaseCmd:
		r.handlePurchase(c.id, c.item)
	case powerUpExpiredCmd:
		r.handlePowerUpExpired(c.id)
	case effectExpiredCmd:
		r.handleEffectExpired(c)
	case qteTimeoutCmd:
		if r.qte != nil && c.seq == r.qteSeq {
			r.finishQTE(r.qte.TimeoutOutcome())
		}
	}
}

func (r *Room) handleJoin(c joinCmd) {
	if _, ok := r.players[c.id]; ok {
		return
	}
	p := newPlayer(c.id, c.account, c.name, len(r.order))
	if c.acct != nil {
		p.Taggerz = c.acct.Taggerz
		if len(c.acct.Purchased) > 0 {
			p.Purchased = append(p.Purchased, c.acct.Purchased...)
		}
	}
	r.players[c.id] = p
	r.order = append(r.order, c.id)
	r.size.Store(int64(len(r.order)))
	r.emitPlayer(c.id, EvtRoomJoined, RoomJoinedPayload{PlayerID: c.id, Player: *p, GameState: r.snapshot()})
	r.emitRoom(EvtPlayerJoined, PlayerJoinedPayload{Player: *p, GameState: r.snapshot()})
	if r.onRoster != nil {
		r.onRoster(r.ID, len(r.order))
	}
	log.Printf("room %s: player %s (%s) joined", r.ID, p.Name, c.id)
}

func (r *Room) handleLeave(id string) {
	if _, ok := r.players[id]; !ok {
		return
	}
	delete(r.players, id)
	for i, pid := range r.order {
		if pid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	r.size.Store(int64(len(r.order)))
	if len(r.players) == 0 {
		r.shutdown()
		return
	}
	if r.onRoster != nil {
		r.onRoster(r.ID, len(r.order))
	}
	r.emitRoom(EvtPlayerLeft, PlayerLeftPayload{PlayerID: id, GameState: r.snapshot()})
}

// shutdown stops every room timer and marks the room for registry eviction.
// No events are emitted for the room past this point: pending timer posts
// are absorbed by the closed quit channel.
func (r *Room) shutdown() {
	r.stopTimers()
	r.running = false
	if !r.stopped {
		r.stopped = true
		close(r.quit)
	}
	if r.onEmpty != nil {
		r.onEmpty(r.ID)
	}
}

func (r *Room) handleStart() {
	if r.running || len(r.players) < 2 {
		return
	}
	r.running = true
	r.ended = false
	r.timeLeft = RoundSeconds
	r.tagCount = 0
	r.countdown = time.NewTicker(time.Second)
	r.spawner = time.NewTicker(PowerUpSpawnRate)
	r.emitRoom(EvtGameStarted, r.snapshot())
}

func (r *Room) stopTimers() {
	if r.countdown != nil {
		r.countdown.Stop()
		r.countdown = nil
	}
	if r.spawner != nil {
		r.spawner.Stop()
		r.spawner = nil
	}
	r.powerUps = nil
}

// tick runs once per second while the match is live.
func (r *Room) tick() {
	if !r.running {
		return
	}
	r.timeLeft--
	if r.timeLeft <= 0 {
		r.timeLeft = 0
		r.endGame()
		return
	}
	r.emitRoom(EvtGameUpdate, r.snapshot())
}

// endGame resolves the match: the player not holding the chaser role wins
// and is credited through the ledger.
func (r *Room) endGame() {
	r.stopTimers()
	r.running = false
	r.ended = true
	var winnerName string
	if winner := r.target(); winner != nil {
		Credit(winner, WinCredit)
		r.persist(winner)
		winnerName = winner.Name
		r.emitRoom(EvtTaggerzUpdate, TaggerzUpdatePayload{PlayerID: winner.ID, Taggerz: winner.Taggerz})
	}
	standings := make([]PlayerStanding, 0, len(r.order))
	for _, id := range r.order {
		p := r.players[id]
		standings = append(standings, PlayerStanding{ID: p.ID, Name: p.Name, Taggerz: p.Taggerz, Purchased: p.Purchased})
	}
	r.emitRoom(EvtGameEnd, GameEndPayload{Winner: winnerName, TagCount: r.tagCount, Taggerz: standings})
}

// handleMove validates and merges a position update, then runs the
// collection and tag checks. Frozen players cannot move at all.
func (r *Room) handleMove(id string, x, y float64) {
	p := r.players[id]
	if p == nil || p.Frozen {
		return
	}
	p.X = Clamp(x, PlayerSize/2, GameWidth)
	p.Y = Clamp(y, PlayerSize/2, GameHeight)
	r.emitRoom(EvtPlayerMoved, PlayerMovedPayload{PlayerID: id, Position: Position{X: p.X, Y: p.Y}})
	if r.running {
		r.collectPowerUps(p)
		r.checkTagging()
	}
}

// handleRestart resets the match in place: positions, roles, effects, tag
// count, cooldown and QTE state return to initial values while the roster
// and everyone's currency survive.
func (r *Room) handleRestart() {
	r.stopTimers()
	r.running = false
	r.ended = false
	r.timeLeft = RoundSeconds
	r.tagCount = 0
	r.cooldownUntil = time.Time{}
	r.qte = nil
	r.qteSeq++
	for i, id := range r.order {
		p := r.players[id]
		p.X = GameWidth / 4
		if i != 0 {
			p.X = GameWidth * 3 / 4
		}
		p.Y = GameHeight / 2
		p.IsIt = i == 1
		p.clearEffects()
	}
	r.emitRoom(EvtGameRestart, r.snapshot())
}

func (r *Room) handlePurchase(id, item string) {
	p := r.players[id]
	if p == nil {
		return
	}
	if err := Purchase(p, item); err != nil {
		r.emitPlayer(id, EvtPurchaseResult, PurchaseResultPayload{Success: false, Item: item, Error: err.Error()})
		return
	}
	r.persist(p)
	r.emitPlayer(id, EvtPurchaseResult, PurchaseResultPayload{Success: true, Item: item, Taggerz: p.Taggerz})
	r.emitRoom(EvtPlayerUpdate, PlayerUpdatePayload{PlayerID: id, Taggerz: p.Taggerz, Purchased: p.Purchased})
}

// persist writes the player's ledger view back to the account record.
func (r *Room) persist(p *Player) {
	if r.store == nil || p.Account == "" {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	acct := &model.Account{Name: p.Account, Taggerz: p.Taggerz, Purchased: p.Purchased}
	if err := r.store.Save(ctx, acct); err != nil {
		log.Printf("room %s: save account %s: %v", r.ID, p.Account, err)
	}
}

func (r *Room) emitRoom(event string, payload any) {
	if r.bc != nil {
		r.bc.ToRoom(r.ID, event, payload)
	}
}

func (r *Room) emitPlayer(id, event string, payload any) {
	if r.bc != nil {
		r.bc.ToPlayer(r.ID, id, event, payload)
	}
}

// snapshot copies the authoritative state for broadcast. Values are copied
// so encoding off-loop never races the dispatch loop.
func (r *Room) snapshot() GameState {
	gs := GameState{
		RoomID:     r.ID,
		IsRunning:  r.running,
		TimeLeft:   r.timeLeft,
		TagCount:   r.tagCount,
		GameWidth:  GameWidth,
		GameHeight: GameHeight,
		PlayerSize: PlayerSize,
		Players:    make([]Player, 0, len(r.order)),
		PowerUps:   make([]PowerUp, 0, len(r.powerUps)),
	}
	for _, id := range r.order {
		gs.Players = append(gs.Players, *r.players[id])
	}
	for _, pu := range r.powerUps {
		gs.PowerUps = append(gs.PowerUps, *pu)
	}
	return gs
}
