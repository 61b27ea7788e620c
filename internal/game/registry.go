package game

import (
	"context"
	"log"
	"math/rand"
	"sync"
	"time"

	"tagarena/internal/model"
)

// Presence mirrors live room membership into a shared cache so the REST
// room list can be served outside the owning process.
type Presence interface {
	SetRoom(ctx context.Context, code string, players int) error
	DeleteRoom(ctx context.Context, code string) error
}

// Registry maps room codes to live rooms. A room is created on first join
// and destroyed the instant its roster becomes empty.
type Registry struct {
	mu    sync.Mutex
	rooms map[string]*Room

	bc       Broadcaster
	store    LedgerStore
	presence Presence
	newDice  func() Dice
}

// NewRegistry wires the registry with its collaborators. store and presence
// may be nil; rooms then run without persistence or a shared room list.
func NewRegistry(bc Broadcaster, store LedgerStore, presence Presence) *Registry {
	return &Registry{
		rooms:    make(map[string]*Room),
		bc:       bc,
		store:    store,
		presence: presence,
		newDice: func() Dice {
			return rand.New(rand.NewSource(time.Now().UnixNano()))
		},
	}
}

func (g *Registry) getOrCreate(code string) *Room {
	g.mu.Lock()
	defer g.mu.Unlock()
	if r, ok := g.rooms[code]; ok {
		return r
	}
	r := newRoom(code, g.newDice(), g.bc, g.store, g.evict)
	// Roster changes are reported from the dispatch loop; the cache write
	// happens off-loop so a slow backend never stalls the room.
	r.onRoster = func(code string, players int) {
		go g.setPresence(code, players)
	}
	g.rooms[code] = r
	go r.Run()
	log.Printf("room %s created", code)
	return r
}

func (g *Registry) get(code string) *Room {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.rooms[code]
}

// evict runs on the room's dispatch goroutine when the last player leaves.
func (g *Registry) evict(code string) {
	g.mu.Lock()
	delete(g.rooms, code)
	g.mu.Unlock()
	log.Printf("room %s destroyed", code)
	if g.presence == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := g.presence.DeleteRoom(ctx, code); err != nil {
		log.Printf("presence delete %s: %v", code, err)
	}
}

func (g *Registry) setPresence(code string, players int) {
	if g.presence == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := g.presence.SetRoom(ctx, code, players); err != nil {
		log.Printf("presence update %s: %v", code, err)
	}
}

// Join registers the player with the room, creating the room on first use.
// The ledger record is loaded here so the dispatch loop never blocks on a
// storage read.
func (g *Registry) Join(ctx context.Context, roomID, playerID, account, name string) {
	r := g.getOrCreate(roomID)
	var rec *model.Account
	if g.store != nil && account != "" {
		loaded, err := g.store.Load(ctx, account)
		if err != nil {
			log.Printf("load account %s: %v", account, err)
		} else {
			rec = loaded
		}
	}
	r.post(joinCmd{id: playerID, account: account, name: name, acct: rec})
}

// Leave removes the player; the room evicts itself once empty.
func (g *Registry) Leave(roomID, playerID string) {
	r := g.get(roomID)
	if r == nil {
		return
	}
	r.post(leaveCmd{id: playerID})
}

func (g *Registry) Start(roomID string) {
	if r := g.get(roomID); r != nil {
		r.post(startCmd{})
	}
}

func (g *Registry) Move(roomID, playerID string, x, y float64) {
	if r := g.get(roomID); r != nil {
		r.post(moveCmd{id: playerID, x: x, y: y})
	}
}

func (g *Registry) QTEInput(roomID, playerID, key string) {
	if r := g.get(roomID); r != nil {
		r.post(qteInputCmd{id: playerID, key: key})
	}
}

func (g *Registry) Restart(roomID string) {
	if r := g.get(roomID); r != nil {
		r.post(restartCmd{})
	}
}

func (g *Registry) Purchase(roomID, playerID, item string) {
	if r := g.get(roomID); r != nil {
		r.post(purchaseCmd{id: playerID, item: item})
	}
}
