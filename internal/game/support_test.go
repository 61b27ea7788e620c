package game

import (
	"context"
	"sync"
	"testing"
	"time"

	"tagarena/internal/model"
)

// fixedDice replays scripted rolls. With no script it always returns 0.9
// from Float64 (above the fight-back chance, so tags resolve directly) and
// 0 from Intn.
type fixedDice struct {
	floats []float64
	ints   []int
	fi, ii int
}

func (d *fixedDice) Float64() float64 {
	if len(d.floats) == 0 {
		return 0.9
	}
	v := d.floats[d.fi%len(d.floats)]
	d.fi++
	return v
}

func (d *fixedDice) Intn(n int) int {
	if len(d.ints) == 0 {
		return 0
	}
	v := d.ints[d.ii%len(d.ints)]
	d.ii++
	return v % n
}

type loggedEvent struct {
	Room    string
	Player  string
	Event   string
	Payload any
}

// eventLog records everything a room broadcasts. Safe for use from a live
// dispatch goroutine.
type eventLog struct {
	mu     sync.Mutex
	events []loggedEvent
}

func (l *eventLog) ToRoom(roomID, event string, payload any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events = append(l.events, loggedEvent{Room: roomID, Event: event, Payload: payload})
}

func (l *eventLog) ToPlayer(roomID, playerID, event string, payload any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events = append(l.events, loggedEvent{Room: roomID, Player: playerID, Event: event, Payload: payload})
}

func (l *eventLog) count(event string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	n := 0
	for _, e := range l.events {
		if e.Event == event {
			n++
		}
	}
	return n
}

// lastPayload returns the payload of the most recent event with the given
// name, failing the test when none was recorded or the type does not match.
func lastPayload[T any](t *testing.T, l *eventLog, event string) T {
	t.Helper()
	l.mu.Lock()
	defer l.mu.Unlock()
	for i := len(l.events) - 1; i >= 0; i-- {
		if l.events[i].Event != event {
			continue
		}
		p, ok := l.events[i].Payload.(T)
		if !ok {
			t.Fatalf("event %s carries %T, want %T", event, l.events[i].Payload, p)
		}
		return p
	}
	t.Fatalf("no %s event recorded", event)
	var zero T
	return zero
}

type timerEntry struct {
	d time.Duration
	f func()
}

// timerLog captures scheduled callbacks so tests fire expiries explicitly
// instead of sleeping.
type timerLog struct {
	entries []timerEntry
}

func (l *timerLog) Schedule(d time.Duration, f func()) {
	l.entries = append(l.entries, timerEntry{d: d, f: f})
}

func (l *timerLog) fire(i int) {
	l.entries[i].f()
}

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time { return c.t }

func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

// fakeStore is an in-memory LedgerStore recording every save.
type fakeStore struct {
	mu      sync.Mutex
	records map[string]*model.Account
	saves   int
}

func (s *fakeStore) Load(_ context.Context, account string) (*model.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if rec, ok := s.records[account]; ok {
		cp := *rec
		cp.Purchased = append([]string(nil), rec.Purchased...)
		return &cp, nil
	}
	return nil, nil
}

func (s *fakeStore) Save(_ context.Context, acct *model.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.records == nil {
		s.records = make(map[string]*model.Account)
	}
	cp := *acct
	cp.Purchased = append([]string(nil), acct.Purchased...)
	s.records[acct.Name] = &cp
	s.saves++
	return nil
}

func (s *fakeStore) record(name string) *model.Account {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.records[name]
}

func (s *fakeStore) saveCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saves
}

// fixture drives a room synchronously: commands are dispatched inline, the
// clock and every timer are under test control.
type fixture struct {
	t      *testing.T
	room   *Room
	log    *eventLog
	dice   *fixedDice
	clock  *fakeClock
	timers *timerLog
	store  *fakeStore
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		t:      t,
		log:    &eventLog{},
		dice:   &fixedDice{},
		clock:  &fakeClock{t: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)},
		timers: &timerLog{},
		store:  &fakeStore{},
	}
	f.room = newRoom("arena-1", f.dice, f.log, f.store, nil)
	f.room.now = f.clock.Now
	f.room.after = f.timers.Schedule
	t.Cleanup(f.room.stopTimers)
	return f
}

func (f *fixture) join(id, account, name string) {
	f.room.dispatch(joinCmd{id: id, account: account, name: name})
}

// joinPair seats Alice as the runner and Bob as the chaser.
func (f *fixture) joinPair() {
	f.join("p1", "alice", "Alice")
	f.join("p2", "bob", "Bob")
}

func (f *fixture) start() {
	f.room.dispatch(startCmd{})
}

func (f *fixture) move(id string, x, y float64) {
	f.room.dispatch(moveCmd{id: id, x: x, y: y})
}

func (f *fixture) player(id string) *Player {
	f.t.Helper()
	p := f.room.players[id]
	if p == nil {
		f.t.Fatalf("player %s not in room", id)
	}
	return p
}

// drain dispatches everything a fired timer posted onto the inbox.
func (f *fixture) drain() {
	for {
		select {
		case cmd := <-f.room.Inbox:
			f.room.dispatch(cmd)
		default:
			return
		}
	}
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met before deadline")
}
