package game

import "time"

// QTEOutcome is the terminal result of a fight-back session.
type QTEOutcome struct {
	WinnerID       string
	LoserID        string
	WinnerProgress int
	LoserProgress  int
	Timeout        bool
}

// QTESession is a key-sequence race between the roster players. Every player
// chases the same sequence; each advances an independent index on correct
// input, so progress counters never interfere.
type QTESession struct {
	Sequence  []string
	Duration  time.Duration
	StartedAt time.Time

	order    []string
	progress map[string]int
}

// NewQTESession draws a fresh sequence from the alphabet and zeroes every
// participant's progress.
func NewQTESession(dice Dice, players []string, startedAt time.Time) *QTESession {
	seq := make([]string, QTESequenceLength)
	for i := range seq {
		seq[i] = QTEAlphabet[dice.Intn(len(QTEAlphabet))]
	}
	progress := make(map[string]int, len(players))
	for _, id := range players {
		progress[id] = 0
	}
	return &QTESession{
		Sequence:  seq,
		Duration:  QTEDuration,
		StartedAt: startedAt,
		order:     append([]string(nil), players...),
		progress:  progress,
	}
}

// Submit advances the player's index when the symbol matches the expected
// element at that player's own position. Incorrect or unknown input is
// silently ignored. done reports whether this submission completed the
// sequence for the player.
func (q *QTESession) Submit(playerID, symbol string) (advanced, done bool) {
	idx, ok := q.progress[playerID]
	if !ok || idx >= len(q.Sequence) {
		return false, false
	}
	if q.Sequence[idx] != symbol {
		return false, false
	}
	q.progress[playerID] = idx + 1
	return true, idx+1 == len(q.Sequence)
}

// Progress returns the number of correct symbols the player has entered.
func (q *QTESession) Progress(playerID string) int {
	return q.progress[playerID]
}

// WinOutcome builds the result for a player who completed the sequence.
func (q *QTESession) WinOutcome(winnerID string) QTEOutcome {
	out := QTEOutcome{WinnerID: winnerID, WinnerProgress: q.progress[winnerID]}
	for _, id := range q.order {
		if id == winnerID {
			continue
		}
		out.LoserID = id
		out.LoserProgress = q.progress[id]
	}
	return out
}

// TimeoutOutcome picks the greatest progress as winner and the least as
// loser. Ties fall back to roster order: the earlier joiner wins and the
// later one loses, which keeps the pair coherent for two players.
func (q *QTESession) TimeoutOutcome() QTEOutcome {
	out := QTEOutcome{Timeout: true, WinnerProgress: -1}
	for _, id := range q.order {
		if p := q.progress[id]; p > out.WinnerProgress {
			out.WinnerID, out.WinnerProgress = id, p
		}
	}
	out.LoserProgress = -1
	for _, id := range q.order {
		if id == out.WinnerID {
			continue
		}
		if p := q.progress[id]; out.LoserProgress == -1 || p <= out.LoserProgress {
			out.LoserID, out.LoserProgress = id, p
		}
	}
	if out.LoserProgress == -1 {
		out.LoserProgress = 0
	}
	return out
}
