package engine

// Snapshot is the broadcastable projection of a game. It carries hand counts
// only; no hand contents cross this boundary.
type Snapshot struct {
	ID            string         `json:"id"`
	Players       []string       `json:"players"`
	DiscardTop    Card           `json:"discard_top"`
	HandCounts    map[string]int `json:"hand_counts"`
	Winner        string         `json:"winner,omitempty"`
	CurrentPlayer string         `json:"current_player"`
	Direction     int            `json:"direction"`
}

// PlayerSnapshot extends Snapshot with the viewing player's own hand.
type PlayerSnapshot struct {
	Snapshot
	Hand []Card `json:"hand"`
}

// Snapshot projects the public view of the game. Safe to call in any state.
func (g *Game) Snapshot() Snapshot {
	counts := make(map[string]int, len(g.Hands))
	for pid, hand := range g.Hands {
		counts[pid] = len(hand)
	}
	return Snapshot{
		ID:            g.ID,
		Players:       append([]string(nil), g.Players...),
		DiscardTop:    g.Top(),
		HandCounts:    counts,
		Winner:        g.Winner,
		CurrentPlayer: g.CurrentPlayer(),
		Direction:     g.Direction,
	}
}

// SnapshotFor projects the game as seen by one player: the public view plus
// that player's cards. The hand is never nil, so an emptied hand still
// serializes as an empty list.
func (g *Game) SnapshotFor(playerID string) PlayerSnapshot {
	hand := make([]Card, 0, len(g.Hands[playerID]))
	hand = append(hand, g.Hands[playerID]...)
	return PlayerSnapshot{
		Snapshot: g.Snapshot(),
		Hand:     hand,
	}
}
