package engine

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrGameNotStarted = errors.New("game not started")
	ErrNotYourTurn    = errors.New("not your turn")
	ErrCardNotInHand  = errors.New("card not found in hand")
	ErrInvalidPlay    = errors.New("invalid play")
	ErrNoPlayers      = errors.New("no players to deal to")
	ErrDeckExhausted  = errors.New("no cards left to draw")
)

// Status tracks the game's lifecycle.
type Status int

const (
	StatusDealt Status = iota
	StatusInProgress
	StatusFinished
)

var statusNames = map[Status]string{
	StatusDealt:      "Dealt",
	StatusInProgress: "InProgress",
	StatusFinished:   "Finished",
}

func (s Status) String() string {
	if n, ok := statusNames[s]; ok {
		return n
	}
	return "Unknown"
}

// Rules holds the table's house rules.
type Rules struct {
	HandSize     int
	DrawEndsTurn bool // when set, Draw advances the turn pointer
}

func DefaultRules() Rules {
	return Rules{HandSize: 7}
}

// Game holds one table's full state. Hands and the deck never leave the
// engine except through Snapshot/SnapshotFor.
type Game struct {
	ID           string            `json:"id"`
	Deck         *Deck             `json:"-"`
	Discard      []Card            `json:"-"` // top is the last element
	Hands        map[string][]Card `json:"-"`
	Players      []string          `json:"players"` // turn order, fixed at deal time
	CurrentIndex int               `json:"current_index"`
	Direction    int               `json:"direction"` // +1 or -1
	LastPlayed   *Card             `json:"-"`
	Winner       string            `json:"winner,omitempty"`
	Status       Status            `json:"status"`
	Rules        Rules             `json:"-"`
	StartedAt    time.Time         `json:"started_at"`
}

// NewGame builds a deck, deals a hand to each player in order and seeds the
// discard pile. The opening top may not be a wild4; rejected cards go back
// under the deck so no card is lost.
func NewGame(playerIDs []string, rules Rules) (*Game, error) {
	if len(playerIDs) == 0 {
		return nil, ErrNoPlayers
	}
	if rules.HandSize <= 0 {
		rules.HandSize = DefaultRules().HandSize
	}

	g := &Game{
		ID:        uuid.NewString(),
		Deck:      NewDeck(),
		Hands:     make(map[string][]Card, len(playerIDs)),
		Players:   append([]string(nil), playerIDs...),
		Direction: 1,
		Rules:     rules,
		StartedAt: time.Now(),
	}

	for _, pid := range g.Players {
		hand := make([]Card, 0, rules.HandSize)
		for i := 0; i < rules.HandSize; i++ {
			c, ok := g.Deck.Pop()
			if !ok {
				return nil, ErrDeckExhausted
			}
			hand = append(hand, c)
		}
		g.Hands[pid] = hand
	}

	for {
		top, ok := g.Deck.Pop()
		if !ok {
			return nil, ErrDeckExhausted
		}
		if top.Kind == KindWild && top.Action == ActionWildDrawFour {
			g.Deck.PushBottom(top)
			continue
		}
		g.Discard = []Card{top}
		break
	}

	return g, nil
}

// Play validates and applies one card play. Validation failures leave the
// game untouched.
func (g *Game) Play(playerID, cardID string) error {
	if g.Status == StatusFinished {
		return ErrGameNotStarted
	}
	if g.Players[g.CurrentIndex] != playerID {
		return ErrNotYourTurn
	}

	hand := g.Hands[playerID]
	idx := -1
	for i, c := range hand {
		if c.ID == cardID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return ErrCardNotInHand
	}

	card := hand[idx]
	if !Matches(card, g.Top()) {
		return ErrInvalidPlay
	}

	g.Hands[playerID] = append(hand[:idx], hand[idx+1:]...)
	g.Discard = append(g.Discard, card)
	g.LastPlayed = &card
	g.Status = StatusInProgress

	advanced := g.applyEffect(card)

	if len(g.Hands[playerID]) == 0 {
		g.Winner = playerID
		g.Status = StatusFinished
		return nil
	}
	if !advanced {
		g.advance()
	}
	return nil
}

// applyEffect applies a played card's side effects. It reports whether the
// turn pointer has already been moved past the next player.
func (g *Game) applyEffect(card Card) bool {
	switch {
	case card.Kind == KindAction && card.Action == ActionSkip:
		g.advance() // skip the next player; normal advance follows
		return false
	case card.Kind == KindAction && card.Action == ActionReverse:
		g.Direction = -g.Direction
		return false
	case card.Kind == KindAction && card.Action == ActionDrawTwo:
		g.forceDraw(2)
		return true
	case card.Kind == KindWild && card.Action == ActionWildDrawFour:
		g.forceDraw(4)
		return true
	default:
		return false
	}
}

// forceDraw deals n cards to the next player and moves the turn pointer to
// the player after them.
func (g *Game) forceDraw(n int) {
	next := g.nextIndex()
	pid := g.Players[next]
	for i := 0; i < n; i++ {
		c, ok := g.drawOne()
		if !ok {
			break
		}
		g.Hands[pid] = append(g.Hands[pid], c)
	}
	g.CurrentIndex = (next + g.Direction + len(g.Players)) % len(g.Players)
}

// Draw moves one card from the deck into the player's hand, replenishing
// the deck from the discard pile first if it ran dry. Whether the turn ends
// afterwards is a house rule.
func (g *Game) Draw(playerID string) (Card, error) {
	if g.Status == StatusFinished {
		return Card{}, ErrGameNotStarted
	}
	if g.Players[g.CurrentIndex] != playerID {
		return Card{}, ErrNotYourTurn
	}

	c, ok := g.drawOne()
	if !ok {
		return Card{}, ErrDeckExhausted
	}
	g.Hands[playerID] = append(g.Hands[playerID], c)
	g.Status = StatusInProgress
	if g.Rules.DrawEndsTurn {
		g.advance()
	}
	return c, nil
}

// drawOne pops the top of the deck, reshuffling the discard pile (minus its
// top card, which stays as the match target) when the deck is empty.
func (g *Game) drawOne() (Card, bool) {
	if g.Deck.Len() == 0 {
		if len(g.Discard) < 2 {
			return Card{}, false
		}
		top := g.Discard[len(g.Discard)-1]
		g.Deck = Reshuffle(g.Discard[:len(g.Discard)-1])
		g.Discard = []Card{top}
	}
	return g.Deck.Pop()
}

// Top returns the discard pile's top card, the current match target.
func (g *Game) Top() Card {
	return g.Discard[len(g.Discard)-1]
}

// CurrentPlayer returns the id of the player whose turn it is.
func (g *Game) CurrentPlayer() string {
	return g.Players[g.CurrentIndex]
}

func (g *Game) nextIndex() int {
	return (g.CurrentIndex + g.Direction + len(g.Players)) % len(g.Players)
}

func (g *Game) advance() {
	g.CurrentIndex = g.nextIndex()
}
