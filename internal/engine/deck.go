package engine

import "math/rand/v2"

// DeckSize is the number of cards in a freshly built deck.
const DeckSize = 108

// Deck is a stack of cards. The top of the deck is the end of the slice.
type Deck struct {
	cards []Card
}

// NewDeck builds a shuffled deck with the canonical composition: per color
// one 0, two each of 1-9 and two each of skip/reverse/draw2, plus four wild
// and four wild4 cards.
func NewDeck() *Deck {
	cards := make([]Card, 0, DeckSize)
	for _, color := range Colors() {
		cards = append(cards, newNumberCard(color, 0))
		for v := 1; v <= 9; v++ {
			cards = append(cards, newNumberCard(color, v))
			cards = append(cards, newNumberCard(color, v))
		}
		for i := 0; i < 2; i++ {
			cards = append(cards, newActionCard(color, ActionSkip))
			cards = append(cards, newActionCard(color, ActionReverse))
			cards = append(cards, newActionCard(color, ActionDrawTwo))
		}
	}
	for i := 0; i < 4; i++ {
		cards = append(cards, newWildCard(ActionWild))
		cards = append(cards, newWildCard(ActionWildDrawFour))
	}
	d := &Deck{cards: cards}
	d.Shuffle()
	return d
}

// Reshuffle builds a shuffled deck from the given cards. Used to replenish
// the draw stack from the discard pile mid-game.
func Reshuffle(cards []Card) *Deck {
	d := &Deck{cards: make([]Card, len(cards))}
	copy(d.cards, cards)
	d.Shuffle()
	return d
}

func (d *Deck) Shuffle() {
	rand.Shuffle(len(d.cards), func(i, j int) {
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	})
}

// Pop removes and returns the top card. ok is false when the deck is empty.
func (d *Deck) Pop() (Card, bool) {
	if len(d.cards) == 0 {
		return Card{}, false
	}
	c := d.cards[len(d.cards)-1]
	d.cards = d.cards[:len(d.cards)-1]
	return c, true
}

// PushBottom slides a card under the deck.
func (d *Deck) PushBottom(c Card) {
	d.cards = append([]Card{c}, d.cards...)
}

// Len returns the number of cards remaining.
func (d *Deck) Len() int {
	return len(d.cards)
}

// Cards returns a copy of the deck's contents, bottom first.
func (d *Deck) Cards() []Card {
	out := make([]Card, len(d.cards))
	copy(out, d.cards)
	return out
}
