package engine

import "github.com/google/uuid"

// Kind classifies a card.
type Kind string

const (
	KindNumber Kind = "number"
	KindAction Kind = "action"
	KindWild   Kind = "wild"
)

// Color is a card's color. Wild cards have no color.
type Color string

const (
	ColorNone   Color = ""
	ColorRed    Color = "red"
	ColorYellow Color = "yellow"
	ColorGreen  Color = "green"
	ColorBlue   Color = "blue"
)

// Colors returns the four playable colors in canonical order.
func Colors() []Color {
	return []Color{ColorRed, ColorYellow, ColorGreen, ColorBlue}
}

// Action identifies an action or wild card's effect.
type Action string

const (
	ActionNone         Action = ""
	ActionSkip         Action = "skip"
	ActionReverse      Action = "reverse"
	ActionDrawTwo      Action = "draw2"
	ActionWild         Action = "wild"
	ActionWildDrawFour Action = "wild4"
)

// Card is an immutable card value. Cards are never modified after creation,
// only moved between the deck, hands and the discard pile.
type Card struct {
	Kind   Kind   `json:"type"`
	Color  Color  `json:"color,omitempty"`
	Value  int    `json:"value"` // meaningful for number cards only
	Action Action `json:"action,omitempty"`
	ID     string `json:"id"`
}

func newNumberCard(color Color, value int) Card {
	return Card{Kind: KindNumber, Color: color, Value: value, ID: uuid.NewString()}
}

func newActionCard(color Color, action Action) Card {
	return Card{Kind: KindAction, Color: color, Action: action, ID: uuid.NewString()}
}

func newWildCard(action Action) Card {
	return Card{Kind: KindWild, Action: action, ID: uuid.NewString()}
}

// Matches reports whether card may legally be played on top.
func Matches(card, top Card) bool {
	if card.Kind == KindWild {
		return true
	}
	if card.Color != ColorNone && top.Color != ColorNone && card.Color == top.Color {
		return true
	}
	if card.Kind == KindNumber && top.Kind == KindNumber && card.Value == top.Value {
		return true
	}
	if card.Kind == KindAction && top.Kind == KindAction && card.Action == top.Action {
		return true
	}
	return false
}
