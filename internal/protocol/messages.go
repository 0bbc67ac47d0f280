package protocol

import (
	"unoroom/internal/engine"
	"unoroom/internal/room"
)

// Message types: Client → Server
const (
	MsgJoinRoom  = "join_room"
	MsgStartGame = "start_game"
	MsgPlayCard  = "play_card"
	MsgDrawCard  = "draw_card"
	MsgGetState  = "get_state"
)

// Message types: Server → Client
const (
	MsgRoomUpdate = "room_update"
	MsgHandUpdate = "hand_update"
	MsgCardDrawn  = "card_drawn"
	MsgError      = "error"
)

// PlayCardMsg carries the full descriptor of the card being played; only
// its id is matched against the hand.
type PlayCardMsg struct {
	Card engine.Card `json:"card"`
}

// RoomUpdate is broadcast to every room member after a mutating intent.
type RoomUpdate struct {
	Code    string           `json:"code"`
	Players []RoomPlayer     `json:"players"`
	Game    *engine.Snapshot `json:"game,omitempty"`
}

type RoomPlayer struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// RoomPlayersFrom converts room members to their wire form.
func RoomPlayersFrom(members []room.Player) []RoomPlayer {
	out := make([]RoomPlayer, len(members))
	for i, m := range members {
		out[i] = RoomPlayer{ID: m.ID, Username: m.Username}
	}
	return out
}

// HandUpdate is sent to one player with their own cards.
type HandUpdate struct {
	GameID string        `json:"game_id"`
	Hand   []engine.Card `json:"hand"`
}

// CardDrawn is sent to the player who drew.
type CardDrawn struct {
	Card engine.Card `json:"card"`
}

// ErrorMsg reports a failed intent to the client that sent it.
type ErrorMsg struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}
