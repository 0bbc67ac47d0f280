package room

import (
	"sync"
	"time"
)

// Mode describes how a room was opened.
type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
	ModePrivate Mode = "private"
)

// User is an authenticated identity, issued by the auth layer.
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// Player is a room member. Handle is the opaque transport handle of the
// member's connection, empty until one attaches.
type Player struct {
	ID       string
	Username string
	Handle   string
}

// Room groups players around one game session. The first player is the host.
type Room struct {
	mu         sync.Mutex
	Code       string
	Mode       Mode
	Difficulty string
	MaxPlayers int
	Players    []*Player
	CreatedAt  time.Time
}

// Join adds a user to the room. Joining twice is a no-op success.
func (r *Room) Join(u User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, p := range r.Players {
		if p.ID == u.ID {
			return nil
		}
	}
	if len(r.Players) >= r.MaxPlayers {
		return ErrRoomFull
	}
	r.Players = append(r.Players, &Player{ID: u.ID, Username: u.Username})
	return nil
}

// Bind attaches a transport handle to a member.
func (r *Room) Bind(playerID, handle string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, p := range r.Players {
		if p.ID == playerID {
			p.Handle = handle
			return
		}
	}
}

// removeByHandle drops every member bound to the given handle and returns
// the remaining member count.
func (r *Room) removeByHandle(handle string) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	kept := r.Players[:0]
	for _, p := range r.Players {
		if p.Handle != handle {
			kept = append(kept, p)
		}
	}
	r.Players = kept
	return len(r.Players)
}

// PlayerIDs returns the members' ids in seating order.
func (r *Room) PlayerIDs() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	ids := make([]string, len(r.Players))
	for i, p := range r.Players {
		ids[i] = p.ID
	}
	return ids
}

// Members returns a copy of the member list.
func (r *Room) Members() []Player {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]Player, len(r.Players))
	for i, p := range r.Players {
		out[i] = *p
	}
	return out
}

// Len returns the current occupancy.
func (r *Room) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.Players)
}

// Summary is the read-only projection used by room listings.
type Summary struct {
	Code       string `json:"code"`
	Mode       Mode   `json:"mode"`
	Players    int    `json:"players"`
	MaxPlayers int    `json:"max_players"`
}

func (r *Room) Summary() Summary {
	r.mu.Lock()
	defer r.mu.Unlock()
	return Summary{
		Code:       r.Code,
		Mode:       r.Mode,
		Players:    len(r.Players),
		MaxPlayers: r.MaxPlayers,
	}
}
