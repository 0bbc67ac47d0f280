package room

import (
	"crypto/rand"
	"errors"
	"sort"
	"sync"
	"time"
)

var (
	ErrRoomNotFound = errors.New("room not found")
	ErrRoomFull     = errors.New("room full")

	// ErrCodeSpaceExhausted means code generation kept colliding. With a
	// 36^6 code space this is practically unreachable.
	ErrCodeSpaceExhausted = errors.New("room code space exhausted")
)

const (
	codeAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"
	codeLength   = 6
	codeAttempts = 64

	// largest multiple of len(codeAlphabet) below 256; bytes at or above
	// it are rejected to keep the alphabet uniform
	codeByteMax = 252
)

// Registry owns every room in the process. Construct one per server (or per
// test); there is no package-level instance.
type Registry struct {
	mu    sync.Mutex
	rooms map[string]*Room
}

func NewRegistry() *Registry {
	return &Registry{rooms: make(map[string]*Room)}
}

// Create registers a room with the host as its first member and returns the
// room code.
func (reg *Registry) Create(host User, maxPlayers int, difficulty string, mode Mode) (string, error) {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	code, err := reg.newCode()
	if err != nil {
		return "", err
	}
	r := &Room{
		Code:       code,
		Mode:       mode,
		Difficulty: difficulty,
		MaxPlayers: maxPlayers,
		Players:    []*Player{{ID: host.ID, Username: host.Username}},
		CreatedAt:  time.Now(),
	}
	reg.rooms[code] = r
	return code, nil
}

// Get returns the room with the given code.
func (reg *Registry) Get(code string) (*Room, bool) {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	r, ok := reg.rooms[code]
	return r, ok
}

// Join adds a user to the room with the given code.
func (reg *Registry) Join(code string, u User) error {
	r, ok := reg.Get(code)
	if !ok {
		return ErrRoomNotFound
	}
	return r.Join(u)
}

// Bind attaches a transport handle to a room member.
func (reg *Registry) Bind(code, playerID, handle string) {
	if r, ok := reg.Get(code); ok {
		r.Bind(playerID, handle)
	}
}

// RemovePlayer drops every player bound to the given transport handle from
// whichever room holds it, deleting rooms left with no members. It returns
// the codes of deleted rooms. This is the only way rooms go away.
func (reg *Registry) RemovePlayer(handle string) []string {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	var emptied []string
	for code, r := range reg.rooms {
		if r.removeByHandle(handle) == 0 {
			delete(reg.rooms, code)
			emptied = append(emptied, code)
		}
	}
	return emptied
}

// List returns a summary of every room, ordered by code.
func (reg *Registry) List() []Summary {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	out := make([]Summary, 0, len(reg.rooms))
	for _, r := range reg.rooms {
		out = append(out, r.Summary())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out
}

// newCode generates an unused room code. Caller holds reg.mu.
func (reg *Registry) newCode() (string, error) {
	for attempt := 0; attempt < codeAttempts; attempt++ {
		code, err := randomCode()
		if err != nil {
			return "", err
		}
		if _, taken := reg.rooms[code]; !taken {
			return code, nil
		}
	}
	return "", ErrCodeSpaceExhausted
}

// randomCode draws a uniformly random code from the alphabet.
func randomCode() (string, error) {
	code := make([]byte, 0, codeLength)
	buf := make([]byte, codeLength)
	for len(code) < codeLength {
		if _, err := rand.Read(buf); err != nil {
			return "", err
		}
		for _, b := range buf {
			if b >= codeByteMax || len(code) == codeLength {
				continue
			}
			code = append(code, codeAlphabet[int(b)%len(codeAlphabet)])
		}
	}
	return string(code), nil
}
