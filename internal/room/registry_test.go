package room_test

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"unoroom/internal/room"
)

func user(n int) room.User {
	return room.User{ID: fmt.Sprintf("u%d", n), Username: fmt.Sprintf("user%d", n)}
}

func TestCreateAndGet(t *testing.T) {
	reg := room.NewRegistry()
	code, err := reg.Create(user(1), 4, "easy", room.ModePrivate)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if len(code) != 6 {
		t.Errorf("code length: got %d, want 6", len(code))
	}
	for _, ch := range code {
		if !strings.ContainsRune("abcdefghijklmnopqrstuvwxyz0123456789", ch) {
			t.Errorf("code %q contains unexpected character %q", code, ch)
		}
	}

	r, ok := reg.Get(code)
	if !ok {
		t.Fatal("room not found after create")
	}
	if r.Mode != room.ModePrivate || r.MaxPlayers != 4 || r.Difficulty != "easy" {
		t.Errorf("room metadata: %+v", r)
	}
	members := r.Members()
	if len(members) != 1 || members[0].ID != "u1" {
		t.Errorf("host should be sole member, got %v", members)
	}
	if r.CreatedAt.IsZero() {
		t.Error("createdAt not set")
	}
}

func TestCodesAreUnique(t *testing.T) {
	reg := room.NewRegistry()
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		code, err := reg.Create(user(i), 4, "easy", room.ModeOnline)
		if err != nil {
			t.Fatalf("create %d: %v", i, err)
		}
		if seen[code] {
			t.Fatalf("duplicate code %s", code)
		}
		seen[code] = true
	}
}

func TestCodesCoverAlphabet(t *testing.T) {
	reg := room.NewRegistry()
	counts := make(map[rune]int)
	for i := 0; i < 500; i++ {
		code, err := reg.Create(user(i), 4, "easy", room.ModeOnline)
		if err != nil {
			t.Fatalf("create %d: %v", i, err)
		}
		for _, ch := range code {
			counts[ch]++
		}
	}
	// 3000 draws over 36 characters; a character that never shows up
	// means the generator is skewed
	for _, ch := range "abcdefghijklmnopqrstuvwxyz0123456789" {
		if counts[ch] == 0 {
			t.Errorf("character %q never appeared in %d codes", ch, 500)
		}
	}
}

func TestJoin(t *testing.T) {
	reg := room.NewRegistry()
	code, _ := reg.Create(user(1), 3, "easy", room.ModePrivate)

	if err := reg.Join("zzzzzz", user(2)); !errors.Is(err, room.ErrRoomNotFound) {
		t.Fatalf("unknown code: got %v, want ErrRoomNotFound", err)
	}
	if err := reg.Join(code, user(2)); err != nil {
		t.Fatalf("join: %v", err)
	}
	// joining again is a no-op success
	if err := reg.Join(code, user(2)); err != nil {
		t.Fatalf("rejoin: %v", err)
	}
	r, _ := reg.Get(code)
	if r.Len() != 2 {
		t.Fatalf("occupancy after rejoin: got %d, want 2", r.Len())
	}

	if err := reg.Join(code, user(3)); err != nil {
		t.Fatalf("join third: %v", err)
	}
	if err := reg.Join(code, user(4)); !errors.Is(err, room.ErrRoomFull) {
		t.Fatalf("join full room: got %v, want ErrRoomFull", err)
	}
}

func TestPlayerIDsOrder(t *testing.T) {
	reg := room.NewRegistry()
	code, _ := reg.Create(user(1), 4, "easy", room.ModeOnline)
	reg.Join(code, user(2))
	reg.Join(code, user(3))

	r, _ := reg.Get(code)
	ids := r.PlayerIDs()
	want := []string{"u1", "u2", "u3"}
	if len(ids) != len(want) {
		t.Fatalf("ids: got %v, want %v", ids, want)
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Fatalf("ids: got %v, want %v", ids, want)
		}
	}
}

func TestRemovePlayerCollectsEmptyRooms(t *testing.T) {
	reg := room.NewRegistry()
	code, _ := reg.Create(user(1), 4, "easy", room.ModePrivate)
	reg.Join(code, user(2))
	reg.Bind(code, "u1", "conn-1")
	reg.Bind(code, "u2", "conn-2")

	emptied := reg.RemovePlayer("conn-1")
	if len(emptied) != 0 {
		t.Fatalf("room emptied too early: %v", emptied)
	}
	r, ok := reg.Get(code)
	if !ok || r.Len() != 1 {
		t.Fatalf("room should survive with one member")
	}

	emptied = reg.RemovePlayer("conn-2")
	if len(emptied) != 1 || emptied[0] != code {
		t.Fatalf("emptied: got %v, want [%s]", emptied, code)
	}
	if _, ok := reg.Get(code); ok {
		t.Fatal("empty room should be deleted")
	}
}

func TestRemovePlayerUnknownHandle(t *testing.T) {
	reg := room.NewRegistry()
	code, _ := reg.Create(user(1), 4, "easy", room.ModePrivate)
	if emptied := reg.RemovePlayer("nope"); len(emptied) != 0 {
		t.Fatalf("emptied: got %v, want none", emptied)
	}
	if _, ok := reg.Get(code); !ok {
		t.Fatal("room should still exist")
	}
}

func TestList(t *testing.T) {
	reg := room.NewRegistry()
	if got := reg.List(); len(got) != 0 {
		t.Fatalf("empty registry list: got %v", got)
	}

	a, _ := reg.Create(user(1), 4, "easy", room.ModeOnline)
	b, _ := reg.Create(user(2), 2, "hard", room.ModePrivate)
	reg.Join(a, user(3))

	summaries := reg.List()
	if len(summaries) != 2 {
		t.Fatalf("list: got %d rooms, want 2", len(summaries))
	}
	byCode := make(map[string]room.Summary)
	for _, s := range summaries {
		byCode[s.Code] = s
	}
	if s := byCode[a]; s.Players != 2 || s.MaxPlayers != 4 || s.Mode != room.ModeOnline {
		t.Errorf("summary a: %+v", s)
	}
	if s := byCode[b]; s.Players != 1 || s.MaxPlayers != 2 || s.Mode != room.ModePrivate {
		t.Errorf("summary b: %+v", s)
	}
}
