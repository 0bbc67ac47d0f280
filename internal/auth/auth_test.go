package auth_test

import (
	"errors"
	"testing"
	"time"

	"unoroom/internal/auth"
)

func TestIssueAndVerify(t *testing.T) {
	issuer := auth.NewIssuer("test-secret", time.Hour)
	user, token, err := issuer.Issue("alice")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if user.ID == "" || user.Username != "alice" {
		t.Fatalf("issued user: %+v", user)
	}

	got, err := issuer.Verify(token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if got != user {
		t.Fatalf("round trip: got %+v, want %+v", got, user)
	}
}

func TestIssueTrimsUsername(t *testing.T) {
	issuer := auth.NewIssuer("test-secret", time.Hour)
	user, _, err := issuer.Issue("  bob  ")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if user.Username != "bob" {
		t.Fatalf("username: got %q, want bob", user.Username)
	}
}

func TestIssueBlankUsername(t *testing.T) {
	issuer := auth.NewIssuer("test-secret", time.Hour)
	for _, name := range []string{"", "   "} {
		if _, _, err := issuer.Issue(name); !errors.Is(err, auth.ErrUsernameRequired) {
			t.Errorf("username %q: got %v, want ErrUsernameRequired", name, err)
		}
	}
}

func TestVerifyRejectsGarbage(t *testing.T) {
	issuer := auth.NewIssuer("test-secret", time.Hour)
	for _, token := range []string{"", "not-a-token", "a.b.c"} {
		if _, err := issuer.Verify(token); !errors.Is(err, auth.ErrInvalidToken) {
			t.Errorf("token %q: got %v, want ErrInvalidToken", token, err)
		}
	}
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	issuer := auth.NewIssuer("test-secret", time.Hour)
	_, token, err := issuer.Issue("alice")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	other := auth.NewIssuer("other-secret", time.Hour)
	if _, err := other.Verify(token); !errors.Is(err, auth.ErrInvalidToken) {
		t.Fatalf("got %v, want ErrInvalidToken", err)
	}
}

func TestVerifyRejectsExpired(t *testing.T) {
	issuer := auth.NewIssuer("test-secret", -time.Minute)
	_, token, err := issuer.Issue("alice")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := issuer.Verify(token); !errors.Is(err, auth.ErrInvalidToken) {
		t.Fatalf("got %v, want ErrInvalidToken", err)
	}
}
