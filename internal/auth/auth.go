// Package auth issues and verifies guest identities. The core trusts the
// identity carried by a valid token as-is.
package auth

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrUsernameRequired = errors.New("username required")
	ErrInvalidToken     = errors.New("invalid token")
)

// User is an issued identity.
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

type claims struct {
	jwt.RegisteredClaims
	Username string `json:"username"`
}

// Issuer signs and verifies identity tokens with an HMAC secret.
type Issuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewIssuer(secret string, ttl time.Duration) *Issuer {
	return &Issuer{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Issue mints a fresh identity for the given username and returns it with
// its signed token.
func (i *Issuer) Issue(username string) (User, string, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return User{}, "", ErrUsernameRequired
	}

	u := User{ID: uuid.NewString(), Username: username}
	now := i.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
		},
		Username: u.Username,
	})
	signed, err := token.SignedString(i.secret)
	if err != nil {
		return User{}, "", err
	}
	return u, signed, nil
}

// Verify parses a token and returns the identity it carries.
func (i *Issuer) Verify(tokenString string) (User, error) {
	var c claims
	token, err := jwt.ParseWithClaims(tokenString, &c, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return i.secret, nil
	}, jwt.WithTimeFunc(func() time.Time { return i.now() }))
	if err != nil || !token.Valid || c.Subject == "" {
		return User{}, ErrInvalidToken
	}
	return User{ID: c.Subject, Username: c.Username}, nil
}
