// Package identity resolves a connection to an authenticated user before any
// room operation is accepted. The access token is an HMAC-signed JWT issued
// by the login service; this side only verifies.
package identity

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt"
)

var ErrInvalidToken = errors.New("invalid_token")

// Identity is the authenticated participant behind a connection.
type Identity struct {
	ID       int64
	Nickname string
}

// Provider verifies an access token. The transport layer depends on this
// interface so tests can stub authentication away.
type Provider interface {
	Verify(token string) (Identity, error)
}

type Claims struct {
	Nickname string `json:"nickname"`
	jwt.StandardClaims
}

// JWTProvider verifies HS256 access tokens against a shared secret.
type JWTProvider struct {
	secret []byte
}

func NewJWT(secret string) *JWTProvider {
	return &JWTProvider{secret: []byte(secret)}
}

func (p *JWTProvider) Verify(token string) (Identity, error) {
	parsed, err := jwt.ParseWithClaims(token, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return p.secret, nil
	})
	if err != nil || !parsed.Valid {
		return Identity{}, ErrInvalidToken
	}
	claims, ok := parsed.Claims.(*Claims)
	if !ok {
		return Identity{}, ErrInvalidToken
	}
	id, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return Identity{}, ErrInvalidToken
	}
	return Identity{ID: id, Nickname: claims.Nickname}, nil
}

// Issue signs an access token; the dev endpoints use it so a local client
// can talk to the server without the real login service.
func (p *JWTProvider) Issue(id int64, nickname string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		Nickname: nickname,
		StandardClaims: jwt.StandardClaims{
			Subject:   strconv.FormatInt(id, 10),
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(ttl).Unix(),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(p.secret)
}
