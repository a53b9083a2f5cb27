package identity

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt"
)

func TestVerifyRoundTrip(t *testing.T) {
	p := NewJWT("secret")
	token, err := p.Issue(42, "player", time.Hour)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	id, err := p.Verify(token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if id.ID != 42 || id.Nickname != "player" {
		t.Fatalf("identity = %+v", id)
	}
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	token, err := NewJWT("secret-a").Issue(1, "x", time.Hour)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := NewJWT("secret-b").Verify(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("err = %v, want ErrInvalidToken", err)
	}
}

func TestVerifyRejectsExpired(t *testing.T) {
	p := NewJWT("secret")
	token, err := p.Issue(1, "x", -time.Minute)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := p.Verify(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("err = %v, want ErrInvalidToken", err)
	}
}

func TestVerifyRejectsGarbage(t *testing.T) {
	if _, err := NewJWT("secret").Verify("not.a.token"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("err = %v, want ErrInvalidToken", err)
	}
}

func TestVerifyRejectsNonNumericSubject(t *testing.T) {
	p := NewJWT("secret")
	claims := Claims{
		Nickname: "x",
		StandardClaims: jwt.StandardClaims{
			Subject:   "not-a-number",
			ExpiresAt: time.Now().Add(time.Hour).Unix(),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := p.Verify(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("err = %v, want ErrInvalidToken", err)
	}
}
