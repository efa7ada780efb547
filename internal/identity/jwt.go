package identity

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"sellerhub/internal/domain"
)

// JWTVerifier accepts HS256 tokens signed with a shared secret. It stands in for the
// hosted identity provider in development and tests.
type JWTVerifier struct {
	secret []byte
	now    func() time.Time
}

type Claims struct {
	Email string `json:"email,omitempty"`
	Name  string `json:"name,omitempty"`
	jwt.RegisteredClaims
}

func NewJWTVerifier(secret string) *JWTVerifier {
	return &JWTVerifier{secret: []byte(secret), now: time.Now}
}

// Mint issues a token for p that expires after ttl.
func (v *JWTVerifier) Mint(p domain.Principal, ttl time.Duration) (string, error) {
	now := v.now()
	claims := Claims{
		Email: p.Email,
		Name:  p.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   p.UID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(v.secret)
}

func (v *JWTVerifier) Verify(_ context.Context, token string) (domain.Principal, error) {
	if token == "" {
		return domain.Principal{}, ErrMissingToken
	}
	var claims Claims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return v.secret, nil
	})
	if err != nil {
		return domain.Principal{}, errors.Join(ErrInvalidToken, err)
	}
	if !parsed.Valid || claims.Subject == "" {
		return domain.Principal{}, ErrInvalidToken
	}
	return domain.Principal{UID: claims.Subject, Email: claims.Email, Name: claims.Name}, nil
}
