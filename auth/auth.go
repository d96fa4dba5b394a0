// Package auth issues and checks the bearer tokens the API is guarded with.
package auth

import (
	"fmt"
	"slices"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"github.com/Frostyanand/SpeakEasy/errors"
	"github.com/Frostyanand/SpeakEasy/model"
)

// Claims is the token payload. The subject is the user id.
type Claims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// Identity is who a request acts as once its token has been accepted.
type Identity struct {
	SubjectID string
	Email     string
	Role      string
}

type Gate struct {
	key []byte
	ttl time.Duration
}

func NewGate(sign string, ttl time.Duration) *Gate {
	return &Gate{key: []byte(sign), ttl: ttl}
}

func (g *Gate) SigningKey() []byte {
	return g.key
}

func (g *Gate) Issue(user model.UserData) (string, error) {
	now := time.Now()
	claims := &Claims{
		Email: user.Email,
		Role:  user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.Id,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(g.ttl)),
		},
	}

	t, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(g.key)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return t, nil
}

func (g *Gate) Authenticate(token string) (Identity, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return g.key, nil
	})
	if err != nil {
		return Identity{}, errors.Unauthenticated("invalid or expired token")
	}

	return g.IdentityOf(claims)
}

// IdentityOf converts already-verified claims.
func (g *Gate) IdentityOf(claims *Claims) (Identity, error) {
	if claims == nil || claims.Subject == "" || !model.IsKnownRole(claims.Role) {
		return Identity{}, errors.Unauthenticated("invalid token claims")
	}
	return Identity{SubjectID: claims.Subject, Email: claims.Email, Role: claims.Role}, nil
}

func (g *Gate) Authorize(role string, allowed ...string) bool {
	return slices.Contains(allowed, role)
}
