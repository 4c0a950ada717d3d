// Package identity resolves the caller of a request from a signed JWT and
// carries it on the request context.
package identity

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/srgjo27/parking_booking/internal/core/domain"
)

var ErrTokenInvalid = fmt.Errorf("%w: invalid token", domain.ErrUnauthenticated)

type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Tokens issues and validates HS256 access tokens. The subject is the user id.
type Tokens struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokens(secret string, ttl time.Duration) *Tokens {
	return &Tokens{secret: []byte(secret), ttl: ttl, now: time.Now}
}

func (t *Tokens) Issue(actor domain.Actor) (string, error) {
	now := t.now()
	claims := Claims{
		Role: string(actor.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   actor.UserID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(t.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

func (t *Tokens) Parse(tokenString string) (domain.Actor, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return t.secret, nil
	}, jwt.WithTimeFunc(t.now))
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return domain.Actor{}, fmt.Errorf("%w: token expired", ErrTokenInvalid)
		case errors.Is(err, jwt.ErrTokenMalformed):
			return domain.Actor{}, fmt.Errorf("%w: malformed token", ErrTokenInvalid)
		}
		return domain.Actor{}, fmt.Errorf("%w: %v", ErrTokenInvalid, err)
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return domain.Actor{}, fmt.Errorf("%w: subject is not a user id", ErrTokenInvalid)
	}

	role := domain.Role(claims.Role)
	if role != domain.RoleAdmin && role != domain.RoleDriver {
		return domain.Actor{}, fmt.Errorf("%w: unknown role %q", ErrTokenInvalid, claims.Role)
	}

	return domain.Actor{UserID: userID, Role: role}, nil
}

type actorKey struct{}

func WithActor(ctx context.Context, actor domain.Actor) context.Context {
	return context.WithValue(ctx, actorKey{}, actor)
}

func FromContext(ctx context.Context) (domain.Actor, bool) {
	actor, ok := ctx.Value(actorKey{}).(domain.Actor)
	return actor, ok
}

// ContextProvider implements ports.IdentityProvider over the request context.
type ContextProvider struct{}

func (ContextProvider) Current(ctx context.Context) (domain.Actor, error) {
	actor, ok := FromContext(ctx)
	if !ok || actor.UserID == uuid.Nil {
		return domain.Actor{}, domain.ErrUnauthenticated
	}
	return actor, nil
}
