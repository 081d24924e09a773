package utils

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"langbridge/backend/config"
)

// Identity is what the external identity provider vouches for: an opaque
// subject identifier plus whatever claims came with the token. It carries no
// local account data.
type Identity struct {
	Subject string
	Email   string
	Claims  map[string]interface{}
}

// TokenVerifier maps a bearer token to a verified identity. Verification is
// read-only; it never touches local state.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (*Identity, error)
}

// JWTVerifier verifies HS256 tokens whose subject claim is the provider's
// user id.
type JWTVerifier struct {
	Secret []byte
}

func NewJWTVerifier(cfg *config.Config) *JWTVerifier {
	return &JWTVerifier{Secret: []byte(cfg.JWTSecret)}
}

func (v *JWTVerifier) Verify(_ context.Context, tokenString string) (*Identity, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return v.Secret, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token claims")
	}

	subject, _ := claims["sub"].(string)
	if subject == "" {
		return nil, errors.New("token has no subject")
	}
	email, _ := claims["email"].(string)

	return &Identity{Subject: subject, Email: email, Claims: claims}, nil
}

// StaticVerifier resolves tokens from a fixed table. It stands in for the
// real provider where none is reachable: local development and tests.
type StaticVerifier struct {
	Identities map[string]Identity
}

func (v *StaticVerifier) Verify(_ context.Context, token string) (*Identity, error) {
	identity, ok := v.Identities[token]
	if !ok {
		return nil, errors.New("unknown token")
	}
	return &identity, nil
}

// MintToken signs a short-lived HS256 token for the given subject. Useful
// for fixtures and local experiments; real tokens come from the provider.
func MintToken(subject, email string, secret []byte) (string, error) {
	claims := jwt.MapClaims{
		"sub":   subject,
		"email": email,
		"exp":   time.Now().Add(time.Hour * 72).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}
