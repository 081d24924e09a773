package utils

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTVerifierRoundtrip(t *testing.T) {
	secret := []byte("testsecret")
	verifier := &JWTVerifier{Secret: secret}

	token, err := MintToken("firebase-uid-1", "a@x.com", secret)
	require.NoError(t, err)

	identity, err := verifier.Verify(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "firebase-uid-1", identity.Subject)
	assert.Equal(t, "a@x.com", identity.Email)
}

func TestJWTVerifierRejectsWrongSecret(t *testing.T) {
	token, err := MintToken("u1", "a@x.com", []byte("one secret"))
	require.NoError(t, err)

	verifier := &JWTVerifier{Secret: []byte("another secret")}
	_, err = verifier.Verify(context.Background(), token)
	assert.Error(t, err)
}

func TestJWTVerifierRejectsGarbage(t *testing.T) {
	verifier := &JWTVerifier{Secret: []byte("testsecret")}
	_, err := verifier.Verify(context.Background(), "not.a.token")
	assert.Error(t, err)
}

func TestStaticVerifier(t *testing.T) {
	verifier := &StaticVerifier{Identities: map[string]Identity{
		"known": {Subject: "u1", Email: "a@x.com"},
	}}

	identity, err := verifier.Verify(context.Background(), "known")
	require.NoError(t, err)
	assert.Equal(t, "u1", identity.Subject)

	_, err = verifier.Verify(context.Background(), "unknown")
	assert.Error(t, err)
}
