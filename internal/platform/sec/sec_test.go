// Copyright (c) 2026 Ibis. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec_test

import (
	"crypto/rand"
	"crypto/rsa"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/ibis/internal/platform/sec"
)

func newTokenService(t *testing.T, issuer string) *sec.TokenService {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	return sec.NewTokenServiceFromKeys(key, &key.PublicKey, issuer)
}

func TestTokenService_RoundTrip(t *testing.T) {
	service := newTokenService(t, "ibis.test")

	token, err := service.GenerateAccessToken("user-1", "hypatia", time.Minute)
	require.NoError(t, err)

	claims, err := service.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "hypatia", claims.Username)
	assert.Equal(t, "user-1", claims.Subject)
}

func TestTokenService_Expired(t *testing.T) {
	service := newTokenService(t, "ibis.test")

	token, err := service.GenerateAccessToken("user-1", "hypatia", -time.Minute)
	require.NoError(t, err)

	_, err = service.VerifyToken(token)
	assert.Error(t, err)
}

func TestTokenService_ForeignKey(t *testing.T) {
	signer := newTokenService(t, "ibis.test")
	verifier := newTokenService(t, "ibis.test")

	token, err := signer.GenerateAccessToken("user-1", "hypatia", time.Minute)
	require.NoError(t, err)

	_, err = verifier.VerifyToken(token)
	assert.Error(t, err)
}

func TestTokenService_WrongIssuer(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	signer := sec.NewTokenServiceFromKeys(key, &key.PublicKey, "someone.else")
	verifier := sec.NewTokenServiceFromKeys(key, &key.PublicKey, "ibis.test")

	token, err := signer.GenerateAccessToken("user-1", "hypatia", time.Minute)
	require.NoError(t, err)

	_, err = verifier.VerifyToken(token)
	assert.Error(t, err)
}

func TestPasswordHash(t *testing.T) {
	hash, err := sec.HashPassword("correct horse battery staple")
	require.NoError(t, err)

	assert.True(t, sec.CheckPasswordHash("correct horse battery staple", hash))
	assert.False(t, sec.CheckPasswordHash("Tr0ub4dor&3", hash))
	assert.False(t, sec.CheckPasswordHash("correct horse battery staple", ""))
}

func TestPasswordHash_TooLong(t *testing.T) {
	_, err := sec.HashPassword(strings.Repeat("a", sec.PasswordMaxBytes+1))
	assert.ErrorIs(t, err, sec.ErrPasswordTooLong)
}

func TestSecureToken(t *testing.T) {
	first, err := sec.GenerateSecureToken()
	require.NoError(t, err)
	second, err := sec.GenerateSecureToken()
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.Equal(t, sec.HashToken(first), sec.HashToken(first))
	assert.Len(t, sec.HashToken(first), 64)
}
