package lib

import (
	"comandas_server/structs"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testParams = &structs.ArgonParams{Memory: 8 * 1024, Time: 1, Threads: 1, KeyLen: 32, SaltLen: 16}

func TestPasswordRoundTrip(t *testing.T) {
	hash, err := HashPassword("correct horse", testParams)
	require.NoError(t, err)

	ok, err := VerifyPassword("correct horse", hash)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = VerifyPassword("wrong horse", hash)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = VerifyPassword("x", "not-a-hash")
	assert.ErrorIs(t, err, ErrInvalidHash)
}

func signedClaims(exp time.Time) *structs.AuthClaims {
	return &structs.AuthClaims{
		Sub:      uuid.New(),
		Username: "caixa",
		Role:     "operator",
		Iat:      time.Now().Add(-time.Minute).Truncate(time.Second),
		Exp:      exp.Truncate(time.Second),
		Jti:      uuid.New(),
	}
}

func TestTokenRoundTrip(t *testing.T) {
	claims := signedClaims(time.Now().Add(time.Hour))
	token, err := SignAccessToken(claims, "s3cret")
	require.NoError(t, err)

	got, err := ParseToken(token, "s3cret")
	require.NoError(t, err)
	assert.Equal(t, claims.Sub, got.Sub)
	assert.Equal(t, claims.Jti, got.Jti)
	assert.Equal(t, "caixa", got.Username)
	assert.True(t, claims.Exp.Equal(got.Exp))

	_, err = ParseToken(token, "other")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestExpiredToken(t *testing.T) {
	token, err := SignAccessToken(signedClaims(time.Now().Add(-time.Hour)), "s3cret")
	require.NoError(t, err)

	_, err = ParseToken(token, "s3cret")
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestExtractClaims(t *testing.T) {
	token, err := SignAccessToken(signedClaims(time.Now().Add(time.Hour)), "s3cret")
	require.NoError(t, err)

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Authorization", "Bearer "+token)
	_, err = ExtractClaims(r, "s3cret")
	assert.NoError(t, err)

	r = httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(&http.Cookie{Name: AccessCookieName, Value: token})
	_, err = ExtractClaims(r, "s3cret")
	assert.NoError(t, err)

	r = httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Authorization", "Basic abc")
	_, err = ExtractClaims(r, "s3cret")
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = ExtractClaims(httptest.NewRequest(http.MethodGet, "/", nil), "s3cret")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
