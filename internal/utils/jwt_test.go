package utils

import (
    "testing"
    "time"

    "github.com/golang-jwt/jwt/v5"
    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"
)

func TestNewAccessTokenRoundTrip(t *testing.T) {
    tok, err := NewAccessToken("s3cret", "ops", "OWNER", time.Hour)
    require.NoError(t, err)
    assert.WithinDuration(t, time.Now().Add(time.Hour), tok.Exp, 5*time.Second)

    var claims AccessClaims
    parsed, err := jwt.ParseWithClaims(tok.Token, &claims, func(*jwt.Token) (any, error) {
        return []byte("s3cret"), nil
    })
    require.NoError(t, err)
    assert.True(t, parsed.Valid)
    assert.Equal(t, "ops", claims.Subject)
    assert.Equal(t, "OWNER", claims.Role)
}

func TestNewAccessTokenRejectsEmptySecret(t *testing.T) {
    _, err := NewAccessToken("", "ops", "OWNER", time.Hour)
    assert.ErrorIs(t, err, ErrEmptySecret)
}

func TestExpiredTokenFailsValidation(t *testing.T) {
    tok, err := NewAccessToken("s3cret", "ops", "OWNER", -time.Minute)
    require.NoError(t, err)
    _, err = jwt.ParseWithClaims(tok.Token, &AccessClaims{}, func(*jwt.Token) (any, error) {
        return []byte("s3cret"), nil
    })
    assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}
