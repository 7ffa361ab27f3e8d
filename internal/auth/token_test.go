package auth

import (
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenManager_RoundTrip(t *testing.T) {
	tm := NewTokenManager("secret", 60)

	token, err := tm.GenerateToken("a@b.com")
	require.NoError(t, err)
	assert.NotEmpty(t, token.Value)
	assert.Equal(t, "a@b.com", token.Email)
	assert.WithinDuration(t, time.Now().Add(time.Hour), token.ExpiresAt, 5*time.Second)

	email, err := tm.ParseToken(token.Value)
	require.NoError(t, err)
	assert.Equal(t, "a@b.com", email)
}

func TestTokenManager_DefaultTTL(t *testing.T) {
	tm := NewTokenManager("secret", 0)
	assert.Equal(t, time.Hour, tm.ttl)
}

func TestTokenManager_Expired(t *testing.T) {
	tm := NewTokenManager("secret", 60)
	issued := time.Now()
	tm.now = func() time.Time { return issued }

	token, err := tm.GenerateToken("a@b.com")
	require.NoError(t, err)

	tm.now = func() time.Time { return issued.Add(59 * time.Minute) }
	_, err = tm.ParseToken(token.Value)
	require.NoError(t, err)

	tm.now = func() time.Time { return issued.Add(time.Hour + time.Second) }
	_, err = tm.ParseToken(token.Value)
	assert.ErrorIs(t, err, ErrInvalidToken)
	assert.ErrorContains(t, err, jwt.ErrTokenExpired.Error())
}

func TestTokenManager_WrongSecret(t *testing.T) {
	issuer := NewTokenManager("secret1", 60)
	verifier := NewTokenManager("secret2", 60)

	token, err := issuer.GenerateToken("a@b.com")
	require.NoError(t, err)

	_, err = verifier.ParseToken(token.Value)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenManager_Malformed(t *testing.T) {
	tm := NewTokenManager("secret", 60)

	for _, raw := range []string{"", "garbage", "invalid.token.string"} {
		_, err := tm.ParseToken(raw)
		assert.ErrorIs(t, err, ErrInvalidToken, raw)
	}
}

func TestTokenManager_RejectsOtherAlgorithms(t *testing.T) {
	tm := NewTokenManager("secret", 60)
	claims := &Claims{
		Email: "a@b.com",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}

	hs384, err := jwt.NewWithClaims(jwt.SigningMethodHS384, claims).SignedString([]byte("secret"))
	require.NoError(t, err)
	_, err = tm.ParseToken(hs384)
	assert.ErrorIs(t, err, ErrInvalidToken)

	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = tm.ParseToken(unsigned)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenManager_RequiresExpiry(t *testing.T) {
	tm := NewTokenManager("secret", 60)
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{Email: "a@b.com"}).SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = tm.ParseToken(raw)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
