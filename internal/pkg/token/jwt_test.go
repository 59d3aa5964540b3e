package token

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signed(t *testing.T, exp *time.Time) string {
	t.Helper()
	claims := Claims{UserID: "u1", Role: "guide", Email: "g@x.com"}
	if exp != nil {
		claims.ExpiresAt = jwt.NewNumericDate(*exp)
	}
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("backend-secret"))
	require.NoError(t, err)
	return s
}

func TestInspect_ReadsClaimsWithoutKey(t *testing.T) {
	exp := time.Now().Add(time.Hour)
	claims, err := NewInspector(0).Inspect(signed(t, &exp))

	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
	assert.Equal(t, "guide", claims.Role)
}

func TestInspect_OpaqueToken(t *testing.T) {
	_, err := NewInspector(0).Inspect("t1")
	assert.ErrorIs(t, err, ErrNotJWT)
}

func TestInspect_MalformedJWT(t *testing.T) {
	_, err := NewInspector(0).Inspect("aaa.bbb.ccc")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotJWT)
}

func TestExpired(t *testing.T) {
	past := time.Now().Add(-time.Hour)
	future := time.Now().Add(time.Hour)
	insp := NewInspector(time.Minute)

	expired, err := insp.Expired(signed(t, &past))
	require.NoError(t, err)
	assert.True(t, expired)

	expired, err = insp.Expired(signed(t, &future))
	require.NoError(t, err)
	assert.False(t, expired)

	expired, err = insp.Expired(signed(t, nil))
	require.NoError(t, err)
	assert.False(t, expired)

	expired, err = insp.Expired("opaque-token")
	require.NoError(t, err)
	assert.False(t, expired)
}

func TestExpired_Leeway(t *testing.T) {
	insp := NewInspector(5 * time.Minute)
	justExpired := time.Now().Add(-time.Minute)

	expired, err := insp.Expired(signed(t, &justExpired))
	require.NoError(t, err)
	assert.False(t, expired)
}
