package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/wenotes/internal/common"
)

var testSecret = []byte("test-secret")

func TestGenerateAndParseToken(t *testing.T) {
	tokenString, err := GenerateToken(42, "alice", "premium", testSecret, time.Minute)
	require.NoError(t, err)
	require.NotEmpty(t, tokenString)

	claims, err := ParseToken(tokenString, testSecret)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, "premium", claims.Role)
}

func TestParseToken_Expired(t *testing.T) {
	tokenString, err := GenerateToken(1, "bob", "standard", testSecret, -time.Minute)
	require.NoError(t, err)

	_, err = ParseToken(tokenString, testSecret)
	assert.True(t, errors.Is(err, common.ErrTokenExpired))
}

func TestParseToken_WrongSecret(t *testing.T) {
	tokenString, err := GenerateToken(1, "bob", "standard", testSecret, time.Minute)
	require.NoError(t, err)

	_, err = ParseToken(tokenString, []byte("other-secret"))
	assert.True(t, errors.Is(err, common.ErrInvalidToken))
}

func TestParseToken_Garbage(t *testing.T) {
	_, err := ParseToken("not.a.jwt", testSecret)
	assert.True(t, errors.Is(err, common.ErrInvalidToken))
}
