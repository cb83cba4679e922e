package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cppla/postboard/config"
)

func withAppKey(t *testing.T, key string) {
	t.Helper()
	c := config.Defaults()
	c.AppKey = key
	config.Set(c)
	t.Cleanup(config.Reset)
}

func TestToken_RoundTrip(t *testing.T) {
	withAppKey(t, "test-key")

	tok, err := GenerateToken("ann", time.Hour)
	require.NoError(t, err)

	claims, err := ParseToken(tok)
	require.NoError(t, err)
	assert.Equal(t, "ann", claims.Name)
	assert.Equal(t, "ann", claims.Subject)
}

func TestToken_Rejects(t *testing.T) {
	withAppKey(t, "test-key")

	expired, err := GenerateToken("ann", -time.Minute)
	require.NoError(t, err)
	_, err = ParseToken(expired)
	assert.Error(t, err)

	_, err = ParseToken("not-a-token")
	assert.Error(t, err)

	other, err := GenerateToken("ann", time.Hour)
	require.NoError(t, err)
	withAppKey(t, "rotated-key")
	_, err = ParseToken(other)
	assert.Error(t, err)
}

func TestToken_RequiresAppKey(t *testing.T) {
	withAppKey(t, "")

	_, err := GenerateToken("ann", time.Hour)
	assert.Error(t, err)
}
