package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestSessionRoundTrip(t *testing.T) {
	sm := NewSessionManager("s3cret", "test", time.Minute)
	tok, exp, err := sm.Issue("r-1")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Minute), exp, 2*time.Second)

	rid, err := sm.Parse(tok)
	require.NoError(t, err)
	assert.Equal(t, "r-1", rid)
}

func TestSessionRejects(t *testing.T) {
	sm := NewSessionManager("s3cret", "test", time.Minute)
	tok, _, err := sm.Issue("r-1")
	require.NoError(t, err)

	other := NewSessionManager("different", "test", time.Minute)
	_, err = other.Parse(tok)
	assert.ErrorIs(t, err, ErrInvalidSession)

	wrongIssuer := NewSessionManager("s3cret", "someone-else", time.Minute)
	_, err = wrongIssuer.Parse(tok)
	assert.ErrorIs(t, err, ErrInvalidSession)

	later := NewSessionManager("s3cret", "test", time.Minute)
	later.now = func() time.Time { return time.Now().Add(2 * time.Minute) }
	_, err = later.Parse(tok)
	assert.ErrorIs(t, err, ErrInvalidSession)

	_, err = sm.Parse("not-a-jwt")
	assert.ErrorIs(t, err, ErrInvalidSession)
}

func TestHashCode(t *testing.T) {
	h, err := HashCode("123456", bcrypt.MinCost)
	require.NoError(t, err)
	assert.NotContains(t, string(h), "123456")
	assert.True(t, CompareCode(h, "123456"))
	assert.False(t, CompareCode(h, "654321"))
}
