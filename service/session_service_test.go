package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionService_IssueAndResolve(t *testing.T) {
	sessions := NewSessionService("test-secret", time.Minute)

	token, err := sessions.Issue(cardA)
	require.NoError(t, err)

	number, err := sessions.CardNumber(token)
	require.NoError(t, err)
	assert.Equal(t, cardA, number)
}

func TestSessionService_Rejects(t *testing.T) {
	sessions := NewSessionService("test-secret", time.Minute)
	token, err := sessions.Issue(cardA)
	require.NoError(t, err)

	t.Run("expired", func(t *testing.T) {
		sessions.now = func() time.Time { return time.Now().Add(2 * time.Minute) }
		defer func() { sessions.now = time.Now }()

		_, err := sessions.CardNumber(token)
		assert.ErrorIs(t, err, ErrInvalidSession)
	})

	t.Run("other secret", func(t *testing.T) {
		other := NewSessionService("another-secret", time.Minute)

		_, err := other.CardNumber(token)
		assert.ErrorIs(t, err, ErrInvalidSession)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := sessions.CardNumber("not-a-token")
		assert.ErrorIs(t, err, ErrInvalidSession)
	})
}
