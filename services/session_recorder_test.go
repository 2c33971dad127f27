package services

import (
	"testing"
	"time"

	"codequest/models"
	"codequest/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func closedSession(completedAt time.Time, score int) models.LearningSession {
	return models.LearningSession{
		StartedAt:   completedAt.Add(-10 * time.Minute),
		CompletedAt: &completedAt,
		Score:       score,
	}
}

func TestStreak(t *testing.T) {
	now := time.Date(2026, time.March, 10, 15, 30, 0, 0, time.UTC)
	day := 24 * time.Hour

	t.Run("no sessions", func(t *testing.T) {
		assert.Equal(t, 0, streakAt(nil, now))
	})

	t.Run("open sessions do not count", func(t *testing.T) {
		sessions := []models.LearningSession{{StartedAt: now}}
		assert.Equal(t, 0, streakAt(sessions, now))
	})

	t.Run("today and yesterday", func(t *testing.T) {
		sessions := []models.LearningSession{
			closedSession(now.Add(-1*time.Hour), 80),
			closedSession(now.Add(-1*day), 90),
		}
		assert.Equal(t, 2, streakAt(sessions, now))
	})

	t.Run("today and three days ago breaks", func(t *testing.T) {
		sessions := []models.LearningSession{
			closedSession(now.Add(-1*time.Hour), 80),
			closedSession(now.Add(-3*day), 90),
		}
		assert.Equal(t, 1, streakAt(sessions, now))
	})

	t.Run("one skipped day is tolerated", func(t *testing.T) {
		sessions := []models.LearningSession{
			closedSession(now.Add(-1*time.Hour), 80),
			closedSession(now.Add(-2*day), 90),
		}
		assert.Equal(t, 2, streakAt(sessions, now))
	})

	t.Run("yesterday only", func(t *testing.T) {
		sessions := []models.LearningSession{
			closedSession(now.Add(-1*day), 70),
		}
		assert.Equal(t, 1, streakAt(sessions, now))
	})

	t.Run("unsorted input is sorted internally", func(t *testing.T) {
		sessions := []models.LearningSession{
			closedSession(now.Add(-1*day), 90),
			closedSession(now.Add(-1*time.Hour), 80),
			closedSession(now.Add(-2*day), 60),
		}
		assert.Equal(t, 3, streakAt(sessions, now))
	})
}

func TestStartClosesStaleOpenSession(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "sessions@example.com", 0, 0)

	first, err := env.recorder.Start(user.ID, "js-variables")
	require.NoError(t, err)
	require.True(t, first.IsOpen())

	second, err := env.recorder.Start(user.ID, "js-variables")
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)

	// The stale session was abandoned with zero rewards.
	stale, err := env.sessions.Get(first.ID)
	require.NoError(t, err)
	assert.False(t, stale.IsOpen())
	assert.Zero(t, stale.XPEarned)
	assert.Zero(t, stale.Score)

	// A different topic does not interfere.
	other, err := env.recorder.Start(user.ID, "js-functions")
	require.NoError(t, err)

	current, err := env.sessions.Get(second.ID)
	require.NoError(t, err)
	assert.True(t, current.IsOpen())
	assert.True(t, other.IsOpen())
}

func TestCompleteSession(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "complete@example.com", 0, 0)

	session, err := env.recorder.Start(user.ID, "js-arrays")
	require.NoError(t, err)

	closed, err := env.recorder.Complete(session.ID, 100, 20, 85)
	require.NoError(t, err)
	assert.False(t, closed.IsOpen())
	assert.Equal(t, 100, closed.XPEarned)
	assert.Equal(t, 20, closed.CoinsEarned)
	assert.Equal(t, 85, closed.Score)
	assert.GreaterOrEqual(t, closed.TimeSpent, int64(0))

	// Closing twice conflicts.
	_, err = env.recorder.Complete(session.ID, 0, 0, 0)
	assert.ErrorIs(t, err, store.ErrConflict)

	// Unknown session IDs are not silent no-ops.
	_, err = env.recorder.Complete("session-does-not-exist", 0, 0, 0)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestCompleteOpenTopicWithoutSession(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "nosession@example.com", 0, 0)

	session, err := env.recorder.CompleteOpenTopic(user.ID, "js-variables", 50, 10, 90)
	require.NoError(t, err)
	assert.Nil(t, session)
}
