package services

import (
	"testing"

	"codequest/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The reference scenario: a user sitting at 950 XP finishes their fifth
// topic with a 100 XP quiz. The ledger must land on level 2, and the
// evaluator must hand out Knowledge Seeker in the same pass.
func TestCompleteQuizEndToEnd(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "e2e@example.com", 950, 100)
	require.Equal(t, 1, user.Level)

	for _, topicID := range []string{"js-variables", "js-functions", "js-arrays", "ds-arrays"} {
		_, err := env.tracker.CompleteTopic(user.ID, "javascript", topicID, 90)
		require.NoError(t, err)
	}

	outcome, err := env.progression.CompleteQuiz(user.ID, QuizResult{
		SubjectID:   "javascript",
		TopicID:     "js-async",
		Score:       80,
		XPEarned:    100,
		CoinsEarned: 20,
	})
	require.NoError(t, err)

	assert.True(t, outcome.LeveledUp)
	assert.GreaterOrEqual(t, outcome.User.XP, 1050)
	assert.Equal(t, outcome.User.XP/1000+1, outcome.User.Level)
	assert.Equal(t, 2, outcome.User.Level)

	titles := achievementTitles(outcome.NewAchievements)
	assert.Contains(t, titles, "Knowledge Seeker")
	assert.Contains(t, titles, "First Steps")
	assert.Contains(t, outcome.User.Badges, "Knowledge Seeker")

	// Re-checking with unchanged state awards nothing further.
	earned, _, err := env.progression.CheckAchievements(user.ID)
	require.NoError(t, err)
	assert.Empty(t, earned)
}

func TestCompleteQuizClosesOpenSession(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "quiz-session@example.com", 0, 0)

	session, err := env.progression.StartSession(user.ID, "js-variables")
	require.NoError(t, err)

	_, err = env.progression.CompleteQuiz(user.ID, QuizResult{
		SubjectID:   "javascript",
		TopicID:     "js-variables",
		Score:       100,
		XPEarned:    100,
		CoinsEarned: 20,
	})
	require.NoError(t, err)

	closed, err := env.sessions.Get(session.ID)
	require.NoError(t, err)
	assert.False(t, closed.IsOpen())
	assert.Equal(t, 100, closed.Score)
	assert.Equal(t, 100, closed.XPEarned)
}

func TestCompleteQuizValidatesScore(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "badscore@example.com", 0, 0)

	var validation *store.ValidationError
	_, err := env.progression.CompleteQuiz(user.ID, QuizResult{
		SubjectID: "javascript",
		TopicID:   "js-variables",
		Score:     101,
	})
	assert.ErrorAs(t, err, &validation)
}

func TestCompleteSessionRejectsForeignSession(t *testing.T) {
	env := newTestEnv(t)
	owner := env.createUser(t, "owner@example.com", 0, 0)
	other := env.createUser(t, "other@example.com", 0, 0)

	session, err := env.progression.StartSession(owner.ID, "js-variables")
	require.NoError(t, err)

	_, err = env.progression.CompleteSession(other.ID, session.ID, 50, 10, 80)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestCompleteSessionRejectsInvalidInputBeforeClosing(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "invalid-close@example.com", 0, 0)

	session, err := env.progression.StartSession(user.ID, "js-variables")
	require.NoError(t, err)

	var validation *store.ValidationError
	_, err = env.progression.CompleteSession(user.ID, session.ID, -50, 0, 80)
	require.ErrorAs(t, err, &validation)

	_, err = env.progression.CompleteSession(user.ID, session.ID, 100, -10, 80)
	require.ErrorAs(t, err, &validation)

	_, err = env.progression.CompleteSession(user.ID, session.ID, 100, 20, 250)
	require.ErrorAs(t, err, &validation)

	// The session survived every rejected request untouched.
	still, err := env.sessions.Get(session.ID)
	require.NoError(t, err)
	assert.True(t, still.IsOpen())
	assert.Zero(t, still.XPEarned)

	// A corrected retry must succeed, not conflict.
	outcome, err := env.progression.CompleteSession(user.ID, session.ID, 50, 10, 80)
	require.NoError(t, err)
	assert.Equal(t, 50, outcome.User.XP)
	assert.Equal(t, 10, outcome.User.Coins)
}

func TestCompleteQuizRollsBackOnInvalidTopic(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "rollback@example.com", 500, 50)

	var validation *store.ValidationError
	_, err := env.progression.CompleteQuiz(user.ID, QuizResult{
		SubjectID:   "",
		TopicID:     "js-variables",
		Score:       90,
		XPEarned:    100,
		CoinsEarned: 20,
	})
	require.ErrorAs(t, err, &validation)

	// The base rewards applied before the failing step must not stick.
	fresh, err := env.users.GetByID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, 500, fresh.XP)
	assert.Equal(t, 50, fresh.Coins)
	assert.Equal(t, 1, fresh.Level)

	records, err := env.tracker.ListProgress(user.ID)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestCompleteSessionAppliesRewards(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "sessionreward@example.com", 900, 0)

	session, err := env.progression.StartSession(user.ID, "ds-arrays")
	require.NoError(t, err)

	outcome, err := env.progression.CompleteSession(user.ID, session.ID, 150, 30, 95)
	require.NoError(t, err)

	assert.True(t, outcome.LeveledUp)
	assert.GreaterOrEqual(t, outcome.User.XP, 1050)
	assert.Equal(t, outcome.User.XP/1000+1, outcome.User.Level)
}
