package services

import (
	"testing"

	"codequest/models"
	"codequest/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevelForXP(t *testing.T) {
	cases := []struct {
		xp    int
		level int
	}{
		{0, 1},
		{999, 1},
		{1000, 2},
		{1050, 2},
		{2500, 3},
		{9999, 10},
		{10000, 11},
		{-5, 1},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.level, LevelForXP(tc.xp), "xp=%d", tc.xp)
	}
}

func TestXPToNextLevelConsistentWithLevel(t *testing.T) {
	for _, xp := range []int{0, 1, 500, 999, 1000, 1500, 4999} {
		toNext := XPToNextLevel(xp)
		assert.Greater(t, toNext, 0)
		assert.LessOrEqual(t, toNext, 1000)
		// Adding the missing XP must land exactly on the next level.
		assert.Equal(t, LevelForXP(xp)+1, LevelForXP(xp+toNext), "xp=%d", xp)
	}
}

func TestApplyRewardsOrderIndependent(t *testing.T) {
	env := newTestEnv(t)

	a := env.createUser(t, "a@example.com", 0, 0)
	b := env.createUser(t, "b@example.com", 0, 0)
	c := env.createUser(t, "c@example.com", 0, 0)

	require.NoError(t, env.ledger.ApplyRewards(a, 950, 40, nil))
	require.NoError(t, env.ledger.ApplyRewards(a, 100, 20, nil))

	require.NoError(t, env.ledger.ApplyRewards(b, 100, 20, nil))
	require.NoError(t, env.ledger.ApplyRewards(b, 950, 40, nil))

	require.NoError(t, env.ledger.ApplyRewards(c, 1050, 60, nil))

	for _, u := range []*models.User{a, b, c} {
		assert.Equal(t, 1050, u.XP)
		assert.Equal(t, 60, u.Coins)
		assert.Equal(t, 2, u.Level)
	}
}

func TestApplyRewardsLevelInvariant(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "level@example.com", 0, 0)

	for _, delta := range []int{0, 10, 480, 999, 1, 2510} {
		require.NoError(t, env.ledger.ApplyRewards(user, delta, 0, nil))
		assert.Equal(t, user.XP/1000+1, user.Level, "after delta %d", delta)
	}
}

func TestApplyRewardsRejectsNegativeDeltas(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "neg@example.com", 100, 100)

	var validation *store.ValidationError
	err := env.ledger.ApplyRewards(user, -1, 0, nil)
	require.ErrorAs(t, err, &validation)

	err = env.ledger.ApplyRewards(user, 0, -1, nil)
	require.ErrorAs(t, err, &validation)
}

func TestApplyRewardsDeduplicatesBadges(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "badges@example.com", 0, 0)

	catalog, err := env.achievements.Catalog()
	require.NoError(t, err)
	require.NotEmpty(t, catalog)

	first := catalog[0]
	user.Badges = append(user.Badges, first.Title)

	require.NoError(t, env.ledger.ApplyRewards(user, first.XPReward, first.CoinReward, []models.Achievement{first}))

	count := 0
	for _, b := range user.Badges {
		if b == first.Title {
			count++
		}
	}
	assert.Equal(t, 1, count, "badge title must not be duplicated")

	unlocked, err := env.achievements.UnlockedIDs(user.ID)
	require.NoError(t, err)
	assert.True(t, unlocked[first.ID])
}
