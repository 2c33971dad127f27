// services/ledger.go - Account Ledger
package services

import (
	"gorm.io/gorm"

	"codequest/models"
	"codequest/store"
)

// XP thresholds are fixed: every level costs 1000 XP. XPToNextLevel must
// stay consistent with LevelForXP.
const xpPerLevel = 1000

// LevelForXP computes the level a total XP amount corresponds to.
func LevelForXP(xp int) int {
	if xp < 0 {
		return 1
	}
	return xp/xpPerLevel + 1
}

// XPToNextLevel returns how much XP is still missing to the next level.
func XPToNextLevel(xp int) int {
	if xp < 0 {
		return xpPerLevel
	}
	return xpPerLevel - xp%xpPerLevel
}

// Ledger is the single place user XP, coins, level and badges are mutated.
// Everything else only reads User.
type Ledger struct {
	users        *store.UserStore
	achievements *store.AchievementStore
}

func NewLedger(users *store.UserStore, achievements *store.AchievementStore) *Ledger {
	return &Ledger{users: users, achievements: achievements}
}

func (l *Ledger) withTx(tx *gorm.DB) *Ledger {
	return &Ledger{
		users:        l.users.WithTx(tx),
		achievements: l.achievements.WithTx(tx),
	}
}

// ApplyRewards adds XP and coin deltas, recomputes the level, records the
// unlocked achievements and appends their badge titles (deduplicated).
// Two deltas applied in either order end in the same state as one combined
// delta, because the level is derived from total XP alone.
func (l *Ledger) ApplyRewards(user *models.User, xpDelta, coinsDelta int, unlocked []models.Achievement) error {
	if xpDelta < 0 {
		return store.NewValidationError("xp", "reward delta must not be negative")
	}
	if coinsDelta < 0 {
		return store.NewValidationError("coins", "reward delta must not be negative")
	}

	user.XP += xpDelta
	user.Coins += coinsDelta
	user.Level = LevelForXP(user.XP)

	for _, achievement := range unlocked {
		if !user.HasBadge(achievement.Title) {
			user.Badges = append(user.Badges, achievement.Title)
		}
	}

	if err := l.users.Save(user); err != nil {
		return err
	}

	for _, achievement := range unlocked {
		if err := l.achievements.Unlock(user.ID, achievement.ID); err != nil {
			return err
		}
	}

	return nil
}
