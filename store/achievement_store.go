// store/achievement_store.go
package store

import (
	"time"

	"codequest/models"

	"gorm.io/gorm"
)

// AchievementStore reads the static catalog and persists per-user unlocks.
type AchievementStore struct {
	db *gorm.DB
}

func NewAchievementStore(db *gorm.DB) *AchievementStore {
	return &AchievementStore{db: db}
}

// WithTx returns a copy bound to the given transaction handle.
func (s *AchievementStore) WithTx(tx *gorm.DB) *AchievementStore {
	return &AchievementStore{db: tx}
}

// Catalog returns all achievements in evaluation order.
func (s *AchievementStore) Catalog() ([]models.Achievement, error) {
	var catalog []models.Achievement
	if err := s.db.Order("sort_order ASC, id ASC").Find(&catalog).Error; err != nil {
		return nil, wrapErr("list achievement catalog", err)
	}
	return catalog, nil
}

func (s *AchievementStore) ListUnlocked(userID uint) ([]models.UserAchievement, error) {
	var unlocked []models.UserAchievement
	err := s.db.Preload("Achievement").
		Where("user_id = ?", userID).
		Order("unlocked_at DESC").
		Find(&unlocked).Error
	if err != nil {
		return nil, wrapErr("list unlocked achievements", err)
	}
	return unlocked, nil
}

// UnlockedIDs returns the set of catalog IDs the user already holds.
func (s *AchievementStore) UnlockedIDs(userID uint) (map[uint]bool, error) {
	var ids []uint
	err := s.db.Model(&models.UserAchievement{}).
		Where("user_id = ?", userID).
		Pluck("achievement_id", &ids).Error
	if err != nil {
		return nil, wrapErr("list unlocked achievement ids", err)
	}

	set := make(map[uint]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set, nil
}

func (s *AchievementStore) Unlock(userID, achievementID uint) error {
	unlock := models.UserAchievement{
		UserID:        userID,
		AchievementID: achievementID,
		UnlockedAt:    time.Now(),
	}
	return wrapErr("unlock achievement", s.db.Create(&unlock).Error)
}
