// models/achievement.go
package models

import "time"

// Achievement types.
const (
	AchievementTypeProgress = "progress"
	AchievementTypeStreak   = "streak"
	AchievementTypeScore    = "score"
	AchievementTypeSpecial  = "special"
)

// Requirement conditions an achievement can be gated on.
const (
	ConditionTopicsCompleted   = "topics_completed"
	ConditionPerfectScores     = "perfect_scores"
	ConditionCurrentStreak     = "current_streak"
	ConditionTotalXP           = "total_xp"
	ConditionLevelReached      = "level_reached"
	ConditionSessionsCompleted = "sessions_completed"
)

// Achievement is a static catalog entry. Rows are evaluated in SortOrder;
// the per-user awarded fact lives in UserAchievement.
type Achievement struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Code        string `gorm:"not null;uniqueIndex;size:64" json:"code"`
	Title       string `gorm:"not null;uniqueIndex" json:"title"`
	Description string `gorm:"not null" json:"description"`
	Icon        string `gorm:"size:50" json:"icon"`
	Type        string `gorm:"not null;index;size:20" json:"type"`

	// Requirement
	Condition string `gorm:"not null;size:40" json:"condition"`
	Threshold int    `gorm:"not null" json:"threshold"`

	// Rewards
	XPReward   int `gorm:"default:0" json:"xp_reward"`
	CoinReward int `gorm:"default:0" json:"coin_reward"`

	IsSecret  bool `gorm:"default:false" json:"is_secret"`
	SortOrder int  `gorm:"default:0;index" json:"sort_order"`

	// Timestamps
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
