// models/user.go
package models

import (
	"time"
)

type User struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Email    string `gorm:"uniqueIndex;not null" json:"email"`
	Name     string `gorm:"not null" json:"name"`
	Password string `gorm:"not null" json:"-"`
	Avatar   string `json:"avatar,omitempty"`
	IsDemo   bool   `gorm:"default:false" json:"is_demo"`

	// Progression
	Level int `gorm:"default:1" json:"level"`
	XP    int `gorm:"default:0" json:"xp"`
	Coins int `gorm:"default:0" json:"coins"`

	// Display badge titles, starter grants included. The authoritative
	// awarded set is UserAchievement, keyed by achievement ID.
	Badges []string `gorm:"serializer:json" json:"badges"`

	Preferences UserPreferences `gorm:"embedded;embeddedPrefix:pref_" json:"preferences"`

	// Timestamps
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	LastLoginAt time.Time `json:"last_login_at"`

	// Relationships
	Achievements []UserAchievement `gorm:"foreignKey:UserID" json:"achievements,omitempty"`
	Progress     []UserProgress    `gorm:"foreignKey:UserID" json:"progress,omitempty"`
}

type UserPreferences struct {
	Theme         string `gorm:"default:'dark'" json:"theme"`
	Notifications bool   `gorm:"default:true" json:"notifications"`
	SoundEffects  bool   `gorm:"default:true" json:"sound_effects"`
	AutoSave      bool   `gorm:"default:true" json:"auto_save"`
}

// UserAchievement records that a user unlocked a catalog achievement.
// Keyed by achievement ID, not title, so renaming a catalog entry cannot
// orphan or duplicate an award.
type UserAchievement struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	UserID        uint      `gorm:"not null;index;uniqueIndex:idx_user_achievement" json:"user_id"`
	AchievementID uint      `gorm:"not null;index;uniqueIndex:idx_user_achievement" json:"achievement_id"`
	UnlockedAt    time.Time `json:"unlocked_at"`

	// Relationships
	User        User        `gorm:"foreignKey:UserID" json:"-"`
	Achievement Achievement `gorm:"foreignKey:AchievementID" json:"achievement,omitempty"`
}

// HasBadge reports whether the display badge list already carries a title.
func (u *User) HasBadge(title string) bool {
	for _, b := range u.Badges {
		if b == title {
			return true
		}
	}
	return false
}
