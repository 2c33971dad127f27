// models/session.go
package models

import "time"

// LearningSession is one timed sitting on a topic. A session opens with
// zero rewards and closes at most once; TimeSpent is fixed on close.
type LearningSession struct {
	ID      string `gorm:"primaryKey;size:64" json:"id"`
	UserID  uint   `gorm:"not null;index" json:"user_id"`
	TopicID string `gorm:"not null;size:64;index" json:"topic_id"`

	StartedAt   time.Time  `gorm:"not null" json:"started_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`

	XPEarned    int   `gorm:"default:0" json:"xp_earned"`
	CoinsEarned int   `gorm:"default:0" json:"coins_earned"`
	Score       int   `gorm:"default:0" json:"score"`
	TimeSpent   int64 `gorm:"default:0" json:"time_spent"` // milliseconds

	User *User `gorm:"foreignKey:UserID" json:"-"`
}

func (LearningSession) TableName() string {
	return "learning_sessions"
}

// IsOpen reports whether the session has not been closed yet.
func (s *LearningSession) IsOpen() bool {
	return s.CompletedAt == nil
}
