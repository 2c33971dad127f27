// models/progress.go
package models

import "time"

// Progress status values.
const (
	StatusNotStarted = "not-started"
	StatusInProgress = "in-progress"
	StatusCompleted  = "completed"
)

// UserProgress tracks a user's state on one topic. One row per
// (user, subject, topic) triple, enforced by the composite unique index.
type UserProgress struct {
	ID        uint   `gorm:"primaryKey" json:"-"`
	UserID    uint   `gorm:"not null;index;uniqueIndex:idx_progress_triple" json:"user_id"`
	SubjectID string `gorm:"not null;size:64;index;uniqueIndex:idx_progress_triple" json:"subject_id"`
	TopicID   string `gorm:"not null;size:64;uniqueIndex:idx_progress_triple" json:"topic_id"`

	Status    string `gorm:"not null;default:'in-progress';size:20" json:"status"`
	Progress  int    `gorm:"default:0" json:"progress"` // 0-100
	Attempts  int    `gorm:"default:0" json:"attempts"`
	BestScore int    `gorm:"default:0" json:"best_score"`
	TimeSpent int64  `gorm:"default:0" json:"time_spent"` // milliseconds

	CompletedAt    *time.Time `json:"completed_at,omitempty"`
	LastAccessedAt time.Time  `json:"last_accessed_at"`

	User *User `gorm:"foreignKey:UserID" json:"-"`
}

func (UserProgress) TableName() string {
	return "user_progress"
}
