// models/curriculum.go - Subject and Topic catalog
package models

import "time"

// Subject is a top-level course in the curriculum.
type Subject struct {
	ID          string `gorm:"primaryKey;size:64" json:"id"`
	Title       string `gorm:"not null;size:100" json:"title"`
	Description string `gorm:"type:text" json:"description"`
	Category    string `gorm:"size:50;index" json:"category"`
	Difficulty  string `gorm:"default:'Beginner';size:20" json:"difficulty"` // Beginner, Intermediate, Advanced
	Icon        string `gorm:"size:50" json:"icon"`
	IsLocked    bool   `gorm:"default:false" json:"is_locked"`
	SortOrder   int    `gorm:"default:0;index" json:"sort_order"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Topics []Topic `gorm:"foreignKey:SubjectID" json:"topics,omitempty"`
}

// Topic is one learnable unit inside a subject.
type Topic struct {
	ID          string `gorm:"primaryKey;size:64" json:"id"`
	SubjectID   string `gorm:"not null;size:64;index" json:"subject_id"`
	Title       string `gorm:"not null;size:100" json:"title"`
	Description string `gorm:"type:text" json:"description"`
	Difficulty  string `gorm:"default:'Easy';size:20" json:"difficulty"` // Easy, Medium, Hard
	XPReward    int    `gorm:"default:0" json:"xp_reward"`
	CoinReward  int    `gorm:"default:0" json:"coin_reward"`
	IsLocked    bool   `gorm:"default:false" json:"is_locked"`
	SortOrder   int    `gorm:"default:0;index" json:"sort_order"`

	CreatedAt time.Time `json:"created_at"`

	Subject *Subject `gorm:"foreignKey:SubjectID" json:"-"`
}

func (Subject) TableName() string {
	return "subjects"
}

func (Topic) TableName() string {
	return "topics"
}
