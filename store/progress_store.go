// store/progress_store.go
package store

import (
	"codequest/models"

	"gorm.io/gorm"
)

// ProgressStore persists UserProgress records, unique per
// (user, subject, topic) triple.
type ProgressStore struct {
	db *gorm.DB
}

func NewProgressStore(db *gorm.DB) *ProgressStore {
	return &ProgressStore{db: db}
}

// WithTx returns a copy bound to the given transaction handle.
func (s *ProgressStore) WithTx(tx *gorm.DB) *ProgressStore {
	return &ProgressStore{db: tx}
}

func (s *ProgressStore) Get(userID uint, subjectID, topicID string) (*models.UserProgress, error) {
	var progress models.UserProgress
	err := s.db.Where("user_id = ? AND subject_id = ? AND topic_id = ?", userID, subjectID, topicID).
		First(&progress).Error
	if err != nil {
		return nil, wrapErr("get progress", err)
	}
	return &progress, nil
}

func (s *ProgressStore) ListByUser(userID uint) ([]models.UserProgress, error) {
	var records []models.UserProgress
	err := s.db.Where("user_id = ?", userID).
		Order("last_accessed_at DESC").
		Find(&records).Error
	if err != nil {
		return nil, wrapErr("list progress", err)
	}
	return records, nil
}

func (s *ProgressStore) ListBySubject(userID uint, subjectID string) ([]models.UserProgress, error) {
	var records []models.UserProgress
	err := s.db.Where("user_id = ? AND subject_id = ?", userID, subjectID).
		Order("last_accessed_at DESC").
		Find(&records).Error
	if err != nil {
		return nil, wrapErr("list subject progress", err)
	}
	return records, nil
}

func (s *ProgressStore) Save(progress *models.UserProgress) error {
	return wrapErr("save progress", s.db.Save(progress).Error)
}

func (s *ProgressStore) CountCompleted(userID uint) (int64, error) {
	var count int64
	err := s.db.Model(&models.UserProgress{}).
		Where("user_id = ? AND status = ?", userID, models.StatusCompleted).
		Count(&count).Error
	if err != nil {
		return 0, wrapErr("count completed progress", err)
	}
	return count, nil
}
