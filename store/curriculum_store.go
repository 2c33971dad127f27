// store/curriculum_store.go
package store

import (
	"codequest/models"

	"gorm.io/gorm"
)

// CurriculumStore reads the subject/topic catalog.
type CurriculumStore struct {
	db *gorm.DB
}

func NewCurriculumStore(db *gorm.DB) *CurriculumStore {
	return &CurriculumStore{db: db}
}

// WithTx returns a copy bound to the given transaction handle.
func (s *CurriculumStore) WithTx(tx *gorm.DB) *CurriculumStore {
	return &CurriculumStore{db: tx}
}

func (s *CurriculumStore) ListSubjects() ([]models.Subject, error) {
	var subjects []models.Subject
	if err := s.db.Order("sort_order ASC").Find(&subjects).Error; err != nil {
		return nil, wrapErr("list subjects", err)
	}
	return subjects, nil
}

func (s *CurriculumStore) GetSubject(id string) (*models.Subject, error) {
	var subject models.Subject
	err := s.db.Preload("Topics", func(db *gorm.DB) *gorm.DB {
		return db.Order("topics.sort_order ASC")
	}).Where("id = ?", id).First(&subject).Error
	if err != nil {
		return nil, wrapErr("get subject", err)
	}
	return &subject, nil
}

func (s *CurriculumStore) GetTopic(id string) (*models.Topic, error) {
	var topic models.Topic
	if err := s.db.Where("id = ?", id).First(&topic).Error; err != nil {
		return nil, wrapErr("get topic", err)
	}
	return &topic, nil
}

// CountTopics returns the curriculum size of a subject, independent of any
// user's progress records.
func (s *CurriculumStore) CountTopics(subjectID string) (int64, error) {
	var count int64
	err := s.db.Model(&models.Topic{}).Where("subject_id = ?", subjectID).Count(&count).Error
	if err != nil {
		return 0, wrapErr("count topics", err)
	}
	return count, nil
}
