// store/session_store.go
package store

import (
	"codequest/models"

	"gorm.io/gorm"
)

// SessionStore persists LearningSession records.
type SessionStore struct {
	db *gorm.DB
}

func NewSessionStore(db *gorm.DB) *SessionStore {
	return &SessionStore{db: db}
}

// WithTx returns a copy bound to the given transaction handle.
func (s *SessionStore) WithTx(tx *gorm.DB) *SessionStore {
	return &SessionStore{db: tx}
}

func (s *SessionStore) Get(id string) (*models.LearningSession, error) {
	var session models.LearningSession
	if err := s.db.Where("id = ?", id).First(&session).Error; err != nil {
		return nil, wrapErr("get session", err)
	}
	return &session, nil
}

func (s *SessionStore) ListByUser(userID uint) ([]models.LearningSession, error) {
	var sessions []models.LearningSession
	err := s.db.Where("user_id = ?", userID).
		Order("started_at DESC").
		Find(&sessions).Error
	if err != nil {
		return nil, wrapErr("list sessions", err)
	}
	return sessions, nil
}

// FindOpen returns the open session for a (user, topic), or ErrNotFound.
func (s *SessionStore) FindOpen(userID uint, topicID string) (*models.LearningSession, error) {
	var session models.LearningSession
	err := s.db.Where("user_id = ? AND topic_id = ? AND completed_at IS NULL", userID, topicID).
		First(&session).Error
	if err != nil {
		return nil, wrapErr("find open session", err)
	}
	return &session, nil
}

func (s *SessionStore) Create(session *models.LearningSession) error {
	return wrapErr("create session", s.db.Create(session).Error)
}

func (s *SessionStore) Save(session *models.LearningSession) error {
	return wrapErr("save session", s.db.Save(session).Error)
}
