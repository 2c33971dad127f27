// services/session_recorder.go - Session Recorder
package services

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"codequest/models"
	"codequest/store"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SessionRecorder tracks timed learning sessions: open on Start, closed on
// Complete. At most one session is open per (user, topic); starting a new
// one abandons the stale session with zero rewards.
type SessionRecorder struct {
	sessions *store.SessionStore
}

func NewSessionRecorder(sessions *store.SessionStore) *SessionRecorder {
	return &SessionRecorder{sessions: sessions}
}

func (r *SessionRecorder) withTx(tx *gorm.DB) *SessionRecorder {
	return &SessionRecorder{sessions: r.sessions.WithTx(tx)}
}

// Start opens a session with zero rewards.
func (r *SessionRecorder) Start(userID uint, topicID string) (*models.LearningSession, error) {
	if topicID == "" {
		return nil, store.NewValidationError("topic_id", "must not be empty")
	}

	stale, err := r.sessions.FindOpen(userID, topicID)
	switch {
	case err == nil:
		if err := r.close(stale, 0, 0, 0); err != nil {
			return nil, err
		}
	case errors.Is(err, store.ErrNotFound):
		// nothing open, proceed
	default:
		return nil, err
	}

	session := &models.LearningSession{
		ID:        fmt.Sprintf("session-%s", uuid.New().String()),
		UserID:    userID,
		TopicID:   topicID,
		StartedAt: time.Now(),
	}

	if err := r.sessions.Create(session); err != nil {
		return nil, err
	}
	return session, nil
}

// Complete closes a session with the given rewards and score. An unknown
// session ID surfaces ErrNotFound; closing twice surfaces ErrConflict.
func (r *SessionRecorder) Complete(sessionID string, xpEarned, coinsEarned, score int) (*models.LearningSession, error) {
	session, err := r.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}
	if !session.IsOpen() {
		return nil, store.ErrConflict
	}

	if err := r.close(session, xpEarned, coinsEarned, score); err != nil {
		return nil, err
	}
	return session, nil
}

// CompleteOpenTopic closes whatever session is open for a (user, topic).
// No open session is not an error here; topic completion works without one.
func (r *SessionRecorder) CompleteOpenTopic(userID uint, topicID string, xpEarned, coinsEarned, score int) (*models.LearningSession, error) {
	session, err := r.sessions.FindOpen(userID, topicID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if err := r.close(session, xpEarned, coinsEarned, score); err != nil {
		return nil, err
	}
	return session, nil
}

func (r *SessionRecorder) close(session *models.LearningSession, xpEarned, coinsEarned, score int) error {
	now := time.Now()
	session.CompletedAt = &now
	session.XPEarned = xpEarned
	session.CoinsEarned = coinsEarned
	session.Score = score
	session.TimeSpent = now.Sub(session.StartedAt).Milliseconds()
	return r.sessions.Save(session)
}

func (r *SessionRecorder) Get(sessionID string) (*models.LearningSession, error) {
	return r.sessions.Get(sessionID)
}

func (r *SessionRecorder) ListByUser(userID uint) ([]models.LearningSession, error) {
	return r.sessions.ListByUser(userID)
}

// CurrentStreak counts consecutive calendar days with at least one closed
// session, walking back from today. A gap of exactly one day does not break
// the chain; that tolerance is deliberate.
func CurrentStreak(sessions []models.LearningSession) int {
	return streakAt(sessions, time.Now())
}

func streakAt(sessions []models.LearningSession, now time.Time) int {
	closed := make([]models.LearningSession, 0, len(sessions))
	for _, s := range sessions {
		if s.CompletedAt != nil {
			closed = append(closed, s)
		}
	}
	if len(closed) == 0 {
		return 0
	}

	sort.Slice(closed, func(i, j int) bool {
		return closed[i].CompletedAt.After(*closed[j].CompletedAt)
	})

	streak := 0
	anchor := midnight(now)

	for _, s := range closed {
		day := midnight(*s.CompletedAt)
		daysDiff := int(anchor.Sub(day).Hours() / 24)

		if daysDiff == streak {
			streak++
		} else if daysDiff == streak+1 {
			streak++
		} else {
			break
		}
	}

	return streak
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
