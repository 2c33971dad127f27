// services/progress_tracker.go - Progress Tracker
package services

import (
	"errors"
	"math"
	"time"

	"gorm.io/gorm"

	"codequest/models"
	"codequest/store"
)

// ProgressPatch is a partial update of a progress record. Nil fields are
// left untouched.
type ProgressPatch struct {
	Status    *string `json:"status,omitempty"`
	Progress  *int    `json:"progress,omitempty"`
	Attempts  *int    `json:"attempts,omitempty"`
	BestScore *int    `json:"best_score,omitempty"`
	TimeSpent *int64  `json:"time_spent,omitempty"`
}

// SubjectSummary aggregates a user's standing in one subject.
// TotalTopics counts only topics the user has touched (progress-so-far,
// the product's chosen reading); CurriculumTopics carries the full
// curriculum size so callers can show either.
type SubjectSummary struct {
	SubjectID        string  `json:"subject_id"`
	CompletedTopics  int     `json:"completed_topics"`
	TotalTopics      int     `json:"total_topics"`
	ProgressPercent  float64 `json:"progress_percent"`
	CurriculumTopics int     `json:"curriculum_topics"`
}

// UserStatistics is the dashboard aggregate over user, progress and
// session records.
type UserStatistics struct {
	User struct {
		Level  int `json:"level"`
		XP     int `json:"xp"`
		Coins  int `json:"coins"`
		Badges int `json:"badges"`
	} `json:"user"`
	Progress struct {
		CompletedTopics  int     `json:"completed_topics"`
		InProgressTopics int     `json:"in_progress_topics"`
		TotalTopics      int     `json:"total_topics"`
		CompletionRate   float64 `json:"completion_rate"`
	} `json:"progress"`
	Performance struct {
		AverageScore   int   `json:"average_score"`
		TotalTimeSpent int64 `json:"total_time_spent"`
		CurrentStreak  int   `json:"current_streak"`
		TotalSessions  int   `json:"total_sessions"`
	} `json:"performance"`
}

// ProgressTracker owns reads and writes of per-topic progress records and
// derives the subject- and user-level aggregates.
type ProgressTracker struct {
	progress   *store.ProgressStore
	sessions   *store.SessionStore
	curriculum *store.CurriculumStore
}

func NewProgressTracker(progress *store.ProgressStore, sessions *store.SessionStore, curriculum *store.CurriculumStore) *ProgressTracker {
	return &ProgressTracker{progress: progress, sessions: sessions, curriculum: curriculum}
}

func (t *ProgressTracker) withTx(tx *gorm.DB) *ProgressTracker {
	return &ProgressTracker{
		progress:   t.progress.WithTx(tx),
		sessions:   t.sessions.WithTx(tx),
		curriculum: t.curriculum.WithTx(tx),
	}
}

// UpsertProgress merges a patch onto the existing record, or onto a fresh
// in-progress default when the user touches the topic for the first time.
// LastAccessedAt is stamped on every write.
func (t *ProgressTracker) UpsertProgress(userID uint, subjectID, topicID string, patch ProgressPatch) (*models.UserProgress, error) {
	record, err := t.getOrDefault(userID, subjectID, topicID)
	if err != nil {
		return nil, err
	}

	if err := validatePatch(record, patch); err != nil {
		return nil, err
	}

	if patch.Status != nil {
		record.Status = *patch.Status
		if *patch.Status == models.StatusCompleted && record.CompletedAt == nil {
			now := time.Now()
			record.CompletedAt = &now
		}
	}
	if patch.Progress != nil {
		record.Progress = *patch.Progress
	}
	if patch.Attempts != nil {
		record.Attempts = *patch.Attempts
	}
	if patch.BestScore != nil {
		record.BestScore = *patch.BestScore
	}
	if patch.TimeSpent != nil {
		record.TimeSpent = *patch.TimeSpent
	}
	record.LastAccessedAt = time.Now()

	if err := t.progress.Save(record); err != nil {
		return nil, err
	}
	return record, nil
}

// CompleteTopic forces a topic into the completed state. Attempts only go
// up, BestScore never drops, and CompletedAt is set exactly once.
func (t *ProgressTracker) CompleteTopic(userID uint, subjectID, topicID string, score int) (*models.UserProgress, error) {
	if score < 0 || score > 100 {
		return nil, store.NewValidationError("score", "must be between 0 and 100")
	}

	record, err := t.getOrDefault(userID, subjectID, topicID)
	if err != nil {
		return nil, err
	}

	record.Status = models.StatusCompleted
	record.Progress = 100
	record.Attempts++
	if score > record.BestScore {
		record.BestScore = score
	}
	now := time.Now()
	if record.CompletedAt == nil {
		record.CompletedAt = &now
	}
	record.LastAccessedAt = now

	if err := t.progress.Save(record); err != nil {
		return nil, err
	}
	return record, nil
}

func (t *ProgressTracker) GetTopicProgress(userID uint, subjectID, topicID string) (*models.UserProgress, error) {
	return t.progress.Get(userID, subjectID, topicID)
}

func (t *ProgressTracker) ListProgress(userID uint) ([]models.UserProgress, error) {
	return t.progress.ListByUser(userID)
}

// Summarize builds the subject summary for a user.
func (t *ProgressTracker) Summarize(userID uint, subjectID string) (*SubjectSummary, error) {
	records, err := t.progress.ListBySubject(userID, subjectID)
	if err != nil {
		return nil, err
	}

	summary := &SubjectSummary{SubjectID: subjectID, TotalTopics: len(records)}
	for _, r := range records {
		if r.Status == models.StatusCompleted {
			summary.CompletedTopics++
		}
	}
	if summary.TotalTopics > 0 {
		summary.ProgressPercent = round2(float64(summary.CompletedTopics) / float64(summary.TotalTopics) * 100)
	}

	curriculumTotal, err := t.curriculum.CountTopics(subjectID)
	if err != nil {
		return nil, err
	}
	summary.CurriculumTopics = int(curriculumTotal)

	return summary, nil
}

// Statistics builds the dashboard aggregate.
func (t *ProgressTracker) Statistics(user *models.User) (*UserStatistics, error) {
	progress, err := t.progress.ListByUser(user.ID)
	if err != nil {
		return nil, err
	}
	sessions, err := t.sessions.ListByUser(user.ID)
	if err != nil {
		return nil, err
	}

	stats := &UserStatistics{}
	stats.User.Level = user.Level
	stats.User.XP = user.XP
	stats.User.Coins = user.Coins
	stats.User.Badges = len(user.Badges)

	for _, p := range progress {
		switch p.Status {
		case models.StatusCompleted:
			stats.Progress.CompletedTopics++
		case models.StatusInProgress:
			stats.Progress.InProgressTopics++
		}
	}
	stats.Progress.TotalTopics = stats.Progress.CompletedTopics + stats.Progress.InProgressTopics
	if stats.Progress.CompletedTopics > 0 {
		stats.Progress.CompletionRate = round2(float64(stats.Progress.CompletedTopics) / float64(stats.Progress.TotalTopics) * 100)
	}

	var scoreSum int
	for _, s := range sessions {
		stats.Performance.TotalTimeSpent += s.TimeSpent
		scoreSum += s.Score
	}
	if len(sessions) > 0 {
		stats.Performance.AverageScore = int(math.Round(float64(scoreSum) / float64(len(sessions))))
	}
	stats.Performance.CurrentStreak = CurrentStreak(sessions)
	stats.Performance.TotalSessions = len(sessions)

	return stats, nil
}

func (t *ProgressTracker) getOrDefault(userID uint, subjectID, topicID string) (*models.UserProgress, error) {
	if subjectID == "" {
		return nil, store.NewValidationError("subject_id", "must not be empty")
	}
	if topicID == "" {
		return nil, store.NewValidationError("topic_id", "must not be empty")
	}

	record, err := t.progress.Get(userID, subjectID, topicID)
	if errors.Is(err, store.ErrNotFound) {
		return &models.UserProgress{
			UserID:    userID,
			SubjectID: subjectID,
			TopicID:   topicID,
			Status:    models.StatusInProgress,
		}, nil
	}
	if err != nil {
		return nil, err
	}
	return record, nil
}

func validatePatch(existing *models.UserProgress, patch ProgressPatch) error {
	if patch.Status != nil {
		switch *patch.Status {
		case models.StatusNotStarted, models.StatusInProgress, models.StatusCompleted:
		default:
			return store.NewValidationError("status", "unknown status value")
		}
	}
	if patch.Progress != nil && (*patch.Progress < 0 || *patch.Progress > 100) {
		return store.NewValidationError("progress", "must be between 0 and 100")
	}
	if patch.Attempts != nil && *patch.Attempts < existing.Attempts {
		return store.NewValidationError("attempts", "must not decrease")
	}
	if patch.BestScore != nil && *patch.BestScore < existing.BestScore {
		return store.NewValidationError("best_score", "must not decrease")
	}
	if patch.TimeSpent != nil && *patch.TimeSpent < 0 {
		return store.NewValidationError("time_spent", "must not be negative")
	}
	return nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
