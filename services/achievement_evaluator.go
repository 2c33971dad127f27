// services/achievement_evaluator.go - Achievement Evaluator
package services

import (
	"codequest/models"
)

// ProgressSnapshot carries the derived counts the rule table is evaluated
// against.
type ProgressSnapshot struct {
	TopicsCompleted   int
	PerfectScores     int
	CurrentStreak     int
	TotalXP           int
	Level             int
	SessionsCompleted int
}

// AchievementEvaluator checks the ordered rule catalog against a user's
// aggregate state. It never mutates anything; awarding (rewards, badge
// titles, unlock rows) is the Ledger's job.
type AchievementEvaluator struct {
	catalog []models.Achievement
}

func NewAchievementEvaluator(catalog []models.Achievement) *AchievementEvaluator {
	return &AchievementEvaluator{catalog: catalog}
}

// Evaluate returns every catalog entry the user newly qualifies for, in
// catalog order. Entries already present in unlockedIDs are skipped, which
// makes back-to-back calls on unchanged state return nothing the second
// time.
func (e *AchievementEvaluator) Evaluate(
	user *models.User,
	unlockedIDs map[uint]bool,
	progress []models.UserProgress,
	sessions []models.LearningSession,
) []models.Achievement {
	snapshot := Snapshot(user, progress, sessions)

	earned := []models.Achievement{}
	for _, achievement := range e.catalog {
		if unlockedIDs[achievement.ID] {
			continue
		}
		if snapshot.meets(achievement.Condition, achievement.Threshold) {
			earned = append(earned, achievement)
		}
	}
	return earned
}

// Snapshot derives the aggregate counts from raw records.
func Snapshot(user *models.User, progress []models.UserProgress, sessions []models.LearningSession) ProgressSnapshot {
	snapshot := ProgressSnapshot{
		TotalXP: user.XP,
		Level:   user.Level,
	}

	for _, p := range progress {
		if p.Status == models.StatusCompleted {
			snapshot.TopicsCompleted++
		}
	}

	for _, s := range sessions {
		if s.CompletedAt == nil {
			continue
		}
		snapshot.SessionsCompleted++
		if s.Score == 100 {
			snapshot.PerfectScores++
		}
	}

	snapshot.CurrentStreak = CurrentStreak(sessions)
	return snapshot
}

func (s ProgressSnapshot) meets(condition string, threshold int) bool {
	switch condition {
	case models.ConditionTopicsCompleted:
		return s.TopicsCompleted >= threshold
	case models.ConditionPerfectScores:
		return s.PerfectScores >= threshold
	case models.ConditionCurrentStreak:
		return s.CurrentStreak >= threshold
	case models.ConditionTotalXP:
		return s.TotalXP >= threshold
	case models.ConditionLevelReached:
		return s.Level >= threshold
	case models.ConditionSessionsCompleted:
		return s.SessionsCompleted >= threshold
	}
	return false
}
