// services/progression.go - Quiz/challenge completion pipeline
package services

import (
	"gorm.io/gorm"

	"codequest/models"
	"codequest/store"
)

// QuizResult is what the UI reports when a user finishes a quiz or
// practice challenge on a topic.
type QuizResult struct {
	SubjectID   string `json:"subject_id"`
	TopicID     string `json:"topic_id"`
	Score       int    `json:"score"`
	XPEarned    int    `json:"xp_earned"`
	CoinsEarned int    `json:"coins_earned"`
}

// QuizOutcome is the combined result of one completion pass, achievement
// rewards already folded in.
type QuizOutcome struct {
	User            *models.User         `json:"user"`
	Progress        *models.UserProgress `json:"progress"`
	LeveledUp       bool                 `json:"leveled_up"`
	XPToNextLevel   int                  `json:"xp_to_next_level"`
	NewAchievements []models.Achievement `json:"new_achievements"`
}

// ProgressionService runs the full completion pipeline: ledger applies the
// base rewards, the tracker persists topic state, the recorder closes the
// session, the evaluator re-checks the rule table, and any newly earned
// achievements are folded back into the ledger in the same pass. Each pass
// holds the user's write lock and runs in one transaction, so a failure
// partway through leaves no partial state behind.
type ProgressionService struct {
	db           *gorm.DB
	users        *store.UserStore
	achievements *store.AchievementStore
	tracker      *ProgressTracker
	recorder     *SessionRecorder
	ledger       *Ledger
	locks        *UserLocks
}

func NewProgressionService(
	db *gorm.DB,
	users *store.UserStore,
	achievements *store.AchievementStore,
	tracker *ProgressTracker,
	recorder *SessionRecorder,
	ledger *Ledger,
	locks *UserLocks,
) *ProgressionService {
	return &ProgressionService{
		db:           db,
		users:        users,
		achievements: achievements,
		tracker:      tracker,
		recorder:     recorder,
		ledger:       ledger,
		locks:        locks,
	}
}

// validateRewards rejects malformed reward input before anything is
// written. Both completion paths go through this.
func validateRewards(xpEarned, coinsEarned, score int) error {
	if xpEarned < 0 {
		return store.NewValidationError("xp_earned", "must not be negative")
	}
	if coinsEarned < 0 {
		return store.NewValidationError("coins_earned", "must not be negative")
	}
	if score < 0 || score > 100 {
		return store.NewValidationError("score", "must be between 0 and 100")
	}
	return nil
}

// CompleteQuiz records a finished quiz for a topic.
func (s *ProgressionService) CompleteQuiz(userID uint, result QuizResult) (*QuizOutcome, error) {
	if err := validateRewards(result.XPEarned, result.CoinsEarned, result.Score); err != nil {
		return nil, err
	}

	unlock := s.locks.Lock(userID)
	defer unlock()

	var outcome *QuizOutcome
	err := s.db.Transaction(func(tx *gorm.DB) error {
		user, err := s.users.WithTx(tx).GetByID(userID)
		if err != nil {
			return err
		}
		levelBefore := user.Level

		if err := s.ledger.withTx(tx).ApplyRewards(user, result.XPEarned, result.CoinsEarned, nil); err != nil {
			return err
		}

		progress, err := s.tracker.withTx(tx).CompleteTopic(userID, result.SubjectID, result.TopicID, result.Score)
		if err != nil {
			return err
		}

		if _, err := s.recorder.withTx(tx).CompleteOpenTopic(userID, result.TopicID, result.XPEarned, result.CoinsEarned, result.Score); err != nil {
			return err
		}

		earned, err := s.checkAchievements(tx, user)
		if err != nil {
			return err
		}

		outcome = &QuizOutcome{
			User:            user,
			Progress:        progress,
			LeveledUp:       user.Level > levelBefore,
			XPToNextLevel:   XPToNextLevel(user.XP),
			NewAchievements: earned,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return outcome, nil
}

// UpsertProgress is the locked write path for partial progress updates.
func (s *ProgressionService) UpsertProgress(userID uint, subjectID, topicID string, patch ProgressPatch) (*models.UserProgress, error) {
	unlock := s.locks.Lock(userID)
	defer unlock()
	return s.tracker.UpsertProgress(userID, subjectID, topicID, patch)
}

// StartSession opens a session under the user's lock so two tabs cannot
// race two opens for the same topic. Abandoning a stale session and
// opening the new one commit together.
func (s *ProgressionService) StartSession(userID uint, topicID string) (*models.LearningSession, error) {
	unlock := s.locks.Lock(userID)
	defer unlock()

	var session *models.LearningSession
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		session, err = s.recorder.withTx(tx).Start(userID, topicID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return session, nil
}

// CompleteSession closes a session by ID and feeds its rewards through the
// ledger and the achievement check. Input is validated before any write,
// so a rejected request leaves the session open for a corrected retry.
func (s *ProgressionService) CompleteSession(userID uint, sessionID string, xpEarned, coinsEarned, score int) (*QuizOutcome, error) {
	if err := validateRewards(xpEarned, coinsEarned, score); err != nil {
		return nil, err
	}

	unlock := s.locks.Lock(userID)
	defer unlock()

	var outcome *QuizOutcome
	err := s.db.Transaction(func(tx *gorm.DB) error {
		user, err := s.users.WithTx(tx).GetByID(userID)
		if err != nil {
			return err
		}
		levelBefore := user.Level

		recorder := s.recorder.withTx(tx)
		session, err := recorder.Get(sessionID)
		if err != nil {
			return err
		}
		if session.UserID != userID {
			// Do not leak whether someone else's session exists.
			return store.ErrNotFound
		}

		if _, err := recorder.Complete(sessionID, xpEarned, coinsEarned, score); err != nil {
			return err
		}

		if err := s.ledger.withTx(tx).ApplyRewards(user, xpEarned, coinsEarned, nil); err != nil {
			return err
		}

		earned, err := s.checkAchievements(tx, user)
		if err != nil {
			return err
		}

		outcome = &QuizOutcome{
			User:            user,
			LeveledUp:       user.Level > levelBefore,
			XPToNextLevel:   XPToNextLevel(user.XP),
			NewAchievements: earned,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return outcome, nil
}

// CheckAchievements re-runs the rule table for a user outside a completion
// event (the UI calls this on dashboard load).
func (s *ProgressionService) CheckAchievements(userID uint) ([]models.Achievement, *models.User, error) {
	unlock := s.locks.Lock(userID)
	defer unlock()

	var (
		earned []models.Achievement
		user   *models.User
	)
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		user, err = s.users.WithTx(tx).GetByID(userID)
		if err != nil {
			return err
		}
		earned, err = s.checkAchievements(tx, user)
		return err
	})
	if err != nil {
		return nil, nil, err
	}
	return earned, user, nil
}

// checkAchievements evaluates the catalog against current state and folds
// rewards for anything newly earned into the user. Caller holds the lock
// and the transaction.
func (s *ProgressionService) checkAchievements(tx *gorm.DB, user *models.User) ([]models.Achievement, error) {
	achievements := s.achievements.WithTx(tx)
	catalog, err := achievements.Catalog()
	if err != nil {
		return nil, err
	}
	unlockedIDs, err := achievements.UnlockedIDs(user.ID)
	if err != nil {
		return nil, err
	}
	progress, err := s.tracker.withTx(tx).ListProgress(user.ID)
	if err != nil {
		return nil, err
	}
	sessions, err := s.recorder.withTx(tx).ListByUser(user.ID)
	if err != nil {
		return nil, err
	}

	evaluator := NewAchievementEvaluator(catalog)
	earned := evaluator.Evaluate(user, unlockedIDs, progress, sessions)
	if len(earned) == 0 {
		return earned, nil
	}

	var xp, coins int
	for _, achievement := range earned {
		xp += achievement.XPReward
		coins += achievement.CoinReward
	}
	if err := s.ledger.withTx(tx).ApplyRewards(user, xp, coins, earned); err != nil {
		return nil, err
	}
	return earned, nil
}
