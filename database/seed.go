// database/seed.go - Achievement catalog and curriculum seeding
package database

import (
	"log"

	"codequest/models"

	"gorm.io/gorm"
)

// SeedAll populates the achievement catalog and the curriculum. Existing
// rows are left alone, so re-running on startup is safe.
func SeedAll(db *gorm.DB) error {
	if err := SeedAchievements(db); err != nil {
		return err
	}
	if err := SeedCurriculum(db); err != nil {
		return err
	}
	return nil
}

// SeedAchievements inserts the rule catalog. SortOrder fixes evaluation
// order.
func SeedAchievements(db *gorm.DB) error {
	catalog := []models.Achievement{
		{
			Code: "first-steps", Title: "First Steps",
			Description: "Complete your first topic", Icon: "🎯",
			Type:      models.AchievementTypeProgress,
			Condition: models.ConditionTopicsCompleted, Threshold: 1,
			XPReward: 50, CoinReward: 25, SortOrder: 10,
		},
		{
			Code: "knowledge-seeker", Title: "Knowledge Seeker",
			Description: "Complete 5 topics", Icon: "📚",
			Type:      models.AchievementTypeProgress,
			Condition: models.ConditionTopicsCompleted, Threshold: 5,
			XPReward: 100, CoinReward: 50, SortOrder: 20,
		},
		{
			Code: "scholar", Title: "Scholar",
			Description: "Complete 15 topics", Icon: "🎓",
			Type:      models.AchievementTypeProgress,
			Condition: models.ConditionTopicsCompleted, Threshold: 15,
			XPReward: 250, CoinReward: 100, SortOrder: 30,
		},
		{
			Code: "perfectionist", Title: "Perfectionist",
			Description: "Get perfect scores on 3 quizzes", Icon: "⭐",
			Type:      models.AchievementTypeScore,
			Condition: models.ConditionPerfectScores, Threshold: 3,
			XPReward: 150, CoinReward: 75, SortOrder: 40,
		},
		{
			Code: "sharpshooter", Title: "Sharpshooter",
			Description: "Get perfect scores on 10 quizzes", Icon: "🏹",
			Type:      models.AchievementTypeScore,
			Condition: models.ConditionPerfectScores, Threshold: 10,
			XPReward: 300, CoinReward: 150, SortOrder: 50,
		},
		{
			Code: "daily-habit", Title: "Daily Habit",
			Description: "Keep a 3-day learning streak", Icon: "🔥",
			Type:      models.AchievementTypeStreak,
			Condition: models.ConditionCurrentStreak, Threshold: 3,
			XPReward: 100, CoinReward: 50, SortOrder: 60,
		},
		{
			Code: "week-warrior", Title: "Week Warrior",
			Description: "Keep a 7-day learning streak", Icon: "🗓️",
			Type:      models.AchievementTypeStreak,
			Condition: models.ConditionCurrentStreak, Threshold: 7,
			XPReward: 250, CoinReward: 100, SortOrder: 70,
		},
		{
			Code: "rising-star", Title: "Rising Star",
			Description: "Earn 1,000 XP", Icon: "🌟",
			Type:      models.AchievementTypeSpecial,
			Condition: models.ConditionTotalXP, Threshold: 1000,
			XPReward: 100, CoinReward: 50, SortOrder: 80,
		},
		{
			Code: "seasoned-learner", Title: "Seasoned Learner",
			Description: "Earn 5,000 XP", Icon: "🏆",
			Type:      models.AchievementTypeSpecial,
			Condition: models.ConditionTotalXP, Threshold: 5000,
			XPReward: 300, CoinReward: 150, SortOrder: 90,
		},
		{
			Code: "veteran", Title: "Veteran",
			Description: "Reach level 10", Icon: "🛡️",
			Type:      models.AchievementTypeSpecial,
			Condition: models.ConditionLevelReached, Threshold: 10,
			XPReward: 500, CoinReward: 250, SortOrder: 100,
		},
		{
			Code: "marathoner", Title: "Marathoner",
			Description: "Finish 50 learning sessions", Icon: "🏃",
			Type:      models.AchievementTypeSpecial,
			Condition: models.ConditionSessionsCompleted, Threshold: 50,
			XPReward: 200, CoinReward: 100, IsSecret: true, SortOrder: 110,
		},
	}

	for _, achievement := range catalog {
		result := db.Where("code = ?", achievement.Code).FirstOrCreate(&achievement)
		if result.Error != nil {
			return result.Error
		}
	}

	log.Printf("✅ Achievement catalog seeded (%d entries)", len(catalog))
	return nil
}

// SeedCurriculum inserts the subject/topic catalog the UI browses.
func SeedCurriculum(db *gorm.DB) error {
	subjects := []models.Subject{
		{
			ID: "javascript", Title: "JavaScript Fundamentals",
			Description: "Variables, functions, and the language core",
			Category:    "Programming", Difficulty: "Beginner", Icon: "🟨", SortOrder: 10,
			Topics: []models.Topic{
				{ID: "js-variables", SubjectID: "javascript", Title: "Variables & Types", Difficulty: "Easy", XPReward: 100, CoinReward: 20, SortOrder: 10},
				{ID: "js-functions", SubjectID: "javascript", Title: "Functions", Difficulty: "Easy", XPReward: 100, CoinReward: 20, SortOrder: 20},
				{ID: "js-arrays", SubjectID: "javascript", Title: "Arrays & Objects", Difficulty: "Medium", XPReward: 150, CoinReward: 30, SortOrder: 30},
				{ID: "js-async", SubjectID: "javascript", Title: "Async & Promises", Difficulty: "Hard", XPReward: 200, CoinReward: 40, SortOrder: 40},
			},
		},
		{
			ID: "data-structures", Title: "Data Structures",
			Description: "Arrays, lists, trees, and how to pick between them",
			Category:    "Computer Science", Difficulty: "Intermediate", Icon: "🌲", SortOrder: 20,
			Topics: []models.Topic{
				{ID: "ds-arrays", SubjectID: "data-structures", Title: "Arrays & Slices", Difficulty: "Easy", XPReward: 100, CoinReward: 20, SortOrder: 10},
				{ID: "ds-linked-lists", SubjectID: "data-structures", Title: "Linked Lists", Difficulty: "Medium", XPReward: 150, CoinReward: 30, SortOrder: 20},
				{ID: "ds-hash-maps", SubjectID: "data-structures", Title: "Hash Maps", Difficulty: "Medium", XPReward: 150, CoinReward: 30, SortOrder: 30},
				{ID: "ds-trees", SubjectID: "data-structures", Title: "Trees & Graphs", Difficulty: "Hard", XPReward: 200, CoinReward: 40, SortOrder: 40},
			},
		},
		{
			ID: "algorithms", Title: "Algorithms",
			Description: "Searching, sorting, and complexity",
			Category:    "Computer Science", Difficulty: "Advanced", Icon: "⚙️", SortOrder: 30,
			Topics: []models.Topic{
				{ID: "algo-search", SubjectID: "algorithms", Title: "Binary Search", Difficulty: "Medium", XPReward: 150, CoinReward: 30, SortOrder: 10},
				{ID: "algo-sorting", SubjectID: "algorithms", Title: "Sorting", Difficulty: "Medium", XPReward: 150, CoinReward: 30, SortOrder: 20},
				{ID: "algo-recursion", SubjectID: "algorithms", Title: "Recursion", Difficulty: "Hard", XPReward: 200, CoinReward: 40, SortOrder: 30},
				{ID: "algo-dynamic", SubjectID: "algorithms", Title: "Dynamic Programming", Difficulty: "Hard", XPReward: 250, CoinReward: 50, SortOrder: 40},
			},
		},
	}

	for _, subject := range subjects {
		result := db.Where("id = ?", subject.ID).FirstOrCreate(&subject)
		if result.Error != nil {
			return result.Error
		}
	}

	log.Printf("✅ Curriculum seeded (%d subjects)", len(subjects))
	return nil
}
