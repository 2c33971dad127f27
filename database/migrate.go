// database/migrate.go - Database Migration Runner
package database

import (
	"log"

	"codequest/models"

	"gorm.io/gorm"
)

// RunMigrations runs all schema migrations.
func RunMigrations(db *gorm.DB) error {
	log.Println("🔄 Running database migrations...")

	if err := db.AutoMigrate(
		&models.User{},
		&models.Subject{},
		&models.Topic{},
		&models.UserProgress{},
		&models.LearningSession{},
		&models.Achievement{},
		&models.UserAchievement{},
	); err != nil {
		return err
	}

	createIndexes(db)

	log.Println("✅ Migrations completed")
	return nil
}

// createIndexes creates the hot-path indexes AutoMigrate does not cover.
func createIndexes(db *gorm.DB) {
	// User indexes
	db.Exec("CREATE INDEX IF NOT EXISTS idx_users_level ON users(level DESC)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_users_xp ON users(xp DESC)")

	// Progress indexes
	db.Exec("CREATE INDEX IF NOT EXISTS idx_user_progress_status ON user_progress(user_id, status)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_user_progress_subject ON user_progress(user_id, subject_id)")

	// Session indexes
	db.Exec("CREATE INDEX IF NOT EXISTS idx_sessions_user_completed ON learning_sessions(user_id, completed_at)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_sessions_open ON learning_sessions(user_id, topic_id) WHERE completed_at IS NULL")

	// Achievement indexes
	db.Exec("CREATE INDEX IF NOT EXISTS idx_achievements_sort ON achievements(sort_order)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_user_achievements_user ON user_achievements(user_id)")
}
