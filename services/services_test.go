package services

import (
	"path/filepath"
	"testing"

	"codequest/database"
	"codequest/models"
	"codequest/store"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// testEnv wires the full service stack against a throwaway SQLite file.
type testEnv struct {
	db           *gorm.DB
	users        *store.UserStore
	progress     *store.ProgressStore
	sessions     *store.SessionStore
	achievements *store.AchievementStore
	curriculum   *store.CurriculumStore

	tracker     *ProgressTracker
	recorder    *SessionRecorder
	ledger      *Ledger
	progression *ProgressionService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.RunMigrations(db))
	require.NoError(t, database.SeedAll(db))

	env := &testEnv{
		db:           db,
		users:        store.NewUserStore(db),
		progress:     store.NewProgressStore(db),
		sessions:     store.NewSessionStore(db),
		achievements: store.NewAchievementStore(db),
		curriculum:   store.NewCurriculumStore(db),
	}
	env.tracker = NewProgressTracker(env.progress, env.sessions, env.curriculum)
	env.recorder = NewSessionRecorder(env.sessions)
	env.ledger = NewLedger(env.users, env.achievements)
	env.progression = NewProgressionService(db, env.users, env.achievements, env.tracker, env.recorder, env.ledger, NewUserLocks())
	return env
}

func (env *testEnv) createUser(t *testing.T, email string, xp, coins int) *models.User {
	t.Helper()
	user := &models.User{
		Email:    email,
		Name:     "Test User",
		Password: "not-a-real-hash",
		Level:    LevelForXP(xp),
		XP:       xp,
		Coins:    coins,
		Badges:   []string{"Welcome"},
	}
	require.NoError(t, env.users.Create(user))
	return user
}
