package store

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"codequest/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Subject{},
		&models.Topic{},
		&models.UserProgress{},
		&models.LearningSession{},
		&models.Achievement{},
		&models.UserAchievement{},
	)
	require.NoError(t, err)

	return db
}

func seedUser(t *testing.T, db *gorm.DB, email string, xp int) *models.User {
	t.Helper()

	user := &models.User{
		Email:    email,
		Name:     "Test User",
		Password: "not-a-real-hash",
		Level:    1,
		XP:       xp,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func TestUserStoreNotFound(t *testing.T) {
	users := NewUserStore(testDB(t))

	_, err := users.GetByID(9999)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = users.GetByEmail("nobody@example.com")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUserStoreDuplicateEmail(t *testing.T) {
	db := testDB(t)
	users := NewUserStore(db)

	seedUser(t, db, "taken@example.com", 0)

	err := users.Create(&models.User{
		Email:    "taken@example.com",
		Name:     "Imposter",
		Password: "x",
		Level:    1,
	})
	require.Error(t, err)

	var storageErr *StorageError
	assert.ErrorAs(t, err, &storageErr)
}

func TestLeaderboardExcludesDemoUsers(t *testing.T) {
	db := testDB(t)
	users := NewUserStore(db)

	seedUser(t, db, "a@example.com", 100)
	seedUser(t, db, "b@example.com", 300)
	demo := &models.User{
		Email:    "demo@codequest.io",
		Name:     "Demo",
		Password: "x",
		Level:    3,
		XP:       2500,
		IsDemo:   true,
	}
	require.NoError(t, db.Create(demo).Error)

	ranked, err := users.Leaderboard("xp", 10, 0)
	require.NoError(t, err)
	require.Len(t, ranked, 2)
	assert.Equal(t, "b@example.com", ranked[0].Email)
	assert.Equal(t, "a@example.com", ranked[1].Email)

	total, err := users.Count()
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
}

func TestProgressTripleUnique(t *testing.T) {
	db := testDB(t)
	progress := NewProgressStore(db)
	user := seedUser(t, db, "learner@example.com", 0)

	first := &models.UserProgress{
		UserID:    user.ID,
		SubjectID: "javascript",
		TopicID:   "js-variables",
		Status:    models.StatusInProgress,
	}
	require.NoError(t, progress.Save(first))

	dup := &models.UserProgress{
		UserID:    user.ID,
		SubjectID: "javascript",
		TopicID:   "js-variables",
		Status:    models.StatusCompleted,
	}
	err := db.Create(dup).Error
	require.Error(t, err, "second record for the same triple must be rejected")

	// Saving the existing record in place is still fine.
	first.Status = models.StatusCompleted
	require.NoError(t, progress.Save(first))

	got, err := progress.Get(user.ID, "javascript", "js-variables")
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, got.Status)
}

func TestCountCompleted(t *testing.T) {
	db := testDB(t)
	progress := NewProgressStore(db)
	user := seedUser(t, db, "learner@example.com", 0)

	records := []models.UserProgress{
		{UserID: user.ID, SubjectID: "javascript", TopicID: "js-variables", Status: models.StatusCompleted},
		{UserID: user.ID, SubjectID: "javascript", TopicID: "js-functions", Status: models.StatusCompleted},
		{UserID: user.ID, SubjectID: "javascript", TopicID: "js-arrays", Status: models.StatusInProgress},
	}
	for i := range records {
		require.NoError(t, progress.Save(&records[i]))
	}

	count, err := progress.CountCompleted(user.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)
}

func TestFindOpenSession(t *testing.T) {
	db := testDB(t)
	sessions := NewSessionStore(db)
	user := seedUser(t, db, "learner@example.com", 0)

	open := &models.LearningSession{
		ID:        "session-open",
		UserID:    user.ID,
		TopicID:   "js-variables",
		StartedAt: time.Now().Add(-time.Hour),
	}
	require.NoError(t, sessions.Create(open))

	closedAt := time.Now().Add(-30 * time.Minute)
	closed := &models.LearningSession{
		ID:          "session-closed",
		UserID:      user.ID,
		TopicID:     "js-functions",
		StartedAt:   time.Now().Add(-2 * time.Hour),
		CompletedAt: &closedAt,
	}
	require.NoError(t, sessions.Create(closed))

	found, err := sessions.FindOpen(user.ID, "js-variables")
	require.NoError(t, err)
	assert.Equal(t, "session-open", found.ID)

	// A closed session does not count as open.
	_, err = sessions.FindOpen(user.ID, "js-functions")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = sessions.FindOpen(user.ID, "js-arrays")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUnlockedIDs(t *testing.T) {
	db := testDB(t)
	achievements := NewAchievementStore(db)
	user := seedUser(t, db, "learner@example.com", 0)

	catalog := []models.Achievement{
		{Code: "first-steps", Title: "First Steps", Condition: models.ConditionTopicsCompleted, Threshold: 1, SortOrder: 10},
		{Code: "knowledge-seeker", Title: "Knowledge Seeker", Condition: models.ConditionTopicsCompleted, Threshold: 5, SortOrder: 20},
	}
	for i := range catalog {
		require.NoError(t, db.Create(&catalog[i]).Error)
	}

	require.NoError(t, achievements.Unlock(user.ID, catalog[0].ID))

	ids, err := achievements.UnlockedIDs(user.ID)
	require.NoError(t, err)
	assert.True(t, ids[catalog[0].ID])
	assert.False(t, ids[catalog[1].ID])

	// Unlocking the same achievement twice trips the unique index.
	err = achievements.Unlock(user.ID, catalog[0].ID)
	require.Error(t, err)

	unlocked, err := achievements.ListUnlocked(user.ID)
	require.NoError(t, err)
	require.Len(t, unlocked, 1)
	assert.Equal(t, "First Steps", unlocked[0].Achievement.Title)
}

func TestCatalogOrder(t *testing.T) {
	db := testDB(t)
	achievements := NewAchievementStore(db)

	entries := []models.Achievement{
		{Code: "late", Title: "Late", SortOrder: 30},
		{Code: "early", Title: "Early", SortOrder: 10},
		{Code: "middle", Title: "Middle", SortOrder: 20},
	}
	for i := range entries {
		require.NoError(t, db.Create(&entries[i]).Error)
	}

	catalog, err := achievements.Catalog()
	require.NoError(t, err)
	require.Len(t, catalog, 3)
	assert.Equal(t, "early", catalog[0].Code)
	assert.Equal(t, "middle", catalog[1].Code)
	assert.Equal(t, "late", catalog[2].Code)
}

func TestCurriculumStore(t *testing.T) {
	db := testDB(t)
	curriculum := NewCurriculumStore(db)

	subject := &models.Subject{ID: "javascript", Title: "JavaScript", SortOrder: 1}
	require.NoError(t, db.Create(subject).Error)
	topics := []models.Topic{
		{ID: "js-functions", SubjectID: "javascript", Title: "Functions", SortOrder: 2},
		{ID: "js-variables", SubjectID: "javascript", Title: "Variables", SortOrder: 1},
	}
	for i := range topics {
		require.NoError(t, db.Create(&topics[i]).Error)
	}

	got, err := curriculum.GetSubject("javascript")
	require.NoError(t, err)
	require.Len(t, got.Topics, 2)
	assert.Equal(t, "js-variables", got.Topics[0].ID, "topics come back in sort order")

	count, err := curriculum.CountTopics("javascript")
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)

	_, err = curriculum.GetTopic("js-missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestWrapErrTaxonomy(t *testing.T) {
	assert.NoError(t, wrapErr("noop", nil))
	assert.ErrorIs(t, wrapErr("lookup", gorm.ErrRecordNotFound), ErrNotFound)

	wrapped := wrapErr("write", errors.New("disk full"))
	var storageErr *StorageError
	require.ErrorAs(t, wrapped, &storageErr)
	assert.Equal(t, "write", storageErr.Op)
}
