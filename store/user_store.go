// store/user_store.go
package store

import (
	"codequest/models"

	"gorm.io/gorm"
)

// UserStore persists User records. Constructed with an injected *gorm.DB
// so tests can run against an isolated database.
type UserStore struct {
	db *gorm.DB
}

func NewUserStore(db *gorm.DB) *UserStore {
	return &UserStore{db: db}
}

// WithTx returns a copy bound to the given transaction handle.
func (s *UserStore) WithTx(tx *gorm.DB) *UserStore {
	return &UserStore{db: tx}
}

func (s *UserStore) GetByID(id uint) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, id).Error; err != nil {
		return nil, wrapErr("get user", err)
	}
	return &user, nil
}

func (s *UserStore) GetByEmail(email string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, wrapErr("get user by email", err)
	}
	return &user, nil
}

func (s *UserStore) Create(user *models.User) error {
	return wrapErr("create user", s.db.Create(user).Error)
}

func (s *UserStore) Save(user *models.User) error {
	return wrapErr("save user", s.db.Save(user).Error)
}

// Leaderboard categories map to user columns; anything unknown sorts by XP.
func (s *UserStore) Leaderboard(category string, limit, offset int) ([]models.User, error) {
	var orderBy string
	switch category {
	case "level":
		orderBy = "level DESC, xp DESC"
	case "coins":
		orderBy = "coins DESC, xp DESC"
	default:
		orderBy = "xp DESC, level DESC"
	}

	var users []models.User
	err := s.db.Where("is_demo = ?", false).
		Order(orderBy).
		Limit(limit).
		Offset(offset).
		Find(&users).Error
	if err != nil {
		return nil, wrapErr("list leaderboard", err)
	}
	return users, nil
}

func (s *UserStore) Count() (int64, error) {
	var total int64
	if err := s.db.Model(&models.User{}).Where("is_demo = ?", false).Count(&total).Error; err != nil {
		return 0, wrapErr("count users", err)
	}
	return total, nil
}
