// handlers/auth.go
package handlers

import (
	"errors"
	"strings"
	"time"

	"codequest/middleware"
	"codequest/models"
	"codequest/store"
	"codequest/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// New accounts start with a small coin grant and the welcome badge.
const (
	starterCoins = 100
	welcomeBadge = "Welcome"
	demoEmail    = "demo@codequest.io"
)

type SignupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthResponse struct {
	Success bool         `json:"success"`
	Token   string       `json:"token,omitempty"`
	User    *models.User `json:"user,omitempty"`
	Error   string       `json:"error,omitempty"`
}

type AuthHandler struct {
	users *store.UserStore
}

func NewAuthHandler(users *store.UserStore) *AuthHandler {
	return &AuthHandler{users: users}
}

// Signup registers a new account. Passwords are stored bcrypt-hashed only.
func (h *AuthHandler) Signup(c *fiber.Ctx) error {
	var req SignupRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(AuthResponse{Error: "Invalid request body"})
	}

	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	req.Name = strings.TrimSpace(req.Name)

	if req.Email == "" || !strings.Contains(req.Email, "@") {
		return c.Status(400).JSON(AuthResponse{Error: "A valid email is required"})
	}
	if req.Name == "" {
		return c.Status(400).JSON(AuthResponse{Error: "Name is required"})
	}
	if len(req.Password) < 8 {
		return c.Status(400).JSON(AuthResponse{Error: "Password must be at least 8 characters"})
	}

	if _, err := h.users.GetByEmail(req.Email); err == nil {
		return c.Status(409).JSON(AuthResponse{Error: "An account with this email already exists"})
	} else if !errors.Is(err, store.ErrNotFound) {
		return c.Status(500).JSON(AuthResponse{Error: "Failed to create account"})
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return c.Status(500).JSON(AuthResponse{Error: "Failed to create account"})
	}

	user := models.User{
		Email:       req.Email,
		Name:        req.Name,
		Password:    string(hash),
		Level:       1,
		Coins:       starterCoins,
		Badges:      []string{welcomeBadge},
		LastLoginAt: time.Now(),
		Preferences: models.UserPreferences{
			Theme:         "dark",
			Notifications: true,
			SoundEffects:  true,
			AutoSave:      true,
		},
	}

	if err := h.users.Create(&user); err != nil {
		return c.Status(500).JSON(AuthResponse{Error: "Failed to create account"})
	}

	token, err := generateToken(&user)
	if err != nil {
		return c.Status(500).JSON(AuthResponse{Error: "Failed to generate token"})
	}

	return c.JSON(AuthResponse{Success: true, Token: token, User: &user})
}

// Login authenticates by email and password.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(AuthResponse{Error: "Invalid request body"})
	}

	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	if req.Email == "" || req.Password == "" {
		return c.Status(400).JSON(AuthResponse{Error: "Email and password required"})
	}

	user, err := h.users.GetByEmail(req.Email)
	if err != nil {
		return c.Status(401).JSON(AuthResponse{Error: "Invalid credentials"})
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return c.Status(401).JSON(AuthResponse{Error: "Invalid credentials"})
	}

	user.LastLoginAt = time.Now()
	if err := h.users.Save(user); err != nil {
		return c.Status(500).JSON(AuthResponse{Error: "Failed to update login time"})
	}

	token, err := generateToken(user)
	if err != nil {
		return c.Status(500).JSON(AuthResponse{Error: "Failed to generate token"})
	}

	return c.JSON(AuthResponse{Success: true, Token: token, User: user})
}

// DemoLogin signs into a shared demo account with pre-seeded progression,
// creating it on first use.
func (h *AuthHandler) DemoLogin(c *fiber.Ctx) error {
	user, err := h.users.GetByEmail(demoEmail)
	if errors.Is(err, store.ErrNotFound) {
		user = &models.User{
			Email:  demoEmail,
			Name:   "Demo User",
			IsDemo: true,
			Level:  3,
			XP:     2500,
			Coins:  500,
			Badges: []string{welcomeBadge, "First Steps", "Quick Learner"},
			Preferences: models.UserPreferences{
				Theme:         "dark",
				Notifications: true,
				SoundEffects:  true,
				AutoSave:      true,
			},
		}
		// Random password: the demo account is only reachable through
		// this endpoint, never through Login.
		hash, hashErr := bcrypt.GenerateFromPassword([]byte(time.Now().String()), bcrypt.DefaultCost)
		if hashErr != nil {
			return c.Status(500).JSON(AuthResponse{Error: "Failed to create demo account"})
		}
		user.Password = string(hash)

		if err := h.users.Create(user); err != nil {
			return c.Status(500).JSON(AuthResponse{Error: "Failed to create demo account"})
		}
	} else if err != nil {
		return c.Status(500).JSON(AuthResponse{Error: "Failed to load demo account"})
	}

	user.LastLoginAt = time.Now()
	if err := h.users.Save(user); err != nil {
		return c.Status(500).JSON(AuthResponse{Error: "Failed to update login time"})
	}

	token, err := generateToken(user)
	if err != nil {
		return c.Status(500).JSON(AuthResponse{Error: "Failed to generate token"})
	}

	return c.JSON(AuthResponse{Success: true, Token: token, User: user})
}

// Logout is stateless on the server; the client discards its token.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	return utils.Success(c, fiber.Map{"message": "Logged out"})
}

// Me returns the authenticated user's current snapshot.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return utils.Error(c, 401, err.Error())
	}

	user, err := h.users.GetByID(userID)
	if err != nil {
		return utils.StoreError(c, err)
	}

	return utils.Success(c, fiber.Map{"user": user})
}

func generateToken(user *models.User) (string, error) {
	claims := jwt.MapClaims{
		"user_id": user.ID,
		"email":   user.Email,
		"exp":     time.Now().Add(7 * 24 * time.Hour).Unix(),
		"iat":     time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(middleware.JWTSecret())
}
