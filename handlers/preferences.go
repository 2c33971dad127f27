// handlers/preferences.go
package handlers

import (
	"codequest/middleware"
	"codequest/store"
	"codequest/utils"

	"github.com/gofiber/fiber/v2"
)

type PreferencesRequest struct {
	Theme         *string `json:"theme"`
	Notifications *bool   `json:"notifications"`
	SoundEffects  *bool   `json:"sound_effects"`
	AutoSave      *bool   `json:"auto_save"`
}

type PreferencesHandler struct {
	users *store.UserStore
}

func NewPreferencesHandler(users *store.UserStore) *PreferencesHandler {
	return &PreferencesHandler{users: users}
}

// Get retrieves the user's preferences.
func (h *PreferencesHandler) Get(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return utils.Error(c, 401, err.Error())
	}

	user, err := h.users.GetByID(userID)
	if err != nil {
		return utils.StoreError(c, err)
	}

	return utils.Success(c, fiber.Map{"preferences": user.Preferences})
}

// Save merges the provided fields onto the user's preferences.
func (h *PreferencesHandler) Save(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return utils.Error(c, 401, err.Error())
	}

	var req PreferencesRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.Error(c, 400, "Invalid request body")
	}

	if req.Theme != nil && !validTheme(*req.Theme) {
		return utils.Error(c, 400, "Theme must be light, dark or system")
	}

	user, err := h.users.GetByID(userID)
	if err != nil {
		return utils.StoreError(c, err)
	}

	if req.Theme != nil {
		user.Preferences.Theme = *req.Theme
	}
	if req.Notifications != nil {
		user.Preferences.Notifications = *req.Notifications
	}
	if req.SoundEffects != nil {
		user.Preferences.SoundEffects = *req.SoundEffects
	}
	if req.AutoSave != nil {
		user.Preferences.AutoSave = *req.AutoSave
	}

	if err := h.users.Save(user); err != nil {
		return utils.StoreError(c, err)
	}

	return utils.Success(c, fiber.Map{"preferences": user.Preferences})
}

func validTheme(theme string) bool {
	switch theme {
	case "light", "dark", "system":
		return true
	}
	return false
}
