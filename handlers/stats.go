// handlers/stats.go
package handlers

import (
	"time"

	"codequest/middleware"
	"codequest/services"
	"codequest/store"
	"codequest/utils"

	"github.com/gofiber/fiber/v2"
)

type StatsHandler struct {
	users    *store.UserStore
	tracker  *services.ProgressTracker
	recorder *services.SessionRecorder
}

func NewStatsHandler(users *store.UserStore, tracker *services.ProgressTracker, recorder *services.SessionRecorder) *StatsHandler {
	return &StatsHandler{users: users, tracker: tracker, recorder: recorder}
}

// Statistics returns the dashboard aggregate.
func (h *StatsHandler) Statistics(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return utils.Error(c, 401, err.Error())
	}

	user, err := h.users.GetByID(userID)
	if err != nil {
		return utils.StoreError(c, err)
	}

	stats, err := h.tracker.Statistics(user)
	if err != nil {
		return utils.StoreError(c, err)
	}

	return utils.Success(c, fiber.Map{"statistics": stats})
}

// Progression returns level/XP standing for the progress bar.
func (h *StatsHandler) Progression(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return utils.Error(c, 401, err.Error())
	}

	user, err := h.users.GetByID(userID)
	if err != nil {
		return utils.StoreError(c, err)
	}

	xpToNext := services.XPToNextLevel(user.XP)
	intoLevel := 1000 - xpToNext

	return utils.Success(c, fiber.Map{
		"level":            user.Level,
		"xp":               user.XP,
		"coins":            user.Coins,
		"xp_to_next_level": xpToNext,
		"progress_percent": float64(intoLevel) / 10.0,
		"badges":           user.Badges,
	})
}

// Export bundles the user's records for download or backend migration.
func (h *StatsHandler) Export(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return utils.Error(c, 401, err.Error())
	}

	user, err := h.users.GetByID(userID)
	if err != nil {
		return utils.StoreError(c, err)
	}

	progress, err := h.tracker.ListProgress(userID)
	if err != nil {
		return utils.StoreError(c, err)
	}

	sessions, err := h.recorder.ListByUser(userID)
	if err != nil {
		return utils.StoreError(c, err)
	}

	stats, err := h.tracker.Statistics(user)
	if err != nil {
		return utils.StoreError(c, err)
	}

	return utils.Success(c, fiber.Map{
		"user":        user,
		"progress":    progress,
		"sessions":    sessions,
		"statistics":  stats,
		"exported_at": time.Now(),
	})
}
