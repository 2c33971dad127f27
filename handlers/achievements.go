// handlers/achievements.go
package handlers

import (
	"codequest/middleware"
	"codequest/services"
	"codequest/store"
	"codequest/utils"

	"github.com/gofiber/fiber/v2"
)

type AchievementHandler struct {
	achievements *store.AchievementStore
	progression  *services.ProgressionService
}

func NewAchievementHandler(achievements *store.AchievementStore, progression *services.ProgressionService) *AchievementHandler {
	return &AchievementHandler{achievements: achievements, progression: progression}
}

// List returns the catalog with the user's unlock state overlaid. Secret
// achievements stay hidden until unlocked.
func (h *AchievementHandler) List(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return utils.Error(c, 401, err.Error())
	}

	catalog, err := h.achievements.Catalog()
	if err != nil {
		return utils.StoreError(c, err)
	}

	unlocked, err := h.achievements.ListUnlocked(userID)
	if err != nil {
		return utils.StoreError(c, err)
	}

	unlockedAt := make(map[uint]interface{}, len(unlocked))
	for _, ua := range unlocked {
		unlockedAt[ua.AchievementID] = ua.UnlockedAt
	}

	entries := make([]fiber.Map, 0, len(catalog))
	for _, achievement := range catalog {
		_, isUnlocked := unlockedAt[achievement.ID]
		if achievement.IsSecret && !isUnlocked {
			continue
		}

		entry := fiber.Map{
			"id":          achievement.ID,
			"code":        achievement.Code,
			"title":       achievement.Title,
			"description": achievement.Description,
			"icon":        achievement.Icon,
			"type":        achievement.Type,
			"xp_reward":   achievement.XPReward,
			"coin_reward": achievement.CoinReward,
			"unlocked":    isUnlocked,
		}
		if isUnlocked {
			entry["unlocked_at"] = unlockedAt[achievement.ID]
		}
		entries = append(entries, entry)
	}

	return utils.Success(c, fiber.Map{
		"achievements": entries,
		"total":        len(catalog),
		"unlocked":     len(unlocked),
	})
}

// Check re-evaluates the rule table and awards anything newly qualified.
func (h *AchievementHandler) Check(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return utils.Error(c, 401, err.Error())
	}

	earned, user, err := h.progression.CheckAchievements(userID)
	if err != nil {
		return utils.StoreError(c, err)
	}

	return utils.Success(c, fiber.Map{
		"new_achievements": earned,
		"user":             user,
	})
}
