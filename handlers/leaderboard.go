// handlers/leaderboard.go
package handlers

import (
	"strconv"

	"codequest/store"
	"codequest/utils"

	"github.com/gofiber/fiber/v2"
)

type LeaderboardHandler struct {
	users *store.UserStore
}

func NewLeaderboardHandler(users *store.UserStore) *LeaderboardHandler {
	return &LeaderboardHandler{users: users}
}

// List returns the global leaderboard.
// GET /api/leaderboard?category=xp&limit=100&offset=0
func (h *LeaderboardHandler) List(c *fiber.Ctx) error {
	category := c.Query("category", "xp")
	limit := clampInt(parseIntDefault(c.Query("limit"), 100), 1, 100)
	offset := maxInt(parseIntDefault(c.Query("offset"), 0), 0)

	users, err := h.users.Leaderboard(category, limit, offset)
	if err != nil {
		return utils.StoreError(c, err)
	}

	// Strip anything a public listing should not carry
	entries := make([]fiber.Map, 0, len(users))
	for i, user := range users {
		entries = append(entries, fiber.Map{
			"rank":   offset + i + 1,
			"name":   user.Name,
			"avatar": user.Avatar,
			"level":  user.Level,
			"xp":     user.XP,
			"badges": len(user.Badges),
		})
	}

	total, err := h.users.Count()
	if err != nil {
		return utils.StoreError(c, err)
	}

	return utils.Success(c, fiber.Map{
		"users":    entries,
		"category": category,
		"total":    total,
		"limit":    limit,
		"offset":   offset,
	})
}

func parseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	return def
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
