// handlers/sessions.go
package handlers

import (
	"codequest/middleware"
	"codequest/services"
	"codequest/utils"

	"github.com/gofiber/fiber/v2"
)

type StartSessionRequest struct {
	TopicID string `json:"topic_id"`
}

type CompleteSessionRequest struct {
	XPEarned    int `json:"xp_earned"`
	CoinsEarned int `json:"coins_earned"`
	Score       int `json:"score"`
}

type SessionHandler struct {
	recorder    *services.SessionRecorder
	progression *services.ProgressionService
}

func NewSessionHandler(recorder *services.SessionRecorder, progression *services.ProgressionService) *SessionHandler {
	return &SessionHandler{recorder: recorder, progression: progression}
}

// Start opens a learning session for a topic.
func (h *SessionHandler) Start(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return utils.Error(c, 401, err.Error())
	}

	var req StartSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.Error(c, 400, "Invalid request body")
	}

	session, err := h.progression.StartSession(userID, req.TopicID)
	if err != nil {
		return utils.StoreError(c, err)
	}

	return utils.Success(c, fiber.Map{"session": session})
}

// Complete closes a session and applies its rewards.
func (h *SessionHandler) Complete(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return utils.Error(c, 401, err.Error())
	}

	sessionID := c.Params("id")
	var req CompleteSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.Error(c, 400, "Invalid request body")
	}

	outcome, err := h.progression.CompleteSession(userID, sessionID, req.XPEarned, req.CoinsEarned, req.Score)
	if err != nil {
		return utils.StoreError(c, err)
	}

	return utils.Success(c, fiber.Map{
		"user":             outcome.User,
		"leveled_up":       outcome.LeveledUp,
		"xp_to_next_level": outcome.XPToNextLevel,
		"new_achievements": outcome.NewAchievements,
	})
}

// List returns the user's session history, newest first.
func (h *SessionHandler) List(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return utils.Error(c, 401, err.Error())
	}

	sessions, err := h.recorder.ListByUser(userID)
	if err != nil {
		return utils.StoreError(c, err)
	}

	return utils.Success(c, fiber.Map{
		"sessions": sessions,
		"streak":   services.CurrentStreak(sessions),
	})
}
