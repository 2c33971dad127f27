// handlers/progress.go
package handlers

import (
	"codequest/middleware"
	"codequest/services"
	"codequest/utils"

	"github.com/gofiber/fiber/v2"
)

type CompleteQuizRequest struct {
	SubjectID   string `json:"subject_id"`
	TopicID     string `json:"topic_id"`
	Score       int    `json:"score"`
	XPEarned    int    `json:"xp_earned"`
	CoinsEarned int    `json:"coins_earned"`
}

type UpsertProgressRequest struct {
	SubjectID string                 `json:"subject_id"`
	TopicID   string                 `json:"topic_id"`
	Patch     services.ProgressPatch `json:"patch"`
}

type ProgressHandler struct {
	tracker     *services.ProgressTracker
	progression *services.ProgressionService
}

func NewProgressHandler(tracker *services.ProgressTracker, progression *services.ProgressionService) *ProgressHandler {
	return &ProgressHandler{tracker: tracker, progression: progression}
}

// List returns all of the user's progress records.
func (h *ProgressHandler) List(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return utils.Error(c, 401, err.Error())
	}

	records, err := h.tracker.ListProgress(userID)
	if err != nil {
		return utils.StoreError(c, err)
	}

	return utils.Success(c, fiber.Map{"progress": records})
}

// Upsert merges a partial update onto one topic's progress record.
func (h *ProgressHandler) Upsert(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return utils.Error(c, 401, err.Error())
	}

	var req UpsertProgressRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.Error(c, 400, "Invalid request body")
	}

	record, err := h.progression.UpsertProgress(userID, req.SubjectID, req.TopicID, req.Patch)
	if err != nil {
		return utils.StoreError(c, err)
	}

	return utils.Success(c, fiber.Map{"progress": record})
}

// CompleteQuiz runs the full completion pipeline for a topic quiz.
func (h *ProgressHandler) CompleteQuiz(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return utils.Error(c, 401, err.Error())
	}

	var req CompleteQuizRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.Error(c, 400, "Invalid request body")
	}

	outcome, err := h.progression.CompleteQuiz(userID, services.QuizResult{
		SubjectID:   req.SubjectID,
		TopicID:     req.TopicID,
		Score:       req.Score,
		XPEarned:    req.XPEarned,
		CoinsEarned: req.CoinsEarned,
	})
	if err != nil {
		return utils.StoreError(c, err)
	}

	return utils.Success(c, fiber.Map{
		"user":             outcome.User,
		"progress":         outcome.Progress,
		"leveled_up":       outcome.LeveledUp,
		"xp_to_next_level": outcome.XPToNextLevel,
		"new_achievements": outcome.NewAchievements,
	})
}

// SubjectSummary returns the completion aggregate for one subject.
func (h *ProgressHandler) SubjectSummary(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return utils.Error(c, 401, err.Error())
	}

	subjectID := c.Params("id")
	summary, err := h.tracker.Summarize(userID, subjectID)
	if err != nil {
		return utils.StoreError(c, err)
	}

	return utils.Success(c, fiber.Map{"summary": summary})
}
