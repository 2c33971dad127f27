// handlers/subjects.go - Curriculum browsing with progress overlay
package handlers

import (
	"codequest/middleware"
	"codequest/models"
	"codequest/services"
	"codequest/store"
	"codequest/utils"

	"github.com/gofiber/fiber/v2"
)

type SubjectHandler struct {
	curriculum *store.CurriculumStore
	tracker    *services.ProgressTracker
}

func NewSubjectHandler(curriculum *store.CurriculumStore, tracker *services.ProgressTracker) *SubjectHandler {
	return &SubjectHandler{curriculum: curriculum, tracker: tracker}
}

// List returns all subjects with the user's per-subject summary overlaid.
func (h *SubjectHandler) List(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return utils.Error(c, 401, err.Error())
	}

	subjects, err := h.curriculum.ListSubjects()
	if err != nil {
		return utils.StoreError(c, err)
	}

	entries := make([]fiber.Map, 0, len(subjects))
	for _, subject := range subjects {
		summary, err := h.tracker.Summarize(userID, subject.ID)
		if err != nil {
			return utils.StoreError(c, err)
		}
		entries = append(entries, fiber.Map{
			"subject": subject,
			"summary": summary,
		})
	}

	return utils.Success(c, fiber.Map{"subjects": entries})
}

// Get returns one subject with its topics and the user's per-topic state.
func (h *SubjectHandler) Get(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return utils.Error(c, 401, err.Error())
	}

	subject, err := h.curriculum.GetSubject(c.Params("id"))
	if err != nil {
		return utils.StoreError(c, err)
	}

	records, err := h.tracker.ListProgress(userID)
	if err != nil {
		return utils.StoreError(c, err)
	}

	byTopic := make(map[string]models.UserProgress, len(records))
	for _, r := range records {
		byTopic[r.TopicID] = r
	}

	topics := make([]fiber.Map, 0, len(subject.Topics))
	for _, topic := range subject.Topics {
		entry := fiber.Map{
			"topic":  topic,
			"status": models.StatusNotStarted,
		}
		if record, ok := byTopic[topic.ID]; ok {
			entry["status"] = record.Status
			entry["progress"] = record.Progress
			entry["best_score"] = record.BestScore
		}
		topics = append(topics, entry)
	}

	return utils.Success(c, fiber.Map{
		"subject": subject,
		"topics":  topics,
	})
}
