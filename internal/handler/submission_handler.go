package handler

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/gradebook-api/internal/dto"
	"github.com/noah-isme/gradebook-api/internal/gradebook"
	"github.com/noah-isme/gradebook-api/internal/utils"
)

// SubmissionHandler wires submission and grading HTTP routes. Registering a
// submission mirrors the assignment's rubric into submitted notebooks,
// grades, and comments in one shot; grading then patches those rows by id.
type SubmissionHandler struct {
	gradebook *gradebook.Gradebook
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewSubmissionHandler constructs the handler.
func NewSubmissionHandler(gb *gradebook.Gradebook, validator *validator.Validate, logger zerolog.Logger) *SubmissionHandler {
	return &SubmissionHandler{
		gradebook: gb,
		validator: validator,
		logger:    logger.With().Str("component", "submission_handler").Logger(),
	}
}

// Register attaches submission endpoints to the router group.
func (h *SubmissionHandler) Register(router fiber.Router) {
	router.Get("/assignments/:assignment", h.list)
	router.Get("/assignments/:assignment/students/:student", h.get)
	router.Put("/assignments/:assignment/students/:student", h.upsert)
	router.Delete("/assignments/:assignment/students/:student", h.delete)
	router.Get("/assignments/:assignment/students/:student/notebooks/:notebook", h.getNotebook)

	router.Get("/grades/:id", h.getGrade)
	router.Patch("/grades/:id", h.patchGrade)
	router.Patch("/comments/:id", h.patchComment)
}

func (h *SubmissionHandler) list(c *fiber.Ctx) error {
	submissions, err := h.gradebook.AssignmentSubmissions(c.Context(), c.Params("assignment"))
	if err != nil {
		return respondError(c, requestLogger(h.logger, c), err)
	}
	return utils.SendSuccess(c, "submissions retrieved", submissions)
}

func (h *SubmissionHandler) get(c *fiber.Ctx) error {
	summary, err := h.gradebook.SubmissionSummary(c.Context(), c.Params("assignment"), c.Params("student"))
	if err != nil {
		return respondError(c, requestLogger(h.logger, c), err)
	}
	return utils.SendSuccess(c, "submission retrieved", summary)
}

func (h *SubmissionHandler) upsert(c *fiber.Ctx) error {
	var payload dto.SubmissionUpsertRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "malformed request body")
	}
	if err := h.validator.Struct(payload); err != nil {
		return respondError(c, requestLogger(h.logger, c), err)
	}

	attrs := gradebook.SubmissionAttrs{Timestamp: payload.Timestamp}
	if payload.ExtensionSeconds != nil {
		extension := time.Duration(*payload.ExtensionSeconds * float64(time.Second))
		attrs.Extension = &extension
	}
	submission, err := h.gradebook.UpdateOrCreateSubmission(c.Context(), c.Params("assignment"), c.Params("student"), attrs)
	if err != nil {
		return respondError(c, requestLogger(h.logger, c), err)
	}
	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "submission saved", submission)
}

func (h *SubmissionHandler) delete(c *fiber.Ctx) error {
	if err := h.gradebook.RemoveSubmission(c.Context(), c.Params("assignment"), c.Params("student")); err != nil {
		return respondError(c, requestLogger(h.logger, c), err)
	}
	return utils.SendSuccess(c, "submission removed", fiber.Map{
		"assignment": c.Params("assignment"),
		"student":    c.Params("student"),
	})
}

func (h *SubmissionHandler) getNotebook(c *fiber.Ctx) error {
	summary, err := h.gradebook.SubmittedNotebookSummary(c.Context(), c.Params("notebook"), c.Params("assignment"), c.Params("student"))
	if err != nil {
		return respondError(c, requestLogger(h.logger, c), err)
	}
	return utils.SendSuccess(c, "submitted notebook retrieved", summary)
}

func (h *SubmissionHandler) getGrade(c *fiber.Ctx) error {
	grade, err := h.gradebook.FindGradeByID(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, requestLogger(h.logger, c), err)
	}
	summary, err := h.gradebook.GradeSummary(c.Context(), grade)
	if err != nil {
		return respondError(c, requestLogger(h.logger, c), err)
	}
	return utils.SendSuccess(c, "grade retrieved", summary)
}

func (h *SubmissionHandler) patchGrade(c *fiber.Ctx) error {
	var payload dto.GradePatchRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "malformed request body")
	}
	if payload.AutoScore == nil && payload.ManualScore == nil {
		return utils.SendError(c, fiber.StatusBadRequest, "auto_score or manual_score is required")
	}

	grade, err := h.gradebook.FindGradeByID(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, requestLogger(h.logger, c), err)
	}
	if payload.AutoScore != nil {
		grade.AutoScore = payload.AutoScore
	}
	if payload.ManualScore != nil {
		grade.ManualScore = payload.ManualScore
	}
	if err := h.gradebook.SaveGrade(c.Context(), &grade); err != nil {
		return respondError(c, requestLogger(h.logger, c), err)
	}
	return utils.SendSuccess(c, "grade saved", grade)
}

func (h *SubmissionHandler) patchComment(c *fiber.Ctx) error {
	var payload dto.CommentPatchRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "malformed request body")
	}
	if err := h.validator.Struct(payload); err != nil {
		return respondError(c, requestLogger(h.logger, c), err)
	}

	comment, err := h.gradebook.FindCommentByID(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, requestLogger(h.logger, c), err)
	}
	comment.Text = *payload.Comment
	if err := h.gradebook.SaveComment(c.Context(), &comment); err != nil {
		return respondError(c, requestLogger(h.logger, c), err)
	}
	return utils.SendSuccess(c, "comment saved", comment)
}
