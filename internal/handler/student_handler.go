package handler

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/gradebook-api/internal/dto"
	"github.com/noah-isme/gradebook-api/internal/gradebook"
	"github.com/noah-isme/gradebook-api/internal/utils"
)

// StudentHandler wires student HTTP routes.
type StudentHandler struct {
	gradebook *gradebook.Gradebook
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewStudentHandler constructs the handler.
func NewStudentHandler(gb *gradebook.Gradebook, validator *validator.Validate, logger zerolog.Logger) *StudentHandler {
	return &StudentHandler{
		gradebook: gb,
		validator: validator,
		logger:    logger.With().Str("component", "student_handler").Logger(),
	}
}

// Register attaches student endpoints to the router group.
func (h *StudentHandler) Register(router fiber.Router) {
	router.Get("", h.list)
	router.Get("/:student", h.get)
	router.Put("/:student", h.upsert)
	router.Delete("/:student", h.delete)
	router.Get("/:student/submissions", h.submissions)
}

func (h *StudentHandler) list(c *fiber.Ctx) error {
	students, err := h.gradebook.Students(c.Context())
	if err != nil {
		return respondError(c, requestLogger(h.logger, c), err)
	}
	return utils.SendSuccess(c, "students retrieved", students)
}

func (h *StudentHandler) get(c *fiber.Ctx) error {
	student, err := h.gradebook.FindStudent(c.Context(), c.Params("student"))
	if err != nil {
		return respondError(c, requestLogger(h.logger, c), err)
	}
	return utils.SendSuccess(c, "student retrieved", student)
}

func (h *StudentHandler) upsert(c *fiber.Ctx) error {
	var payload dto.StudentUpsertRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "malformed request body")
	}
	if err := h.validator.Struct(payload); err != nil {
		return respondError(c, requestLogger(h.logger, c), err)
	}

	attrs := gradebook.StudentAttrs{
		FirstName: payload.FirstName,
		LastName:  payload.LastName,
		Email:     payload.Email,
	}
	student, err := h.gradebook.UpdateOrCreateStudent(c.Context(), c.Params("student"), attrs)
	if err != nil {
		return respondError(c, requestLogger(h.logger, c), err)
	}
	return utils.SendSuccess(c, "student saved", student)
}

func (h *StudentHandler) delete(c *fiber.Ctx) error {
	id := c.Params("student")
	if err := h.gradebook.RemoveStudent(c.Context(), id); err != nil {
		return respondError(c, requestLogger(h.logger, c), err)
	}
	return utils.SendSuccess(c, "student removed", fiber.Map{"id": id})
}

func (h *StudentHandler) submissions(c *fiber.Ctx) error {
	submissions, err := h.gradebook.StudentSubmissions(c.Context(), c.Params("student"))
	if err != nil {
		return respondError(c, requestLogger(h.logger, c), err)
	}
	return utils.SendSuccess(c, "submissions retrieved", submissions)
}
