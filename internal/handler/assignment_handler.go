package handler

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/gradebook-api/internal/dto"
	"github.com/noah-isme/gradebook-api/internal/gradebook"
	"github.com/noah-isme/gradebook-api/internal/models"
	"github.com/noah-isme/gradebook-api/internal/utils"
)

// AssignmentHandler wires assignment and rubric HTTP routes. Notebooks and
// cells live under their assignment because their names are only unique
// within that scope.
type AssignmentHandler struct {
	gradebook *gradebook.Gradebook
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewAssignmentHandler constructs the handler.
func NewAssignmentHandler(gb *gradebook.Gradebook, validator *validator.Validate, logger zerolog.Logger) *AssignmentHandler {
	return &AssignmentHandler{
		gradebook: gb,
		validator: validator,
		logger:    logger.With().Str("component", "assignment_handler").Logger(),
	}
}

// Register attaches assignment endpoints to the router group.
func (h *AssignmentHandler) Register(router fiber.Router) {
	router.Get("", h.list)
	router.Get("/:assignment", h.get)
	router.Put("/:assignment", h.upsert)
	router.Delete("/:assignment", h.delete)

	router.Get("/:assignment/notebooks/:notebook", h.getNotebook)
	router.Put("/:assignment/notebooks/:notebook", h.upsertNotebook)
	router.Delete("/:assignment/notebooks/:notebook", h.deleteNotebook)

	router.Put("/:assignment/notebooks/:notebook/grade_cells/:cell", h.upsertGradeCell)
	router.Delete("/:assignment/notebooks/:notebook/grade_cells/:cell", h.deleteGradeCell)
	router.Put("/:assignment/notebooks/:notebook/solution_cells/:cell", h.upsertSolutionCell)
	router.Delete("/:assignment/notebooks/:notebook/solution_cells/:cell", h.deleteSolutionCell)
}

func (h *AssignmentHandler) list(c *fiber.Ctx) error {
	assignments, err := h.gradebook.Assignments(c.Context())
	if err != nil {
		return respondError(c, requestLogger(h.logger, c), err)
	}
	return utils.SendSuccess(c, "assignments retrieved", assignments)
}

func (h *AssignmentHandler) get(c *fiber.Ctx) error {
	summary, err := h.gradebook.AssignmentSummary(c.Context(), c.Params("assignment"))
	if err != nil {
		return respondError(c, requestLogger(h.logger, c), err)
	}
	return utils.SendSuccess(c, "assignment retrieved", summary)
}

func (h *AssignmentHandler) upsert(c *fiber.Ctx) error {
	var payload dto.AssignmentUpsertRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "malformed request body")
	}

	attrs := gradebook.AssignmentAttrs{DueDate: payload.DueDate}
	assignment, err := h.gradebook.UpdateOrCreateAssignment(c.Context(), c.Params("assignment"), attrs)
	if err != nil {
		return respondError(c, requestLogger(h.logger, c), err)
	}
	return utils.SendSuccess(c, "assignment saved", assignment)
}

func (h *AssignmentHandler) delete(c *fiber.Ctx) error {
	name := c.Params("assignment")
	if err := h.gradebook.RemoveAssignment(c.Context(), name); err != nil {
		return respondError(c, requestLogger(h.logger, c), err)
	}
	return utils.SendSuccess(c, "assignment removed", fiber.Map{"name": name})
}

func (h *AssignmentHandler) getNotebook(c *fiber.Ctx) error {
	summary, err := h.gradebook.NotebookSummary(c.Context(), c.Params("notebook"), c.Params("assignment"))
	if err != nil {
		return respondError(c, requestLogger(h.logger, c), err)
	}
	return utils.SendSuccess(c, "notebook retrieved", summary)
}

func (h *AssignmentHandler) upsertNotebook(c *fiber.Ctx) error {
	notebook, err := h.gradebook.UpdateOrCreateNotebook(c.Context(), c.Params("notebook"), c.Params("assignment"))
	if err != nil {
		return respondError(c, requestLogger(h.logger, c), err)
	}
	return utils.SendSuccess(c, "notebook saved", notebook)
}

func (h *AssignmentHandler) deleteNotebook(c *fiber.Ctx) error {
	if err := h.gradebook.RemoveNotebook(c.Context(), c.Params("notebook"), c.Params("assignment")); err != nil {
		return respondError(c, requestLogger(h.logger, c), err)
	}
	return utils.SendSuccess(c, "notebook removed", fiber.Map{
		"name":       c.Params("notebook"),
		"assignment": c.Params("assignment"),
	})
}

func (h *AssignmentHandler) upsertGradeCell(c *fiber.Ctx) error {
	var payload dto.GradeCellUpsertRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "malformed request body")
	}
	if err := h.validator.Struct(payload); err != nil {
		return respondError(c, requestLogger(h.logger, c), err)
	}

	attrs := gradebook.GradeCellAttrs{
		MaxScore: payload.MaxScore,
		Source:   payload.Source,
		Checksum: payload.Checksum,
	}
	if payload.CellType != nil {
		cellType := models.CellType(*payload.CellType)
		attrs.CellType = &cellType
	}
	cell, err := h.gradebook.UpdateOrCreateGradeCell(c.Context(), c.Params("cell"), c.Params("notebook"), c.Params("assignment"), attrs)
	if err != nil {
		return respondError(c, requestLogger(h.logger, c), err)
	}
	return utils.SendSuccess(c, "grade cell saved", cell)
}

func (h *AssignmentHandler) deleteGradeCell(c *fiber.Ctx) error {
	if err := h.gradebook.RemoveGradeCell(c.Context(), c.Params("cell"), c.Params("notebook"), c.Params("assignment")); err != nil {
		return respondError(c, requestLogger(h.logger, c), err)
	}
	return utils.SendSuccess(c, "grade cell removed", fiber.Map{"name": c.Params("cell")})
}

func (h *AssignmentHandler) upsertSolutionCell(c *fiber.Ctx) error {
	var payload dto.SolutionCellUpsertRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "malformed request body")
	}
	if err := h.validator.Struct(payload); err != nil {
		return respondError(c, requestLogger(h.logger, c), err)
	}

	attrs := gradebook.SolutionCellAttrs{
		Source:   payload.Source,
		Checksum: payload.Checksum,
	}
	if payload.CellType != nil {
		cellType := models.CellType(*payload.CellType)
		attrs.CellType = &cellType
	}
	cell, err := h.gradebook.UpdateOrCreateSolutionCell(c.Context(), c.Params("cell"), c.Params("notebook"), c.Params("assignment"), attrs)
	if err != nil {
		return respondError(c, requestLogger(h.logger, c), err)
	}
	return utils.SendSuccess(c, "solution cell saved", cell)
}

func (h *AssignmentHandler) deleteSolutionCell(c *fiber.Ctx) error {
	if err := h.gradebook.RemoveSolutionCell(c.Context(), c.Params("cell"), c.Params("notebook"), c.Params("assignment")); err != nil {
		return respondError(c, requestLogger(h.logger, c), err)
	}
	return utils.SendSuccess(c, "solution cell removed", fiber.Map{"name": c.Params("cell")})
}
