package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/gradebook-api/internal/gradebook"
	"github.com/noah-isme/gradebook-api/internal/utils"
)

// ReportHandler wires the aggregate reporting routes: class averages, the
// per-student overview, and the per-notebook grading report.
type ReportHandler struct {
	gradebook *gradebook.Gradebook
	logger    zerolog.Logger
}

// NewReportHandler constructs the handler.
func NewReportHandler(gb *gradebook.Gradebook, logger zerolog.Logger) *ReportHandler {
	return &ReportHandler{
		gradebook: gb,
		logger:    logger.With().Str("component", "report_handler").Logger(),
	}
}

// Register attaches report endpoints to the router group.
func (h *ReportHandler) Register(router fiber.Router) {
	router.Get("/students", h.studentSummaries)
	router.Get("/assignments/:assignment/scores", h.assignmentAverages)
	router.Get("/assignments/:assignment/notebooks/:notebook/scores", h.notebookAverages)
	router.Get("/assignments/:assignment/notebooks/:notebook/submissions", h.notebookSubmissions)
}

func (h *ReportHandler) studentSummaries(c *fiber.Ctx) error {
	summaries, err := h.gradebook.StudentSummaries(c.Context())
	if err != nil {
		return respondError(c, requestLogger(h.logger, c), err)
	}
	return utils.SendSuccess(c, "student summaries retrieved", summaries)
}

func (h *ReportHandler) assignmentAverages(c *fiber.Ctx) error {
	ctx := c.Context()
	assignment := c.Params("assignment")

	score, err := h.gradebook.AverageAssignmentScore(ctx, assignment)
	if err != nil {
		return respondError(c, requestLogger(h.logger, c), err)
	}
	codeScore, err := h.gradebook.AverageAssignmentCodeScore(ctx, assignment)
	if err != nil {
		return respondError(c, requestLogger(h.logger, c), err)
	}
	writtenScore, err := h.gradebook.AverageAssignmentWrittenScore(ctx, assignment)
	if err != nil {
		return respondError(c, requestLogger(h.logger, c), err)
	}

	return utils.SendSuccess(c, "assignment averages retrieved", fiber.Map{
		"name":                  assignment,
		"average_score":         score,
		"average_code_score":    codeScore,
		"average_written_score": writtenScore,
	})
}

func (h *ReportHandler) notebookAverages(c *fiber.Ctx) error {
	ctx := c.Context()
	notebook := c.Params("notebook")
	assignment := c.Params("assignment")

	score, err := h.gradebook.AverageNotebookScore(ctx, notebook, assignment)
	if err != nil {
		return respondError(c, requestLogger(h.logger, c), err)
	}
	codeScore, err := h.gradebook.AverageNotebookCodeScore(ctx, notebook, assignment)
	if err != nil {
		return respondError(c, requestLogger(h.logger, c), err)
	}
	writtenScore, err := h.gradebook.AverageNotebookWrittenScore(ctx, notebook, assignment)
	if err != nil {
		return respondError(c, requestLogger(h.logger, c), err)
	}

	return utils.SendSuccess(c, "notebook averages retrieved", fiber.Map{
		"name":                  notebook,
		"assignment":            assignment,
		"average_score":         score,
		"average_code_score":    codeScore,
		"average_written_score": writtenScore,
	})
}

func (h *ReportHandler) notebookSubmissions(c *fiber.Ctx) error {
	summaries, err := h.gradebook.NotebookSubmissionSummaries(c.Context(), c.Params("notebook"), c.Params("assignment"))
	if err != nil {
		return respondError(c, requestLogger(h.logger, c), err)
	}
	return utils.SendSuccess(c, "notebook submission summaries retrieved", summaries)
}
