package handler_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/gradebook-api/internal/config"
	"github.com/noah-isme/gradebook-api/internal/gradebook"
	"github.com/noah-isme/gradebook-api/internal/handler"
	"github.com/noah-isme/gradebook-api/internal/router"
	"github.com/noah-isme/gradebook-api/internal/utils"
)

func setupApp(t *testing.T) (*fiber.App, *gradebook.Gradebook) {
	t.Helper()

	name := strings.ReplaceAll(t.Name(), "/", "_")
	gb, err := gradebook.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name), zerolog.New(io.Discard))
	require.NoError(t, err)

	validate := validator.New(validator.WithRequiredStructEnabled())
	logger := zerolog.New(io.Discard)

	app := fiber.New()
	router.Register(app, config.Config{AppName: "Test", JWTSecret: "secret"}, router.Dependencies{
		Gradebook:         gb,
		StudentHandler:    handler.NewStudentHandler(gb, validate, logger),
		AssignmentHandler: handler.NewAssignmentHandler(gb, validate, logger),
		SubmissionHandler: handler.NewSubmissionHandler(gb, validate, logger),
		ReportHandler:     handler.NewReportHandler(gb, logger),
		JWTMiddleware: func(c *fiber.Ctx) error {
			return c.Next()
		},
	})

	return app, gb
}

func doJSON(t *testing.T, app *fiber.App, method, path string, payload any) (int, utils.APIResponse) {
	t.Helper()

	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(encoded)
	}
	req := httptest.NewRequest(method, path, body)
	if payload != nil {
		req.Header.Set("Content-Type", fiber.MIMEApplicationJSON)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var parsed utils.APIResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&parsed))
	return resp.StatusCode, parsed
}

func TestStudentEndpoints(t *testing.T) {
	app, _ := setupApp(t)

	status, body := doJSON(t, app, fiber.MethodPut, "/api/v1/students/alice", fiber.Map{
		"first_name": "Alice",
		"last_name":  "Adams",
		"email":      "alice@example.com",
	})
	require.Equal(t, fiber.StatusOK, status)
	require.True(t, body.Success)

	status, body = doJSON(t, app, fiber.MethodGet, "/api/v1/students/alice", nil)
	require.Equal(t, fiber.StatusOK, status)
	student, ok := body.Data.(map[string]any)
	require.True(t, ok)
	require.Equal(t, "Alice", student["first_name"])

	status, body = doJSON(t, app, fiber.MethodGet, "/api/v1/students/nobody", nil)
	require.Equal(t, fiber.StatusNotFound, status)
	require.False(t, body.Success)

	status, _ = doJSON(t, app, fiber.MethodPut, "/api/v1/students/bob", fiber.Map{
		"email": "not-an-email",
	})
	require.Equal(t, fiber.StatusBadRequest, status)

	status, _ = doJSON(t, app, fiber.MethodDelete, "/api/v1/students/alice", nil)
	require.Equal(t, fiber.StatusOK, status)
	status, _ = doJSON(t, app, fiber.MethodGet, "/api/v1/students/alice", nil)
	require.Equal(t, fiber.StatusNotFound, status)
}

func TestSubmissionEndpoints(t *testing.T) {
	app, _ := setupApp(t)

	// rubric: hw1 with one notebook and one code cell
	status, _ := doJSON(t, app, fiber.MethodPut, "/api/v1/assignments/hw1", fiber.Map{})
	require.Equal(t, fiber.StatusOK, status)
	status, _ = doJSON(t, app, fiber.MethodPut, "/api/v1/assignments/hw1/notebooks/nb1", nil)
	require.Equal(t, fiber.StatusOK, status)
	status, _ = doJSON(t, app, fiber.MethodPut, "/api/v1/assignments/hw1/notebooks/nb1/grade_cells/code1", fiber.Map{
		"max_score": 2,
		"cell_type": "code",
	})
	require.Equal(t, fiber.StatusOK, status)

	// a bogus cell type is rejected before it reaches the store
	status, _ = doJSON(t, app, fiber.MethodPut, "/api/v1/assignments/hw1/notebooks/nb1/grade_cells/code2", fiber.Map{
		"max_score": 2,
		"cell_type": "markdown",
	})
	require.Equal(t, fiber.StatusBadRequest, status)

	status, _ = doJSON(t, app, fiber.MethodPut, "/api/v1/students/alice", fiber.Map{})
	require.Equal(t, fiber.StatusOK, status)

	status, _ = doJSON(t, app, fiber.MethodPut, "/api/v1/submissions/assignments/hw1/students/alice", fiber.Map{})
	require.Equal(t, fiber.StatusCreated, status)

	// an unknown student cannot submit
	status, _ = doJSON(t, app, fiber.MethodPut, "/api/v1/submissions/assignments/hw1/students/nobody", fiber.Map{})
	require.Equal(t, fiber.StatusNotFound, status)

	status, body := doJSON(t, app, fiber.MethodGet, "/api/v1/submissions/assignments/hw1/students/alice", nil)
	require.Equal(t, fiber.StatusOK, status)
	summary, ok := body.Data.(map[string]any)
	require.True(t, ok)
	require.Equal(t, 2.0, summary["max_score"])
	require.Equal(t, 0.0, summary["score"])

	status, body = doJSON(t, app, fiber.MethodGet, "/api/v1/reports/assignments/hw1/scores", nil)
	require.Equal(t, fiber.StatusOK, status)
	averages, ok := body.Data.(map[string]any)
	require.True(t, ok)
	require.Equal(t, 0.0, averages["average_score"])
}
