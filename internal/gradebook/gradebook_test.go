package gradebook_test

import (
	"context"
	"fmt"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/gradebook-api/internal/gradebook"
	"github.com/noah-isme/gradebook-api/internal/models"
)

func newGradebook(t *testing.T) *gradebook.Gradebook {
	t.Helper()

	name := strings.ReplaceAll(t.Name(), "/", "_")
	gb, err := gradebook.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name), zerolog.New(io.Discard))
	require.NoError(t, err)
	return gb
}

// seedRubric creates one assignment with one notebook holding a code grade
// cell worth 2, a written grade cell worth 3, and one solution cell, plus
// one student.
func seedRubric(t *testing.T, gb *gradebook.Gradebook) {
	t.Helper()
	ctx := context.Background()

	due := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	_, err := gb.AddAssignment(ctx, "hw1", gradebook.AssignmentAttrs{DueDate: &due})
	require.NoError(t, err)
	_, err = gb.AddNotebook(ctx, "nb1", "hw1")
	require.NoError(t, err)

	codeType := models.CellTypeCode
	writtenType := models.CellTypeWritten
	_, err = gb.AddGradeCell(ctx, "code1", "nb1", "hw1", gradebook.GradeCellAttrs{
		MaxScore: floatPtr(2),
		CellType: &codeType,
	})
	require.NoError(t, err)
	_, err = gb.AddGradeCell(ctx, "written1", "nb1", "hw1", gradebook.GradeCellAttrs{
		MaxScore: floatPtr(3),
		CellType: &writtenType,
	})
	require.NoError(t, err)
	_, err = gb.AddSolutionCell(ctx, "sol1", "nb1", "hw1", gradebook.SolutionCellAttrs{
		CellType: &codeType,
	})
	require.NoError(t, err)

	_, err = gb.AddStudent(ctx, "alice", gradebook.StudentAttrs{
		FirstName: strPtr("Alice"),
		LastName:  strPtr("Adams"),
	})
	require.NoError(t, err)
}

func floatPtr(v float64) *float64 { return &v }
func strPtr(v string) *string     { return &v }

func countRows(t *testing.T, gb *gradebook.Gradebook, table string) int64 {
	t.Helper()
	var n int64
	require.NoError(t, gb.DB().Table(table).Count(&n).Error)
	return n
}

func TestStudentLifecycle(t *testing.T) {
	gb := newGradebook(t)
	ctx := context.Background()

	created, err := gb.AddStudent(ctx, "alice", gradebook.StudentAttrs{
		FirstName: strPtr("Alice"),
		Email:     strPtr("alice@example.com"),
	})
	require.NoError(t, err)
	require.Equal(t, "alice", created.ID)
	require.Equal(t, "Alice", created.FirstName)

	_, err = gb.AddStudent(ctx, "alice", gradebook.StudentAttrs{})
	require.ErrorIs(t, err, gradebook.ErrInvalidEntry)

	_, err = gb.FindStudent(ctx, "nobody")
	require.ErrorIs(t, err, gradebook.ErrMissingEntry)

	// update path leaves unset attributes untouched
	updated, err := gb.UpdateOrCreateStudent(ctx, "alice", gradebook.StudentAttrs{
		LastName: strPtr("Adams"),
	})
	require.NoError(t, err)
	require.Equal(t, "Alice", updated.FirstName)
	require.Equal(t, "Adams", updated.LastName)
	require.Equal(t, "alice@example.com", updated.Email)

	// create path
	_, err = gb.UpdateOrCreateStudent(ctx, "bob", gradebook.StudentAttrs{FirstName: strPtr("Bob")})
	require.NoError(t, err)

	students, err := gb.Students(ctx)
	require.NoError(t, err)
	require.Len(t, students, 2)

	require.NoError(t, gb.RemoveStudent(ctx, "bob"))
	_, err = gb.FindStudent(ctx, "bob")
	require.ErrorIs(t, err, gradebook.ErrMissingEntry)

	err = gb.RemoveStudent(ctx, "bob")
	require.ErrorIs(t, err, gradebook.ErrMissingEntry)
}

func TestAssignmentAndRubric(t *testing.T) {
	gb := newGradebook(t)
	ctx := context.Background()
	seedRubric(t, gb)

	assignment, err := gb.FindAssignment(ctx, "hw1")
	require.NoError(t, err)
	require.NotNil(t, assignment.DueDate)

	_, err = gb.AddAssignment(ctx, "hw1", gradebook.AssignmentAttrs{})
	require.ErrorIs(t, err, gradebook.ErrInvalidEntry)

	// notebook names are only unique within their assignment
	_, err = gb.AddAssignment(ctx, "hw2", gradebook.AssignmentAttrs{})
	require.NoError(t, err)
	_, err = gb.AddNotebook(ctx, "nb1", "hw2")
	require.NoError(t, err)
	_, err = gb.AddNotebook(ctx, "nb1", "hw1")
	require.ErrorIs(t, err, gradebook.ErrInvalidEntry)

	// grade cells need a max score and a valid cell type up front
	_, err = gb.AddGradeCell(ctx, "broken", "nb1", "hw1", gradebook.GradeCellAttrs{})
	require.ErrorIs(t, err, gradebook.ErrInvalidEntry)

	cell, err := gb.FindGradeCell(ctx, "code1", "nb1", "hw1")
	require.NoError(t, err)
	require.Equal(t, models.CellTypeCode, cell.CellType)
	require.Equal(t, 2.0, cell.MaxScore)

	updatedCell, err := gb.UpdateOrCreateGradeCell(ctx, "code1", "nb1", "hw1", gradebook.GradeCellAttrs{
		MaxScore: floatPtr(4),
	})
	require.NoError(t, err)
	require.Equal(t, 4.0, updatedCell.MaxScore)
	require.Equal(t, models.CellTypeCode, updatedCell.CellType)

	solution, err := gb.FindSolutionCell(ctx, "sol1", "nb1", "hw1")
	require.NoError(t, err)
	require.Equal(t, models.CellTypeCode, solution.CellType)
}

func TestAddSubmissionMirrorsRubric(t *testing.T) {
	gb := newGradebook(t)
	ctx := context.Background()
	seedRubric(t, gb)

	submission, err := gb.AddSubmission(ctx, "hw1", "alice", gradebook.SubmissionAttrs{})
	require.NoError(t, err)
	require.NotEmpty(t, submission.ID)

	require.Equal(t, int64(1), countRows(t, gb, "submitted_notebook"))
	require.Equal(t, int64(2), countRows(t, gb, "grade"))
	require.Equal(t, int64(1), countRows(t, gb, "comment"))

	// mirrored grades start unscored
	grade, err := gb.FindGrade(ctx, "code1", "nb1", "hw1", "alice")
	require.NoError(t, err)
	require.Nil(t, grade.AutoScore)
	require.Nil(t, grade.ManualScore)

	comment, err := gb.FindComment(ctx, "sol1", "nb1", "hw1", "alice")
	require.NoError(t, err)
	require.Empty(t, comment.Text)

	// a second registration for the same pair fails and leaves no partial rows
	_, err = gb.AddSubmission(ctx, "hw1", "alice", gradebook.SubmissionAttrs{})
	require.ErrorIs(t, err, gradebook.ErrInvalidEntry)
	require.Equal(t, int64(1), countRows(t, gb, "submitted_assignment"))
	require.Equal(t, int64(1), countRows(t, gb, "submitted_notebook"))
	require.Equal(t, int64(2), countRows(t, gb, "grade"))
	require.Equal(t, int64(1), countRows(t, gb, "comment"))

	_, err = gb.AddSubmission(ctx, "hw1", "nobody", gradebook.SubmissionAttrs{})
	require.ErrorIs(t, err, gradebook.ErrMissingEntry)
	_, err = gb.AddSubmission(ctx, "missing", "alice", gradebook.SubmissionAttrs{})
	require.ErrorIs(t, err, gradebook.ErrMissingEntry)
}

func TestUpdateOrCreateSubmission(t *testing.T) {
	gb := newGradebook(t)
	ctx := context.Background()
	seedRubric(t, gb)

	first, err := gb.UpdateOrCreateSubmission(ctx, "hw1", "alice", gradebook.SubmissionAttrs{})
	require.NoError(t, err)
	require.Nil(t, first.Timestamp)

	ts := time.Date(2026, 3, 1, 11, 0, 0, 0, time.UTC)
	extension := 2 * time.Hour
	second, err := gb.UpdateOrCreateSubmission(ctx, "hw1", "alice", gradebook.SubmissionAttrs{
		Timestamp: &ts,
		Extension: &extension,
	})
	require.NoError(t, err)
	require.Equal(t, first.ID, second.ID)
	require.NotNil(t, second.Timestamp)
	require.True(t, ts.Equal(*second.Timestamp))
	require.NotNil(t, second.Extension)
	require.Equal(t, extension, *second.Extension)

	// updating does not mirror the rubric twice
	require.Equal(t, int64(1), countRows(t, gb, "submitted_notebook"))
}

func TestGradeAndCommentMutation(t *testing.T) {
	gb := newGradebook(t)
	ctx := context.Background()
	seedRubric(t, gb)
	_, err := gb.AddSubmission(ctx, "hw1", "alice", gradebook.SubmissionAttrs{})
	require.NoError(t, err)

	grade, err := gb.FindGrade(ctx, "written1", "nb1", "hw1", "alice")
	require.NoError(t, err)
	grade.ManualScore = floatPtr(1)
	require.NoError(t, gb.SaveGrade(ctx, &grade))

	byID, err := gb.FindGradeByID(ctx, grade.ID)
	require.NoError(t, err)
	require.NotNil(t, byID.ManualScore)
	require.Equal(t, 1.0, *byID.ManualScore)

	comment, err := gb.FindComment(ctx, "sol1", "nb1", "hw1", "alice")
	require.NoError(t, err)
	comment.Text = "nice work"
	require.NoError(t, gb.SaveComment(ctx, &comment))

	commentByID, err := gb.FindCommentByID(ctx, comment.ID)
	require.NoError(t, err)
	require.Equal(t, "nice work", commentByID.Text)

	_, err = gb.FindGrade(ctx, "code1", "nb1", "hw1", "nobody")
	require.ErrorIs(t, err, gradebook.ErrMissingEntry)
}

func TestRemoveSubmissionCascades(t *testing.T) {
	gb := newGradebook(t)
	ctx := context.Background()
	seedRubric(t, gb)
	_, err := gb.AddSubmission(ctx, "hw1", "alice", gradebook.SubmissionAttrs{})
	require.NoError(t, err)

	require.NoError(t, gb.RemoveSubmission(ctx, "hw1", "alice"))

	require.Equal(t, int64(0), countRows(t, gb, "submitted_assignment"))
	require.Equal(t, int64(0), countRows(t, gb, "submitted_notebook"))
	require.Equal(t, int64(0), countRows(t, gb, "grade"))
	require.Equal(t, int64(0), countRows(t, gb, "comment"))

	// the rubric itself survives
	require.Equal(t, int64(2), countRows(t, gb, "grade_cell"))
	require.Equal(t, int64(1), countRows(t, gb, "solution_cell"))
}

func TestRemoveAssignmentCascades(t *testing.T) {
	gb := newGradebook(t)
	ctx := context.Background()
	seedRubric(t, gb)
	_, err := gb.AddSubmission(ctx, "hw1", "alice", gradebook.SubmissionAttrs{})
	require.NoError(t, err)

	require.NoError(t, gb.RemoveAssignment(ctx, "hw1"))

	for _, table := range []string{
		"assignment", "notebook", "grade_cell", "solution_cell",
		"submitted_assignment", "submitted_notebook", "grade", "comment",
	} {
		require.Equal(t, int64(0), countRows(t, gb, table), table)
	}

	// students are never removed by an assignment delete
	require.Equal(t, int64(1), countRows(t, gb, "student"))
}

func TestRemoveStudentCascades(t *testing.T) {
	gb := newGradebook(t)
	ctx := context.Background()
	seedRubric(t, gb)
	_, err := gb.AddSubmission(ctx, "hw1", "alice", gradebook.SubmissionAttrs{})
	require.NoError(t, err)

	require.NoError(t, gb.RemoveStudent(ctx, "alice"))

	require.Equal(t, int64(0), countRows(t, gb, "student"))
	require.Equal(t, int64(0), countRows(t, gb, "submitted_assignment"))
	require.Equal(t, int64(0), countRows(t, gb, "submitted_notebook"))
	require.Equal(t, int64(0), countRows(t, gb, "grade"))
	require.Equal(t, int64(0), countRows(t, gb, "comment"))

	// the assignment and its rubric survive
	require.Equal(t, int64(1), countRows(t, gb, "assignment"))
	require.Equal(t, int64(2), countRows(t, gb, "grade_cell"))
}

func TestRemoveNotebookCascades(t *testing.T) {
	gb := newGradebook(t)
	ctx := context.Background()
	seedRubric(t, gb)
	_, err := gb.AddSubmission(ctx, "hw1", "alice", gradebook.SubmissionAttrs{})
	require.NoError(t, err)

	require.NoError(t, gb.RemoveNotebook(ctx, "nb1", "hw1"))

	require.Equal(t, int64(0), countRows(t, gb, "notebook"))
	require.Equal(t, int64(0), countRows(t, gb, "grade_cell"))
	require.Equal(t, int64(0), countRows(t, gb, "solution_cell"))
	require.Equal(t, int64(0), countRows(t, gb, "submitted_notebook"))
	require.Equal(t, int64(0), countRows(t, gb, "grade"))
	require.Equal(t, int64(0), countRows(t, gb, "comment"))

	// the submission record itself remains
	require.Equal(t, int64(1), countRows(t, gb, "submitted_assignment"))
}

func TestSubmissionLists(t *testing.T) {
	gb := newGradebook(t)
	ctx := context.Background()
	seedRubric(t, gb)
	_, err := gb.AddStudent(ctx, "bob", gradebook.StudentAttrs{})
	require.NoError(t, err)
	_, err = gb.AddSubmission(ctx, "hw1", "alice", gradebook.SubmissionAttrs{})
	require.NoError(t, err)
	_, err = gb.AddSubmission(ctx, "hw1", "bob", gradebook.SubmissionAttrs{})
	require.NoError(t, err)

	byAssignment, err := gb.AssignmentSubmissions(ctx, "hw1")
	require.NoError(t, err)
	require.Len(t, byAssignment, 2)

	byNotebook, err := gb.NotebookSubmissions(ctx, "nb1", "hw1")
	require.NoError(t, err)
	require.Len(t, byNotebook, 2)

	byStudent, err := gb.StudentSubmissions(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, byStudent, 1)

	submittedNotebook, err := gb.FindSubmissionNotebook(ctx, "nb1", "hw1", "alice")
	require.NoError(t, err)
	again, err := gb.FindSubmissionNotebookByID(ctx, submittedNotebook.ID)
	require.NoError(t, err)
	require.Equal(t, submittedNotebook.ID, again.ID)
}
