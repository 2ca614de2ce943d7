package aggregate_test

import (
	"context"
	"fmt"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/gradebook-api/internal/aggregate"
	"github.com/noah-isme/gradebook-api/internal/gradebook"
	"github.com/noah-isme/gradebook-api/internal/models"
)

func floatPtr(v float64) *float64 { return &v }

func TestGradeScore(t *testing.T) {
	require.Equal(t, 0.0, aggregate.GradeScore(models.Grade{}))
	require.Equal(t, 2.0, aggregate.GradeScore(models.Grade{AutoScore: floatPtr(2)}))
	require.Equal(t, 1.0, aggregate.GradeScore(models.Grade{ManualScore: floatPtr(1)}))

	// manual always wins, even a manual zero
	require.Equal(t, 0.0, aggregate.GradeScore(models.Grade{
		AutoScore:   floatPtr(2),
		ManualScore: floatPtr(0),
	}))
}

func TestGradeNeedsManualGrade(t *testing.T) {
	require.True(t, aggregate.GradeNeedsManualGrade(models.Grade{}))
	require.False(t, aggregate.GradeNeedsManualGrade(models.Grade{AutoScore: floatPtr(0)}))
	require.False(t, aggregate.GradeNeedsManualGrade(models.Grade{ManualScore: floatPtr(0)}))
}

func TestGradeFailedTests(t *testing.T) {
	codeCell := models.GradeCell{CellType: models.CellTypeCode, MaxScore: 2}
	writtenCell := models.GradeCell{CellType: models.CellTypeWritten, MaxScore: 2}

	require.True(t, aggregate.GradeFailedTests(models.Grade{AutoScore: floatPtr(1)}, codeCell))
	require.False(t, aggregate.GradeFailedTests(models.Grade{AutoScore: floatPtr(2)}, codeCell))

	// an unscored grade has not failed yet
	require.False(t, aggregate.GradeFailedTests(models.Grade{}, codeCell))
	// written cells never fail tests
	require.False(t, aggregate.GradeFailedTests(models.Grade{AutoScore: floatPtr(0)}, writtenCell))
}

func TestEffectiveDueDate(t *testing.T) {
	require.Nil(t, aggregate.EffectiveDueDate(nil, nil))

	due := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	require.Equal(t, due, *aggregate.EffectiveDueDate(&due, nil))

	extension := time.Hour
	extended := aggregate.EffectiveDueDate(&due, &extension)
	require.Equal(t, due.Add(time.Hour), *extended)

	// an extension without a due date still yields no deadline
	require.Nil(t, aggregate.EffectiveDueDate(nil, &extension))
}

func TestTotalSecondsLate(t *testing.T) {
	due := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	onTime := due.Add(-time.Minute)
	late := due.Add(90 * time.Second)

	require.Equal(t, 0.0, aggregate.TotalSecondsLate(nil, &due))
	require.Equal(t, 0.0, aggregate.TotalSecondsLate(&late, nil))
	require.Equal(t, 0.0, aggregate.TotalSecondsLate(&onTime, &due))
	require.InDelta(t, 90.0, aggregate.TotalSecondsLate(&late, &due), 1e-9)
}

// rollupFixture seeds a class through the facade and hands back the ids the
// aggregate queries key on.
type rollupFixture struct {
	gb                  *gradebook.Gradebook
	assignmentID        string
	notebookID          string
	submissionID        string
	submittedNotebookID string
}

func newRollupFixture(t *testing.T) rollupFixture {
	t.Helper()
	ctx := context.Background()

	name := strings.ReplaceAll(t.Name(), "/", "_")
	gb, err := gradebook.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name), zerolog.New(io.Discard))
	require.NoError(t, err)

	assignment, err := gb.AddAssignment(ctx, "hw1", gradebook.AssignmentAttrs{})
	require.NoError(t, err)
	notebook, err := gb.AddNotebook(ctx, "nb1", "hw1")
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

	_, err = gb.AddStudent(ctx, "alice", gradebook.StudentAttrs{})
	require.NoError(t, err)
	submission, err := gb.AddSubmission(ctx, "hw1", "alice", gradebook.SubmissionAttrs{})
	require.NoError(t, err)
	submittedNotebook, err := gb.FindSubmissionNotebook(ctx, "nb1", "hw1", "alice")
	require.NoError(t, err)

	return rollupFixture{
		gb:                  gb,
		assignmentID:        assignment.ID,
		notebookID:          notebook.ID,
		submissionID:        submission.ID,
		submittedNotebookID: submittedNotebook.ID,
	}
}

func (f rollupFixture) score(t *testing.T, cell string, auto, manual *float64) {
	t.Helper()
	ctx := context.Background()

	grade, err := f.gb.FindGrade(ctx, cell, "nb1", "hw1", "alice")
	require.NoError(t, err)
	grade.AutoScore = auto
	grade.ManualScore = manual
	require.NoError(t, f.gb.SaveGrade(ctx, &grade))
}

func TestScoreRollups(t *testing.T) {
	f := newRollupFixture(t)
	ctx := context.Background()
	db := f.gb.DB()

	// ungraded cells count as zero
	score, err := aggregate.SubmittedNotebookScore(ctx, db, f.submittedNotebookID, aggregate.All)
	require.NoError(t, err)
	require.Equal(t, 0.0, score)

	f.score(t, "code1", floatPtr(2), nil)
	f.score(t, "written1", nil, floatPtr(1))

	score, err = aggregate.SubmittedNotebookScore(ctx, db, f.submittedNotebookID, aggregate.All)
	require.NoError(t, err)
	require.Equal(t, 3.0, score)

	codeScore, err := aggregate.SubmittedNotebookScore(ctx, db, f.submittedNotebookID, aggregate.CodeOnly)
	require.NoError(t, err)
	require.Equal(t, 2.0, codeScore)

	writtenScore, err := aggregate.SubmittedNotebookScore(ctx, db, f.submittedNotebookID, aggregate.WrittenOnly)
	require.NoError(t, err)
	require.Equal(t, 1.0, writtenScore)

	assignmentScore, err := aggregate.SubmittedAssignmentScore(ctx, db, f.submissionID, aggregate.All)
	require.NoError(t, err)
	require.Equal(t, 3.0, assignmentScore)

	studentScore, err := aggregate.StudentScore(ctx, db, "alice")
	require.NoError(t, err)
	require.Equal(t, 3.0, studentScore)

	total, err := aggregate.AssignmentScoreTotal(ctx, db, f.assignmentID, aggregate.All)
	require.NoError(t, err)
	require.Equal(t, 3.0, total)
}

func TestMaxScoreRollups(t *testing.T) {
	f := newRollupFixture(t)
	ctx := context.Background()
	db := f.gb.DB()

	max, err := aggregate.NotebookMaxScore(ctx, db, f.notebookID, aggregate.All)
	require.NoError(t, err)
	require.Equal(t, 5.0, max)

	codeMax, err := aggregate.NotebookMaxScore(ctx, db, f.notebookID, aggregate.CodeOnly)
	require.NoError(t, err)
	require.Equal(t, 2.0, codeMax)

	assignmentMax, err := aggregate.AssignmentMaxScore(ctx, db, f.assignmentID, aggregate.WrittenOnly)
	require.NoError(t, err)
	require.Equal(t, 3.0, assignmentMax)

	submittedMax, err := aggregate.SubmittedNotebookMaxScore(ctx, db, f.submittedNotebookID, aggregate.All)
	require.NoError(t, err)
	require.Equal(t, 5.0, submittedMax)

	studentMax, err := aggregate.StudentMaxScore(ctx, db)
	require.NoError(t, err)
	require.Equal(t, 5.0, studentMax)
}

func TestFlagRollups(t *testing.T) {
	f := newRollupFixture(t)
	ctx := context.Background()
	db := f.gb.DB()

	needsManual, err := aggregate.SubmittedNotebookNeedsManualGrade(ctx, db, f.submittedNotebookID)
	require.NoError(t, err)
	require.True(t, needsManual)

	failed, err := aggregate.SubmittedNotebookFailedTests(ctx, db, f.submittedNotebookID)
	require.NoError(t, err)
	require.False(t, failed)

	// a failing autograde run flips failed_tests but not the written flag
	f.score(t, "code1", floatPtr(1), nil)
	failed, err = aggregate.SubmittedNotebookFailedTests(ctx, db, f.submittedNotebookID)
	require.NoError(t, err)
	require.True(t, failed)

	needsManual, err = aggregate.SubmittedNotebookNeedsManualGrade(ctx, db, f.submittedNotebookID)
	require.NoError(t, err)
	require.True(t, needsManual)

	// reviewing the written cell clears needs_manual_grade everywhere
	f.score(t, "written1", nil, floatPtr(3))
	needsManual, err = aggregate.SubmittedNotebookNeedsManualGrade(ctx, db, f.submittedNotebookID)
	require.NoError(t, err)
	require.False(t, needsManual)

	needsManual, err = aggregate.SubmittedAssignmentNeedsManualGrade(ctx, db, f.submissionID)
	require.NoError(t, err)
	require.False(t, needsManual)

	needsManual, err = aggregate.NotebookNeedsManualGrade(ctx, db, f.notebookID)
	require.NoError(t, err)
	require.False(t, needsManual)
}

func TestNumSubmissions(t *testing.T) {
	f := newRollupFixture(t)
	ctx := context.Background()
	db := f.gb.DB()

	n, err := aggregate.AssignmentNumSubmissions(ctx, db, f.assignmentID)
	require.NoError(t, err)
	require.Equal(t, int64(1), n)

	n, err = aggregate.NotebookNumSubmissions(ctx, db, f.notebookID)
	require.NoError(t, err)
	require.Equal(t, int64(1), n)

	_, err = f.gb.AddStudent(ctx, "bob", gradebook.StudentAttrs{})
	require.NoError(t, err)
	_, err = f.gb.AddSubmission(ctx, "hw1", "bob", gradebook.SubmissionAttrs{})
	require.NoError(t, err)

	n, err = aggregate.AssignmentNumSubmissions(ctx, db, f.assignmentID)
	require.NoError(t, err)
	require.Equal(t, int64(2), n)
}
