package aggregate

import (
	"context"

	"github.com/noah-isme/gradebook-api/internal/models"
	"gorm.io/gorm"
)

// GradeScore resolves the effective score of a single grade: the manual
// score when set, otherwise the automatic score, otherwise zero. A zero
// result is therefore ambiguous between "ungraded" and "confirmed zero";
// callers must consult GradeNeedsManualGrade to tell them apart.
func GradeScore(g models.Grade) float64 {
	if g.ManualScore != nil {
		return *g.ManualScore
	}
	if g.AutoScore != nil {
		return *g.AutoScore
	}
	return 0.0
}

// SubmittedNotebookScore sums the effective grade scores of one submitted
// notebook, restricted to the given cut.
func SubmittedNotebookScore(ctx context.Context, db *gorm.DB, submittedNotebookID string, cut Cut) (float64, error) {
	q := db.WithContext(ctx).Model(&models.Grade{}).
		Select("COALESCE(SUM("+gradeScoreExpr+"), 0.0)").
		Joins("JOIN grade_cell ON grade_cell.id = grade.cell_id").
		Where("grade.submitted_notebook_id = ?", submittedNotebookID)
	return scanFloat(cut.apply(q))
}

// SubmittedAssignmentScore sums the effective grade scores across every
// notebook of one submitted assignment, restricted to the given cut.
func SubmittedAssignmentScore(ctx context.Context, db *gorm.DB, submittedAssignmentID string, cut Cut) (float64, error) {
	q := db.WithContext(ctx).Model(&models.Grade{}).
		Select("COALESCE(SUM("+gradeScoreExpr+"), 0.0)").
		Joins("JOIN grade_cell ON grade_cell.id = grade.cell_id").
		Joins("JOIN submitted_notebook ON submitted_notebook.id = grade.submitted_notebook_id").
		Where("submitted_notebook.submitted_assignment_id = ?", submittedAssignmentID)
	return scanFloat(cut.apply(q))
}

// StudentScore sums the effective grade scores across every submission of
// one student.
func StudentScore(ctx context.Context, db *gorm.DB, studentID string) (float64, error) {
	q := db.WithContext(ctx).Model(&models.Grade{}).
		Select("COALESCE(SUM("+gradeScoreExpr+"), 0.0)").
		Joins("JOIN submitted_notebook ON submitted_notebook.id = grade.submitted_notebook_id").
		Joins("JOIN submitted_assignment ON submitted_assignment.id = submitted_notebook.submitted_assignment_id").
		Where("submitted_assignment.student_id = ?", studentID)
	return scanFloat(q)
}

// AssignmentScoreTotal sums the effective grade scores over every submission
// of an assignment, restricted to the given cut. Dividing by the submission
// count yields the class average.
func AssignmentScoreTotal(ctx context.Context, db *gorm.DB, assignmentID string, cut Cut) (float64, error) {
	q := db.WithContext(ctx).Model(&models.Grade{}).
		Select("COALESCE(SUM("+gradeScoreExpr+"), 0.0)").
		Joins("JOIN grade_cell ON grade_cell.id = grade.cell_id").
		Joins("JOIN notebook ON notebook.id = grade_cell.notebook_id").
		Where("notebook.assignment_id = ?", assignmentID)
	return scanFloat(cut.apply(q))
}

// NotebookScoreTotal sums the effective grade scores over every submission
// of one template notebook, restricted to the given cut.
func NotebookScoreTotal(ctx context.Context, db *gorm.DB, notebookID string, cut Cut) (float64, error) {
	q := db.WithContext(ctx).Model(&models.Grade{}).
		Select("COALESCE(SUM("+gradeScoreExpr+"), 0.0)").
		Joins("JOIN grade_cell ON grade_cell.id = grade.cell_id").
		Where("grade_cell.notebook_id = ?", notebookID)
	return scanFloat(cut.apply(q))
}
