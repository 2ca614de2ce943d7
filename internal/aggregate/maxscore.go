package aggregate

import (
	"context"

	"github.com/noah-isme/gradebook-api/internal/models"
	"gorm.io/gorm"
)

// NotebookMaxScore sums the max scores of a template notebook's grade cells,
// restricted to the given cut.
func NotebookMaxScore(ctx context.Context, db *gorm.DB, notebookID string, cut Cut) (float64, error) {
	q := db.WithContext(ctx).Model(&models.GradeCell{}).
		Select("COALESCE(SUM(grade_cell.max_score), 0.0)").
		Where("grade_cell.notebook_id = ?", notebookID)
	return scanFloat(cut.apply(q))
}

// AssignmentMaxScore sums the max scores of every grade cell under an
// assignment, restricted to the given cut.
func AssignmentMaxScore(ctx context.Context, db *gorm.DB, assignmentID string, cut Cut) (float64, error) {
	q := db.WithContext(ctx).Model(&models.GradeCell{}).
		Select("COALESCE(SUM(grade_cell.max_score), 0.0)").
		Joins("JOIN notebook ON notebook.id = grade_cell.notebook_id").
		Where("notebook.assignment_id = ?", assignmentID)
	return scanFloat(cut.apply(q))
}

// SubmittedNotebookMaxScore resolves the max score of a submitted notebook
// through its template notebook, restricted to the given cut.
func SubmittedNotebookMaxScore(ctx context.Context, db *gorm.DB, submittedNotebookID string, cut Cut) (float64, error) {
	q := db.WithContext(ctx).Model(&models.GradeCell{}).
		Select("COALESCE(SUM(grade_cell.max_score), 0.0)").
		Joins("JOIN submitted_notebook ON submitted_notebook.notebook_id = grade_cell.notebook_id").
		Where("submitted_notebook.id = ?", submittedNotebookID)
	return scanFloat(cut.apply(q))
}

// SubmittedAssignmentMaxScore resolves the max score of a submitted
// assignment through its template assignment, restricted to the given cut.
func SubmittedAssignmentMaxScore(ctx context.Context, db *gorm.DB, submittedAssignmentID string, cut Cut) (float64, error) {
	q := db.WithContext(ctx).Model(&models.GradeCell{}).
		Select("COALESCE(SUM(grade_cell.max_score), 0.0)").
		Joins("JOIN notebook ON notebook.id = grade_cell.notebook_id").
		Joins("JOIN submitted_assignment ON submitted_assignment.assignment_id = notebook.assignment_id").
		Where("submitted_assignment.id = ?", submittedAssignmentID)
	return scanFloat(cut.apply(q))
}

// StudentMaxScore is the sum of the max scores of every assignment in the
// gradebook, the denominator for a student's overall standing regardless of
// what they have submitted.
func StudentMaxScore(ctx context.Context, db *gorm.DB) (float64, error) {
	q := db.WithContext(ctx).Model(&models.GradeCell{}).
		Select("COALESCE(SUM(grade_cell.max_score), 0.0)")
	return scanFloat(q)
}
