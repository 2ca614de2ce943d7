package aggregate

import (
	"context"

	"github.com/noah-isme/gradebook-api/internal/models"
	"gorm.io/gorm"
)

// GradeNeedsManualGrade reports whether a grade has received neither an
// automatic nor a manual score.
func GradeNeedsManualGrade(g models.Grade) bool {
	return g.AutoScore == nil && g.ManualScore == nil
}

// GradeFailedTests reports whether a code-typed grade scored below its
// cell's maximum on the automated tests. Written cells and ungraded cells
// never count as failed.
func GradeFailedTests(g models.Grade, cell models.GradeCell) bool {
	return cell.CellType == models.CellTypeCode && g.AutoScore != nil && *g.AutoScore < cell.MaxScore
}

const needsManualGradeCond = "grade.auto_score IS NULL AND grade.manual_score IS NULL"

const failedTestsCond = "grade_cell.cell_type = 'code' " +
	"AND grade.auto_score IS NOT NULL AND grade.auto_score < grade_cell.max_score"

func existsGrades(q *gorm.DB) (bool, error) {
	var count int64
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// SubmittedNotebookNeedsManualGrade reports whether any grade in the
// submitted notebook still awaits a score.
func SubmittedNotebookNeedsManualGrade(ctx context.Context, db *gorm.DB, submittedNotebookID string) (bool, error) {
	return existsGrades(db.WithContext(ctx).Model(&models.Grade{}).
		Where("grade.submitted_notebook_id = ?", submittedNotebookID).
		Where(needsManualGradeCond))
}

// SubmittedAssignmentNeedsManualGrade reports whether any grade in any
// notebook of the submission still awaits a score.
func SubmittedAssignmentNeedsManualGrade(ctx context.Context, db *gorm.DB, submittedAssignmentID string) (bool, error) {
	return existsGrades(db.WithContext(ctx).Model(&models.Grade{}).
		Joins("JOIN submitted_notebook ON submitted_notebook.id = grade.submitted_notebook_id").
		Where("submitted_notebook.submitted_assignment_id = ?", submittedAssignmentID).
		Where(needsManualGradeCond))
}

// NotebookNeedsManualGrade reports whether any submission of the template
// notebook holds a grade that still awaits a score.
func NotebookNeedsManualGrade(ctx context.Context, db *gorm.DB, notebookID string) (bool, error) {
	return existsGrades(db.WithContext(ctx).Model(&models.Grade{}).
		Joins("JOIN submitted_notebook ON submitted_notebook.id = grade.submitted_notebook_id").
		Where("submitted_notebook.notebook_id = ?", notebookID).
		Where(needsManualGradeCond))
}

// SubmittedNotebookFailedTests reports whether any code cell in the
// submitted notebook scored below its maximum on the automated tests.
func SubmittedNotebookFailedTests(ctx context.Context, db *gorm.DB, submittedNotebookID string) (bool, error) {
	return existsGrades(db.WithContext(ctx).Model(&models.Grade{}).
		Joins("JOIN grade_cell ON grade_cell.id = grade.cell_id").
		Where("grade.submitted_notebook_id = ?", submittedNotebookID).
		Where(failedTestsCond))
}
