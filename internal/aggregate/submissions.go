package aggregate

import (
	"context"
	"time"

	"github.com/noah-isme/gradebook-api/internal/models"
	"gorm.io/gorm"
)

// AssignmentNumSubmissions counts the registered submissions of an
// assignment.
func AssignmentNumSubmissions(ctx context.Context, db *gorm.DB, assignmentID string) (int64, error) {
	var count int64
	err := db.WithContext(ctx).Model(&models.SubmittedAssignment{}).
		Where("assignment_id = ?", assignmentID).
		Count(&count).Error
	return count, err
}

// NotebookNumSubmissions counts the submitted instances of a template
// notebook.
func NotebookNumSubmissions(ctx context.Context, db *gorm.DB, notebookID string) (int64, error) {
	var count int64
	err := db.WithContext(ctx).Model(&models.SubmittedNotebook{}).
		Where("notebook_id = ?", notebookID).
		Count(&count).Error
	return count, err
}

// EffectiveDueDate shifts an assignment due date by a submission's
// extension. Nil when the assignment has no due date.
func EffectiveDueDate(dueDate *time.Time, extension *time.Duration) *time.Time {
	if dueDate == nil {
		return nil
	}
	if extension == nil {
		return dueDate
	}
	shifted := dueDate.Add(*extension)
	return &shifted
}

// TotalSecondsLate measures how far past the effective due date a submission
// landed, in seconds. Zero when the submission was on time, or when either
// the timestamp or the due date is unset.
func TotalSecondsLate(timestamp, dueDate *time.Time) float64 {
	if timestamp == nil || dueDate == nil {
		return 0
	}
	late := timestamp.Sub(*dueDate).Seconds()
	if late < 0 {
		return 0
	}
	return late
}
