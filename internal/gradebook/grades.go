package gradebook

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/noah-isme/gradebook-api/internal/models"
)

// FindGrade looks up one grade by the full natural-key chain: cell name,
// notebook name, assignment name and student id.
func (g *Gradebook) FindGrade(ctx context.Context, cell, notebook, assignment, student string) (models.Grade, error) {
	var grade models.Grade
	err := g.db.WithContext(ctx).
		Select("grade.*").
		Joins("JOIN grade_cell ON grade_cell.id = grade.cell_id").
		Joins("JOIN submitted_notebook ON submitted_notebook.id = grade.submitted_notebook_id").
		Joins("JOIN notebook ON notebook.id = submitted_notebook.notebook_id").
		Joins("JOIN submitted_assignment ON submitted_assignment.id = submitted_notebook.submitted_assignment_id").
		Joins("JOIN assignment ON assignment.id = submitted_assignment.assignment_id").
		Where("grade_cell.name = ? AND notebook.name = ? AND assignment.name = ? AND submitted_assignment.student_id = ?",
			cell, notebook, assignment, student).
		First(&grade).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Grade{}, missingEntryf("no such grade: %s/%s/%s for %s", assignment, notebook, cell, student)
	}
	if err != nil {
		return models.Grade{}, err
	}
	return grade, nil
}

// FindGradeByID looks up a grade by its opaque id, for callers that already
// hold one.
func (g *Gradebook) FindGradeByID(ctx context.Context, id string) (models.Grade, error) {
	var grade models.Grade
	err := g.db.WithContext(ctx).Where("id = ?", id).First(&grade).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Grade{}, missingEntryf("no such grade: %s", id)
	}
	if err != nil {
		return models.Grade{}, err
	}
	return grade, nil
}

// SaveGrade persists score changes made directly on a grade by the grading
// engine (auto score) or a reviewer (manual score).
func (g *Gradebook) SaveGrade(ctx context.Context, grade *models.Grade) error {
	return wrapMutationErr(g.db.WithContext(ctx).Omit(clause.Associations).Save(grade).Error)
}

// FindComment looks up one comment by the full natural-key chain: cell name,
// notebook name, assignment name and student id.
func (g *Gradebook) FindComment(ctx context.Context, cell, notebook, assignment, student string) (models.Comment, error) {
	var comment models.Comment
	err := g.db.WithContext(ctx).
		Select("comment.*").
		Joins("JOIN solution_cell ON solution_cell.id = comment.cell_id").
		Joins("JOIN submitted_notebook ON submitted_notebook.id = comment.submitted_notebook_id").
		Joins("JOIN notebook ON notebook.id = submitted_notebook.notebook_id").
		Joins("JOIN submitted_assignment ON submitted_assignment.id = submitted_notebook.submitted_assignment_id").
		Joins("JOIN assignment ON assignment.id = submitted_assignment.assignment_id").
		Where("solution_cell.name = ? AND notebook.name = ? AND assignment.name = ? AND submitted_assignment.student_id = ?",
			cell, notebook, assignment, student).
		First(&comment).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Comment{}, missingEntryf("no such comment: %s/%s/%s for %s", assignment, notebook, cell, student)
	}
	if err != nil {
		return models.Comment{}, err
	}
	return comment, nil
}

// FindCommentByID looks up a comment by its opaque id, for callers that
// already hold one.
func (g *Gradebook) FindCommentByID(ctx context.Context, id string) (models.Comment, error) {
	var comment models.Comment
	err := g.db.WithContext(ctx).Where("id = ?", id).First(&comment).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Comment{}, missingEntryf("no such comment: %s", id)
	}
	if err != nil {
		return models.Comment{}, err
	}
	return comment, nil
}

// SaveComment persists text changes made directly on a comment by a
// reviewer.
func (g *Gradebook) SaveComment(ctx context.Context, comment *models.Comment) error {
	return wrapMutationErr(g.db.WithContext(ctx).Omit(clause.Associations).Save(comment).Error)
}
