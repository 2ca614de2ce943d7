package gradebook

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel/attribute"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/noah-isme/gradebook-api/internal/models"
)

// AddSubmission registers a student's submission of an assignment. Beyond
// the submission row itself it mirrors the assignment's whole rubric
// structure: one submitted notebook per template notebook, one empty grade
// per grade cell and one empty comment per solution cell, so the submission
// is immediately ready to be filled in by the grading engine and reviewers.
// Everything commits as one unit; no partial submission graph is ever
// observable.
func (g *Gradebook) AddSubmission(ctx context.Context, assignment, student string, attrs SubmissionAttrs) (models.SubmittedAssignment, error) {
	ctx, span := g.tracer.Start(ctx, "gradebook.add_submission")
	span.SetAttributes(
		attribute.String("gradebook.assignment", assignment),
		attribute.String("gradebook.student", student),
	)
	defer span.End()

	parent, err := g.FindAssignment(ctx, assignment)
	if err != nil {
		return models.SubmittedAssignment{}, err
	}
	owner, err := g.FindStudent(ctx, student)
	if err != nil {
		return models.SubmittedAssignment{}, err
	}

	submission := models.SubmittedAssignment{AssignmentID: parent.ID, StudentID: owner.ID}
	attrs.apply(&submission)

	err = g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(&submission).Error; err != nil {
			return err
		}

		var notebooks []models.Notebook
		if err := tx.Where("assignment_id = ?", parent.ID).Order("name").Find(&notebooks).Error; err != nil {
			return err
		}

		for _, notebook := range notebooks {
			submitted := models.SubmittedNotebook{
				NotebookID:            notebook.ID,
				SubmittedAssignmentID: submission.ID,
			}
			if err := tx.Omit(clause.Associations).Create(&submitted).Error; err != nil {
				return err
			}

			var gradeCells []models.GradeCell
			if err := tx.Where("notebook_id = ?", notebook.ID).Find(&gradeCells).Error; err != nil {
				return err
			}
			grades := make([]models.Grade, 0, len(gradeCells))
			for _, cell := range gradeCells {
				grades = append(grades, models.Grade{CellID: cell.ID, SubmittedNotebookID: submitted.ID})
			}
			if len(grades) > 0 {
				if err := tx.Omit(clause.Associations).Create(&grades).Error; err != nil {
					return err
				}
			}

			var solutionCells []models.SolutionCell
			if err := tx.Where("notebook_id = ?", notebook.ID).Find(&solutionCells).Error; err != nil {
				return err
			}
			comments := make([]models.Comment, 0, len(solutionCells))
			for _, cell := range solutionCells {
				comments = append(comments, models.Comment{CellID: cell.ID, SubmittedNotebookID: submitted.ID})
			}
			if len(comments) > 0 {
				if err := tx.Omit(clause.Associations).Create(&comments).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		span.RecordError(err)
		return models.SubmittedAssignment{}, wrapMutationErr(err)
	}

	g.logger.Info().Str("assignment", assignment).Str("student", student).Msg("submission registered")
	return submission, nil
}

// FindSubmission looks up a student's submission of an assignment.
func (g *Gradebook) FindSubmission(ctx context.Context, assignment, student string) (models.SubmittedAssignment, error) {
	var submission models.SubmittedAssignment
	err := g.db.WithContext(ctx).
		Select("submitted_assignment.*").
		Joins("JOIN assignment ON assignment.id = submitted_assignment.assignment_id").
		Where("assignment.name = ? AND submitted_assignment.student_id = ?", assignment, student).
		First(&submission).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.SubmittedAssignment{}, missingEntryf("no such submission: %s for %s", assignment, student)
	}
	if err != nil {
		return models.SubmittedAssignment{}, err
	}
	return submission, nil
}

// UpdateOrCreateSubmission applies attrs to an existing submission, or
// registers the submission (with full structural mirroring) if it does not
// exist.
func (g *Gradebook) UpdateOrCreateSubmission(ctx context.Context, assignment, student string, attrs SubmissionAttrs) (models.SubmittedAssignment, error) {
	submission, err := g.FindSubmission(ctx, assignment, student)
	if errors.Is(err, ErrMissingEntry) {
		return g.AddSubmission(ctx, assignment, student, attrs)
	}
	if err != nil {
		return models.SubmittedAssignment{}, err
	}
	attrs.apply(&submission)
	if err := g.db.WithContext(ctx).Omit(clause.Associations).Save(&submission).Error; err != nil {
		return models.SubmittedAssignment{}, wrapMutationErr(err)
	}
	return submission, nil
}

// SaveSubmission persists attribute changes made directly on a submission
// (timestamp, extension).
func (g *Gradebook) SaveSubmission(ctx context.Context, submission *models.SubmittedAssignment) error {
	return wrapMutationErr(g.db.WithContext(ctx).Omit(clause.Associations).Save(submission).Error)
}

// RemoveSubmission deletes a student's submission of an assignment together
// with its submitted notebooks, grades and comments, children first, in one
// transaction.
func (g *Gradebook) RemoveSubmission(ctx context.Context, assignment, student string) error {
	ctx, span := g.tracer.Start(ctx, "gradebook.remove_submission")
	defer span.End()

	submission, err := g.FindSubmission(ctx, assignment, student)
	if err != nil {
		return err
	}

	err = g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return deleteSubmissionGraph(tx, submission.ID)
	})
	if err != nil {
		span.RecordError(err)
		return wrapMutationErr(err)
	}

	g.logger.Info().Str("assignment", assignment).Str("student", student).Msg("submission removed")
	return nil
}

// deleteSubmissionGraph removes one submission and everything it owns.
// Grades and comments go first, then the submitted notebooks, then the
// submission row, so no step ever orphans a child.
func deleteSubmissionGraph(tx *gorm.DB, submissionID string) error {
	notebookIDs := tx.Model(&models.SubmittedNotebook{}).
		Select("id").
		Where("submitted_assignment_id = ?", submissionID)
	if err := tx.Where("submitted_notebook_id IN (?)", notebookIDs).Delete(&models.Grade{}).Error; err != nil {
		return err
	}
	if err := tx.Where("submitted_notebook_id IN (?)", notebookIDs).Delete(&models.Comment{}).Error; err != nil {
		return err
	}
	if err := tx.Where("submitted_assignment_id = ?", submissionID).Delete(&models.SubmittedNotebook{}).Error; err != nil {
		return err
	}
	return tx.Delete(&models.SubmittedAssignment{}, "id = ?", submissionID).Error
}

// AssignmentSubmissions lists every submission of an assignment with its
// student preloaded.
func (g *Gradebook) AssignmentSubmissions(ctx context.Context, assignment string) ([]models.SubmittedAssignment, error) {
	var submissions []models.SubmittedAssignment
	err := g.db.WithContext(ctx).
		Select("submitted_assignment.*").
		Joins("JOIN assignment ON assignment.id = submitted_assignment.assignment_id").
		Where("assignment.name = ?", assignment).
		Preload("Student").
		Preload("Assignment").
		Find(&submissions).Error
	return submissions, err
}

// NotebookSubmissions lists every submitted instance of a notebook within an
// assignment.
func (g *Gradebook) NotebookSubmissions(ctx context.Context, notebook, assignment string) ([]models.SubmittedNotebook, error) {
	var submissions []models.SubmittedNotebook
	err := g.db.WithContext(ctx).
		Select("submitted_notebook.*").
		Joins("JOIN notebook ON notebook.id = submitted_notebook.notebook_id").
		Joins("JOIN submitted_assignment ON submitted_assignment.id = submitted_notebook.submitted_assignment_id").
		Joins("JOIN assignment ON assignment.id = submitted_assignment.assignment_id").
		Where("notebook.name = ? AND assignment.name = ?", notebook, assignment).
		Find(&submissions).Error
	return submissions, err
}

// StudentSubmissions lists every submission a student has made, with the
// assignment preloaded.
func (g *Gradebook) StudentSubmissions(ctx context.Context, student string) ([]models.SubmittedAssignment, error) {
	var submissions []models.SubmittedAssignment
	err := g.db.WithContext(ctx).
		Where("student_id = ?", student).
		Preload("Assignment").
		Find(&submissions).Error
	return submissions, err
}

// FindSubmissionNotebook looks up one notebook of a student's submission by
// the full natural-key chain.
func (g *Gradebook) FindSubmissionNotebook(ctx context.Context, notebook, assignment, student string) (models.SubmittedNotebook, error) {
	var submitted models.SubmittedNotebook
	err := g.db.WithContext(ctx).
		Select("submitted_notebook.*").
		Joins("JOIN notebook ON notebook.id = submitted_notebook.notebook_id").
		Joins("JOIN submitted_assignment ON submitted_assignment.id = submitted_notebook.submitted_assignment_id").
		Joins("JOIN assignment ON assignment.id = submitted_assignment.assignment_id").
		Where("notebook.name = ? AND assignment.name = ? AND submitted_assignment.student_id = ?",
			notebook, assignment, student).
		First(&submitted).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.SubmittedNotebook{}, missingEntryf("no such submitted notebook: %s/%s for %s", assignment, notebook, student)
	}
	if err != nil {
		return models.SubmittedNotebook{}, err
	}
	return submitted, nil
}

// FindSubmissionNotebookByID looks up a submitted notebook by its opaque id,
// for callers that already hold one.
func (g *Gradebook) FindSubmissionNotebookByID(ctx context.Context, id string) (models.SubmittedNotebook, error) {
	var submitted models.SubmittedNotebook
	err := g.db.WithContext(ctx).Where("id = ?", id).First(&submitted).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.SubmittedNotebook{}, missingEntryf("no such submitted notebook: %s", id)
	}
	if err != nil {
		return models.SubmittedNotebook{}, err
	}
	return submitted, nil
}
