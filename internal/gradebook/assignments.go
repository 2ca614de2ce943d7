package gradebook

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/noah-isme/gradebook-api/internal/models"
)

// Assignments lists every assignment, ordered by due date then name.
func (g *Gradebook) Assignments(ctx context.Context) ([]models.Assignment, error) {
	var assignments []models.Assignment
	err := g.db.WithContext(ctx).
		Order("duedate, name").
		Find(&assignments).Error
	return assignments, err
}

// AddAssignment inserts a new assignment under the given unique name.
func (g *Gradebook) AddAssignment(ctx context.Context, name string, attrs AssignmentAttrs) (models.Assignment, error) {
	if name == "" {
		return models.Assignment{}, invalidEntryf("assignment name must not be empty")
	}
	assignment := models.Assignment{Name: name}
	attrs.apply(&assignment)
	if err := g.db.WithContext(ctx).Omit(clause.Associations).Create(&assignment).Error; err != nil {
		return models.Assignment{}, wrapMutationErr(err)
	}
	return assignment, nil
}

// FindAssignment looks up an assignment by its unique name.
func (g *Gradebook) FindAssignment(ctx context.Context, name string) (models.Assignment, error) {
	var assignment models.Assignment
	err := g.db.WithContext(ctx).
		Where("name = ?", name).
		First(&assignment).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Assignment{}, missingEntryf("no such assignment: %s", name)
	}
	if err != nil {
		return models.Assignment{}, err
	}
	return assignment, nil
}

// UpdateOrCreateAssignment applies attrs to an existing assignment, or
// creates the assignment if it does not exist.
func (g *Gradebook) UpdateOrCreateAssignment(ctx context.Context, name string, attrs AssignmentAttrs) (models.Assignment, error) {
	assignment, err := g.FindAssignment(ctx, name)
	if errors.Is(err, ErrMissingEntry) {
		return g.AddAssignment(ctx, name, attrs)
	}
	if err != nil {
		return models.Assignment{}, err
	}
	attrs.apply(&assignment)
	if err := g.db.WithContext(ctx).Omit(clause.Associations).Save(&assignment).Error; err != nil {
		return models.Assignment{}, wrapMutationErr(err)
	}
	return assignment, nil
}

// RemoveAssignment deletes an assignment together with its rubric (notebooks
// and cells) and every registered submission, children first, in one
// transaction.
func (g *Gradebook) RemoveAssignment(ctx context.Context, name string) error {
	ctx, span := g.tracer.Start(ctx, "gradebook.remove_assignment")
	defer span.End()

	assignment, err := g.FindAssignment(ctx, name)
	if err != nil {
		return err
	}

	err = g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var submissions []models.SubmittedAssignment
		if err := tx.Where("assignment_id = ?", assignment.ID).Find(&submissions).Error; err != nil {
			return err
		}
		for _, submission := range submissions {
			if err := deleteSubmissionGraph(tx, submission.ID); err != nil {
				return err
			}
		}

		notebookIDs := tx.Model(&models.Notebook{}).
			Select("id").
			Where("assignment_id = ?", assignment.ID)
		if err := tx.Where("notebook_id IN (?)", notebookIDs).Delete(&models.GradeCell{}).Error; err != nil {
			return err
		}
		if err := tx.Where("notebook_id IN (?)", notebookIDs).Delete(&models.SolutionCell{}).Error; err != nil {
			return err
		}
		if err := tx.Where("assignment_id = ?", assignment.ID).Delete(&models.Notebook{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Assignment{}, "id = ?", assignment.ID).Error
	})
	if err != nil {
		span.RecordError(err)
		return wrapMutationErr(err)
	}

	g.logger.Info().Str("assignment", name).Msg("assignment removed")
	return nil
}
