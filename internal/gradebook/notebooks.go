package gradebook

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/noah-isme/gradebook-api/internal/models"
)

// AddNotebook inserts a new notebook under an existing assignment. The name
// must be unique within that assignment.
func (g *Gradebook) AddNotebook(ctx context.Context, name, assignment string) (models.Notebook, error) {
	if name == "" {
		return models.Notebook{}, invalidEntryf("notebook name must not be empty")
	}
	parent, err := g.FindAssignment(ctx, assignment)
	if err != nil {
		return models.Notebook{}, err
	}
	notebook := models.Notebook{Name: name, AssignmentID: parent.ID}
	if err := g.db.WithContext(ctx).Omit(clause.Associations).Create(&notebook).Error; err != nil {
		return models.Notebook{}, wrapMutationErr(err)
	}
	return notebook, nil
}

// FindNotebook looks up a notebook by name within an assignment.
func (g *Gradebook) FindNotebook(ctx context.Context, name, assignment string) (models.Notebook, error) {
	var notebook models.Notebook
	err := g.db.WithContext(ctx).
		Select("notebook.*").
		Joins("JOIN assignment ON assignment.id = notebook.assignment_id").
		Where("notebook.name = ? AND assignment.name = ?", name, assignment).
		First(&notebook).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Notebook{}, missingEntryf("no such notebook: %s/%s", assignment, name)
	}
	if err != nil {
		return models.Notebook{}, err
	}
	return notebook, nil
}

// UpdateOrCreateNotebook ensures a notebook exists under the assignment.
// Notebooks carry no mutable attributes beyond their identity, so the update
// half is a no-op.
func (g *Gradebook) UpdateOrCreateNotebook(ctx context.Context, name, assignment string) (models.Notebook, error) {
	notebook, err := g.FindNotebook(ctx, name, assignment)
	if errors.Is(err, ErrMissingEntry) {
		return g.AddNotebook(ctx, name, assignment)
	}
	if err != nil {
		return models.Notebook{}, err
	}
	return notebook, nil
}

// RemoveNotebook deletes a notebook together with its cells and every
// submitted instance, children first, in one transaction.
func (g *Gradebook) RemoveNotebook(ctx context.Context, name, assignment string) error {
	notebook, err := g.FindNotebook(ctx, name, assignment)
	if err != nil {
		return err
	}

	err = g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		submittedIDs := tx.Model(&models.SubmittedNotebook{}).
			Select("id").
			Where("notebook_id = ?", notebook.ID)
		if err := tx.Where("submitted_notebook_id IN (?)", submittedIDs).Delete(&models.Grade{}).Error; err != nil {
			return err
		}
		if err := tx.Where("submitted_notebook_id IN (?)", submittedIDs).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("notebook_id = ?", notebook.ID).Delete(&models.SubmittedNotebook{}).Error; err != nil {
			return err
		}
		if err := tx.Where("notebook_id = ?", notebook.ID).Delete(&models.GradeCell{}).Error; err != nil {
			return err
		}
		if err := tx.Where("notebook_id = ?", notebook.ID).Delete(&models.SolutionCell{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Notebook{}, "id = ?", notebook.ID).Error
	})
	if err != nil {
		return wrapMutationErr(err)
	}

	g.logger.Info().Str("assignment", assignment).Str("notebook", name).Msg("notebook removed")
	return nil
}
