package gradebook

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/noah-isme/gradebook-api/internal/models"
)

// AddGradeCell inserts a new grade cell into an existing notebook of an
// existing assignment. MaxScore and CellType are required.
func (g *Gradebook) AddGradeCell(ctx context.Context, name, notebook, assignment string, attrs GradeCellAttrs) (models.GradeCell, error) {
	if name == "" {
		return models.GradeCell{}, invalidEntryf("grade cell name must not be empty")
	}
	if attrs.MaxScore == nil || attrs.CellType == nil {
		return models.GradeCell{}, invalidEntryf("grade cell %q requires max_score and cell_type", name)
	}
	if !attrs.CellType.Valid() {
		return models.GradeCell{}, invalidEntryf("unknown cell type %q", *attrs.CellType)
	}
	parent, err := g.FindNotebook(ctx, notebook, assignment)
	if err != nil {
		return models.GradeCell{}, err
	}
	cell := models.GradeCell{Name: name, NotebookID: parent.ID}
	attrs.apply(&cell)
	if err := g.db.WithContext(ctx).Omit(clause.Associations).Create(&cell).Error; err != nil {
		return models.GradeCell{}, wrapMutationErr(err)
	}
	return cell, nil
}

// FindGradeCell looks up a grade cell by name within a notebook of an
// assignment.
func (g *Gradebook) FindGradeCell(ctx context.Context, name, notebook, assignment string) (models.GradeCell, error) {
	var cell models.GradeCell
	err := g.db.WithContext(ctx).
		Select("grade_cell.*").
		Joins("JOIN notebook ON notebook.id = grade_cell.notebook_id").
		Joins("JOIN assignment ON assignment.id = notebook.assignment_id").
		Where("grade_cell.name = ? AND notebook.name = ? AND assignment.name = ?", name, notebook, assignment).
		First(&cell).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.GradeCell{}, missingEntryf("no such grade cell: %s/%s/%s", assignment, notebook, name)
	}
	if err != nil {
		return models.GradeCell{}, err
	}
	return cell, nil
}

// UpdateOrCreateGradeCell applies attrs to an existing grade cell, or
// creates the cell if it does not exist.
func (g *Gradebook) UpdateOrCreateGradeCell(ctx context.Context, name, notebook, assignment string, attrs GradeCellAttrs) (models.GradeCell, error) {
	cell, err := g.FindGradeCell(ctx, name, notebook, assignment)
	if errors.Is(err, ErrMissingEntry) {
		return g.AddGradeCell(ctx, name, notebook, assignment, attrs)
	}
	if err != nil {
		return models.GradeCell{}, err
	}
	if attrs.CellType != nil && !attrs.CellType.Valid() {
		return models.GradeCell{}, invalidEntryf("unknown cell type %q", *attrs.CellType)
	}
	attrs.apply(&cell)
	if err := g.db.WithContext(ctx).Omit(clause.Associations).Save(&cell).Error; err != nil {
		return models.GradeCell{}, wrapMutationErr(err)
	}
	return cell, nil
}

// RemoveGradeCell deletes a grade cell and every grade recorded against it,
// in one transaction.
func (g *Gradebook) RemoveGradeCell(ctx context.Context, name, notebook, assignment string) error {
	cell, err := g.FindGradeCell(ctx, name, notebook, assignment)
	if err != nil {
		return err
	}

	err = g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("cell_id = ?", cell.ID).Delete(&models.Grade{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.GradeCell{}, "id = ?", cell.ID).Error
	})
	return wrapMutationErr(err)
}

// AddSolutionCell inserts a new solution cell into an existing notebook of
// an existing assignment. CellType is required.
func (g *Gradebook) AddSolutionCell(ctx context.Context, name, notebook, assignment string, attrs SolutionCellAttrs) (models.SolutionCell, error) {
	if name == "" {
		return models.SolutionCell{}, invalidEntryf("solution cell name must not be empty")
	}
	if attrs.CellType == nil {
		return models.SolutionCell{}, invalidEntryf("solution cell %q requires cell_type", name)
	}
	if !attrs.CellType.Valid() {
		return models.SolutionCell{}, invalidEntryf("unknown cell type %q", *attrs.CellType)
	}
	parent, err := g.FindNotebook(ctx, notebook, assignment)
	if err != nil {
		return models.SolutionCell{}, err
	}
	cell := models.SolutionCell{Name: name, NotebookID: parent.ID}
	attrs.apply(&cell)
	if err := g.db.WithContext(ctx).Omit(clause.Associations).Create(&cell).Error; err != nil {
		return models.SolutionCell{}, wrapMutationErr(err)
	}
	return cell, nil
}

// FindSolutionCell looks up a solution cell by name within a notebook of an
// assignment.
func (g *Gradebook) FindSolutionCell(ctx context.Context, name, notebook, assignment string) (models.SolutionCell, error) {
	var cell models.SolutionCell
	err := g.db.WithContext(ctx).
		Select("solution_cell.*").
		Joins("JOIN notebook ON notebook.id = solution_cell.notebook_id").
		Joins("JOIN assignment ON assignment.id = notebook.assignment_id").
		Where("solution_cell.name = ? AND notebook.name = ? AND assignment.name = ?", name, notebook, assignment).
		First(&cell).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.SolutionCell{}, missingEntryf("no such solution cell: %s/%s/%s", assignment, notebook, name)
	}
	if err != nil {
		return models.SolutionCell{}, err
	}
	return cell, nil
}

// UpdateOrCreateSolutionCell applies attrs to an existing solution cell, or
// creates the cell if it does not exist.
func (g *Gradebook) UpdateOrCreateSolutionCell(ctx context.Context, name, notebook, assignment string, attrs SolutionCellAttrs) (models.SolutionCell, error) {
	cell, err := g.FindSolutionCell(ctx, name, notebook, assignment)
	if errors.Is(err, ErrMissingEntry) {
		return g.AddSolutionCell(ctx, name, notebook, assignment, attrs)
	}
	if err != nil {
		return models.SolutionCell{}, err
	}
	if attrs.CellType != nil && !attrs.CellType.Valid() {
		return models.SolutionCell{}, invalidEntryf("unknown cell type %q", *attrs.CellType)
	}
	attrs.apply(&cell)
	if err := g.db.WithContext(ctx).Omit(clause.Associations).Save(&cell).Error; err != nil {
		return models.SolutionCell{}, wrapMutationErr(err)
	}
	return cell, nil
}

// RemoveSolutionCell deletes a solution cell and every comment recorded
// against it, in one transaction.
func (g *Gradebook) RemoveSolutionCell(ctx context.Context, name, notebook, assignment string) error {
	cell, err := g.FindSolutionCell(ctx, name, notebook, assignment)
	if err != nil {
		return err
	}

	err = g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("cell_id = ?", cell.ID).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.SolutionCell{}, "id = ?", cell.ID).Error
	})
	return wrapMutationErr(err)
}
