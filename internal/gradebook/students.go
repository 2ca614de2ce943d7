package gradebook

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/noah-isme/gradebook-api/internal/models"
)

// Students lists every student, ordered by last then first name.
func (g *Gradebook) Students(ctx context.Context) ([]models.Student, error) {
	var students []models.Student
	err := g.db.WithContext(ctx).
		Order("last_name, first_name").
		Find(&students).Error
	return students, err
}

// AddStudent inserts a new student under the given unique id.
func (g *Gradebook) AddStudent(ctx context.Context, studentID string, attrs StudentAttrs) (models.Student, error) {
	if studentID == "" {
		return models.Student{}, invalidEntryf("student id must not be empty")
	}
	student := models.Student{ID: studentID}
	attrs.apply(&student)
	if err := g.db.WithContext(ctx).Omit(clause.Associations).Create(&student).Error; err != nil {
		return models.Student{}, wrapMutationErr(err)
	}
	return student, nil
}

// FindStudent looks up a student by unique id.
func (g *Gradebook) FindStudent(ctx context.Context, studentID string) (models.Student, error) {
	var student models.Student
	err := g.db.WithContext(ctx).
		Where("id = ?", studentID).
		First(&student).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Student{}, missingEntryf("no such student: %s", studentID)
	}
	if err != nil {
		return models.Student{}, err
	}
	return student, nil
}

// UpdateOrCreateStudent applies attrs to an existing student, or creates the
// student if it does not exist. Repeating the call with identical attrs
// leaves the row unchanged.
func (g *Gradebook) UpdateOrCreateStudent(ctx context.Context, studentID string, attrs StudentAttrs) (models.Student, error) {
	student, err := g.FindStudent(ctx, studentID)
	if errors.Is(err, ErrMissingEntry) {
		return g.AddStudent(ctx, studentID, attrs)
	}
	if err != nil {
		return models.Student{}, err
	}
	attrs.apply(&student)
	if err := g.db.WithContext(ctx).Omit(clause.Associations).Save(&student).Error; err != nil {
		return models.Student{}, wrapMutationErr(err)
	}
	return student, nil
}

// RemoveStudent deletes a student together with every submission the
// student has made, children first, in one transaction.
func (g *Gradebook) RemoveStudent(ctx context.Context, studentID string) error {
	student, err := g.FindStudent(ctx, studentID)
	if err != nil {
		return err
	}

	err = g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var submissions []models.SubmittedAssignment
		if err := tx.Where("student_id = ?", student.ID).Find(&submissions).Error; err != nil {
			return err
		}
		for _, submission := range submissions {
			if err := deleteSubmissionGraph(tx, submission.ID); err != nil {
				return err
			}
		}
		return tx.Delete(&models.Student{}, "id = ?", student.ID).Error
	})
	if err != nil {
		return wrapMutationErr(err)
	}

	g.logger.Info().Str("student", studentID).Msg("student removed")
	return nil
}
