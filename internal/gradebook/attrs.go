package gradebook

import (
	"time"

	"github.com/noah-isme/gradebook-api/internal/models"
)

// Attr structs carry the optional attributes of each entity kind. A nil
// field is left untouched, so the same struct serves both creation and the
// update half of the update-or-create operations.

// StudentAttrs are the mutable attributes of a student.
type StudentAttrs struct {
	FirstName *string
	LastName  *string
	Email     *string
}

func (a StudentAttrs) apply(s *models.Student) {
	if a.FirstName != nil {
		s.FirstName = *a.FirstName
	}
	if a.LastName != nil {
		s.LastName = *a.LastName
	}
	if a.Email != nil {
		s.Email = *a.Email
	}
}

// AssignmentAttrs are the mutable attributes of an assignment.
type AssignmentAttrs struct {
	DueDate *time.Time
}

func (a AssignmentAttrs) apply(m *models.Assignment) {
	if a.DueDate != nil {
		due := a.DueDate.UTC()
		m.DueDate = &due
	}
}

// GradeCellAttrs are the mutable attributes of a grade cell. MaxScore and
// CellType are required when the cell is first created.
type GradeCellAttrs struct {
	MaxScore *float64
	CellType *models.CellType
	Source   *string
	Checksum *string
}

func (a GradeCellAttrs) apply(c *models.GradeCell) {
	if a.MaxScore != nil {
		c.MaxScore = *a.MaxScore
	}
	if a.CellType != nil {
		c.CellType = *a.CellType
	}
	if a.Source != nil {
		c.Source = *a.Source
	}
	if a.Checksum != nil {
		c.Checksum = *a.Checksum
	}
}

// SolutionCellAttrs are the mutable attributes of a solution cell. CellType
// is required when the cell is first created.
type SolutionCellAttrs struct {
	CellType *models.CellType
	Source   *string
	Checksum *string
}

func (a SolutionCellAttrs) apply(c *models.SolutionCell) {
	if a.CellType != nil {
		c.CellType = *a.CellType
	}
	if a.Source != nil {
		c.Source = *a.Source
	}
	if a.Checksum != nil {
		c.Checksum = *a.Checksum
	}
}

// SubmissionAttrs are the mutable attributes of a submitted assignment.
type SubmissionAttrs struct {
	Timestamp *time.Time
	Extension *time.Duration
}

func (a SubmissionAttrs) apply(s *models.SubmittedAssignment) {
	if a.Timestamp != nil {
		ts := a.Timestamp.UTC()
		s.Timestamp = &ts
	}
	if a.Extension != nil {
		ext := *a.Extension
		s.Extension = &ext
	}
}
