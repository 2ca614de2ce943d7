package models

import "gorm.io/gorm"

// CellType partitions rubric cells into the code and written scoring cuts.
type CellType string

const (
	// CellTypeCode marks a cell scored by automated tests.
	CellTypeCode CellType = "code"
	// CellTypeWritten marks a cell scored by a human reviewer.
	CellTypeWritten CellType = "written"
)

// Valid reports whether the cell type is one of the two known partitions.
func (t CellType) Valid() bool {
	return t == CellTypeCode || t == CellTypeWritten
}

// GradeCell is a rubric item worth points. Names are unique within their
// notebook. Source and Checksum identify the reference version of the cell
// so regraded submissions can be checked against the rubric they were
// generated from.
type GradeCell struct {
	ID         string   `gorm:"primaryKey;size:32" json:"id"`
	Name       string   `gorm:"size:128;not null;uniqueIndex:uniq_grade_cell_name" json:"name"`
	NotebookID string   `gorm:"size:32;not null;uniqueIndex:uniq_grade_cell_name" json:"notebook_id"`
	MaxScore   float64  `gorm:"not null" json:"max_score"`
	CellType   CellType `gorm:"size:16;not null" json:"cell_type"`
	Source     string   `gorm:"type:text" json:"source"`
	Checksum   string   `gorm:"size:128" json:"checksum"`

	Notebook Notebook `gorm:"foreignKey:NotebookID" json:"-"`
	Grades   []Grade  `gorm:"foreignKey:CellID" json:"-"`
}

// TableName preserves the on-disk table name of the original store.
func (GradeCell) TableName() string { return "grade_cell" }

func (c *GradeCell) BeforeCreate(*gorm.DB) error {
	if c.ID == "" {
		c.ID = NewID()
	}
	return nil
}

// SolutionCell is a rubric item that collects reviewer feedback but carries
// no points. Names are unique within their notebook.
type SolutionCell struct {
	ID         string   `gorm:"primaryKey;size:32" json:"id"`
	Name       string   `gorm:"size:128;not null;uniqueIndex:uniq_solution_cell_name" json:"name"`
	NotebookID string   `gorm:"size:32;not null;uniqueIndex:uniq_solution_cell_name" json:"notebook_id"`
	CellType   CellType `gorm:"size:16;not null" json:"cell_type"`
	Source     string   `gorm:"type:text" json:"source"`
	Checksum   string   `gorm:"size:128" json:"checksum"`

	Notebook Notebook  `gorm:"foreignKey:NotebookID" json:"-"`
	Comments []Comment `gorm:"foreignKey:CellID" json:"-"`
}

// TableName preserves the on-disk table name of the original store.
func (SolutionCell) TableName() string { return "solution_cell" }

func (c *SolutionCell) BeforeCreate(*gorm.DB) error {
	if c.ID == "" {
		c.ID = NewID()
	}
	return nil
}
