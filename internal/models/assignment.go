package models

import (
	"time"

	"gorm.io/gorm"
)

// Assignment is a gradeable unit, e.g. "Homework 1". Its name is unique
// across the whole gradebook.
type Assignment struct {
	ID      string     `gorm:"primaryKey;size:32" json:"id"`
	Name    string     `gorm:"size:128;not null;uniqueIndex" json:"name"`
	DueDate *time.Time `gorm:"column:duedate" json:"duedate"`

	Notebooks   []Notebook            `gorm:"foreignKey:AssignmentID" json:"-"`
	Submissions []SubmittedAssignment `gorm:"foreignKey:AssignmentID" json:"-"`
}

// TableName preserves the on-disk table name of the original store.
func (Assignment) TableName() string { return "assignment" }

func (a *Assignment) BeforeCreate(*gorm.DB) error {
	if a.ID == "" {
		a.ID = NewID()
	}
	return nil
}

// Notebook is one graded document within an assignment. Names are unique
// within their assignment.
type Notebook struct {
	ID           string `gorm:"primaryKey;size:32" json:"id"`
	Name         string `gorm:"size:128;not null;uniqueIndex:uniq_notebook_name" json:"name"`
	AssignmentID string `gorm:"size:32;not null;uniqueIndex:uniq_notebook_name" json:"assignment_id"`

	Assignment    Assignment          `gorm:"foreignKey:AssignmentID" json:"-"`
	GradeCells    []GradeCell         `gorm:"foreignKey:NotebookID" json:"-"`
	SolutionCells []SolutionCell      `gorm:"foreignKey:NotebookID" json:"-"`
	Submissions   []SubmittedNotebook `gorm:"foreignKey:NotebookID" json:"-"`
}

// TableName preserves the on-disk table name of the original store.
func (Notebook) TableName() string { return "notebook" }

func (n *Notebook) BeforeCreate(*gorm.DB) error {
	if n.ID == "" {
		n.ID = NewID()
	}
	return nil
}
