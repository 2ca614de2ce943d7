package models

import (
	"time"

	"gorm.io/gorm"
)

// SubmittedAssignment is one student's attempt at an assignment. A student
// may submit each assignment at most once. Extension, when set, shifts the
// assignment due date for late-policy purposes.
type SubmittedAssignment struct {
	ID           string `gorm:"primaryKey;size:32" json:"id"`
	AssignmentID string `gorm:"size:32;not null;uniqueIndex:uniq_submission_pair" json:"assignment_id"`
	StudentID    string `gorm:"size:128;not null;uniqueIndex:uniq_submission_pair" json:"student_id"`

	Timestamp *time.Time     `json:"timestamp"`
	Extension *time.Duration `json:"extension"`

	Assignment Assignment          `gorm:"foreignKey:AssignmentID" json:"-"`
	Student    Student             `gorm:"foreignKey:StudentID" json:"-"`
	Notebooks  []SubmittedNotebook `gorm:"foreignKey:SubmittedAssignmentID" json:"-"`
}

// TableName preserves the on-disk table name of the original store.
func (SubmittedAssignment) TableName() string { return "submitted_assignment" }

func (s *SubmittedAssignment) BeforeCreate(*gorm.DB) error {
	if s.ID == "" {
		s.ID = NewID()
	}
	return nil
}

// SubmittedNotebook is one student's instance of a template notebook,
// created as part of the submission mirroring step. Each submission holds at
// most one instance per template notebook.
type SubmittedNotebook struct {
	ID                    string `gorm:"primaryKey;size:32" json:"id"`
	NotebookID            string `gorm:"size:32;not null;uniqueIndex:uniq_submitted_notebook_pair" json:"notebook_id"`
	SubmittedAssignmentID string `gorm:"size:32;not null;uniqueIndex:uniq_submitted_notebook_pair" json:"submitted_assignment_id"`

	Notebook   Notebook            `gorm:"foreignKey:NotebookID" json:"-"`
	Submission SubmittedAssignment `gorm:"foreignKey:SubmittedAssignmentID" json:"-"`
	Grades     []Grade             `gorm:"foreignKey:SubmittedNotebookID" json:"-"`
	Comments   []Comment           `gorm:"foreignKey:SubmittedNotebookID" json:"-"`
}

// TableName preserves the on-disk table name of the original store.
func (SubmittedNotebook) TableName() string { return "submitted_notebook" }

func (s *SubmittedNotebook) BeforeCreate(*gorm.DB) error {
	if s.ID == "" {
		s.ID = NewID()
	}
	return nil
}
