// Package models defines the persistent entities of the gradebook: the
// authored rubric structure (assignments, notebooks, cells, students) and the
// per-student submission graph mirrored from it (submitted assignments and
// notebooks, grades, comments).
//
// The package holds structure only. Every derived quantity (scores, roll-ups,
// status flags) is computed by the aggregate package so that the formulas
// live in one place.
package models

import (
	"encoding/hex"

	"github.com/google/uuid"
)

// NewID returns a 32-character hex identifier used as the opaque primary key
// for every entity except Student, whose id is supplied by the caller.
func NewID() string {
	id := uuid.New()
	return hex.EncodeToString(id[:])
}

// All lists every entity for schema migration, parents before children.
func All() []any {
	return []any{
		&Student{},
		&Assignment{},
		&Notebook{},
		&GradeCell{},
		&SolutionCell{},
		&SubmittedAssignment{},
		&SubmittedNotebook{},
		&Grade{},
		&Comment{},
	}
}
