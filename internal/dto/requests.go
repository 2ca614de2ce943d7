package dto

import "time"

// StudentUpsertRequest carries the mutable attributes of a student. Nil
// fields are left untouched on update.
type StudentUpsertRequest struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Email     *string `json:"email" validate:"omitempty,email"`
}

// AssignmentUpsertRequest carries the mutable attributes of an assignment.
type AssignmentUpsertRequest struct {
	DueDate *time.Time `json:"duedate"`
}

// GradeCellUpsertRequest carries the mutable attributes of a grade cell.
// MaxScore and CellType are required the first time the cell is created.
type GradeCellUpsertRequest struct {
	MaxScore *float64 `json:"max_score" validate:"omitempty,gte=0"`
	CellType *string  `json:"cell_type" validate:"omitempty,oneof=code written"`
	Source   *string  `json:"source"`
	Checksum *string  `json:"checksum"`
}

// SolutionCellUpsertRequest carries the mutable attributes of a solution
// cell. CellType is required the first time the cell is created.
type SolutionCellUpsertRequest struct {
	CellType *string `json:"cell_type" validate:"omitempty,oneof=code written"`
	Source   *string `json:"source"`
	Checksum *string `json:"checksum"`
}

// SubmissionUpsertRequest registers or updates a student's submission.
// Extension is given in seconds.
type SubmissionUpsertRequest struct {
	Timestamp        *time.Time `json:"timestamp"`
	ExtensionSeconds *float64   `json:"extension" validate:"omitempty,gte=0"`
}

// GradePatchRequest updates the scores of one grade. The grading engine
// sends auto_score; reviewers send manual_score. At least one must be set.
type GradePatchRequest struct {
	AutoScore   *float64 `json:"auto_score"`
	ManualScore *float64 `json:"manual_score"`
}

// CommentPatchRequest updates the text of one comment.
type CommentPatchRequest struct {
	Comment *string `json:"comment" validate:"required"`
}
