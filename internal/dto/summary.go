// Package dto holds the flattened payloads exchanged with external
// collaborators: report summaries produced by the gradebook and the request
// bodies accepted by the HTTP surface.
package dto

import "time"

// AssignmentSummary is the report view of one assignment.
type AssignmentSummary struct {
	ID              string     `json:"id"`
	Name            string     `json:"name"`
	DueDate         *time.Time `json:"duedate"`
	NumSubmissions  int64      `json:"num_submissions"`
	MaxScore        float64    `json:"max_score"`
	MaxCodeScore    float64    `json:"max_code_score"`
	MaxWrittenScore float64    `json:"max_written_score"`
}

// NotebookSummary is the report view of one template notebook.
type NotebookSummary struct {
	ID               string  `json:"id"`
	Name             string  `json:"name"`
	NumSubmissions   int64   `json:"num_submissions"`
	MaxScore         float64 `json:"max_score"`
	MaxCodeScore     float64 `json:"max_code_score"`
	MaxWrittenScore  float64 `json:"max_written_score"`
	NeedsManualGrade bool    `json:"needs_manual_grade"`
}

// StudentSummary is the report view of one student: identity plus the
// student's overall score against the whole gradebook's maximum.
type StudentSummary struct {
	ID        string  `json:"id"`
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	Email     string  `json:"email"`
	Score     float64 `json:"score"`
	MaxScore  float64 `json:"max_score"`
}

// SubmissionSummary is the report view of one submitted assignment,
// including late-policy fields and all three score cuts.
type SubmissionSummary struct {
	ID               string     `json:"id"`
	Name             string     `json:"name"`
	Student          string     `json:"student"`
	DueDate          *time.Time `json:"duedate"`
	Timestamp        *time.Time `json:"timestamp"`
	ExtensionSeconds *float64   `json:"extension"`
	TotalSecondsLate float64    `json:"total_seconds_late"`
	Score            float64    `json:"score"`
	MaxScore         float64    `json:"max_score"`
	CodeScore        float64    `json:"code_score"`
	MaxCodeScore     float64    `json:"max_code_score"`
	WrittenScore     float64    `json:"written_score"`
	MaxWrittenScore  float64    `json:"max_written_score"`
	NeedsManualGrade bool       `json:"needs_manual_grade"`
}

// SubmittedNotebookSummary is the report view of one notebook within a
// student's submission.
type SubmittedNotebookSummary struct {
	ID               string  `json:"id"`
	Name             string  `json:"name"`
	Student          string  `json:"student"`
	Score            float64 `json:"score"`
	MaxScore         float64 `json:"max_score"`
	CodeScore        float64 `json:"code_score"`
	MaxCodeScore     float64 `json:"max_code_score"`
	WrittenScore     float64 `json:"written_score"`
	MaxWrittenScore  float64 `json:"max_written_score"`
	NeedsManualGrade bool    `json:"needs_manual_grade"`
	FailedTests      bool    `json:"failed_tests"`
}

// GradeSummary is the report view of one grade, resolved against its cell.
type GradeSummary struct {
	ID               string   `json:"id"`
	Name             string   `json:"name"`
	Notebook         string   `json:"notebook"`
	Assignment       string   `json:"assignment"`
	Student          string   `json:"student"`
	CellType         string   `json:"cell_type"`
	AutoScore        *float64 `json:"auto_score"`
	ManualScore      *float64 `json:"manual_score"`
	MaxScore         float64  `json:"max_score"`
	NeedsManualGrade bool     `json:"needs_manual_grade"`
	FailedTests      bool     `json:"failed_tests"`
}

// CommentSummary is the report view of one comment.
type CommentSummary struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Notebook   string `json:"notebook"`
	Assignment string `json:"assignment"`
	Student    string `json:"student"`
	Comment    string `json:"comment"`
}
