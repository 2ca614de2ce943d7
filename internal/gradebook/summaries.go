package gradebook

import (
	"context"

	"github.com/noah-isme/gradebook-api/internal/aggregate"
	"github.com/noah-isme/gradebook-api/internal/dto"
	"github.com/noah-isme/gradebook-api/internal/models"
)

// AssignmentSummary resolves the report view of one assignment.
func (g *Gradebook) AssignmentSummary(ctx context.Context, name string) (dto.AssignmentSummary, error) {
	assignment, err := g.FindAssignment(ctx, name)
	if err != nil {
		return dto.AssignmentSummary{}, err
	}

	num, err := aggregate.AssignmentNumSubmissions(ctx, g.db, assignment.ID)
	if err != nil {
		return dto.AssignmentSummary{}, err
	}
	maxScore, err := aggregate.AssignmentMaxScore(ctx, g.db, assignment.ID, aggregate.All)
	if err != nil {
		return dto.AssignmentSummary{}, err
	}
	maxCode, err := aggregate.AssignmentMaxScore(ctx, g.db, assignment.ID, aggregate.CodeOnly)
	if err != nil {
		return dto.AssignmentSummary{}, err
	}
	maxWritten, err := aggregate.AssignmentMaxScore(ctx, g.db, assignment.ID, aggregate.WrittenOnly)
	if err != nil {
		return dto.AssignmentSummary{}, err
	}

	return dto.AssignmentSummary{
		ID:              assignment.ID,
		Name:            assignment.Name,
		DueDate:         assignment.DueDate,
		NumSubmissions:  num,
		MaxScore:        maxScore,
		MaxCodeScore:    maxCode,
		MaxWrittenScore: maxWritten,
	}, nil
}

// NotebookSummary resolves the report view of one template notebook.
func (g *Gradebook) NotebookSummary(ctx context.Context, name, assignment string) (dto.NotebookSummary, error) {
	notebook, err := g.FindNotebook(ctx, name, assignment)
	if err != nil {
		return dto.NotebookSummary{}, err
	}

	num, err := aggregate.NotebookNumSubmissions(ctx, g.db, notebook.ID)
	if err != nil {
		return dto.NotebookSummary{}, err
	}
	maxScore, err := aggregate.NotebookMaxScore(ctx, g.db, notebook.ID, aggregate.All)
	if err != nil {
		return dto.NotebookSummary{}, err
	}
	maxCode, err := aggregate.NotebookMaxScore(ctx, g.db, notebook.ID, aggregate.CodeOnly)
	if err != nil {
		return dto.NotebookSummary{}, err
	}
	maxWritten, err := aggregate.NotebookMaxScore(ctx, g.db, notebook.ID, aggregate.WrittenOnly)
	if err != nil {
		return dto.NotebookSummary{}, err
	}
	needsManual, err := aggregate.NotebookNeedsManualGrade(ctx, g.db, notebook.ID)
	if err != nil {
		return dto.NotebookSummary{}, err
	}

	return dto.NotebookSummary{
		ID:               notebook.ID,
		Name:             notebook.Name,
		NumSubmissions:   num,
		MaxScore:         maxScore,
		MaxCodeScore:     maxCode,
		MaxWrittenScore:  maxWritten,
		NeedsManualGrade: needsManual,
	}, nil
}

// SubmissionSummary resolves the report view of one student's submission,
// including late-policy fields and all three score cuts.
func (g *Gradebook) SubmissionSummary(ctx context.Context, assignment, student string) (dto.SubmissionSummary, error) {
	submission, err := g.FindSubmission(ctx, assignment, student)
	if err != nil {
		return dto.SubmissionSummary{}, err
	}
	parent, err := g.FindAssignment(ctx, assignment)
	if err != nil {
		return dto.SubmissionSummary{}, err
	}

	summary := dto.SubmissionSummary{
		ID:        submission.ID,
		Name:      parent.Name,
		Student:   submission.StudentID,
		Timestamp: submission.Timestamp,
	}
	summary.DueDate = aggregate.EffectiveDueDate(parent.DueDate, submission.Extension)
	summary.TotalSecondsLate = aggregate.TotalSecondsLate(submission.Timestamp, summary.DueDate)
	if submission.Extension != nil {
		seconds := submission.Extension.Seconds()
		summary.ExtensionSeconds = &seconds
	}

	if summary.Score, err = aggregate.SubmittedAssignmentScore(ctx, g.db, submission.ID, aggregate.All); err != nil {
		return dto.SubmissionSummary{}, err
	}
	if summary.CodeScore, err = aggregate.SubmittedAssignmentScore(ctx, g.db, submission.ID, aggregate.CodeOnly); err != nil {
		return dto.SubmissionSummary{}, err
	}
	if summary.WrittenScore, err = aggregate.SubmittedAssignmentScore(ctx, g.db, submission.ID, aggregate.WrittenOnly); err != nil {
		return dto.SubmissionSummary{}, err
	}
	if summary.MaxScore, err = aggregate.SubmittedAssignmentMaxScore(ctx, g.db, submission.ID, aggregate.All); err != nil {
		return dto.SubmissionSummary{}, err
	}
	if summary.MaxCodeScore, err = aggregate.SubmittedAssignmentMaxScore(ctx, g.db, submission.ID, aggregate.CodeOnly); err != nil {
		return dto.SubmissionSummary{}, err
	}
	if summary.MaxWrittenScore, err = aggregate.SubmittedAssignmentMaxScore(ctx, g.db, submission.ID, aggregate.WrittenOnly); err != nil {
		return dto.SubmissionSummary{}, err
	}
	if summary.NeedsManualGrade, err = aggregate.SubmittedAssignmentNeedsManualGrade(ctx, g.db, submission.ID); err != nil {
		return dto.SubmissionSummary{}, err
	}
	return summary, nil
}

// SubmittedNotebookSummary resolves the report view of one notebook within a
// student's submission.
func (g *Gradebook) SubmittedNotebookSummary(ctx context.Context, notebook, assignment, student string) (dto.SubmittedNotebookSummary, error) {
	submitted, err := g.FindSubmissionNotebook(ctx, notebook, assignment, student)
	if err != nil {
		return dto.SubmittedNotebookSummary{}, err
	}

	summary := dto.SubmittedNotebookSummary{
		ID:      submitted.ID,
		Name:    notebook,
		Student: student,
	}
	if summary.Score, err = aggregate.SubmittedNotebookScore(ctx, g.db, submitted.ID, aggregate.All); err != nil {
		return dto.SubmittedNotebookSummary{}, err
	}
	if summary.CodeScore, err = aggregate.SubmittedNotebookScore(ctx, g.db, submitted.ID, aggregate.CodeOnly); err != nil {
		return dto.SubmittedNotebookSummary{}, err
	}
	if summary.WrittenScore, err = aggregate.SubmittedNotebookScore(ctx, g.db, submitted.ID, aggregate.WrittenOnly); err != nil {
		return dto.SubmittedNotebookSummary{}, err
	}
	if summary.MaxScore, err = aggregate.SubmittedNotebookMaxScore(ctx, g.db, submitted.ID, aggregate.All); err != nil {
		return dto.SubmittedNotebookSummary{}, err
	}
	if summary.MaxCodeScore, err = aggregate.SubmittedNotebookMaxScore(ctx, g.db, submitted.ID, aggregate.CodeOnly); err != nil {
		return dto.SubmittedNotebookSummary{}, err
	}
	if summary.MaxWrittenScore, err = aggregate.SubmittedNotebookMaxScore(ctx, g.db, submitted.ID, aggregate.WrittenOnly); err != nil {
		return dto.SubmittedNotebookSummary{}, err
	}
	if summary.NeedsManualGrade, err = aggregate.SubmittedNotebookNeedsManualGrade(ctx, g.db, submitted.ID); err != nil {
		return dto.SubmittedNotebookSummary{}, err
	}
	if summary.FailedTests, err = aggregate.SubmittedNotebookFailedTests(ctx, g.db, submitted.ID); err != nil {
		return dto.SubmittedNotebookSummary{}, err
	}
	return summary, nil
}

// GradeSummary resolves the report view of one grade together with its cell
// metadata.
func (g *Gradebook) GradeSummary(ctx context.Context, grade models.Grade) (dto.GradeSummary, error) {
	var cell models.GradeCell
	if err := g.db.WithContext(ctx).Where("id = ?", grade.CellID).First(&cell).Error; err != nil {
		return dto.GradeSummary{}, err
	}

	// Walk the containment chain back to the natural keys the caller knows.
	submitted, err := g.FindSubmissionNotebookByID(ctx, grade.SubmittedNotebookID)
	if err != nil {
		return dto.GradeSummary{}, err
	}
	var notebook models.Notebook
	if err := g.db.WithContext(ctx).Where("id = ?", submitted.NotebookID).First(&notebook).Error; err != nil {
		return dto.GradeSummary{}, err
	}
	var submission models.SubmittedAssignment
	if err := g.db.WithContext(ctx).Where("id = ?", submitted.SubmittedAssignmentID).First(&submission).Error; err != nil {
		return dto.GradeSummary{}, err
	}
	var assignment models.Assignment
	if err := g.db.WithContext(ctx).Where("id = ?", notebook.AssignmentID).First(&assignment).Error; err != nil {
		return dto.GradeSummary{}, err
	}

	return dto.GradeSummary{
		ID:               grade.ID,
		Name:             cell.Name,
		Notebook:         notebook.Name,
		Assignment:       assignment.Name,
		Student:          submission.StudentID,
		CellType:         string(cell.CellType),
		AutoScore:        grade.AutoScore,
		ManualScore:      grade.ManualScore,
		MaxScore:         cell.MaxScore,
		NeedsManualGrade: aggregate.GradeNeedsManualGrade(grade),
		FailedTests:      aggregate.GradeFailedTests(grade, cell),
	}, nil
}
