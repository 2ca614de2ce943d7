package gradebook

import (
	"context"

	"github.com/noah-isme/gradebook-api/internal/aggregate"
	"github.com/noah-isme/gradebook-api/internal/dto"
)

// AverageAssignmentScore is the mean overall score across every submission
// of an assignment, 0.0 when nothing has been submitted.
func (g *Gradebook) AverageAssignmentScore(ctx context.Context, assignment string) (float64, error) {
	return g.averageAssignmentScore(ctx, assignment, aggregate.All)
}

// AverageAssignmentCodeScore is the mean code-cell score across every
// submission of an assignment.
func (g *Gradebook) AverageAssignmentCodeScore(ctx context.Context, assignment string) (float64, error) {
	return g.averageAssignmentScore(ctx, assignment, aggregate.CodeOnly)
}

// AverageAssignmentWrittenScore is the mean written-cell score across every
// submission of an assignment.
func (g *Gradebook) AverageAssignmentWrittenScore(ctx context.Context, assignment string) (float64, error) {
	return g.averageAssignmentScore(ctx, assignment, aggregate.WrittenOnly)
}

func (g *Gradebook) averageAssignmentScore(ctx context.Context, assignment string, cut aggregate.Cut) (float64, error) {
	parent, err := g.FindAssignment(ctx, assignment)
	if err != nil {
		return 0, err
	}
	num, err := aggregate.AssignmentNumSubmissions(ctx, g.db, parent.ID)
	if err != nil {
		return 0, err
	}
	if num == 0 {
		return 0.0, nil
	}
	total, err := aggregate.AssignmentScoreTotal(ctx, g.db, parent.ID, cut)
	if err != nil {
		return 0, err
	}
	return total / float64(num), nil
}

// AverageNotebookScore is the mean overall score across every submitted
// instance of a notebook, 0.0 when nothing has been submitted.
func (g *Gradebook) AverageNotebookScore(ctx context.Context, notebook, assignment string) (float64, error) {
	return g.averageNotebookScore(ctx, notebook, assignment, aggregate.All)
}

// AverageNotebookCodeScore is the mean code-cell score across every
// submitted instance of a notebook.
func (g *Gradebook) AverageNotebookCodeScore(ctx context.Context, notebook, assignment string) (float64, error) {
	return g.averageNotebookScore(ctx, notebook, assignment, aggregate.CodeOnly)
}

// AverageNotebookWrittenScore is the mean written-cell score across every
// submitted instance of a notebook.
func (g *Gradebook) AverageNotebookWrittenScore(ctx context.Context, notebook, assignment string) (float64, error) {
	return g.averageNotebookScore(ctx, notebook, assignment, aggregate.WrittenOnly)
}

func (g *Gradebook) averageNotebookScore(ctx context.Context, notebook, assignment string, cut aggregate.Cut) (float64, error) {
	parent, err := g.FindNotebook(ctx, notebook, assignment)
	if err != nil {
		return 0, err
	}
	num, err := aggregate.NotebookNumSubmissions(ctx, g.db, parent.ID)
	if err != nil {
		return 0, err
	}
	if num == 0 {
		return 0.0, nil
	}
	total, err := aggregate.NotebookScoreTotal(ctx, g.db, parent.ID, cut)
	if err != nil {
		return 0, err
	}
	return total / float64(num), nil
}

// studentSummaryRow scans the grouped student report query.
type studentSummaryRow struct {
	ID        string
	FirstName string
	LastName  string
	Email     string
	Score     float64
}

// StudentSummaries reports every student's identity and overall score in one
// grouped query, numerically identical to calling the per-student aggregate
// accessors row by row.
func (g *Gradebook) StudentSummaries(ctx context.Context) ([]dto.StudentSummary, error) {
	const query = `
SELECT student.id AS id,
       student.first_name AS first_name,
       student.last_name AS last_name,
       student.email AS email,
       COALESCE(SUM(CASE
           WHEN grade.manual_score IS NOT NULL THEN grade.manual_score
           WHEN grade.auto_score IS NOT NULL THEN grade.auto_score
           ELSE 0.0 END), 0.0) AS score
FROM student
LEFT JOIN submitted_assignment ON submitted_assignment.student_id = student.id
LEFT JOIN submitted_notebook ON submitted_notebook.submitted_assignment_id = submitted_assignment.id
LEFT JOIN grade ON grade.submitted_notebook_id = submitted_notebook.id
GROUP BY student.id, student.first_name, student.last_name, student.email
ORDER BY student.last_name, student.first_name`

	var rows []studentSummaryRow
	if err := g.db.WithContext(ctx).Raw(query).Scan(&rows).Error; err != nil {
		return nil, err
	}

	maxScore, err := aggregate.StudentMaxScore(ctx, g.db)
	if err != nil {
		return nil, err
	}

	summaries := make([]dto.StudentSummary, 0, len(rows))
	for _, row := range rows {
		summaries = append(summaries, dto.StudentSummary{
			ID:        row.ID,
			FirstName: row.FirstName,
			LastName:  row.LastName,
			Email:     row.Email,
			Score:     row.Score,
			MaxScore:  maxScore,
		})
	}
	return summaries, nil
}

// submittedNotebookRow scans the grouped notebook submission report query.
// The flag columns arrive as 0/1 from conditional aggregation.
type submittedNotebookRow struct {
	ID               string
	Name             string
	Student          string
	Score            float64
	MaxScore         float64
	CodeScore        float64
	MaxCodeScore     float64
	WrittenScore     float64
	MaxWrittenScore  float64
	NeedsManualGrade int
	FailedTests      int
}

// NotebookSubmissionSummaries reports every submitted instance of a notebook
// in one grouped pass: overall, code and written scores and maxima plus the
// two status flags, numerically identical to the per-entity aggregate
// accessors.
func (g *Gradebook) NotebookSubmissionSummaries(ctx context.Context, notebook, assignment string) ([]dto.SubmittedNotebookSummary, error) {
	const query = `
SELECT submitted_notebook.id AS id,
       notebook.name AS name,
       student.id AS student,
       COALESCE(SUM(CASE
           WHEN grade.manual_score IS NOT NULL THEN grade.manual_score
           WHEN grade.auto_score IS NOT NULL THEN grade.auto_score
           ELSE 0.0 END), 0.0) AS score,
       COALESCE(SUM(grade_cell.max_score), 0.0) AS max_score,
       COALESCE(SUM(CASE WHEN grade_cell.cell_type = 'code' THEN
           CASE
               WHEN grade.manual_score IS NOT NULL THEN grade.manual_score
               WHEN grade.auto_score IS NOT NULL THEN grade.auto_score
               ELSE 0.0 END
           ELSE 0.0 END), 0.0) AS code_score,
       COALESCE(SUM(CASE WHEN grade_cell.cell_type = 'code' THEN grade_cell.max_score ELSE 0.0 END), 0.0) AS max_code_score,
       COALESCE(SUM(CASE WHEN grade_cell.cell_type = 'written' THEN
           CASE
               WHEN grade.manual_score IS NOT NULL THEN grade.manual_score
               WHEN grade.auto_score IS NOT NULL THEN grade.auto_score
               ELSE 0.0 END
           ELSE 0.0 END), 0.0) AS written_score,
       COALESCE(SUM(CASE WHEN grade_cell.cell_type = 'written' THEN grade_cell.max_score ELSE 0.0 END), 0.0) AS max_written_score,
       COALESCE(MAX(CASE WHEN grade.id IS NOT NULL
           AND grade.auto_score IS NULL
           AND grade.manual_score IS NULL THEN 1 ELSE 0 END), 0) AS needs_manual_grade,
       COALESCE(MAX(CASE WHEN grade_cell.cell_type = 'code'
           AND grade.auto_score IS NOT NULL
           AND grade.auto_score < grade_cell.max_score THEN 1 ELSE 0 END), 0) AS failed_tests
FROM submitted_notebook
JOIN notebook ON notebook.id = submitted_notebook.notebook_id
JOIN submitted_assignment ON submitted_assignment.id = submitted_notebook.submitted_assignment_id
JOIN assignment ON assignment.id = submitted_assignment.assignment_id
JOIN student ON student.id = submitted_assignment.student_id
LEFT JOIN grade ON grade.submitted_notebook_id = submitted_notebook.id
LEFT JOIN grade_cell ON grade_cell.id = grade.cell_id
WHERE notebook.name = ? AND assignment.name = ?
GROUP BY submitted_notebook.id, notebook.name, student.id
ORDER BY student.id`

	var rows []submittedNotebookRow
	if err := g.db.WithContext(ctx).Raw(query, notebook, assignment).Scan(&rows).Error; err != nil {
		return nil, err
	}

	summaries := make([]dto.SubmittedNotebookSummary, 0, len(rows))
	for _, row := range rows {
		summaries = append(summaries, dto.SubmittedNotebookSummary{
			ID:               row.ID,
			Name:             row.Name,
			Student:          row.Student,
			Score:            row.Score,
			MaxScore:         row.MaxScore,
			CodeScore:        row.CodeScore,
			MaxCodeScore:     row.MaxCodeScore,
			WrittenScore:     row.WrittenScore,
			MaxWrittenScore:  row.MaxWrittenScore,
			NeedsManualGrade: row.NeedsManualGrade != 0,
			FailedTests:      row.FailedTests != 0,
		})
	}
	return summaries, nil
}
