// Package aggregate owns every derived quantity of the gradebook: score and
// max-score roll-ups (overall, code-only, written-only), the needs-manual-
// grade and failed-tests status flags, submission counts and late-submission
// arithmetic.
//
// All database functions recompute from committed rows on every call; nothing
// here is cached, so results always reflect the latest writes. Sums coalesce
// to zero: a container with no matching cells or grades reports 0.0.
package aggregate

import (
	"github.com/noah-isme/gradebook-api/internal/models"
	"gorm.io/gorm"
)

// Cut restricts a roll-up to one cell-type partition of the rubric.
type Cut int

const (
	// All includes every grade cell.
	All Cut = iota
	// CodeOnly restricts sums to code cells.
	CodeOnly
	// WrittenOnly restricts sums to written cells.
	WrittenOnly
)

// gradeScoreExpr resolves the effective score of a grade row in SQL:
// manual overrides auto, and a grade with neither counts as zero.
const gradeScoreExpr = "CASE " +
	"WHEN grade.manual_score IS NOT NULL THEN grade.manual_score " +
	"WHEN grade.auto_score IS NOT NULL THEN grade.auto_score " +
	"ELSE 0.0 END"

// apply narrows a query that has grade_cell joined in to the cut's cell type.
func (c Cut) apply(q *gorm.DB) *gorm.DB {
	switch c {
	case CodeOnly:
		return q.Where("grade_cell.cell_type = ?", models.CellTypeCode)
	case WrittenOnly:
		return q.Where("grade_cell.cell_type = ?", models.CellTypeWritten)
	default:
		return q
	}
}

// scanFloat runs an aggregate query expected to yield exactly one number.
func scanFloat(q *gorm.DB) (float64, error) {
	var value float64
	if err := q.Scan(&value).Error; err != nil {
		return 0, err
	}
	return value, nil
}
