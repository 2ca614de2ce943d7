package models

import "gorm.io/gorm"

// Grade holds the score for one grade cell in one submitted notebook. Both
// scores start unset when the submission is mirrored: the grading engine
// fills AutoScore, a human reviewer fills ManualScore. A manual score always
// overrides an automatic one.
type Grade struct {
	ID                  string `gorm:"primaryKey;size:32" json:"id"`
	CellID              string `gorm:"size:32;not null;uniqueIndex:uniq_grade_pair" json:"cell_id"`
	SubmittedNotebookID string `gorm:"size:32;not null;uniqueIndex:uniq_grade_pair" json:"submitted_notebook_id"`

	AutoScore   *float64 `json:"auto_score"`
	ManualScore *float64 `json:"manual_score"`

	Cell     GradeCell         `gorm:"foreignKey:CellID" json:"-"`
	Notebook SubmittedNotebook `gorm:"foreignKey:SubmittedNotebookID" json:"-"`
}

// TableName preserves the on-disk table name of the original store.
func (Grade) TableName() string { return "grade" }

func (g *Grade) BeforeCreate(*gorm.DB) error {
	if g.ID == "" {
		g.ID = NewID()
	}
	return nil
}

// Comment holds reviewer feedback for one solution cell in one submitted
// notebook. It is created empty by the mirroring step.
type Comment struct {
	ID                  string `gorm:"primaryKey;size:32" json:"id"`
	CellID              string `gorm:"size:32;not null;uniqueIndex:uniq_comment_pair" json:"cell_id"`
	SubmittedNotebookID string `gorm:"size:32;not null;uniqueIndex:uniq_comment_pair" json:"submitted_notebook_id"`

	Text string `gorm:"column:comment;type:text" json:"comment"`

	Cell     SolutionCell      `gorm:"foreignKey:CellID" json:"-"`
	Notebook SubmittedNotebook `gorm:"foreignKey:SubmittedNotebookID" json:"-"`
}

// TableName preserves the on-disk table name of the original store.
func (Comment) TableName() string { return "comment" }

func (c *Comment) BeforeCreate(*gorm.DB) error {
	if c.ID == "" {
		c.ID = NewID()
	}
	return nil
}
