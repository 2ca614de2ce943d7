package models

// Student is a person who submits assignments. Unlike the other entities its
// id is a caller-supplied natural key (e.g. a university login), not a
// generated token.
type Student struct {
	ID        string `gorm:"primaryKey;size:128" json:"id"`
	FirstName string `gorm:"size:128" json:"first_name"`
	LastName  string `gorm:"size:128" json:"last_name"`
	Email     string `gorm:"size:128" json:"email"`

	Submissions []SubmittedAssignment `gorm:"foreignKey:StudentID" json:"-"`
}

// TableName preserves the on-disk table name of the original store.
func (Student) TableName() string { return "student" }
