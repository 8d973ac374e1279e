package models

// Grade is a single lecture or practice mark of a student in a course
type Grade struct {
	ID        string    `json:"id"`
	StudentID string    `json:"studentId"`
	CourseID  string    `json:"courseId"` // Reference by id, courses are not embedded
	Type      GradeType `json:"type"`
	Value     float64   `json:"value"`
	Date      string    `json:"date"` // DateLayout
	Comments  string    `json:"comments,omitempty"`
}

// Matches reports whether the grade is of the given type in the given course
func (g Grade) Matches(courseID string, gradeType GradeType) bool {
	return g.CourseID == courseID && g.Type == gradeType
}

// GradeEdit is a targeted change of one grade value
type GradeEdit struct {
	StudentID string    `json:"studentId" validate:"required"`
	CourseID  string    `json:"courseId" validate:"required"`
	Type      GradeType `json:"type" validate:"required,gradetype"`
	Value     float64   `json:"value" validate:"gradevalue"`
}
