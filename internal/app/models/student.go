package models

// Student defines a student together with the grades they own
type Student struct {
	ID        string  `json:"id"`
	FirstName string  `json:"firstName"`
	LastName  string  `json:"lastName"`
	Group     string  `json:"group"`
	Grades    []Grade `json:"grades"`
}

// FindGrade returns the index of the student's grade of the given type in a course, or -1
func (s *Student) FindGrade(courseID string, gradeType GradeType) int {
	for i := range s.Grades {
		if s.Grades[i].Matches(courseID, gradeType) {
			return i
		}
	}
	return -1
}

// GradesForCourse returns the student's grades in one course
func (s *Student) GradesForCourse(courseID string) []Grade {
	var out []Grade
	for _, g := range s.Grades {
		if g.CourseID == courseID {
			out = append(out, g)
		}
	}
	return out
}
