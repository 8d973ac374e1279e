package models

// Dataset holds the canonical collections of the journal.
// Teachers and courses are shared by pointer; students own their grades.
type Dataset struct {
	Teachers []*Teacher `json:"teachers"`
	Courses  []*Course  `json:"courses"`
	Students []Student  `json:"students"`
}

// FindStudent returns the student with the given id
func (d Dataset) FindStudent(id string) (*Student, bool) {
	for i := range d.Students {
		if d.Students[i].ID == id {
			return &d.Students[i], true
		}
	}
	return nil, false
}

// FindCourse returns the course with the given id
func (d Dataset) FindCourse(id string) (*Course, bool) {
	for _, c := range d.Courses {
		if c.ID == id {
			return c, true
		}
	}
	return nil, false
}

// GradeCount returns the total number of grades across all students
func (d Dataset) GradeCount() int {
	n := 0
	for _, s := range d.Students {
		n += len(s.Grades)
	}
	return n
}
