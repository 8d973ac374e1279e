package dataset

import "github.com/yigit/unijournal/internal/app/models"

// ApplyGradeEdit replaces the value of the student's grade matching the edit's
// course and type. The input slice is left untouched: on a hit a copy is
// returned in which only the target student's grade slice is new. On a miss the
// input is returned as is and applied is false. Grades are never created here.
func ApplyGradeEdit(students []models.Student, edit models.GradeEdit) (result []models.Student, applied bool) {
	for i := range students {
		if students[i].ID != edit.StudentID {
			continue
		}
		gi := students[i].FindGrade(edit.CourseID, edit.Type)
		if gi < 0 {
			return students, false
		}

		out := make([]models.Student, len(students))
		copy(out, students)
		grades := make([]models.Grade, len(students[i].Grades))
		copy(grades, students[i].Grades)
		grades[gi].Value = edit.Value
		out[i].Grades = grades
		return out, true
	}
	return students, false
}
