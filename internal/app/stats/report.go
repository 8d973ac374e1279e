package stats

import "github.com/yigit/unijournal/internal/app/models"

// Report gathers every derived figure for one student
type Report struct {
	StudentID       string              `json:"studentId"`
	Name            string              `json:"name"`
	Group           string              `json:"group"`
	Semester        int                 `json:"semester,omitempty"`
	Average         float64             `json:"average"`
	Band            BandInfo            `json:"band"`
	Distribution    []DistributionEntry `json:"distribution"`
	Courses         []Progress          `json:"courses"`
	Rank            RankInfo            `json:"rank"`
	Attendance      AttendanceInfo      `json:"attendance"`
	Recommendations []string            `json:"recommendations"`
	Comparison      []Comparison        `json:"comparison"`
}

// BuildReport derives the report of student from the dataset. Peers for the
// rank are the students of the same group.
func BuildReport(ds models.Dataset, student models.Student) Report {
	groupSize := 0
	for _, s := range ds.Students {
		if s.Group == student.Group {
			groupSize++
		}
	}

	var courses []Progress
	for _, c := range ds.Courses {
		if len(ofCourse(student.Grades, c.ID)) == 0 {
			continue
		}
		courses = append(courses, CourseProgress(c, student.Grades))
	}

	avg := Average(student.Grades)
	return Report{
		StudentID:       student.ID,
		Name:            student.LastName + " " + student.FirstName,
		Group:           student.Group,
		Average:         avg,
		Band:            BandFor(avg),
		Distribution:    Distribution(student.Grades),
		Courses:         courses,
		Rank:            Rank(student.Grades, groupSize),
		Attendance:      Attendance(student.Grades),
		Recommendations: Recommendations(student.Grades),
		Comparison:      Compare(student, GroupAverages(ds.Students, student.Group)),
	}
}

// ForSemester restricts ds to the courses of one semester and the grades given in
// them. A semester below 1 returns ds as is. The input is not modified.
func ForSemester(ds models.Dataset, semester int) models.Dataset {
	if semester < 1 {
		return ds
	}

	kept := make(map[string]struct{})
	out := models.Dataset{Teachers: ds.Teachers}
	for _, c := range ds.Courses {
		if c.Semester == semester {
			out.Courses = append(out.Courses, c)
			kept[c.ID] = struct{}{}
		}
	}

	out.Students = make([]models.Student, len(ds.Students))
	for i, st := range ds.Students {
		grades := make([]models.Grade, 0, len(st.Grades))
		for _, g := range st.Grades {
			if _, ok := kept[g.CourseID]; ok {
				grades = append(grades, g)
			}
		}
		st.Grades = grades
		out.Students[i] = st
	}
	return out
}
