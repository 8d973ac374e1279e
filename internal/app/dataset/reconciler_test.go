package dataset

import (
	"fmt"
	"reflect"
	"testing"
	"time"

	"github.com/yigit/unijournal/internal/app/models"
)

func newTestReconciler() *Reconciler {
	n := 0
	return NewReconciler(Options{
		Now: func() time.Time { return time.Date(2024, 9, 2, 10, 0, 0, 0, time.UTC) },
		NewID: func() string {
			n++
			return fmt.Sprintf("id-%d", n)
		},
	})
}

func scenarioRow() models.ImportRow {
	return models.ImportRow{
		Line:       2,
		FirstName:  "Олена",
		LastName:   "Сидоренко",
		Group:      "КН-102",
		CourseName: "Фізика",
		Teacher:    "Гриценко Петро",
		Semester:   models.ParseNumeric("2"),
		Year:       models.ParseNumeric("2024"),
		Lecture:    models.ParseNumeric("88"),
	}
}

func seedDataset() models.Dataset {
	teacher := &models.Teacher{ID: "t1", FirstName: "Марія", LastName: "Іваненко", Department: "Комп'ютерні науки"}
	course := &models.Course{ID: "c1", Name: "Програмування", Teacher: teacher, Semester: 1, Year: 2024}
	return models.Dataset{
		Teachers: []*models.Teacher{teacher},
		Courses:  []*models.Course{course},
		Students: []models.Student{{
			ID: "s1", FirstName: "Іван", LastName: "Петренко", Group: "КН-101",
			Grades: []models.Grade{
				{ID: "g1", StudentID: "s1", CourseID: "c1", Type: models.GradeTypeLecture, Value: 85, Date: "2024-03-15"},
			},
		}},
	}
}

func countGrades(s models.Student, courseID string, t models.GradeType) int {
	n := 0
	for _, g := range s.Grades {
		if g.Matches(courseID, t) {
			n++
		}
	}
	return n
}

func TestReconcile_ScenarioA_EmptyDataset(t *testing.T) {
	r := newTestReconciler()
	ds, report := r.Reconcile(models.Dataset{}, []models.ImportRow{scenarioRow()})

	if len(ds.Teachers) != 1 || len(ds.Courses) != 1 || len(ds.Students) != 1 {
		t.Fatalf("Expected 1 teacher, 1 course, 1 student; got %d, %d, %d", len(ds.Teachers), len(ds.Courses), len(ds.Students))
	}

	teacher := ds.Teachers[0]
	if teacher.LastName != "Гриценко" || teacher.FirstName != "Петро" {
		t.Errorf("Unexpected teacher name: %q %q", teacher.LastName, teacher.FirstName)
	}

	course := ds.Courses[0]
	if course.Name != "Фізика" || course.Semester != 2 || course.Year != 2024 {
		t.Errorf("Unexpected course: %+v", course)
	}
	if course.Teacher != teacher {
		t.Errorf("Course should reference the dataset's teacher")
	}

	student := ds.Students[0]
	if student.LastName != "Сидоренко" || student.FirstName != "Олена" || student.Group != "КН-102" {
		t.Errorf("Unexpected student: %+v", student)
	}
	if len(student.Grades) != 1 {
		t.Fatalf("Expected exactly one grade, got %d", len(student.Grades))
	}
	g := student.Grades[0]
	if g.Type != models.GradeTypeLecture || g.Value != 88 {
		t.Errorf("Expected lecture 88, got %s %v", g.Type, g.Value)
	}
	if g.ID != student.ID+"_"+course.ID+"_lecture" {
		t.Errorf("Unexpected grade id %q", g.ID)
	}
	if g.StudentID != student.ID || g.CourseID != course.ID {
		t.Errorf("Grade references are wrong: %+v", g)
	}
	if g.Date != "2024-09-02" {
		t.Errorf("Expected today's date, got %q", g.Date)
	}

	if report.TeachersAdded != 1 || report.CoursesAdded != 1 || report.StudentsAdded != 1 || report.GradesAdded != 1 {
		t.Errorf("Unexpected report counts: %+v", report)
	}
	if len(report.Issues) != 0 {
		t.Errorf("Expected no issues, got %+v", report.Issues)
	}
}

func TestReconcile_ScenarioB_SameRowTwice(t *testing.T) {
	r := newTestReconciler()
	once, _ := r.Reconcile(models.Dataset{}, []models.ImportRow{scenarioRow()})

	t.Run("Duplicate row in one batch", func(t *testing.T) {
		ds, report := newTestReconciler().Reconcile(models.Dataset{}, []models.ImportRow{scenarioRow(), scenarioRow()})
		if !reflect.DeepEqual(ds, once) {
			t.Errorf("Batch with a duplicated row should equal single import\n got: %+v\nwant: %+v", ds, once)
		}
		if report.GradesAdded != 1 {
			t.Errorf("Expected 1 grade added, got %d", report.GradesAdded)
		}
	})

	t.Run("Second import is a no-op", func(t *testing.T) {
		twice, report := r.Reconcile(once, []models.ImportRow{scenarioRow()})
		if !reflect.DeepEqual(twice, once) {
			t.Errorf("Re-import changed the dataset")
		}
		if report.Changed() {
			t.Errorf("Expected nothing added, got %+v", report)
		}
	})
}

func TestReconcile_ScenarioC_PracticeAddedLater(t *testing.T) {
	r := newTestReconciler()
	ds, _ := r.Reconcile(models.Dataset{}, []models.ImportRow{scenarioRow()})
	lecture := ds.Students[0].Grades[0]

	row := scenarioRow()
	row.Lecture = models.Numeric{}
	row.Practice = models.ParseNumeric("75")
	ds, report := r.Reconcile(ds, []models.ImportRow{row})

	if len(ds.Students) != 1 {
		t.Fatalf("Expected the same student, got %d students", len(ds.Students))
	}
	grades := ds.Students[0].Grades
	if len(grades) != 2 {
		t.Fatalf("Expected 2 grades, got %d", len(grades))
	}
	if grades[0] != lecture {
		t.Errorf("Lecture grade changed: %+v -> %+v", lecture, grades[0])
	}
	if grades[1].Type != models.GradeTypePractice || grades[1].Value != 75 {
		t.Errorf("Expected practice 75, got %+v", grades[1])
	}
	if report.GradesAdded != 1 || report.StudentsAdded != 0 || report.CoursesAdded != 0 || report.TeachersAdded != 0 {
		t.Errorf("Unexpected report: %+v", report)
	}
}

func TestReconcile_FirstWriteWins(t *testing.T) {
	r := newTestReconciler()
	ds, _ := r.Reconcile(models.Dataset{}, []models.ImportRow{scenarioRow()})

	row := scenarioRow()
	row.Lecture = models.ParseNumeric("40")
	ds, report := r.Reconcile(ds, []models.ImportRow{row})

	if v := ds.Students[0].Grades[0].Value; v != 88 {
		t.Errorf("Re-import must not update an existing grade, got %v", v)
	}
	if len(report.Issues) != 1 || report.Issues[0].Code != models.IssueGradeConflict {
		t.Errorf("Expected one grade_conflict issue, got %+v", report.Issues)
	}
}

func TestReconcile_IsNonDestructive(t *testing.T) {
	before := seedDataset()
	snapshot := seedDataset()

	rows := []models.ImportRow{
		{
			FirstName: "Іван", LastName: "Петренко", Group: "КН-101",
			CourseName: "Програмування", Teacher: "Іваненко Марія",
			Semester: models.ParseNumeric("1"), Year: models.ParseNumeric("2024"),
			Lecture: models.ParseNumeric("10"), Practice: models.ParseNumeric("90"),
		},
		scenarioRow(),
	}
	after, report := newTestReconciler().Reconcile(before, rows)

	if !reflect.DeepEqual(before, snapshot) {
		t.Fatalf("Input dataset was modified")
	}
	if after.Teachers[0] != before.Teachers[0] || after.Courses[0] != before.Courses[0] {
		t.Errorf("Existing teachers and courses should be carried over unchanged")
	}
	if !reflect.DeepEqual(*after.Teachers[0], *snapshot.Teachers[0]) || !reflect.DeepEqual(*after.Courses[0].Teacher, *snapshot.Teachers[0]) {
		t.Errorf("Existing teacher fields changed")
	}

	ivan := after.Students[0]
	if ivan.Grades[0] != snapshot.Students[0].Grades[0] {
		t.Errorf("Existing grade changed: %+v", ivan.Grades[0])
	}
	if countGrades(ivan, "c1", models.GradeTypePractice) != 1 {
		t.Errorf("Expected the practice grade to be appended, got %+v", ivan.Grades)
	}
	if len(after.Students) != 2 || len(after.Teachers) != 2 || len(after.Courses) != 2 {
		t.Errorf("Expected one new student, teacher and course; got %+v", report)
	}
	if report.GradesAdded != 2 {
		t.Errorf("Expected 2 grades added (practice for Ivan, lecture for Olena), got %d", report.GradesAdded)
	}
}

func TestReconcile_Idempotence(t *testing.T) {
	rows := []models.ImportRow{
		scenarioRow(),
		{FirstName: "Андрій", LastName: "Мельник", Group: "КН-102", CourseName: "Фізика", Teacher: "Гриценко Петро",
			Semester: models.ParseNumeric("2"), Year: models.ParseNumeric("2024"), Practice: models.ParseNumeric("61")},
		{FirstName: "Андрій", LastName: "Мельник", Group: "КН-102", CourseName: "Алгебра", Teacher: "Коваленко Олександр Іванович",
			Department: "Математика", Lecture: models.ParseNumeric("70,5")},
		{CourseName: "Без викладача", Lecture: models.ParseNumeric("99")},
		{FirstName: "Тарас", Group: "КН-103"},
	}
	r := newTestReconciler()
	first, _ := r.Reconcile(seedDataset(), rows)
	second, report := r.Reconcile(first, rows)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("Second reconcile changed the dataset")
	}
	if report.Changed() {
		t.Errorf("Second reconcile added entities: %+v", report)
	}
}

func TestReconcile_AtMostOneGradePerType(t *testing.T) {
	row := scenarioRow()
	row.Practice = models.ParseNumeric("70")
	other := scenarioRow()
	other.Lecture = models.ParseNumeric("12")
	other.Practice = models.ParseNumeric("13")

	ds, _ := newTestReconciler().Reconcile(models.Dataset{}, []models.ImportRow{row, other, row})
	for _, s := range ds.Students {
		for _, c := range ds.Courses {
			for _, gt := range models.GradeTypes {
				if n := countGrades(s, c.ID, gt); n > 1 {
					t.Errorf("Student %s has %d %s grades in %s", s.ID, n, gt, c.Name)
				}
			}
		}
	}
}

func TestReconcile_NaturalKeys(t *testing.T) {
	tests := []struct {
		name         string
		mutate       func(*models.ImportRow)
		wantStudents int
		wantCourses  int
		wantTeachers int
	}{
		{"Surrounding whitespace matches", func(r *models.ImportRow) {
			r.FirstName, r.Teacher = "  Олена ", " Гриценко   Петро "
		}, 1, 1, 1},
		{"Different group is a different student", func(r *models.ImportRow) { r.Group = "КН-103" }, 2, 1, 1},
		{"Different semester is a different course", func(r *models.ImportRow) { r.Semester = models.ParseNumeric("1") }, 1, 2, 1},
		{"Different teacher is a different course", func(r *models.ImportRow) { r.Teacher = "Шевченко Тарас" }, 1, 2, 2},
		{"Missing year defaults to 2024", func(r *models.ImportRow) { r.Year = models.Numeric{} }, 1, 1, 1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			row := scenarioRow()
			tc.mutate(&row)
			ds, _ := newTestReconciler().Reconcile(models.Dataset{}, []models.ImportRow{scenarioRow(), row})
			if len(ds.Students) != tc.wantStudents || len(ds.Courses) != tc.wantCourses || len(ds.Teachers) != tc.wantTeachers {
				t.Errorf("Got %d students, %d courses, %d teachers; want %d, %d, %d",
					len(ds.Students), len(ds.Courses), len(ds.Teachers), tc.wantStudents, tc.wantCourses, tc.wantTeachers)
			}
		})
	}
}

func TestReconcile_PartialRows(t *testing.T) {
	tests := []struct {
		name     string
		row      models.ImportRow
		wantCode models.IssueCode
		teachers int
		courses  int
		students int
	}{
		{
			name:     "No course name",
			row:      models.ImportRow{FirstName: "Олена", LastName: "Сидоренко", Teacher: "Гриценко Петро", Lecture: models.ParseNumeric("80")},
			wantCode: models.IssueMissingCourseName,
			teachers: 1, courses: 0, students: 1,
		},
		{
			name:     "No student last name",
			row:      models.ImportRow{FirstName: "Олена", CourseName: "Фізика", Teacher: "Гриценко Петро", Lecture: models.ParseNumeric("80")},
			wantCode: models.IssueMissingStudentName,
			teachers: 1, courses: 1, students: 0,
		},
		{
			name:     "Course without teacher",
			row:      models.ImportRow{FirstName: "Олена", LastName: "Сидоренко", CourseName: "Фізика", Lecture: models.ParseNumeric("80")},
			wantCode: models.IssueCourseWithoutTeacher,
			teachers: 0, courses: 0, students: 1,
		},
		{
			name:     "Unparseable grade",
			row:      func() models.ImportRow { r := scenarioRow(); r.Lecture = models.ParseNumeric("відмінно"); return r }(),
			wantCode: models.IssueGradeUnparseable,
			teachers: 1, courses: 1, students: 1,
		},
		{
			name:     "Grade above 100",
			row:      func() models.ImportRow { r := scenarioRow(); r.Lecture = models.ParseNumeric("101"); return r }(),
			wantCode: models.IssueGradeOutOfRange,
			teachers: 1, courses: 1, students: 1,
		},
		{
			name:     "Unparseable semester",
			row:      func() models.ImportRow { r := scenarioRow(); r.Semester = models.ParseNumeric("осінь"); return r }(),
			wantCode: models.IssueSemesterDefaulted,
			teachers: 1, courses: 1, students: 1,
		},
		{
			name:     "Fractional semester",
			row:      func() models.ImportRow { r := scenarioRow(); r.Semester = models.ParseNumeric("2,9"); return r }(),
			wantCode: models.IssueSemesterDefaulted,
			teachers: 1, courses: 1, students: 1,
		},
		{
			name:     "Overflowing year",
			row:      func() models.ImportRow { r := scenarioRow(); r.Year = models.ParseNumeric("1e30"); return r }(),
			wantCode: models.IssueYearDefaulted,
			teachers: 1, courses: 1, students: 1,
		},
		{
			name:     "Zero year",
			row:      func() models.ImportRow { r := scenarioRow(); r.Year = models.ParseNumeric("0"); return r }(),
			wantCode: models.IssueYearDefaulted,
			teachers: 1, courses: 1, students: 1,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ds, report := newTestReconciler().Reconcile(models.Dataset{}, []models.ImportRow{tc.row})
			if len(ds.Teachers) != tc.teachers || len(ds.Courses) != tc.courses || len(ds.Students) != tc.students {
				t.Errorf("Got %d teachers, %d courses, %d students; want %d, %d, %d",
					len(ds.Teachers), len(ds.Courses), len(ds.Students), tc.teachers, tc.courses, tc.students)
			}
			if len(report.Issues) == 0 || report.Issues[0].Code != tc.wantCode {
				t.Errorf("Expected issue %s, got %+v", tc.wantCode, report.Issues)
			}
			defaulted := tc.wantCode == models.IssueSemesterDefaulted || tc.wantCode == models.IssueYearDefaulted
			if !defaulted && ds.GradeCount() != 0 {
				t.Errorf("Expected no grades, got %d", ds.GradeCount())
			}
		})
	}

	t.Run("Defaulted semester still creates the course", func(t *testing.T) {
		row := scenarioRow()
		row.Semester = models.ParseNumeric("осінь")
		ds, _ := newTestReconciler().Reconcile(models.Dataset{}, []models.ImportRow{row})
		if ds.Courses[0].Semester != DefaultSemester {
			t.Errorf("Expected default semester, got %d", ds.Courses[0].Semester)
		}
	})

	t.Run("Unusable numbers fall back to the defaults", func(t *testing.T) {
		row := scenarioRow()
		row.Semester, row.Year = models.ParseNumeric("2.9"), models.ParseNumeric("1e30")
		ds, report := newTestReconciler().Reconcile(models.Dataset{}, []models.ImportRow{row})
		if c := ds.Courses[0]; c.Semester != DefaultSemester || c.Year != DefaultYear {
			t.Errorf("Expected semester %d year %d, got %d %d", DefaultSemester, DefaultYear, c.Semester, c.Year)
		}
		if len(report.Issues) != 2 {
			t.Errorf("Expected semester and year issues, got %+v", report.Issues)
		}
	})
}

func TestNewReconciler_ConfiguredDefaults(t *testing.T) {
	r := NewReconciler(Options{DefaultSemester: 2, DefaultYear: 2025})
	row := scenarioRow()
	row.Semester, row.Year = models.Numeric{}, models.ParseNumeric("abc")
	ds, _ := r.Reconcile(models.Dataset{}, []models.ImportRow{row})
	if c := ds.Courses[0]; c.Semester != 2 || c.Year != 2025 {
		t.Errorf("Expected semester 2 year 2025, got %d %d", c.Semester, c.Year)
	}
	if ds.Teachers[0].ID == "" || ds.Students[0].ID == "" {
		t.Errorf("Default id generator should assign ids")
	}
}

func TestSplitTeacherName(t *testing.T) {
	tests := []struct {
		in, last, first string
	}{
		{"Гриценко Петро", "Гриценко", "Петро"},
		{"Коваленко Олександр Іванович", "Коваленко", "Олександр Іванович"},
		{"Сократ", "Сократ", ""},
		{"  ", "", ""},
	}
	for _, tc := range tests {
		last, first := SplitTeacherName(tc.in)
		if last != tc.last || first != tc.first {
			t.Errorf("SplitTeacherName(%q) = %q, %q; want %q, %q", tc.in, last, first, tc.last, tc.first)
		}
	}
}
