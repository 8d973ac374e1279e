// Package dataset holds the two operations that write the journal's canonical
// collections: the import reconciler and the grade edit mutator. Both are pure
// with respect to their input dataset and perform no I/O.
package dataset

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/yigit/unijournal/internal/app/models"
)

// Defaults applied to course rows without a usable semester or year
const (
	DefaultSemester = 1
	DefaultYear     = 2024
)

// Options configures a Reconciler. Zero values select the defaults.
type Options struct {
	DefaultSemester int
	DefaultYear     int
	Now             func() time.Time
	NewID           func() string
	Logger          *zerolog.Logger
}

// Reconciler merges flat import rows into a dataset, deduplicating teachers,
// courses and students by natural key and inserting grades first-write-wins.
type Reconciler struct {
	defaultSemester int
	defaultYear     int
	now             func() time.Time
	newID           func() string
	logger          zerolog.Logger
}

// NewReconciler creates a new Reconciler
func NewReconciler(opts Options) *Reconciler {
	r := &Reconciler{
		defaultSemester: opts.DefaultSemester,
		defaultYear:     opts.DefaultYear,
		now:             opts.Now,
		newID:           opts.NewID,
		logger:          zerolog.Nop(),
	}
	if r.defaultSemester <= 0 {
		r.defaultSemester = DefaultSemester
	}
	if r.defaultYear <= 0 {
		r.defaultYear = DefaultYear
	}
	if r.now == nil {
		r.now = time.Now
	}
	if r.newID == nil {
		r.newID = uuid.NewString
	}
	if opts.Logger != nil {
		r.logger = opts.Logger.With().Str("component", "reconciler").Logger()
	}
	return r
}

// pendingStudent tracks a student touched by the current run. For students that
// already exist in the dataset, student.Grades aliases the input and is never
// appended to; new grades collect in added.
type pendingStudent struct {
	student models.Student
	seen    map[string]float64
	added   []models.Grade
}

func (p *pendingStudent) gradeValue(key string) (float64, bool) {
	if p.seen == nil {
		p.seen = make(map[string]float64, len(p.student.Grades))
		for _, g := range p.student.Grades {
			k := gradeKey(g.CourseID, g.Type)
			if _, dup := p.seen[k]; !dup {
				p.seen[k] = g.Value
			}
		}
	}
	v, ok := p.seen[key]
	return v, ok
}

func (p *pendingStudent) add(key string, g models.Grade) {
	p.seen[key] = g.Value
	p.added = append(p.added, g)
}

// run holds the lookup tables of one Reconcile call.
type run struct {
	*Reconciler
	today string

	teachers map[string]*models.Teacher
	courses  map[string]*models.Course
	students map[string]*pendingStudent

	existing    []*pendingStudent // parallel to the input students
	newTeachers []*models.Teacher
	newCourses  []*models.Course
	newStudents []*pendingStudent

	report models.ImportReport
}

// Reconcile returns a dataset that is a superset of ds with the rows merged in.
// ds itself is not modified. No row aborts the batch; skipped or degraded rows
// are listed in the report.
func (r *Reconciler) Reconcile(ds models.Dataset, rows []models.ImportRow) (models.Dataset, models.ImportReport) {
	st := &run{
		Reconciler: r,
		today:      r.now().Format(models.DateLayout),
		teachers:   make(map[string]*models.Teacher, len(ds.Teachers)),
		courses:    make(map[string]*models.Course, len(ds.Courses)),
		students:   make(map[string]*pendingStudent, len(ds.Students)),
		existing:   make([]*pendingStudent, len(ds.Students)),
		report:     models.ImportReport{RowsProcessed: len(rows), Issues: []models.RowIssue{}},
	}

	for _, t := range ds.Teachers {
		k := teacherKey(t.LastName, t.FirstName)
		if _, ok := st.teachers[k]; !ok {
			st.teachers[k] = t
		}
	}
	for _, c := range ds.Courses {
		k := courseKey(c.Name, c.Semester, c.Year, c.Teacher)
		if _, ok := st.courses[k]; !ok {
			st.courses[k] = c
		}
	}
	for i := range ds.Students {
		p := &pendingStudent{student: ds.Students[i]}
		st.existing[i] = p
		k := studentKey(p.student.LastName, p.student.FirstName, p.student.Group)
		if _, ok := st.students[k]; !ok {
			st.students[k] = p
		}
	}

	for _, row := range rows {
		teacher := st.resolveTeacher(row)
		course := st.resolveCourse(row, teacher)
		student := st.resolveStudent(row)
		if student == nil || course == nil {
			continue
		}
		st.attachGrades(row, student, course)
	}

	out := models.Dataset{
		Teachers: st.mergeTeachers(ds.Teachers),
		Courses:  st.mergeCourses(ds.Courses),
		Students: st.mergeStudents(),
	}

	r.logger.Info().
		Int("rows", st.report.RowsProcessed).
		Int("teachersAdded", st.report.TeachersAdded).
		Int("coursesAdded", st.report.CoursesAdded).
		Int("studentsAdded", st.report.StudentsAdded).
		Int("gradesAdded", st.report.GradesAdded).
		Int("issues", len(st.report.Issues)).
		Msg("Import rows reconciled")

	return out, st.report
}

func (st *run) issue(row models.ImportRow, field string, code models.IssueCode, format string, args ...interface{}) {
	is := models.RowIssue{Line: row.Line, Field: field, Code: code, Message: fmt.Sprintf(format, args...)}
	st.report.Issues = append(st.report.Issues, is)
	st.logger.Debug().Int("line", is.Line).Str("field", field).Str("code", string(code)).Msg(is.Message)
}

func hasGrades(row models.ImportRow) bool {
	return row.Lecture.Present() || row.Practice.Present()
}

func (st *run) resolveTeacher(row models.ImportRow) *models.Teacher {
	lastName, firstName := SplitTeacherName(row.Teacher)
	if lastName == "" {
		return nil
	}
	key := teacherKey(lastName, firstName)
	if t, ok := st.teachers[key]; ok {
		return t
	}
	t := &models.Teacher{
		ID:         st.newID(),
		FirstName:  firstName,
		LastName:   lastName,
		Department: clean(row.Department),
	}
	st.teachers[key] = t
	st.newTeachers = append(st.newTeachers, t)
	return t
}

func (st *run) resolveCourse(row models.ImportRow, teacher *models.Teacher) *models.Course {
	name := clean(row.CourseName)
	if name == "" {
		if hasGrades(row) {
			st.issue(row, "courseName", models.IssueMissingCourseName, "course name is empty, grades in this row were skipped")
		}
		return nil
	}
	if teacher == nil {
		st.issue(row, "teacher", models.IssueCourseWithoutTeacher, "course %q has no teacher and was not resolved", name)
		return nil
	}

	semester, ok := row.Semester.WholeNumber()
	if !ok {
		semester = st.defaultSemester
		if row.Semester.Present() {
			st.issue(row, "semester", models.IssueSemesterDefaulted, "semester %q is not a positive whole number, using %d", row.Semester.Raw, semester)
		}
	}
	year, ok := row.Year.WholeNumber()
	if !ok {
		year = st.defaultYear
		if row.Year.Present() {
			st.issue(row, "year", models.IssueYearDefaulted, "year %q is not a positive whole number, using %d", row.Year.Raw, year)
		}
	}

	key := courseKey(name, semester, year, teacher)
	if c, ok := st.courses[key]; ok {
		return c
	}
	c := &models.Course{
		ID:       st.newID(),
		Name:     name,
		Teacher:  teacher,
		Semester: semester,
		Year:     year,
	}
	st.courses[key] = c
	st.newCourses = append(st.newCourses, c)
	return c
}

func (st *run) resolveStudent(row models.ImportRow) *pendingStudent {
	firstName, lastName := clean(row.FirstName), clean(row.LastName)
	if firstName == "" || lastName == "" {
		if hasGrades(row) {
			st.issue(row, "student", models.IssueMissingStudentName, "student first and last name are required, grades in this row were skipped")
		}
		return nil
	}
	group := clean(row.Group)
	key := studentKey(lastName, firstName, group)
	if p, ok := st.students[key]; ok {
		return p
	}
	p := &pendingStudent{
		student: models.Student{
			ID:        st.newID(),
			FirstName: firstName,
			LastName:  lastName,
			Group:     group,
		},
	}
	st.students[key] = p
	st.newStudents = append(st.newStudents, p)
	return p
}

func (st *run) attachGrades(row models.ImportRow, p *pendingStudent, course *models.Course) {
	for _, gt := range models.GradeTypes {
		v := row.Grade(gt)
		field := string(gt)
		switch v.State {
		case models.NumericMissing:
			continue
		case models.NumericUnparseable:
			st.issue(row, field, models.IssueGradeUnparseable, "%s value %q is not a number", gt, v.Raw)
			continue
		}
		if v.Value < models.MinGradeValue || v.Value > models.MaxGradeValue {
			st.issue(row, field, models.IssueGradeOutOfRange, "%s value %v is outside [%d,%d]", gt, v.Value, models.MinGradeValue, models.MaxGradeValue)
			continue
		}

		key := gradeKey(course.ID, gt)
		if current, ok := p.gradeValue(key); ok {
			if current != v.Value {
				st.issue(row, field, models.IssueGradeConflict, "%s grade already recorded as %v, imported value %v ignored", gt, current, v.Value)
			}
			continue
		}
		p.add(key, models.Grade{
			ID:        fmt.Sprintf("%s_%s_%s", p.student.ID, course.ID, gt),
			StudentID: p.student.ID,
			CourseID:  course.ID,
			Type:      gt,
			Value:     v.Value,
			Date:      st.today,
		})
	}
}

func (st *run) mergeTeachers(current []*models.Teacher) []*models.Teacher {
	out := make([]*models.Teacher, 0, len(current)+len(st.newTeachers))
	out = append(out, current...)
	seen := make(map[string]struct{}, cap(out))
	for _, t := range current {
		seen[teacherKey(t.LastName, t.FirstName)] = struct{}{}
	}
	for _, t := range st.newTeachers {
		k := teacherKey(t.LastName, t.FirstName)
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, t)
		st.report.TeachersAdded++
	}
	return out
}

func (st *run) mergeCourses(current []*models.Course) []*models.Course {
	out := make([]*models.Course, 0, len(current)+len(st.newCourses))
	out = append(out, current...)
	seen := make(map[string]struct{}, cap(out))
	for _, c := range current {
		seen[courseKey(c.Name, c.Semester, c.Year, c.Teacher)] = struct{}{}
	}
	for _, c := range st.newCourses {
		k := courseKey(c.Name, c.Semester, c.Year, c.Teacher)
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, c)
		st.report.CoursesAdded++
	}
	return out
}

func (st *run) mergeStudents() []models.Student {
	out := make([]models.Student, 0, len(st.existing)+len(st.newStudents))
	index := make(map[string]int, cap(out))
	for _, p := range st.existing {
		k := studentKey(p.student.LastName, p.student.FirstName, p.student.Group)
		if _, ok := index[k]; !ok {
			index[k] = len(out)
		}
		s := p.student
		if len(p.added) > 0 {
			s.Grades = mergeGrades(s.Grades, p.added)
			st.report.GradesAdded += len(s.Grades) - len(p.student.Grades)
		}
		out = append(out, s)
	}

	for _, p := range st.newStudents {
		k := studentKey(p.student.LastName, p.student.FirstName, p.student.Group)
		if i, dup := index[k]; dup {
			before := len(out[i].Grades)
			out[i].Grades = mergeGrades(out[i].Grades, p.added)
			st.report.GradesAdded += len(out[i].Grades) - before
			continue
		}
		index[k] = len(out)
		s := p.student
		s.Grades = make([]models.Grade, len(p.added))
		copy(s.Grades, p.added)
		out = append(out, s)
		st.report.StudentsAdded++
		st.report.GradesAdded += len(s.Grades)
	}
	return out
}

// mergeGrades returns a fresh slice of current followed by the grades of added
// whose (course, type) is not already present.
func mergeGrades(current, added []models.Grade) []models.Grade {
	out := make([]models.Grade, len(current), len(current)+len(added))
	copy(out, current)
	seen := make(map[string]struct{}, cap(out))
	for _, g := range current {
		seen[gradeKey(g.CourseID, g.Type)] = struct{}{}
	}
	for _, g := range added {
		k := gradeKey(g.CourseID, g.Type)
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, g)
	}
	return out
}
