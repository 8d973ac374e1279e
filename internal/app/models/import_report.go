package models

// IssueCode classifies why an import row was skipped or degraded
type IssueCode string

const (
	IssueMissingStudentName   IssueCode = "missing_student_name"
	IssueMissingCourseName    IssueCode = "missing_course_name"
	IssueCourseWithoutTeacher IssueCode = "course_without_teacher"
	IssueSemesterDefaulted    IssueCode = "semester_defaulted"
	IssueYearDefaulted        IssueCode = "year_defaulted"
	IssueGradeUnparseable     IssueCode = "grade_unparseable"
	IssueGradeOutOfRange      IssueCode = "grade_out_of_range"
	IssueGradeConflict        IssueCode = "grade_conflict"
)

// RowIssue records a non-fatal problem with one import row
type RowIssue struct {
	Line    int       `json:"line"`
	Field   string    `json:"field"`
	Code    IssueCode `json:"code"`
	Message string    `json:"message"`
}

// ImportReport summarizes one reconciliation run
type ImportReport struct {
	RowsProcessed int        `json:"rowsProcessed"`
	TeachersAdded int        `json:"teachersAdded"`
	CoursesAdded  int        `json:"coursesAdded"`
	StudentsAdded int        `json:"studentsAdded"`
	GradesAdded   int        `json:"gradesAdded"`
	Issues        []RowIssue `json:"issues"`
	Version       uint64     `json:"version,omitempty"` // Dataset version after the import was applied
}

// Changed reports whether the run added anything to the dataset
func (r ImportReport) Changed() bool {
	return r.TeachersAdded+r.CoursesAdded+r.StudentsAdded+r.GradesAdded > 0
}
