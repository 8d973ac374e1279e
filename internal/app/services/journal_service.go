package services

import (
	"context"
	"math"
	"strings"

	"github.com/yigit/unijournal/internal/app/models"
	"github.com/yigit/unijournal/internal/app/models/dto"
	"github.com/yigit/unijournal/internal/app/repositories"
	"github.com/yigit/unijournal/internal/pkg/apperrors"
	"github.com/yigit/unijournal/internal/pkg/helpers"
)

// StudentFilter narrows and pages the student list
type StudentFilter struct {
	Group string
	Page  int
	Size  int
}

// StudentPage is one page of students
type StudentPage struct {
	Students   []models.Student   `json:"students"`
	Pagination dto.PaginationInfo `json:"pagination"`
}

// JournalRow is one student's line of a course journal
type JournalRow struct {
	StudentID string    `json:"studentId"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Group     string    `json:"group"`
	Lecture   []float64 `json:"lecture"`
	Practice  []float64 `json:"practice"`
	Average   int       `json:"average"` // rounded, 0 when the student has no grades in the course
}

// CourseJournal is the teacher's view of one course
type CourseJournal struct {
	Course *models.Course `json:"course"`
	Rows   []JournalRow   `json:"rows"`
}

// JournalService defines the read operations over the journal
type JournalService interface {
	ListTeachers(ctx context.Context) ([]*models.Teacher, error)
	ListCourses(ctx context.Context, teacherID string) ([]*models.Course, error)
	ListStudents(ctx context.Context, filter StudentFilter) (StudentPage, error)
	GetStudent(ctx context.Context, id string) (models.Student, error)
	GetCourseJournal(ctx context.Context, courseID string) (CourseJournal, error)
	Version(ctx context.Context) (uint64, error)
}

// journalServiceImpl implements the JournalService interface
type journalServiceImpl struct {
	repo *repositories.JournalRepository
}

// NewJournalService creates a new journal service instance
func NewJournalService(repo *repositories.JournalRepository) JournalService {
	return &journalServiceImpl{repo: repo}
}

// ListTeachers returns every teacher
func (s *journalServiceImpl) ListTeachers(ctx context.Context) ([]*models.Teacher, error) {
	ds, _, err := s.repo.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return ds.Teachers, nil
}

// ListCourses returns every course, or only those taught by teacherID when it is set
func (s *journalServiceImpl) ListCourses(ctx context.Context, teacherID string) ([]*models.Course, error) {
	ds, _, err := s.repo.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	if teacherID == "" {
		return ds.Courses, nil
	}
	courses := make([]*models.Course, 0)
	for _, c := range ds.Courses {
		if c.Teacher != nil && c.Teacher.ID == teacherID {
			courses = append(courses, c)
		}
	}
	return courses, nil
}

// ListStudents returns a page of students, optionally restricted to one group
func (s *journalServiceImpl) ListStudents(ctx context.Context, filter StudentFilter) (StudentPage, error) {
	ds, _, err := s.repo.Snapshot(ctx)
	if err != nil {
		return StudentPage{}, err
	}

	students := ds.Students
	if group := strings.TrimSpace(filter.Group); group != "" {
		students = make([]models.Student, 0)
		for _, st := range ds.Students {
			if st.Group == group {
				students = append(students, st)
			}
		}
	}

	page, info := helpers.Paginate(students, filter.Page, filter.Size)
	return StudentPage{Students: page, Pagination: info}, nil
}

// GetStudent returns one student with grades
func (s *journalServiceImpl) GetStudent(ctx context.Context, id string) (models.Student, error) {
	ds, _, err := s.repo.Snapshot(ctx)
	if err != nil {
		return models.Student{}, err
	}
	st, ok := ds.FindStudent(id)
	if !ok {
		return models.Student{}, studentNotFound(id)
	}
	return *st, nil
}

// GetCourseJournal lists every student with their grades in the course
func (s *journalServiceImpl) GetCourseJournal(ctx context.Context, courseID string) (CourseJournal, error) {
	ds, _, err := s.repo.Snapshot(ctx)
	if err != nil {
		return CourseJournal{}, err
	}
	course, ok := ds.FindCourse(courseID)
	if !ok {
		return CourseJournal{}, apperrors.NewCustomError(apperrors.ErrCourseNotFound, "course "+courseID+" not found").
			WithDetails(map[string]interface{}{"courseId": courseID})
	}

	rows := make([]JournalRow, 0, len(ds.Students))
	for i := range ds.Students {
		st := &ds.Students[i]
		row := JournalRow{
			StudentID: st.ID,
			FirstName: st.FirstName,
			LastName:  st.LastName,
			Group:     st.Group,
			Lecture:   []float64{},
			Practice:  []float64{},
		}
		var sum float64
		grades := st.GradesForCourse(courseID)
		for _, g := range grades {
			sum += g.Value
			switch g.Type {
			case models.GradeTypeLecture:
				row.Lecture = append(row.Lecture, g.Value)
			case models.GradeTypePractice:
				row.Practice = append(row.Practice, g.Value)
			}
		}
		if len(grades) > 0 {
			row.Average = int(math.Round(sum / float64(len(grades))))
		}
		rows = append(rows, row)
	}
	return CourseJournal{Course: course, Rows: rows}, nil
}

// Version returns the current dataset version
func (s *journalServiceImpl) Version(ctx context.Context) (uint64, error) {
	_, v, err := s.repo.Snapshot(ctx)
	return v, err
}

func studentNotFound(id string) error {
	return apperrors.NewCustomError(apperrors.ErrStudentNotFound, "student "+id+" not found").
		WithDetails(map[string]interface{}{"studentId": id})
}
