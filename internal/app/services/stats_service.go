package services

import (
	"context"

	"github.com/yigit/unijournal/internal/app/repositories"
	"github.com/yigit/unijournal/internal/app/stats"
)

// StatsService defines the derived statistics operations
type StatsService interface {
	StudentReport(ctx context.Context, studentID string, semester int) (stats.Report, error)
}

// statsServiceImpl implements the StatsService interface
type statsServiceImpl struct {
	repo *repositories.JournalRepository
}

// NewStatsService creates a new stats service instance
func NewStatsService(repo *repositories.JournalRepository) StatsService {
	return &statsServiceImpl{repo: repo}
}

// StudentReport builds the statistics report of one student. A positive semester
// limits the report to the courses of that semester.
func (s *statsServiceImpl) StudentReport(ctx context.Context, studentID string, semester int) (stats.Report, error) {
	ds, _, err := s.repo.Snapshot(ctx)
	if err != nil {
		return stats.Report{}, err
	}
	ds = stats.ForSemester(ds, semester)
	st, ok := ds.FindStudent(studentID)
	if !ok {
		return stats.Report{}, studentNotFound(studentID)
	}
	report := stats.BuildReport(ds, *st)
	if semester > 0 {
		report.Semester = semester
	}
	return report, nil
}
