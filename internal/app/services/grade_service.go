package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/yigit/unijournal/internal/app/dataset"
	"github.com/yigit/unijournal/internal/app/models"
	"github.com/yigit/unijournal/internal/app/repositories"
	"github.com/yigit/unijournal/internal/pkg/apperrors"
	"github.com/yigit/unijournal/internal/pkg/logger"
	"github.com/yigit/unijournal/internal/pkg/validation"
)

// GradeService defines the grade editing operations
type GradeService interface {
	UpdateGrade(ctx context.Context, edit models.GradeEdit) (models.Grade, error)
}

// gradeServiceImpl implements the GradeService interface
type gradeServiceImpl struct {
	repo *repositories.JournalRepository
	log  *zerolog.Logger
}

// NewGradeService creates a new grade service instance
func NewGradeService(repo *repositories.JournalRepository) GradeService {
	return &gradeServiceImpl{
		repo: repo,
		log:  logger.Component("grade_service"),
	}
}

// validateEdit checks the edit's type and value bounds
func (s *gradeServiceImpl) validateEdit(edit models.GradeEdit) error {
	err := validation.Validator().Struct(edit)
	if err == nil {
		return nil
	}
	fields := validation.FieldErrors(err)
	details := make(map[string]interface{}, len(fields))
	for f, tag := range fields {
		details[f] = tag
	}

	switch {
	case fields["value"] != "":
		return apperrors.NewCustomError(apperrors.ErrInvalidGradeValue,
			fmt.Sprintf("grade value must be between %d and %d", models.MinGradeValue, models.MaxGradeValue)).
			WithDetails(details)
	case fields["type"] != "":
		return apperrors.NewCustomError(apperrors.ErrInvalidGradeType,
			fmt.Sprintf("grade type %q is not one of %v", edit.Type, models.GradeTypes)).
			WithDetails(details)
	default:
		return apperrors.NewCustomError(apperrors.ErrValidationFailed, err.Error()).WithDetails(details)
	}
}

// UpdateGrade replaces the value of an existing grade and returns the updated grade
func (s *gradeServiceImpl) UpdateGrade(ctx context.Context, edit models.GradeEdit) (models.Grade, error) {
	if err := s.validateEdit(edit); err != nil {
		return models.Grade{}, err
	}

	var updated models.Grade
	version, err := s.repo.Update(ctx, func(current models.Dataset) (models.Dataset, bool, error) {
		students, applied := dataset.ApplyGradeEdit(current.Students, edit)
		if !applied {
			if _, ok := current.FindStudent(edit.StudentID); !ok {
				return current, false, studentNotFound(edit.StudentID)
			}
			return current, false, apperrors.NewCustomError(apperrors.ErrGradeNotFound,
				fmt.Sprintf("student %s has no %s grade in course %s", edit.StudentID, edit.Type, edit.CourseID)).
				WithDetails(map[string]interface{}{"courseId": edit.CourseID, "type": edit.Type})
		}

		current.Students = students
		st, _ := current.FindStudent(edit.StudentID)
		updated = st.Grades[st.FindGrade(edit.CourseID, edit.Type)]
		return current, true, nil
	})
	if err != nil {
		return models.Grade{}, err
	}

	s.log.Info().
		Str("student_id", edit.StudentID).
		Str("course_id", edit.CourseID).
		Str("type", string(edit.Type)).
		Float64("value", edit.Value).
		Uint64("version", version).
		Msg("Grade updated")
	return updated, nil
}
