package services

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"github.com/yigit/unijournal/internal/app/dataset"
	"github.com/yigit/unijournal/internal/app/importer"
	"github.com/yigit/unijournal/internal/app/models"
	"github.com/yigit/unijournal/internal/app/repositories"
	"github.com/yigit/unijournal/internal/pkg/apperrors"
	"github.com/yigit/unijournal/internal/pkg/logger"
)

// ImportService defines the bulk import operations
type ImportService interface {
	ImportRows(ctx context.Context, rows []models.ImportRow) (models.ImportReport, error)
	ImportRecords(ctx context.Context, records [][]string) (models.ImportReport, error)
	ImportFile(ctx context.Context, name string, r io.Reader) (models.ImportReport, error)
}

// importServiceImpl implements the ImportService interface
type importServiceImpl struct {
	repo       *repositories.JournalRepository
	reconciler *dataset.Reconciler
	log        *zerolog.Logger
}

// NewImportService creates a new import service instance
func NewImportService(repo *repositories.JournalRepository, reconciler *dataset.Reconciler) ImportService {
	return &importServiceImpl{
		repo:       repo,
		reconciler: reconciler,
		log:        logger.Component("import_service"),
	}
}

// ImportRows reconciles typed rows into the journal as one serialized update
func (s *importServiceImpl) ImportRows(ctx context.Context, rows []models.ImportRow) (models.ImportReport, error) {
	var report models.ImportReport
	version, err := s.repo.Update(ctx, func(current models.Dataset) (models.Dataset, bool, error) {
		next, rep := s.reconciler.Reconcile(current, rows)
		report = rep
		return next, rep.Changed(), nil
	})
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return models.ImportReport{}, err
		}
		return models.ImportReport{}, fmt.Errorf("%w: %v", apperrors.ErrImportFailed, err)
	}
	report.Version = version

	s.log.Info().
		Int("rows", report.RowsProcessed).
		Int("grades_added", report.GradesAdded).
		Int("issues", len(report.Issues)).
		Uint64("version", version).
		Msg("Import applied")
	return report, nil
}

// ImportRecords imports a header row followed by data rows
func (s *importServiceImpl) ImportRecords(ctx context.Context, records [][]string) (models.ImportReport, error) {
	rows, err := importer.RowsFromRecords(records)
	if err != nil {
		return models.ImportReport{}, mapImportError(err)
	}
	return s.ImportRows(ctx, rows)
}

// ImportFile parses an uploaded spreadsheet and imports its rows
func (s *importServiceImpl) ImportFile(ctx context.Context, name string, r io.Reader) (models.ImportReport, error) {
	rows, err := importer.ParseFile(name, r)
	if err != nil {
		s.log.Warn().Err(err).Str("file", name).Msg("Import file rejected")
		return models.ImportReport{}, mapImportError(err)
	}
	return s.ImportRows(ctx, rows)
}

func mapImportError(err error) error {
	switch {
	case errors.Is(err, importer.ErrUnsupportedFormat):
		return apperrors.NewCustomError(apperrors.ErrUnsupportedImport, err.Error())
	case errors.Is(err, importer.ErrNoRecognizedColumns), errors.Is(err, importer.ErrUnreadableFile):
		return apperrors.NewCustomError(apperrors.ErrImportFailed, err.Error())
	default:
		return fmt.Errorf("%w: %v", apperrors.ErrImportFailed, err)
	}
}
