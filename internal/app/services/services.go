package services

import (
	"github.com/yigit/unijournal/internal/app/dataset"
	"github.com/yigit/unijournal/internal/app/repositories"
)

// Services bundles the application services used by the controllers and the CLI
type Services struct {
	Journal JournalService
	Import  ImportService
	Grade   GradeService
	Stats   StatsService
}

// NewServices wires every service around the journal repository
func NewServices(repos *repositories.Repositories, reconciler *dataset.Reconciler) *Services {
	return &Services{
		Journal: NewJournalService(repos.JournalRepository),
		Import:  NewImportService(repos.JournalRepository, reconciler),
		Grade:   NewGradeService(repos.JournalRepository),
		Stats:   NewStatsService(repos.JournalRepository),
	}
}
