package repositories

import (
	"github.com/yigit/unijournal/internal/app/models"
)

// Repositories holds all the repository instances
type Repositories struct {
	JournalRepository *JournalRepository
}

// NewRepositories initializes all repositories around the initial dataset
func NewRepositories(seed models.Dataset) *Repositories {
	return &Repositories{
		JournalRepository: NewJournalRepository(seed),
	}
}
