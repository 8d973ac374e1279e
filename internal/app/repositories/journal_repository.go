package repositories

import (
	"context"
	"sync"

	"github.com/yigit/unijournal/internal/app/models"
	"github.com/yigit/unijournal/internal/pkg/logger"
)

// UpdateFunc computes the next dataset from the current one. Returning false
// keeps the current dataset and version.
type UpdateFunc func(current models.Dataset) (next models.Dataset, changed bool, err error)

// JournalRepository owns the canonical dataset. Writers are serialized and each
// committed change bumps the version, so readers always see a whole dataset.
type JournalRepository struct {
	mu      sync.RWMutex
	ds      models.Dataset
	version uint64
}

// NewJournalRepository creates a repository holding the initial dataset at version 1
func NewJournalRepository(initial models.Dataset) *JournalRepository {
	return &JournalRepository{ds: initial, version: 1}
}

// Snapshot returns the current dataset and its version. The returned value
// must be treated as read-only.
func (r *JournalRepository) Snapshot(ctx context.Context) (models.Dataset, uint64, error) {
	if err := ctx.Err(); err != nil {
		return models.Dataset{}, 0, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.ds, r.version, nil
}

// Version returns the current dataset version
func (r *JournalRepository) Version() uint64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.version
}

// Update runs fn under the write lock and commits its result when it reports a change
func (r *JournalRepository) Update(ctx context.Context, fn UpdateFunc) (uint64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	next, changed, err := fn(r.ds)
	if err != nil {
		return r.version, err
	}
	if !changed {
		return r.version, nil
	}
	r.ds = next
	r.version++
	logger.Debug().Uint64("version", r.version).Msg("Journal dataset updated")
	return r.version, nil
}
