package driven

import (
	"context"

	"github.com/quarry-labs/quarry/internal/core/domain"
)

// SnapshotStore persists the complete index state.
type SnapshotStore interface {
	// Save writes the snapshot, replacing any previous one.
	Save(ctx context.Context, snap *domain.IndexSnapshot) error

	// Load reads the persisted snapshot. An absent snapshot yields
	// domain.ErrSnapshotNotFound; an unreadable or incompatible one
	// yields domain.ErrSnapshotCorrupt. The two are always distinct.
	Load(ctx context.Context) (*domain.IndexSnapshot, error)

	// Path returns the snapshot location, for status reporting.
	Path() string
}
