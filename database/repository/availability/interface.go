// Package availabilityRepo persists the studio's recurring weekly
// availability template.
package availabilityRepo

import (
	"context"

	"glowbook/models"
)

// Repository stores the single weekly availability template. Load returns
// ErrNotSaved when no template has ever been saved; callers treat that as
// the all-closed default, not a failure.
type Repository interface {
	Load(ctx context.Context) (models.WeeklyAvailability, error)
	Save(ctx context.Context, avail models.WeeklyAvailability) error
}
