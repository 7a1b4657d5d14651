// Package availability manages the recurring weekly availability template
// the admin edits and the booking flow reads.
package availability

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	availabilityRepo "glowbook/database/repository/availability"
	"glowbook/models"
	"glowbook/utils"
)

// Service exposes the weekly availability template.
type Service interface {
	// Get returns the normalized template. When nothing has been saved, or
	// the stored data is unusable, it returns the all-closed default.
	Get(ctx context.Context) (models.WeeklyAvailability, error)
	// Update replaces the template from the admin edit flow.
	Update(ctx context.Context, avail models.WeeklyAvailability) error
}

// DefaultAvailabilityService implements Service.
type DefaultAvailabilityService struct {
	Repo availabilityRepo.Repository
}

func (s *DefaultAvailabilityService) Get(ctx context.Context) (models.WeeklyAvailability, error) {
	avail, err := s.Repo.Load(ctx)
	if err != nil {
		if errors.Is(err, availabilityRepo.ErrNotSaved) {
			return models.NewWeeklyAvailability(), nil
		}
		// Malformed or unreachable data degrades to no availability rather
		// than failing the page.
		utils.GetLogger().Warn("availability load failed, using all-closed default", zap.Error(err))
		return models.NewWeeklyAvailability(), nil
	}
	avail.Normalize()
	return avail, nil
}

func (s *DefaultAvailabilityService) Update(ctx context.Context, avail models.WeeklyAvailability) error {
	if avail == nil {
		return fmt.Errorf("availability template is required")
	}
	avail = avail.Clone()
	avail.Normalize()
	if err := s.Repo.Save(ctx, avail); err != nil {
		return fmt.Errorf("failed to persist availability template: %w", err)
	}
	return nil
}
