package repository

import (
	"context"

	"github.com/Asjad-cell/HealthLink/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AvailabilityRepository interface {
	// FindByDoctorID returns slots ordered by day of week then start time.
	FindByDoctorID(ctx context.Context, db *gorm.DB, doctorID uuid.UUID) ([]entity.AvailabilitySlot, error)
	// ReplaceForDoctor deletes the doctor's slots and inserts slots in their place.
	ReplaceForDoctor(ctx context.Context, db *gorm.DB, doctorID uuid.UUID, slots []entity.AvailabilitySlot) error
}
