package repository

import (
	"context"

	"github.com/Asjad-cell/HealthLink/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DoctorProfileRepository interface {
	// Create inserts the profile together with its User.
	Create(ctx context.Context, db *gorm.DB, profile *entity.DoctorProfile) error
	FindByUserID(ctx context.Context, db *gorm.DB, userID uuid.UUID) (*entity.DoctorProfile, error)
	FindAll(ctx context.Context, db *gorm.DB, limit, offset int) ([]entity.DoctorProfile, int64, error)
	Update(ctx context.Context, db *gorm.DB, profile *entity.DoctorProfile) error
	// Count returns the number of doctors and how many of them are active.
	Count(ctx context.Context, db *gorm.DB) (total int64, active int64, err error)
}
