package repository

import (
	"context"

	"github.com/Asjad-cell/HealthLink/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PatientProfileRepository interface {
	// Create inserts the profile together with its User.
	Create(ctx context.Context, db *gorm.DB, profile *entity.PatientProfile) error
	FindByUserID(ctx context.Context, db *gorm.DB, userID uuid.UUID) (*entity.PatientProfile, error)
	FindByUserIDs(ctx context.Context, db *gorm.DB, userIDs []uuid.UUID) ([]entity.PatientProfile, error)
	FindAll(ctx context.Context, db *gorm.DB, limit, offset int) ([]entity.PatientProfile, int64, error)
	Update(ctx context.Context, db *gorm.DB, profile *entity.PatientProfile) error
	Count(ctx context.Context, db *gorm.DB) (int64, error)
}
