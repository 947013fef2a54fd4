package repository

import (
	"context"

	"github.com/Asjad-cell/HealthLink/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserRepository interface {
	FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.User, error)
	Update(ctx context.Context, db *gorm.DB, user *entity.User) error
	// SetActive flips the account flag and returns the number of rows changed.
	SetActive(ctx context.Context, db *gorm.DB, id uuid.UUID, active bool) (int64, error)
}
