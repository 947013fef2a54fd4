package repository

import (
	"context"

	"github.com/Asjad-cell/HealthLink/internal/domain/entity"

	"gorm.io/gorm"
)

type RoleRepository interface {
	FindByName(ctx context.Context, db *gorm.DB, name string) (*entity.Role, error)
	// FindAll returns every role ordered by id.
	FindAll(ctx context.Context, db *gorm.DB) ([]entity.Role, error)
}
