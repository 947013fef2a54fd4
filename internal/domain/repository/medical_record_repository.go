package repository

import (
	"context"

	"github.com/Asjad-cell/HealthLink/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MedicalRecordRepository interface {
	Create(ctx context.Context, db *gorm.DB, record *entity.MedicalRecord) error
	FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.MedicalRecord, error)
	FindByPatientID(ctx context.Context, db *gorm.DB, patientID uuid.UUID) ([]entity.MedicalRecord, error)
	Update(ctx context.Context, db *gorm.DB, record *entity.MedicalRecord) error
	// PatientsWithHistory returns the subset of patientIDs that have at least one record.
	PatientsWithHistory(ctx context.Context, db *gorm.DB, patientIDs []uuid.UUID) (map[uuid.UUID]bool, error)
}
