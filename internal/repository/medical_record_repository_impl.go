package repository

import (
	"context"
	"errors"

	"github.com/Asjad-cell/HealthLink/internal/domain/entity"
	domainRepo "github.com/Asjad-cell/HealthLink/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type medicalRecordRepository struct{}

func NewMedicalRecordRepository() domainRepo.MedicalRecordRepository {
	return &medicalRecordRepository{}
}

func (r *medicalRecordRepository) Create(ctx context.Context, db *gorm.DB, record *entity.MedicalRecord) error {
	return db.WithContext(ctx).Create(record).Error
}

func (r *medicalRecordRepository) FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.MedicalRecord, error) {
	var record entity.MedicalRecord
	err := db.WithContext(ctx).Where("id = ?", id).First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}

func (r *medicalRecordRepository) FindByPatientID(ctx context.Context, db *gorm.DB, patientID uuid.UUID) ([]entity.MedicalRecord, error) {
	var records []entity.MedicalRecord
	err := db.WithContext(ctx).
		Where("patient_id = ?", patientID).
		Order("recorded_at ASC, id ASC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (r *medicalRecordRepository) Update(ctx context.Context, db *gorm.DB, record *entity.MedicalRecord) error {
	return db.WithContext(ctx).Save(record).Error
}

func (r *medicalRecordRepository) PatientsWithHistory(ctx context.Context, db *gorm.DB, patientIDs []uuid.UUID) (map[uuid.UUID]bool, error) {
	result := make(map[uuid.UUID]bool, len(patientIDs))
	if len(patientIDs) == 0 {
		return result, nil
	}

	var ids []uuid.UUID
	err := db.WithContext(ctx).Model(&entity.MedicalRecord{}).
		Where("patient_id IN ?", patientIDs).
		Distinct().
		Pluck("patient_id", &ids).Error
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		result[id] = true
	}
	return result, nil
}
