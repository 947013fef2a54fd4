package repository

import (
	"context"
	"errors"

	"github.com/Asjad-cell/HealthLink/internal/domain/entity"
	domainRepo "github.com/Asjad-cell/HealthLink/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type patientProfileRepository struct{}

func NewPatientProfileRepository() domainRepo.PatientProfileRepository {
	return &patientProfileRepository{}
}

func (r *patientProfileRepository) Create(ctx context.Context, db *gorm.DB, profile *entity.PatientProfile) error {
	return db.WithContext(ctx).Omit("User.Role", "Appointments", "MedicalRecords").Create(profile).Error
}

func (r *patientProfileRepository) FindByUserID(ctx context.Context, db *gorm.DB, userID uuid.UUID) (*entity.PatientProfile, error) {
	var profile entity.PatientProfile
	err := db.WithContext(ctx).Preload("User").Where("user_id = ?", userID).First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &profile, nil
}

// FindByUserIDs preloads each patient's medical history.
func (r *patientProfileRepository) FindByUserIDs(ctx context.Context, db *gorm.DB, userIDs []uuid.UUID) ([]entity.PatientProfile, error) {
	var profiles []entity.PatientProfile
	if len(userIDs) == 0 {
		return profiles, nil
	}
	err := db.WithContext(ctx).
		Preload("User").
		Preload("MedicalRecords", func(db *gorm.DB) *gorm.DB {
			return db.Order("recorded_at ASC, id ASC")
		}).
		Where("user_id IN ?", userIDs).
		Find(&profiles).Error
	if err != nil {
		return nil, err
	}
	return profiles, nil
}

func (r *patientProfileRepository) FindAll(ctx context.Context, db *gorm.DB, limit, offset int) ([]entity.PatientProfile, int64, error) {
	var profiles []entity.PatientProfile
	var total int64

	if err := db.WithContext(ctx).Model(&entity.PatientProfile{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := db.WithContext(ctx).
		Joins("User").
		Order(`"User".full_name ASC, patient_profiles.user_id ASC`).
		Limit(limit).Offset(offset).
		Find(&profiles).Error
	if err != nil {
		return nil, 0, err
	}
	return profiles, total, nil
}

func (r *patientProfileRepository) Update(ctx context.Context, db *gorm.DB, profile *entity.PatientProfile) error {
	return db.WithContext(ctx).Omit("User", "Appointments", "MedicalRecords").Save(profile).Error
}

func (r *patientProfileRepository) Count(ctx context.Context, db *gorm.DB) (int64, error) {
	var total int64
	err := db.WithContext(ctx).Model(&entity.PatientProfile{}).Count(&total).Error
	return total, err
}
