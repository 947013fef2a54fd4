package repository

import (
	"context"
	"errors"

	"github.com/Asjad-cell/HealthLink/internal/domain/entity"
	domainRepo "github.com/Asjad-cell/HealthLink/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type doctorProfileRepository struct{}

func NewDoctorProfileRepository() domainRepo.DoctorProfileRepository {
	return &doctorProfileRepository{}
}

// Create inserts the user row and the profile through the GORM association.
func (r *doctorProfileRepository) Create(ctx context.Context, db *gorm.DB, profile *entity.DoctorProfile) error {
	return db.WithContext(ctx).Omit("User.Role", "Availability").Create(profile).Error
}

func (r *doctorProfileRepository) FindByUserID(ctx context.Context, db *gorm.DB, userID uuid.UUID) (*entity.DoctorProfile, error) {
	var profile entity.DoctorProfile
	err := db.WithContext(ctx).Preload("User").Where("user_id = ?", userID).First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &profile, nil
}

func (r *doctorProfileRepository) FindAll(ctx context.Context, db *gorm.DB, limit, offset int) ([]entity.DoctorProfile, int64, error) {
	var profiles []entity.DoctorProfile
	var total int64

	if err := db.WithContext(ctx).Model(&entity.DoctorProfile{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := db.WithContext(ctx).
		Joins("User").
		Order(`"User".full_name ASC, doctor_profiles.user_id ASC`).
		Limit(limit).Offset(offset).
		Find(&profiles).Error
	if err != nil {
		return nil, 0, err
	}
	return profiles, total, nil
}

func (r *doctorProfileRepository) Update(ctx context.Context, db *gorm.DB, profile *entity.DoctorProfile) error {
	return db.WithContext(ctx).Omit("User", "Availability").Save(profile).Error
}

func (r *doctorProfileRepository) Count(ctx context.Context, db *gorm.DB) (int64, int64, error) {
	var counts struct {
		Total  int64
		Active int64
	}
	err := db.WithContext(ctx).Model(&entity.DoctorProfile{}).
		Select("COUNT(*) AS total, COUNT(*) FILTER (WHERE users.is_active) AS active").
		Joins("JOIN users ON users.id = doctor_profiles.user_id").
		Scan(&counts).Error
	if err != nil {
		return 0, 0, err
	}
	return counts.Total, counts.Active, nil
}
