package repository

import (
	"context"

	"github.com/Asjad-cell/HealthLink/internal/domain/entity"
	domainRepo "github.com/Asjad-cell/HealthLink/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type availabilityRepository struct{}

func NewAvailabilityRepository() domainRepo.AvailabilityRepository {
	return &availabilityRepository{}
}

func (r *availabilityRepository) FindByDoctorID(ctx context.Context, db *gorm.DB, doctorID uuid.UUID) ([]entity.AvailabilitySlot, error) {
	var slots []entity.AvailabilitySlot
	err := db.WithContext(ctx).
		Where("doctor_id = ?", doctorID).
		Order("day_of_week ASC, start_time ASC").
		Find(&slots).Error
	if err != nil {
		return nil, err
	}
	return slots, nil
}

// ReplaceForDoctor must run inside a transaction so readers never observe a
// doctor with a partially written week.
func (r *availabilityRepository) ReplaceForDoctor(ctx context.Context, db *gorm.DB, doctorID uuid.UUID, slots []entity.AvailabilitySlot) error {
	if err := db.WithContext(ctx).Where("doctor_id = ?", doctorID).Delete(&entity.AvailabilitySlot{}).Error; err != nil {
		return err
	}
	if len(slots) == 0 {
		return nil
	}
	for i := range slots {
		slots[i].DoctorID = doctorID
	}
	return db.WithContext(ctx).Omit("Doctor").Create(&slots).Error
}
