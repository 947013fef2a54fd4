package repository

import (
	"context"
	"errors"
	"time"

	"github.com/Asjad-cell/HealthLink/internal/domain/entity"
	domainRepo "github.com/Asjad-cell/HealthLink/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const activeSlotConstraint = "uq_appointments_active_slot"

const appointmentOrder = "appointment_date ASC, time_slot ASC, id ASC"

type appointmentRepository struct{}

func NewAppointmentRepository() domainRepo.AppointmentRepository {
	return &appointmentRepository{}
}

func (r *appointmentRepository) Create(ctx context.Context, db *gorm.DB, appointment *entity.Appointment) error {
	err := db.WithContext(ctx).Omit("Doctor", "Patient").Create(appointment).Error
	if IsDuplicateKeyError(err, activeSlotConstraint) {
		return domainRepo.ErrDuplicate
	}
	return err
}

func (r *appointmentRepository) FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.Appointment, error) {
	var appointment entity.Appointment
	err := db.WithContext(ctx).
		Preload("Doctor.User").Preload("Patient.User").
		Where("id = ?", id).
		First(&appointment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &appointment, nil
}

func (r *appointmentRepository) FindByIDForUpdate(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.Appointment, error) {
	var appointment entity.Appointment
	err := db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&appointment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &appointment, nil
}

func applyAppointmentFilter(query *gorm.DB, filter entity.AppointmentFilter) *gorm.DB {
	if filter.DoctorID != nil {
		query = query.Where("doctor_id = ?", *filter.DoctorID)
	}
	if filter.PatientID != nil {
		query = query.Where("patient_id = ?", *filter.PatientID)
	}
	if len(filter.Statuses) > 0 {
		query = query.Where("status IN ?", filter.Statuses)
	}
	if filter.DateFrom != "" {
		query = query.Where("appointment_date >= ?", filter.DateFrom)
	}
	if filter.DateTo != "" {
		query = query.Where("appointment_date <= ?", filter.DateTo)
	}
	return query
}

func (r *appointmentRepository) FindAll(ctx context.Context, db *gorm.DB, filter entity.AppointmentFilter, limit, offset int) ([]entity.Appointment, int64, error) {
	var appointments []entity.Appointment
	var total int64

	base := applyAppointmentFilter(db.WithContext(ctx).Model(&entity.Appointment{}), filter)
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := applyAppointmentFilter(db.WithContext(ctx), filter).
		Preload("Doctor.User").Preload("Patient.User").
		Order(appointmentOrder).
		Limit(limit).Offset(offset).
		Find(&appointments).Error
	if err != nil {
		return nil, 0, err
	}
	return appointments, total, nil
}

func (r *appointmentRepository) FindByPatientID(ctx context.Context, db *gorm.DB, patientID uuid.UUID) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	err := db.WithContext(ctx).
		Preload("Doctor.User").
		Where("patient_id = ?", patientID).
		Order(appointmentOrder).
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

func (r *appointmentRepository) FindByDoctorAndPatientForUpdate(ctx context.Context, db *gorm.DB, doctorID, patientID uuid.UUID) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	err := db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("doctor_id = ? AND patient_id = ?", doctorID, patientID).
		Order(appointmentOrder).
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

func (r *appointmentRepository) FindSnapshot(ctx context.Context, db *gorm.DB, filter entity.AppointmentFilter) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	err := applyAppointmentFilter(db.WithContext(ctx), filter).
		Order(appointmentOrder).
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

func (r *appointmentRepository) FindRecent(ctx context.Context, db *gorm.DB, limit int) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	err := db.WithContext(ctx).
		Preload("Doctor.User").Preload("Patient.User").
		Order("created_at DESC, id ASC").
		Limit(limit).
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

func (r *appointmentRepository) FindActiveFrom(ctx context.Context, db *gorm.DB, from time.Time, limit, offset int) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	err := db.WithContext(ctx).
		Where("status IN ? AND appointment_date >= ?", entity.ActiveAppointmentStatuses, from.Format(entity.DateLayout)).
		Order("id ASC").
		Limit(limit).Offset(offset).
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

func (r *appointmentRepository) ExistsActiveForSlot(ctx context.Context, db *gorm.DB, doctorID uuid.UUID, date time.Time, timeSlot string) (bool, error) {
	var count int64
	err := db.WithContext(ctx).Model(&entity.Appointment{}).
		Where("doctor_id = ? AND appointment_date = ? AND time_slot = ? AND status IN ?",
			doctorID, date.Format(entity.DateLayout), timeSlot, entity.ActiveAppointmentStatuses).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// UpdateStatus only changes the row while it still has status from, so a
// concurrent transition shows up as zero rows affected.
func (r *appointmentRepository) UpdateStatus(ctx context.Context, db *gorm.DB, id uuid.UUID, from, to entity.AppointmentStatus) (int64, error) {
	result := db.WithContext(ctx).Model(&entity.Appointment{}).
		Where("id = ? AND status = ?", id, from).
		Updates(map[string]interface{}{
			"status":     to,
			"updated_at": time.Now().UTC(),
		})
	return result.RowsAffected, result.Error
}

func (r *appointmentRepository) HasAppointmentWith(ctx context.Context, db *gorm.DB, doctorID, patientID uuid.UUID) (bool, error) {
	var count int64
	err := db.WithContext(ctx).Model(&entity.Appointment{}).
		Where("doctor_id = ? AND patient_id = ?", doctorID, patientID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *appointmentRepository) FindPatientIDsByDoctor(ctx context.Context, db *gorm.DB, doctorID uuid.UUID, limit, offset int) ([]uuid.UUID, int64, error) {
	var total int64
	err := db.WithContext(ctx).Model(&entity.Appointment{}).
		Where("doctor_id = ?", doctorID).
		Distinct("patient_id").
		Count(&total).Error
	if err != nil {
		return nil, 0, err
	}

	var ids []uuid.UUID
	err = db.WithContext(ctx).Model(&entity.Appointment{}).
		Where("doctor_id = ?", doctorID).
		Group("patient_id").
		Order("MIN(appointment_date) ASC, patient_id ASC").
		Limit(limit).Offset(offset).
		Pluck("patient_id", &ids).Error
	if err != nil {
		return nil, 0, err
	}
	return ids, total, nil
}
