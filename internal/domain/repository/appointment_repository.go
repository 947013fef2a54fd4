package repository

import (
	"context"
	"time"

	"github.com/Asjad-cell/HealthLink/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Finders return (nil, nil) when no row matches. Lists are ordered by
// appointment date, time slot, then id unless stated otherwise.
type AppointmentRepository interface {
	// Create returns ErrDuplicate when an active appointment already holds the slot.
	Create(ctx context.Context, db *gorm.DB, appointment *entity.Appointment) error
	FindByID(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.Appointment, error)
	// FindByIDForUpdate locks the row until the surrounding transaction ends.
	FindByIDForUpdate(ctx context.Context, db *gorm.DB, id uuid.UUID) (*entity.Appointment, error)
	FindAll(ctx context.Context, db *gorm.DB, filter entity.AppointmentFilter, limit, offset int) ([]entity.Appointment, int64, error)
	FindByPatientID(ctx context.Context, db *gorm.DB, patientID uuid.UUID) ([]entity.Appointment, error)
	// FindByDoctorAndPatientForUpdate locks the matching rows.
	FindByDoctorAndPatientForUpdate(ctx context.Context, db *gorm.DB, doctorID, patientID uuid.UUID) ([]entity.Appointment, error)
	// FindSnapshot returns every appointment matching filter, unpaginated.
	FindSnapshot(ctx context.Context, db *gorm.DB, filter entity.AppointmentFilter) ([]entity.Appointment, error)
	// FindRecent returns the latest appointments by creation time.
	FindRecent(ctx context.Context, db *gorm.DB, limit int) ([]entity.Appointment, error)
	// FindActiveFrom pages through pending and confirmed appointments dated on or after from.
	FindActiveFrom(ctx context.Context, db *gorm.DB, from time.Time, limit, offset int) ([]entity.Appointment, error)
	ExistsActiveForSlot(ctx context.Context, db *gorm.DB, doctorID uuid.UUID, date time.Time, timeSlot string) (bool, error)
	// UpdateStatus moves the appointment from one status to another and
	// returns the number of rows changed; zero means the status moved underneath.
	UpdateStatus(ctx context.Context, db *gorm.DB, id uuid.UUID, from, to entity.AppointmentStatus) (int64, error)
	HasAppointmentWith(ctx context.Context, db *gorm.DB, doctorID, patientID uuid.UUID) (bool, error)
	// FindPatientIDsByDoctor pages through the distinct patients of a doctor.
	FindPatientIDsByDoctor(ctx context.Context, db *gorm.DB, doctorID uuid.UUID, limit, offset int) ([]uuid.UUID, int64, error)
}
