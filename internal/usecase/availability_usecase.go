package usecase

import (
	"context"
	"time"

	"github.com/Asjad-cell/HealthLink/internal/converter"
	"github.com/Asjad-cell/HealthLink/internal/delivery/dto"
	"github.com/Asjad-cell/HealthLink/internal/domain/entity"
	"github.com/Asjad-cell/HealthLink/internal/domain/repository"
	"github.com/Asjad-cell/HealthLink/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Reasons reported by IsSlotAvailable when a slot cannot be booked.
const (
	SlotReasonOutsideAvailability = "outside the doctor's availability"
	SlotReasonTaken               = "already booked"
	SlotReasonDoctorInactive      = "doctor is not accepting appointments"
)

type AvailabilityUsecase interface {
	SetAvailability(ctx context.Context, actor entity.Actor, doctorID uuid.UUID, req *dto.SetAvailabilityRequest) (*dto.AvailabilityResponse, error)
	GetAvailability(ctx context.Context, doctorID uuid.UUID) (*dto.AvailabilityResponse, error)
	IsSlotAvailable(ctx context.Context, doctorID uuid.UUID, query *dto.SlotCheckQuery) (*dto.SlotCheckResponse, error)
}

type availabilityUsecase struct {
	db                *gorm.DB
	log               *logrus.Logger
	transactor        repository.Transactor
	availabilityRepo  repository.AvailabilityRepository
	appointmentRepo   repository.AppointmentRepository
	doctorProfileRepo repository.DoctorProfileRepository
	auditService      service.AuditService
}

func NewAvailabilityUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	transactor repository.Transactor,
	availabilityRepo repository.AvailabilityRepository,
	appointmentRepo repository.AppointmentRepository,
	doctorProfileRepo repository.DoctorProfileRepository,
	auditService service.AuditService,
) AvailabilityUsecase {
	return &availabilityUsecase{
		db:                db,
		log:               log,
		transactor:        transactor,
		availabilityRepo:  availabilityRepo,
		appointmentRepo:   appointmentRepo,
		doctorProfileRepo: doctorProfileRepo,
		auditService:      auditService,
	}
}

// SetAvailability replaces the doctor's whole week. Doctors may only manage
// their own availability, admins may manage anyone's.
func (u *availabilityUsecase) SetAvailability(ctx context.Context, actor entity.Actor, doctorID uuid.UUID, req *dto.SetAvailabilityRequest) (*dto.AvailabilityResponse, error) {
	switch {
	case actor.IsAdmin():
	case actor.IsDoctor():
		if actor.ID != doctorID {
			return nil, ErrNotYourAvailability
		}
	default:
		return nil, ErrNotYourAvailability
	}

	slots := make([]entity.AvailabilitySlot, len(req.Slots))
	for i, s := range req.Slots {
		day, err := entity.ParseDayOfWeek(s.DayOfWeek)
		if err != nil {
			return nil, entity.NewValidationError("day_of_week", "slot %d: %v", i, err)
		}
		slots[i] = entity.AvailabilitySlot{
			DoctorID:  doctorID,
			DayOfWeek: day,
			StartTime: s.StartTime,
			EndTime:   s.EndTime,
		}
	}

	normalized, err := entity.NormalizeAvailability(slots)
	if err != nil {
		return nil, err
	}

	err = u.transactor.WithinTransaction(ctx, func(tx *gorm.DB) error {
		doctor, err := u.doctorProfileRepo.FindByUserID(ctx, tx, doctorID)
		if err != nil {
			u.log.Warnf("Failed to find doctor %s: %+v", doctorID, err)
			return err
		}
		if doctor == nil {
			return ErrDoctorNotFound
		}

		previous, err := u.availabilityRepo.FindByDoctorID(ctx, tx, doctorID)
		if err != nil {
			u.log.Warnf("Failed to load availability for doctor %s: %+v", doctorID, err)
			return err
		}

		if err := u.availabilityRepo.ReplaceForDoctor(ctx, tx, doctorID, normalized); err != nil {
			u.log.Warnf("Failed to replace availability for doctor %s: %+v", doctorID, err)
			return err
		}

		return u.auditService.LogUpdate(ctx, tx, actor, entity.AuditActionAvailabilitySet, "availability", doctorID.String(),
			converter.AvailabilityToResponse(doctorID, previous), converter.AvailabilityToResponse(doctorID, normalized))
	})
	if err != nil {
		return nil, err
	}

	return converter.AvailabilityToResponse(doctorID, normalized), nil
}

func (u *availabilityUsecase) GetAvailability(ctx context.Context, doctorID uuid.UUID) (*dto.AvailabilityResponse, error) {
	doctor, err := u.doctorProfileRepo.FindByUserID(ctx, u.db, doctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor %s: %+v", doctorID, err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	slots, err := u.availabilityRepo.FindByDoctorID(ctx, u.db, doctorID)
	if err != nil {
		u.log.Warnf("Failed to load availability for doctor %s: %+v", doctorID, err)
		return nil, err
	}
	entity.SortAvailability(slots)

	return converter.AvailabilityToResponse(doctorID, slots), nil
}

// IsSlotAvailable reports whether the time slot falls inside the doctor's
// weekly availability for the date's weekday and no pending or confirmed
// appointment occupies it.
func (u *availabilityUsecase) IsSlotAvailable(ctx context.Context, doctorID uuid.UUID, query *dto.SlotCheckQuery) (*dto.SlotCheckResponse, error) {
	date, timeSlot, err := parseSlot(query.Date, query.TimeSlot)
	if err != nil {
		return nil, err
	}

	doctor, err := u.doctorProfileRepo.FindByUserID(ctx, u.db, doctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor %s: %+v", doctorID, err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	response := &dto.SlotCheckResponse{
		DoctorID: doctorID,
		Date:     query.Date,
		TimeSlot: timeSlot,
	}

	if !doctor.User.Active() {
		response.Reason = SlotReasonDoctorInactive
		return response, nil
	}

	slots, err := u.availabilityRepo.FindByDoctorID(ctx, u.db, doctorID)
	if err != nil {
		u.log.Warnf("Failed to load availability for doctor %s: %+v", doctorID, err)
		return nil, err
	}
	if !entity.CoversTimeSlot(slots, date, timeSlot) {
		response.Reason = SlotReasonOutsideAvailability
		return response, nil
	}

	taken, err := u.appointmentRepo.ExistsActiveForSlot(ctx, u.db, doctorID, date, timeSlot)
	if err != nil {
		u.log.Warnf("Failed to check slot %s: %+v", entity.SlotKey(doctorID, query.Date, timeSlot), err)
		return nil, err
	}
	if taken {
		response.Reason = SlotReasonTaken
		return response, nil
	}

	response.Available = true
	return response, nil
}

// parseSlot validates a calendar date and an "HH:MM" slot, returning the
// date at midnight UTC and the zero-padded slot.
func parseSlot(rawDate, rawSlot string) (time.Time, string, error) {
	date, err := entity.ParseDate(rawDate)
	if err != nil {
		return time.Time{}, "", entity.NewValidationError("date", "%v", err)
	}
	timeSlot, err := entity.NormalizeClock(rawSlot)
	if err != nil {
		return time.Time{}, "", entity.NewValidationError("time_slot", "%v", err)
	}
	return date, timeSlot, nil
}
