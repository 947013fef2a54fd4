package usecase

import (
	"context"
	"errors"
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

const holdCleanupTimeout = 5 * time.Second

type AppointmentUsecase interface {
	Book(ctx context.Context, actor entity.Actor, now time.Time, req *dto.BookAppointmentRequest) (*dto.AppointmentResponse, error)
	Get(ctx context.Context, actor entity.Actor, appointmentID uuid.UUID) (*dto.AppointmentResponse, error)
	ListByDoctor(ctx context.Context, actor entity.Actor, doctorID uuid.UUID, query *dto.AppointmentQuery) (*dto.AppointmentPageResponse, error)
	ListByPatient(ctx context.Context, actor entity.Actor, patientID uuid.UUID) (*dto.AppointmentListResponse, error)
	ListAll(ctx context.Context, query *dto.AppointmentQuery) (*dto.AppointmentPageResponse, error)
	Transition(ctx context.Context, actor entity.Actor, appointmentID uuid.UUID, req *dto.UpdateAppointmentStatusRequest) (*dto.AppointmentResponse, error)
	TransitionAllForPatient(ctx context.Context, actor entity.Actor, doctorID, patientID uuid.UUID, req *dto.UpdateAppointmentStatusRequest) (*dto.BulkTransitionResponse, error)
}

type appointmentUsecase struct {
	db                 *gorm.DB
	log                *logrus.Logger
	transactor         repository.Transactor
	appointmentRepo    repository.AppointmentRepository
	availabilityRepo   repository.AvailabilityRepository
	doctorProfileRepo  repository.DoctorProfileRepository
	patientProfileRepo repository.PatientProfileRepository
	medicalRecordRepo  repository.MedicalRecordRepository
	slotHoldService    *service.SlotHoldService
	auditService       service.AuditService
	maxPageLimit       int
}

func NewAppointmentUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	transactor repository.Transactor,
	appointmentRepo repository.AppointmentRepository,
	availabilityRepo repository.AvailabilityRepository,
	doctorProfileRepo repository.DoctorProfileRepository,
	patientProfileRepo repository.PatientProfileRepository,
	medicalRecordRepo repository.MedicalRecordRepository,
	slotHoldService *service.SlotHoldService,
	auditService service.AuditService,
	maxPageLimit int,
) AppointmentUsecase {
	return &appointmentUsecase{
		db:                 db,
		log:                log,
		transactor:         transactor,
		appointmentRepo:    appointmentRepo,
		availabilityRepo:   availabilityRepo,
		doctorProfileRepo:  doctorProfileRepo,
		patientProfileRepo: patientProfileRepo,
		medicalRecordRepo:  medicalRecordRepo,
		slotHoldService:    slotHoldService,
		auditService:       auditService,
		maxPageLimit:       maxPageLimit,
	}
}

// Book creates a pending appointment. now is the caller's current time in
// the caller's time zone; dates before its calendar day are rejected.
//
// Flow:
// 1. Resolve the patient from the actor and validate date and slot
// 2. Check doctor, patient and the doctor's weekly availability
// 3. Place a Redis hold on the slot (fast rejection of concurrent bookers)
// 4. Insert inside a transaction; the partial unique index is the authority
// 5. If the insert fails -> release the hold
func (u *appointmentUsecase) Book(ctx context.Context, actor entity.Actor, now time.Time, req *dto.BookAppointmentRequest) (*dto.AppointmentResponse, error) {
	var patientID uuid.UUID
	switch {
	case actor.IsPatient():
		if req.PatientID != nil && *req.PatientID != actor.ID {
			return nil, ErrBookForOthers
		}
		patientID = actor.ID
	case actor.IsAdmin():
		if req.PatientID == nil || *req.PatientID == uuid.Nil {
			return nil, entity.NewValidationError("patient_id", "is required")
		}
		patientID = *req.PatientID
	default:
		return nil, ErrBookingNotAllowed
	}

	date, timeSlot, err := parseSlot(req.Date, req.TimeSlot)
	if err != nil {
		return nil, err
	}
	if today := entity.DateKey(now); req.Date < today {
		return nil, entity.NewValidationError("date", "cannot book %s, today is %s", req.Date, today)
	}

	doctor, err := u.doctorProfileRepo.FindByUserID(ctx, u.db, req.DoctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor %s: %+v", req.DoctorID, err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}
	if !doctor.User.Active() {
		return nil, ErrDoctorInactive
	}

	patient, err := u.patientProfileRepo.FindByUserID(ctx, u.db, patientID)
	if err != nil {
		u.log.Warnf("Failed to find patient %s: %+v", patientID, err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	slots, err := u.availabilityRepo.FindByDoctorID(ctx, u.db, req.DoctorID)
	if err != nil {
		u.log.Warnf("Failed to load availability for doctor %s: %+v", req.DoctorID, err)
		return nil, err
	}
	if !entity.CoversTimeSlot(slots, date, timeSlot) {
		return nil, ErrOutsideAvailability
	}

	appointment := &entity.Appointment{
		ID:              uuid.New(),
		DoctorID:        req.DoctorID,
		PatientID:       patientID,
		AppointmentDate: date,
		TimeSlot:        timeSlot,
		Status:          entity.AppointmentStatusPending,
		Reason:          req.Reason,
	}

	held, err := u.slotHoldService.Reserve(ctx, appointment.DoctorID, date, timeSlot, appointment.ID)
	if err != nil {
		// Redis is an accelerator only; the database still guards the slot.
		u.log.Warnf("Slot hold unavailable, falling back to database check: %+v", err)
	} else if !held {
		return nil, ErrSlotTaken
	}

	err = u.transactor.WithinTransaction(ctx, func(tx *gorm.DB) error {
		taken, err := u.appointmentRepo.ExistsActiveForSlot(ctx, tx, appointment.DoctorID, date, timeSlot)
		if err != nil {
			u.log.Warnf("Failed to check slot %s: %+v", appointment.SlotKey(), err)
			return err
		}
		if taken {
			return ErrSlotTaken
		}

		if err := u.appointmentRepo.Create(ctx, tx, appointment); err != nil {
			if errors.Is(err, repository.ErrDuplicate) {
				return ErrSlotTaken
			}
			u.log.Warnf("Failed to create appointment: %+v", err)
			return err
		}

		return u.auditService.LogCreate(ctx, tx, actor, entity.AuditActionAppointmentBook, "appointment", appointment.ID.String(),
			converter.AppointmentToResponse(appointment, false))
	})
	if err != nil {
		if held {
			u.releaseHold(appointment)
		}
		return nil, err
	}

	appointment.Doctor = *doctor
	appointment.Patient = *patient

	u.log.WithFields(logrus.Fields{
		"appointment_id": appointment.ID,
		"slot":           appointment.SlotKey(),
	}).Info("Appointment booked")

	history := u.medicalHistory(ctx, []entity.Appointment{*appointment})
	return converter.AppointmentToResponse(appointment, history[patientID]), nil
}

func (u *appointmentUsecase) Get(ctx context.Context, actor entity.Actor, appointmentID uuid.UUID) (*dto.AppointmentResponse, error) {
	appointment, err := u.appointmentRepo.FindByID(ctx, u.db, appointmentID)
	if err != nil {
		u.log.Warnf("Failed to find appointment %s: %+v", appointmentID, err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}
	if !appointment.VisibleTo(actor) {
		return nil, ErrAppointmentNotOwned
	}

	history := u.medicalHistory(ctx, []entity.Appointment{*appointment})
	return converter.AppointmentToResponse(appointment, history[appointment.PatientID]), nil
}

// ListByDoctor pages through a doctor's appointments ordered by date and
// time slot. A page past the end yields an empty list.
func (u *appointmentUsecase) ListByDoctor(ctx context.Context, actor entity.Actor, doctorID uuid.UUID, query *dto.AppointmentQuery) (*dto.AppointmentPageResponse, error) {
	if !actor.IsAdmin() && !(actor.IsDoctor() && actor.ID == doctorID) {
		return nil, ErrAppointmentNotOwned
	}

	filtered := *query
	filtered.DoctorID = &doctorID
	return u.list(ctx, &filtered)
}

func (u *appointmentUsecase) ListAll(ctx context.Context, query *dto.AppointmentQuery) (*dto.AppointmentPageResponse, error) {
	return u.list(ctx, query)
}

func (u *appointmentUsecase) list(ctx context.Context, query *dto.AppointmentQuery) (*dto.AppointmentPageResponse, error) {
	page, err := entity.NewPage(query.Page, query.Limit, u.maxPageLimit)
	if err != nil {
		return nil, err
	}

	filter := entity.AppointmentFilter{DoctorID: query.DoctorID}
	if query.Status != "" {
		status, err := entity.ParseAppointmentStatus(query.Status)
		if err != nil {
			return nil, err
		}
		filter.Statuses = []entity.AppointmentStatus{status}
	}

	appointments, total, err := u.appointmentRepo.FindAll(ctx, u.db, filter, page.Limit, page.Offset())
	if err != nil {
		u.log.Warnf("Failed to list appointments: %+v", err)
		return nil, err
	}

	return &dto.AppointmentPageResponse{
		Appointments: converter.AppointmentsToResponses(appointments, u.medicalHistory(ctx, appointments)),
		Page:         page.Page,
		Limit:        page.Limit,
		Total:        total,
		TotalPages:   page.TotalPages(total),
	}, nil
}

func (u *appointmentUsecase) ListByPatient(ctx context.Context, actor entity.Actor, patientID uuid.UUID) (*dto.AppointmentListResponse, error) {
	if !actor.IsAdmin() && !(actor.IsPatient() && actor.ID == patientID) {
		return nil, ErrAppointmentNotOwned
	}

	appointments, err := u.appointmentRepo.FindByPatientID(ctx, u.db, patientID)
	if err != nil {
		u.log.Warnf("Failed to find appointments for patient %s: %+v", patientID, err)
		return nil, err
	}

	return &dto.AppointmentListResponse{
		Appointments: converter.AppointmentsToResponses(appointments, u.medicalHistory(ctx, appointments)),
		Total:        len(appointments),
	}, nil
}

// Transition moves one appointment to a new status. The row is locked for
// the read-modify-write and the update only applies if the status is still
// the one that was checked.
func (u *appointmentUsecase) Transition(ctx context.Context, actor entity.Actor, appointmentID uuid.UUID, req *dto.UpdateAppointmentStatusRequest) (*dto.AppointmentResponse, error) {
	next, err := entity.ParseAppointmentStatus(req.Status)
	if err != nil {
		return nil, err
	}

	var appointment *entity.Appointment
	err = u.transactor.WithinTransaction(ctx, func(tx *gorm.DB) error {
		locked, err := u.appointmentRepo.FindByIDForUpdate(ctx, tx, appointmentID)
		if err != nil {
			u.log.Warnf("Failed to lock appointment %s: %+v", appointmentID, err)
			return err
		}
		if locked == nil {
			return ErrAppointmentNotFound
		}

		if err := u.applyTransition(ctx, tx, actor, locked, next); err != nil {
			return err
		}
		appointment = locked
		return nil
	})
	if err != nil {
		return nil, err
	}

	if next == entity.AppointmentStatusCancelled {
		u.releaseHold(appointment)
	}

	u.log.WithFields(logrus.Fields{
		"appointment_id": appointment.ID,
		"status":         next,
		"actor":          actor.ID,
	}).Info("Appointment status updated")

	// Reload for the doctor and patient names; the locked row is returned as is on failure.
	if reloaded, err := u.appointmentRepo.FindByID(ctx, u.db, appointmentID); err == nil && reloaded != nil {
		appointment = reloaded
	}

	history := u.medicalHistory(ctx, []entity.Appointment{*appointment})
	return converter.AppointmentToResponse(appointment, history[appointment.PatientID]), nil
}

// TransitionAllForPatient applies the same transition to every appointment
// between a doctor and a patient. Appointments that cannot move are skipped
// and reported with the reason.
func (u *appointmentUsecase) TransitionAllForPatient(ctx context.Context, actor entity.Actor, doctorID, patientID uuid.UUID, req *dto.UpdateAppointmentStatusRequest) (*dto.BulkTransitionResponse, error) {
	next, err := entity.ParseAppointmentStatus(req.Status)
	if err != nil {
		return nil, err
	}

	var updated []entity.Appointment
	skipped := []dto.SkippedTransition{}

	err = u.transactor.WithinTransaction(ctx, func(tx *gorm.DB) error {
		appointments, err := u.appointmentRepo.FindByDoctorAndPatientForUpdate(ctx, tx, doctorID, patientID)
		if err != nil {
			u.log.Warnf("Failed to lock appointments for doctor %s and patient %s: %+v", doctorID, patientID, err)
			return err
		}
		if len(appointments) == 0 {
			return ErrNoMatchingAppointment
		}

		for i := range appointments {
			appointment := appointments[i]
			previous := appointment.Status

			err := u.applyTransition(ctx, tx, actor, &appointment, next)
			switch {
			case err == nil:
				updated = append(updated, appointment)
			case isRuleViolation(err):
				skipped = append(skipped, dto.SkippedTransition{
					AppointmentID: appointment.ID,
					Status:        string(previous),
					Reason:        err.Error(),
				})
			default:
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if next == entity.AppointmentStatusCancelled {
		for i := range updated {
			u.releaseHold(&updated[i])
		}
	}

	u.log.WithFields(logrus.Fields{
		"doctor_id":  doctorID,
		"patient_id": patientID,
		"status":     next,
		"updated":    len(updated),
		"skipped":    len(skipped),
	}).Info("Bulk appointment status update")

	return &dto.BulkTransitionResponse{
		Updated: converter.AppointmentsToResponses(updated, u.medicalHistory(ctx, updated)),
		Skipped: skipped,
	}, nil
}

// applyTransition checks and writes one status change inside tx.
func (u *appointmentUsecase) applyTransition(ctx context.Context, tx *gorm.DB, actor entity.Actor, appointment *entity.Appointment, next entity.AppointmentStatus) error {
	previous := appointment.Status
	if err := appointment.Transition(next, actor); err != nil {
		return err
	}

	rows, err := u.appointmentRepo.UpdateStatus(ctx, tx, appointment.ID, previous, next)
	if err != nil {
		u.log.Warnf("Failed to update appointment %s: %+v", appointment.ID, err)
		return err
	}
	if rows == 0 {
		appointment.Status = previous
		return ErrStatusChanged
	}

	return u.auditService.LogUpdate(ctx, tx, actor, entity.AuditActionAppointmentTransition, "appointment", appointment.ID.String(),
		map[string]any{"status": previous}, map[string]any{"status": next})
}

func isRuleViolation(err error) bool {
	return errors.Is(err, entity.ErrInvalidTransition) ||
		errors.Is(err, entity.ErrForbidden) ||
		errors.Is(err, entity.ErrConflict)
}

// releaseHold frees the Redis hold of a cancelled or failed appointment. It
// outlives the request context so a client disconnect does not leak the hold.
func (u *appointmentUsecase) releaseHold(appointment *entity.Appointment) {
	ctx, cancel := context.WithTimeout(context.Background(), holdCleanupTimeout)
	defer cancel()

	if err := u.slotHoldService.Release(ctx, appointment.DoctorID, appointment.AppointmentDate, appointment.TimeSlot, appointment.ID); err != nil {
		u.log.Errorf("Failed to release slot hold for appointment %s: %+v", appointment.ID, err)
	}
}

// medicalHistory reports which patients of appointments have any medical
// record. The flag only feeds the display label, so a lookup failure is
// logged and every patient reads as having no history.
func (u *appointmentUsecase) medicalHistory(ctx context.Context, appointments []entity.Appointment) map[uuid.UUID]bool {
	return lookupMedicalHistory(ctx, u.db, u.log, u.medicalRecordRepo, appointments)
}

func lookupMedicalHistory(ctx context.Context, db *gorm.DB, log *logrus.Logger, repo repository.MedicalRecordRepository, appointments []entity.Appointment) map[uuid.UUID]bool {
	if len(appointments) == 0 {
		return map[uuid.UUID]bool{}
	}

	seen := make(map[uuid.UUID]struct{}, len(appointments))
	ids := make([]uuid.UUID, 0, len(appointments))
	for i := range appointments {
		id := appointments[i].PatientID
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}

	history, err := repo.PatientsWithHistory(ctx, db, ids)
	if err != nil {
		log.Warnf("Failed to load medical history flags: %+v", err)
		return map[uuid.UUID]bool{}
	}
	return history
}
