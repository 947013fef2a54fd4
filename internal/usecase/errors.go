package usecase

import (
	"fmt"

	"github.com/Asjad-cell/HealthLink/internal/domain/entity"
)

// Usecase errors wrap one of the entity root kinds so handlers can map them
// with errors.Is.
var (
	ErrDoctorNotFound        = fmt.Errorf("doctor %w", entity.ErrNotFound)
	ErrPatientNotFound       = fmt.Errorf("patient %w", entity.ErrNotFound)
	ErrAppointmentNotFound   = fmt.Errorf("appointment %w", entity.ErrNotFound)
	ErrMedicalRecordNotFound = fmt.Errorf("medical record %w", entity.ErrNotFound)
	ErrAuditLogNotFound      = fmt.Errorf("audit log %w", entity.ErrNotFound)
	ErrRoleNotFound          = fmt.Errorf("role %w", entity.ErrNotFound)
	ErrNoMatchingAppointment = fmt.Errorf("no matching appointments: %w", entity.ErrNotFound)

	ErrSlotTaken           = fmt.Errorf("%w: the time slot is already booked", entity.ErrSlotUnavailable)
	ErrOutsideAvailability = fmt.Errorf("%w: the doctor is not available at this time", entity.ErrSlotUnavailable)
	ErrDoctorInactive      = fmt.Errorf("%w: the doctor is not accepting appointments", entity.ErrSlotUnavailable)

	ErrNotYourAvailability = fmt.Errorf("%w: doctors may only manage their own availability", entity.ErrForbidden)
	ErrBookingNotAllowed   = fmt.Errorf("%w: doctors cannot book appointments", entity.ErrForbidden)
	ErrBookForOthers       = fmt.Errorf("%w: patients may only book for themselves", entity.ErrForbidden)
	ErrAppointmentNotOwned = fmt.Errorf("%w: appointment belongs to someone else", entity.ErrForbidden)
	ErrNotYourPatient      = fmt.Errorf("%w: patient has no appointments with this doctor", entity.ErrForbidden)
	ErrRecordNotOwned      = fmt.Errorf("%w: medical record belongs to another patient", entity.ErrForbidden)

	ErrEmailExists   = fmt.Errorf("%w: email already exists", entity.ErrConflict)
	ErrLicenseExists = fmt.Errorf("%w: license number already exists", entity.ErrConflict)
	ErrStatusChanged = fmt.Errorf("%w: appointment status changed concurrently, retry", entity.ErrConflict)
)
