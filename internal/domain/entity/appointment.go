package entity

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// AppointmentStatus represents the lifecycle state of an appointment.
//
//	pending → confirmed → completed
//	pending | confirmed → cancelled
//
// completed and cancelled are terminal.
type AppointmentStatus string

const (
	AppointmentStatusPending   AppointmentStatus = "pending"
	AppointmentStatusConfirmed AppointmentStatus = "confirmed"
	AppointmentStatusCompleted AppointmentStatus = "completed"
	AppointmentStatusCancelled AppointmentStatus = "cancelled"
)

var appointmentTransitions = map[AppointmentStatus][]AppointmentStatus{
	AppointmentStatusPending:   {AppointmentStatusConfirmed, AppointmentStatusCancelled},
	AppointmentStatusConfirmed: {AppointmentStatusCompleted, AppointmentStatusCancelled},
	AppointmentStatusCompleted: {},
	AppointmentStatusCancelled: {},
}

// ActiveAppointmentStatuses are the statuses that occupy a slot.
var ActiveAppointmentStatuses = []AppointmentStatus{AppointmentStatusPending, AppointmentStatusConfirmed}

func (s AppointmentStatus) IsValid() bool {
	_, ok := appointmentTransitions[s]
	return ok
}

func (s AppointmentStatus) IsTerminal() bool {
	return s == AppointmentStatusCompleted || s == AppointmentStatusCancelled
}

// IsActive reports whether an appointment in this status holds its slot.
func (s AppointmentStatus) IsActive() bool {
	return s == AppointmentStatusPending || s == AppointmentStatusConfirmed
}

// IsReachable reports whether any status can move to s.
func (s AppointmentStatus) IsReachable() bool {
	for _, targets := range appointmentTransitions {
		for _, target := range targets {
			if target == s {
				return true
			}
		}
	}
	return false
}

func (s AppointmentStatus) CanTransitionTo(next AppointmentStatus) bool {
	for _, allowed := range appointmentTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// ParseAppointmentStatus validates a raw status string.
func ParseAppointmentStatus(s string) (AppointmentStatus, error) {
	status := AppointmentStatus(s)
	if !status.IsValid() {
		return "", NewValidationError("status", "unknown appointment status %q", s)
	}
	return status, nil
}

// Appointment is a booked occupation of one time slot on a calendar date.
type Appointment struct {
	ID              uuid.UUID         `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	DoctorID        uuid.UUID         `gorm:"type:uuid;not null;index" json:"doctor_id"`
	PatientID       uuid.UUID         `gorm:"type:uuid;not null;index" json:"patient_id"`
	AppointmentDate time.Time         `gorm:"type:date;not null;index" json:"appointment_date"`
	TimeSlot        string            `gorm:"type:varchar(5);not null" json:"time_slot"`
	Status          AppointmentStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	Reason          string            `gorm:"type:text" json:"reason,omitempty"`
	CreatedAt       time.Time         `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt       time.Time         `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Doctor  DoctorProfile  `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
	Patient PatientProfile `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
}

func (Appointment) TableName() string {
	return "appointments"
}

// DateKey returns the appointment's calendar date as YYYY-MM-DD. Dates are
// stored without a time zone, so the UTC rendering is the stored value.
func (a *Appointment) DateKey() string {
	return a.AppointmentDate.UTC().Format(DateLayout)
}

// SlotKey identifies the (doctor, date, time slot) the appointment occupies.
func (a *Appointment) SlotKey() string {
	return SlotKey(a.DoctorID, a.DateKey(), a.TimeSlot)
}

func SlotKey(doctorID uuid.UUID, dateKey, timeSlot string) string {
	return fmt.Sprintf("%s:%s:%s", doctorID, dateKey, timeSlot)
}

func (a *Appointment) IsActive() bool {
	return a.Status.IsActive()
}

// CanActorSetStatus reports whether a role may move an appointment to next.
// Doctors confirm, complete and cancel; patients may only cancel; admins
// never drive the lifecycle.
func CanActorSetStatus(roleID int, next AppointmentStatus) bool {
	switch roleID {
	case RoleIDDoctor:
		return next == AppointmentStatusConfirmed ||
			next == AppointmentStatusCompleted ||
			next == AppointmentStatusCancelled
	case RoleIDPatient:
		return next == AppointmentStatusCancelled
	}
	return false
}

// CheckTransition validates moving the appointment to next on behalf of
// actor. Checks run in a fixed order: unknown status, terminal state or a
// status nothing leads to, actor permission (role and ownership), then
// reachability from the current status.
func (a *Appointment) CheckTransition(next AppointmentStatus, actor Actor) error {
	if !next.IsValid() {
		return NewValidationError("status", "unknown appointment status %q", next)
	}
	if a.Status.IsTerminal() {
		return fmt.Errorf("%w: appointment is already %s", ErrInvalidTransition, a.Status)
	}
	if !next.IsReachable() {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, a.Status, next)
	}
	if !CanActorSetStatus(actor.RoleID, next) {
		return fmt.Errorf("%w: %s may not set status %s", ErrForbidden, RoleNameByID(actor.RoleID), next)
	}
	if actor.IsDoctor() && a.DoctorID != actor.ID {
		return fmt.Errorf("%w: appointment belongs to another doctor", ErrForbidden)
	}
	if actor.IsPatient() && a.PatientID != actor.ID {
		return fmt.Errorf("%w: appointment belongs to another patient", ErrForbidden)
	}
	if !a.Status.CanTransitionTo(next) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, a.Status, next)
	}
	return nil
}

// Transition applies a checked status change.
func (a *Appointment) Transition(next AppointmentStatus, actor Actor) error {
	if err := a.CheckTransition(next, actor); err != nil {
		return err
	}
	a.Status = next
	return nil
}

// VisibleTo reports whether actor may read the appointment.
func (a *Appointment) VisibleTo(actor Actor) bool {
	switch actor.RoleID {
	case RoleIDAdmin:
		return true
	case RoleIDDoctor:
		return a.DoctorID == actor.ID
	case RoleIDPatient:
		return a.PatientID == actor.ID
	}
	return false
}
