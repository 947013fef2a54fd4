package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

// BookAppointmentRequest books a slot. PatientID is only honoured for admins;
// patients always book for themselves.
type BookAppointmentRequest struct {
	DoctorID  uuid.UUID  `json:"doctor_id" validate:"required"`
	PatientID *uuid.UUID `json:"patient_id" validate:"omitempty"`
	Date      string     `json:"date" validate:"required,isodate"`
	TimeSlot  string     `json:"time_slot" validate:"required,hhmm"`
	Reason    string     `json:"reason" validate:"omitempty,max=1000"`
}

type UpdateAppointmentStatusRequest struct {
	Status string `json:"status" validate:"required,appointment_status"`
}

// AppointmentQuery is the paginated listing filter. Status and DoctorID are optional.
type AppointmentQuery struct {
	Status   string     `json:"status" validate:"omitempty,appointment_status"`
	DoctorID *uuid.UUID `json:"doctor_id"`
	Page     int        `json:"page"`
	Limit    int        `json:"limit"`
}

// Response DTOs

// AppointmentResponse carries the lifecycle Status plus DisplayStatus, a
// dashboard label derived from whether the patient has any medical records.
// DisplayStatus is informational only and never drives transitions.
type AppointmentResponse struct {
	ID                uuid.UUID `json:"id"`
	DoctorID          uuid.UUID `json:"doctor_id"`
	DoctorName        string    `json:"doctor_name,omitempty"`
	Specialization    string    `json:"specialization,omitempty"`
	PatientID         uuid.UUID `json:"patient_id"`
	PatientName       string    `json:"patient_name,omitempty"`
	Date              string    `json:"date"`
	TimeSlot          string    `json:"time_slot"`
	Status            string    `json:"status"`
	Reason            string    `json:"reason,omitempty"`
	HasMedicalHistory bool      `json:"has_medical_history"`
	DisplayStatus     string    `json:"display_status"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
	Total        int                   `json:"total"`
}

type AppointmentPageResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
	Page         int                   `json:"page"`
	Limit        int                   `json:"limit"`
	Total        int64                 `json:"total"`
	TotalPages   int                   `json:"total_pages"`
}

type SkippedTransition struct {
	AppointmentID uuid.UUID `json:"appointment_id"`
	Status        string    `json:"status"`
	Reason        string    `json:"reason"`
}

type BulkTransitionResponse struct {
	Updated []AppointmentResponse `json:"updated"`
	Skipped []SkippedTransition   `json:"skipped"`
}
