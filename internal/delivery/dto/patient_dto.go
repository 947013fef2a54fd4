package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Request DTOs

type CreatePatientRequest struct {
	Email       string `json:"email" validate:"required,email"`
	FullName    string `json:"full_name" validate:"required,min=2"`
	PhoneNumber string `json:"phone_number" validate:"omitempty,max=20"`
	DateOfBirth string `json:"date_of_birth" validate:"required,isodate"`
	Gender      string `json:"gender" validate:"required,oneof=M F"`
	Address     string `json:"address" validate:"omitempty"`
}

type UpdatePatientRequest struct {
	Email       *string `json:"email" validate:"omitempty,email"`
	FullName    *string `json:"full_name" validate:"omitempty,min=2"`
	PhoneNumber *string `json:"phone_number" validate:"omitempty,max=20"`
	DateOfBirth *string `json:"date_of_birth" validate:"omitempty,isodate"`
	Gender      *string `json:"gender" validate:"omitempty,oneof=M F"`
	Address     *string `json:"address" validate:"omitempty"`
}

// MedicalRecordRequest adds or replaces a history entry. RecordedAt defaults
// to the current time when empty.
type MedicalRecordRequest struct {
	Diagnosis  string `json:"diagnosis" validate:"required"`
	Treatment  string `json:"treatment" validate:"omitempty"`
	Notes      string `json:"notes" validate:"omitempty"`
	RecordedAt string `json:"recorded_at" validate:"omitempty,isodate"`
}

type UpdateBillingRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

// Response DTOs

type MedicalRecordResponse struct {
	ID         uuid.UUID `json:"id"`
	PatientID  uuid.UUID `json:"patient_id"`
	DoctorID   uuid.UUID `json:"doctor_id"`
	Diagnosis  string    `json:"diagnosis"`
	Treatment  string    `json:"treatment,omitempty"`
	Notes      string    `json:"notes,omitempty"`
	RecordedAt time.Time `json:"recorded_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type PatientResponse struct {
	ID             uuid.UUID               `json:"id"`
	Email          string                  `json:"email"`
	FullName       string                  `json:"full_name"`
	PhoneNumber    string                  `json:"phone_number,omitempty"`
	DateOfBirth    string                  `json:"date_of_birth"`
	Gender         string                  `json:"gender"`
	Address        string                  `json:"address,omitempty"`
	BillingAmount  decimal.Decimal         `json:"billing_amount"`
	IsActive       bool                    `json:"is_active"`
	MedicalHistory []MedicalRecordResponse `json:"medical_history,omitempty"`
	CreatedAt      time.Time               `json:"created_at"`
}

type PatientListResponse struct {
	Patients   []PatientResponse `json:"patients"`
	Page       int               `json:"page"`
	Limit      int               `json:"limit"`
	Total      int64             `json:"total"`
	TotalPages int               `json:"total_pages"`
}
