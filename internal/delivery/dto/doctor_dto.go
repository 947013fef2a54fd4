package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Request DTOs

type CreateDoctorRequest struct {
	Email           string          `json:"email" validate:"required,email"`
	FullName        string          `json:"full_name" validate:"required,min=2"`
	LicenseNumber   string          `json:"license_number" validate:"required,max=50"`
	Specialization  string          `json:"specialization" validate:"required,max=100"`
	Biography       string          `json:"biography" validate:"omitempty"`
	ConsultationFee decimal.Decimal `json:"consultation_fee"`
}

type UpdateDoctorRequest struct {
	Email           *string          `json:"email" validate:"omitempty,email"`
	FullName        *string          `json:"full_name" validate:"omitempty,min=2"`
	LicenseNumber   *string          `json:"license_number" validate:"omitempty,max=50"`
	Specialization  *string          `json:"specialization" validate:"omitempty,max=100"`
	Biography       *string          `json:"biography" validate:"omitempty"`
	ConsultationFee *decimal.Decimal `json:"consultation_fee"`
}

// Response DTOs

type DoctorResponse struct {
	ID              uuid.UUID       `json:"id"`
	Email           string          `json:"email"`
	FullName        string          `json:"full_name"`
	LicenseNumber   string          `json:"license_number"`
	Specialization  string          `json:"specialization"`
	Biography       string          `json:"biography,omitempty"`
	ConsultationFee decimal.Decimal `json:"consultation_fee"`
	IsActive        bool            `json:"is_active"`
	CreatedAt       time.Time       `json:"created_at"`
}

type DoctorListResponse struct {
	Doctors    []DoctorResponse `json:"doctors"`
	Page       int              `json:"page"`
	Limit      int              `json:"limit"`
	Total      int64            `json:"total"`
	TotalPages int              `json:"total_pages"`
}
