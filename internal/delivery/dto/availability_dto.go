package dto

import (
	"github.com/Asjad-cell/HealthLink/internal/domain/entity"

	"github.com/google/uuid"
)

// Request DTOs

// AvailabilitySlotRequest accepts the weekday as a name ("monday", "Mon")
// or its ISO number as a string ("1").
type AvailabilitySlotRequest struct {
	DayOfWeek string `json:"day_of_week" validate:"required"`
	StartTime string `json:"start_time" validate:"required,hhmm"`
	EndTime   string `json:"end_time" validate:"required,hhmm"`
}

// SetAvailabilityRequest replaces the whole week. An empty list clears it.
type SetAvailabilityRequest struct {
	Slots []AvailabilitySlotRequest `json:"slots" validate:"dive"`
}

type SlotCheckQuery struct {
	Date     string `json:"date" validate:"required,isodate"`
	TimeSlot string `json:"time_slot" validate:"required,hhmm"`
}

// Response DTOs

type AvailabilitySlotResponse struct {
	ID        uuid.UUID        `json:"id"`
	DayOfWeek entity.DayOfWeek `json:"day_of_week"`
	StartTime string           `json:"start_time"`
	EndTime   string           `json:"end_time"`
}

type AvailabilityResponse struct {
	DoctorID uuid.UUID                  `json:"doctor_id"`
	Slots    []AvailabilitySlotResponse `json:"slots"`
	Total    int                        `json:"total"`
}

type SlotCheckResponse struct {
	DoctorID  uuid.UUID `json:"doctor_id"`
	Date      string    `json:"date"`
	TimeSlot  string    `json:"time_slot"`
	Available bool      `json:"available"`
	Reason    string    `json:"reason,omitempty"`
}
