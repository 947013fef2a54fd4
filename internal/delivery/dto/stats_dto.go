package dto

import (
	"time"

	"github.com/Asjad-cell/HealthLink/internal/domain/entity"
)

// StatsResponse is marked Stale when the live computation failed and the
// last successfully computed value was served instead.
type StatsResponse struct {
	entity.AppointmentStats
	Date        string    `json:"date"`
	Stale       bool      `json:"stale"`
	GeneratedAt time.Time `json:"generated_at"`
}

type AdminStatsResponse struct {
	entity.AppointmentStats
	RecentAppointments []AppointmentResponse `json:"recent_appointments"`
	Date               string                `json:"date"`
	Stale              bool                  `json:"stale"`
	GeneratedAt        time.Time             `json:"generated_at"`
}

type DoctorDashboardResponse struct {
	Stats             entity.AppointmentStats `json:"stats"`
	TodayAppointments []AppointmentResponse   `json:"today_appointments"`
	Appointments      []AppointmentResponse   `json:"appointments"`
	Date              string                  `json:"date"`
	Stale             bool                    `json:"stale"`
	GeneratedAt       time.Time               `json:"generated_at"`
}
