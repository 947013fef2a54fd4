package entity

import "github.com/google/uuid"

// AppointmentStats summarises an appointment snapshot for a dashboard.
// TotalDoctors and ActiveDoctors are only set for the admin scope.
type AppointmentStats struct {
	TotalAppointments int  `json:"total_appointments"`
	PendingCount      int  `json:"pending_count"`
	ConfirmedCount    int  `json:"confirmed_count"`
	CompletedCount    int  `json:"completed_count"`
	CancelledCount    int  `json:"cancelled_count"`
	TodayCount        int  `json:"today_count"`
	TotalPatients     int  `json:"total_patients"`
	TotalDoctors      *int `json:"total_doctors,omitempty"`
	ActiveDoctors     *int `json:"active_doctors,omitempty"`
}

// ComputeAppointmentStats counts appointments by status and by day. todayKey
// is the caller's current date as YYYY-MM-DD; an appointment counts for today
// when its stored date key is equal and it is not cancelled. TotalPatients is
// the number of distinct patients in the snapshot.
func ComputeAppointmentStats(appointments []Appointment, todayKey string) AppointmentStats {
	var stats AppointmentStats
	patients := make(map[uuid.UUID]struct{})

	for i := range appointments {
		a := &appointments[i]
		stats.TotalAppointments++
		patients[a.PatientID] = struct{}{}

		switch a.Status {
		case AppointmentStatusPending:
			stats.PendingCount++
		case AppointmentStatusConfirmed:
			stats.ConfirmedCount++
		case AppointmentStatusCompleted:
			stats.CompletedCount++
		case AppointmentStatusCancelled:
			stats.CancelledCount++
		}

		if a.Status != AppointmentStatusCancelled && a.DateKey() == todayKey {
			stats.TodayCount++
		}
	}

	stats.TotalPatients = len(patients)
	return stats
}

// TodayAppointments returns the non-cancelled appointments dated todayKey,
// preserving input order.
func TodayAppointments(appointments []Appointment, todayKey string) []Appointment {
	out := make([]Appointment, 0)
	for _, a := range appointments {
		if a.Status != AppointmentStatusCancelled && a.DateKey() == todayKey {
			out = append(out, a)
		}
	}
	return out
}
