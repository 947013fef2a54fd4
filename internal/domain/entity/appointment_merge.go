package entity

import (
	"sort"

	"github.com/google/uuid"
)

// MergeAppointments concatenates lists gathered from overlapping queries and
// drops repeated IDs. The first occurrence of an ID wins and input order is
// otherwise preserved.
func MergeAppointments(lists ...[]Appointment) []Appointment {
	size := 0
	for _, l := range lists {
		size += len(l)
	}

	seen := make(map[uuid.UUID]struct{}, size)
	merged := make([]Appointment, 0, size)
	for _, l := range lists {
		for _, a := range l {
			if _, dup := seen[a.ID]; dup {
				continue
			}
			seen[a.ID] = struct{}{}
			merged = append(merged, a)
		}
	}
	return merged
}

// SortAppointments orders appointments by date, then time slot, then ID.
func SortAppointments(appointments []Appointment) {
	sort.SliceStable(appointments, func(i, j int) bool {
		a, b := &appointments[i], &appointments[j]
		if !a.AppointmentDate.Equal(b.AppointmentDate) {
			return a.AppointmentDate.Before(b.AppointmentDate)
		}
		if a.TimeSlot != b.TimeSlot {
			return a.TimeSlot < b.TimeSlot
		}
		return a.ID.String() < b.ID.String()
	})
}
