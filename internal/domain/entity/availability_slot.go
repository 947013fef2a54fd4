package entity

import (
	"sort"
	"time"

	"github.com/google/uuid"
)

// AvailabilitySlot is a weekly window during which a doctor accepts
// appointments. Times are "HH:MM" and the window is half open: [StartTime, EndTime).
type AvailabilitySlot struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	DoctorID  uuid.UUID `gorm:"type:uuid;not null;index:idx_availability_doctor_day" json:"doctor_id"`
	DayOfWeek DayOfWeek `gorm:"type:smallint;not null;index:idx_availability_doctor_day" json:"day_of_week"`
	StartTime string    `gorm:"type:varchar(5);not null" json:"start_time"`
	EndTime   string    `gorm:"type:varchar(5);not null" json:"end_time"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Doctor DoctorProfile `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
}

func (AvailabilitySlot) TableName() string {
	return "availability_slots"
}

// Contains reports whether the time of day (minutes since midnight) falls
// inside the window. Malformed stored times never match.
func (s *AvailabilitySlot) Contains(minute int) bool {
	start, err := ParseClock(s.StartTime)
	if err != nil {
		return false
	}
	end, err := ParseClock(s.EndTime)
	if err != nil {
		return false
	}
	return minute >= start && minute < end
}

// NormalizeAvailability checks a full weekly availability and returns a copy
// with zero-padded times, ordered by day then start time. It rejects unknown
// weekdays, malformed times, empty windows and overlaps on the same day.
func NormalizeAvailability(slots []AvailabilitySlot) ([]AvailabilitySlot, error) {
	out := make([]AvailabilitySlot, len(slots))
	for i, slot := range slots {
		if !slot.DayOfWeek.IsValid() {
			return nil, NewValidationError("day_of_week", "slot %d has an invalid day of week", i)
		}
		start, err := NormalizeClock(slot.StartTime)
		if err != nil {
			return nil, NewValidationError("start_time", "slot %d: %v", i, err)
		}
		end, err := NormalizeClock(slot.EndTime)
		if err != nil {
			return nil, NewValidationError("end_time", "slot %d: %v", i, err)
		}
		if start >= end {
			return nil, NewValidationError("end_time", "slot %d: start time %s must be before end time %s", i, start, end)
		}
		slot.StartTime = start
		slot.EndTime = end
		out[i] = slot
	}

	SortAvailability(out)

	for i := 1; i < len(out); i++ {
		prev, cur := out[i-1], out[i]
		if prev.DayOfWeek == cur.DayOfWeek && cur.StartTime < prev.EndTime {
			return nil, NewValidationError("availability", "%s slots %s-%s and %s-%s overlap",
				cur.DayOfWeek, prev.StartTime, prev.EndTime, cur.StartTime, cur.EndTime)
		}
	}
	return out, nil
}

// SortAvailability orders slots by day of week then start time.
func SortAvailability(slots []AvailabilitySlot) {
	sort.SliceStable(slots, func(i, j int) bool {
		if slots[i].DayOfWeek != slots[j].DayOfWeek {
			return slots[i].DayOfWeek < slots[j].DayOfWeek
		}
		return slots[i].StartTime < slots[j].StartTime
	})
}

// CoversTimeSlot reports whether any slot for the weekday of date contains
// the "HH:MM" time slot.
func CoversTimeSlot(slots []AvailabilitySlot, date time.Time, timeSlot string) bool {
	minute, err := ParseClock(timeSlot)
	if err != nil {
		return false
	}
	day := DayOfWeekOf(date)
	for i := range slots {
		if slots[i].DayOfWeek == day && slots[i].Contains(minute) {
			return true
		}
	}
	return false
}
