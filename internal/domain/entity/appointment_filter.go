package entity

import "github.com/google/uuid"

// AppointmentFilter is a domain-level filter for querying appointments.
// Zero values mean "no constraint".
type AppointmentFilter struct {
	DoctorID  *uuid.UUID
	PatientID *uuid.UUID
	Statuses  []AppointmentStatus
	DateFrom  string // Format: YYYY-MM-DD, inclusive
	DateTo    string // Format: YYYY-MM-DD, inclusive
}

// Page is a 1-indexed page request.
type Page struct {
	Page  int
	Limit int
}

func (p Page) Offset() int {
	return (p.Page - 1) * p.Limit
}

// TotalPages returns the page count for total items, zero when there are none.
func (p Page) TotalPages(total int64) int {
	if p.Limit <= 0 || total <= 0 {
		return 0
	}
	return int((total + int64(p.Limit) - 1) / int64(p.Limit))
}

// NewPage validates a page request and caps the limit at maxLimit.
func NewPage(page, limit, maxLimit int) (Page, error) {
	if page < 1 {
		return Page{}, NewValidationError("page", "must be at least 1")
	}
	if limit < 1 {
		return Page{}, NewValidationError("limit", "must be at least 1")
	}
	if maxLimit > 0 && limit > maxLimit {
		limit = maxLimit
	}
	return Page{Page: page, Limit: limit}, nil
}
