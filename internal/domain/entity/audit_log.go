package entity

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// AuditLog records a state change made on behalf of an actor.
type AuditLog struct {
	ID        int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    *uuid.UUID `gorm:"type:uuid;index" json:"user_id,omitempty"`
	Action    string     `gorm:"type:varchar(100);not null;index" json:"action"`
	Metadata  Metadata   `gorm:"type:jsonb" json:"metadata,omitempty"`
	CreatedAt time.Time  `gorm:"autoCreateTime;index" json:"created_at"`

	// Relationships
	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (AuditLog) TableName() string {
	return "audit_logs"
}

// Metadata is a free-form JSONB document attached to an audit entry.
type Metadata map[string]any

func (m Metadata) Value() (driver.Value, error) {
	if len(m) == 0 {
		return nil, nil
	}
	return json.Marshal(m)
}

func (m *Metadata) Scan(value interface{}) error {
	var raw []byte
	switch v := value.(type) {
	case nil:
		*m = nil
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into Metadata", value)
	}

	out := Metadata{}
	if err := json.Unmarshal(raw, &out); err != nil {
		return err
	}
	*m = out
	return nil
}

// Audit actions
const (
	AuditActionAppointmentBook       = "appointment.book"
	AuditActionAppointmentTransition = "appointment.transition"
	AuditActionAvailabilitySet       = "availability.set"
	AuditActionDoctorCreate          = "doctor.create"
	AuditActionDoctorUpdate          = "doctor.update"
	AuditActionDoctorToggle          = "doctor.toggle_status"
	AuditActionPatientCreate         = "patient.create"
	AuditActionPatientUpdate         = "patient.update"
	AuditActionRecordAdd             = "medical_record.add"
	AuditActionRecordUpdate          = "medical_record.update"
	AuditActionBillingUpdate         = "billing.update"
)

// AuditLogFilter narrows an audit log listing.
type AuditLogFilter struct {
	UserID *uuid.UUID
	Action string
}
