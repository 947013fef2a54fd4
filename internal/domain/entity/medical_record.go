package entity

import (
	"time"

	"github.com/google/uuid"
)

// MedicalRecord is one entry of a patient's medical history
type MedicalRecord struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	PatientID  uuid.UUID `gorm:"type:uuid;not null;index" json:"patient_id"`
	DoctorID   uuid.UUID `gorm:"type:uuid;not null;index" json:"doctor_id"`
	Diagnosis  string    `gorm:"type:text;not null" json:"diagnosis"`
	Treatment  string    `gorm:"type:text" json:"treatment,omitempty"`
	Notes      string    `gorm:"type:text" json:"notes,omitempty"`
	RecordedAt time.Time `gorm:"not null;index" json:"recorded_at"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (MedicalRecord) TableName() string {
	return "medical_records"
}
