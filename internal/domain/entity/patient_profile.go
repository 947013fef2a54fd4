package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PatientProfile represents patient-specific profile data
type PatientProfile struct {
	UserID        uuid.UUID       `gorm:"type:uuid;primaryKey" json:"user_id"`
	PhoneNumber   string          `gorm:"type:varchar(20);index" json:"phone_number,omitempty"`
	DateOfBirth   time.Time       `gorm:"type:date;not null" json:"date_of_birth"`
	Gender        string          `gorm:"type:char(1);not null" json:"gender"`
	Address       string          `gorm:"type:text" json:"address,omitempty"`
	BillingAmount decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"billing_amount"`

	// Relationships
	User           User            `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Appointments   []Appointment   `gorm:"foreignKey:PatientID" json:"appointments,omitempty"`
	MedicalRecords []MedicalRecord `gorm:"foreignKey:PatientID" json:"medical_records,omitempty"`
}

func (PatientProfile) TableName() string {
	return "patient_profiles"
}

// Gender constants
const (
	GenderMale   = "M"
	GenderFemale = "F"
)
