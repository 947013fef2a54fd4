package converter

import (
	"github.com/Asjad-cell/HealthLink/internal/delivery/dto"
	"github.com/Asjad-cell/HealthLink/internal/domain/entity"
)

// PatientProfileToResponse converts a PatientProfile entity with its User to PatientResponse DTO
func PatientProfileToResponse(profile *entity.PatientProfile) *dto.PatientResponse {
	if profile == nil {
		return nil
	}

	return &dto.PatientResponse{
		ID:             profile.UserID,
		Email:          profile.User.Email,
		FullName:       profile.User.FullName,
		PhoneNumber:    profile.PhoneNumber,
		DateOfBirth:    profile.DateOfBirth.Format(entity.DateLayout),
		Gender:         profile.Gender,
		Address:        profile.Address,
		BillingAmount:  profile.BillingAmount,
		IsActive:       profile.User.Active(),
		MedicalHistory: MedicalRecordsToResponses(profile.MedicalRecords),
		CreatedAt:      profile.User.CreatedAt,
	}
}

func PatientProfilesToResponses(profiles []entity.PatientProfile) []dto.PatientResponse {
	responses := make([]dto.PatientResponse, len(profiles))
	for i := range profiles {
		responses[i] = *PatientProfileToResponse(&profiles[i])
	}
	return responses
}

func MedicalRecordToResponse(record *entity.MedicalRecord) *dto.MedicalRecordResponse {
	if record == nil {
		return nil
	}

	return &dto.MedicalRecordResponse{
		ID:         record.ID,
		PatientID:  record.PatientID,
		DoctorID:   record.DoctorID,
		Diagnosis:  record.Diagnosis,
		Treatment:  record.Treatment,
		Notes:      record.Notes,
		RecordedAt: record.RecordedAt,
		UpdatedAt:  record.UpdatedAt,
	}
}

// MedicalRecordsToResponses returns nil for an empty history so the field is omitted.
func MedicalRecordsToResponses(records []entity.MedicalRecord) []dto.MedicalRecordResponse {
	if len(records) == 0 {
		return nil
	}
	responses := make([]dto.MedicalRecordResponse, len(records))
	for i := range records {
		responses[i] = *MedicalRecordToResponse(&records[i])
	}
	return responses
}
