package converter

import (
	"github.com/Asjad-cell/HealthLink/internal/delivery/dto"
	"github.com/Asjad-cell/HealthLink/internal/domain/entity"

	"github.com/google/uuid"
)

// Dashboard labels derived from medical history presence. They are a
// display heuristic and unrelated to the appointment lifecycle.
const (
	DisplayStatusCompleted = "Completed"
	DisplayStatusPending   = "Pending"
)

func DisplayStatus(hasMedicalHistory bool) string {
	if hasMedicalHistory {
		return DisplayStatusCompleted
	}
	return DisplayStatusPending
}

// AppointmentToResponse converts an Appointment entity to AppointmentResponse DTO.
// Doctor and patient names are filled when the relations are preloaded.
func AppointmentToResponse(appointment *entity.Appointment, hasMedicalHistory bool) *dto.AppointmentResponse {
	if appointment == nil {
		return nil
	}

	return &dto.AppointmentResponse{
		ID:                appointment.ID,
		DoctorID:          appointment.DoctorID,
		DoctorName:        appointment.Doctor.User.FullName,
		Specialization:    appointment.Doctor.Specialization,
		PatientID:         appointment.PatientID,
		PatientName:       appointment.Patient.User.FullName,
		Date:              appointment.DateKey(),
		TimeSlot:          appointment.TimeSlot,
		Status:            string(appointment.Status),
		Reason:            appointment.Reason,
		HasMedicalHistory: hasMedicalHistory,
		DisplayStatus:     DisplayStatus(hasMedicalHistory),
		CreatedAt:         appointment.CreatedAt,
		UpdatedAt:         appointment.UpdatedAt,
	}
}

// AppointmentsToResponses converts appointments, looking up each patient in history.
func AppointmentsToResponses(appointments []entity.Appointment, history map[uuid.UUID]bool) []dto.AppointmentResponse {
	responses := make([]dto.AppointmentResponse, len(appointments))
	for i := range appointments {
		responses[i] = *AppointmentToResponse(&appointments[i], history[appointments[i].PatientID])
	}
	return responses
}
