package converter

import (
	"github.com/Asjad-cell/HealthLink/internal/delivery/dto"
	"github.com/Asjad-cell/HealthLink/internal/domain/entity"

	"github.com/google/uuid"
)

func AvailabilityToResponse(doctorID uuid.UUID, slots []entity.AvailabilitySlot) *dto.AvailabilityResponse {
	responses := make([]dto.AvailabilitySlotResponse, len(slots))
	for i, slot := range slots {
		responses[i] = dto.AvailabilitySlotResponse{
			ID:        slot.ID,
			DayOfWeek: slot.DayOfWeek,
			StartTime: slot.StartTime,
			EndTime:   slot.EndTime,
		}
	}

	return &dto.AvailabilityResponse{
		DoctorID: doctorID,
		Slots:    responses,
		Total:    len(responses),
	}
}
