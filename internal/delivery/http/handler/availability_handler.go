package handler

import (
	"encoding/json"
	"net/http"

	"github.com/Asjad-cell/HealthLink/internal/delivery/dto"
	"github.com/Asjad-cell/HealthLink/internal/delivery/http/middleware"
	"github.com/Asjad-cell/HealthLink/internal/usecase"
	"github.com/Asjad-cell/HealthLink/pkg/response"
	"github.com/Asjad-cell/HealthLink/pkg/validator"

	"github.com/google/uuid"
)

type AvailabilityHandler struct {
	availabilityUsecase usecase.AvailabilityUsecase
	validator           *validator.CustomValidator
}

func NewAvailabilityHandler(availabilityUsecase usecase.AvailabilityUsecase, validator *validator.CustomValidator) *AvailabilityHandler {
	return &AvailabilityHandler{
		availabilityUsecase: availabilityUsecase,
		validator:           validator,
	}
}

func (h *AvailabilityHandler) GetMyAvailability(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActorFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	h.getAvailability(w, r, actor.ID)
}

func (h *AvailabilityHandler) GetDoctorAvailability(w http.ResponseWriter, r *http.Request) {
	doctorID, err := pathUUID(r, "doctorId")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid doctor ID", nil)
		return
	}

	h.getAvailability(w, r, doctorID)
}

func (h *AvailabilityHandler) getAvailability(w http.ResponseWriter, r *http.Request, doctorID uuid.UUID) {
	availability, err := h.availabilityUsecase.GetAvailability(r.Context(), doctorID)
	if err != nil {
		writeError(w, err, "Failed to get availability")
		return
	}

	response.Success(w, http.StatusOK, "Availability retrieved successfully", availability)
}

func (h *AvailabilityHandler) SetMyAvailability(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActorFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	h.setAvailability(w, r, actor.ID)
}

// SetDoctorAvailability is the admin variant addressed by doctor id.
func (h *AvailabilityHandler) SetDoctorAvailability(w http.ResponseWriter, r *http.Request) {
	doctorID, err := pathUUID(r, "id")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid doctor ID", nil)
		return
	}

	h.setAvailability(w, r, doctorID)
}

func (h *AvailabilityHandler) setAvailability(w http.ResponseWriter, r *http.Request, doctorID uuid.UUID) {
	actor, ok := middleware.GetActorFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	var req dto.SetAvailabilityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	availability, err := h.availabilityUsecase.SetAvailability(r.Context(), actor, doctorID, &req)
	if err != nil {
		writeError(w, err, "Failed to update availability")
		return
	}

	response.Success(w, http.StatusOK, "Availability updated successfully", availability)
}

// CheckSlot answers whether date and time_slot can be booked right now.
func (h *AvailabilityHandler) CheckSlot(w http.ResponseWriter, r *http.Request) {
	doctorID, err := pathUUID(r, "doctorId")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid doctor ID", nil)
		return
	}

	query := dto.SlotCheckQuery{
		Date:     r.URL.Query().Get("date"),
		TimeSlot: r.URL.Query().Get("time_slot"),
	}
	if err := h.validator.Validate(&query); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	result, err := h.availabilityUsecase.IsSlotAvailable(r.Context(), doctorID, &query)
	if err != nil {
		writeError(w, err, "Failed to check slot")
		return
	}

	response.Success(w, http.StatusOK, "Slot checked successfully", result)
}
