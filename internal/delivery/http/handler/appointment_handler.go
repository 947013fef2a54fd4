package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/Asjad-cell/HealthLink/internal/delivery/dto"
	"github.com/Asjad-cell/HealthLink/internal/delivery/http/middleware"
	"github.com/Asjad-cell/HealthLink/internal/domain/entity"
	"github.com/Asjad-cell/HealthLink/internal/usecase"
	"github.com/Asjad-cell/HealthLink/pkg/response"
	"github.com/Asjad-cell/HealthLink/pkg/validator"

	"github.com/google/uuid"
)

type AppointmentHandler struct {
	appointmentUsecase usecase.AppointmentUsecase
	validator          *validator.CustomValidator
	timezone           *time.Location
}

// NewAppointmentHandler uses timezone to resolve today's date when the
// request carries no X-Timezone header.
func NewAppointmentHandler(appointmentUsecase usecase.AppointmentUsecase, validator *validator.CustomValidator, timezone *time.Location) *AppointmentHandler {
	return &AppointmentHandler{
		appointmentUsecase: appointmentUsecase,
		validator:          validator,
		timezone:           timezone,
	}
}

func (h *AppointmentHandler) BookAppointment(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActorFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	var req dto.BookAppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	now, err := callerNow(r, h.timezone)
	if err != nil {
		writeError(w, err, "Failed to book appointment")
		return
	}

	appointment, err := h.appointmentUsecase.Book(r.Context(), actor, now, &req)
	if err != nil {
		writeError(w, err, "Failed to book appointment")
		return
	}

	response.Success(w, http.StatusCreated, "Appointment booked successfully", appointment)
}

func (h *AppointmentHandler) GetAppointment(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActorFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	appointmentID, err := pathUUID(r, "id")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid appointment ID", nil)
		return
	}

	appointment, err := h.appointmentUsecase.Get(r.Context(), actor, appointmentID)
	if err != nil {
		writeError(w, err, "Failed to get appointment")
		return
	}

	response.Success(w, http.StatusOK, "Appointment retrieved successfully", appointment)
}

func (h *AppointmentHandler) GetMyAppointments(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActorFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	appointments, err := h.appointmentUsecase.ListByPatient(r.Context(), actor, actor.ID)
	if err != nil {
		writeError(w, err, "Failed to get appointments")
		return
	}

	response.Success(w, http.StatusOK, "Appointments retrieved successfully", appointments)
}

// GetDoctorAppointments lists the calling doctor's appointments.
func (h *AppointmentHandler) GetDoctorAppointments(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActorFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	h.listByDoctor(w, r, actor, actor.ID)
}

// GetAppointmentsByDoctor is the admin variant addressed by doctor id.
func (h *AppointmentHandler) GetAppointmentsByDoctor(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActorFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	doctorID, err := pathUUID(r, "id")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid doctor ID", nil)
		return
	}

	h.listByDoctor(w, r, actor, doctorID)
}

func (h *AppointmentHandler) listByDoctor(w http.ResponseWriter, r *http.Request, actor entity.Actor, doctorID uuid.UUID) {
	query, ok := h.parseQuery(w, r)
	if !ok {
		return
	}

	appointments, err := h.appointmentUsecase.ListByDoctor(r.Context(), actor, doctorID, query)
	if err != nil {
		writeError(w, err, "Failed to get appointments")
		return
	}

	meta := response.NewMeta(appointments.Page, appointments.Limit, appointments.Total)
	response.SuccessWithMeta(w, http.StatusOK, "Appointments retrieved successfully", appointments.Appointments, meta)
}

// GetAllAppointments accepts optional status and doctor_id filters.
func (h *AppointmentHandler) GetAllAppointments(w http.ResponseWriter, r *http.Request) {
	query, ok := h.parseQuery(w, r)
	if !ok {
		return
	}

	if raw := r.URL.Query().Get("doctor_id"); raw != "" {
		doctorID, err := uuid.Parse(raw)
		if err != nil {
			response.Error(w, http.StatusBadRequest, "Invalid doctor ID", nil)
			return
		}
		query.DoctorID = &doctorID
	}

	appointments, err := h.appointmentUsecase.ListAll(r.Context(), query)
	if err != nil {
		writeError(w, err, "Failed to get appointments")
		return
	}

	meta := response.NewMeta(appointments.Page, appointments.Limit, appointments.Total)
	response.SuccessWithMeta(w, http.StatusOK, "Appointments retrieved successfully", appointments.Appointments, meta)
}

func (h *AppointmentHandler) parseQuery(w http.ResponseWriter, r *http.Request) (*dto.AppointmentQuery, bool) {
	page, limit, err := pagination(r)
	if err != nil {
		writeError(w, err, "Failed to get appointments")
		return nil, false
	}

	query := &dto.AppointmentQuery{
		Status: r.URL.Query().Get("status"),
		Page:   page,
		Limit:  limit,
	}
	if err := h.validator.Validate(query); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return nil, false
	}
	return query, true
}

func (h *AppointmentHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	appointmentID, err := pathUUID(r, "id")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid appointment ID", nil)
		return
	}

	var req dto.UpdateAppointmentStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	h.transition(w, r, appointmentID, &req)
}

// CancelAppointment is the patient's only transition, so it takes no body.
func (h *AppointmentHandler) CancelAppointment(w http.ResponseWriter, r *http.Request) {
	appointmentID, err := pathUUID(r, "id")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid appointment ID", nil)
		return
	}

	h.transition(w, r, appointmentID, &dto.UpdateAppointmentStatusRequest{
		Status: string(entity.AppointmentStatusCancelled),
	})
}

func (h *AppointmentHandler) transition(w http.ResponseWriter, r *http.Request, appointmentID uuid.UUID, req *dto.UpdateAppointmentStatusRequest) {
	actor, ok := middleware.GetActorFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	appointment, err := h.appointmentUsecase.Transition(r.Context(), actor, appointmentID, req)
	if err != nil {
		writeError(w, err, "Failed to update appointment")
		return
	}

	response.Success(w, http.StatusOK, "Appointment updated successfully", appointment)
}

// UpdateStatusForPatient moves every appointment between the calling doctor
// and the patient. Appointments the rule rejects are reported as skipped.
func (h *AppointmentHandler) UpdateStatusForPatient(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActorFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	patientID, err := pathUUID(r, "patientId")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid patient ID", nil)
		return
	}

	var req dto.UpdateAppointmentStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	result, err := h.appointmentUsecase.TransitionAllForPatient(r.Context(), actor, actor.ID, patientID, &req)
	if err != nil {
		writeError(w, err, "Failed to update appointments")
		return
	}

	response.Success(w, http.StatusOK, "Appointments updated successfully", result)
}
