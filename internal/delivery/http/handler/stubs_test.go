package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Asjad-cell/HealthLink/internal/delivery/dto"
	"github.com/Asjad-cell/HealthLink/internal/delivery/http/middleware"
	"github.com/Asjad-cell/HealthLink/internal/domain/entity"
	"github.com/Asjad-cell/HealthLink/internal/usecase"
	"github.com/Asjad-cell/HealthLink/pkg/response"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"
)

type stubAppointmentUsecase struct {
	book          func(actor entity.Actor, now time.Time, req *dto.BookAppointmentRequest) (*dto.AppointmentResponse, error)
	transition    func(actor entity.Actor, id uuid.UUID, req *dto.UpdateAppointmentStatusRequest) (*dto.AppointmentResponse, error)
	transitionAll func(actor entity.Actor, doctorID, patientID uuid.UUID, req *dto.UpdateAppointmentStatusRequest) (*dto.BulkTransitionResponse, error)
	listByDoctor  func(actor entity.Actor, doctorID uuid.UUID, query *dto.AppointmentQuery) (*dto.AppointmentPageResponse, error)
	listAll       func(query *dto.AppointmentQuery) (*dto.AppointmentPageResponse, error)
}

var _ usecase.AppointmentUsecase = (*stubAppointmentUsecase)(nil)

func (s *stubAppointmentUsecase) Book(_ context.Context, actor entity.Actor, now time.Time, req *dto.BookAppointmentRequest) (*dto.AppointmentResponse, error) {
	return s.book(actor, now, req)
}

func (s *stubAppointmentUsecase) Get(_ context.Context, _ entity.Actor, id uuid.UUID) (*dto.AppointmentResponse, error) {
	return &dto.AppointmentResponse{ID: id}, nil
}

func (s *stubAppointmentUsecase) ListByDoctor(_ context.Context, actor entity.Actor, doctorID uuid.UUID, query *dto.AppointmentQuery) (*dto.AppointmentPageResponse, error) {
	return s.listByDoctor(actor, doctorID, query)
}

func (s *stubAppointmentUsecase) ListByPatient(_ context.Context, _ entity.Actor, _ uuid.UUID) (*dto.AppointmentListResponse, error) {
	return &dto.AppointmentListResponse{Appointments: []dto.AppointmentResponse{}}, nil
}

func (s *stubAppointmentUsecase) ListAll(_ context.Context, query *dto.AppointmentQuery) (*dto.AppointmentPageResponse, error) {
	return s.listAll(query)
}

func (s *stubAppointmentUsecase) Transition(_ context.Context, actor entity.Actor, id uuid.UUID, req *dto.UpdateAppointmentStatusRequest) (*dto.AppointmentResponse, error) {
	return s.transition(actor, id, req)
}

func (s *stubAppointmentUsecase) TransitionAllForPatient(_ context.Context, actor entity.Actor, doctorID, patientID uuid.UUID, req *dto.UpdateAppointmentStatusRequest) (*dto.BulkTransitionResponse, error) {
	return s.transitionAll(actor, doctorID, patientID, req)
}

type stubAvailabilityUsecase struct {
	set   func(actor entity.Actor, doctorID uuid.UUID, req *dto.SetAvailabilityRequest) (*dto.AvailabilityResponse, error)
	check func(doctorID uuid.UUID, query *dto.SlotCheckQuery) (*dto.SlotCheckResponse, error)
}

var _ usecase.AvailabilityUsecase = (*stubAvailabilityUsecase)(nil)

func (s *stubAvailabilityUsecase) SetAvailability(_ context.Context, actor entity.Actor, doctorID uuid.UUID, req *dto.SetAvailabilityRequest) (*dto.AvailabilityResponse, error) {
	return s.set(actor, doctorID, req)
}

func (s *stubAvailabilityUsecase) GetAvailability(_ context.Context, doctorID uuid.UUID) (*dto.AvailabilityResponse, error) {
	return &dto.AvailabilityResponse{DoctorID: doctorID, Slots: []dto.AvailabilitySlotResponse{}}, nil
}

func (s *stubAvailabilityUsecase) IsSlotAvailable(_ context.Context, doctorID uuid.UUID, query *dto.SlotCheckQuery) (*dto.SlotCheckResponse, error) {
	return s.check(doctorID, query)
}

type stubStatsUsecase struct {
	doctor    func(doctorID uuid.UUID, now time.Time) (*dto.StatsResponse, error)
	admin     func(now time.Time) (*dto.AdminStatsResponse, error)
	dashboard func(doctorID uuid.UUID, now time.Time) (*dto.DoctorDashboardResponse, error)
}

var _ usecase.StatsUsecase = (*stubStatsUsecase)(nil)

func (s *stubStatsUsecase) DoctorStats(_ context.Context, doctorID uuid.UUID, now time.Time) (*dto.StatsResponse, error) {
	return s.doctor(doctorID, now)
}

func (s *stubStatsUsecase) AdminStats(_ context.Context, now time.Time) (*dto.AdminStatsResponse, error) {
	return s.admin(now)
}

func (s *stubStatsUsecase) RefreshDoctorDashboard(_ context.Context, doctorID uuid.UUID, now time.Time) (*dto.DoctorDashboardResponse, error) {
	return s.dashboard(doctorID, now)
}

// envelope mirrors response.Response with a raw payload for decoding in tests.
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   json.RawMessage `json:"error"`
	Meta    *response.Meta  `json:"meta"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

// serve runs h for a request built from method, target and body, with actor
// in the context and vars as mux path variables.
func serve(h http.HandlerFunc, method, target string, body any, actor *entity.Actor, vars map[string]string, headers map[string]string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		if raw, ok := body.(string); ok {
			buf.WriteString(raw)
		} else {
			_ = json.NewEncoder(&buf).Encode(body)
		}
	}

	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	if actor != nil {
		req = req.WithContext(middleware.WithActor(req.Context(), *actor))
	}
	if vars != nil {
		req = mux.SetURLVars(req, vars)
	}

	rec := httptest.NewRecorder()
	h(rec, req)
	return rec
}
