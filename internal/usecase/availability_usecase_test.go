package usecase

import (
	"context"
	"testing"

	"github.com/Asjad-cell/HealthLink/internal/delivery/dto"
	"github.com/Asjad-cell/HealthLink/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAvailabilityUsecase_SetAvailability(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	doctorID := f.addDoctor(t, "Dr Ana", true)
	uc := f.availabilityUsecase()

	resp, err := uc.SetAvailability(ctx, doctorActor(doctorID), doctorID, &dto.SetAvailabilityRequest{
		Slots: []dto.AvailabilitySlotRequest{
			{DayOfWeek: "wednesday", StartTime: "13:00", EndTime: "15:00"},
			{DayOfWeek: "1", StartTime: "14:00", EndTime: "16:00"},
			{DayOfWeek: "Mon", StartTime: "9:00", EndTime: "12:00"},
		},
	})
	require.NoError(t, err)
	require.Equal(t, 3, resp.Total)
	assert.Equal(t, entity.Monday, resp.Slots[0].DayOfWeek)
	assert.Equal(t, "09:00", resp.Slots[0].StartTime)
	assert.Equal(t, "14:00", resp.Slots[1].StartTime)
	assert.Equal(t, entity.Wednesday, resp.Slots[2].DayOfWeek)

	got, err := uc.GetAvailability(ctx, doctorID)
	require.NoError(t, err)
	assert.Equal(t, resp.Slots, got.Slots)
	assert.Equal(t, []string{entity.AuditActionAvailabilitySet}, f.audits.actions())

	cleared, err := uc.SetAvailability(ctx, adminActor(), doctorID, &dto.SetAvailabilityRequest{})
	require.NoError(t, err)
	assert.Zero(t, cleared.Total)
}

func TestAvailabilityUsecase_SetAvailabilityRejects(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	doctorID := f.addDoctor(t, "Dr Ana", true)
	f.setWeek(t, doctorID, entity.Friday, "08:00", "10:00")
	uc := f.availabilityUsecase()

	week := func(slots ...dto.AvailabilitySlotRequest) *dto.SetAvailabilityRequest {
		return &dto.SetAvailabilityRequest{Slots: slots}
	}

	tests := []struct {
		name     string
		actor    entity.Actor
		doctorID uuid.UUID
		req      *dto.SetAvailabilityRequest
		wantErr  error
	}{
		{"patient", patientActor(uuid.New()), doctorID, week(), entity.ErrForbidden},
		{"other doctor", doctorActor(uuid.New()), doctorID, week(), entity.ErrForbidden},
		{"unknown doctor", adminActor(), uuid.New(), week(), entity.ErrNotFound},
		{"unknown weekday", adminActor(), doctorID, week(dto.AvailabilitySlotRequest{DayOfWeek: "funday", StartTime: "09:00", EndTime: "10:00"}), entity.ErrValidation},
		{"start after end", adminActor(), doctorID, week(dto.AvailabilitySlotRequest{DayOfWeek: "monday", StartTime: "11:00", EndTime: "10:00"}), entity.ErrValidation},
		{"empty window", adminActor(), doctorID, week(dto.AvailabilitySlotRequest{DayOfWeek: "monday", StartTime: "10:00", EndTime: "10:00"}), entity.ErrValidation},
		{"malformed time", adminActor(), doctorID, week(dto.AvailabilitySlotRequest{DayOfWeek: "monday", StartTime: "25:00", EndTime: "26:00"}), entity.ErrValidation},
		{"overlap", adminActor(), doctorID, week(
			dto.AvailabilitySlotRequest{DayOfWeek: "monday", StartTime: "09:00", EndTime: "11:00"},
			dto.AvailabilitySlotRequest{DayOfWeek: "monday", StartTime: "10:30", EndTime: "12:00"},
		), entity.ErrValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.SetAvailability(ctx, tt.actor, tt.doctorID, tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	// The stored week is untouched by every rejected request.
	got, err := uc.GetAvailability(ctx, doctorID)
	require.NoError(t, err)
	require.Len(t, got.Slots, 1)
	assert.Equal(t, entity.Friday, got.Slots[0].DayOfWeek)
}

func TestAvailabilityUsecase_AdjacentSlotsAllowed(t *testing.T) {
	f := newFixture(t)
	doctorID := f.addDoctor(t, "Dr Ana", true)

	resp, err := f.availabilityUsecase().SetAvailability(context.Background(), doctorActor(doctorID), doctorID, &dto.SetAvailabilityRequest{
		Slots: []dto.AvailabilitySlotRequest{
			{DayOfWeek: "monday", StartTime: "09:00", EndTime: "10:00"},
			{DayOfWeek: "monday", StartTime: "10:00", EndTime: "11:00"},
			{DayOfWeek: "tuesday", StartTime: "09:30", EndTime: "10:30"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 3, resp.Total)
}

func TestAvailabilityUsecase_IsSlotAvailable(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	doctorID := f.addDoctor(t, "Dr Ana", true)
	inactive := f.addDoctor(t, "Dr Off", false)
	patientID := f.addPatient(t, "Budi")
	f.setWeek(t, doctorID, entity.Monday, "09:00", "12:00")
	f.setWeek(t, inactive, entity.Monday, "09:00", "12:00")
	f.seedAppointment(doctorID, patientID, nextMonday, "10:00", entity.AppointmentStatusConfirmed)
	f.seedAppointment(doctorID, patientID, nextMonday, "11:00", entity.AppointmentStatusCancelled)
	uc := f.availabilityUsecase()

	tests := []struct {
		name      string
		doctorID  uuid.UUID
		date      string
		slot      string
		available bool
		reason    string
	}{
		{"free", doctorID, nextMonday, "09:00", true, ""},
		{"taken", doctorID, nextMonday, "10:00", false, SlotReasonTaken},
		{"cancelled frees the slot", doctorID, nextMonday, "11:00", true, ""},
		{"end is exclusive", doctorID, nextMonday, "12:00", false, SlotReasonOutsideAvailability},
		{"other weekday", doctorID, "2025-06-10", "09:00", false, SlotReasonOutsideAvailability},
		{"inactive doctor", inactive, nextMonday, "09:00", false, SlotReasonDoctorInactive},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := uc.IsSlotAvailable(ctx, tt.doctorID, &dto.SlotCheckQuery{Date: tt.date, TimeSlot: tt.slot})
			require.NoError(t, err)
			assert.Equal(t, tt.available, resp.Available)
			assert.Equal(t, tt.reason, resp.Reason)
		})
	}

	_, err := uc.IsSlotAvailable(ctx, uuid.New(), &dto.SlotCheckQuery{Date: nextMonday, TimeSlot: "09:00"})
	assert.ErrorIs(t, err, entity.ErrNotFound)

	_, err = uc.IsSlotAvailable(ctx, doctorID, &dto.SlotCheckQuery{Date: "09-06-2025", TimeSlot: "09:00"})
	assert.ErrorIs(t, err, entity.ErrValidation)
}
