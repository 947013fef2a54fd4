package entity

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAppointment(status AppointmentStatus) (*Appointment, Actor, Actor) {
	doctor := Actor{ID: uuid.New(), RoleID: RoleIDDoctor}
	patient := Actor{ID: uuid.New(), RoleID: RoleIDPatient}
	return &Appointment{
		ID:              uuid.New(),
		DoctorID:        doctor.ID,
		PatientID:       patient.ID,
		AppointmentDate: mustDate("2024-05-06"),
		TimeSlot:        "09:00",
		Status:          status,
	}, doctor, patient
}

func mustDate(s string) time.Time {
	d, err := ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestAppointmentStatus_Graph(t *testing.T) {
	all := []AppointmentStatus{
		AppointmentStatusPending, AppointmentStatusConfirmed,
		AppointmentStatusCompleted, AppointmentStatusCancelled,
	}
	reachable := map[AppointmentStatus][]AppointmentStatus{
		AppointmentStatusPending:   {AppointmentStatusConfirmed, AppointmentStatusCancelled},
		AppointmentStatusConfirmed: {AppointmentStatusCompleted, AppointmentStatusCancelled},
	}

	for _, from := range all {
		for _, to := range all {
			want := false
			for _, r := range reachable[from] {
				if r == to {
					want = true
				}
			}
			assert.Equal(t, want, from.CanTransitionTo(to), "%s -> %s", from, to)
		}
	}

	assert.True(t, AppointmentStatusCompleted.IsTerminal())
	assert.True(t, AppointmentStatusCancelled.IsTerminal())
	assert.False(t, AppointmentStatusPending.IsTerminal())
	assert.False(t, AppointmentStatus("archived").IsValid())

	assert.False(t, AppointmentStatusPending.IsReachable())
	assert.True(t, AppointmentStatusConfirmed.IsReachable())
	assert.True(t, AppointmentStatusCompleted.IsReachable())
	assert.True(t, AppointmentStatusCancelled.IsReachable())
}

func TestCheckTransition_DoctorLifecycle(t *testing.T) {
	appt, doctor, patient := newTestAppointment(AppointmentStatusPending)

	err := appt.Transition(AppointmentStatusCompleted, patient)
	assert.ErrorIs(t, err, ErrForbidden)
	assert.Equal(t, AppointmentStatusPending, appt.Status)

	require.NoError(t, appt.Transition(AppointmentStatusConfirmed, doctor))
	require.NoError(t, appt.Transition(AppointmentStatusCompleted, doctor))
	assert.Equal(t, AppointmentStatusCompleted, appt.Status)

	err = appt.Transition(AppointmentStatusPending, doctor)
	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.Equal(t, AppointmentStatusCompleted, appt.Status)
}

func TestCheckTransition_Order(t *testing.T) {
	tests := []struct {
		name    string
		status  AppointmentStatus
		next    AppointmentStatus
		actor   func(doctor, patient Actor) Actor
		wantErr error
	}{
		{
			name:    "unknown status is a validation error even when terminal",
			status:  AppointmentStatusCancelled,
			next:    "archived",
			actor:   func(d, _ Actor) Actor { return d },
			wantErr: ErrValidation,
		},
		{
			name:    "terminal beats permission",
			status:  AppointmentStatusCancelled,
			next:    AppointmentStatusCompleted,
			actor:   func(_, p Actor) Actor { return p },
			wantErr: ErrInvalidTransition,
		},
		{
			name:    "permission beats reachability",
			status:  AppointmentStatusPending,
			next:    AppointmentStatusCompleted,
			actor:   func(_, p Actor) Actor { return p },
			wantErr: ErrForbidden,
		},
		{
			name:    "admin never drives the lifecycle",
			status:  AppointmentStatusPending,
			next:    AppointmentStatusConfirmed,
			actor:   func(_, _ Actor) Actor { return Actor{ID: uuid.New(), RoleID: RoleIDAdmin} },
			wantErr: ErrForbidden,
		},
		{
			name:    "doctor cannot move back to pending",
			status:  AppointmentStatusConfirmed,
			next:    AppointmentStatusPending,
			actor:   func(d, _ Actor) Actor { return d },
			wantErr: ErrInvalidTransition,
		},
		{
			name:    "patient cannot reopen a confirmed appointment",
			status:  AppointmentStatusConfirmed,
			next:    AppointmentStatusPending,
			actor:   func(_, p Actor) Actor { return p },
			wantErr: ErrInvalidTransition,
		},
		{
			name:    "doctor cannot complete a pending appointment",
			status:  AppointmentStatusPending,
			next:    AppointmentStatusCompleted,
			actor:   func(d, _ Actor) Actor { return d },
			wantErr: ErrInvalidTransition,
		},
		{
			name:    "other doctor is forbidden",
			status:  AppointmentStatusPending,
			next:    AppointmentStatusConfirmed,
			actor:   func(_, _ Actor) Actor { return Actor{ID: uuid.New(), RoleID: RoleIDDoctor} },
			wantErr: ErrForbidden,
		},
		{
			name:    "other patient is forbidden",
			status:  AppointmentStatusPending,
			next:    AppointmentStatusCancelled,
			actor:   func(_, _ Actor) Actor { return Actor{ID: uuid.New(), RoleID: RoleIDPatient} },
			wantErr: ErrForbidden,
		},
		{
			name:   "patient cancels confirmed",
			status: AppointmentStatusConfirmed,
			next:   AppointmentStatusCancelled,
			actor:  func(_, p Actor) Actor { return p },
		},
		{
			name:   "doctor cancels pending",
			status: AppointmentStatusPending,
			next:   AppointmentStatusCancelled,
			actor:  func(d, _ Actor) Actor { return d },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			appt, doctor, patient := newTestAppointment(tt.status)
			err := appt.CheckTransition(tt.next, tt.actor(doctor, patient))
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
			if errors.Is(tt.wantErr, ErrValidation) {
				var ve *ValidationError
				require.ErrorAs(t, err, &ve)
				assert.Equal(t, "status", ve.Field)
			}
		})
	}
}

func TestCheckTransition_TerminalStatesAreFinal(t *testing.T) {
	all := []AppointmentStatus{
		AppointmentStatusPending, AppointmentStatusConfirmed,
		AppointmentStatusCompleted, AppointmentStatusCancelled,
	}
	for _, terminal := range []AppointmentStatus{AppointmentStatusCompleted, AppointmentStatusCancelled} {
		for _, next := range all {
			appt, doctor, patient := newTestAppointment(terminal)
			assert.ErrorIs(t, appt.CheckTransition(next, doctor), ErrInvalidTransition)
			assert.ErrorIs(t, appt.CheckTransition(next, patient), ErrInvalidTransition)
		}
	}
}

func TestAppointment_KeysAndVisibility(t *testing.T) {
	appt, doctor, patient := newTestAppointment(AppointmentStatusPending)

	assert.Equal(t, "2024-05-06", appt.DateKey())
	assert.Equal(t, doctor.ID.String()+":2024-05-06:09:00", appt.SlotKey())
	assert.True(t, appt.IsActive())

	assert.True(t, appt.VisibleTo(doctor))
	assert.True(t, appt.VisibleTo(patient))
	assert.True(t, appt.VisibleTo(Actor{ID: uuid.New(), RoleID: RoleIDAdmin}))
	assert.False(t, appt.VisibleTo(Actor{ID: uuid.New(), RoleID: RoleIDPatient}))
	assert.False(t, appt.VisibleTo(Actor{ID: uuid.New(), RoleID: RoleIDDoctor}))
}

func TestParseAppointmentStatus(t *testing.T) {
	s, err := ParseAppointmentStatus("confirmed")
	require.NoError(t, err)
	assert.Equal(t, AppointmentStatusConfirmed, s)

	_, err = ParseAppointmentStatus("Confirmed")
	assert.ErrorIs(t, err, ErrValidation)
}
