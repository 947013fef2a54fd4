package handler

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Asjad-cell/HealthLink/internal/domain/entity"
	"github.com/Asjad-cell/HealthLink/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteError_MapsRootKinds(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{"field validation", entity.NewValidationError("date", "must not be in the past"), http.StatusBadRequest, "Validation failed"},
		{"slot taken", usecase.ErrSlotTaken, http.StatusConflict, usecase.ErrSlotTaken.Error()},
		{"outside availability", usecase.ErrOutsideAvailability, http.StatusConflict, usecase.ErrOutsideAvailability.Error()},
		{"not found", usecase.ErrAppointmentNotFound, http.StatusNotFound, "appointment not found"},
		{"invalid transition", fmt.Errorf("%w: completed is final", entity.ErrInvalidTransition), http.StatusUnprocessableEntity, "invalid status transition: completed is final"},
		{"forbidden", usecase.ErrAppointmentNotOwned, http.StatusForbidden, usecase.ErrAppointmentNotOwned.Error()},
		{"lost update", usecase.ErrStatusChanged, http.StatusConflict, usecase.ErrStatusChanged.Error()},
		{"unclassified", errors.New("connection reset"), http.StatusInternalServerError, "Failed to do it"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			writeError(rec, tt.err, "Failed to do it")

			assert.Equal(t, tt.status, rec.Code)
			env := decodeEnvelope(t, rec)
			assert.False(t, env.Success)
			assert.Equal(t, tt.message, env.Message)
		})
	}
}

func TestWriteError_FieldErrorIsKeyedByField(t *testing.T) {
	rec := httptest.NewRecorder()
	writeError(rec, entity.NewValidationError("time_slot", "must be HH:MM"), "x")

	env := decodeEnvelope(t, rec)
	assert.JSONEq(t, `{"time_slot":"must be HH:MM"}`, string(env.Error))
}

func TestPagination(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	page, limit, err := pagination(req)
	require.NoError(t, err)
	assert.Equal(t, 1, page)
	assert.Equal(t, 10, limit)

	req = httptest.NewRequest(http.MethodGet, "/x?page=3&limit=25", nil)
	page, limit, err = pagination(req)
	require.NoError(t, err)
	assert.Equal(t, 3, page)
	assert.Equal(t, 25, limit)

	req = httptest.NewRequest(http.MethodGet, "/x?limit=ten", nil)
	_, _, err = pagination(req)
	assert.ErrorIs(t, err, entity.ErrValidation)
}

func TestCallerNow(t *testing.T) {
	jakarta, err := time.LoadLocation("Asia/Jakarta")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	now, err := callerNow(req, jakarta)
	require.NoError(t, err)
	assert.Equal(t, jakarta, now.Location())

	req.Header.Set(TimezoneHeader, "America/New_York")
	now, err = callerNow(req, jakarta)
	require.NoError(t, err)
	assert.Equal(t, "America/New_York", now.Location().String())

	req.Header.Set(TimezoneHeader, "Nowhere/Special")
	_, err = callerNow(req, jakarta)
	assert.ErrorIs(t, err, entity.ErrValidation)

	now, err = callerNow(httptest.NewRequest(http.MethodGet, "/x", nil), nil)
	require.NoError(t, err)
	assert.Equal(t, time.UTC, now.Location())
}
