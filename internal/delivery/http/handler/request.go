package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/Asjad-cell/HealthLink/internal/domain/entity"
	"github.com/Asjad-cell/HealthLink/pkg/response"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

const (
	defaultPage  = 1
	defaultLimit = 10

	// TimezoneHeader carries the caller's IANA zone. "Today" is resolved in it.
	TimezoneHeader = "X-Timezone"
)

// writeError maps an error root to its status code. Messages of client
// errors are returned as is; anything unclassified becomes a 500 with
// fallback as the message.
func writeError(w http.ResponseWriter, err error, fallback string) {
	var validationErr *entity.ValidationError
	switch {
	case errors.As(err, &validationErr):
		if validationErr.Field != "" {
			response.ValidationError(w, map[string]string{validationErr.Field: validationErr.Message})
			return
		}
		response.BadRequest(w, validationErr.Message)
	case errors.Is(err, entity.ErrValidation):
		response.BadRequest(w, err.Error())
	case errors.Is(err, entity.ErrSlotUnavailable):
		response.Conflict(w, err.Error())
	case errors.Is(err, entity.ErrNotFound):
		response.NotFound(w, err.Error())
	case errors.Is(err, entity.ErrInvalidTransition):
		response.UnprocessableEntity(w, err.Error())
	case errors.Is(err, entity.ErrForbidden):
		response.Forbidden(w, err.Error())
	case errors.Is(err, entity.ErrConflict):
		response.Conflict(w, err.Error())
	default:
		response.InternalServerError(w, fallback)
	}
}

func pathUUID(r *http.Request, name string) (uuid.UUID, error) {
	return uuid.Parse(mux.Vars(r)[name])
}

// pagination reads page and limit, defaulting to 1 and 10. Range checks are
// left to the usecase so the configured maximum applies.
func pagination(r *http.Request) (int, int, error) {
	page, err := queryInt(r, "page", defaultPage)
	if err != nil {
		return 0, 0, err
	}
	limit, err := queryInt(r, "limit", defaultLimit)
	if err != nil {
		return 0, 0, err
	}
	return page, limit, nil
}

func queryInt(r *http.Request, name string, fallback int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, entity.NewValidationError(name, "must be an integer")
	}
	return n, nil
}

// callerNow is the current instant in the caller's timezone, taken from the
// X-Timezone header or fallback when the header is absent.
func callerNow(r *http.Request, fallback *time.Location) (time.Time, error) {
	loc := fallback
	if name := r.Header.Get(TimezoneHeader); name != "" {
		parsed, err := time.LoadLocation(name)
		if err != nil {
			return time.Time{}, entity.NewValidationError("timezone", "unknown timezone %q", name)
		}
		loc = parsed
	}
	if loc == nil {
		loc = time.UTC
	}
	return time.Now().In(loc), nil
}
