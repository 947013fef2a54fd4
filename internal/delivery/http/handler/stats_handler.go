package handler

import (
	"net/http"
	"time"

	"github.com/Asjad-cell/HealthLink/internal/delivery/http/middleware"
	"github.com/Asjad-cell/HealthLink/internal/usecase"
	"github.com/Asjad-cell/HealthLink/pkg/response"
)

// StatsHandler serves counts whose "today" depends on the caller's timezone.
type StatsHandler struct {
	statsUsecase usecase.StatsUsecase
	timezone     *time.Location
}

func NewStatsHandler(statsUsecase usecase.StatsUsecase, timezone *time.Location) *StatsHandler {
	return &StatsHandler{
		statsUsecase: statsUsecase,
		timezone:     timezone,
	}
}

func (h *StatsHandler) GetDoctorStats(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActorFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	now, err := callerNow(r, h.timezone)
	if err != nil {
		writeError(w, err, "Failed to get stats")
		return
	}

	stats, err := h.statsUsecase.DoctorStats(r.Context(), actor.ID, now)
	if err != nil {
		writeError(w, err, "Failed to get stats")
		return
	}

	response.Success(w, http.StatusOK, "Stats retrieved successfully", stats)
}

// GetDoctorDashboard refreshes the dashboard. Clients call it on load and
// again whenever the page regains focus.
func (h *StatsHandler) GetDoctorDashboard(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActorFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Unauthorized")
		return
	}

	now, err := callerNow(r, h.timezone)
	if err != nil {
		writeError(w, err, "Failed to load dashboard")
		return
	}

	dashboard, err := h.statsUsecase.RefreshDoctorDashboard(r.Context(), actor.ID, now)
	if err != nil {
		writeError(w, err, "Failed to load dashboard")
		return
	}

	response.Success(w, http.StatusOK, "Dashboard retrieved successfully", dashboard)
}

func (h *StatsHandler) GetAdminStats(w http.ResponseWriter, r *http.Request) {
	now, err := callerNow(r, h.timezone)
	if err != nil {
		writeError(w, err, "Failed to get stats")
		return
	}

	stats, err := h.statsUsecase.AdminStats(r.Context(), now)
	if err != nil {
		writeError(w, err, "Failed to get stats")
		return
	}

	response.Success(w, http.StatusOK, "Stats retrieved successfully", stats)
}
