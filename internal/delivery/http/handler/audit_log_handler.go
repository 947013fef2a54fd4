package handler

import (
	"net/http"
	"strconv"

	"github.com/Asjad-cell/HealthLink/internal/domain/entity"
	"github.com/Asjad-cell/HealthLink/internal/usecase"
	"github.com/Asjad-cell/HealthLink/pkg/response"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type AuditLogHandler struct {
	auditLogUsecase usecase.AuditLogUsecase
}

func NewAuditLogHandler(auditLogUsecase usecase.AuditLogUsecase) *AuditLogHandler {
	return &AuditLogHandler{
		auditLogUsecase: auditLogUsecase,
	}
}

func (h *AuditLogHandler) GetAuditLog(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	auditLogID, err := strconv.ParseInt(vars["id"], 10, 64)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid audit log ID", nil)
		return
	}

	auditLog, err := h.auditLogUsecase.GetAuditLog(r.Context(), auditLogID)
	if err != nil {
		writeError(w, err, "Failed to get audit log")
		return
	}

	response.Success(w, http.StatusOK, "Audit log retrieved successfully", auditLog)
}

// GetAllAuditLogs accepts optional user_id and action filters.
func (h *AuditLogHandler) GetAllAuditLogs(w http.ResponseWriter, r *http.Request) {
	page, limit, err := pagination(r)
	if err != nil {
		writeError(w, err, "Failed to get audit logs")
		return
	}

	filter := entity.AuditLogFilter{Action: r.URL.Query().Get("action")}
	if raw := r.URL.Query().Get("user_id"); raw != "" {
		userID, err := uuid.Parse(raw)
		if err != nil {
			response.Error(w, http.StatusBadRequest, "Invalid user ID", nil)
			return
		}
		filter.UserID = &userID
	}

	logs, err := h.auditLogUsecase.GetAllAuditLogs(r.Context(), filter, page, limit)
	if err != nil {
		writeError(w, err, "Failed to get audit logs")
		return
	}

	meta := response.NewMeta(logs.Page, logs.Limit, logs.Total)
	response.SuccessWithMeta(w, http.StatusOK, "Audit logs retrieved successfully", logs.Logs, meta)
}
