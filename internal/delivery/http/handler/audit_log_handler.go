package handler

import (
	"net/http"
	"strconv"

	"healthlink/internal/usecase"
	"healthlink/pkg/response"

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

// GetAll lists all audit log entries
// @Summary List audit logs
// @Tags AuditLogs
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Router /audit-logs [get]
func (h *AuditLogHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	logs, err := h.auditLogUsecase.GetAllAuditLogs(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get audit logs")
		return
	}

	response.Success(w, http.StatusOK, "Audit logs retrieved successfully", logs)
}

// GetByID returns one audit log entry
// @Summary Get audit log
// @Tags AuditLogs
// @Security BearerAuth
// @Produce json
// @Param id path int true "Audit Log ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /audit-logs/{id} [get]
func (h *AuditLogHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, err := strconv.ParseInt(vars["id"], 10, 64)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid audit log ID", nil)
		return
	}

	auditLog, err := h.auditLogUsecase.GetAuditLog(r.Context(), id)
	if err != nil {
		switch err {
		case usecase.ErrAuditLogNotFound:
			response.NotFound(w, "Audit log not found")
		default:
			response.InternalServerError(w, "Failed to get audit log")
		}
		return
	}

	response.Success(w, http.StatusOK, "Audit log retrieved successfully", auditLog)
}
