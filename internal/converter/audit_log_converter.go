package converter

import (
	"healthlink/internal/delivery/dto"
	"healthlink/internal/domain/entity"
)

// AuditLogToResponse converts an AuditLog entity to AuditLogResponse DTO
func AuditLogToResponse(log *entity.AuditLog) *dto.AuditLogResponse {
	if log == nil {
		return nil
	}

	response := &dto.AuditLogResponse{
		ID:        log.ID,
		Action:    log.Action,
		Metadata:  log.Metadata,
		CreatedAt: log.CreatedAt,
	}

	if log.User != nil {
		response.User = dto.UserResponse{
			ID:       log.User.ID,
			Email:    log.User.Email,
			FullName: log.User.FullName,
		}
	}

	return response
}

// AuditLogsToResponses converts a slice of AuditLog entities to response DTOs
func AuditLogsToResponses(logs []entity.AuditLog) []dto.AuditLogResponse {
	responses := make([]dto.AuditLogResponse, len(logs))
	for i, log := range logs {
		resp := AuditLogToResponse(&log)
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}
