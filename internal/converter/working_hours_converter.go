package converter

import (
	"healthlink/internal/delivery/dto"
	"healthlink/internal/domain/entity"
)

// WorkingHoursToResponse converts a WorkingHours entity to WorkingHoursResponse DTO
func WorkingHoursToResponse(rule *entity.WorkingHours) *dto.WorkingHoursResponse {
	if rule == nil {
		return nil
	}

	return &dto.WorkingHoursResponse{
		Weekday:     int(rule.Weekday),
		StartTime:   rule.StartClock(),
		EndTime:     rule.EndClock(),
		IsAvailable: rule.IsAvailable,
	}
}

// WorkingHoursToResponses converts a slice of WorkingHours entities to response DTOs
func WorkingHoursToResponses(rules []entity.WorkingHours) []dto.WorkingHoursResponse {
	responses := make([]dto.WorkingHoursResponse, len(rules))
	for i, rule := range rules {
		resp := WorkingHoursToResponse(&rule)
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}
