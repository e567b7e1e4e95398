package converter

import (
	"healthlink/internal/delivery/dto"
	"healthlink/internal/domain/entity"
)

// FacilityToResponse converts a Facility entity to FacilityResponse DTO
func FacilityToResponse(facility *entity.Facility) *dto.FacilityResponse {
	if facility == nil {
		return nil
	}

	return &dto.FacilityResponse{
		ID:                facility.ID,
		Name:              facility.Name,
		Address:           facility.Address,
		PhoneNumber:       facility.PhoneNumber,
		Email:             facility.Email,
		Specialties:       facility.Specialties,
		AcceptingPatients: facility.AcceptingPatients,
		CreatedAt:         facility.CreatedAt,
		UpdatedAt:         facility.UpdatedAt,
	}
}

// FacilitiesToResponses converts a slice of Facility entities to response DTOs
func FacilitiesToResponses(facilities []entity.Facility) []dto.FacilityResponse {
	responses := make([]dto.FacilityResponse, len(facilities))
	for i, facility := range facilities {
		resp := FacilityToResponse(&facility)
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}
