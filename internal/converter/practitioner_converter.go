package converter

import (
	"healthlink/internal/delivery/dto"
	"healthlink/internal/domain/entity"
)

// PractitionerToResponse converts a PractitionerProfile entity to PractitionerResponse DTO
func PractitionerToResponse(profile *entity.PractitionerProfile) *dto.PractitionerResponse {
	if profile == nil {
		return nil
	}

	response := &dto.PractitionerResponse{
		ID:             profile.UserID,
		LicenseNumber:  profile.LicenseNumber,
		Specialization: profile.Specialization,
		Biography:      profile.Biography,
	}

	if profile.User.Email != "" {
		response.Email = profile.User.Email
		response.FullName = profile.User.FullName
		response.IsActive = profile.User.IsActive
	}

	if len(profile.WorkingHours) > 0 {
		response.WorkingHours = WorkingHoursToResponses(profile.WorkingHours)
	}

	return response
}

// PractitionerProfileToResponse converts profile-only data, without user fields
func PractitionerProfileToResponse(profile *entity.PractitionerProfile) *dto.PractitionerProfileResponse {
	if profile == nil {
		return nil
	}

	return &dto.PractitionerProfileResponse{
		UserID:         profile.UserID,
		LicenseNumber:  profile.LicenseNumber,
		Specialization: profile.Specialization,
		Biography:      profile.Biography,
	}
}

// PractitionersToResponses converts a slice of PractitionerProfile entities to response DTOs
func PractitionersToResponses(profiles []entity.PractitionerProfile) []dto.PractitionerResponse {
	responses := make([]dto.PractitionerResponse, len(profiles))
	for i, profile := range profiles {
		resp := PractitionerToResponse(&profile)
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}
