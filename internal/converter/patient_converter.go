package converter

import (
	"healthlink/internal/delivery/dto"
	"healthlink/internal/domain/entity"
)

// PatientToResponse converts a PatientProfile entity to PatientResponse DTO
func PatientToResponse(profile *entity.PatientProfile) *dto.PatientResponse {
	if profile == nil {
		return nil
	}

	response := &dto.PatientResponse{
		ID:              profile.UserID,
		MedicalRecordNo: profile.MedicalRecordNo,
		PhoneNumber:     profile.PhoneNumber,
		DateOfBirth:     profile.DateOfBirth.Format("2006-01-02"),
		Gender:          profile.Gender,
		Address:         profile.Address,
		InsuranceNumber: profile.InsuranceNumber,
	}

	if profile.User.Email != "" {
		response.Email = profile.User.Email
		response.FullName = profile.User.FullName
		response.IsActive = profile.User.IsActive
		response.CreatedAt = profile.User.CreatedAt
		response.UpdatedAt = profile.User.UpdatedAt
	}

	return response
}

// PatientProfileToResponse converts profile-only data, without user fields
func PatientProfileToResponse(profile *entity.PatientProfile) *dto.PatientProfileResponse {
	if profile == nil {
		return nil
	}

	return &dto.PatientProfileResponse{
		UserID:          profile.UserID,
		MedicalRecordNo: profile.MedicalRecordNo,
		PhoneNumber:     profile.PhoneNumber,
		DateOfBirth:     profile.DateOfBirth.Format("2006-01-02"),
		Gender:          profile.Gender,
		Address:         profile.Address,
		InsuranceNumber: profile.InsuranceNumber,
	}
}

// PatientsToResponses converts a slice of PatientProfile entities to response DTOs
func PatientsToResponses(profiles []entity.PatientProfile) []dto.PatientResponse {
	responses := make([]dto.PatientResponse, len(profiles))
	for i, profile := range profiles {
		resp := PatientToResponse(&profile)
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}
