package converter

import (
	"healthlink/internal/delivery/dto"
	"healthlink/internal/domain/entity"
)

// ReferralToResponse converts a Referral entity to ReferralResponse DTO
func ReferralToResponse(referral *entity.Referral) *dto.ReferralResponse {
	if referral == nil {
		return nil
	}

	response := &dto.ReferralResponse{
		ID:                      referral.ID,
		PatientID:               referral.PatientID,
		ReferringPractitionerID: referral.ReferringPractitionerID,
		ReferredPractitionerID:  referral.ReferredPractitionerID,
		FacilityID:              referral.FacilityID,
		Specialty:               referral.Specialty,
		Reason:                  referral.Reason,
		Urgency:                 string(referral.Urgency),
		Status:                  string(referral.Status),
		Notes:                   referral.Notes,
		DecisionNotes:           referral.DecisionNotes,
		Summary:                 referral.Summary,
		AppointmentCreated:      referral.AppointmentCreated,
		AppointmentID:           referral.AppointmentID,
		ExpiryDate:              referral.ExpiryDate,
		InsuranceStatus:         string(referral.InsuranceStatus),
		InsuranceNotes:          referral.InsuranceNotes,
		CreatedAt:               referral.CreatedAt,
		UpdatedAt:               referral.UpdatedAt,
	}

	if referral.Facility != nil {
		response.Facility = FacilityToResponse(referral.Facility)
	}

	return response
}

// ReferralsToResponses converts a slice of Referral entities to slice of ReferralResponse DTOs
func ReferralsToResponses(referrals []entity.Referral) []dto.ReferralResponse {
	responses := make([]dto.ReferralResponse, len(referrals))
	for i, referral := range referrals {
		resp := ReferralToResponse(&referral)
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}
