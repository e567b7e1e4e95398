package converter

import (
	"healthlink/internal/delivery/dto"
	"healthlink/internal/domain/entity"

	"github.com/google/uuid"
)

// AppointmentToResponse converts an Appointment entity to AppointmentResponse DTO
func AppointmentToResponse(appointment *entity.Appointment) *dto.AppointmentResponse {
	if appointment == nil {
		return nil
	}

	response := &dto.AppointmentResponse{
		ID:              appointment.ID,
		PatientID:       appointment.PatientID,
		PractitionerID:  appointment.PractitionerID,
		ReferralID:      appointment.ReferralID,
		StartTime:       appointment.StartTime,
		EndTime:         appointment.End(),
		DurationMinutes: appointment.DurationMinutes,
		Status:          string(appointment.Status),
		Reason:          appointment.Reason,
		Notes:           appointment.Notes,

		CancelledBy:        appointment.CancelledBy,
		CancellationReason: appointment.CancellationReason,
		CancelledAt:        appointment.CancelledAt,

		Diagnosis:    appointment.Diagnosis,
		Treatment:    appointment.Treatment,
		Prescription: appointment.Prescription,
		FollowUp:     appointment.FollowUp,
		CompletedAt:  appointment.CompletedAt,

		CreatedAt: appointment.CreatedAt,
		UpdatedAt: appointment.UpdatedAt,
	}

	// Include practitioner info if available
	if appointment.Practitioner.UserID != uuid.Nil {
		response.Practitioner = PractitionerToResponse(&appointment.Practitioner)
	}

	return response
}

// AppointmentsToResponses converts a slice of Appointment entities to slice of AppointmentResponse DTOs
func AppointmentsToResponses(appointments []entity.Appointment) []dto.AppointmentResponse {
	responses := make([]dto.AppointmentResponse, len(appointments))
	for i, appointment := range appointments {
		resp := AppointmentToResponse(&appointment)
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}
