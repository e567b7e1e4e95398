package handler

import (
	"encoding/json"
	"net/http"

	"healthlink/internal/delivery/dto"
	"healthlink/internal/delivery/http/middleware"
	"healthlink/internal/scheduling"
	"healthlink/internal/usecase"
	"healthlink/pkg/response"
	"healthlink/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type AppointmentHandler struct {
	appointmentUsecase usecase.AppointmentUsecase
	validator          *validator.CustomValidator
}

func NewAppointmentHandler(appointmentUsecase usecase.AppointmentUsecase, validator *validator.CustomValidator) *AppointmentHandler {
	return &AppointmentHandler{
		appointmentUsecase: appointmentUsecase,
		validator:          validator,
	}
}

// Create books a new appointment for the authenticated patient
// @Summary Create appointment
// @Tags Appointments
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.CreateAppointmentRequest true "Create Appointment Request"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /appointments [post]
func (h *AppointmentHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "")
		return
	}

	var req dto.CreateAppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	appointment, err := h.appointmentUsecase.Create(r.Context(), userID, &req)
	if err != nil {
		h.writeAppointmentError(w, err)
		return
	}

	response.Success(w, http.StatusCreated, "Appointment created successfully", appointment)
}

// Reschedule moves an appointment to a new slot
// @Summary Reschedule appointment
// @Tags Appointments
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Appointment ID"
// @Param request body dto.RescheduleAppointmentRequest true "Reschedule Request"
// @Success 200 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /appointments/{id}/reschedule [put]
func (h *AppointmentHandler) Reschedule(w http.ResponseWriter, r *http.Request) {
	userID, roleID, appointmentID, ok := h.actorAndID(w, r)
	if !ok {
		return
	}

	var req dto.RescheduleAppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	appointment, err := h.appointmentUsecase.Reschedule(r.Context(), userID, roleID, appointmentID, &req)
	if err != nil {
		h.writeAppointmentError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Appointment rescheduled successfully", appointment)
}

// Cancel cancels an appointment
// @Summary Cancel appointment
// @Tags Appointments
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Appointment ID"
// @Success 200 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /appointments/{id}/cancel [put]
func (h *AppointmentHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	userID, roleID, appointmentID, ok := h.actorAndID(w, r)
	if !ok {
		return
	}

	var req dto.CancelAppointmentRequest
	json.NewDecoder(r.Body).Decode(&req)

	appointment, err := h.appointmentUsecase.Cancel(r.Context(), userID, roleID, appointmentID, &req)
	if err != nil {
		h.writeAppointmentError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Appointment cancelled successfully", appointment)
}

// Complete records the consultation outcome
// @Summary Complete appointment
// @Tags Appointments
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Appointment ID"
// @Param request body dto.CompleteAppointmentRequest true "Complete Request"
// @Success 200 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /appointments/{id}/complete [put]
func (h *AppointmentHandler) Complete(w http.ResponseWriter, r *http.Request) {
	userID, roleID, appointmentID, ok := h.actorAndID(w, r)
	if !ok {
		return
	}

	var req dto.CompleteAppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	appointment, err := h.appointmentUsecase.Complete(r.Context(), userID, roleID, appointmentID, &req)
	if err != nil {
		h.writeAppointmentError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Appointment completed successfully", appointment)
}

// MarkNoShow flags a missed appointment
// @Summary Mark appointment as no-show
// @Tags Appointments
// @Security BearerAuth
// @Produce json
// @Param id path string true "Appointment ID"
// @Success 200 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /appointments/{id}/no-show [put]
func (h *AppointmentHandler) MarkNoShow(w http.ResponseWriter, r *http.Request) {
	userID, roleID, appointmentID, ok := h.actorAndID(w, r)
	if !ok {
		return
	}

	appointment, err := h.appointmentUsecase.MarkNoShow(r.Context(), userID, roleID, appointmentID)
	if err != nil {
		h.writeAppointmentError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Appointment marked as no-show", appointment)
}

// GetMyAppointments lists the authenticated patient's appointments
// @Summary List my appointments
// @Tags Appointments
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Router /appointments/me [get]
func (h *AppointmentHandler) GetMyAppointments(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "")
		return
	}

	appointments, err := h.appointmentUsecase.GetByPatient(r.Context(), userID)
	if err != nil {
		response.InternalServerError(w, "Failed to get appointments")
		return
	}

	response.Success(w, http.StatusOK, "Appointments retrieved successfully", appointments)
}

// GetMyCalendar lists the authenticated practitioner's appointments
// @Summary List my calendar
// @Tags Appointments
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Router /appointments/calendar [get]
func (h *AppointmentHandler) GetMyCalendar(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "")
		return
	}

	appointments, err := h.appointmentUsecase.GetByPractitioner(r.Context(), userID)
	if err != nil {
		response.InternalServerError(w, "Failed to get appointments")
		return
	}

	response.Success(w, http.StatusOK, "Appointments retrieved successfully", appointments)
}

// GetByID returns one appointment
// @Summary Get appointment
// @Tags Appointments
// @Security BearerAuth
// @Produce json
// @Param id path string true "Appointment ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /appointments/{id} [get]
func (h *AppointmentHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	appointmentID, err := uuid.Parse(vars["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid appointment ID", nil)
		return
	}

	appointment, err := h.appointmentUsecase.GetByID(r.Context(), appointmentID)
	if err != nil {
		h.writeAppointmentError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Appointment retrieved successfully", appointment)
}

func (h *AppointmentHandler) actorAndID(w http.ResponseWriter, r *http.Request) (uuid.UUID, int, uuid.UUID, bool) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "")
		return uuid.Nil, 0, uuid.Nil, false
	}

	roleID, ok := middleware.GetRoleIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Role information not found")
		return uuid.Nil, 0, uuid.Nil, false
	}

	vars := mux.Vars(r)
	appointmentID, err := uuid.Parse(vars["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid appointment ID", nil)
		return uuid.Nil, 0, uuid.Nil, false
	}

	return userID, roleID, appointmentID, true
}

func (h *AppointmentHandler) writeAppointmentError(w http.ResponseWriter, err error) {
	switch err {
	case usecase.ErrAppointmentNotFound:
		response.NotFound(w, "Appointment not found")
	case usecase.ErrPractitionerNotFound:
		response.NotFound(w, "Practitioner not found")
	case usecase.ErrPatientNotFound:
		response.NotFound(w, "Patient not found")
	case usecase.ErrReferralNotFound:
		response.NotFound(w, "Referral not found")
	case usecase.ErrAppointmentNotOwned:
		response.Forbidden(w, "Appointment does not belong to you")
	case usecase.ErrSlotConflict:
		response.Conflict(w, "Slot conflicts with an existing appointment")
	case usecase.ErrSlotBusy:
		response.Conflict(w, "Slot is being booked by another request, try again")
	case usecase.ErrAppointmentInvalidState:
		response.Conflict(w, "Appointment status does not allow this operation")
	case usecase.ErrReferralAlreadyLinked:
		response.Conflict(w, "Referral already has an appointment")
	case usecase.ErrReferralInvalidState:
		response.Conflict(w, "Referral status does not allow booking")
	case usecase.ErrReferralPatientMismatch:
		response.Error(w, http.StatusBadRequest, "Referral belongs to a different patient", nil)
	case usecase.ErrInvalidStartTime:
		response.Error(w, http.StatusBadRequest, "Invalid start time, use RFC3339", nil)
	case usecase.ErrStartTimeInPast:
		response.Error(w, http.StatusBadRequest, "Start time is in the past", nil)
	case usecase.ErrDurationTooShort:
		response.Error(w, http.StatusBadRequest, "Duration is below the minimum", nil)
	case scheduling.ErrPractitionerUnavailable:
		response.Error(w, http.StatusUnprocessableEntity, "Practitioner is not available on this day", nil)
	case scheduling.ErrOutsideWorkingHours:
		response.Error(w, http.StatusUnprocessableEntity, "Requested slot is outside working hours", nil)
	default:
		response.InternalServerError(w, "Failed to process appointment")
	}
}
