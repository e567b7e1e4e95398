package handler

import (
	"encoding/json"
	"net/http"

	"healthlink/internal/delivery/dto"
	"healthlink/internal/delivery/http/middleware"
	"healthlink/internal/domain/entity"
	"healthlink/internal/usecase"
	"healthlink/pkg/response"
	"healthlink/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type PractitionerHandler struct {
	practitionerUsecase usecase.PractitionerUsecase
	workingHoursUsecase usecase.WorkingHoursUsecase
	validator           *validator.CustomValidator
}

func NewPractitionerHandler(
	practitionerUsecase usecase.PractitionerUsecase,
	workingHoursUsecase usecase.WorkingHoursUsecase,
	validator *validator.CustomValidator,
) *PractitionerHandler {
	return &PractitionerHandler{
		practitionerUsecase: practitionerUsecase,
		workingHoursUsecase: workingHoursUsecase,
		validator:           validator,
	}
}

// GetAll lists all practitioners
// @Summary List practitioners
// @Tags Practitioners
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Router /practitioners [get]
func (h *PractitionerHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	practitioners, err := h.practitionerUsecase.GetAll(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get practitioners")
		return
	}

	response.Success(w, http.StatusOK, "Practitioners retrieved successfully", practitioners)
}

// GetByID returns one practitioner with their working hours
// @Summary Get practitioner
// @Tags Practitioners
// @Security BearerAuth
// @Produce json
// @Param id path string true "Practitioner ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /practitioners/{id} [get]
func (h *PractitionerHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	practitionerID, err := uuid.Parse(vars["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid practitioner ID", nil)
		return
	}

	practitioner, err := h.practitionerUsecase.GetByID(r.Context(), practitionerID)
	if err != nil {
		switch err {
		case usecase.ErrPractitionerNotFound:
			response.NotFound(w, "Practitioner not found")
		default:
			response.InternalServerError(w, "Failed to get practitioner")
		}
		return
	}

	response.Success(w, http.StatusOK, "Practitioner retrieved successfully", practitioner)
}

// Update modifies a practitioner's profile
// @Summary Update practitioner
// @Tags Practitioners
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Practitioner ID"
// @Param request body dto.UpdatePractitionerRequest true "Update Practitioner Request"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /practitioners/{id} [put]
func (h *PractitionerHandler) Update(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	practitionerID, err := uuid.Parse(vars["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid practitioner ID", nil)
		return
	}

	var req dto.UpdatePractitionerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	practitioner, err := h.practitionerUsecase.Update(r.Context(), practitionerID, &req)
	if err != nil {
		switch err {
		case usecase.ErrPractitionerNotFound:
			response.NotFound(w, "Practitioner not found")
		case usecase.ErrEmailAlreadyExists:
			response.Conflict(w, "Email already registered")
		case usecase.ErrLicenseAlreadyExists:
			response.Conflict(w, "License number already registered")
		default:
			response.InternalServerError(w, "Failed to update practitioner")
		}
		return
	}

	response.Success(w, http.StatusOK, "Practitioner updated successfully", practitioner)
}

// SetWorkingHours replaces the authenticated practitioner's weekly rules
// @Summary Set working hours
// @Tags Practitioners
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.SetWorkingHoursRequest true "Set Working Hours Request"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /practitioners/working-hours [put]
func (h *PractitionerHandler) SetWorkingHours(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "")
		return
	}

	roleID, _ := middleware.GetRoleIDFromContext(r.Context())

	var req dto.SetWorkingHoursRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	// Practitioners manage their own schedule only, admins anyone's.
	if req.PractitionerID == uuid.Nil {
		req.PractitionerID = userID
	}
	if roleID != entity.RoleIDAdmin && req.PractitionerID != userID {
		response.Forbidden(w, "You can only manage your own working hours")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	rules, err := h.workingHoursUsecase.SetWorkingHours(r.Context(), userID, &req)
	if err != nil {
		switch err {
		case usecase.ErrPractitionerNotFound:
			response.NotFound(w, "Practitioner not found")
		case usecase.ErrInvalidClockFormat:
			response.Error(w, http.StatusBadRequest, "Invalid time format, use HH:MM", nil)
		case usecase.ErrInvalidTimeWindow:
			response.Error(w, http.StatusBadRequest, "Start time must be before end time", nil)
		case usecase.ErrDuplicateWeekday:
			response.Error(w, http.StatusBadRequest, "Duplicate weekday in rule set", nil)
		default:
			response.InternalServerError(w, "Failed to set working hours")
		}
		return
	}

	response.Success(w, http.StatusOK, "Working hours updated successfully", rules)
}

// GetWorkingHours lists a practitioner's weekly rules
// @Summary Get working hours
// @Tags Practitioners
// @Security BearerAuth
// @Produce json
// @Param id path string true "Practitioner ID"
// @Success 200 {object} response.Response
// @Router /practitioners/{id}/working-hours [get]
func (h *PractitionerHandler) GetWorkingHours(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	practitionerID, err := uuid.Parse(vars["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid practitioner ID", nil)
		return
	}

	rules, err := h.workingHoursUsecase.GetWorkingHours(r.Context(), practitionerID)
	if err != nil {
		response.InternalServerError(w, "Failed to get working hours")
		return
	}

	response.Success(w, http.StatusOK, "Working hours retrieved successfully", rules)
}
