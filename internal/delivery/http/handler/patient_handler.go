package handler

import (
	"encoding/json"
	"net/http"

	"healthlink/internal/delivery/dto"
	"healthlink/internal/delivery/http/middleware"
	"healthlink/internal/usecase"
	"healthlink/pkg/response"
	"healthlink/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type PatientHandler struct {
	patientUsecase usecase.PatientUsecase
	validator      *validator.CustomValidator
}

func NewPatientHandler(patientUsecase usecase.PatientUsecase, validator *validator.CustomValidator) *PatientHandler {
	return &PatientHandler{
		patientUsecase: patientUsecase,
		validator:      validator,
	}
}

// GetAll lists all patients
// @Summary List patients
// @Tags Patients
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Router /patients [get]
func (h *PatientHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	patients, err := h.patientUsecase.GetAll(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get patients")
		return
	}

	response.Success(w, http.StatusOK, "Patients retrieved successfully", patients)
}

// GetByID returns one patient
// @Summary Get patient
// @Tags Patients
// @Security BearerAuth
// @Produce json
// @Param id path string true "Patient ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /patients/{id} [get]
func (h *PatientHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	patientID, err := uuid.Parse(vars["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid patient ID", nil)
		return
	}

	patient, err := h.patientUsecase.GetByID(r.Context(), patientID)
	if err != nil {
		switch err {
		case usecase.ErrPatientNotFound:
			response.NotFound(w, "Patient not found")
		default:
			response.InternalServerError(w, "Failed to get patient")
		}
		return
	}

	response.Success(w, http.StatusOK, "Patient retrieved successfully", patient)
}

// UpdateMe modifies the authenticated patient's own profile
// @Summary Update my profile
// @Tags Patients
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.UpdatePatientRequest true "Update Patient Request"
// @Success 200 {object} response.Response
// @Router /patients/me [put]
func (h *PatientHandler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "")
		return
	}

	var req dto.UpdatePatientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	patient, err := h.patientUsecase.Update(r.Context(), userID, &req)
	if err != nil {
		switch err {
		case usecase.ErrPatientNotFound:
			response.NotFound(w, "Patient not found")
		default:
			response.InternalServerError(w, "Failed to update patient")
		}
		return
	}

	response.Success(w, http.StatusOK, "Patient updated successfully", patient)
}
