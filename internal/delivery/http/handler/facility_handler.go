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

type FacilityHandler struct {
	facilityUsecase usecase.FacilityUsecase
	validator       *validator.CustomValidator
}

func NewFacilityHandler(facilityUsecase usecase.FacilityUsecase, validator *validator.CustomValidator) *FacilityHandler {
	return &FacilityHandler{
		facilityUsecase: facilityUsecase,
		validator:       validator,
	}
}

// Create registers a new facility
// @Summary Create facility
// @Tags Facilities
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.CreateFacilityRequest true "Create Facility Request"
// @Success 201 {object} response.Response
// @Router /facilities [post]
func (h *FacilityHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "")
		return
	}

	var req dto.CreateFacilityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	facility, err := h.facilityUsecase.Create(r.Context(), userID, &req)
	if err != nil {
		response.InternalServerError(w, "Failed to create facility")
		return
	}

	response.Success(w, http.StatusCreated, "Facility created successfully", facility)
}

// Update modifies a facility
// @Summary Update facility
// @Tags Facilities
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Facility ID"
// @Param request body dto.UpdateFacilityRequest true "Update Facility Request"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /facilities/{id} [put]
func (h *FacilityHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "")
		return
	}

	vars := mux.Vars(r)
	facilityID, err := uuid.Parse(vars["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid facility ID", nil)
		return
	}

	var req dto.UpdateFacilityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	facility, err := h.facilityUsecase.Update(r.Context(), userID, facilityID, &req)
	if err != nil {
		switch err {
		case usecase.ErrFacilityNotFound:
			response.NotFound(w, "Facility not found")
		default:
			response.InternalServerError(w, "Failed to update facility")
		}
		return
	}

	response.Success(w, http.StatusOK, "Facility updated successfully", facility)
}

// GetAll lists all facilities
// @Summary List facilities
// @Tags Facilities
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Router /facilities [get]
func (h *FacilityHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	facilities, err := h.facilityUsecase.GetAll(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get facilities")
		return
	}

	response.Success(w, http.StatusOK, "Facilities retrieved successfully", facilities)
}

// GetByID returns one facility
// @Summary Get facility
// @Tags Facilities
// @Security BearerAuth
// @Produce json
// @Param id path string true "Facility ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /facilities/{id} [get]
func (h *FacilityHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	facilityID, err := uuid.Parse(vars["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid facility ID", nil)
		return
	}

	facility, err := h.facilityUsecase.GetByID(r.Context(), facilityID)
	if err != nil {
		switch err {
		case usecase.ErrFacilityNotFound:
			response.NotFound(w, "Facility not found")
		default:
			response.InternalServerError(w, "Failed to get facility")
		}
		return
	}

	response.Success(w, http.StatusOK, "Facility retrieved successfully", facility)
}

// Delete removes a facility
// @Summary Delete facility
// @Tags Facilities
// @Security BearerAuth
// @Produce json
// @Param id path string true "Facility ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /facilities/{id} [delete]
func (h *FacilityHandler) Delete(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	facilityID, err := uuid.Parse(vars["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid facility ID", nil)
		return
	}

	if err := h.facilityUsecase.Delete(r.Context(), facilityID); err != nil {
		switch err {
		case usecase.ErrFacilityNotFound:
			response.NotFound(w, "Facility not found")
		default:
			response.InternalServerError(w, "Failed to delete facility")
		}
		return
	}

	response.Success(w, http.StatusOK, "Facility deleted successfully", nil)
}
