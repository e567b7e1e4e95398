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

type ReferralHandler struct {
	referralUsecase usecase.ReferralUsecase
	validator       *validator.CustomValidator
}

func NewReferralHandler(referralUsecase usecase.ReferralUsecase, validator *validator.CustomValidator) *ReferralHandler {
	return &ReferralHandler{
		referralUsecase: referralUsecase,
		validator:       validator,
	}
}

// Create writes a new referral from the authenticated practitioner
// @Summary Create referral
// @Tags Referrals
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.CreateReferralRequest true "Create Referral Request"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /referrals [post]
func (h *ReferralHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "")
		return
	}

	var req dto.CreateReferralRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	referral, err := h.referralUsecase.Create(r.Context(), userID, &req)
	if err != nil {
		h.writeReferralError(w, err)
		return
	}

	response.Success(w, http.StatusCreated, "Referral created successfully", referral)
}

// Decide records the receiving side's accept or reject decision
// @Summary Decide referral
// @Tags Referrals
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Referral ID"
// @Param request body dto.DecideReferralRequest true "Decide Referral Request"
// @Success 200 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /referrals/{id}/decide [put]
func (h *ReferralHandler) Decide(w http.ResponseWriter, r *http.Request) {
	userID, roleID, referralID, ok := h.actorAndID(w, r)
	if !ok {
		return
	}

	var req dto.DecideReferralRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	referral, err := h.referralUsecase.Decide(r.Context(), userID, roleID, referralID, &req)
	if err != nil {
		h.writeReferralError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Referral decision recorded", referral)
}

// Complete closes out an accepted referral
// @Summary Complete referral
// @Tags Referrals
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Referral ID"
// @Param request body dto.CompleteReferralRequest true "Complete Referral Request"
// @Success 200 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /referrals/{id}/complete [put]
func (h *ReferralHandler) Complete(w http.ResponseWriter, r *http.Request) {
	userID, _, referralID, ok := h.actorAndID(w, r)
	if !ok {
		return
	}

	var req dto.CompleteReferralRequest
	json.NewDecoder(r.Body).Decode(&req)

	referral, err := h.referralUsecase.Complete(r.Context(), userID, referralID, &req)
	if err != nil {
		h.writeReferralError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Referral completed successfully", referral)
}

// VerifyInsurance updates the insurance verification sub-state
// @Summary Verify referral insurance
// @Tags Referrals
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Referral ID"
// @Param request body dto.VerifyInsuranceRequest true "Verify Insurance Request"
// @Success 200 {object} response.Response
// @Router /referrals/{id}/insurance [put]
func (h *ReferralHandler) VerifyInsurance(w http.ResponseWriter, r *http.Request) {
	userID, _, referralID, ok := h.actorAndID(w, r)
	if !ok {
		return
	}

	var req dto.VerifyInsuranceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	referral, err := h.referralUsecase.VerifyInsurance(r.Context(), userID, referralID, &req)
	if err != nil {
		h.writeReferralError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Insurance status updated", referral)
}

// GetMyReferrals lists the authenticated patient's referrals
// @Summary List my referrals
// @Tags Referrals
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Router /referrals/me [get]
func (h *ReferralHandler) GetMyReferrals(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "")
		return
	}

	referrals, err := h.referralUsecase.GetByPatient(r.Context(), userID)
	if err != nil {
		response.InternalServerError(w, "Failed to get referrals")
		return
	}

	response.Success(w, http.StatusOK, "Referrals retrieved successfully", referrals)
}

// GetOutgoing lists referrals written by the authenticated practitioner
// @Summary List outgoing referrals
// @Tags Referrals
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Router /referrals/outgoing [get]
func (h *ReferralHandler) GetOutgoing(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "")
		return
	}

	referrals, err := h.referralUsecase.GetOutgoing(r.Context(), userID)
	if err != nil {
		response.InternalServerError(w, "Failed to get referrals")
		return
	}

	response.Success(w, http.StatusOK, "Referrals retrieved successfully", referrals)
}

// GetIncoming lists referrals addressed to the authenticated practitioner
// @Summary List incoming referrals
// @Tags Referrals
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Router /referrals/incoming [get]
func (h *ReferralHandler) GetIncoming(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "")
		return
	}

	referrals, err := h.referralUsecase.GetIncoming(r.Context(), userID)
	if err != nil {
		response.InternalServerError(w, "Failed to get referrals")
		return
	}

	response.Success(w, http.StatusOK, "Referrals retrieved successfully", referrals)
}

// GetByID returns one referral
// @Summary Get referral
// @Tags Referrals
// @Security BearerAuth
// @Produce json
// @Param id path string true "Referral ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /referrals/{id} [get]
func (h *ReferralHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	referralID, err := uuid.Parse(vars["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid referral ID", nil)
		return
	}

	referral, err := h.referralUsecase.GetByID(r.Context(), referralID)
	if err != nil {
		h.writeReferralError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Referral retrieved successfully", referral)
}

func (h *ReferralHandler) actorAndID(w http.ResponseWriter, r *http.Request) (uuid.UUID, int, uuid.UUID, bool) {
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
	referralID, err := uuid.Parse(vars["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid referral ID", nil)
		return uuid.Nil, 0, uuid.Nil, false
	}

	return userID, roleID, referralID, true
}

func (h *ReferralHandler) writeReferralError(w http.ResponseWriter, err error) {
	switch err {
	case usecase.ErrReferralNotFound:
		response.NotFound(w, "Referral not found")
	case usecase.ErrPractitionerNotFound:
		response.NotFound(w, "Practitioner not found")
	case usecase.ErrPatientNotFound:
		response.NotFound(w, "Patient not found")
	case usecase.ErrFacilityNotFound:
		response.NotFound(w, "Facility not found")
	case usecase.ErrReferralNotOwned:
		response.Forbidden(w, "Referral is not addressed to you")
	case usecase.ErrReferralTargetRequired:
		response.Error(w, http.StatusBadRequest, "A receiving practitioner or facility is required", nil)
	case usecase.ErrReferralInvalidState:
		response.Conflict(w, "Referral status does not allow this operation")
	case usecase.ErrReferralExpired:
		response.Conflict(w, "Referral has expired")
	case usecase.ErrSpecialtyNotOffered:
		response.Error(w, http.StatusUnprocessableEntity, "Facility does not offer the requested specialty", nil)
	case usecase.ErrFacilityNotAccepting:
		response.Error(w, http.StatusUnprocessableEntity, "Facility is not accepting new patients", nil)
	default:
		response.InternalServerError(w, "Failed to process referral")
	}
}
