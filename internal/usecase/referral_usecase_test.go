package usecase

import (
	"context"
	"testing"
	"time"

	"healthlink/internal/delivery/dto"
	"healthlink/internal/domain/entity"
	"healthlink/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedFacility(t *testing.T, db *gorm.DB, specialties []string, accepting bool) uuid.UUID {
	t.Helper()

	facility := &entity.Facility{
		ID:                uuid.New(),
		Name:              "City Heart Center",
		Specialties:       entity.StringList(specialties),
		AcceptingPatients: &accepting,
	}
	require.NoError(t, db.Create(facility).Error)

	return facility.ID
}

func referralRequest(patientID uuid.UUID, referredID *uuid.UUID, facilityID *uuid.UUID) *dto.CreateReferralRequest {
	return &dto.CreateReferralRequest{
		PatientID:              patientID,
		ReferredPractitionerID: referredID,
		FacilityID:             facilityID,
		Specialty:              "cardiology",
		Reason:                 "persistent arrhythmia",
		Urgency:                string(entity.UrgencyRoutine),
	}
}

func TestCreateReferral(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	patientID := seedPatient(t, env.db)
	referringID := seedPractitioner(t, env.db)
	referredID := seedPractitioner(t, env.db)

	result, err := env.referrals.Create(ctx, referringID, referralRequest(patientID, &referredID, nil))
	require.NoError(t, err)

	assert.Equal(t, string(entity.ReferralStatusPending), result.Status)
	assert.Equal(t, string(entity.InsurancePending), result.InsuranceStatus)
	assert.False(t, result.AppointmentCreated)
	assert.Nil(t, result.AppointmentID)

	// Expiry is pushed out by the configured window.
	expectedExpiry := time.Now().UTC().AddDate(0, 0, 30)
	assert.WithinDuration(t, expectedExpiry, result.ExpiryDate, time.Minute)

	assert.Equal(t, []string{service.EventReferralCreated}, env.dispatcher.eventTypes())
}

func TestCreateReferralTargetRequired(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	patientID := seedPatient(t, env.db)
	referringID := seedPractitioner(t, env.db)

	_, err := env.referrals.Create(ctx, referringID, referralRequest(patientID, nil, nil))
	assert.ErrorIs(t, err, ErrReferralTargetRequired)
}

func TestCreateReferralToFacility(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	patientID := seedPatient(t, env.db)
	referringID := seedPractitioner(t, env.db)

	t.Run("facility offers specialty", func(t *testing.T) {
		facilityID := seedFacility(t, env.db, []string{"Cardiology", "neurology"}, true)
		result, err := env.referrals.Create(ctx, referringID, referralRequest(patientID, nil, &facilityID))
		require.NoError(t, err)
		require.NotNil(t, result.FacilityID)
		assert.Equal(t, facilityID, *result.FacilityID)
	})

	t.Run("specialty not offered", func(t *testing.T) {
		facilityID := seedFacility(t, env.db, []string{"orthopedics"}, true)
		_, err := env.referrals.Create(ctx, referringID, referralRequest(patientID, nil, &facilityID))
		assert.ErrorIs(t, err, ErrSpecialtyNotOffered)
	})

	t.Run("facility not accepting patients", func(t *testing.T) {
		facilityID := seedFacility(t, env.db, []string{"cardiology"}, false)
		_, err := env.referrals.Create(ctx, referringID, referralRequest(patientID, nil, &facilityID))
		assert.ErrorIs(t, err, ErrFacilityNotAccepting)
	})

	t.Run("unknown facility", func(t *testing.T) {
		unknown := uuid.New()
		_, err := env.referrals.Create(ctx, referringID, referralRequest(patientID, nil, &unknown))
		assert.ErrorIs(t, err, ErrFacilityNotFound)
	})
}

func TestDecideReferral(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	patientID := seedPatient(t, env.db)
	referringID := seedPractitioner(t, env.db)
	referredID := seedPractitioner(t, env.db)

	t.Run("accept", func(t *testing.T) {
		referral := seedReferral(t, env.db, patientID, referringID, &referredID)
		result, err := env.referrals.Decide(ctx, referredID, entity.RoleIDPractitioner, referral.ID, &dto.DecideReferralRequest{
			Decision: "accept",
			Notes:    "can see the patient next week",
		})
		require.NoError(t, err)
		assert.Equal(t, string(entity.ReferralStatusAccepted), result.Status)
		assert.Equal(t, "can see the patient next week", result.DecisionNotes)
		assert.Contains(t, env.dispatcher.eventTypes(), service.EventReferralDecided)
	})

	t.Run("reject", func(t *testing.T) {
		referral := seedReferral(t, env.db, patientID, referringID, &referredID)
		result, err := env.referrals.Decide(ctx, referredID, entity.RoleIDPractitioner, referral.ID, &dto.DecideReferralRequest{
			Decision: "reject",
			Notes:    "outside my subspecialty",
		})
		require.NoError(t, err)
		assert.Equal(t, string(entity.ReferralStatusRejected), result.Status)
	})

	t.Run("already decided", func(t *testing.T) {
		referral := seedReferral(t, env.db, patientID, referringID, &referredID)
		_, err := env.referrals.Decide(ctx, referredID, entity.RoleIDPractitioner, referral.ID, &dto.DecideReferralRequest{Decision: "accept"})
		require.NoError(t, err)

		_, err = env.referrals.Decide(ctx, referredID, entity.RoleIDPractitioner, referral.ID, &dto.DecideReferralRequest{Decision: "reject"})
		assert.ErrorIs(t, err, ErrReferralInvalidState)
	})

	t.Run("not addressed to actor", func(t *testing.T) {
		referral := seedReferral(t, env.db, patientID, referringID, &referredID)
		otherID := seedPractitioner(t, env.db)
		_, err := env.referrals.Decide(ctx, otherID, entity.RoleIDPractitioner, referral.ID, &dto.DecideReferralRequest{Decision: "accept"})
		assert.ErrorIs(t, err, ErrReferralNotOwned)
	})

	t.Run("admin may decide", func(t *testing.T) {
		referral := seedReferral(t, env.db, patientID, referringID, &referredID)
		adminID := seedUser(t, env.db, entity.RoleIDAdmin)
		_, err := env.referrals.Decide(ctx, adminID, entity.RoleIDAdmin, referral.ID, &dto.DecideReferralRequest{Decision: "accept"})
		assert.NoError(t, err)
	})

	t.Run("unknown referral", func(t *testing.T) {
		_, err := env.referrals.Decide(ctx, referredID, entity.RoleIDPractitioner, uuid.New(), &dto.DecideReferralRequest{Decision: "accept"})
		assert.ErrorIs(t, err, ErrReferralNotFound)
	})
}

func TestDecideReferralExpired(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	patientID := seedPatient(t, env.db)
	referringID := seedPractitioner(t, env.db)
	referredID := seedPractitioner(t, env.db)

	referral := seedReferral(t, env.db, patientID, referringID, &referredID)
	referral.ExpiryDate = time.Now().UTC().AddDate(0, 0, -1)
	require.NoError(t, env.db.Save(referral).Error)

	_, err := env.referrals.Decide(ctx, referredID, entity.RoleIDPractitioner, referral.ID, &dto.DecideReferralRequest{Decision: "accept"})
	assert.ErrorIs(t, err, ErrReferralExpired)
}

func TestCompleteReferral(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	patientID := seedPatient(t, env.db)
	referringID := seedPractitioner(t, env.db)
	referredID := seedPractitioner(t, env.db)

	referral := seedReferral(t, env.db, patientID, referringID, &referredID)

	// A pending referral cannot be completed.
	_, err := env.referrals.Complete(ctx, referredID, referral.ID, &dto.CompleteReferralRequest{Summary: "seen"})
	assert.ErrorIs(t, err, ErrReferralInvalidState)

	_, err = env.referrals.Decide(ctx, referredID, entity.RoleIDPractitioner, referral.ID, &dto.DecideReferralRequest{Decision: "accept"})
	require.NoError(t, err)

	result, err := env.referrals.Complete(ctx, referredID, referral.ID, &dto.CompleteReferralRequest{Summary: "treated outside the booking system"})
	require.NoError(t, err)
	assert.Equal(t, string(entity.ReferralStatusCompleted), result.Status)
	assert.Equal(t, "treated outside the booking system", result.Summary)
}

func TestVerifyInsurance(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	patientID := seedPatient(t, env.db)
	referringID := seedPractitioner(t, env.db)
	referredID := seedPractitioner(t, env.db)

	referral := seedReferral(t, env.db, patientID, referringID, &referredID)

	result, err := env.referrals.VerifyInsurance(ctx, referredID, referral.ID, &dto.VerifyInsuranceRequest{
		Status: string(entity.InsuranceVerified),
		Notes:  "covered under plan A",
	})
	require.NoError(t, err)
	assert.Equal(t, string(entity.InsuranceVerified), result.InsuranceStatus)
	assert.Equal(t, "covered under plan A", result.InsuranceNotes)

	// A later re-check appends rather than overwrites.
	result, err = env.referrals.VerifyInsurance(ctx, referredID, referral.ID, &dto.VerifyInsuranceRequest{
		Status: string(entity.InsuranceDenied),
		Notes:  "plan lapsed",
	})
	require.NoError(t, err)
	assert.Equal(t, string(entity.InsuranceDenied), result.InsuranceStatus)
	assert.Equal(t, "covered under plan A\nplan lapsed", result.InsuranceNotes)

	// Insurance state is independent of the referral lifecycle.
	updated := env.loadReferral(t, referral.ID)
	assert.Equal(t, entity.ReferralStatusPending, updated.Status)
}

func TestReferralQueries(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	patientID := seedPatient(t, env.db)
	referringID := seedPractitioner(t, env.db)
	referredID := seedPractitioner(t, env.db)

	first := seedReferral(t, env.db, patientID, referringID, &referredID)
	seedReferral(t, env.db, patientID, referringID, &referredID)

	byID, err := env.referrals.GetByID(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, byID.ID)

	_, err = env.referrals.GetByID(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrReferralNotFound)

	byPatient, err := env.referrals.GetByPatient(ctx, patientID)
	require.NoError(t, err)
	assert.Equal(t, 2, byPatient.Total)

	outgoing, err := env.referrals.GetOutgoing(ctx, referringID)
	require.NoError(t, err)
	assert.Equal(t, 2, outgoing.Total)

	incoming, err := env.referrals.GetIncoming(ctx, referredID)
	require.NoError(t, err)
	assert.Equal(t, 2, incoming.Total)

	// The referred practitioner made no referrals of their own.
	outgoing, err = env.referrals.GetOutgoing(ctx, referredID)
	require.NoError(t, err)
	assert.Equal(t, 0, outgoing.Total)
}
