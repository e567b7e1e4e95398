package usecase

import (
	"errors"

	"healthlink/internal/domain/entity"
	"healthlink/internal/domain/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrReferralNotFound        = errors.New("referral not found")
	ErrReferralAlreadyLinked   = errors.New("referral already has an appointment")
	ErrReferralInvalidState    = errors.New("referral status does not allow this operation")
	ErrReferralPatientMismatch = errors.New("appointment patient does not match referral patient")
)

// ConsistencyCoordinator is the only component that mutates an appointment
// and its referral together. Every method takes the transaction handle of
// the surrounding appointment operation, so both aggregates reach their new
// state or neither does.
//
// Invariant kept here: referral.appointment_created == true iff exactly one
// active appointment references the referral.
type ConsistencyCoordinator struct {
	log          *logrus.Logger
	referralRepo repository.ReferralRepository
}

func NewConsistencyCoordinator(log *logrus.Logger, referralRepo repository.ReferralRepository) *ConsistencyCoordinator {
	return &ConsistencyCoordinator{
		log:          log,
		referralRepo: referralRepo,
	}
}

// OnAppointmentCreatedFromReferral links the freshly inserted appointment
// to its referral and force-transitions the referral to accepted.
func (c *ConsistencyCoordinator) OnAppointmentCreatedFromReferral(tx *gorm.DB, appointment *entity.Appointment) error {
	if appointment.ReferralID == nil {
		return nil
	}

	referral, err := c.referralRepo.FindByID(tx, *appointment.ReferralID)
	if err != nil {
		c.log.Warnf("Failed to find referral %s: %+v", appointment.ReferralID, err)
		return err
	}
	if referral == nil {
		return ErrReferralNotFound
	}

	if referral.AppointmentCreated {
		return ErrReferralAlreadyLinked
	}
	if referral.IsTerminal() {
		return ErrReferralInvalidState
	}
	if referral.PatientID != appointment.PatientID {
		return ErrReferralPatientMismatch
	}

	// Booking an appointment implies acceptance, even when the receiving
	// side never recorded an explicit decision.
	referral.Status = entity.ReferralStatusAccepted
	referral.AppointmentCreated = true
	referral.AppointmentID = &appointment.ID

	if err := c.referralRepo.Update(tx, referral); err != nil {
		c.log.Warnf("Failed to link referral %s: %+v", referral.ID, err)
		return err
	}

	return nil
}

// OnAppointmentCancelled reopens the referral so the patient can book
// again: back to pending with the linkage cleared.
func (c *ConsistencyCoordinator) OnAppointmentCancelled(tx *gorm.DB, appointment *entity.Appointment) error {
	if appointment.ReferralID == nil {
		return nil
	}

	referral, err := c.referralRepo.FindByID(tx, *appointment.ReferralID)
	if err != nil {
		c.log.Warnf("Failed to find referral %s: %+v", appointment.ReferralID, err)
		return err
	}
	if referral == nil {
		return ErrReferralNotFound
	}

	referral.Status = entity.ReferralStatusPending
	referral.AppointmentCreated = false
	referral.AppointmentID = nil

	if err := c.referralRepo.Update(tx, referral); err != nil {
		c.log.Warnf("Failed to unlink referral %s: %+v", referral.ID, err)
		return err
	}

	return nil
}

// OnAppointmentCompleted marks the referral fulfilled. Unlike cancellation
// this never reverts anything: a fulfilled referral stays fulfilled.
func (c *ConsistencyCoordinator) OnAppointmentCompleted(tx *gorm.DB, appointment *entity.Appointment) error {
	if appointment.ReferralID == nil {
		return nil
	}

	referral, err := c.referralRepo.FindByID(tx, *appointment.ReferralID)
	if err != nil {
		c.log.Warnf("Failed to find referral %s: %+v", appointment.ReferralID, err)
		return err
	}
	if referral == nil {
		return ErrReferralNotFound
	}

	if !referral.CanTransitionTo(entity.ReferralStatusCompleted) {
		return ErrReferralInvalidState
	}

	referral.Status = entity.ReferralStatusCompleted

	if err := c.referralRepo.Update(tx, referral); err != nil {
		c.log.Warnf("Failed to complete referral %s: %+v", referral.ID, err)
		return err
	}

	return nil
}
