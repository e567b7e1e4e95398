package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestReferralCanTransitionTo(t *testing.T) {
	tests := []struct {
		from    ReferralStatus
		to      ReferralStatus
		allowed bool
	}{
		{ReferralStatusPending, ReferralStatusAccepted, true},
		{ReferralStatusPending, ReferralStatusRejected, true},
		{ReferralStatusPending, ReferralStatusCancelled, true},
		{ReferralStatusPending, ReferralStatusCompleted, false},
		{ReferralStatusAccepted, ReferralStatusCompleted, true},
		{ReferralStatusAccepted, ReferralStatusRejected, false},
		{ReferralStatusAccepted, ReferralStatusPending, false},
		{ReferralStatusRejected, ReferralStatusAccepted, false},
		{ReferralStatusCompleted, ReferralStatusPending, false},
		{ReferralStatusCancelled, ReferralStatusPending, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+" to "+string(tt.to), func(t *testing.T) {
			referral := Referral{Status: tt.from}
			assert.Equal(t, tt.allowed, referral.CanTransitionTo(tt.to))
		})
	}
}

func TestReferralIsTerminal(t *testing.T) {
	assert.False(t, (&Referral{Status: ReferralStatusPending}).IsTerminal())
	assert.False(t, (&Referral{Status: ReferralStatusAccepted}).IsTerminal())
	assert.True(t, (&Referral{Status: ReferralStatusRejected}).IsTerminal())
	assert.True(t, (&Referral{Status: ReferralStatusCompleted}).IsTerminal())
	assert.True(t, (&Referral{Status: ReferralStatusCancelled}).IsTerminal())
}

func TestReferralIsExpired(t *testing.T) {
	expiry := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)
	referral := Referral{ExpiryDate: expiry}

	assert.False(t, referral.IsExpired(expiry.Add(-time.Hour)))
	assert.False(t, referral.IsExpired(expiry))
	assert.True(t, referral.IsExpired(expiry.Add(time.Hour)))
}
