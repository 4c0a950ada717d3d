package domain_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/srgjo27/parking_booking/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateWindow(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	policy := domain.WindowPolicy{MinDuration: 15 * time.Minute}

	tests := []struct {
		name  string
		start time.Time
		end   time.Time
		field string
	}{
		{"valid", now.Add(time.Hour), now.Add(2 * time.Hour), ""},
		{"missing start", time.Time{}, now.Add(time.Hour), "start_time"},
		{"end before start", now.Add(2 * time.Hour), now.Add(time.Hour), "end_time"},
		{"end equals start", now.Add(time.Hour), now.Add(time.Hour), "end_time"},
		{"start in past", now.Add(-time.Minute), now.Add(time.Hour), "start_time"},
		{"too short", now.Add(time.Hour), now.Add(time.Hour + 10*time.Minute), "end_time"},
		{"exact minimum", now.Add(time.Hour), now.Add(time.Hour + 15*time.Minute), ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := domain.ValidateWindow(now, tc.start, tc.end, policy)
			if tc.field == "" {
				assert.NoError(t, err)
				return
			}
			var verr *domain.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tc.field, verr.Field)
			assert.True(t, domain.IsValidation(err))
		})
	}
}

func TestValidateWindow_AllowPastStart(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	err := domain.ValidateWindow(now, now.Add(-time.Hour), now, domain.WindowPolicy{AllowPastStart: true})
	assert.NoError(t, err)
}

func TestNormalizeSlotIDs(t *testing.T) {
	a, b := uuid.New(), uuid.New()

	ids, err := domain.NormalizeSlotIDs([]uuid.UUID{a, b, a})
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{a, b}, ids)

	_, err = domain.NormalizeSlotIDs(nil)
	assert.True(t, domain.IsValidation(err))

	_, err = domain.NormalizeSlotIDs([]uuid.UUID{uuid.Nil})
	assert.True(t, domain.IsValidation(err))
}

func TestBookingStatusTransitions(t *testing.T) {
	assert.True(t, domain.BookingPending.CanTransitionTo(domain.BookingConfirmed))
	assert.True(t, domain.BookingPending.CanTransitionTo(domain.BookingCancelled))
	assert.True(t, domain.BookingConfirmed.CanTransitionTo(domain.BookingCancelled))
	assert.False(t, domain.BookingConfirmed.CanTransitionTo(domain.BookingPending))
	assert.False(t, domain.BookingCancelled.CanTransitionTo(domain.BookingConfirmed))
	assert.False(t, domain.BookingCancelled.IsActive())
}

func TestErrorKinds(t *testing.T) {
	assert.True(t, domain.IsNotFound(domain.ErrSlotNotFound))
	assert.True(t, domain.IsConflict(domain.ErrSlotConflict))
	assert.True(t, domain.IsConflict(domain.ErrAlreadyBilled))
	assert.True(t, domain.IsForbidden(domain.ErrNotOwner))
	assert.False(t, domain.IsConflict(domain.ErrBookingNotFound))
}

func TestSlotClaimRelease(t *testing.T) {
	owner, other := uuid.New(), uuid.New()
	slot := domain.Slot{ID: uuid.New(), IsAvailable: true}

	slot.Claim(owner)
	assert.True(t, slot.ClaimedBy(owner))

	slot.Release(other)
	assert.False(t, slot.IsAvailable, "release by a different booking must not free the slot")

	slot.Release(owner)
	assert.True(t, slot.IsAvailable)
	assert.False(t, slot.BookingID.Valid)
}

func TestSlotReleaseKeepsManualLock(t *testing.T) {
	slot := domain.Slot{ID: uuid.New(), IsAvailable: false}

	slot.Release(uuid.New())

	assert.False(t, slot.IsAvailable)
	assert.False(t, slot.BookingID.Valid)
}
