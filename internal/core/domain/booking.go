package domain

import (
	"time"

	"github.com/google/uuid"
	"gopkg.in/guregu/null.v4"
)

type BookingStatus string

const (
	BookingPending   BookingStatus = "Pending"
	BookingConfirmed BookingStatus = "Confirmed"
	BookingCancelled BookingStatus = "Cancelled"
)

// IsActive reports whether a booking in this status holds its slots.
func (s BookingStatus) IsActive() bool {
	return s == BookingPending || s == BookingConfirmed
}

// CanTransitionTo encodes Pending -> Confirmed -> Cancelled and Pending -> Cancelled.
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	switch s {
	case BookingPending:
		return next == BookingConfirmed || next == BookingCancelled
	case BookingConfirmed:
		return next == BookingCancelled
	default:
		return false
	}
}

type Booking struct {
	ID          uuid.UUID     `json:"id"`
	UserID      uuid.UUID     `json:"user_id"`
	Status      BookingStatus `json:"status"`
	StartTime   time.Time     `json:"start_time"`
	EndTime     time.Time     `json:"end_time"`
	SlotIDs     []uuid.UUID   `json:"slot_ids"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
	CancelledAt null.Time     `json:"cancelled_at"`
	CancelledBy uuid.NullUUID `json:"cancelled_by"`
	IsDeleted   bool          `json:"-"`
}

// OwnedBy reports whether userID created the booking.
func (b *Booking) OwnedBy(userID uuid.UUID) bool {
	return b.UserID == userID
}

// Snapshots returns one history row per slot capturing the booking's current state.
func (b *Booking) Snapshots(at time.Time) []BookingHistory {
	rows := make([]BookingHistory, 0, len(b.SlotIDs))
	for _, slotID := range b.SlotIDs {
		rows = append(rows, BookingHistory{
			StatusSnapshot: b.Status,
			SlotID:         slotID,
			BookingID:      b.ID,
			UserID:         b.UserID,
			StartTime:      b.StartTime,
			EndTime:        b.EndTime,
			TimeStamp:      at,
		})
	}
	return rows
}

// BookingFilter selects bookings for list queries. Deleted bookings are never returned.
type BookingFilter struct {
	UserID     *uuid.UUID
	UnpaidOnly bool
}
