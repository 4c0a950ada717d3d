package domain

import (
	"github.com/google/uuid"
)

type Slot struct {
	ID          uuid.UUID     `json:"id"`
	LocationID  uuid.UUID     `json:"location_id"`
	SlotNumber  string        `json:"slot_number"`
	IsAvailable bool          `json:"is_available"`
	BookingID   uuid.NullUUID `json:"booking_id"`
}

// ClaimedBy reports whether the slot is currently held by the given booking.
func (s Slot) ClaimedBy(bookingID uuid.UUID) bool {
	return !s.IsAvailable && s.BookingID.Valid && s.BookingID.UUID == bookingID
}

// Claim marks the slot as held by bookingID.
func (s *Slot) Claim(bookingID uuid.UUID) {
	s.IsAvailable = false
	s.BookingID = uuid.NullUUID{UUID: bookingID, Valid: true}
}

// Release frees the slot if bookingID holds it. Slots held by another booking
// or locked without a booking are left untouched.
func (s *Slot) Release(bookingID uuid.UUID) {
	if !s.BookingID.Valid || s.BookingID.UUID != bookingID {
		return
	}
	s.IsAvailable = true
	s.BookingID = uuid.NullUUID{}
}
