package domain

import (
	"time"

	"github.com/google/uuid"
)

const (
	PaymentStatusPaid = "Paid"
	PaymentMethodCash = "Cash"
)

type Billing struct {
	ID            uuid.UUID `json:"id"`
	Amount        Money     `json:"amount"`
	PaymentStatus string    `json:"payment_status"`
	PaymentMethod string    `json:"payment_method"`
	TimeStamp     time.Time `json:"time_stamp"`
	BookingID     uuid.UUID `json:"booking_id"`
	IsDeleted     bool      `json:"-"`
}

// BillingView is the read-side projection of a billing joined with its
// booking, owner, location and slots.
type BillingView struct {
	Billing
	UserID       uuid.UUID `json:"user_id"`
	UserName     string    `json:"user_name"`
	LocationName string    `json:"location_name"`
	SlotNumbers  []string  `json:"slot_numbers"`
	StartTime    time.Time `json:"start_time"`
	EndTime      time.Time `json:"end_time"`
}

type BillingFilter struct {
	ID     *uuid.UUID
	UserID *uuid.UUID
}
