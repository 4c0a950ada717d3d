package domain

import (
	"time"

	"github.com/google/uuid"
)

// BookingHistory is an immutable audit row. One row is written per slot on
// every state-changing operation.
type BookingHistory struct {
	ID             int64         `json:"id"`
	StatusSnapshot BookingStatus `json:"status_snapshot"`
	SlotID         uuid.UUID     `json:"slot_id"`
	BookingID      uuid.UUID     `json:"booking_id"`
	UserID         uuid.UUID     `json:"user_id"`
	StartTime      time.Time     `json:"start_time"`
	EndTime        time.Time     `json:"end_time"`
	TimeStamp      time.Time     `json:"time_stamp"`
}
