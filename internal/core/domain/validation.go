package domain

import (
	"time"

	"github.com/google/uuid"
)

// WindowPolicy holds the rules a booking window is checked against.
type WindowPolicy struct {
	MinDuration    time.Duration
	AllowPastStart bool
}

// ValidateWindow checks a client-supplied window against the server clock.
func ValidateWindow(now, start, end time.Time, policy WindowPolicy) error {
	if start.IsZero() {
		return NewValidationError("start_time", "is required")
	}
	if end.IsZero() {
		return NewValidationError("end_time", "is required")
	}
	if !end.After(start) {
		return NewValidationError("end_time", "must be after start_time")
	}
	if !policy.AllowPastStart && start.Before(now) {
		return NewValidationError("start_time", "must not be in the past")
	}
	if policy.MinDuration > 0 && end.Sub(start) < policy.MinDuration {
		return NewValidationError("end_time", "booking must last at least "+policy.MinDuration.String())
	}
	return nil
}

// NormalizeSlotIDs drops duplicates while keeping the caller's order.
func NormalizeSlotIDs(ids []uuid.UUID) ([]uuid.UUID, error) {
	if len(ids) == 0 {
		return nil, NewValidationError("slot_ids", "at least one slot is required")
	}
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if id == uuid.Nil {
			return nil, NewValidationError("slot_ids", "contains an empty id")
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out, nil
}
