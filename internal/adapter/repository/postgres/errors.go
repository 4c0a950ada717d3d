package postgres

import (
	"database/sql/driver"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/srgjo27/parking_booking/internal/core/domain"
)

const activeBillingIndex = "billings_active_booking_uidx"

// mapError wraps err with op and translates Postgres failures into domain
// error kinds.
func mapError(op string, err error) error {
	if err == nil {
		return nil
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch {
		case pqErr.Code == "23505" && pqErr.Constraint == activeBillingIndex:
			return fmt.Errorf("%s: %w", op, domain.ErrAlreadyBilled)
		case pqErr.Code == "23505":
			return fmt.Errorf("%s: %w: %s", op, domain.ErrConflict, pqErr.Message)
		case pqErr.Code == "23503":
			return fmt.Errorf("%s: %w: %s", op, domain.ErrNotFound, pqErr.Message)
		case pqErr.Code == "40001", pqErr.Code == "40P01", pqErr.Code.Class() == "08":
			return fmt.Errorf("%s: %w: %s", op, domain.ErrUnavailable, pqErr.Message)
		}
	}

	if errors.Is(err, driver.ErrBadConn) {
		return fmt.Errorf("%s: %w: %v", op, domain.ErrUnavailable, err)
	}

	return fmt.Errorf("%s: %w", op, err)
}
