package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/srgjo27/parking_booking/internal/core/domain"
)

// Transactor runs fn inside one database transaction carried by the context
// passed to fn. Repositories called with that context join the transaction.
// A non-nil error from fn, or a cancelled context, rolls everything back.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type SlotRepository interface {
	// FindForUpdate loads the slots and locks their rows until the
	// surrounding transaction ends. Missing ids are simply absent.
	FindForUpdate(ctx context.Context, slotIDs []uuid.UUID) ([]domain.Slot, error)
	// Claim marks every slot unavailable and held by bookingID. It fails with
	// domain.ErrSlotConflict if any slot is no longer available.
	Claim(ctx context.Context, bookingID uuid.UUID, slotIDs []uuid.UUID) error
	// Release frees the slots held by bookingID.
	Release(ctx context.Context, bookingID uuid.UUID, slotIDs []uuid.UUID) error
	ListByLocation(ctx context.Context, locationID uuid.UUID) ([]domain.Slot, error)
}

type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) error
	GetByID(ctx context.Context, bookingID uuid.UUID) (*domain.Booking, error)
	GetByIDForUpdate(ctx context.Context, bookingID uuid.UUID) (*domain.Booking, error)
	Update(ctx context.Context, booking *domain.Booking) error
	Delete(ctx context.Context, bookingID uuid.UUID) error
	List(ctx context.Context, filter domain.BookingFilter) ([]domain.Booking, error)
}

type HistoryRepository interface {
	Append(ctx context.Context, rows []domain.BookingHistory) error
	List(ctx context.Context, bookingID *uuid.UUID) ([]domain.BookingHistory, error)
	GetByID(ctx context.Context, historyID int64) (*domain.BookingHistory, error)
}

type BillingRepository interface {
	Create(ctx context.Context, billing *domain.Billing) error
	GetByID(ctx context.Context, billingID uuid.UUID) (*domain.Billing, error)
	// HasActiveForBooking reports whether a non-deleted billing other than
	// exclude references bookingID.
	HasActiveForBooking(ctx context.Context, bookingID uuid.UUID, exclude uuid.UUID) (bool, error)
	Update(ctx context.Context, billing *domain.Billing) error
	SoftDelete(ctx context.Context, billingID uuid.UUID) error
	ListViews(ctx context.Context, filter domain.BillingFilter) ([]domain.BillingView, error)
}
