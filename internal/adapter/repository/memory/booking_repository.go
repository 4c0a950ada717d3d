package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/srgjo27/parking_booking/internal/core/domain"
)

type BookingRepository struct {
	store *Store
}

func copyBooking(b domain.Booking) domain.Booking {
	b.SlotIDs = append([]uuid.UUID(nil), b.SlotIDs...)
	return b
}

func (r *BookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	return r.store.run(ctx, func(st *state) error {
		if _, ok := st.bookings[booking.ID]; ok {
			return fmt.Errorf("%w: booking %s already exists", domain.ErrConflict, booking.ID)
		}
		st.bookings[booking.ID] = copyBooking(*booking)
		return nil
	})
}

func (r *BookingRepository) GetByID(ctx context.Context, bookingID uuid.UUID) (*domain.Booking, error) {
	var out *domain.Booking
	err := r.store.run(ctx, func(st *state) error {
		b, ok := st.bookings[bookingID]
		if !ok || b.IsDeleted {
			return domain.ErrBookingNotFound
		}
		b = copyBooking(b)
		out = &b
		return nil
	})
	return out, err
}

// GetByIDForUpdate needs no row lock here: every transaction already holds the store mutex.
func (r *BookingRepository) GetByIDForUpdate(ctx context.Context, bookingID uuid.UUID) (*domain.Booking, error) {
	return r.GetByID(ctx, bookingID)
}

func (r *BookingRepository) Update(ctx context.Context, booking *domain.Booking) error {
	return r.store.run(ctx, func(st *state) error {
		if _, ok := st.bookings[booking.ID]; !ok {
			return domain.ErrBookingNotFound
		}
		st.bookings[booking.ID] = copyBooking(*booking)
		return nil
	})
}

func (r *BookingRepository) Delete(ctx context.Context, bookingID uuid.UUID) error {
	return r.store.run(ctx, func(st *state) error {
		if _, ok := st.bookings[bookingID]; !ok {
			return domain.ErrBookingNotFound
		}
		delete(st.bookings, bookingID)
		return nil
	})
}

func (r *BookingRepository) List(ctx context.Context, filter domain.BookingFilter) ([]domain.Booking, error) {
	out := []domain.Booking{}
	err := r.store.run(ctx, func(st *state) error {
		for _, b := range st.bookings {
			if b.IsDeleted {
				continue
			}
			if filter.UserID != nil && b.UserID != *filter.UserID {
				continue
			}
			if filter.UnpaidOnly && (!b.Status.IsActive() || st.hasActiveBilling(b.ID, uuid.Nil)) {
				continue
			}
			out = append(out, copyBooking(b))
		}
		return nil
	})

	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID.String() < out[j].ID.String()
	})
	return out, err
}

func (st *state) hasActiveBilling(bookingID, exclude uuid.UUID) bool {
	for _, billing := range st.billings {
		if billing.IsDeleted || billing.ID == exclude {
			continue
		}
		if billing.BookingID == bookingID {
			return true
		}
	}
	return false
}
