package memory

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/srgjo27/parking_booking/internal/core/domain"
)

type BillingRepository struct {
	store *Store
}

func (r *BillingRepository) Create(ctx context.Context, billing *domain.Billing) error {
	return r.store.run(ctx, func(st *state) error {
		if st.hasActiveBilling(billing.BookingID, uuid.Nil) {
			return domain.ErrAlreadyBilled
		}
		st.billings[billing.ID] = *billing
		return nil
	})
}

func (r *BillingRepository) GetByID(ctx context.Context, billingID uuid.UUID) (*domain.Billing, error) {
	var out *domain.Billing
	err := r.store.run(ctx, func(st *state) error {
		b, ok := st.billings[billingID]
		if !ok || b.IsDeleted {
			return domain.ErrBillingNotFound
		}
		out = &b
		return nil
	})
	return out, err
}

func (r *BillingRepository) HasActiveForBooking(ctx context.Context, bookingID uuid.UUID, exclude uuid.UUID) (bool, error) {
	var found bool
	err := r.store.run(ctx, func(st *state) error {
		found = st.hasActiveBilling(bookingID, exclude)
		return nil
	})
	return found, err
}

func (r *BillingRepository) Update(ctx context.Context, billing *domain.Billing) error {
	return r.store.run(ctx, func(st *state) error {
		current, ok := st.billings[billing.ID]
		if !ok || current.IsDeleted {
			return domain.ErrBillingNotFound
		}
		if st.hasActiveBilling(billing.BookingID, billing.ID) {
			return domain.ErrAlreadyBilled
		}
		st.billings[billing.ID] = *billing
		return nil
	})
}

func (r *BillingRepository) SoftDelete(ctx context.Context, billingID uuid.UUID) error {
	return r.store.run(ctx, func(st *state) error {
		b, ok := st.billings[billingID]
		if !ok || b.IsDeleted {
			return domain.ErrBillingNotFound
		}
		b.IsDeleted = true
		st.billings[billingID] = b
		return nil
	})
}

func (r *BillingRepository) ListViews(ctx context.Context, filter domain.BillingFilter) ([]domain.BillingView, error) {
	out := []domain.BillingView{}
	err := r.store.run(ctx, func(st *state) error {
		for _, billing := range st.billings {
			if billing.IsDeleted {
				continue
			}
			if filter.ID != nil && billing.ID != *filter.ID {
				continue
			}
			booking, ok := st.bookings[billing.BookingID]
			if !ok {
				continue
			}
			if filter.UserID != nil && booking.UserID != *filter.UserID {
				continue
			}
			out = append(out, st.view(billing, booking))
		}
		return nil
	})

	sort.Slice(out, func(i, j int) bool {
		if !out[i].TimeStamp.Equal(out[j].TimeStamp) {
			return out[i].TimeStamp.After(out[j].TimeStamp)
		}
		return out[i].ID.String() < out[j].ID.String()
	})
	return out, err
}

func (st *state) view(billing domain.Billing, booking domain.Booking) domain.BillingView {
	v := domain.BillingView{
		Billing:     billing,
		UserID:      booking.UserID,
		UserName:    st.users[booking.UserID],
		SlotNumbers: []string{},
		StartTime:   booking.StartTime,
		EndTime:     booking.EndTime,
	}
	for _, id := range booking.SlotIDs {
		slot, ok := st.slots[id]
		if !ok {
			continue
		}
		if v.LocationName == "" {
			v.LocationName = st.locations[slot.LocationID]
		}
		v.SlotNumbers = append(v.SlotNumbers, slot.SlotNumber)
	}
	sort.Strings(v.SlotNumbers)
	return v
}
