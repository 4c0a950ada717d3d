package memory

import (
	"bytes"
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/srgjo27/parking_booking/internal/core/domain"
)

type SlotRepository struct {
	store *Store
}

func (r *SlotRepository) FindForUpdate(ctx context.Context, slotIDs []uuid.UUID) ([]domain.Slot, error) {
	var out []domain.Slot
	err := r.store.run(ctx, func(st *state) error {
		for _, id := range slotIDs {
			if slot, ok := st.slots[id]; ok {
				out = append(out, slot)
			}
		}
		return nil
	})
	sortSlots(out)
	return out, err
}

func (r *SlotRepository) Claim(ctx context.Context, bookingID uuid.UUID, slotIDs []uuid.UUID) error {
	return r.store.run(ctx, func(st *state) error {
		for _, id := range slotIDs {
			slot, ok := st.slots[id]
			if !ok {
				return fmt.Errorf("%w: %s", domain.ErrSlotNotFound, id)
			}
			if !slot.IsAvailable && !slot.ClaimedBy(bookingID) {
				return fmt.Errorf("%w: %s", domain.ErrSlotConflict, slot.SlotNumber)
			}
			slot.Claim(bookingID)
			st.slots[id] = slot
		}
		return nil
	})
}

func (r *SlotRepository) Release(ctx context.Context, bookingID uuid.UUID, slotIDs []uuid.UUID) error {
	return r.store.run(ctx, func(st *state) error {
		for _, id := range slotIDs {
			slot, ok := st.slots[id]
			if !ok {
				continue
			}
			slot.Release(bookingID)
			st.slots[id] = slot
		}
		return nil
	})
}

func (r *SlotRepository) ListByLocation(ctx context.Context, locationID uuid.UUID) ([]domain.Slot, error) {
	var out []domain.Slot
	err := r.store.run(ctx, func(st *state) error {
		for _, slot := range st.slots {
			if slot.LocationID == locationID {
				out = append(out, slot)
			}
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].SlotNumber < out[j].SlotNumber })
	return out, err
}

func sortSlots(slots []domain.Slot) {
	sort.Slice(slots, func(i, j int) bool {
		return bytes.Compare(slots[i].ID[:], slots[j].ID[:]) < 0
	})
}
