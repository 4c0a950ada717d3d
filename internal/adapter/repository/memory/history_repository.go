package memory

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/srgjo27/parking_booking/internal/core/domain"
)

type HistoryRepository struct {
	store *Store
}

func (r *HistoryRepository) Append(ctx context.Context, rows []domain.BookingHistory) error {
	return r.store.run(ctx, func(st *state) error {
		for _, row := range rows {
			st.historyID++
			row.ID = st.historyID
			st.histories = append(st.histories, row)
		}
		return nil
	})
}

// List returns rows ordered by timestamp, then by insertion.
func (r *HistoryRepository) List(ctx context.Context, bookingID *uuid.UUID) ([]domain.BookingHistory, error) {
	out := []domain.BookingHistory{}
	err := r.store.run(ctx, func(st *state) error {
		for _, row := range st.histories {
			if bookingID != nil && row.BookingID != *bookingID {
				continue
			}
			out = append(out, row)
		}
		return nil
	})
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].TimeStamp.Equal(out[j].TimeStamp) {
			return out[i].TimeStamp.Before(out[j].TimeStamp)
		}
		return out[i].ID < out[j].ID
	})
	return out, err
}

func (r *HistoryRepository) GetByID(ctx context.Context, historyID int64) (*domain.BookingHistory, error) {
	var out *domain.BookingHistory
	err := r.store.run(ctx, func(st *state) error {
		for _, row := range st.histories {
			if row.ID == historyID {
				row := row
				out = &row
				return nil
			}
		}
		return domain.ErrHistoryNotFound
	})
	return out, err
}
