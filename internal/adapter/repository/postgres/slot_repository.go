package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/srgjo27/parking_booking/internal/core/domain"
)

type SlotRepository struct {
	db *sql.DB
}

func NewSlotRepository(db *sql.DB) *SlotRepository {
	return &SlotRepository{db: db}
}

func (r *SlotRepository) FindForUpdate(ctx context.Context, slotIDs []uuid.UUID) ([]domain.Slot, error) {
	query := `
	SELECT id, location_id, slot_number, is_available, booking_id
	FROM slots
	WHERE id = ANY($1::uuid[])
	ORDER BY id
	FOR UPDATE
	`

	rows, err := executor(ctx, r.db).QueryContext(ctx, query, pq.Array(uuidStrings(slotIDs)))
	if err != nil {
		return nil, mapError("SlotRepository.FindForUpdate", err)
	}

	defer rows.Close()

	slots, err := scanSlots(rows)
	if err != nil {
		return nil, mapError("SlotRepository.FindForUpdate", err)
	}

	return slots, nil
}

func (r *SlotRepository) Claim(ctx context.Context, bookingID uuid.UUID, slotIDs []uuid.UUID) error {
	query := `
	UPDATE slots
	SET is_available = FALSE,
		booking_id = $1
	WHERE id = ANY($2::uuid[]) AND (is_available OR booking_id = $1)
	`

	result, err := executor(ctx, r.db).ExecContext(ctx, query, bookingID, pq.Array(uuidStrings(slotIDs)))
	if err != nil {
		return mapError("SlotRepository.Claim", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return mapError("SlotRepository.Claim", err)
	}

	if rowsAffected != int64(len(slotIDs)) {
		return fmt.Errorf("SlotRepository.Claim: %w", domain.ErrSlotConflict)
	}

	return nil
}

func (r *SlotRepository) Release(ctx context.Context, bookingID uuid.UUID, slotIDs []uuid.UUID) error {
	query := `
	UPDATE slots
	SET is_available = TRUE,
		booking_id = NULL
	WHERE id = ANY($2::uuid[]) AND booking_id = $1
	`

	_, err := executor(ctx, r.db).ExecContext(ctx, query, bookingID, pq.Array(uuidStrings(slotIDs)))

	return mapError("SlotRepository.Release", err)
}

func (r *SlotRepository) ListByLocation(ctx context.Context, locationID uuid.UUID) ([]domain.Slot, error) {
	query := `
	SELECT id, location_id, slot_number, is_available, booking_id
	FROM slots
	WHERE location_id = $1
	ORDER BY slot_number
	`

	rows, err := executor(ctx, r.db).QueryContext(ctx, query, locationID)
	if err != nil {
		return nil, mapError("SlotRepository.ListByLocation", err)
	}

	defer rows.Close()

	slots, err := scanSlots(rows)
	if err != nil {
		return nil, mapError("SlotRepository.ListByLocation", err)
	}

	return slots, nil
}

func scanSlots(rows *sql.Rows) ([]domain.Slot, error) {
	slots := []domain.Slot{}
	for rows.Next() {
		var slot domain.Slot
		if err := rows.Scan(
			&slot.ID,
			&slot.LocationID,
			&slot.SlotNumber,
			&slot.IsAvailable,
			&slot.BookingID,
		); err != nil {
			return nil, err
		}

		slots = append(slots, slot)
	}

	return slots, rows.Err()
}
