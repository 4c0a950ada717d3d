package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/srgjo27/parking_booking/internal/core/domain"
)

type HistoryRepository struct {
	db *sql.DB
}

func NewHistoryRepository(db *sql.DB) *HistoryRepository {
	return &HistoryRepository{db: db}
}

func (r *HistoryRepository) Append(ctx context.Context, rows []domain.BookingHistory) error {
	query := `
	INSERT INTO booking_histories (status_snapshot, slot_id, booking_id, user_id, start_time, end_time, time_stamp)
	VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	stmt, err := executor(ctx, r.db).PrepareContext(ctx, query)
	if err != nil {
		return mapError("HistoryRepository.Append: prepare", err)
	}

	defer stmt.Close()

	for _, row := range rows {
		_, err := stmt.ExecContext(ctx, row.StatusSnapshot, row.SlotID, row.BookingID, row.UserID, row.StartTime, row.EndTime, row.TimeStamp)
		if err != nil {
			return mapError(fmt.Sprintf("HistoryRepository.Append slot %s", row.SlotID), err)
		}
	}

	return nil
}

func (r *HistoryRepository) List(ctx context.Context, bookingID *uuid.UUID) ([]domain.BookingHistory, error) {
	query := `
	SELECT id, status_snapshot, slot_id, booking_id, user_id, start_time, end_time, time_stamp
	FROM booking_histories
	WHERE $1::uuid IS NULL OR booking_id = $1
	ORDER BY time_stamp, id
	`

	var filter uuid.NullUUID
	if bookingID != nil {
		filter = uuid.NullUUID{UUID: *bookingID, Valid: true}
	}

	rows, err := executor(ctx, r.db).QueryContext(ctx, query, filter)
	if err != nil {
		return nil, mapError("HistoryRepository.List", err)
	}

	defer rows.Close()

	histories := []domain.BookingHistory{}
	for rows.Next() {
		history, err := scanHistory(rows)
		if err != nil {
			return nil, mapError("HistoryRepository.List", err)
		}

		histories = append(histories, *history)
	}

	if err := rows.Err(); err != nil {
		return nil, mapError("HistoryRepository.List", err)
	}

	return histories, nil
}

func (r *HistoryRepository) GetByID(ctx context.Context, historyID int64) (*domain.BookingHistory, error) {
	query := `
	SELECT id, status_snapshot, slot_id, booking_id, user_id, start_time, end_time, time_stamp
	FROM booking_histories
	WHERE id = $1
	`

	history, err := scanHistory(executor(ctx, r.db).QueryRowContext(ctx, query, historyID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("HistoryRepository.GetByID: %w", domain.ErrHistoryNotFound)
		}

		return nil, mapError("HistoryRepository.GetByID", err)
	}

	return history, nil
}

func scanHistory(row scanner) (*domain.BookingHistory, error) {
	var history domain.BookingHistory
	err := row.Scan(
		&history.ID,
		&history.StatusSnapshot,
		&history.SlotID,
		&history.BookingID,
		&history.UserID,
		&history.StartTime,
		&history.EndTime,
		&history.TimeStamp,
	)
	if err != nil {
		return nil, err
	}

	return &history, nil
}
