package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/srgjo27/parking_booking/internal/core/domain"
)

const bookingColumns = `
	b.id, b.user_id, b.status, b.start_time, b.end_time, b.created_at, b.updated_at,
	b.cancelled_at, b.cancelled_by, b.is_deleted,
	COALESCE((SELECT array_agg(bs.slot_id::text ORDER BY bs.slot_id) FROM booking_slots bs WHERE bs.booking_id = b.id), '{}')
`

type BookingRepository struct {
	db *sql.DB
}

func NewBookingRepository(db *sql.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

func (r *BookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	query := `
	INSERT INTO bookings (id, user_id, status, start_time, end_time, created_at, updated_at, cancelled_at, cancelled_by, is_deleted)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	exec := executor(ctx, r.db)
	_, err := exec.ExecContext(ctx, query,
		booking.ID,
		booking.UserID,
		booking.Status,
		booking.StartTime,
		booking.EndTime,
		booking.CreatedAt,
		booking.UpdatedAt,
		booking.CancelledAt,
		booking.CancelledBy,
		booking.IsDeleted,
	)
	if err != nil {
		return mapError("BookingRepository.Create", err)
	}

	return r.insertSlots(ctx, exec, booking)
}

func (r *BookingRepository) insertSlots(ctx context.Context, exec dbtx, booking *domain.Booking) error {
	query := `
	INSERT INTO booking_slots (booking_id, slot_id)
	SELECT $1, unnest($2::uuid[])
	`

	_, err := exec.ExecContext(ctx, query, booking.ID, pq.Array(uuidStrings(booking.SlotIDs)))
	if err != nil {
		return mapError(fmt.Sprintf("BookingRepository.insertSlots booking %s", booking.ID), err)
	}

	return nil
}

func (r *BookingRepository) GetByID(ctx context.Context, bookingID uuid.UUID) (*domain.Booking, error) {
	query := `SELECT ` + bookingColumns + `
	FROM bookings b
	WHERE b.id = $1 AND NOT b.is_deleted
	`

	return r.getOne(ctx, "BookingRepository.GetByID", query, bookingID)
}

func (r *BookingRepository) GetByIDForUpdate(ctx context.Context, bookingID uuid.UUID) (*domain.Booking, error) {
	query := `SELECT ` + bookingColumns + `
	FROM bookings b
	WHERE b.id = $1 AND NOT b.is_deleted
	FOR UPDATE OF b
	`

	return r.getOne(ctx, "BookingRepository.GetByIDForUpdate", query, bookingID)
}

func (r *BookingRepository) getOne(ctx context.Context, op, query string, bookingID uuid.UUID) (*domain.Booking, error) {
	booking, err := scanBooking(executor(ctx, r.db).QueryRowContext(ctx, query, bookingID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, domain.ErrBookingNotFound)
		}

		return nil, mapError(op, err)
	}

	return booking, nil
}

func (r *BookingRepository) Update(ctx context.Context, booking *domain.Booking) error {
	query := `
	UPDATE bookings
	SET status = $2,
		start_time = $3,
		end_time = $4,
		updated_at = $5,
		cancelled_at = $6,
		cancelled_by = $7,
		is_deleted = $8
	WHERE id = $1
	`

	exec := executor(ctx, r.db)
	result, err := exec.ExecContext(ctx, query,
		booking.ID,
		booking.Status,
		booking.StartTime,
		booking.EndTime,
		booking.UpdatedAt,
		booking.CancelledAt,
		booking.CancelledBy,
		booking.IsDeleted,
	)
	if err != nil {
		return mapError("BookingRepository.Update", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return mapError("BookingRepository.Update", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("BookingRepository.Update: %w", domain.ErrBookingNotFound)
	}

	if _, err := exec.ExecContext(ctx, `DELETE FROM booking_slots WHERE booking_id = $1`, booking.ID); err != nil {
		return mapError("BookingRepository.Update", err)
	}

	return r.insertSlots(ctx, exec, booking)
}

// Delete removes the booking row. booking_slots rows cascade; history rows are kept.
func (r *BookingRepository) Delete(ctx context.Context, bookingID uuid.UUID) error {
	result, err := executor(ctx, r.db).ExecContext(ctx, `DELETE FROM bookings WHERE id = $1`, bookingID)
	if err != nil {
		return mapError("BookingRepository.Delete", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return mapError("BookingRepository.Delete", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("BookingRepository.Delete: %w", domain.ErrBookingNotFound)
	}

	return nil
}

func (r *BookingRepository) List(ctx context.Context, filter domain.BookingFilter) ([]domain.Booking, error) {
	var (
		where = []string{"NOT b.is_deleted"}
		args  []any
	)

	if filter.UserID != nil {
		args = append(args, *filter.UserID)
		where = append(where, fmt.Sprintf("b.user_id = $%d", len(args)))
	}

	if filter.UnpaidOnly {
		args = append(args, domain.BookingCancelled)
		where = append(where,
			fmt.Sprintf("b.status <> $%d", len(args)),
			"NOT EXISTS (SELECT 1 FROM billings bl WHERE bl.booking_id = b.id AND NOT bl.is_deleted)",
		)
	}

	query := `SELECT ` + bookingColumns + `
	FROM bookings b
	WHERE ` + strings.Join(where, " AND ") + `
	ORDER BY b.created_at DESC, b.id
	`

	rows, err := executor(ctx, r.db).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, mapError("BookingRepository.List", err)
	}

	defer rows.Close()

	bookings := []domain.Booking{}
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, mapError("BookingRepository.List", err)
		}

		bookings = append(bookings, *booking)
	}

	if err := rows.Err(); err != nil {
		return nil, mapError("BookingRepository.List", err)
	}

	return bookings, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanBooking(row scanner) (*domain.Booking, error) {
	var (
		booking domain.Booking
		slotIDs pq.StringArray
	)

	err := row.Scan(
		&booking.ID,
		&booking.UserID,
		&booking.Status,
		&booking.StartTime,
		&booking.EndTime,
		&booking.CreatedAt,
		&booking.UpdatedAt,
		&booking.CancelledAt,
		&booking.CancelledBy,
		&booking.IsDeleted,
		&slotIDs,
	)
	if err != nil {
		return nil, err
	}

	booking.SlotIDs, err = parseUUIDs(slotIDs)
	if err != nil {
		return nil, err
	}

	return &booking, nil
}
