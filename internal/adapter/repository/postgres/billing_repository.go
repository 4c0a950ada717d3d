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

type BillingRepository struct {
	db *sql.DB
}

func NewBillingRepository(db *sql.DB) *BillingRepository {
	return &BillingRepository{db: db}
}

func (r *BillingRepository) Create(ctx context.Context, billing *domain.Billing) error {
	query := `
	INSERT INTO billings (id, amount, currency, payment_status, payment_method, time_stamp, booking_id, is_deleted)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := executor(ctx, r.db).ExecContext(ctx, query,
		billing.ID,
		billing.Amount.Amount,
		billing.Amount.Currency,
		billing.PaymentStatus,
		billing.PaymentMethod,
		billing.TimeStamp,
		billing.BookingID,
		billing.IsDeleted,
	)

	return mapError("BillingRepository.Create", err)
}

func (r *BillingRepository) GetByID(ctx context.Context, billingID uuid.UUID) (*domain.Billing, error) {
	query := `
	SELECT id, amount, currency, payment_status, payment_method, time_stamp, booking_id, is_deleted
	FROM billings
	WHERE id = $1 AND NOT is_deleted
	`

	var billing domain.Billing
	err := executor(ctx, r.db).QueryRowContext(ctx, query, billingID).Scan(
		&billing.ID,
		&billing.Amount.Amount,
		&billing.Amount.Currency,
		&billing.PaymentStatus,
		&billing.PaymentMethod,
		&billing.TimeStamp,
		&billing.BookingID,
		&billing.IsDeleted,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("BillingRepository.GetByID: %w", domain.ErrBillingNotFound)
		}

		return nil, mapError("BillingRepository.GetByID", err)
	}

	return &billing, nil
}

func (r *BillingRepository) HasActiveForBooking(ctx context.Context, bookingID uuid.UUID, exclude uuid.UUID) (bool, error) {
	query := `
	SELECT EXISTS (
		SELECT 1 FROM billings
		WHERE booking_id = $1 AND NOT is_deleted AND id <> $2
	)
	`

	var exists bool
	if err := executor(ctx, r.db).QueryRowContext(ctx, query, bookingID, exclude).Scan(&exists); err != nil {
		return false, mapError("BillingRepository.HasActiveForBooking", err)
	}

	return exists, nil
}

func (r *BillingRepository) Update(ctx context.Context, billing *domain.Billing) error {
	query := `
	UPDATE billings
	SET amount = $2,
		currency = $3,
		time_stamp = $4,
		booking_id = $5
	WHERE id = $1 AND NOT is_deleted
	`

	result, err := executor(ctx, r.db).ExecContext(ctx, query,
		billing.ID,
		billing.Amount.Amount,
		billing.Amount.Currency,
		billing.TimeStamp,
		billing.BookingID,
	)
	if err != nil {
		return mapError("BillingRepository.Update", err)
	}

	return expectOne("BillingRepository.Update", result)
}

func (r *BillingRepository) SoftDelete(ctx context.Context, billingID uuid.UUID) error {
	result, err := executor(ctx, r.db).ExecContext(ctx,
		`UPDATE billings SET is_deleted = TRUE WHERE id = $1 AND NOT is_deleted`, billingID)
	if err != nil {
		return mapError("BillingRepository.SoftDelete", err)
	}

	return expectOne("BillingRepository.SoftDelete", result)
}

func expectOne(op string, result sql.Result) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return mapError(op, err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("%s: %w", op, domain.ErrBillingNotFound)
	}

	return nil
}

func (r *BillingRepository) ListViews(ctx context.Context, filter domain.BillingFilter) ([]domain.BillingView, error) {
	var (
		where = []string{"NOT bl.is_deleted"}
		args  []any
	)

	if filter.ID != nil {
		args = append(args, *filter.ID)
		where = append(where, fmt.Sprintf("bl.id = $%d", len(args)))
	}

	if filter.UserID != nil {
		args = append(args, *filter.UserID)
		where = append(where, fmt.Sprintf("b.user_id = $%d", len(args)))
	}

	query := `
	SELECT bl.id, bl.amount, bl.currency, bl.payment_status, bl.payment_method, bl.time_stamp, bl.booking_id,
		b.user_id, COALESCE(u.name, ''), COALESCE(MIN(l.name), ''),
		COALESCE(array_agg(s.slot_number ORDER BY s.slot_number) FILTER (WHERE s.slot_number IS NOT NULL), '{}'),
		b.start_time, b.end_time
	FROM billings bl
	JOIN bookings b ON b.id = bl.booking_id
	LEFT JOIN users u ON u.id = b.user_id
	LEFT JOIN booking_slots bs ON bs.booking_id = b.id
	LEFT JOIN slots s ON s.id = bs.slot_id
	LEFT JOIN locations l ON l.id = s.location_id
	WHERE ` + strings.Join(where, " AND ") + `
	GROUP BY bl.id, b.id, u.name
	ORDER BY bl.time_stamp DESC, bl.id
	`

	rows, err := executor(ctx, r.db).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, mapError("BillingRepository.ListViews", err)
	}

	defer rows.Close()

	views := []domain.BillingView{}
	for rows.Next() {
		var (
			view        domain.BillingView
			slotNumbers pq.StringArray
		)
		if err := rows.Scan(
			&view.ID,
			&view.Amount.Amount,
			&view.Amount.Currency,
			&view.PaymentStatus,
			&view.PaymentMethod,
			&view.TimeStamp,
			&view.BookingID,
			&view.UserID,
			&view.UserName,
			&view.LocationName,
			&slotNumbers,
			&view.StartTime,
			&view.EndTime,
		); err != nil {
			return nil, mapError("BillingRepository.ListViews", err)
		}

		view.SlotNumbers = []string(slotNumbers)
		views = append(views, view)
	}

	if err := rows.Err(); err != nil {
		return nil, mapError("BillingRepository.ListViews", err)
	}

	return views, nil
}
