package services

import (
	"context"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/srgjo27/parking_booking/internal/core/domain"
)

type CreateBillingRequest struct {
	BookingID uuid.UUID
	Amount    domain.Money
}

type UpdateBillingRequest struct {
	BookingID uuid.UUID
	Amount    domain.Money
}

type billingEvent struct {
	BillingID uuid.UUID `json:"billing_id"`
	BookingID uuid.UUID `json:"booking_id"`
	Amount    int64     `json:"amount"`
	Currency  string    `json:"currency"`
}

func newBillingEvent(b *domain.Billing) billingEvent {
	return billingEvent{
		BillingID: b.ID,
		BookingID: b.BookingID,
		Amount:    b.Amount.Amount,
		Currency:  b.Amount.Currency,
	}
}

// BillingService records the off-system payment of a booking. A booking has at
// most one non-deleted billing.
type BillingService struct {
	repos  Repositories
	collab Collaborators
}

func NewBillingService(repos Repositories, collab Collaborators) *BillingService {
	return &BillingService{
		repos:  repos,
		collab: collab,
	}
}

func (s *BillingService) CreateBilling(ctx context.Context, req CreateBillingRequest) (billing *domain.Billing, err error) {
	ctx, span := tracer.Start(ctx, "BillingService.CreateBilling", trace.WithAttributes(attribute.String("booking.id", req.BookingID.String())))
	defer func() { finishSpan(span, err) }()

	if _, err := s.requireAdmin(ctx); err != nil {
		return nil, err
	}
	if err := validateBilling(req.BookingID, req.Amount); err != nil {
		return nil, err
	}

	billing = &domain.Billing{
		ID:            uuid.New(),
		Amount:        req.Amount,
		PaymentStatus: domain.PaymentStatusPaid,
		PaymentMethod: domain.PaymentMethodCash,
		TimeStamp:     s.collab.Clock.Now(),
		BookingID:     req.BookingID,
	}

	err = s.repos.Tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.lockBillable(ctx, req.BookingID, uuid.Nil); err != nil {
			return err
		}
		return s.repos.Billings.Create(ctx, billing)
	})
	if err != nil {
		return nil, err
	}

	afterCommit(ctx, s.collab, "billing.created", newBillingEvent(billing), nil)
	s.collab.logger().Info("billing created",
		zap.Stringer("billing_id", billing.ID),
		zap.Stringer("booking_id", billing.BookingID),
		zap.Stringer("amount", billing.Amount),
	)

	return billing, nil
}

// lockBillable locks the booking row and fails when the booking cannot take a
// new billing. exclude is the billing being moved onto the booking, if any.
func (s *BillingService) lockBillable(ctx context.Context, bookingID, exclude uuid.UUID) error {
	booking, err := s.repos.Bookings.GetByIDForUpdate(ctx, bookingID)
	if err != nil {
		return err
	}
	if booking.Status == domain.BookingCancelled {
		return domain.ErrBookingCancelled
	}

	billed, err := s.repos.Billings.HasActiveForBooking(ctx, bookingID, exclude)
	if err != nil {
		return err
	}
	if billed {
		return domain.ErrAlreadyBilled
	}
	return nil
}

// UpdateBilling amends the amount and booking reference and re-stamps the
// billing. The one-billing-per-booking check only runs when the booking changes.
func (s *BillingService) UpdateBilling(ctx context.Context, billingID uuid.UUID, req UpdateBillingRequest) (billing *domain.Billing, err error) {
	ctx, span := tracer.Start(ctx, "BillingService.UpdateBilling", trace.WithAttributes(attribute.String("billing.id", billingID.String())))
	defer func() { finishSpan(span, err) }()

	if _, err := s.requireAdmin(ctx); err != nil {
		return nil, err
	}
	if err := validateBilling(req.BookingID, req.Amount); err != nil {
		return nil, err
	}

	now := s.collab.Clock.Now()

	err = s.repos.Tx.WithinTx(ctx, func(ctx context.Context) error {
		b, err := s.repos.Billings.GetByID(ctx, billingID)
		if err != nil {
			return err
		}

		if b.BookingID != req.BookingID {
			if err := s.lockBillable(ctx, req.BookingID, b.ID); err != nil {
				return err
			}
		}

		b.Amount = req.Amount
		b.BookingID = req.BookingID
		b.TimeStamp = now
		if err := s.repos.Billings.Update(ctx, b); err != nil {
			return err
		}

		billing = b
		return nil
	})
	if err != nil {
		return nil, err
	}

	afterCommit(ctx, s.collab, "billing.updated", newBillingEvent(billing), nil)
	s.collab.logger().Info("billing updated", zap.Stringer("billing_id", billing.ID))

	return billing, nil
}

// DeleteBilling soft-deletes the billing. Its booking is unpaid again afterwards.
func (s *BillingService) DeleteBilling(ctx context.Context, billingID uuid.UUID) (err error) {
	ctx, span := tracer.Start(ctx, "BillingService.DeleteBilling", trace.WithAttributes(attribute.String("billing.id", billingID.String())))
	defer func() { finishSpan(span, err) }()

	if _, err := s.requireAdmin(ctx); err != nil {
		return err
	}

	var billing *domain.Billing
	err = s.repos.Tx.WithinTx(ctx, func(ctx context.Context) error {
		b, err := s.repos.Billings.GetByID(ctx, billingID)
		if err != nil {
			return err
		}
		if err := s.repos.Billings.SoftDelete(ctx, b.ID); err != nil {
			return err
		}
		billing = b
		return nil
	})
	if err != nil {
		return err
	}

	afterCommit(ctx, s.collab, "billing.deleted", newBillingEvent(billing), nil)
	s.collab.logger().Info("billing deleted", zap.Stringer("billing_id", billing.ID))

	return nil
}

func (s *BillingService) GetAll(ctx context.Context) ([]domain.BillingView, error) {
	if _, err := s.requireAdmin(ctx); err != nil {
		return nil, err
	}
	return s.repos.Billings.ListViews(ctx, domain.BillingFilter{})
}

// GetMine lists billings of bookings owned by the caller.
func (s *BillingService) GetMine(ctx context.Context) ([]domain.BillingView, error) {
	actor, err := s.collab.Identity.Current(ctx)
	if err != nil {
		return nil, err
	}
	return s.repos.Billings.ListViews(ctx, domain.BillingFilter{UserID: &actor.UserID})
}

func (s *BillingService) GetByID(ctx context.Context, billingID uuid.UUID) (*domain.BillingView, error) {
	actor, err := s.collab.Identity.Current(ctx)
	if err != nil {
		return nil, err
	}

	views, err := s.repos.Billings.ListViews(ctx, domain.BillingFilter{ID: &billingID})
	if err != nil {
		return nil, err
	}
	if len(views) == 0 {
		return nil, domain.ErrBillingNotFound
	}

	view := views[0]
	if !actor.CanManage(view.UserID) {
		return nil, domain.ErrNotOwner
	}

	return &view, nil
}

func (s *BillingService) requireAdmin(ctx context.Context) (domain.Actor, error) {
	actor, err := s.collab.Identity.Current(ctx)
	if err != nil {
		return domain.Actor{}, err
	}
	if !actor.IsAdmin() {
		return domain.Actor{}, domain.ErrAdminOnly
	}
	return actor, nil
}

func validateBilling(bookingID uuid.UUID, amount domain.Money) error {
	if bookingID == uuid.Nil {
		return domain.NewValidationError("booking_id", "is required")
	}
	if !amount.IsPositive() {
		return domain.NewValidationError("amount", "must be greater than zero")
	}
	return nil
}
