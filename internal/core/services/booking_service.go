package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"gopkg.in/guregu/null.v4"

	"github.com/srgjo27/parking_booking/internal/core/domain"
)

type BookingPolicy struct {
	Window domain.WindowPolicy
	// RequireApproval creates bookings as Pending until an admin confirms them.
	RequireApproval bool
}

type CreateBookingRequest struct {
	StartTime time.Time   `json:"start_time"`
	EndTime   time.Time   `json:"end_time"`
	SlotIDs   []uuid.UUID `json:"slot_ids"`
}

type UpdateBookingRequest struct {
	StartTime time.Time   `json:"start_time"`
	EndTime   time.Time   `json:"end_time"`
	SlotIDs   []uuid.UUID `json:"slot_ids"`
}

type CreateBookingResponse struct {
	BookingID uuid.UUID            `json:"booking_id"`
	Status    domain.BookingStatus `json:"status"`
	SlotIDs   []uuid.UUID          `json:"slot_ids"`
	StartTime time.Time            `json:"start_time"`
	EndTime   time.Time            `json:"end_time"`
}

type bookingEvent struct {
	BookingID uuid.UUID            `json:"booking_id"`
	UserID    uuid.UUID            `json:"user_id"`
	Status    domain.BookingStatus `json:"status"`
	SlotIDs   []uuid.UUID          `json:"slot_ids"`
	Start     int64                `json:"start"`
	End       int64                `json:"end"`
}

func newBookingEvent(b *domain.Booking) bookingEvent {
	return bookingEvent{
		BookingID: b.ID,
		UserID:    b.UserID,
		Status:    b.Status,
		SlotIDs:   b.SlotIDs,
		Start:     b.StartTime.Unix(),
		End:       b.EndTime.Unix(),
	}
}

type BookingService struct {
	repos  Repositories
	collab Collaborators
	policy BookingPolicy
}

func NewBookingService(repos Repositories, collab Collaborators, policy BookingPolicy) *BookingService {
	return &BookingService{
		repos:  repos,
		collab: collab,
		policy: policy,
	}
}

func (s *BookingService) CreateBooking(ctx context.Context, req CreateBookingRequest) (resp *CreateBookingResponse, err error) {
	ctx, span := tracer.Start(ctx, "BookingService.CreateBooking")
	defer func() { finishSpan(span, err) }()

	actor, err := s.collab.Identity.Current(ctx)
	if err != nil {
		return nil, err
	}

	slotIDs, err := domain.NormalizeSlotIDs(req.SlotIDs)
	if err != nil {
		return nil, err
	}

	now := s.collab.Clock.Now()
	if err := domain.ValidateWindow(now, req.StartTime, req.EndTime, s.policy.Window); err != nil {
		return nil, err
	}

	status := domain.BookingConfirmed
	if s.policy.RequireApproval {
		status = domain.BookingPending
	}

	booking := &domain.Booking{
		ID:        uuid.New(),
		UserID:    actor.UserID,
		Status:    status,
		StartTime: req.StartTime.UTC(),
		EndTime:   req.EndTime.UTC(),
		SlotIDs:   slotIDs,
		CreatedAt: now,
		UpdatedAt: now,
	}
	span.SetAttributes(attribute.String("booking.id", booking.ID.String()), attribute.Int("booking.slots", len(slotIDs)))

	var locations []uuid.UUID
	err = s.repos.Tx.WithinTx(ctx, func(ctx context.Context) error {
		slots, err := s.lockSlots(ctx, slotIDs)
		if err != nil {
			return err
		}

		for _, slot := range slots {
			if !slot.IsAvailable {
				return fmt.Errorf("%w: %s", domain.ErrSlotConflict, slot.SlotNumber)
			}
		}

		if err := s.repos.Bookings.Create(ctx, booking); err != nil {
			return err
		}

		if err := s.repos.Slots.Claim(ctx, booking.ID, slotIDs); err != nil {
			return err
		}

		if err := s.repos.Histories.Append(ctx, booking.Snapshots(now)); err != nil {
			return err
		}

		locations = locationsOf(slots)
		return nil
	})
	if err != nil {
		return nil, err
	}

	afterCommit(ctx, s.collab, "booking.created", newBookingEvent(booking), locations)
	s.collab.logger().Info("booking created",
		zap.Stringer("booking_id", booking.ID),
		zap.Stringer("user_id", booking.UserID),
		zap.Int("slots", len(slotIDs)),
	)

	return &CreateBookingResponse{
		BookingID: booking.ID,
		Status:    booking.Status,
		SlotIDs:   slotIDs,
		StartTime: booking.StartTime,
		EndTime:   booking.EndTime,
	}, nil
}

// lockSlots locks every requested slot and fails if any of them does not exist.
func (s *BookingService) lockSlots(ctx context.Context, slotIDs []uuid.UUID) ([]domain.Slot, error) {
	slots, err := s.repos.Slots.FindForUpdate(ctx, slotIDs)
	if err != nil {
		return nil, err
	}

	found := make(map[uuid.UUID]struct{}, len(slots))
	for _, slot := range slots {
		found[slot.ID] = struct{}{}
	}
	for _, id := range slotIDs {
		if _, ok := found[id]; !ok {
			return nil, fmt.Errorf("%w: %s", domain.ErrSlotNotFound, id)
		}
	}

	return slots, nil
}

// loadForChange locks the booking row and checks the actor may change it.
func (s *BookingService) loadForChange(ctx context.Context, actor domain.Actor, bookingID uuid.UUID) (*domain.Booking, error) {
	booking, err := s.repos.Bookings.GetByIDForUpdate(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if !actor.CanManage(booking.UserID) {
		return nil, domain.ErrNotOwner
	}
	return booking, nil
}

func (s *BookingService) UpdateBooking(ctx context.Context, bookingID uuid.UUID, req UpdateBookingRequest) (booking *domain.Booking, err error) {
	ctx, span := tracer.Start(ctx, "BookingService.UpdateBooking", trace.WithAttributes(attribute.String("booking.id", bookingID.String())))
	defer func() { finishSpan(span, err) }()

	actor, err := s.collab.Identity.Current(ctx)
	if err != nil {
		return nil, err
	}

	slotIDs, err := domain.NormalizeSlotIDs(req.SlotIDs)
	if err != nil {
		return nil, err
	}

	now := s.collab.Clock.Now()
	if err := domain.ValidateWindow(now, req.StartTime, req.EndTime, s.policy.Window); err != nil {
		return nil, err
	}

	var locations []uuid.UUID
	err = s.repos.Tx.WithinTx(ctx, func(ctx context.Context) error {
		b, err := s.loadForChange(ctx, actor, bookingID)
		if err != nil {
			return err
		}
		if !b.Status.IsActive() {
			return domain.ErrBookingCancelled
		}

		added, dropped := diffSlots(b.SlotIDs, slotIDs)

		slots, err := s.repos.Slots.FindForUpdate(ctx, union(b.SlotIDs, slotIDs))
		if err != nil {
			return err
		}
		byID := make(map[uuid.UUID]domain.Slot, len(slots))
		for _, slot := range slots {
			byID[slot.ID] = slot
		}
		for _, id := range added {
			slot, ok := byID[id]
			if !ok {
				return fmt.Errorf("%w: %s", domain.ErrSlotNotFound, id)
			}
			if !slot.IsAvailable && !slot.ClaimedBy(b.ID) {
				return fmt.Errorf("%w: %s", domain.ErrSlotConflict, slot.SlotNumber)
			}
		}

		if len(dropped) > 0 {
			if err := s.repos.Slots.Release(ctx, b.ID, dropped); err != nil {
				return err
			}
		}
		if len(added) > 0 {
			if err := s.repos.Slots.Claim(ctx, b.ID, added); err != nil {
				return err
			}
		}

		b.StartTime = req.StartTime.UTC()
		b.EndTime = req.EndTime.UTC()
		b.SlotIDs = slotIDs
		b.UpdatedAt = now
		if err := s.repos.Bookings.Update(ctx, b); err != nil {
			return err
		}

		if err := s.repos.Histories.Append(ctx, b.Snapshots(now)); err != nil {
			return err
		}

		booking = b
		locations = locationsOf(slots)
		return nil
	})
	if err != nil {
		return nil, err
	}

	afterCommit(ctx, s.collab, "booking.updated", newBookingEvent(booking), locations)
	s.collab.logger().Info("booking updated", zap.Stringer("booking_id", booking.ID))

	return booking, nil
}

func (s *BookingService) CancelBooking(ctx context.Context, bookingID uuid.UUID) (booking *domain.Booking, err error) {
	ctx, span := tracer.Start(ctx, "BookingService.CancelBooking", trace.WithAttributes(attribute.String("booking.id", bookingID.String())))
	defer func() { finishSpan(span, err) }()

	actor, err := s.collab.Identity.Current(ctx)
	if err != nil {
		return nil, err
	}

	now := s.collab.Clock.Now()

	var locations []uuid.UUID
	err = s.repos.Tx.WithinTx(ctx, func(ctx context.Context) error {
		b, err := s.loadForChange(ctx, actor, bookingID)
		if err != nil {
			return err
		}
		if !b.Status.CanTransitionTo(domain.BookingCancelled) {
			return domain.ErrInvalidTransition
		}

		slots, err := s.repos.Slots.FindForUpdate(ctx, b.SlotIDs)
		if err != nil {
			return err
		}

		b.Status = domain.BookingCancelled
		b.CancelledAt = null.TimeFrom(now)
		b.CancelledBy = uuid.NullUUID{UUID: actor.UserID, Valid: true}
		b.UpdatedAt = now
		if err := s.repos.Bookings.Update(ctx, b); err != nil {
			return err
		}

		if err := s.repos.Slots.Release(ctx, b.ID, b.SlotIDs); err != nil {
			return err
		}

		if err := s.repos.Histories.Append(ctx, b.Snapshots(now)); err != nil {
			return err
		}

		booking = b
		locations = locationsOf(slots)
		return nil
	})
	if err != nil {
		return nil, err
	}

	afterCommit(ctx, s.collab, "booking.cancelled", newBookingEvent(booking), locations)
	s.collab.logger().Info("booking cancelled",
		zap.Stringer("booking_id", booking.ID),
		zap.Stringer("cancelled_by", actor.UserID),
	)

	return booking, nil
}

// ConfirmBooking approves a Pending booking. Admin only.
func (s *BookingService) ConfirmBooking(ctx context.Context, bookingID uuid.UUID) (booking *domain.Booking, err error) {
	ctx, span := tracer.Start(ctx, "BookingService.ConfirmBooking", trace.WithAttributes(attribute.String("booking.id", bookingID.String())))
	defer func() { finishSpan(span, err) }()

	actor, err := s.collab.Identity.Current(ctx)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin() {
		return nil, domain.ErrAdminOnly
	}

	now := s.collab.Clock.Now()

	err = s.repos.Tx.WithinTx(ctx, func(ctx context.Context) error {
		b, err := s.repos.Bookings.GetByIDForUpdate(ctx, bookingID)
		if err != nil {
			return err
		}
		if b.Status != domain.BookingPending {
			return domain.ErrInvalidTransition
		}

		b.Status = domain.BookingConfirmed
		b.UpdatedAt = now
		if err := s.repos.Bookings.Update(ctx, b); err != nil {
			return err
		}

		if err := s.repos.Histories.Append(ctx, b.Snapshots(now)); err != nil {
			return err
		}

		booking = b
		return nil
	})
	if err != nil {
		return nil, err
	}

	afterCommit(ctx, s.collab, "booking.confirmed", newBookingEvent(booking), nil)
	s.collab.logger().Info("booking confirmed", zap.Stringer("booking_id", booking.ID))

	return booking, nil
}

// DeleteBooking removes the booking row and releases its slots. History rows
// are kept.
func (s *BookingService) DeleteBooking(ctx context.Context, bookingID uuid.UUID) error {
	return s.remove(ctx, bookingID, true)
}

// ArchiveBooking soft-deletes the booking and releases its slots.
func (s *BookingService) ArchiveBooking(ctx context.Context, bookingID uuid.UUID) error {
	return s.remove(ctx, bookingID, false)
}

func (s *BookingService) remove(ctx context.Context, bookingID uuid.UUID, hard bool) (err error) {
	ctx, span := tracer.Start(ctx, "BookingService.remove", trace.WithAttributes(
		attribute.String("booking.id", bookingID.String()),
		attribute.Bool("booking.hard_delete", hard),
	))
	defer func() { finishSpan(span, err) }()

	actor, err := s.collab.Identity.Current(ctx)
	if err != nil {
		return err
	}

	now := s.collab.Clock.Now()

	var (
		booking   *domain.Booking
		locations []uuid.UUID
	)
	err = s.repos.Tx.WithinTx(ctx, func(ctx context.Context) error {
		b, err := s.loadForChange(ctx, actor, bookingID)
		if err != nil {
			return err
		}

		billed, err := s.repos.Billings.HasActiveForBooking(ctx, b.ID, uuid.Nil)
		if err != nil {
			return err
		}
		if billed {
			return domain.ErrBookingBilled
		}

		slots, err := s.repos.Slots.FindForUpdate(ctx, b.SlotIDs)
		if err != nil {
			return err
		}

		if err := s.repos.Slots.Release(ctx, b.ID, b.SlotIDs); err != nil {
			return err
		}

		if hard {
			if err := s.repos.Bookings.Delete(ctx, b.ID); err != nil {
				return err
			}
		} else {
			b.IsDeleted = true
			b.UpdatedAt = now
			if err := s.repos.Bookings.Update(ctx, b); err != nil {
				return err
			}
		}

		booking = b
		locations = locationsOf(slots)
		return nil
	})
	if err != nil {
		return err
	}

	event := "booking.archived"
	if hard {
		event = "booking.deleted"
	}
	afterCommit(ctx, s.collab, event, newBookingEvent(booking), locations)
	s.collab.logger().Info("booking removed", zap.Stringer("booking_id", booking.ID), zap.Bool("hard", hard))

	return nil
}

func (s *BookingService) GetByID(ctx context.Context, bookingID uuid.UUID) (*domain.Booking, error) {
	actor, err := s.collab.Identity.Current(ctx)
	if err != nil {
		return nil, err
	}

	booking, err := s.repos.Bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if !actor.CanManage(booking.UserID) {
		return nil, domain.ErrNotOwner
	}

	return booking, nil
}

func (s *BookingService) GetAll(ctx context.Context) ([]domain.Booking, error) {
	if _, err := s.requireAdmin(ctx); err != nil {
		return nil, err
	}
	return s.repos.Bookings.List(ctx, domain.BookingFilter{})
}

// GetMine lists the caller's bookings. The user id always comes from the
// identity context.
func (s *BookingService) GetMine(ctx context.Context) ([]domain.Booking, error) {
	actor, err := s.collab.Identity.Current(ctx)
	if err != nil {
		return nil, err
	}
	return s.repos.Bookings.List(ctx, domain.BookingFilter{UserID: &actor.UserID})
}

// GetUnpaid lists active bookings without a non-deleted billing.
func (s *BookingService) GetUnpaid(ctx context.Context) ([]domain.Booking, error) {
	if _, err := s.requireAdmin(ctx); err != nil {
		return nil, err
	}
	return s.repos.Bookings.List(ctx, domain.BookingFilter{UnpaidOnly: true})
}

// GetHistories returns history rows oldest first. Without a booking id the
// full log is returned, which requires the admin role.
func (s *BookingService) GetHistories(ctx context.Context, bookingID *uuid.UUID) ([]domain.BookingHistory, error) {
	actor, err := s.collab.Identity.Current(ctx)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin() && bookingID == nil {
		return nil, domain.ErrAdminOnly
	}

	rows, err := s.repos.Histories.List(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if !actor.IsAdmin() {
		for _, row := range rows {
			if row.UserID != actor.UserID {
				return nil, domain.ErrNotOwner
			}
		}
	}

	return rows, nil
}

func (s *BookingService) GetHistoryByID(ctx context.Context, historyID int64) (*domain.BookingHistory, error) {
	actor, err := s.collab.Identity.Current(ctx)
	if err != nil {
		return nil, err
	}

	row, err := s.repos.Histories.GetByID(ctx, historyID)
	if err != nil {
		return nil, err
	}
	if !actor.CanManage(row.UserID) {
		return nil, domain.ErrNotOwner
	}

	return row, nil
}

func (s *BookingService) requireAdmin(ctx context.Context) (domain.Actor, error) {
	actor, err := s.collab.Identity.Current(ctx)
	if err != nil {
		return domain.Actor{}, err
	}
	if !actor.IsAdmin() {
		return domain.Actor{}, domain.ErrAdminOnly
	}
	return actor, nil
}
