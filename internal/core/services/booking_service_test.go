package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/srgjo27/parking_booking/internal/adapter/cache"
	"github.com/srgjo27/parking_booking/internal/core/domain"
	"github.com/srgjo27/parking_booking/internal/core/ports/mocks"
	"github.com/srgjo27/parking_booking/internal/core/services"
)

type mockedLedger struct {
	tx        *mocks.Transactor
	slots     *mocks.SlotRepository
	bookings  *mocks.BookingRepository
	histories *mocks.HistoryRepository
	billings  *mocks.BillingRepository
	identity  *mocks.IdentityProvider
	clock     *mocks.Clock
	events    *mocks.EventPublisher
	redis     redismock.ClientMock
	service   *services.BookingService
}

func newMockedLedger(t *testing.T, actor domain.Actor, now time.Time) *mockedLedger {
	db, mockRedis := redismock.NewClientMock()

	m := &mockedLedger{
		tx:        mocks.NewTransactor(t),
		slots:     mocks.NewSlotRepository(t),
		bookings:  mocks.NewBookingRepository(t),
		histories: mocks.NewHistoryRepository(t),
		billings:  mocks.NewBillingRepository(t),
		identity:  mocks.NewIdentityProvider(t),
		clock:     mocks.NewClock(t),
		events:    mocks.NewEventPublisher(t),
		redis:     mockRedis,
	}

	m.identity.On("Current", mock.Anything).Return(actor, nil).Maybe()
	m.clock.On("Now").Return(now).Maybe()
	m.tx.On("WithinTx", mock.Anything, mock.Anything).
		Return(func(ctx context.Context, fn func(context.Context) error) error { return fn(ctx) }).
		Maybe()

	m.service = services.NewBookingService(
		services.Repositories{
			Tx:        m.tx,
			Slots:     m.slots,
			Bookings:  m.bookings,
			Histories: m.histories,
			Billings:  m.billings,
		},
		services.Collaborators{
			Identity: m.identity,
			Clock:    m.clock,
			Cache:    cache.NewSlotCache(db, 0),
			Events:   m.events,
		},
		services.BookingPolicy{Window: domain.WindowPolicy{MinDuration: 15 * time.Minute}},
	)

	t.Cleanup(func() {
		if err := mockRedis.ExpectationsWereMet(); err != nil {
			t.Errorf("there were unfulfilled expectations: %s", err)
		}
	})

	return m
}

func snapshotsWith(status domain.BookingStatus, n int) interface{} {
	return mock.MatchedBy(func(rows []domain.BookingHistory) bool {
		if len(rows) != n {
			return false
		}
		for _, row := range rows {
			if row.StatusSnapshot != status {
				return false
			}
		}
		return true
	})
}

func TestCreateBooking_Success(t *testing.T) {
	now := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)
	driver := domain.Actor{UserID: uuid.New(), Role: domain.RoleDriver}
	m := newMockedLedger(t, driver, now)

	locationID := uuid.New()
	slotID := uuid.New()
	slot := domain.Slot{ID: slotID, LocationID: locationID, SlotNumber: "A1", IsAvailable: true}

	m.slots.On("FindForUpdate", mock.Anything, []uuid.UUID{slotID}).Return([]domain.Slot{slot}, nil)
	m.bookings.On("Create", mock.Anything, mock.AnythingOfType("*domain.Booking")).Return(nil)
	m.slots.On("Claim", mock.Anything, mock.AnythingOfType("uuid.UUID"), []uuid.UUID{slotID}).Return(nil)
	m.histories.On("Append", mock.Anything, snapshotsWith(domain.BookingConfirmed, 1)).Return(nil)
	m.events.On("Publish", mock.Anything, "booking.created", mock.Anything).Return(nil)
	m.redis.ExpectIncr(cache.GenerationKey(locationID)).SetVal(1)

	resp, err := m.service.CreateBooking(context.Background(), services.CreateBookingRequest{
		StartTime: now.Add(time.Hour),
		EndTime:   now.Add(2 * time.Hour),
		SlotIDs:   []uuid.UUID{slotID, slotID},
	})

	require.NoError(t, err)
	assert.Equal(t, domain.BookingConfirmed, resp.Status)
	assert.Equal(t, []uuid.UUID{slotID}, resp.SlotIDs)
	assert.NotEqual(t, uuid.Nil, resp.BookingID)
}

func TestCreateBooking_Fail_SlotTaken(t *testing.T) {
	now := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)
	m := newMockedLedger(t, domain.Actor{UserID: uuid.New(), Role: domain.RoleDriver}, now)

	slotID := uuid.New()
	taken := domain.Slot{ID: slotID, LocationID: uuid.New(), SlotNumber: "A1"}
	taken.Claim(uuid.New())

	m.slots.On("FindForUpdate", mock.Anything, []uuid.UUID{slotID}).Return([]domain.Slot{taken}, nil)

	resp, err := m.service.CreateBooking(context.Background(), services.CreateBookingRequest{
		StartTime: now.Add(time.Hour),
		EndTime:   now.Add(2 * time.Hour),
		SlotIDs:   []uuid.UUID{slotID},
	})

	assert.Nil(t, resp)
	assert.ErrorIs(t, err, domain.ErrSlotConflict)
	assert.True(t, domain.IsConflict(err))
}

func TestCreateBooking_Fail_SlotMissing(t *testing.T) {
	now := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)
	m := newMockedLedger(t, domain.Actor{UserID: uuid.New(), Role: domain.RoleDriver}, now)

	known, unknown := uuid.New(), uuid.New()
	m.slots.On("FindForUpdate", mock.Anything, []uuid.UUID{known, unknown}).
		Return([]domain.Slot{{ID: known, LocationID: uuid.New(), IsAvailable: true}}, nil)

	_, err := m.service.CreateBooking(context.Background(), services.CreateBookingRequest{
		StartTime: now.Add(time.Hour),
		EndTime:   now.Add(2 * time.Hour),
		SlotIDs:   []uuid.UUID{known, unknown},
	})

	assert.ErrorIs(t, err, domain.ErrSlotNotFound)
}

func TestCreateBooking_Fail_InvalidWindow(t *testing.T) {
	now := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)
	m := newMockedLedger(t, domain.Actor{UserID: uuid.New(), Role: domain.RoleDriver}, now)

	_, err := m.service.CreateBooking(context.Background(), services.CreateBookingRequest{
		StartTime: now.Add(2 * time.Hour),
		EndTime:   now.Add(time.Hour),
		SlotIDs:   []uuid.UUID{uuid.New()},
	})

	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "end_time", verr.Field)
}

func TestCreateBooking_Fail_Unauthenticated(t *testing.T) {
	m := &mockedLedger{identity: mocks.NewIdentityProvider(t)}
	m.identity.On("Current", mock.Anything).Return(domain.Actor{}, domain.ErrUnauthenticated)

	service := services.NewBookingService(services.Repositories{}, services.Collaborators{Identity: m.identity}, services.BookingPolicy{})

	_, err := service.CreateBooking(context.Background(), services.CreateBookingRequest{})
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
}

func TestCreateBooking_CacheFailureDoesNotFail(t *testing.T) {
	now := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)
	m := newMockedLedger(t, domain.Actor{UserID: uuid.New(), Role: domain.RoleDriver}, now)

	locationID := uuid.New()
	slotID := uuid.New()

	m.slots.On("FindForUpdate", mock.Anything, []uuid.UUID{slotID}).
		Return([]domain.Slot{{ID: slotID, LocationID: locationID, IsAvailable: true}}, nil)
	m.bookings.On("Create", mock.Anything, mock.Anything).Return(nil)
	m.slots.On("Claim", mock.Anything, mock.Anything, []uuid.UUID{slotID}).Return(nil)
	m.histories.On("Append", mock.Anything, mock.Anything).Return(nil)
	m.events.On("Publish", mock.Anything, "booking.created", mock.Anything).Return(errors.New("broker down"))
	m.redis.ExpectIncr(cache.GenerationKey(locationID)).SetErr(errors.New("redis down"))

	resp, err := m.service.CreateBooking(context.Background(), services.CreateBookingRequest{
		StartTime: now.Add(time.Hour),
		EndTime:   now.Add(2 * time.Hour),
		SlotIDs:   []uuid.UUID{slotID},
	})

	assert.NoError(t, err)
	assert.NotNil(t, resp)
}

func TestUpdateBooking_SwapsOnlyChangedSlots(t *testing.T) {
	now := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)
	driver := domain.Actor{UserID: uuid.New(), Role: domain.RoleDriver}
	m := newMockedLedger(t, driver, now)

	locationID := uuid.New()
	kept, dropped, added := uuid.New(), uuid.New(), uuid.New()
	booking := &domain.Booking{
		ID:        uuid.New(),
		UserID:    driver.UserID,
		Status:    domain.BookingConfirmed,
		StartTime: now.Add(time.Hour),
		EndTime:   now.Add(2 * time.Hour),
		SlotIDs:   []uuid.UUID{kept, dropped},
	}

	keptSlot := domain.Slot{ID: kept, LocationID: locationID}
	keptSlot.Claim(booking.ID)
	droppedSlot := domain.Slot{ID: dropped, LocationID: locationID}
	droppedSlot.Claim(booking.ID)
	addedSlot := domain.Slot{ID: added, LocationID: locationID, IsAvailable: true}

	m.bookings.On("GetByIDForUpdate", mock.Anything, booking.ID).Return(booking, nil)
	m.slots.On("FindForUpdate", mock.Anything, []uuid.UUID{kept, dropped, added}).
		Return([]domain.Slot{keptSlot, droppedSlot, addedSlot}, nil)
	m.slots.On("Release", mock.Anything, booking.ID, []uuid.UUID{dropped}).Return(nil)
	m.slots.On("Claim", mock.Anything, booking.ID, []uuid.UUID{added}).Return(nil)
	m.bookings.On("Update", mock.Anything, mock.MatchedBy(func(b *domain.Booking) bool {
		return len(b.SlotIDs) == 2 && b.SlotIDs[0] == kept && b.SlotIDs[1] == added
	})).Return(nil)
	m.histories.On("Append", mock.Anything, snapshotsWith(domain.BookingConfirmed, 2)).Return(nil)
	m.events.On("Publish", mock.Anything, "booking.updated", mock.Anything).Return(nil)
	m.redis.ExpectIncr(cache.GenerationKey(locationID)).SetVal(1)

	updated, err := m.service.UpdateBooking(context.Background(), booking.ID, services.UpdateBookingRequest{
		StartTime: now.Add(3 * time.Hour),
		EndTime:   now.Add(4 * time.Hour),
		SlotIDs:   []uuid.UUID{kept, added},
	})

	require.NoError(t, err)
	assert.Equal(t, now.Add(3*time.Hour), updated.StartTime)
	assert.Equal(t, now, updated.UpdatedAt)
}

func TestUpdateBooking_Fail_Cancelled(t *testing.T) {
	now := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)
	driver := domain.Actor{UserID: uuid.New(), Role: domain.RoleDriver}
	m := newMockedLedger(t, driver, now)

	booking := &domain.Booking{ID: uuid.New(), UserID: driver.UserID, Status: domain.BookingCancelled}
	m.bookings.On("GetByIDForUpdate", mock.Anything, booking.ID).Return(booking, nil)

	_, err := m.service.UpdateBooking(context.Background(), booking.ID, services.UpdateBookingRequest{
		StartTime: now.Add(time.Hour),
		EndTime:   now.Add(2 * time.Hour),
		SlotIDs:   []uuid.UUID{uuid.New()},
	})

	assert.ErrorIs(t, err, domain.ErrBookingCancelled)
}

func TestCancelBooking_Fail_NotOwner(t *testing.T) {
	now := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)
	m := newMockedLedger(t, domain.Actor{UserID: uuid.New(), Role: domain.RoleDriver}, now)

	booking := &domain.Booking{ID: uuid.New(), UserID: uuid.New(), Status: domain.BookingConfirmed}
	m.bookings.On("GetByIDForUpdate", mock.Anything, booking.ID).Return(booking, nil)

	_, err := m.service.CancelBooking(context.Background(), booking.ID)

	assert.ErrorIs(t, err, domain.ErrNotOwner)
	assert.True(t, domain.IsForbidden(err))
}

func TestCancelBooking_Fail_AlreadyCancelled(t *testing.T) {
	now := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)
	admin := domain.Actor{UserID: uuid.New(), Role: domain.RoleAdmin}
	m := newMockedLedger(t, admin, now)

	booking := &domain.Booking{ID: uuid.New(), UserID: uuid.New(), Status: domain.BookingCancelled}
	m.bookings.On("GetByIDForUpdate", mock.Anything, booking.ID).Return(booking, nil)

	_, err := m.service.CancelBooking(context.Background(), booking.ID)

	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestCancelBooking_AdminCancelsAnyBooking(t *testing.T) {
	now := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)
	admin := domain.Actor{UserID: uuid.New(), Role: domain.RoleAdmin}
	m := newMockedLedger(t, admin, now)

	locationID := uuid.New()
	slotID := uuid.New()
	booking := &domain.Booking{ID: uuid.New(), UserID: uuid.New(), Status: domain.BookingConfirmed, SlotIDs: []uuid.UUID{slotID}}
	slot := domain.Slot{ID: slotID, LocationID: locationID}
	slot.Claim(booking.ID)

	m.bookings.On("GetByIDForUpdate", mock.Anything, booking.ID).Return(booking, nil)
	m.slots.On("FindForUpdate", mock.Anything, []uuid.UUID{slotID}).Return([]domain.Slot{slot}, nil)
	m.bookings.On("Update", mock.Anything, mock.AnythingOfType("*domain.Booking")).Return(nil)
	m.slots.On("Release", mock.Anything, booking.ID, []uuid.UUID{slotID}).Return(nil)
	m.histories.On("Append", mock.Anything, snapshotsWith(domain.BookingCancelled, 1)).Return(nil)
	m.events.On("Publish", mock.Anything, "booking.cancelled", mock.Anything).Return(nil)
	m.redis.ExpectIncr(cache.GenerationKey(locationID)).SetVal(1)

	cancelled, err := m.service.CancelBooking(context.Background(), booking.ID)

	require.NoError(t, err)
	assert.Equal(t, domain.BookingCancelled, cancelled.Status)
	assert.True(t, cancelled.CancelledAt.Valid)
	assert.Equal(t, now, cancelled.CancelledAt.Time)
	assert.Equal(t, admin.UserID, cancelled.CancelledBy.UUID)
}

func TestDeleteBooking_Fail_Billed(t *testing.T) {
	now := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)
	admin := domain.Actor{UserID: uuid.New(), Role: domain.RoleAdmin}
	m := newMockedLedger(t, admin, now)

	booking := &domain.Booking{ID: uuid.New(), UserID: uuid.New(), Status: domain.BookingConfirmed}
	m.bookings.On("GetByIDForUpdate", mock.Anything, booking.ID).Return(booking, nil)
	m.billings.On("HasActiveForBooking", mock.Anything, booking.ID, uuid.Nil).Return(true, nil)

	err := m.service.DeleteBooking(context.Background(), booking.ID)

	assert.ErrorIs(t, err, domain.ErrBookingBilled)
}

func TestGetAll_Fail_Driver(t *testing.T) {
	m := newMockedLedger(t, domain.Actor{UserID: uuid.New(), Role: domain.RoleDriver}, time.Now())

	_, err := m.service.GetAll(context.Background())

	assert.ErrorIs(t, err, domain.ErrAdminOnly)
}

func TestGetMine_UsesCallerID(t *testing.T) {
	driver := domain.Actor{UserID: uuid.New(), Role: domain.RoleDriver}
	m := newMockedLedger(t, driver, time.Now())

	m.bookings.On("List", mock.Anything, mock.MatchedBy(func(f domain.BookingFilter) bool {
		return f.UserID != nil && *f.UserID == driver.UserID && !f.UnpaidOnly
	})).Return([]domain.Booking{}, nil)

	bookings, err := m.service.GetMine(context.Background())

	assert.NoError(t, err)
	assert.Empty(t, bookings)
}

func TestGetHistories_DriverNeedsBookingID(t *testing.T) {
	driver := domain.Actor{UserID: uuid.New(), Role: domain.RoleDriver}
	m := newMockedLedger(t, driver, time.Now())

	_, err := m.service.GetHistories(context.Background(), nil)
	assert.ErrorIs(t, err, domain.ErrAdminOnly)

	bookingID := uuid.New()
	m.histories.On("List", mock.Anything, &bookingID).
		Return([]domain.BookingHistory{{ID: 1, BookingID: bookingID, UserID: uuid.New()}}, nil)

	_, err = m.service.GetHistories(context.Background(), &bookingID)
	assert.ErrorIs(t, err, domain.ErrNotOwner)
}
