// Package memory is an in-process implementation of the ledger repositories.
// Transactions are serialized behind one mutex and work on a private copy of
// the state that replaces the committed state only on success.
package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/srgjo27/parking_booking/internal/core/domain"
)

type state struct {
	locations map[uuid.UUID]string
	users     map[uuid.UUID]string
	slots     map[uuid.UUID]domain.Slot
	bookings  map[uuid.UUID]domain.Booking
	billings  map[uuid.UUID]domain.Billing
	histories []domain.BookingHistory
	historyID int64
}

func newState() *state {
	return &state{
		locations: make(map[uuid.UUID]string),
		users:     make(map[uuid.UUID]string),
		slots:     make(map[uuid.UUID]domain.Slot),
		bookings:  make(map[uuid.UUID]domain.Booking),
		billings:  make(map[uuid.UUID]domain.Billing),
	}
}

func (s *state) clone() *state {
	c := &state{
		locations: make(map[uuid.UUID]string, len(s.locations)),
		users:     make(map[uuid.UUID]string, len(s.users)),
		slots:     make(map[uuid.UUID]domain.Slot, len(s.slots)),
		bookings:  make(map[uuid.UUID]domain.Booking, len(s.bookings)),
		billings:  make(map[uuid.UUID]domain.Billing, len(s.billings)),
		histories: append([]domain.BookingHistory(nil), s.histories...),
		historyID: s.historyID,
	}
	for k, v := range s.locations {
		c.locations[k] = v
	}
	for k, v := range s.users {
		c.users[k] = v
	}
	for k, v := range s.slots {
		c.slots[k] = v
	}
	for k, v := range s.bookings {
		c.bookings[k] = v
	}
	for k, v := range s.billings {
		c.billings[k] = v
	}
	return c
}

type txKey struct{}

// Store holds the committed state and implements ports.Transactor.
type Store struct {
	mu        sync.Mutex
	committed *state
}

func NewStore() *Store {
	return &Store{committed: newState()}
}

func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txKey{}).(*state); ok {
		return fn(ctx)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	working := s.committed.clone()
	if err := fn(context.WithValue(ctx, txKey{}, working)); err != nil {
		return err
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	s.committed = working
	return nil
}

// run executes fn against the transaction state carried by ctx, or against
// the committed state when called outside a transaction.
func (s *Store) run(ctx context.Context, fn func(st *state) error) error {
	if st, ok := ctx.Value(txKey{}).(*state); ok {
		return fn(st)
	}
	return s.WithinTx(ctx, func(ctx context.Context) error {
		return fn(ctx.Value(txKey{}).(*state))
	})
}

func (s *Store) AddLocation(id uuid.UUID, name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.committed.locations[id] = name
}

func (s *Store) AddUser(id uuid.UUID, name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.committed.users[id] = name
}

func (s *Store) AddSlot(slot domain.Slot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.committed.slots[slot.ID] = slot
}

func (s *Store) Slots() *SlotRepository { return &SlotRepository{store: s} }
func (s *Store) Bookings() *BookingRepository { return &BookingRepository{store: s} }
func (s *Store) Histories() *HistoryRepository { return &HistoryRepository{store: s} }
func (s *Store) Billings() *BillingRepository { return &BillingRepository{store: s} }
