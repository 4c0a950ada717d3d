package services

import (
	"context"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/srgjo27/parking_booking/internal/core/domain"
	"github.com/srgjo27/parking_booking/internal/core/ports"
)

var tracer = otel.Tracer("github.com/srgjo27/parking_booking/internal/core/services")

// Repositories groups the storage ports shared by the ledger services.
type Repositories struct {
	Tx        ports.Transactor
	Slots     ports.SlotRepository
	Bookings  ports.BookingRepository
	Histories ports.HistoryRepository
	Billings  ports.BillingRepository
}

// Collaborators groups the non-storage dependencies of the ledger services.
type Collaborators struct {
	Identity ports.IdentityProvider
	Clock    ports.Clock
	Cache    ports.SlotCache
	Events   ports.EventPublisher
	Logger   *zap.Logger
}

func (c Collaborators) logger() *zap.Logger {
	if c.Logger == nil {
		return zap.NewNop()
	}
	return c.Logger
}

func finishSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

// afterCommit runs the side effects of a committed mutation. Failures here
// never undo the mutation; they are only logged.
func afterCommit(ctx context.Context, c Collaborators, event string, payload any, locations []uuid.UUID) {
	log := c.logger()
	if c.Cache != nil && len(locations) > 0 {
		if err := c.Cache.Invalidate(ctx, locations...); err != nil {
			log.Warn("slot cache invalidation failed", zap.String("event", event), zap.Error(err))
		}
	}
	if c.Events != nil {
		if err := c.Events.Publish(ctx, event, payload); err != nil {
			log.Warn("event publish failed", zap.String("event", event), zap.Error(err))
		}
	}
}

func locationsOf(slots []domain.Slot) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(slots))
	var out []uuid.UUID
	for _, s := range slots {
		if _, ok := seen[s.LocationID]; ok {
			continue
		}
		seen[s.LocationID] = struct{}{}
		out = append(out, s.LocationID)
	}
	return out
}

// diffSlots splits a slot set change into the ids to claim and the ids to release.
func diffSlots(current, next []uuid.UUID) (added, dropped []uuid.UUID) {
	in := func(set []uuid.UUID, id uuid.UUID) bool {
		for _, v := range set {
			if v == id {
				return true
			}
		}
		return false
	}
	for _, id := range next {
		if !in(current, id) {
			added = append(added, id)
		}
	}
	for _, id := range current {
		if !in(next, id) {
			dropped = append(dropped, id)
		}
	}
	return added, dropped
}

func union(a, b []uuid.UUID) []uuid.UUID {
	out := append([]uuid.UUID{}, a...)
	added, _ := diffSlots(a, b)
	return append(out, added...)
}
