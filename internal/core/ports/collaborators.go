package ports

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/srgjo27/parking_booking/internal/core/domain"
)

// Clock supplies server-authoritative time.
type Clock interface {
	Now() time.Time
}

// IdentityProvider resolves the caller of the current operation. It returns
// domain.ErrUnauthenticated when no user is attached to ctx.
type IdentityProvider interface {
	Current(ctx context.Context) (domain.Actor, error)
}

// SlotCache caches slot listings per location under a generation number.
// Invalidate bumps the generation, so a listing stored under an older
// generation is never served again.
type SlotCache interface {
	Generation(ctx context.Context, locationID uuid.UUID) (int64, error)
	Get(ctx context.Context, locationID uuid.UUID, generation int64) ([]domain.Slot, bool, error)
	Set(ctx context.Context, locationID uuid.UUID, generation int64, slots []domain.Slot) error
	Invalidate(ctx context.Context, locationIDs ...uuid.UUID) error
}

// EventPublisher emits domain events after a transaction commits.
type EventPublisher interface {
	Publish(ctx context.Context, key string, payload any) error
}
