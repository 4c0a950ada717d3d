package services

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/srgjo27/parking_booking/internal/core/domain"
	"github.com/srgjo27/parking_booking/internal/core/ports"
)

// SlotService serves slot listings per location through the slot cache.
type SlotService struct {
	slots  ports.SlotRepository
	cache  ports.SlotCache
	logger *zap.Logger
}

func NewSlotService(slots ports.SlotRepository, cache ports.SlotCache, logger *zap.Logger) *SlotService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SlotService{
		slots:  slots,
		cache:  cache,
		logger: logger,
	}
}

func (s *SlotService) ListSlots(ctx context.Context, locationID uuid.UUID, onlyAvailable bool) ([]domain.Slot, error) {
	if locationID == uuid.Nil {
		return nil, domain.NewValidationError("location_id", "is required")
	}

	slots, err := s.load(ctx, locationID)
	if err != nil {
		return nil, err
	}

	if !onlyAvailable {
		return slots, nil
	}

	available := make([]domain.Slot, 0, len(slots))
	for _, slot := range slots {
		if slot.IsAvailable {
			available = append(available, slot)
		}
	}
	return available, nil
}

// load reads through the cache. The generation is read before the repository
// so a listing loaded across a concurrent commit lands under a generation that
// the commit has already retired.
func (s *SlotService) load(ctx context.Context, locationID uuid.UUID) ([]domain.Slot, error) {
	if s.cache == nil {
		return s.slots.ListByLocation(ctx, locationID)
	}

	gen, err := s.cache.Generation(ctx, locationID)
	if err != nil {
		s.logger.Warn("slot cache read failed", zap.Stringer("location_id", locationID), zap.Error(err))
		return s.slots.ListByLocation(ctx, locationID)
	}

	slots, ok, err := s.cache.Get(ctx, locationID, gen)
	if err != nil {
		s.logger.Warn("slot cache read failed", zap.Stringer("location_id", locationID), zap.Error(err))
	} else if ok {
		return slots, nil
	}

	slots, err = s.slots.ListByLocation(ctx, locationID)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, locationID, gen, slots); err != nil {
		s.logger.Warn("slot cache write failed", zap.Stringer("location_id", locationID), zap.Error(err))
	}

	return slots, nil
}
