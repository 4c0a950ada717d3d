package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/srgjo27/parking_booking/internal/core/domain"
	"github.com/srgjo27/parking_booking/internal/core/ports/mocks"
	"github.com/srgjo27/parking_booking/internal/core/services"
)

func TestListSlots_CacheHit(t *testing.T) {
	repo := mocks.NewSlotRepository(t)
	slotCache := mocks.NewSlotCache(t)
	service := services.NewSlotService(repo, slotCache, nil)

	locationID := uuid.New()
	cached := []domain.Slot{
		{ID: uuid.New(), LocationID: locationID, SlotNumber: "A1", IsAvailable: true},
		{ID: uuid.New(), LocationID: locationID, SlotNumber: "A2"},
	}
	slotCache.On("Generation", mock.Anything, locationID).Return(int64(4), nil)
	slotCache.On("Get", mock.Anything, locationID, int64(4)).Return(cached, true, nil)

	slots, err := service.ListSlots(context.Background(), locationID, true)

	assert.NoError(t, err)
	assert.Equal(t, cached[:1], slots)
}

func TestListSlots_CacheMissFillsCache(t *testing.T) {
	repo := mocks.NewSlotRepository(t)
	slotCache := mocks.NewSlotCache(t)
	service := services.NewSlotService(repo, slotCache, nil)

	locationID := uuid.New()
	stored := []domain.Slot{{ID: uuid.New(), LocationID: locationID, SlotNumber: "B1", IsAvailable: true}}

	slotCache.On("Generation", mock.Anything, locationID).Return(int64(0), nil)
	slotCache.On("Get", mock.Anything, locationID, int64(0)).Return(nil, false, nil)
	repo.On("ListByLocation", mock.Anything, locationID).Return(stored, nil)
	slotCache.On("Set", mock.Anything, locationID, int64(0), stored).Return(nil)

	slots, err := service.ListSlots(context.Background(), locationID, false)

	assert.NoError(t, err)
	assert.Equal(t, stored, slots)
}

// A commit that lands while the listing is being loaded bumps the generation;
// the loaded listing is stored under the generation read before the load.
func TestListSlots_FillUsesGenerationReadBeforeLoad(t *testing.T) {
	repo := mocks.NewSlotRepository(t)
	slotCache := mocks.NewSlotCache(t)
	service := services.NewSlotService(repo, slotCache, nil)

	locationID := uuid.New()
	stale := []domain.Slot{{ID: uuid.New(), LocationID: locationID, SlotNumber: "B1", IsAvailable: true}}

	generation := int64(1)
	slotCache.On("Generation", mock.Anything, locationID).Return(func(context.Context, uuid.UUID) (int64, error) {
		return generation, nil
	})
	slotCache.On("Get", mock.Anything, locationID, int64(1)).Return(nil, false, nil)
	repo.On("ListByLocation", mock.Anything, locationID).Run(func(mock.Arguments) {
		generation = 2
	}).Return(stale, nil)
	slotCache.On("Set", mock.Anything, locationID, int64(1), stale).Return(nil)

	_, err := service.ListSlots(context.Background(), locationID, false)

	assert.NoError(t, err)
	slotCache.AssertNotCalled(t, "Set", mock.Anything, locationID, int64(2), mock.Anything)
}

func TestListSlots_CacheErrorFallsBackToRepository(t *testing.T) {
	repo := mocks.NewSlotRepository(t)
	slotCache := mocks.NewSlotCache(t)
	service := services.NewSlotService(repo, slotCache, nil)

	locationID := uuid.New()
	stored := []domain.Slot{{ID: uuid.New(), LocationID: locationID, SlotNumber: "C1"}}

	slotCache.On("Generation", mock.Anything, locationID).Return(int64(0), nil)
	slotCache.On("Get", mock.Anything, locationID, int64(0)).Return(nil, false, errors.New("redis down"))
	repo.On("ListByLocation", mock.Anything, locationID).Return(stored, nil)
	slotCache.On("Set", mock.Anything, locationID, int64(0), stored).Return(errors.New("redis down"))

	slots, err := service.ListSlots(context.Background(), locationID, true)

	assert.NoError(t, err)
	assert.Empty(t, slots)
}

func TestListSlots_GenerationErrorSkipsCache(t *testing.T) {
	repo := mocks.NewSlotRepository(t)
	slotCache := mocks.NewSlotCache(t)
	service := services.NewSlotService(repo, slotCache, nil)

	locationID := uuid.New()
	stored := []domain.Slot{{ID: uuid.New(), LocationID: locationID, SlotNumber: "C2", IsAvailable: true}}

	slotCache.On("Generation", mock.Anything, locationID).Return(int64(0), errors.New("redis down"))
	repo.On("ListByLocation", mock.Anything, locationID).Return(stored, nil)

	slots, err := service.ListSlots(context.Background(), locationID, false)

	assert.NoError(t, err)
	assert.Equal(t, stored, slots)
}

func TestListSlots_RequiresLocation(t *testing.T) {
	service := services.NewSlotService(mocks.NewSlotRepository(t), nil, nil)

	_, err := service.ListSlots(context.Background(), uuid.Nil, false)

	assert.True(t, domain.IsValidation(err))
}
