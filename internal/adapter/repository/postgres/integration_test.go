package postgres_test

import (
	"context"
	"database/sql"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	_ "github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/srgjo27/parking_booking/internal/adapter/identity"
	"github.com/srgjo27/parking_booking/internal/adapter/repository/postgres"
	"github.com/srgjo27/parking_booking/internal/core/domain"
	"github.com/srgjo27/parking_booking/internal/core/services"
	"github.com/srgjo27/parking_booking/internal/platform/clock"
	"github.com/srgjo27/parking_booking/internal/platform/database"
)

// openTestDB connects to the database named by PARKING_TEST_DATABASE_URL and
// skips the test when it is unset.
func openTestDB(t *testing.T) *sql.DB {
	t.Helper()

	dsn := os.Getenv("PARKING_TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("PARKING_TEST_DATABASE_URL not set")
	}

	db, err := sql.Open("postgres", dsn)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	require.NoError(t, db.PingContext(ctx))
	require.NoError(t, database.Migrate(ctx, db))

	return db
}

func TestIntegration_ConcurrentCreatesOnOneSlot(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	locationID, slotID := uuid.New(), uuid.New()
	_, err := db.ExecContext(ctx, `INSERT INTO locations (id, name) VALUES ($1, $2)`, locationID, "Integration Garage")
	require.NoError(t, err)
	_, err = db.ExecContext(ctx, `INSERT INTO slots (id, location_id, slot_number, is_available) VALUES ($1, $2, $3, TRUE)`, slotID, locationID, "I1")
	require.NoError(t, err)

	repos := services.Repositories{
		Tx:        postgres.NewTxManager(db),
		Slots:     postgres.NewSlotRepository(db),
		Bookings:  postgres.NewBookingRepository(db),
		Histories: postgres.NewHistoryRepository(db),
		Billings:  postgres.NewBillingRepository(db),
	}
	collab := services.Collaborators{Identity: identity.ContextProvider{}, Clock: clock.System{}}
	svc := services.NewBookingService(repos, collab, services.BookingPolicy{})

	start := time.Now().UTC().Add(time.Hour).Truncate(time.Second)

	const attempts = 20
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		winners   []uuid.UUID
		conflicts int
		others    []error
	)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			actor := domain.Actor{UserID: uuid.New(), Role: domain.RoleDriver}
			resp, err := svc.CreateBooking(identity.WithActor(ctx, actor), services.CreateBookingRequest{
				StartTime: start,
				EndTime:   start.Add(time.Hour),
				SlotIDs:   []uuid.UUID{slotID},
			})

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				winners = append(winners, resp.BookingID)
			case domain.IsConflict(err):
				conflicts++
			default:
				others = append(others, err)
			}
		}()
	}
	wg.Wait()

	require.Empty(t, others)
	require.Len(t, winners, 1)
	assert.Equal(t, attempts-1, conflicts)

	slots, err := repos.Slots.ListByLocation(ctx, locationID)
	require.NoError(t, err)
	require.Len(t, slots, 1)
	assert.True(t, slots[0].ClaimedBy(winners[0]))

	var bookings int
	require.NoError(t, db.QueryRowContext(ctx,
		`SELECT count(*) FROM booking_slots WHERE slot_id = $1`, slotID).Scan(&bookings))
	assert.Equal(t, 1, bookings)
}
