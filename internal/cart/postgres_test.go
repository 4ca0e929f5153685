package cart

import (
	"context"
	"testing"
	"time"

	"storefront/internal/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

func setupTestDB(t *testing.T) *pgxpool.Pool {
	if testing.Short() {
		t.Skip("skipping container-backed test in short mode")
	}

	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("postgres"),
		postgres.WithPassword("postgres"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pgContainer.Terminate(ctx) })

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	pool, err := pgxpool.New(ctx, connStr)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	require.NoError(t, database.Migrate(ctx, pool, zerolog.Nop()))

	return pool
}

func TestPostgresStore(t *testing.T) {
	pool := setupTestDB(t)
	exerciseStore(t, NewPostgresStore(pool, zerolog.Nop()))
}

func TestPostgresStore_ClearDeletesRow(t *testing.T) {
	pool := setupTestDB(t)
	store := NewPostgresStore(pool, zerolog.Nop())
	ctx := context.Background()
	cartID := uuid.New()

	_, err := store.Add(ctx, cartID, testItem("4.20"))
	require.NoError(t, err)
	require.NoError(t, store.Clear(ctx, cartID))

	var count int
	require.NoError(t, pool.QueryRow(ctx, `SELECT COUNT(*) FROM carts WHERE id = $1`, cartID).Scan(&count))
	assert.Equal(t, 0, count)
}

func TestPostgresStore_ConcurrentAdds(t *testing.T) {
	pool := setupTestDB(t)
	store := NewPostgresStore(pool, zerolog.Nop())
	ctx := context.Background()
	cartID := uuid.New()
	p := testItem("1.00")

	// Seed the row so every writer locks the same one.
	_, err := store.Add(ctx, cartID, p)
	require.NoError(t, err)

	const writers = 8
	errs := make(chan error, writers)
	for i := 0; i < writers; i++ {
		go func() {
			_, err := store.Add(ctx, cartID, p)
			errs <- err
		}()
	}
	for i := 0; i < writers; i++ {
		require.NoError(t, <-errs)
	}

	items, err := store.Get(ctx, cartID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, writers+1, items[0].Quantity)
}
