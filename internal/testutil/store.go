package testutil

import (
	"context"
	"testing"

	"github.com/HerbHall/plantmatch/internal/services"
	"github.com/HerbHall/plantmatch/internal/store"
)

// NewStore creates an in-memory SQLiteStore for testing.
// The store is automatically closed when the test completes.
func NewStore(t *testing.T) *store.SQLiteStore {
	t.Helper()
	db, err := store.New(":memory:")
	if err != nil {
		t.Fatalf("testutil.NewStore: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

// NewGardenRepository returns a migrated garden repository on a fresh
// in-memory store, reading time from clock.
func NewGardenRepository(t *testing.T, clock services.Clock) *services.SQLiteGardenRepository {
	t.Helper()
	repo, err := services.NewSQLiteGardenRepository(context.Background(), NewStore(t), clock)
	if err != nil {
		t.Fatalf("testutil.NewGardenRepository: %v", err)
	}
	return repo
}

// NewWishlistRepository is the wishlist counterpart of NewGardenRepository.
func NewWishlistRepository(t *testing.T, clock services.Clock) *services.SQLiteWishlistRepository {
	t.Helper()
	repo, err := services.NewSQLiteWishlistRepository(context.Background(), NewStore(t), clock)
	if err != nil {
		t.Fatalf("testutil.NewWishlistRepository: %v", err)
	}
	return repo
}
