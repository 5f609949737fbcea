package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/HerbHall/plantmatch/internal/store"
)

// WishlistItem is a plant a user has saved for later.
type WishlistItem struct {
	UserID  string    `json:"user_id"`
	PlantID int       `json:"plant_id"`
	AddedAt time.Time `json:"added_at"`
}

// WishlistRepository provides access to per-user wishlists.
type WishlistRepository interface {
	// Add saves a plant. Returns ErrAlreadyExists if it is already saved.
	Add(ctx context.Context, userID string, plantID int) (*WishlistItem, error)

	// Remove deletes a plant. Returns ErrNotFound if it was not saved.
	Remove(ctx context.Context, userID string, plantID int) error

	// RemoveMany deletes every listed plant that is saved and returns how
	// many were removed.
	RemoveMany(ctx context.Context, userID string, plantIDs []int) (int, error)

	// List returns the user's items, most recently added first.
	List(ctx context.Context, userID string) ([]WishlistItem, error)

	// Contains reports whether the plant is saved.
	Contains(ctx context.Context, userID string, plantID int) (bool, error)

	// Count returns the number of saved plants.
	Count(ctx context.Context, userID string) (int, error)
}

// Compile-time interface guard.
var _ WishlistRepository = (*SQLiteWishlistRepository)(nil)

// SQLiteWishlistRepository implements WishlistRepository using SQLite.
type SQLiteWishlistRepository struct {
	db    *sql.DB
	clock Clock
}

// NewSQLiteWishlistRepository creates a WishlistRepository and runs the
// wishlist migrations. A nil clock uses the system time.
func NewSQLiteWishlistRepository(ctx context.Context, s store.Store, clock Clock) (*SQLiteWishlistRepository, error) {
	if err := s.Migrate(ctx, "wishlist", wishlistMigrations); err != nil {
		return nil, fmt.Errorf("wishlist migrations: %w", err)
	}
	return &SQLiteWishlistRepository{db: s.DB(), clock: clockOrSystem(clock)}, nil
}

func (r *SQLiteWishlistRepository) Add(ctx context.Context, userID string, plantID int) (*WishlistItem, error) {
	item := &WishlistItem{UserID: userID, PlantID: plantID, AddedAt: r.clock.Now().UTC()}
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO wishlist_items (user_id, plant_id, added_at) VALUES (?, ?, ?)
		ON CONFLICT (user_id, plant_id) DO NOTHING`,
		item.UserID, item.PlantID, item.AddedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("add wishlist item %d: %w", plantID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, ErrAlreadyExists
	}
	return item, nil
}

func (r *SQLiteWishlistRepository) Remove(ctx context.Context, userID string, plantID int) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM wishlist_items WHERE user_id = ? AND plant_id = ?`, userID, plantID)
	if err != nil {
		return fmt.Errorf("remove wishlist item %d: %w", plantID, err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *SQLiteWishlistRepository) RemoveMany(ctx context.Context, userID string, plantIDs []int) (int, error) {
	if len(plantIDs) == 0 {
		return 0, nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(plantIDs)), ",")
	args := make([]any, 0, len(plantIDs)+1)
	args = append(args, userID)
	for _, id := range plantIDs {
		args = append(args, id)
	}

	res, err := r.db.ExecContext(ctx,
		`DELETE FROM wishlist_items WHERE user_id = ? AND plant_id IN (`+placeholders+`)`, args...)
	if err != nil {
		return 0, fmt.Errorf("remove wishlist items: %w", err)
	}
	n, _ := res.RowsAffected()
	return int(n), nil
}

func (r *SQLiteWishlistRepository) List(ctx context.Context, userID string) ([]WishlistItem, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT user_id, plant_id, added_at FROM wishlist_items
		WHERE user_id = ?
		ORDER BY added_at DESC, rowid DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list wishlist: %w", err)
	}
	defer rows.Close()

	items := []WishlistItem{}
	for rows.Next() {
		var it WishlistItem
		if err := rows.Scan(&it.UserID, &it.PlantID, &it.AddedAt); err != nil {
			return nil, fmt.Errorf("scan wishlist row: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func (r *SQLiteWishlistRepository) Contains(ctx context.Context, userID string, plantID int) (bool, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM wishlist_items WHERE user_id = ? AND plant_id = ?`,
		userID, plantID,
	).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("check wishlist item %d: %w", plantID, err)
	}
	return n > 0, nil
}

func (r *SQLiteWishlistRepository) Count(ctx context.Context, userID string) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM wishlist_items WHERE user_id = ?`, userID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count wishlist: %w", err)
	}
	return n, nil
}

var wishlistMigrations = []store.Migration{
	{
		Version:     1,
		Description: "create wishlist_items table",
		Up: func(tx *sql.Tx) error {
			_, err := tx.Exec(`
				CREATE TABLE wishlist_items (
					user_id  TEXT NOT NULL,
					plant_id INTEGER NOT NULL,
					added_at DATETIME NOT NULL,
					PRIMARY KEY (user_id, plant_id)
				)`)
			return err
		},
	},
}
