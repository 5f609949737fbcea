package services

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/HerbHall/plantmatch/internal/store"
)

// StopReason records why a user stopped growing a plant.
type StopReason string

const (
	StopReasonDied        StopReason = "died"
	StopReasonNotSuitable StopReason = "not_suitable"
)

// Valid reports whether r is a known reason.
func (r StopReason) Valid() bool {
	return r == StopReasonDied || r == StopReasonNotSuitable
}

// GardenEntry is a plant a user is currently growing.
type GardenEntry struct {
	ID              string     `json:"id"`
	UserID          string     `json:"user_id"`
	PlantID         int        `json:"plant_id"`
	PlantName       string     `json:"plant_name"`
	Image           string     `json:"image,omitempty"`
	PlantedAt       time.Time  `json:"planted_at"`
	LastWateredAt   *time.Time `json:"last_watered_at,omitempty"`
	WateringHistory []string   `json:"watering_history"`
}

// WateredOn reports whether the log has an entry for the given day.
func (e *GardenEntry) WateredOn(d string) bool {
	for _, w := range e.WateringHistory {
		if w == d {
			return true
		}
	}
	return false
}

// HistoryEntry is a garden entry the user stopped growing.
type HistoryEntry struct {
	ID                string     `json:"id"`
	UserID            string     `json:"user_id"`
	PlantID           int        `json:"plant_id"`
	PlantName         string     `json:"plant_name"`
	Image             string     `json:"image,omitempty"`
	PlantedAt         time.Time  `json:"planted_at"`
	StoppedAt         time.Time  `json:"stopped_at"`
	Reason            StopReason `json:"reason"`
	TotalWateringDays int        `json:"total_watering_days"`
	WateringHistory   []string   `json:"watering_history"`
}

// GardenSummary counts a user's garden entries needing attention.
type GardenSummary struct {
	Total          int `json:"total"`
	UnwateredToday int `json:"unwatered_today"`
	Overdue        int `json:"overdue"`
}

// OverdueAfter is how long an unwatered entry may go before it counts as
// overdue.
const OverdueAfter = 3 * 24 * time.Hour

// GardenRepository provides access to garden entries and plant history.
// Every method is scoped to a single user; entries of other users read as
// ErrNotFound.
type GardenRepository interface {
	// Add plants a new entry and returns it.
	Add(ctx context.Context, userID string, plantID int, plantName, image string) (*GardenEntry, error)

	// Get returns a single entry.
	Get(ctx context.Context, userID, entryID string) (*GardenEntry, error)

	// List returns the user's entries, oldest planting first.
	List(ctx context.Context, userID string) ([]GardenEntry, error)

	// MarkWatered records a watering for today. Repeated calls on the same
	// day leave the log unchanged.
	MarkWatered(ctx context.Context, userID, entryID string) (*GardenEntry, error)

	// Stop removes an entry from the garden and records it in history.
	Stop(ctx context.Context, userID, entryID string, reason StopReason) (*HistoryEntry, error)

	// History returns the user's stopped entries, most recently stopped first.
	History(ctx context.Context, userID string) ([]HistoryEntry, error)

	// ClearHistory deletes all history for the user and returns the count.
	ClearHistory(ctx context.Context, userID string) (int, error)

	// Summary counts entries not watered today and entries overdue.
	Summary(ctx context.Context, userID string) (GardenSummary, error)
}

// Compile-time interface guard.
var _ GardenRepository = (*SQLiteGardenRepository)(nil)

// SQLiteGardenRepository implements GardenRepository using SQLite.
type SQLiteGardenRepository struct {
	store store.Store
	db    *sql.DB
	clock Clock
}

// NewSQLiteGardenRepository creates a GardenRepository and runs the garden
// migrations. A nil clock uses the system time.
func NewSQLiteGardenRepository(ctx context.Context, s store.Store, clock Clock) (*SQLiteGardenRepository, error) {
	if err := s.Migrate(ctx, "garden", gardenMigrations); err != nil {
		return nil, fmt.Errorf("garden migrations: %w", err)
	}
	return &SQLiteGardenRepository{store: s, db: s.DB(), clock: clockOrSystem(clock)}, nil
}

func (r *SQLiteGardenRepository) Add(ctx context.Context, userID string, plantID int, plantName, image string) (*GardenEntry, error) {
	e := &GardenEntry{
		ID:              uuid.New().String(),
		UserID:          userID,
		PlantID:         plantID,
		PlantName:       plantName,
		Image:           image,
		PlantedAt:       r.clock.Now().UTC(),
		WateringHistory: []string{},
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO garden_entries (id, user_id, plant_id, plant_name, image, planted_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		e.ID, e.UserID, e.PlantID, e.PlantName, e.Image, e.PlantedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("add garden entry: %w", err)
	}
	return e, nil
}

func (r *SQLiteGardenRepository) Get(ctx context.Context, userID, entryID string) (*GardenEntry, error) {
	return getGardenEntry(ctx, r.db, userID, entryID)
}

func (r *SQLiteGardenRepository) List(ctx context.Context, userID string) ([]GardenEntry, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, plant_id, plant_name, image, planted_at, last_watered_at
		FROM garden_entries WHERE user_id = ?
		ORDER BY planted_at, rowid`, userID)
	if err != nil {
		return nil, fmt.Errorf("list garden: %w", err)
	}
	defer rows.Close()

	entries := []GardenEntry{}
	for rows.Next() {
		e, err := scanGardenEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scan garden row: %w", err)
		}
		entries = append(entries, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range entries {
		h, err := wateringHistory(ctx, r.db, entries[i].ID)
		if err != nil {
			return nil, err
		}
		entries[i].WateringHistory = h
	}
	return entries, nil
}

func (r *SQLiteGardenRepository) MarkWatered(ctx context.Context, userID, entryID string) (*GardenEntry, error) {
	now := r.clock.Now().UTC()
	today := day(now)

	var out *GardenEntry
	err := r.store.Tx(ctx, func(tx *sql.Tx) error {
		e, err := getGardenEntry(ctx, tx, userID, entryID)
		if err != nil {
			return err
		}
		if e.WateredOn(today) {
			out = e
			return nil
		}

		if _, err := tx.ExecContext(ctx,
			`INSERT INTO garden_waterings (entry_id, day) VALUES (?, ?)`, entryID, today); err != nil {
			return fmt.Errorf("record watering: %w", err)
		}
		if _, err := tx.ExecContext(ctx,
			`UPDATE garden_entries SET last_watered_at = ? WHERE id = ?`, now, entryID); err != nil {
			return fmt.Errorf("update last watered: %w", err)
		}
		e.WateringHistory = append(e.WateringHistory, today)
		e.LastWateredAt = &now
		out = e
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *SQLiteGardenRepository) Stop(ctx context.Context, userID, entryID string, reason StopReason) (*HistoryEntry, error) {
	if !reason.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidReason, reason)
	}

	var out *HistoryEntry
	err := r.store.Tx(ctx, func(tx *sql.Tx) error {
		e, err := getGardenEntry(ctx, tx, userID, entryID)
		if err != nil {
			return err
		}

		h := &HistoryEntry{
			ID:                uuid.New().String(),
			UserID:            e.UserID,
			PlantID:           e.PlantID,
			PlantName:         e.PlantName,
			Image:             e.Image,
			PlantedAt:         e.PlantedAt,
			StoppedAt:         r.clock.Now().UTC(),
			Reason:            reason,
			TotalWateringDays: len(e.WateringHistory),
			WateringHistory:   e.WateringHistory,
		}
		log, err := json.Marshal(h.WateringHistory)
		if err != nil {
			return fmt.Errorf("encode watering history: %w", err)
		}

		if _, err := tx.ExecContext(ctx, `
			INSERT INTO plant_history (id, user_id, plant_id, plant_name, image,
				planted_at, stopped_at, reason, total_watering_days, watering_history)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			h.ID, h.UserID, h.PlantID, h.PlantName, h.Image,
			h.PlantedAt, h.StoppedAt, string(h.Reason), h.TotalWateringDays, string(log),
		); err != nil {
			return fmt.Errorf("insert history: %w", err)
		}
		if _, err := tx.ExecContext(ctx,
			`DELETE FROM garden_entries WHERE id = ?`, entryID); err != nil {
			return fmt.Errorf("delete garden entry: %w", err)
		}
		out = h
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *SQLiteGardenRepository) History(ctx context.Context, userID string) ([]HistoryEntry, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, plant_id, plant_name, image, planted_at, stopped_at,
			reason, total_watering_days, watering_history
		FROM plant_history WHERE user_id = ?
		ORDER BY stopped_at DESC, rowid DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}
	defer rows.Close()

	entries := []HistoryEntry{}
	for rows.Next() {
		var (
			h      HistoryEntry
			reason string
			log    string
		)
		if err := rows.Scan(&h.ID, &h.UserID, &h.PlantID, &h.PlantName, &h.Image,
			&h.PlantedAt, &h.StoppedAt, &reason, &h.TotalWateringDays, &log); err != nil {
			return nil, fmt.Errorf("scan history row: %w", err)
		}
		h.Reason = StopReason(reason)
		if err := json.Unmarshal([]byte(log), &h.WateringHistory); err != nil {
			return nil, fmt.Errorf("decode watering history of %s: %w", h.ID, err)
		}
		if h.WateringHistory == nil {
			h.WateringHistory = []string{}
		}
		entries = append(entries, h)
	}
	return entries, rows.Err()
}

func (r *SQLiteGardenRepository) ClearHistory(ctx context.Context, userID string) (int, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM plant_history WHERE user_id = ?`, userID)
	if err != nil {
		return 0, fmt.Errorf("clear history: %w", err)
	}
	n, _ := res.RowsAffected()
	return int(n), nil
}

func (r *SQLiteGardenRepository) Summary(ctx context.Context, userID string) (GardenSummary, error) {
	entries, err := r.List(ctx, userID)
	if err != nil {
		return GardenSummary{}, err
	}

	now := r.clock.Now().UTC()
	today := day(now)
	cutoff := day(now.Add(-OverdueAfter))

	s := GardenSummary{Total: len(entries)}
	for i := range entries {
		if entries[i].WateredOn(today) {
			continue
		}
		s.UnwateredToday++

		// Days are zero-padded, so string order is date order.
		h := entries[i].WateringHistory
		if len(h) == 0 || h[len(h)-1] < cutoff {
			s.Overdue++
		}
	}
	return s, nil
}

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanGardenEntry(row rowScanner) (*GardenEntry, error) {
	var (
		e       GardenEntry
		watered sql.NullTime
	)
	if err := row.Scan(&e.ID, &e.UserID, &e.PlantID, &e.PlantName, &e.Image,
		&e.PlantedAt, &watered); err != nil {
		return nil, err
	}
	if watered.Valid {
		t := watered.Time
		e.LastWateredAt = &t
	}
	return &e, nil
}

func getGardenEntry(ctx context.Context, q querier, userID, entryID string) (*GardenEntry, error) {
	row := q.QueryRowContext(ctx, `
		SELECT id, user_id, plant_id, plant_name, image, planted_at, last_watered_at
		FROM garden_entries WHERE id = ? AND user_id = ?`, entryID, userID)
	e, err := scanGardenEntry(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get garden entry %q: %w", entryID, err)
	}
	h, err := wateringHistory(ctx, q, entryID)
	if err != nil {
		return nil, err
	}
	e.WateringHistory = h
	return e, nil
}

func wateringHistory(ctx context.Context, q querier, entryID string) ([]string, error) {
	rows, err := q.QueryContext(ctx,
		`SELECT day FROM garden_waterings WHERE entry_id = ? ORDER BY day`, entryID)
	if err != nil {
		return nil, fmt.Errorf("list waterings of %q: %w", entryID, err)
	}
	defer rows.Close()

	days := []string{}
	for rows.Next() {
		var d string
		if err := rows.Scan(&d); err != nil {
			return nil, fmt.Errorf("scan watering row: %w", err)
		}
		days = append(days, d)
	}
	return days, rows.Err()
}

// gardenMigrations defines the schema for garden entries, their watering
// log and plant history.
var gardenMigrations = []store.Migration{
	{
		Version:     1,
		Description: "create garden_entries and garden_waterings tables",
		Up: func(tx *sql.Tx) error {
			stmts := []string{
				`CREATE TABLE garden_entries (
					id              TEXT PRIMARY KEY,
					user_id         TEXT NOT NULL,
					plant_id        INTEGER NOT NULL,
					plant_name      TEXT NOT NULL DEFAULT '',
					image           TEXT NOT NULL DEFAULT '',
					planted_at      DATETIME NOT NULL,
					last_watered_at DATETIME
				)`,
				`CREATE INDEX idx_garden_entries_user ON garden_entries(user_id)`,
				`CREATE TABLE garden_waterings (
					entry_id TEXT NOT NULL REFERENCES garden_entries(id) ON DELETE CASCADE,
					day      TEXT NOT NULL,
					PRIMARY KEY (entry_id, day)
				)`,
			}
			for _, s := range stmts {
				if _, err := tx.Exec(s); err != nil {
					return err
				}
			}
			return nil
		},
	},
	{
		Version:     2,
		Description: "create plant_history table",
		Up: func(tx *sql.Tx) error {
			stmts := []string{
				`CREATE TABLE plant_history (
					id                  TEXT PRIMARY KEY,
					user_id             TEXT NOT NULL,
					plant_id            INTEGER NOT NULL,
					plant_name          TEXT NOT NULL DEFAULT '',
					image               TEXT NOT NULL DEFAULT '',
					planted_at          DATETIME NOT NULL,
					stopped_at          DATETIME NOT NULL,
					reason              TEXT NOT NULL,
					total_watering_days INTEGER NOT NULL DEFAULT 0,
					watering_history    TEXT NOT NULL DEFAULT '[]'
				)`,
				`CREATE INDEX idx_plant_history_user ON plant_history(user_id, stopped_at)`,
			}
			for _, s := range stmts {
				if _, err := tx.Exec(s); err != nil {
					return err
				}
			}
			return nil
		},
	},
}
