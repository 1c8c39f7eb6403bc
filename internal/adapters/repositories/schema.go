package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
)

// Initialize the PostgreSQL database schema.
func InitSchema(ctx context.Context, db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createDeliveriesQuery := `
	CREATE TABLE IF NOT EXISTS deliveries (
		id SERIAL PRIMARY KEY,
		address TEXT NOT NULL,
		city TEXT,
		notes TEXT,
		lat DOUBLE PRECISION,
		lon DOUBLE PRECISION,
		delivered BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);
	`

	createUsersQuery := `
	CREATE TABLE IF NOT EXISTS users (
		id SERIAL PRIMARY KEY,
		username TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		is_admin BOOLEAN NOT NULL DEFAULT FALSE
	);
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_deliveries_created_at
	ON deliveries(created_at DESC);
	`

	statements := []string{
		createDeliveriesQuery,
		createUsersQuery,
		createIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

type DeliverySeed struct {
	Address string `json:"address"`
	City    string `json:"city"`
	Notes   string `json:"notes"`
}

// Populate the deliveries table from a JSON file.
// Seeding is skipped when the table already holds rows. It returns the
// number of rows inserted.
func SeedFromJSON(ctx context.Context, db *sql.DB, jsonPath string) (int, error) {
	bytes, err := os.ReadFile(jsonPath)
	if err != nil {
		return 0, fmt.Errorf("seed deliveries: read %q: %w", jsonPath, err)
	}

	var data []DeliverySeed
	if err := json.Unmarshal(bytes, &data); err != nil {
		return 0, fmt.Errorf("seed deliveries: parse json: %w", err)
	}

	rows := make([]DeliverySeed, 0, len(data))
	for i, item := range data {
		addr := strings.TrimSpace(item.Address)
		if addr == "" {
			return 0, fmt.Errorf("seed deliveries: item at index %d: address cannot be empty", i+1)
		}
		rows = append(rows, DeliverySeed{
			Address: addr,
			City:    strings.TrimSpace(item.City),
			Notes:   strings.TrimSpace(item.Notes),
		})
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("seed deliveries: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var existing int
	if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM deliveries;`).Scan(&existing); err != nil {
		return 0, fmt.Errorf("seed deliveries: count rows: %w", err)
	}
	if existing > 0 {
		return 0, nil
	}

	stmt, err := tx.PrepareContext(ctx, `
	INSERT INTO deliveries (address, city, notes)
	VALUES ($1, NULLIF($2, ''), NULLIF($3, ''));
	`)
	if err != nil {
		return 0, fmt.Errorf("seed deliveries: prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, d := range rows {
		if _, err := stmt.ExecContext(ctx, d.Address, d.City, d.Notes); err != nil {
			return 0, fmt.Errorf("seed deliveries: insert %q: %w", d.Address, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("seed deliveries: commit tx: %w", err)
	}

	return len(rows), nil
}
