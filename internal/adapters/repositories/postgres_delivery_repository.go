package repositories

import (
	"context"
	"database/sql"
	"delivery-route-map/internal/domain"
	"delivery-route-map/internal/platform/obs"
	"errors"
	"fmt"
	"strings"
)

// PostgreSQL-backed implementation of the DeliveryRepository port.
type PostgresDeliveryRepository struct{ DB *sql.DB }

func NewPostgresDeliveryRepository(db *sql.DB) *PostgresDeliveryRepository {
	return &PostgresDeliveryRepository{DB: db}
}

const deliveryColumns = `id, address, COALESCE(city, ''), COALESCE(notes, ''), lat, lon, delivered, created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDelivery(row rowScanner) (*domain.Delivery, error) {
	var (
		d        domain.Delivery
		lat, lon sql.NullFloat64
	)
	if err := row.Scan(&d.ID, &d.Address, &d.City, &d.Notes, &lat, &lon, &d.Delivered, &d.CreatedAt); err != nil {
		return nil, err
	}
	if lat.Valid {
		d.Lat = &lat.Float64
	}
	if lon.Valid {
		d.Lon = &lon.Float64
	}
	return &d, nil
}

// Return all deliveries, newest first.
func (s *PostgresDeliveryRepository) ListDeliveries(ctx context.Context) (_ []*domain.Delivery, err error) {
	defer obs.Time(ctx, "deliveries.List")(&err)

	if s.DB == nil {
		return nil, errors.New("postgres delivery repository: DB is nil")
	}

	query := `SELECT ` + deliveryColumns + `
	FROM deliveries
	ORDER BY created_at DESC, id DESC;
	`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list deliveries: query deliveries table: %w", err)
	}
	defer rows.Close()

	deliveries := make([]*domain.Delivery, 0, 64)
	for rows.Next() {
		d, err := scanDelivery(rows)
		if err != nil {
			return nil, fmt.Errorf("list deliveries: scan row: %w", err)
		}
		deliveries = append(deliveries, d)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list deliveries: row iteration: %w", err)
	}

	return deliveries, nil
}

func (s *PostgresDeliveryRepository) GetDelivery(ctx context.Context, id int) (*domain.Delivery, error) {
	if s.DB == nil {
		return nil, errors.New("postgres delivery repository: DB is nil")
	}

	query := `SELECT ` + deliveryColumns + ` FROM deliveries WHERE id = $1;`

	d, err := scanDelivery(s.DB.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get delivery id=%d: %w", id, domain.ErrDeliveryNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get delivery id=%d: %w", id, err)
	}

	return d, nil
}

func (s *PostgresDeliveryRepository) AddDelivery(ctx context.Context, nd domain.NewDelivery) (*domain.Delivery, error) {
	if s.DB == nil {
		return nil, errors.New("postgres delivery repository: DB is nil")
	}

	address := strings.TrimSpace(nd.Address)
	if address == "" {
		return nil, errors.New("add delivery: address must be non-empty")
	}

	query := `
	INSERT INTO deliveries (address, city, notes)
	VALUES ($1, NULLIF($2, ''), NULLIF($3, ''))
	RETURNING ` + deliveryColumns + `;
	`

	d, err := scanDelivery(s.DB.QueryRowContext(ctx, query, address, strings.TrimSpace(nd.City), strings.TrimSpace(nd.Notes)))
	if err != nil {
		return nil, fmt.Errorf("add delivery: insert: %w", err)
	}

	return d, nil
}

func (s *PostgresDeliveryRepository) UpdateCoordinates(ctx context.Context, id int, c domain.Coordinates) error {
	if s.DB == nil {
		return errors.New("postgres delivery repository: DB is nil")
	}

	res, err := s.DB.ExecContext(ctx, `UPDATE deliveries SET lat = $1, lon = $2 WHERE id = $3;`, c.Lat, c.Lng, id)
	if err != nil {
		return fmt.Errorf("update coordinates id=%d: %w", id, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update coordinates id=%d: rows affected: %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("update coordinates id=%d: %w", id, domain.ErrDeliveryNotFound)
	}

	return nil
}
