package repositories

import (
	"context"
	"database/sql"
	"delivery-route-map/internal/domain"
	"fmt"
	"strings"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
)

type userRow struct {
	ID           int    `db:"id"`
	Username     string `db:"username"`
	PasswordHash string `db:"password_hash"`
	IsAdmin      bool   `db:"is_admin"`
}

func (r userRow) toDomain() *domain.User {
	return &domain.User{
		ID:           r.ID,
		Username:     r.Username,
		PasswordHash: r.PasswordHash,
		IsAdmin:      r.IsAdmin,
	}
}

// PostgreSQL-backed implementation of the UserRepository port.
type PostgresUserRepository struct {
	db *goqu.Database
}

func NewPostgresUserRepository(db *sql.DB) *PostgresUserRepository {
	return &PostgresUserRepository{db: goqu.New("postgres", db)}
}

func (s *PostgresUserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	var row userRow

	found, err := s.db.From("users").
		Select("id", "username", "password_hash", "is_admin").
		Where(goqu.Ex{"username": username}).
		ScanStructContext(ctx, &row)
	if err != nil {
		return nil, fmt.Errorf("find user %q: %w", username, err)
	}
	if !found {
		return nil, fmt.Errorf("find user %q: %w", username, domain.ErrUserNotFound)
	}

	return row.toDomain(), nil
}

// CreateUser inserts a user; an existing username yields domain.ErrUserExists.
func (s *PostgresUserRepository) CreateUser(ctx context.Context, username, passwordHash string, isAdmin bool) (*domain.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, fmt.Errorf("create user: username must be non-empty")
	}

	var id int
	found, err := s.db.Insert("users").
		Rows(goqu.Record{
			"username":      username,
			"password_hash": passwordHash,
			"is_admin":      isAdmin,
		}).
		OnConflict(goqu.DoNothing()).
		Returning("id").
		Executor().
		ScanValContext(ctx, &id)
	if err != nil {
		return nil, fmt.Errorf("create user %q: %w", username, err)
	}
	if !found {
		return nil, fmt.Errorf("create user %q: %w", username, domain.ErrUserExists)
	}

	return &domain.User{ID: id, Username: username, PasswordHash: passwordHash, IsAdmin: isAdmin}, nil
}
