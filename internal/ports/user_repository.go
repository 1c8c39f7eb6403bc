package ports

import (
	"context"
	"delivery-route-map/internal/domain"
)

type UserRepository interface {
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	CreateUser(ctx context.Context, username, passwordHash string, isAdmin bool) (*domain.User, error)
}
