package ports

import (
	"context"

	"github.com/steriltrack/equipment-system/internal/core/domain"
)

// CreateClientInput carries the data needed to register a client.
type CreateClientInput struct {
	Name  string
	Email string
	Phone string
}

// ClientService defines client use-cases.
type ClientService interface {
	Create(ctx context.Context, input CreateClientInput) (*domain.Client, error)
	List(ctx context.Context) ([]*domain.Client, error)
	Delete(ctx context.Context, id int64) error
}

// UserService defines user administration use-cases.
type UserService interface {
	List(ctx context.Context) ([]*domain.User, error)
	ListEmployees(ctx context.Context) ([]*domain.User, error)
	Delete(ctx context.Context, id int64) error
}
