package ports

import (
	"context"

	"github.com/steriltrack/equipment-system/internal/core/domain"
)

// ClientRepository defines persistence operations for clients.
type ClientRepository interface {
	Create(ctx context.Context, c *domain.Client) error
	FindByID(ctx context.Context, id int64) (*domain.Client, error)
	List(ctx context.Context) ([]*domain.Client, error)
	// Delete removes the client. No cascade: equipment referencing the client
	// keeps its dangling client_id.
	Delete(ctx context.Context, id int64) error
}

// UserRepository defines persistence operations for users.
type UserRepository interface {
	Create(ctx context.Context, u *domain.User) error
	FindByID(ctx context.Context, id int64) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
	ListByRole(ctx context.Context, role string) ([]*domain.User, error)
	Delete(ctx context.Context, id int64) error
}
