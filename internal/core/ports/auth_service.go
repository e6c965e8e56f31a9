package ports

import (
	"context"

	"github.com/steriltrack/equipment-system/internal/core/domain"
)

// AuthService handles account registration and login.
type AuthService interface {
	Register(ctx context.Context, name, email, password, role string) (*domain.User, error)
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
}
