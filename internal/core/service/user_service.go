package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/steriltrack/equipment-system/internal/core/domain"
	"github.com/steriltrack/equipment-system/internal/core/ports"
)

// UserService exposes user administration: listing, the employee pool, and
// removal. Account creation goes through AuthService.
type UserService struct {
	repo   ports.UserRepository
	logger zerolog.Logger
}

func NewUserService(repo ports.UserRepository, logger zerolog.Logger) *UserService {
	return &UserService{repo: repo, logger: logger}
}

func (s *UserService) List(ctx context.Context) ([]*domain.User, error) {
	return s.repo.List(ctx)
}

// ListEmployees returns the users eligible to receive returned equipment.
func (s *UserService) ListEmployees(ctx context.Context) ([]*domain.User, error) {
	return s.repo.ListByRole(ctx, domain.RoleEmployee)
}

func (s *UserService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Int64("user_id", id).Msg("user deleted")
	return nil
}
