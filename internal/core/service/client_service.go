package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/steriltrack/equipment-system/internal/core/domain"
	"github.com/steriltrack/equipment-system/internal/core/ports"
)

// ClientService handles client registration and removal.
type ClientService struct {
	repo   ports.ClientRepository
	seq    ports.IDAllocator
	logger zerolog.Logger
}

func NewClientService(repo ports.ClientRepository, seq ports.IDAllocator, logger zerolog.Logger) *ClientService {
	return &ClientService{repo: repo, seq: seq, logger: logger}
}

func (s *ClientService) Create(ctx context.Context, input ports.CreateClientInput) (*domain.Client, error) {
	id, err := s.seq.Next(ctx, ports.CounterClients)
	if err != nil {
		return nil, fmt.Errorf("create client: %w", err)
	}

	c := &domain.Client{
		ID:    id,
		Name:  input.Name,
		Email: input.Email,
		Phone: input.Phone,
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("client_id", id).Str("name", c.Name).Msg("client created")
	return c, nil
}

func (s *ClientService) List(ctx context.Context) ([]*domain.Client, error) {
	return s.repo.List(ctx)
}

// Delete removes the client from the store. Equipment referencing the client
// is left untouched; the dangling reference is a known, preserved gap.
func (s *ClientService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Int64("client_id", id).Msg("client deleted")
	return nil
}
