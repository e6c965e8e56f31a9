package memory

import (
	"context"

	"github.com/steriltrack/equipment-system/internal/core/domain"
)

// ClientRepository is the in-memory client adapter.
type ClientRepository struct {
	store *Store
}

func (r *ClientRepository) Create(_ context.Context, c *domain.Client) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	clone := *c
	r.store.clients[c.ID] = &clone
	return nil
}

func (r *ClientRepository) FindByID(_ context.Context, id int64) (*domain.Client, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	c, ok := r.store.clients[id]
	if !ok {
		return nil, domain.ErrClientNotFound
	}
	clone := *c
	return &clone, nil
}

func (r *ClientRepository) List(_ context.Context) ([]*domain.Client, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make([]*domain.Client, 0, len(r.store.clients))
	for _, c := range r.store.clients {
		clone := *c
		out = append(out, &clone)
	}
	return out, nil
}

// Delete removes the client only. Equipment referencing it is left untouched
// (no cascade).
func (r *ClientRepository) Delete(_ context.Context, id int64) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.clients[id]; !ok {
		return domain.ErrClientNotFound
	}
	delete(r.store.clients, id)
	return nil
}

// UserRepository is the in-memory user adapter.
type UserRepository struct {
	store *Store
}

func (r *UserRepository) Create(_ context.Context, u *domain.User) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	clone := *u
	r.store.users[u.ID] = &clone
	return nil
}

func (r *UserRepository) FindByID(_ context.Context, id int64) (*domain.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	u, ok := r.store.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *UserRepository) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, u := range r.store.users {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *UserRepository) List(_ context.Context) ([]*domain.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make([]*domain.User, 0, len(r.store.users))
	for _, u := range r.store.users {
		clone := *u
		out = append(out, &clone)
	}
	return out, nil
}

func (r *UserRepository) ListByRole(_ context.Context, role string) ([]*domain.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make([]*domain.User, 0)
	for _, u := range r.store.users {
		if u.Role == role {
			clone := *u
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *UserRepository) Delete(_ context.Context, id int64) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.store.users, id)
	return nil
}
