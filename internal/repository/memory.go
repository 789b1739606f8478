package repository

import (
	"context"
	"sync"

	"github.com/immxrtalbeast/karaoke_queue/internal/domain"
)

// InMemoryCustomerRepository keeps customer records in a mutex-guarded map.
// Records are deep-copied on the way in and out so a snapshot handed to the
// projector can never alias state a concurrent write is mutating.
type InMemoryCustomerRepository struct {
	mu        sync.RWMutex
	customers map[string]*domain.Customer
}

func NewInMemoryCustomerRepository() *InMemoryCustomerRepository {
	return &InMemoryCustomerRepository{
		customers: make(map[string]*domain.Customer),
	}
}

func (r *InMemoryCustomerRepository) Save(ctx context.Context, customer *domain.Customer) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.customers[customer.ID] = customer.Clone()
	return nil
}

func (r *InMemoryCustomerRepository) GetByID(ctx context.Context, id string) (*domain.Customer, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	customer, ok := r.customers[id]
	if !ok {
		return nil, ErrCustomerNotFound
	}

	return customer.Clone(), nil
}

func (r *InMemoryCustomerRepository) List(ctx context.Context) ([]*domain.Customer, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*domain.Customer, 0, len(r.customers))
	for _, customer := range r.customers {
		result = append(result, customer.Clone())
	}
	return result, nil
}

func (r *InMemoryCustomerRepository) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.customers[id]; !ok {
		return ErrCustomerNotFound
	}

	delete(r.customers, id)
	return nil
}

type InMemoryNowPlayingRepository struct {
	mu sync.RWMutex
	np *domain.NowPlaying
}

func NewInMemoryNowPlayingRepository() *InMemoryNowPlayingRepository {
	return &InMemoryNowPlayingRepository{}
}

func (r *InMemoryNowPlayingRepository) Get(ctx context.Context) (*domain.NowPlaying, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.np == nil {
		return nil, ErrNowPlayingNotSet
	}
	return r.np.Clone(), nil
}

func (r *InMemoryNowPlayingRepository) Set(ctx context.Context, np *domain.NowPlaying) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.np = np.Clone()
	return nil
}

func (r *InMemoryNowPlayingRepository) Clear(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.np = nil
	return nil
}
