package reserve

import (
	"context"
	"sync"

	"lending/core"

	"github.com/pkg/errors"
)

// reserveStore dense array of reserves plus an asset lookup. A reserve's
// position in the array is its id and its bit position in the user bitmap.
type reserveStore struct {
	mu       sync.RWMutex
	reserves []*core.Reserve
	ids      map[string]uint16
}

// New new reserve store
func New() core.IReserveStore {
	return &reserveStore{
		ids: make(map[string]uint16),
	}
}

func (s *reserveStore) Add(ctx context.Context, reserve *core.Reserve) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.ids[reserve.Asset]; ok {
		return errors.Wrapf(core.ErrReserveAlreadyInitialized, "asset %s", reserve.Asset)
	}

	if len(s.reserves) >= core.MaxReserves {
		return core.ErrNoMoreReservesAllowed
	}

	reserve.ID = uint16(len(s.reserves))
	reserve.Version = 0
	s.reserves = append(s.reserves, reserve.Clone())
	s.ids[reserve.Asset] = reserve.ID
	return nil
}

func (s *reserveStore) Find(ctx context.Context, asset string) (*core.Reserve, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.ids[asset]
	if !ok {
		return nil, errors.Wrapf(core.ErrReserveNotFound, "asset %s", asset)
	}

	return s.reserves[id].Clone(), nil
}

func (s *reserveStore) FindByID(ctx context.Context, id uint16) (*core.Reserve, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if int(id) >= len(s.reserves) {
		return nil, errors.Wrapf(core.ErrReserveNotFound, "id %d", id)
	}

	return s.reserves[id].Clone(), nil
}

func (s *reserveStore) Update(ctx context.Context, reserve *core.Reserve) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, ok := s.ids[reserve.Asset]
	if !ok {
		return errors.Wrapf(core.ErrReserveNotFound, "asset %s", reserve.Asset)
	}

	current := s.reserves[id]
	if current.Version != reserve.Version || current.ID != reserve.ID {
		return errors.Wrapf(core.ErrOptimisticLock, "asset %s version %d", reserve.Asset, reserve.Version)
	}

	reserve.Version++
	s.reserves[id] = reserve.Clone()
	return nil
}

func (s *reserveStore) All(ctx context.Context) ([]*core.Reserve, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	reserves := make([]*core.Reserve, 0, len(s.reserves))
	for _, r := range s.reserves {
		reserves = append(reserves, r.Clone())
	}

	return reserves, nil
}

func (s *reserveStore) Count(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.reserves), nil
}
