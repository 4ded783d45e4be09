package userconfig

import (
	"context"
	"sync"

	"lending/core"
)

type store struct {
	mu      sync.RWMutex
	configs map[string]core.UserConfiguration
}

// New in-memory user configuration store
func New() core.IUserConfigurationStore {
	return &store{
		configs: make(map[string]core.UserConfiguration),
	}
}

// Find returns an empty configuration for unknown users
func (s *store) Find(ctx context.Context, user string) (core.UserConfiguration, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c := s.configs[user]
	return core.NewUserConfiguration(c.Data()), nil
}

func (s *store) Save(ctx context.Context, user string, config core.UserConfiguration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if config.IsEmpty() {
		delete(s.configs, user)
		return nil
	}

	s.configs[user] = core.NewUserConfiguration(config.Data())
	return nil
}
