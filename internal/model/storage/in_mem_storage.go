package storage

import (
	"context"
	"sync"

	"max.ks1230/converter-bot/internal/entity/user"
)

type InMemStorage struct {
	mu      sync.RWMutex
	userMap map[int64]user.Record
}

func NewInMemStorage() *InMemStorage {
	s := make(map[int64]user.Record)
	return &InMemStorage{userMap: s}
}

// GetUserByID returns an empty record for unknown users.
func (s *InMemStorage) GetUserByID(_ context.Context, id int64) (user.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.userMap[id]
	if !ok {
		return user.Record{}, nil
	}
	return u, nil
}

func (s *InMemStorage) SaveUserByID(_ context.Context, id int64, rec user.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.userMap[id] = rec
	return nil
}
