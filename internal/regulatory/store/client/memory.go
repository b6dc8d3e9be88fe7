// Package client stores imported client profiles keyed by client id.
package client

import (
	"context"
	"sync"

	"github.com/naveenbxyz/iclm/internal/regulatory/models"
	"github.com/naveenbxyz/iclm/pkg/domain"
	"github.com/naveenbxyz/iclm/pkg/sentinel"
)

// InMemory is the development/test implementation. Reads return defensive
// copies so snapshot readers never alias writer-held state.
type InMemory struct {
	mu       sync.RWMutex
	profiles map[domain.ClientID]*models.ClientProfile
}

// NewInMemory creates an empty in-memory client store.
func NewInMemory() *InMemory {
	return &InMemory{profiles: make(map[domain.ClientID]*models.ClientProfile)}
}

// Put adds or replaces a profile.
func (s *InMemory) Put(_ context.Context, profile *models.ClientProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profiles[profile.ClientID] = profile.Clone()
	return nil
}

// Get returns the profile for a client id.
func (s *InMemory) Get(_ context.Context, clientID domain.ClientID) (*models.ClientProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	profile, ok := s.profiles[clientID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return profile.Clone(), nil
}
