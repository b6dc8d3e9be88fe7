package upstream

import (
	"context"
	"sync"

	"github.com/naveenbxyz/iclm/internal/regulatory/models"
	"github.com/naveenbxyz/iclm/pkg/domain"
	pkgerrors "github.com/naveenbxyz/iclm/pkg/errors"
)

// MemoryRegistry is an in-process ClientRegistry for development and tests.
type MemoryRegistry struct {
	mu       sync.RWMutex
	profiles map[domain.ClientID]*models.ClientProfile
}

// NewMemoryRegistry creates an empty in-memory registry.
func NewMemoryRegistry() *MemoryRegistry {
	return &MemoryRegistry{profiles: make(map[domain.ClientID]*models.ClientProfile)}
}

// Register adds or replaces a profile.
func (r *MemoryRegistry) Register(profile *models.ClientProfile) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.profiles[profile.ClientID] = profile.Clone()
}

// Lookup implements ClientRegistry.
func (r *MemoryRegistry) Lookup(_ context.Context, clientID domain.ClientID) (*models.ClientProfile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	profile, ok := r.profiles[clientID]
	if !ok {
		return nil, pkgerrors.Newf(pkgerrors.CodeNotFound, "client %s not found in registry", clientID)
	}
	return profile.Clone(), nil
}
