// Package classification stores classification records keyed by
// classification id. Records are immutable after creation except for
// reviewer-owned manual notes, applied via Update.
package classification

import (
	"context"
	"sync"

	"github.com/naveenbxyz/iclm/internal/regulatory/models"
	"github.com/naveenbxyz/iclm/pkg/domain"
	"github.com/naveenbxyz/iclm/pkg/sentinel"
)

// InMemory is the development/test implementation.
type InMemory struct {
	mu      sync.RWMutex
	records map[domain.ClassificationID]*models.RegulatoryClassification
	order   []domain.ClassificationID
}

// NewInMemory creates an empty in-memory classification store.
func NewInMemory() *InMemory {
	return &InMemory{records: make(map[domain.ClassificationID]*models.RegulatoryClassification)}
}

// Create stores a new classification record.
func (s *InMemory) Create(_ context.Context, record *models.RegulatoryClassification) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.records[record.ClassificationID]; !exists {
		s.order = append(s.order, record.ClassificationID)
	}
	s.records[record.ClassificationID] = record.Clone()
	return nil
}

// Update replaces an existing record (manual notes edits).
func (s *InMemory) Update(_ context.Context, record *models.RegulatoryClassification) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.records[record.ClassificationID]; !exists {
		return sentinel.ErrNotFound
	}
	s.records[record.ClassificationID] = record.Clone()
	return nil
}

// Get returns the record for a classification id.
func (s *InMemory) Get(_ context.Context, id domain.ClassificationID) (*models.RegulatoryClassification, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	record, ok := s.records[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return record.Clone(), nil
}

// List returns all records in creation order.
func (s *InMemory) List(_ context.Context) ([]*models.RegulatoryClassification, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.RegulatoryClassification, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.records[id].Clone())
	}
	return out, nil
}
