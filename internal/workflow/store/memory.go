// Package store persists workflow aggregates keyed by workflow id.
package store

import (
	"context"
	"sync"

	"github.com/naveenbxyz/iclm/internal/workflow/models"
	"github.com/naveenbxyz/iclm/pkg/domain"
	"github.com/naveenbxyz/iclm/pkg/sentinel"
)

// InMemory is the development/test implementation. All reads return deep
// copies; the engine owns the only mutation path.
type InMemory struct {
	mu        sync.RWMutex
	workflows map[domain.WorkflowID]*models.RegulatoryWorkflow
	order     []domain.WorkflowID
}

// NewInMemory creates an empty in-memory workflow store.
func NewInMemory() *InMemory {
	return &InMemory{workflows: make(map[domain.WorkflowID]*models.RegulatoryWorkflow)}
}

// Create stores a new workflow.
func (s *InMemory) Create(_ context.Context, workflow *models.RegulatoryWorkflow) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.workflows[workflow.WorkflowID]; !exists {
		s.order = append(s.order, workflow.WorkflowID)
	}
	s.workflows[workflow.WorkflowID] = workflow.Clone()
	return nil
}

// Update replaces an existing workflow.
func (s *InMemory) Update(_ context.Context, workflow *models.RegulatoryWorkflow) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.workflows[workflow.WorkflowID]; !exists {
		return sentinel.ErrNotFound
	}
	s.workflows[workflow.WorkflowID] = workflow.Clone()
	return nil
}

// Get returns the workflow for an id.
func (s *InMemory) Get(_ context.Context, id domain.WorkflowID) (*models.RegulatoryWorkflow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	workflow, ok := s.workflows[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return workflow.Clone(), nil
}

// List returns all workflows in creation order.
func (s *InMemory) List(_ context.Context) ([]*models.RegulatoryWorkflow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.RegulatoryWorkflow, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.workflows[id].Clone())
	}
	return out, nil
}
