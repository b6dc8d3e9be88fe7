package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/naveenbxyz/iclm/internal/workflow/models"
	"github.com/naveenbxyz/iclm/pkg/domain"
	"github.com/naveenbxyz/iclm/pkg/sentinel"
)

const (
	redisKeyPrefix = "iclm:workflow:"
	redisIndexKey  = "iclm:workflows"
)

// Redis persists workflows as JSON values, with a list key preserving
// creation order for List.
type Redis struct {
	client redis.Cmdable
}

// NewRedis constructs a Redis-backed workflow store.
func NewRedis(client redis.Cmdable) *Redis {
	return &Redis{client: client}
}

// Create stores a new workflow.
func (s *Redis) Create(ctx context.Context, workflow *models.RegulatoryWorkflow) error {
	if err := s.set(ctx, workflow); err != nil {
		return err
	}
	if err := s.client.RPush(ctx, redisIndexKey, workflow.WorkflowID.String()).Err(); err != nil {
		return fmt.Errorf("index workflow: %w", err)
	}
	return nil
}

// Update replaces an existing workflow.
func (s *Redis) Update(ctx context.Context, workflow *models.RegulatoryWorkflow) error {
	exists, err := s.client.Exists(ctx, redisKeyPrefix+workflow.WorkflowID.String()).Result()
	if err != nil {
		return fmt.Errorf("check workflow: %w", err)
	}
	if exists == 0 {
		return sentinel.ErrNotFound
	}
	return s.set(ctx, workflow)
}

// Get returns the workflow for an id.
func (s *Redis) Get(ctx context.Context, id domain.WorkflowID) (*models.RegulatoryWorkflow, error) {
	data, err := s.client.Get(ctx, redisKeyPrefix+id.String()).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load workflow: %w", err)
	}
	workflow := &models.RegulatoryWorkflow{}
	if err := json.Unmarshal(data, workflow); err != nil {
		return nil, fmt.Errorf("unmarshal workflow: %w", err)
	}
	return workflow, nil
}

// List returns all workflows in creation order.
func (s *Redis) List(ctx context.Context) ([]*models.RegulatoryWorkflow, error) {
	ids, err := s.client.LRange(ctx, redisIndexKey, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("list workflows: %w", err)
	}
	out := make([]*models.RegulatoryWorkflow, 0, len(ids))
	for _, id := range ids {
		workflow, err := s.Get(ctx, domain.WorkflowID(id))
		if errors.Is(err, sentinel.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		out = append(out, workflow)
	}
	return out, nil
}

func (s *Redis) set(ctx context.Context, workflow *models.RegulatoryWorkflow) error {
	data, err := json.Marshal(workflow)
	if err != nil {
		return fmt.Errorf("marshal workflow: %w", err)
	}
	if err := s.client.Set(ctx, redisKeyPrefix+workflow.WorkflowID.String(), data, 0).Err(); err != nil {
		return fmt.Errorf("store workflow: %w", err)
	}
	return nil
}
