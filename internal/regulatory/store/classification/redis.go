package classification

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/naveenbxyz/iclm/internal/regulatory/models"
	"github.com/naveenbxyz/iclm/pkg/domain"
	"github.com/naveenbxyz/iclm/pkg/sentinel"
)

const (
	redisKeyPrefix = "iclm:classification:"
	redisIndexKey  = "iclm:classifications"
)

// Redis persists classification records as JSON values, with a list key
// preserving creation order for List.
type Redis struct {
	client redis.Cmdable
}

// NewRedis constructs a Redis-backed classification store.
func NewRedis(client redis.Cmdable) *Redis {
	return &Redis{client: client}
}

// Create stores a new classification record.
func (s *Redis) Create(ctx context.Context, record *models.RegulatoryClassification) error {
	if err := s.set(ctx, record); err != nil {
		return err
	}
	if err := s.client.RPush(ctx, redisIndexKey, record.ClassificationID.String()).Err(); err != nil {
		return fmt.Errorf("index classification: %w", err)
	}
	return nil
}

// Update replaces an existing record.
func (s *Redis) Update(ctx context.Context, record *models.RegulatoryClassification) error {
	exists, err := s.client.Exists(ctx, redisKeyPrefix+record.ClassificationID.String()).Result()
	if err != nil {
		return fmt.Errorf("check classification: %w", err)
	}
	if exists == 0 {
		return sentinel.ErrNotFound
	}
	return s.set(ctx, record)
}

// Get returns the record for a classification id.
func (s *Redis) Get(ctx context.Context, id domain.ClassificationID) (*models.RegulatoryClassification, error) {
	data, err := s.client.Get(ctx, redisKeyPrefix+id.String()).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load classification: %w", err)
	}
	record := &models.RegulatoryClassification{}
	if err := json.Unmarshal(data, record); err != nil {
		return nil, fmt.Errorf("unmarshal classification: %w", err)
	}
	return record, nil
}

// List returns all records in creation order.
func (s *Redis) List(ctx context.Context) ([]*models.RegulatoryClassification, error) {
	ids, err := s.client.LRange(ctx, redisIndexKey, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("list classifications: %w", err)
	}
	out := make([]*models.RegulatoryClassification, 0, len(ids))
	for _, id := range ids {
		record, err := s.Get(ctx, domain.ClassificationID(id))
		if errors.Is(err, sentinel.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		out = append(out, record)
	}
	return out, nil
}

func (s *Redis) set(ctx context.Context, record *models.RegulatoryClassification) error {
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("marshal classification: %w", err)
	}
	if err := s.client.Set(ctx, redisKeyPrefix+record.ClassificationID.String(), data, 0).Err(); err != nil {
		return fmt.Errorf("store classification: %w", err)
	}
	return nil
}
