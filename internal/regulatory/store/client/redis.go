package client

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

const redisKeyPrefix = "iclm:client:"

// Redis persists client profiles as JSON values keyed by client id.
type Redis struct {
	client redis.Cmdable
}

// NewRedis constructs a Redis-backed client store.
func NewRedis(client redis.Cmdable) *Redis {
	return &Redis{client: client}
}

// Put adds or replaces a profile.
func (s *Redis) Put(ctx context.Context, profile *models.ClientProfile) error {
	data, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("marshal client profile: %w", err)
	}
	if err := s.client.Set(ctx, redisKeyPrefix+profile.ClientID.String(), data, 0).Err(); err != nil {
		return fmt.Errorf("store client profile: %w", err)
	}
	return nil
}

// Get returns the profile for a client id.
func (s *Redis) Get(ctx context.Context, clientID domain.ClientID) (*models.ClientProfile, error) {
	data, err := s.client.Get(ctx, redisKeyPrefix+clientID.String()).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load client profile: %w", err)
	}
	profile := &models.ClientProfile{}
	if err := json.Unmarshal(data, profile); err != nil {
		return nil, fmt.Errorf("unmarshal client profile: %w", err)
	}
	return profile, nil
}
