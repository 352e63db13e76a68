package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/psomsri/taladsod-backend/internal/app/model"
	"github.com/psomsri/taladsod-backend/pkg/logger"
	"github.com/redis/go-redis/v9"
)

// CartRepository persists the single cart slot of each storefront profile.
// The slot holds the whole cart as one JSON-encoded sequence: writes replace
// it atomically, so no read-modify-write spans more than one command.
type CartRepository interface {
	Save(ctx context.Context, profileID string, items []model.CartItem) error
	Load(ctx context.Context, profileID string) ([]model.CartItem, error)
	Clear(ctx context.Context, profileID string) error
}

type redisCartRepository struct {
	client *redis.Client
	ttl    time.Duration
}

func NewCartRepository(client *redis.Client, ttl time.Duration) CartRepository {
	return &redisCartRepository{client: client, ttl: ttl}
}

func cartKey(profileID string) string {
	return fmt.Sprintf("cart:%s", profileID)
}

func (r *redisCartRepository) Save(ctx context.Context, profileID string, items []model.CartItem) error {
	logger.Debug("Persisting cart slot", map[string]interface{}{
		"profile_id": profileID,
		"count":      len(items),
	})

	data, err := json.Marshal(items)
	if err != nil {
		logger.Error("Failed to encode cart items", err, map[string]interface{}{
			"profile_id": profileID,
		})
		return err
	}

	if err := r.client.Set(ctx, cartKey(profileID), data, r.ttl).Err(); err != nil {
		logger.Error("Failed to persist cart slot", err, map[string]interface{}{
			"profile_id": profileID,
		})
		return err
	}

	logger.Debug("Cart slot persisted", map[string]interface{}{
		"profile_id": profileID,
		"count":      len(items),
	})
	return nil
}

func (r *redisCartRepository) Load(ctx context.Context, profileID string) ([]model.CartItem, error) {
	data, err := r.client.Get(ctx, cartKey(profileID)).Bytes()
	if errors.Is(err, redis.Nil) {
		// No slot means an empty cart, not an error
		return []model.CartItem{}, nil
	}
	if err != nil {
		logger.Error("Failed to read cart slot", err, map[string]interface{}{
			"profile_id": profileID,
		})
		return nil, err
	}

	var items []model.CartItem
	if err := json.Unmarshal(data, &items); err != nil {
		// A corrupt slot reads as empty, not as a fatal error
		logger.Warn("Cart slot unparsable, treating as empty", map[string]interface{}{
			"profile_id": profileID,
			"error":      err.Error(),
		})
		return []model.CartItem{}, nil
	}

	logger.Debug("Cart slot loaded", map[string]interface{}{
		"profile_id": profileID,
		"count":      len(items),
	})
	return items, nil
}

func (r *redisCartRepository) Clear(ctx context.Context, profileID string) error {
	logger.Debug("Clearing cart slot", map[string]interface{}{
		"profile_id": profileID,
	})

	if err := r.client.Del(ctx, cartKey(profileID)).Err(); err != nil {
		logger.Error("Failed to clear cart slot", err, map[string]interface{}{
			"profile_id": profileID,
		})
		return err
	}
	return nil
}
