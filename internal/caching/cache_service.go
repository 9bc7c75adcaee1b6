package caching

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"shopledger/internal/models"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

type CacheService interface {
	// Item caching
	GetItem(ctx context.Context, tenantID, itemID uuid.UUID) (*models.Item, error)
	SetItem(ctx context.Context, tenantID uuid.UUID, item *models.Item, ttl time.Duration) error
	DeleteItem(ctx context.Context, tenantID, itemID uuid.UUID) error

	// Repair caching
	GetRepair(ctx context.Context, tenantID, repairID uuid.UUID) (*models.Repair, error)
	SetRepair(ctx context.Context, tenantID uuid.UUID, repair *models.Repair, ttl time.Duration) error
	DeleteRepair(ctx context.Context, tenantID, repairID uuid.UUID) error

	// Cache invalidation
	InvalidateTenantCache(ctx context.Context, tenantID uuid.UUID) error
}

type redisCacheService struct {
	client *redis.Client
}

func NewRedisCacheService(addr, password string, db int) CacheService {
	// Parse Redis URL to extract host:port if protocol is included
	parsedAddr := addr
	if strings.HasPrefix(addr, "redis://") || strings.HasPrefix(addr, "rediss://") {
		if hostPort := strings.TrimPrefix(strings.TrimPrefix(addr, "redis://"), "rediss://"); hostPort != addr {
			parsedAddr = hostPort
		}
	}

	client := redis.NewClient(&redis.Options{
		Addr:     parsedAddr,
		Password: password,
		DB:       db,
	})

	// Test initial connectivity
	if pingErr := client.Ping(context.Background()).Err(); pingErr != nil {
		log.Printf("WARN: Redis ping failed on initialization: %v (address: %s)", pingErr, parsedAddr)
	}

	return &redisCacheService{client: client}
}

func (r *redisCacheService) GetItem(ctx context.Context, tenantID, itemID uuid.UUID) (*models.Item, error) {
	key := fmt.Sprintf("shopledger:item:%s:%s", tenantID.String(), itemID.String())
	data, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // cache miss
		}
		return nil, err
	}

	var item models.Item
	if err := json.Unmarshal(data, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *redisCacheService) SetItem(ctx context.Context, tenantID uuid.UUID, item *models.Item, ttl time.Duration) error {
	key := fmt.Sprintf("shopledger:item:%s:%s", tenantID.String(), item.ID.String())
	data, err := json.Marshal(item)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, key, data, ttl).Err()
}

func (r *redisCacheService) DeleteItem(ctx context.Context, tenantID, itemID uuid.UUID) error {
	key := fmt.Sprintf("shopledger:item:%s:%s", tenantID.String(), itemID.String())
	return r.client.Del(ctx, key).Err()
}

func (r *redisCacheService) GetRepair(ctx context.Context, tenantID, repairID uuid.UUID) (*models.Repair, error) {
	key := fmt.Sprintf("shopledger:repair:%s:%s", tenantID.String(), repairID.String())
	data, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // cache miss
		}
		return nil, err
	}

	var repair models.Repair
	if err := json.Unmarshal(data, &repair); err != nil {
		return nil, err
	}
	return &repair, nil
}

func (r *redisCacheService) SetRepair(ctx context.Context, tenantID uuid.UUID, repair *models.Repair, ttl time.Duration) error {
	key := fmt.Sprintf("shopledger:repair:%s:%s", tenantID.String(), repair.ID.String())
	data, err := json.Marshal(repair)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, key, data, ttl).Err()
}

func (r *redisCacheService) DeleteRepair(ctx context.Context, tenantID, repairID uuid.UUID) error {
	key := fmt.Sprintf("shopledger:repair:%s:%s", tenantID.String(), repairID.String())
	return r.client.Del(ctx, key).Err()
}

func (r *redisCacheService) InvalidateTenantCache(ctx context.Context, tenantID uuid.UUID) error {
	pattern := fmt.Sprintf("shopledger:*:%s:*", tenantID.String())
	keys, err := r.client.Keys(ctx, pattern).Result()
	if err != nil {
		return err
	}

	if len(keys) > 0 {
		return r.client.Del(ctx, keys...).Err()
	}
	return nil
}
