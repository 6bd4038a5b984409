package cache

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"sportstore/internal/models"

	"github.com/redis/go-redis/v9"
)

// Redis key for the cached special-offer listing.
const offersKey = "cache:special_offers"

const opTimeout = 2 * time.Second

// OffersCache keeps the special-offer product listing in Redis under a single
// key with a TTL. Cache failures are never fatal: callers fall back to the
// database on a miss or an error.
type OffersCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewOffersCache creates an OffersCache over the given Redis client.
func NewOffersCache(rdb *redis.Client, ttl time.Duration) *OffersCache {
	return &OffersCache{
		rdb: rdb,
		ttl: ttl,
	}
}

// Get returns the cached listing and whether it was present.
func (c *OffersCache) Get() ([]models.Product, bool) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	data, err := c.rdb.Get(ctx, offersKey).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Printf("Failed to read special offers cache: %v", err)
		}
		return nil, false
	}

	var products []models.Product
	if err := json.Unmarshal(data, &products); err != nil {
		log.Printf("Failed to decode special offers cache: %v", err)
		return nil, false
	}
	return products, true
}

// Set stores the listing with the configured TTL.
func (c *OffersCache) Set(products []models.Product) {
	data, err := json.Marshal(products)
	if err != nil {
		log.Printf("Failed to encode special offers for cache: %v", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	if err := c.rdb.Set(ctx, offersKey, data, c.ttl).Err(); err != nil {
		log.Printf("Failed to write special offers cache: %v", err)
	}
}

// Invalidate drops the cached listing. Called after any product create or
// delete so the next read goes to the database.
func (c *OffersCache) Invalidate() {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	if err := c.rdb.Del(ctx, offersKey).Err(); err != nil {
		log.Printf("Failed to invalidate special offers cache: %v", err)
	}
}
