package idempotency

import (
	"context"
	"time"

	"storefront/internal/model"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const keyPrefix = "storefront:order-token:"

type redisGuard struct {
	client redis.UniversalClient
	next   Guard
	ttl    time.Duration
	logger zerolog.Logger
}

// NewRedisGuard puts a Redis cache of committed tokens in front of next.
// Cache misses and Redis failures defer to next.
func NewRedisGuard(client redis.UniversalClient, next Guard, ttl time.Duration, logger zerolog.Logger) Guard {
	return &redisGuard{
		client: client,
		next:   next,
		ttl:    ttl,
		logger: logger.With().Str("component", "idempotency").Logger(),
	}
}

func (g *redisGuard) Check(ctx context.Context, token string) error {
	n, err := g.client.Exists(ctx, keyPrefix+token).Result()
	if err != nil {
		g.logger.Warn().Err(err).Msg("redis token lookup failed, falling back to store")
	} else if n > 0 {
		g.logger.Debug().Str("idempotency_token", token).Msg("token found in cache")
		return model.ErrDuplicateOrder
	}

	return g.next.Check(ctx, token)
}

func (g *redisGuard) Remember(ctx context.Context, token string, orderID uuid.UUID) {
	g.next.Remember(ctx, token, orderID)

	if err := g.client.Set(ctx, keyPrefix+token, orderID.String(), g.ttl).Err(); err != nil {
		g.logger.Warn().Err(err).Str("idempotency_token", token).Msg("failed to cache token")
	}
}
