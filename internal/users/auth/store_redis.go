// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/yamdb/internal/platform/constants"
	"github.com/taibuivan/yamdb/internal/platform/sec"
)

// RedisRedeemedCodeRepository implements [RedeemedCodeRepository] using Redis.
type RedisRedeemedCodeRepository struct {
	client redis.UniversalClient
}

// NewRedeemedCodeRepository creates a new Redis-backed RedeemedCodeRepository.
func NewRedeemedCodeRepository(client redis.UniversalClient) *RedisRedeemedCodeRepository {
	return &RedisRedeemedCodeRepository{client: client}
}

/*
MarkRedeemed records the code as spent using SET NX, so exactly one caller
wins when the same code is submitted concurrently.

Description: Only the SHA-256 of the code is written. The key expires with
the code itself; after that the code is rejected as stale anyway.

Parameters:
  - context: context.Context
  - code: string
  - ttl: time.Duration

Returns:
  - bool: true if this call spent the code
  - error: Connectivity errors
*/
func (repository *RedisRedeemedCodeRepository) MarkRedeemed(context context.Context, code string, ttl time.Duration) (bool, error) {
	key := constants.RedisPrefixRedeemedCode + sec.HashToken(code)

	fresh, err := repository.client.SetNX(context, key, time.Now().Unix(), ttl).Result()
	if err != nil {
		return false, fmt.Errorf("redis_redeemed_code_set_failed: %w", err)
	}

	return fresh, nil
}
