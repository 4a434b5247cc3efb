package session

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"time"

	"github.com/redis/go-redis/v9"

	"esports-waitlist/internal/common/errors"
)

const redisKeyPrefix = "intake:session:"

// RedisStore keeps drafts as JSON strings. Every save refreshes the TTL, so
// a draft expires ttl after its last change.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func redisKey(id string) string { return redisKeyPrefix + id }

func (r *RedisStore) Get(ctx context.Context, id string) (*Session, error) {
	data, err := r.client.Get(ctx, redisKey(id)).Bytes()
	if stderrors.Is(err, redis.Nil) {
		return nil, errors.NewDraftNotFoundError(id)
	}
	if err != nil {
		return nil, errors.NewDraftStoreFailedError("get", err)
	}
	return decode(data, "get")
}

func (r *RedisStore) Save(ctx context.Context, s *Session) error {
	data, err := json.Marshal(s)
	if err != nil {
		return errors.NewDraftStoreFailedError("save", err)
	}
	if err := r.client.Set(ctx, redisKey(s.ID), data, r.ttl).Err(); err != nil {
		return errors.NewDraftStoreFailedError("save", err)
	}
	return nil
}

func (r *RedisStore) Delete(ctx context.Context, id string) error {
	if err := r.client.Del(ctx, redisKey(id)).Err(); err != nil {
		return errors.NewDraftStoreFailedError("delete", err)
	}
	return nil
}
