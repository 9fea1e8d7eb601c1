// internal/lead/redis_store.go
package lead

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	stderrors "leadgen-backend/internal/common/errors"
)

const (
	leadKeyPrefix = "lead:"
	// txRetries bounds the optimistic-concurrency retry loop on Update.
	txRetries = 64
)

// RedisStore persists leads as JSON values. Per-lead serialization comes from
// optimistic WATCH transactions: two concurrent updates to the same lead race
// on the key version and the loser retries against fresh state.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func leadKey(id string) string {
	return leadKeyPrefix + id
}

func (s *RedisStore) Create(ctx context.Context, l *Lead) error {
	payload, err := json.Marshal(l)
	if err != nil {
		return stderrors.NewStorageFailureError("create", err)
	}
	if err := s.client.Set(ctx, leadKey(l.ID), payload, 0).Err(); err != nil {
		return stderrors.NewStorageFailureError("create", err)
	}
	return nil
}

func (s *RedisStore) Get(ctx context.Context, id string) (*Lead, error) {
	data, err := s.client.Get(ctx, leadKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, stderrors.NewLeadNotFoundError(id)
	}
	if err != nil {
		return nil, stderrors.NewStorageFailureError("get", err)
	}

	var l Lead
	if err := json.Unmarshal(data, &l); err != nil {
		return nil, stderrors.NewStorageFailureError("get", err)
	}
	return &l, nil
}

func (s *RedisStore) Update(ctx context.Context, id string, mutate func(*Lead) error) (*Lead, error) {
	key := leadKey(id)
	var updated *Lead

	txn := func(tx *redis.Tx) error {
		data, err := tx.Get(ctx, key).Bytes()
		if errors.Is(err, redis.Nil) {
			return stderrors.NewLeadNotFoundError(id)
		}
		if err != nil {
			return err
		}

		var l Lead
		if err := json.Unmarshal(data, &l); err != nil {
			return err
		}

		if err := mutate(&l); err != nil {
			return err
		}
		l.UpdatedAt = time.Now().UTC()

		payload, err := json.Marshal(&l)
		if err != nil {
			return err
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, payload, 0)
			return nil
		})
		if err != nil {
			return err
		}

		updated = &l
		return nil
	}

	for i := 0; i < txRetries; i++ {
		err := s.client.Watch(ctx, txn, key)
		if err == nil {
			return updated, nil
		}
		if errors.Is(err, redis.TxFailedErr) {
			continue // key changed under us, retry against fresh state
		}
		if _, ok := stderrors.AsStandardError(err); ok {
			return nil, err
		}
		return nil, stderrors.NewStorageFailureError("update", err)
	}
	return nil, stderrors.NewStorageFailureError("update", redis.TxFailedErr)
}

func (s *RedisStore) Delete(ctx context.Context, id string) error {
	removed, err := s.client.Del(ctx, leadKey(id)).Result()
	if err != nil {
		return stderrors.NewStorageFailureError("delete", err)
	}
	if removed == 0 {
		return stderrors.NewLeadNotFoundError(id)
	}
	return nil
}
