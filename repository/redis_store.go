package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"time"

	"go-sortgame/entities"
	"go-sortgame/game"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/mitchellh/mapstructure"
)

// RedisStore keeps every session in one hash, session:<id>. Scalars are plain
// fields; the board, categories and estimate are JSON.
type RedisStore struct {
	rdb         *redis.Client
	ttl         time.Duration
	lockTimeout time.Duration
}

func NewRedisStore(rdb *redis.Client, ttl, lockTimeout time.Duration) *RedisStore {
	return &RedisStore{rdb: rdb, ttl: ttl, lockTimeout: lockTimeout}
}

func sessionKey(id string) string {
	return fmt.Sprintf("session:%s", id)
}

func lockKey(id string) string {
	return fmt.Sprintf("lock:session:%s", id)
}

// sessionRecord mirrors the hash layout.
type sessionRecord struct {
	Difficulty string `json:"difficulty"`
	Seed       uint64 `json:"seed"`
	TurnBudget int    `json:"turnBudget"`
	TotalCards int    `json:"totalCards"`
	Retired    int    `json:"retired"`
	Status     string `json:"status"`
	State      string `json:"state"`
	Categories string `json:"categories"`
	Estimate   string `json:"estimate"`
}

func (r *RedisStore) Save(ctx context.Context, id string, s *game.Session) error {
	stateJSON, err := json.Marshal(s.State)
	if err != nil {
		return fmt.Errorf("session %s state marshal: %w", id, err)
	}
	categoriesJSON, err := json.Marshal(s.Categories)
	if err != nil {
		return fmt.Errorf("session %s categories marshal: %w", id, err)
	}
	estimateJSON, err := json.Marshal(s.Estimate)
	if err != nil {
		return fmt.Errorf("session %s estimate marshal: %w", id, err)
	}

	key := sessionKey(id)
	pipe := r.rdb.Pipeline()
	pipe.HSet(ctx, key, map[string]interface{}{
		"difficulty": string(s.Difficulty),
		"seed":       strconv.FormatUint(s.Seed, 10),
		"turnBudget": s.TurnBudget,
		"totalCards": s.TotalCards,
		"retired":    s.Retired,
		"status":     string(s.Status),
		"state":      stateJSON,
		"categories": categoriesJSON,
		"estimate":   estimateJSON,
	})
	if r.ttl > 0 {
		pipe.Expire(ctx, key, r.ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("session %s redis write: %w", id, err)
	}
	return nil
}

func (r *RedisStore) Load(ctx context.Context, id string) (*game.Session, error) {
	fields, err := r.rdb.HGetAll(ctx, sessionKey(id)).Result()
	if err != nil {
		return nil, fmt.Errorf("session %s redis read: %w", id, err)
	}
	if len(fields) == 0 {
		return nil, ErrSessionNotFound
	}

	var rec sessionRecord
	decoderConfig := &mapstructure.DecoderConfig{
		DecodeHook: stringToNumberHookFunc(),
		Result:     &rec,
		TagName:    "json",
	}
	decoder, err := mapstructure.NewDecoder(decoderConfig)
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(fields); err != nil {
		return nil, fmt.Errorf("session %s decode: %w", id, err)
	}

	s := &game.Session{
		Difficulty: game.Difficulty(rec.Difficulty),
		Seed:       rec.Seed,
		TurnBudget: rec.TurnBudget,
		TotalCards: rec.TotalCards,
		Retired:    rec.Retired,
		Status:     game.Status(rec.Status),
		State:      &entities.GameState{},
	}
	if err := json.Unmarshal([]byte(rec.State), s.State); err != nil {
		return nil, fmt.Errorf("session %s state unmarshal: %w", id, err)
	}
	if err := json.Unmarshal([]byte(rec.Categories), &s.Categories); err != nil {
		return nil, fmt.Errorf("session %s categories unmarshal: %w", id, err)
	}
	if err := json.Unmarshal([]byte(rec.Estimate), &s.Estimate); err != nil {
		return nil, fmt.Errorf("session %s estimate unmarshal: %w", id, err)
	}
	return s, nil
}

func (r *RedisStore) Delete(ctx context.Context, id string) error {
	n, err := r.rdb.Del(ctx, sessionKey(id)).Result()
	if err != nil {
		return fmt.Errorf("session %s redis delete: %w", id, err)
	}
	if n == 0 {
		return ErrSessionNotFound
	}
	return nil
}

// Lock takes a SETNX lock holding a random token; unlock only deletes the key
// while it still holds that token.
func (r *RedisStore) Lock(ctx context.Context, id string) (func(), error) {
	key := lockKey(id)
	token := uuid.NewString()
	err := acquire(ctx, func() (bool, error) {
		return r.rdb.SetNX(ctx, key, token, r.lockTimeout).Result()
	})
	if err != nil {
		return nil, err
	}
	return func() {
		val, err := r.rdb.Get(context.Background(), key).Result()
		if err == nil && val == token {
			r.rdb.Del(context.Background(), key)
		}
	}, nil
}

// stringToNumberHookFunc turns redis hash strings into the record's numbers.
func stringToNumberHookFunc() mapstructure.DecodeHookFunc {
	return func(from reflect.Kind, to reflect.Kind, data interface{}) (interface{}, error) {
		if from != reflect.String {
			return data, nil
		}
		switch to {
		case reflect.Int:
			return strconv.Atoi(data.(string))
		case reflect.Uint64:
			return strconv.ParseUint(data.(string), 10, 64)
		}
		return data, nil
	}
}

var _ SessionStore = (*RedisStore)(nil)

