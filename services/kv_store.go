package services

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"vitalog/config"
	"vitalog/models"

	goredis "github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// KVStore is the persistent key-value store the record store adapter sits on.
// Keys are namespaced strings, values are raw JSON payloads.
type KVStore interface {
	Get(ctx context.Context, key string) (string, bool, error)
	MGet(ctx context.Context, keys []string) (map[string]string, error)
	Set(ctx context.Context, key, value string) error
	ScanPrefix(ctx context.Context, prefix string) (map[string]string, error)
}

// NewKVStoreFromEnv picks the backend via RECORDS_BACKEND
// ("redis" | "postgres", default postgres). Postgres rides on the same
// gorm connection the relational models use.
func NewKVStoreFromEnv() (KVStore, error) {
	switch strings.ToLower(os.Getenv("RECORDS_BACKEND")) {
	case "redis":
		return NewRedisKV(os.Getenv("REDIS_ADDR"), os.Getenv("REDIS_PASSWORD"))
	case "", "postgres":
		if config.DB == nil {
			return nil, errors.New("postgres records backend requires InitDB first")
		}
		return NewGormKV(config.DB), nil
	default:
		return nil, fmt.Errorf("unknown RECORDS_BACKEND %q", os.Getenv("RECORDS_BACKEND"))
	}
}

// ---------- Postgres backend ----------

type gormKV struct{ db *gorm.DB }

func NewGormKV(db *gorm.DB) KVStore { return &gormKV{db: db} }

func (s *gormKV) Get(ctx context.Context, key string) (string, bool, error) {
	var rec models.StoreRecord
	err := s.db.WithContext(ctx).Where("key = ?", key).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return rec.Value, true, nil
}

func (s *gormKV) MGet(ctx context.Context, keys []string) (map[string]string, error) {
	var recs []models.StoreRecord
	if err := s.db.WithContext(ctx).Where("key IN ?", keys).Find(&recs).Error; err != nil {
		return nil, err
	}
	out := make(map[string]string, len(recs))
	for _, r := range recs {
		out[r.Key] = r.Value
	}
	return out, nil
}

func (s *gormKV) Set(ctx context.Context, key, value string) error {
	rec := models.StoreRecord{Key: key, Value: value, UpdatedAt: time.Now()}
	return s.db.WithContext(ctx).Save(&rec).Error
}

func (s *gormKV) ScanPrefix(ctx context.Context, prefix string) (map[string]string, error) {
	var recs []models.StoreRecord
	if err := s.db.WithContext(ctx).Where("key LIKE ?", prefix+"%").Find(&recs).Error; err != nil {
		return nil, err
	}
	out := make(map[string]string, len(recs))
	for _, r := range recs {
		out[r.Key] = r.Value
	}
	return out, nil
}

// ---------- Redis backend ----------

type redisKV struct{ rdb *goredis.Client }

func NewRedisKV(addr, password string) (KVStore, error) {
	if addr == "" {
		addr = "localhost:6379"
	}
	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		Password:    password,
		DialTimeout: 5 * time.Second,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return &redisKV{rdb: rdb}, nil
}

func (s *redisKV) Get(ctx context.Context, key string) (string, bool, error) {
	v, err := s.rdb.Get(ctx, key).Result()
	if errors.Is(err, goredis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return v, true, nil
}

func (s *redisKV) MGet(ctx context.Context, keys []string) (map[string]string, error) {
	vals, err := s.rdb.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}
	out := make(map[string]string, len(keys))
	for i, v := range vals {
		if str, ok := v.(string); ok {
			out[keys[i]] = str
		}
	}
	return out, nil
}

func (s *redisKV) Set(ctx context.Context, key, value string) error {
	return s.rdb.Set(ctx, key, value, 0).Err()
}

func (s *redisKV) ScanPrefix(ctx context.Context, prefix string) (map[string]string, error) {
	out := map[string]string{}
	iter := s.rdb.Scan(ctx, 0, prefix+"*", 200).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return nil, err
	}
	if len(keys) == 0 {
		return out, nil
	}
	vals, err := s.rdb.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}
	for i, v := range vals {
		if str, ok := v.(string); ok {
			out[keys[i]] = str
		}
	}
	return out, nil
}

// ---------- In-memory backend ----------

// MemoryKV backs tests and local development (RECORDS_BACKEND is not
// consulted; construct it directly and inject).
type MemoryKV struct {
	mu   sync.RWMutex
	data map[string]string
}

func NewMemoryKV() *MemoryKV {
	return &MemoryKV{data: map[string]string{}}
}

func (s *MemoryKV) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.data[key]
	return v, ok, nil
}

func (s *MemoryKV) MGet(_ context.Context, keys []string) (map[string]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]string, len(keys))
	for _, k := range keys {
		if v, ok := s.data[k]; ok {
			out[k] = v
		}
	}
	return out, nil
}

func (s *MemoryKV) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = value
	return nil
}

func (s *MemoryKV) ScanPrefix(_ context.Context, prefix string) (map[string]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := map[string]string{}
	for k, v := range s.data {
		if strings.HasPrefix(k, prefix) {
			out[k] = v
		}
	}
	return out, nil
}
